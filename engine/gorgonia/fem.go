package gorgonia

import (
	"github.com/basis-fem/basis/tensor"
)

// The finite element kernels are hand written on the host; every method
// here converts its operands to host form, runs the shared kernels and
// rewraps the result as a dense value.

// MultiIndexMatrix enumerates the degree-p multi-indices of a
// td-dimensional simplex in descending lexicographic order.
func (e *Engine) MultiIndexMatrix(p, td int) (tensor.Tensor, error) {
	out, err := e.host.MultiIndexMatrix(p, td)
	if err != nil {
		return nil, err
	}
	return e.fromNative(out)
}

// SimplexShapeFunction evaluates the degree-p Lagrange basis at the given
// barycentric coordinates. A nil mi derives the multi-index matrix from
// the trailing dimension of bc.
func (e *Engine) SimplexShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error) {
	hmi, err := e.optNative(mi)
	if err != nil {
		return nil, err
	}
	return e.fallback1(bc, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.SimplexShapeFunction(x, p, hmi)
	})
}

// SimplexGradShapeFunction evaluates the barycentric gradients of the
// degree-p Lagrange basis.
func (e *Engine) SimplexGradShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error) {
	hmi, err := e.optNative(mi)
	if err != nil {
		return nil, err
	}
	return e.fallback1(bc, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.SimplexGradShapeFunction(x, p, hmi)
	})
}

// SimplexMeasure computes per-entity measures from connectivity and node
// coordinates.
func (e *Engine) SimplexMeasure(entity, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(entity, node, e.host.SimplexMeasure)
}

// Barycenter averages the vertex coordinates of each entity.
func (e *Engine) Barycenter(entity, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(entity, node, e.host.Barycenter)
}

// BcToPoints maps barycentric coordinates to Cartesian points on each entity.
func (e *Engine) BcToPoints(bc, node, entity tensor.Tensor) (tensor.Tensor, error) {
	hn, err := e.toNative(node)
	if err != nil {
		return nil, err
	}
	hent, err := e.toNative(entity)
	if err != nil {
		return nil, err
	}
	return e.fallback1(bc, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.BcToPoints(x, hn, hent)
	})
}

// Tensorprod forms the outer product basis of the given factors.
func (e *Engine) Tensorprod(ts ...tensor.Tensor) (tensor.Tensor, error) {
	hs := make([]tensor.Tensor, len(ts))
	for i, t := range ts {
		ht, err := e.toNative(t)
		if err != nil {
			return nil, err
		}
		hs[i] = ht
	}
	out, err := e.host.Tensorprod(hs...)
	if err != nil {
		return nil, err
	}
	return e.fromNative(out)
}

// EdgeLength computes the length of each edge.
func (e *Engine) EdgeLength(edge, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(edge, node, e.host.EdgeLength)
}

// EdgeNormal computes the outward rotated edge vectors, normalized when
// unit is set.
func (e *Engine) EdgeNormal(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error) {
	return e.fallback2(edge, node, func(a, b tensor.Tensor) (tensor.Tensor, error) {
		return e.host.EdgeNormal(a, b, unit)
	})
}

// EdgeTangent computes the edge direction vectors, normalized when unit
// is set.
func (e *Engine) EdgeTangent(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error) {
	return e.fallback2(edge, node, func(a, b tensor.Tensor) (tensor.Tensor, error) {
		return e.host.EdgeTangent(a, b, unit)
	})
}

// TriangleArea3D computes the area of triangles embedded in three
// dimensions.
func (e *Engine) TriangleArea3D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(tri, node, e.host.TriangleArea3D)
}

// TriangleGradLambda2D computes barycentric coordinate gradients for
// planar triangles.
func (e *Engine) TriangleGradLambda2D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(tri, node, e.host.TriangleGradLambda2D)
}

// TriangleGradLambda3D computes barycentric coordinate gradients for
// triangles embedded in three dimensions.
func (e *Engine) TriangleGradLambda3D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(tri, node, e.host.TriangleGradLambda3D)
}

// IntervalGradLambda computes barycentric coordinate gradients for line
// segments.
func (e *Engine) IntervalGradLambda(line, node tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback2(line, node, e.host.IntervalGradLambda)
}

// TetrahedronGradLambda3D computes barycentric coordinate gradients for
// tetrahedra using the local face numbering.
func (e *Engine) TetrahedronGradLambda3D(tet, node, localFace tensor.Tensor) (tensor.Tensor, error) {
	hn, err := e.toNative(node)
	if err != nil {
		return nil, err
	}
	hf, err := e.toNative(localFace)
	if err != nil {
		return nil, err
	}
	return e.fallback1(tet, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.TetrahedronGradLambda3D(x, hn, hf)
	})
}
