package arrayops

import (
	"fmt"

	"github.com/basis-fem/basis/internal/kernel"
	"github.com/basis-fem/basis/tensor"
)

// FloatSlice returns the float64 payload of a, failing for any other dtype;
// the numeric kernels are double precision only.
func FloatSlice(a *tensor.Array, what string) ([]float64, error) {
	if a.DType() != tensor.Float64 {
		return nil, fmt.Errorf("%w: %s must be float64, got %s", tensor.ErrDTypeMismatch, what, a.DType())
	}
	return a.Float64s(), nil
}

// IntSlice returns the payload of a as int64, widening int32 with a copy.
func IntSlice(a *tensor.Array, what string) ([]int64, error) {
	switch a.DType() {
	case tensor.Int64:
		return a.Int64s(), nil
	case tensor.Int32:
		src := a.Int32s()
		out := make([]int64, len(src))
		for i, v := range src {
			out[i] = int64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be an integer array, got %s", tensor.ErrDTypeMismatch, what, a.DType())
	}
}

func fromFloat64s(data []float64, shape tensor.Shape) (*tensor.Array, error) {
	return tensor.FromFloat64s(data, shape)
}

// MultiIndexMatrix enumerates the degree-p multi-indices of a
// td-dimensional simplex in descending lexicographic order.
func MultiIndexMatrix(p, td int) (*tensor.Array, error) {
	mi, err := kernel.MultiIndexMatrix(p, td)
	if err != nil {
		return nil, err
	}
	return tensor.FromInt64s(mi, tensor.Shape{kernel.LDof(p, td), td + 1})
}

func shapeFnInputs(bc *tensor.Array, p int, mi *tensor.Array, name string) ([]float64, []int64, error) {
	bcd, err := FloatSlice(bc, name+" barycentric coordinates")
	if err != nil {
		return nil, nil, err
	}
	if bc.NDim() < 1 {
		return nil, nil, fmt.Errorf("%w: %s needs at least one barycentric axis", tensor.ErrShapeMismatch, name)
	}
	var mid []int64
	if mi == nil {
		mid, err = kernel.MultiIndexMatrix(p, bc.Shape()[bc.NDim()-1]-1)
	} else {
		mid, err = IntSlice(mi, name+" multi-index matrix")
	}
	if err != nil {
		return nil, nil, err
	}
	return bcd, mid, nil
}

// SimplexShapeFunction evaluates the degree-p Lagrange basis at
// barycentric points; the trailing axis of bc indexes the coordinates.
// A nil mi derives the multi-index matrix from p and the coordinate count.
func SimplexShapeFunction(bc *tensor.Array, p int, mi *tensor.Array) (*tensor.Array, error) {
	bcd, mid, err := shapeFnInputs(bc, p, mi, "simplex_shape_function")
	if err != nil {
		return nil, err
	}
	out, shape, err := kernel.SimplexShapeFunction(bcd, bc.Shape(), p, mid)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, shape)
}

// SimplexGradShapeFunction evaluates the basis gradients with respect to
// the barycentric coordinates.
func SimplexGradShapeFunction(bc *tensor.Array, p int, mi *tensor.Array) (*tensor.Array, error) {
	bcd, mid, err := shapeFnInputs(bc, p, mi, "simplex_grad_shape_function")
	if err != nil {
		return nil, err
	}
	out, shape, err := kernel.SimplexGradShapeFunction(bcd, bc.Shape(), p, mid)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, shape)
}

func entityInputs(entity, node *tensor.Array, name string) ([]int64, tensor.Shape, []float64, tensor.Shape, error) {
	ent, err := IntSlice(entity, name+" entity")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	nd, err := FloatSlice(node, name+" node")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return ent, entity.Shape(), nd, node.Shape(), nil
}

func SimplexMeasure(entity, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(entity, node, "simplex_measure")
	if err != nil {
		return nil, err
	}
	out, err := kernel.SimplexMeasure(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0]})
}

func Barycenter(entity, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(entity, node, "barycenter")
	if err != nil {
		return nil, err
	}
	out, err := kernel.Barycenter(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], ns[1]})
}

func BcToPoints(bc, node, entity *tensor.Array) (*tensor.Array, error) {
	bcd, err := FloatSlice(bc, "bc_to_points barycentric coordinates")
	if err != nil {
		return nil, err
	}
	ent, es, nd, ns, err := entityInputs(entity, node, "bc_to_points")
	if err != nil {
		return nil, err
	}
	out, shape, err := kernel.BcToPoints(bcd, bc.Shape(), ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, shape)
}

// Tensorprod combines up to five rank-2 (n_i, v_i) basis-value factors into
// the tensor-product basis of shape (Π n_i, Π v_i); a rank-1 factor is a
// shape error.
func Tensorprod(as ...*tensor.Array) (*tensor.Array, error) {
	inputs := make([][]float64, len(as))
	shapes := make([]tensor.Shape, len(as))
	for i, a := range as {
		d, err := FloatSlice(a, "tensorprod factor")
		if err != nil {
			return nil, err
		}
		inputs[i] = d
		shapes[i] = a.Shape()
	}
	out, shape, err := kernel.Tensorprod(inputs, shapes)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, shape)
}

func EdgeLength(edge, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(edge, node, "edge_length")
	if err != nil {
		return nil, err
	}
	out, err := kernel.EdgeLength(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0]})
}

func EdgeNormal(edge, node *tensor.Array, unit bool) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(edge, node, "edge_normal")
	if err != nil {
		return nil, err
	}
	out, err := kernel.EdgeNormal(ent, es, nd, ns, unit)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], ns[1]})
}

func EdgeTangent(edge, node *tensor.Array, unit bool) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(edge, node, "edge_tangent")
	if err != nil {
		return nil, err
	}
	out, err := kernel.EdgeTangent(ent, es, nd, ns, unit)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], ns[1]})
}

func TriangleArea3D(tri, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(tri, node, "triangle_area_3d")
	if err != nil {
		return nil, err
	}
	out, err := kernel.TriangleArea3D(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0]})
}

func TriangleGradLambda2D(tri, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(tri, node, "triangle_grad_lambda_2d")
	if err != nil {
		return nil, err
	}
	out, err := kernel.TriangleGradLambda2d(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], 3, 2})
}

func TriangleGradLambda3D(tri, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(tri, node, "triangle_grad_lambda_3d")
	if err != nil {
		return nil, err
	}
	out, err := kernel.TriangleGradLambda3d(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], 3, 3})
}

func IntervalGradLambda(line, node *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(line, node, "interval_grad_lambda")
	if err != nil {
		return nil, err
	}
	out, err := kernel.IntervalGradLambda(ent, es, nd, ns)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], 2, ns[1]})
}

func TetrahedronGradLambda3D(tet, node, localFace *tensor.Array) (*tensor.Array, error) {
	ent, es, nd, ns, err := entityInputs(tet, node, "tetrahedron_grad_lambda_3d")
	if err != nil {
		return nil, err
	}
	lf, err := IntSlice(localFace, "tetrahedron_grad_lambda_3d local faces")
	if err != nil {
		return nil, err
	}
	out, err := kernel.TetrahedronGradLambda3d(ent, es, nd, ns, lf)
	if err != nil {
		return nil, err
	}
	return fromFloat64s(out, tensor.Shape{es[0], 4, 3})
}
