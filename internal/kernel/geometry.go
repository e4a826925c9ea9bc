package kernel

import (
	"fmt"
	"math"

	"github.com/basis-fem/basis/tensor"
)

func entityArgs(name string, ent []int64, entShape tensor.Shape, node []float64, nodeShape tensor.Shape) (n, k, gd int, err error) {
	if len(entShape) != 2 {
		return 0, 0, 0, fmt.Errorf("%w: %s expects a rank-2 entity index array, got shape %v",
			tensor.ErrShapeMismatch, name, entShape)
	}
	if len(nodeShape) != 2 {
		return 0, 0, 0, fmt.Errorf("%w: %s expects a rank-2 node coordinate array, got shape %v",
			tensor.ErrShapeMismatch, name, nodeShape)
	}
	return entShape[0], entShape[1], nodeShape[1], nil
}

// EdgeLength returns the length of every edge in the (ne, 2) index array,
// measured in the gd-dimensional node coordinates.
func EdgeLength(edge []int64, edgeShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	ne, k, gd, err := entityArgs("edge_length", edge, edgeShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 2 {
		return nil, fmt.Errorf("%w: edge_length expects 2 vertices per edge, got %d", tensor.ErrShapeMismatch, k)
	}
	out := make([]float64, ne)
	for e := 0; e < ne; e++ {
		i0, i1 := int(edge[e*2])*gd, int(edge[e*2+1])*gd
		s := 0.0
		for d := 0; d < gd; d++ {
			v := node[i1+d] - node[i0+d]
			s += v * v
		}
		out[e] = math.Sqrt(s)
	}
	return out, nil
}

// EdgeTangent returns the edge vectors p1 − p0 of shape (ne, gd), normalized
// when unit is set.
func EdgeTangent(edge []int64, edgeShape tensor.Shape, node []float64, nodeShape tensor.Shape, unit bool) ([]float64, error) {
	ne, k, gd, err := entityArgs("edge_tangent", edge, edgeShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 2 {
		return nil, fmt.Errorf("%w: edge_tangent expects 2 vertices per edge, got %d", tensor.ErrShapeMismatch, k)
	}
	out := make([]float64, ne*gd)
	for e := 0; e < ne; e++ {
		i0, i1 := int(edge[e*2])*gd, int(edge[e*2+1])*gd
		s := 0.0
		for d := 0; d < gd; d++ {
			v := node[i1+d] - node[i0+d]
			out[e*gd+d] = v
			s += v * v
		}
		if unit {
			l := math.Sqrt(s)
			if l == 0 {
				return nil, fmt.Errorf("%w: edge %d has zero length", tensor.ErrDegenerateGeometry, e)
			}
			for d := 0; d < gd; d++ {
				out[e*gd+d] /= l
			}
		}
	}
	return out, nil
}

// EdgeNormal returns, for 2-D meshes only, the normal (t_y, −t_x) of every
// edge tangent t, normalized when unit is set.
func EdgeNormal(edge []int64, edgeShape tensor.Shape, node []float64, nodeShape tensor.Shape, unit bool) ([]float64, error) {
	if len(nodeShape) == 2 && nodeShape[1] != 2 {
		return nil, fmt.Errorf("%w: edge_normal supports only 2-D meshes, got geometric dimension %d",
			tensor.ErrShapeMismatch, nodeShape[1])
	}
	t, err := EdgeTangent(edge, edgeShape, node, nodeShape, unit)
	if err != nil {
		return nil, err
	}
	for e := 0; e < len(t)/2; e++ {
		t[e*2], t[e*2+1] = t[e*2+1], -t[e*2]
	}
	return t, nil
}

// TriangleArea3D returns the (unsigned) area of every triangle of a surface
// mesh embedded in 3-D, via half the norm of the edge cross product.
func TriangleArea3D(tri []int64, triShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	nc, k, gd, err := entityArgs("triangle_area_3d", tri, triShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 3 || gd != 3 {
		return nil, fmt.Errorf("%w: triangle_area_3d expects (n, 3) triangles in 3-D, got %v cells in %d-D",
			tensor.ErrShapeMismatch, triShape, gd)
	}
	out := make([]float64, nc)
	var e1, e2, cr [3]float64
	for c := 0; c < nc; c++ {
		i0, i1, i2 := int(tri[c*3])*3, int(tri[c*3+1])*3, int(tri[c*3+2])*3
		for d := 0; d < 3; d++ {
			e1[d] = node[i1+d] - node[i0+d]
			e2[d] = node[i2+d] - node[i0+d]
		}
		cross3(&cr, e1, e2)
		out[c] = 0.5 * math.Sqrt(cr[0]*cr[0]+cr[1]*cr[1]+cr[2]*cr[2])
	}
	return out, nil
}

// SimplexMeasure returns the signed measure (length, area or volume) of each
// simplex: det of the edge-vector matrix divided by td!. The geometric
// dimension must equal the topological dimension; embedded simplices have no
// signed measure.
func SimplexMeasure(ent []int64, entShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	nc, k, gd, err := entityArgs("simplex_measure", ent, entShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	td := k - 1
	if td != gd {
		return nil, fmt.Errorf("%w: simplex_measure needs geometric dimension %d == vertex count - 1 (%d)",
			tensor.ErrShapeMismatch, gd, td)
	}
	if td < 1 || td > 3 {
		return nil, fmt.Errorf("%w: simplex_measure supports dimensions 1..3, got %d", tensor.ErrShapeMismatch, td)
	}
	fact := [4]float64{1, 1, 2, 6}
	out := make([]float64, nc)
	edges := make([]float64, td*gd)
	for c := 0; c < nc; c++ {
		for i := 0; i < td; i++ {
			a, b := int(ent[c*k+i])*gd, int(ent[c*k+i+1])*gd
			for d := 0; d < gd; d++ {
				edges[i*gd+d] = node[b+d] - node[a+d]
			}
		}
		out[c] = det(edges, td) / fact[td]
	}
	return out, nil
}

// Barycenter returns the vertex average of every entity, shape (n, gd).
func Barycenter(ent []int64, entShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	n, k, gd, err := entityArgs("barycenter", ent, entShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n*gd)
	inv := 1.0 / float64(k)
	for c := 0; c < n; c++ {
		for v := 0; v < k; v++ {
			i := int(ent[c*k+v]) * gd
			for d := 0; d < gd; d++ {
				out[c*gd+d] += node[i+d]
			}
		}
		for d := 0; d < gd; d++ {
			out[c*gd+d] *= inv
		}
	}
	return out, nil
}

// IntervalGradLambda returns the barycentric-coordinate gradients of 1-D
// cells embedded in gd dimensions, shape (nc, 2, gd).
func IntervalGradLambda(line []int64, lineShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	nc, k, gd, err := entityArgs("interval_grad_lambda", line, lineShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 2 {
		return nil, fmt.Errorf("%w: interval_grad_lambda expects 2 vertices per cell, got %d", tensor.ErrShapeMismatch, k)
	}
	out := make([]float64, nc*2*gd)
	for c := 0; c < nc; c++ {
		i0, i1 := int(line[c*2])*gd, int(line[c*2+1])*gd
		h2 := 0.0
		for d := 0; d < gd; d++ {
			v := node[i1+d] - node[i0+d]
			out[c*2*gd+gd+d] = v
			h2 += v * v
		}
		if h2 == 0 {
			return nil, fmt.Errorf("%w: interval cell %d has zero length", tensor.ErrDegenerateGeometry, c)
		}
		for d := 0; d < gd; d++ {
			out[c*2*gd+gd+d] /= h2
			out[c*2*gd+d] = -out[c*2*gd+gd+d]
		}
	}
	return out, nil
}

// TriangleGradLambda2d returns the barycentric-coordinate gradients of 2-D
// triangles, shape (nc, 3, 2). The i-th gradient is the opposite edge
// rotated a quarter turn, normalized by the twice-signed area; zero-area
// triangles are a degenerate-geometry error rather than a division by zero.
func TriangleGradLambda2d(tri []int64, triShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	nc, k, gd, err := entityArgs("triangle_grad_lambda_2d", tri, triShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 3 || gd != 2 {
		return nil, fmt.Errorf("%w: triangle_grad_lambda_2d expects (n, 3) triangles in 2-D, got %v cells in %d-D",
			tensor.ErrShapeMismatch, triShape, gd)
	}
	out := make([]float64, nc*3*2)
	var e [3][2]float64
	for c := 0; c < nc; c++ {
		p0, p1, p2 := int(tri[c*3])*2, int(tri[c*3+1])*2, int(tri[c*3+2])*2
		for d := 0; d < 2; d++ {
			e[0][d] = node[p2+d] - node[p1+d]
			e[1][d] = node[p0+d] - node[p2+d]
			e[2][d] = node[p1+d] - node[p0+d]
		}
		nv := e[0][0]*e[1][1] - e[0][1]*e[1][0] // twice the signed area
		if nv == 0 {
			return nil, fmt.Errorf("%w: triangle %d has zero area", tensor.ErrDegenerateGeometry, c)
		}
		for i := 0; i < 3; i++ {
			out[(c*3+i)*2] = -e[i][1] / nv
			out[(c*3+i)*2+1] = e[i][0] / nv
		}
	}
	return out, nil
}

// TriangleGradLambda3d returns the barycentric-coordinate gradients of
// triangles embedded in 3-D, shape (nc, 3, 3), via the unit face normal.
func TriangleGradLambda3d(tri []int64, triShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, error) {
	nc, k, gd, err := entityArgs("triangle_grad_lambda_3d", tri, triShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 3 || gd != 3 {
		return nil, fmt.Errorf("%w: triangle_grad_lambda_3d expects (n, 3) triangles in 3-D, got %v cells in %d-D",
			tensor.ErrShapeMismatch, triShape, gd)
	}
	out := make([]float64, nc*3*3)
	var e [3][3]float64
	var nv, n, cr [3]float64
	for c := 0; c < nc; c++ {
		p0, p1, p2 := int(tri[c*3])*3, int(tri[c*3+1])*3, int(tri[c*3+2])*3
		for d := 0; d < 3; d++ {
			e[0][d] = node[p2+d] - node[p1+d]
			e[1][d] = node[p0+d] - node[p2+d]
			e[2][d] = node[p1+d] - node[p0+d]
		}
		cross3(&nv, e[0], e[1])
		length := math.Sqrt(nv[0]*nv[0] + nv[1]*nv[1] + nv[2]*nv[2])
		if length == 0 {
			return nil, fmt.Errorf("%w: triangle %d has zero area", tensor.ErrDegenerateGeometry, c)
		}
		for d := 0; d < 3; d++ {
			n[d] = nv[d] / length
		}
		for i := 0; i < 3; i++ {
			cross3(&cr, n, e[i])
			for d := 0; d < 3; d++ {
				out[(c*3+i)*3+d] = cr[d] / length
			}
		}
	}
	return out, nil
}

// TetrahedronGradLambda3d returns the barycentric-coordinate gradients of
// tetrahedra, shape (nc, 4, 3). localFace is the (4, 3) local index array of
// the face opposite each vertex, in the orientation convention of the mesh.
func TetrahedronGradLambda3d(tet []int64, tetShape tensor.Shape, node []float64, nodeShape tensor.Shape, localFace []int64) ([]float64, error) {
	nc, k, gd, err := entityArgs("tetrahedron_grad_lambda_3d", tet, tetShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	if k != 4 || gd != 3 {
		return nil, fmt.Errorf("%w: tetrahedron_grad_lambda_3d expects (n, 4) cells in 3-D, got %v cells in %d-D",
			tensor.ErrShapeMismatch, tetShape, gd)
	}
	if len(localFace) != 12 {
		return nil, fmt.Errorf("%w: local face array must have shape (4, 3), got %d entries",
			tensor.ErrShapeMismatch, len(localFace))
	}
	volume, err := SimplexMeasure(tet, tetShape, node, nodeShape)
	if err != nil {
		return nil, err
	}
	out := make([]float64, nc*4*3)
	var vjk, vjm, cr [3]float64
	for c := 0; c < nc; c++ {
		if volume[c] == 0 {
			return nil, fmt.Errorf("%w: tetrahedron %d has zero volume", tensor.ErrDegenerateGeometry, c)
		}
		scale := 1.0 / (6 * volume[c])
		for i := 0; i < 4; i++ {
			j := int(tet[c*4+int(localFace[i*3])]) * 3
			kk := int(tet[c*4+int(localFace[i*3+1])]) * 3
			m := int(tet[c*4+int(localFace[i*3+2])]) * 3
			for d := 0; d < 3; d++ {
				vjk[d] = node[kk+d] - node[j+d]
				vjm[d] = node[m+d] - node[j+d]
			}
			cross3(&cr, vjm, vjk)
			for d := 0; d < 3; d++ {
				out[(c*4+i)*3+d] = cr[d] * scale
			}
		}
	}
	return out, nil
}

// BcToPoints maps barycentric coordinates of shape (..., nv) to cartesian
// points, one per (entity, barycentric point): out[e, ..., d] =
// Σ_v bc[..., v] · node[entity[e, v], d]. Output shape is
// (n,) + bcShape[:-1] + (gd,).
func BcToPoints(bc []float64, bcShape tensor.Shape, ent []int64, entShape tensor.Shape, node []float64, nodeShape tensor.Shape) ([]float64, tensor.Shape, error) {
	n, k, gd, err := entityArgs("bc_to_points", ent, entShape, node, nodeShape)
	if err != nil {
		return nil, nil, err
	}
	if len(bcShape) < 1 || bcShape[len(bcShape)-1] != k {
		return nil, nil, fmt.Errorf("%w: barycentric shape %v does not end with the %d entity vertices",
			tensor.ErrShapeMismatch, bcShape, k)
	}
	nq := 1
	for _, d := range bcShape[:len(bcShape)-1] {
		nq *= d
	}
	outShape := append(tensor.Shape{n}, bcShape[:len(bcShape)-1]...)
	outShape = append(outShape, gd)
	out := make([]float64, n*nq*gd)
	for e := 0; e < n; e++ {
		for q := 0; q < nq; q++ {
			dst := (e*nq + q) * gd
			for v := 0; v < k; v++ {
				w := bc[q*k+v]
				src := int(ent[e*k+v]) * gd
				for d := 0; d < gd; d++ {
					out[dst+d] += w * node[src+d]
				}
			}
		}
	}
	return out, outShape, nil
}

// Tensorprod combines per-direction basis values of shapes (n_i, v_i) into
// the tensor-product basis of shape (Π n_i, Π v_i), the outer product over
// both axes with the point axes leading.
func Tensorprod(inputs [][]float64, shapes []tensor.Shape) ([]float64, tensor.Shape, error) {
	num := len(inputs)
	if num == 0 || num > 5 {
		return nil, nil, fmt.Errorf("%w: tensorprod supports 1..5 factors, got %d", tensor.ErrUnsupportedConfiguration, num)
	}
	np, nv := 1, 1
	for i, s := range shapes {
		if len(s) != 2 {
			return nil, nil, fmt.Errorf("%w: tensorprod factor %d must be rank 2, got shape %v", tensor.ErrShapeMismatch, i, s)
		}
		np *= s[0]
		nv *= s[1]
	}
	out := make([]float64, np*nv)
	var emit func(depth, pt, vt int, w float64)
	emit = func(depth, pt, vt int, w float64) {
		if depth == num {
			out[pt*nv+vt] = w
			return
		}
		n, v := shapes[depth][0], shapes[depth][1]
		for i := 0; i < n; i++ {
			for j := 0; j < v; j++ {
				emit(depth+1, pt*n+i, vt*v+j, w*inputs[depth][i*v+j])
			}
		}
	}
	emit(0, 0, 0, 1)
	return out, tensor.Shape{np, nv}, nil
}

// det computes the determinant of an n×n matrix for n ≤ 3.
func det(m []float64, n int) float64 {
	switch n {
	case 1:
		return m[0]
	case 2:
		return m[0]*m[3] - m[1]*m[2]
	case 3:
		return m[0]*(m[4]*m[8]-m[5]*m[7]) -
			m[1]*(m[3]*m[8]-m[5]*m[6]) +
			m[2]*(m[3]*m[7]-m[4]*m[6])
	default:
		panic("det: unsupported order")
	}
}

func cross3(out *[3]float64, a, b [3]float64) {
	out[0] = a[1]*b[2] - a[2]*b[1]
	out[1] = a[2]*b[0] - a[0]*b[2]
	out[2] = a[0]*b[1] - a[1]*b[0]
}
