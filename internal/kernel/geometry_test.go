package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

func closeTo(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g", what, got, want)
	}
}

// Two unit right triangles tiling the unit square.
var (
	squareNodes = []float64{0, 0, 1, 0, 1, 1, 0, 1}
	squareTris  = []int64{0, 1, 2, 0, 2, 3}
)

func TestEdgeLength(t *testing.T) {
	node := []float64{0, 0, 3, 4, 3, 0}
	edge := []int64{0, 1, 1, 2, 0, 2}
	out, err := EdgeLength(edge, tensor.Shape{3, 2}, node, tensor.Shape{3, 2})
	if err != nil {
		t.Fatalf("EdgeLength: %v", err)
	}
	for i, want := range []float64{5, 4, 3} {
		closeTo(t, out[i], want, 1e-14, "edge length")
	}
}

func TestEdgeTangentAndNormal(t *testing.T) {
	node := []float64{0, 0, 2, 0}
	edge := []int64{0, 1}

	tan, err := EdgeTangent(edge, tensor.Shape{1, 2}, node, tensor.Shape{2, 2}, false)
	if err != nil {
		t.Fatalf("EdgeTangent: %v", err)
	}
	closeTo(t, tan[0], 2, 1e-14, "tangent x")
	closeTo(t, tan[1], 0, 1e-14, "tangent y")

	unit, err := EdgeTangent(edge, tensor.Shape{1, 2}, node, tensor.Shape{2, 2}, true)
	if err != nil {
		t.Fatalf("unit EdgeTangent: %v", err)
	}
	closeTo(t, unit[0], 1, 1e-14, "unit tangent x")

	// Normal is the tangent rotated by -90 degrees: (ty, -tx).
	nrm, err := EdgeNormal(edge, tensor.Shape{1, 2}, node, tensor.Shape{2, 2}, true)
	if err != nil {
		t.Fatalf("EdgeNormal: %v", err)
	}
	closeTo(t, nrm[0], 0, 1e-14, "normal x")
	closeTo(t, nrm[1], -1, 1e-14, "normal y")
}

func TestEdgeTangentDegenerate(t *testing.T) {
	node := []float64{1, 1, 1, 1}
	edge := []int64{0, 1}
	if _, err := EdgeTangent(edge, tensor.Shape{1, 2}, node, tensor.Shape{2, 2}, true); !errors.Is(err, tensor.ErrDegenerateGeometry) {
		t.Errorf("zero-length edge returned %v, want ErrDegenerateGeometry", err)
	}
}

func TestSimplexMeasure(t *testing.T) {
	// Unit interval.
	out, err := SimplexMeasure([]int64{0, 1}, tensor.Shape{1, 2}, []float64{0, 1}, tensor.Shape{2, 1})
	if err != nil {
		t.Fatalf("interval measure: %v", err)
	}
	closeTo(t, out[0], 1, 1e-14, "interval measure")

	// Both triangles of the unit square have area 1/2.
	out, err = SimplexMeasure(squareTris, tensor.Shape{2, 3}, squareNodes, tensor.Shape{4, 2})
	if err != nil {
		t.Fatalf("triangle measure: %v", err)
	}
	closeTo(t, out[0], 0.5, 1e-14, "triangle 0 area")
	closeTo(t, out[1], 0.5, 1e-14, "triangle 1 area")

	// Reference tetrahedron has volume 1/6.
	tetNode := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	out, err = SimplexMeasure([]int64{0, 1, 2, 3}, tensor.Shape{1, 4}, tetNode, tensor.Shape{4, 3})
	if err != nil {
		t.Fatalf("tet measure: %v", err)
	}
	closeTo(t, out[0], 1.0/6, 1e-14, "tet volume")
}

func TestSimplexMeasureIsSigned(t *testing.T) {
	// Flipping the vertex order negates the measure.
	out, err := SimplexMeasure([]int64{0, 2, 1}, tensor.Shape{1, 3}, squareNodes, tensor.Shape{4, 2})
	if err != nil {
		t.Fatalf("flipped triangle: %v", err)
	}
	closeTo(t, out[0], -0.5, 1e-14, "flipped triangle area")
}

func TestSimplexMeasureRejectsEmbedded(t *testing.T) {
	// A triangle in 3-D has no signed measure.
	node := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0}
	if _, err := SimplexMeasure([]int64{0, 1, 2}, tensor.Shape{1, 3}, node, tensor.Shape{3, 3}); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("embedded triangle returned %v, want ErrShapeMismatch", err)
	}
}

func TestBarycenter(t *testing.T) {
	out, err := Barycenter(squareTris, tensor.Shape{2, 3}, squareNodes, tensor.Shape{4, 2})
	if err != nil {
		t.Fatalf("Barycenter: %v", err)
	}
	want := []float64{2.0 / 3, 1.0 / 3, 1.0 / 3, 2.0 / 3}
	for i := range want {
		closeTo(t, out[i], want[i], 1e-14, "barycenter")
	}
}

func TestTriangleArea3D(t *testing.T) {
	node := []float64{0, 0, 0, 2, 0, 0, 0, 2, 0}
	out, err := TriangleArea3D([]int64{0, 1, 2}, tensor.Shape{1, 3}, node, tensor.Shape{3, 3})
	if err != nil {
		t.Fatalf("TriangleArea3D: %v", err)
	}
	closeTo(t, out[0], 2, 1e-14, "area")
}

func TestIntervalGradLambda(t *testing.T) {
	node := []float64{0, 2}
	out, err := IntervalGradLambda([]int64{0, 1}, tensor.Shape{1, 2}, node, tensor.Shape{2, 1})
	if err != nil {
		t.Fatalf("IntervalGradLambda: %v", err)
	}
	closeTo(t, out[0], -0.5, 1e-14, "grad lambda 0")
	closeTo(t, out[1], 0.5, 1e-14, "grad lambda 1")
}

func TestTriangleGradLambda2D(t *testing.T) {
	out, err := TriangleGradLambda2d([]int64{0, 1, 2}, tensor.Shape{1, 3}, squareNodes, tensor.Shape{4, 2})
	if err != nil {
		t.Fatalf("TriangleGradLambda2d: %v", err)
	}
	// lambda0 = 1 - x, lambda1 = x - y, lambda2 = y on triangle (0,0)(1,0)(1,1).
	want := []float64{-1, 0, 1, -1, 0, 1}
	for i := range want {
		closeTo(t, out[i], want[i], 1e-14, "grad lambda")
	}
}

func TestTriangleGradLambda3DMatchesPlanar(t *testing.T) {
	// A triangle lying in the z = 0 plane must reproduce the 2-D gradients
	// with a zero third component.
	node3 := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0}
	g3, err := TriangleGradLambda3d([]int64{0, 1, 2}, tensor.Shape{1, 3}, node3, tensor.Shape{3, 3})
	if err != nil {
		t.Fatalf("TriangleGradLambda3d: %v", err)
	}
	g2, err := TriangleGradLambda2d([]int64{0, 1, 2}, tensor.Shape{1, 3}, squareNodes, tensor.Shape{4, 2})
	if err != nil {
		t.Fatalf("TriangleGradLambda2d: %v", err)
	}
	for i := 0; i < 3; i++ {
		closeTo(t, g3[i*3], g2[i*2], 1e-13, "grad x")
		closeTo(t, g3[i*3+1], g2[i*2+1], 1e-13, "grad y")
		closeTo(t, g3[i*3+2], 0, 1e-13, "grad z")
	}
}

func TestTriangleGradLambdaDegenerate(t *testing.T) {
	node := []float64{0, 0, 1, 1, 2, 2}
	if _, err := TriangleGradLambda2d([]int64{0, 1, 2}, tensor.Shape{1, 3}, node, tensor.Shape{3, 2}); !errors.Is(err, tensor.ErrDegenerateGeometry) {
		t.Errorf("collinear triangle returned %v, want ErrDegenerateGeometry", err)
	}
}

func TestTetrahedronGradLambda3D(t *testing.T) {
	node := []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	localFace := []int64{1, 2, 3, 0, 3, 2, 0, 1, 3, 0, 2, 1}
	out, err := TetrahedronGradLambda3d([]int64{0, 1, 2, 3}, tensor.Shape{1, 4}, node, tensor.Shape{4, 3}, localFace)
	if err != nil {
		t.Fatalf("TetrahedronGradLambda3d: %v", err)
	}
	// lambda0 = 1-x-y-z, lambda1 = x, lambda2 = y, lambda3 = z.
	want := []float64{-1, -1, -1, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	for i := range want {
		closeTo(t, out[i], want[i], 1e-13, "tet grad lambda")
	}

	// Gradients of the barycentric coordinates sum to zero.
	for d := 0; d < 3; d++ {
		sum := 0.0
		for i := 0; i < 4; i++ {
			sum += out[i*3+d]
		}
		closeTo(t, sum, 0, 1e-13, "grad sum")
	}
}

func TestBcToPoints(t *testing.T) {
	bc := []float64{1, 0, 0, 1.0 / 3, 1.0 / 3, 1.0 / 3}
	out, shape, err := BcToPoints(bc, tensor.Shape{2, 3}, squareTris, tensor.Shape{2, 3}, squareNodes, tensor.Shape{4, 2})
	if err != nil {
		t.Fatalf("BcToPoints: %v", err)
	}
	if !shape.Equal(tensor.Shape{2, 2, 2}) {
		t.Fatalf("shape = %v, want [2 2 2]", shape)
	}
	// First barycentric point is the first vertex; second is the centroid.
	want := []float64{
		0, 0, 2.0 / 3, 1.0 / 3,
		0, 0, 1.0 / 3, 2.0 / 3,
	}
	for i := range want {
		closeTo(t, out[i], want[i], 1e-14, "mapped point")
	}
}

func TestTensorprod(t *testing.T) {
	// (1 point, 2 values) x (1 point, 2 values) -> (1, 4) outer product.
	a := []float64{2, 3}
	b := []float64{5, 7}
	out, shape, err := Tensorprod([][]float64{a, b}, []tensor.Shape{{1, 2}, {1, 2}})
	if err != nil {
		t.Fatalf("Tensorprod: %v", err)
	}
	if !shape.Equal(tensor.Shape{1, 4}) {
		t.Fatalf("shape = %v, want [1 4]", shape)
	}
	want := []float64{10, 14, 15, 21}
	for i := range want {
		closeTo(t, out[i], want[i], 1e-14, "tensor product")
	}
}

func TestTensorprodSingleFactor(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	out, shape, err := Tensorprod([][]float64{a}, []tensor.Shape{{2, 3}})
	if err != nil {
		t.Fatalf("Tensorprod: %v", err)
	}
	if !shape.Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", shape)
	}
	for i := range a {
		if out[i] != a[i] {
			t.Fatalf("single factor not an identity: %v", out)
		}
	}
}
