package arrayops

import (
	"errors"
	"math"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

func TestMultiIndexMatrixShape(t *testing.T) {
	mi, err := MultiIndexMatrix(2, 2)
	if err != nil {
		t.Fatalf("MultiIndexMatrix: %v", err)
	}
	if !mi.Shape().Equal(tensor.Shape{6, 3}) {
		t.Fatalf("shape = %v, want [6 3]", mi.Shape())
	}
	if mi.DType() != tensor.Int64 {
		t.Errorf("dtype = %s, want int64", mi.DType())
	}
}

func TestSimplexShapeFunctionDerivesMultiIndex(t *testing.T) {
	bc, _ := tensor.FromFloat64s([]float64{0.5, 0.3, 0.2}, tensor.Shape{1, 3})
	phi, err := SimplexShapeFunction(bc, 2, nil)
	if err != nil {
		t.Fatalf("SimplexShapeFunction: %v", err)
	}
	if !phi.Shape().Equal(tensor.Shape{1, 6}) {
		t.Fatalf("shape = %v, want [1 6]", phi.Shape())
	}
	sum := 0.0
	for _, v := range phi.Float64s() {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("basis sums to %g, want 1", sum)
	}

	mi, _ := MultiIndexMatrix(2, 2)
	phi2, err := SimplexShapeFunction(bc, 2, mi)
	if err != nil {
		t.Fatalf("explicit multi-index: %v", err)
	}
	for i, v := range phi.Float64s() {
		if phi2.Float64s()[i] != v {
			t.Fatal("derived and explicit multi-index disagree")
		}
	}
}

func TestSimplexShapeFunctionRejectsIntBc(t *testing.T) {
	bc, _ := tensor.FromInt64s([]int64{1, 0}, tensor.Shape{1, 2})
	if _, err := SimplexShapeFunction(bc, 1, nil); !errors.Is(err, tensor.ErrDTypeMismatch) {
		t.Errorf("integer bc returned %v, want ErrDTypeMismatch", err)
	}
}

func TestGradShapeFunctionShape(t *testing.T) {
	bc, _ := tensor.FromFloat64s([]float64{0.2, 0.8, 0.6, 0.4}, tensor.Shape{2, 2})
	grad, err := SimplexGradShapeFunction(bc, 3, nil)
	if err != nil {
		t.Fatalf("SimplexGradShapeFunction: %v", err)
	}
	if !grad.Shape().Equal(tensor.Shape{2, 4, 2}) {
		t.Fatalf("shape = %v, want [2 4 2]", grad.Shape())
	}
}

func TestEntityOpsAcceptInt32Connectivity(t *testing.T) {
	// Connectivity arrays from 32-bit mesh formats widen transparently.
	node, _ := tensor.FromFloat64s([]float64{0, 0, 1, 0, 0, 1}, tensor.Shape{3, 2})
	tri32, _ := tensor.FromInt32s([]int32{0, 1, 2}, tensor.Shape{1, 3})

	area, err := SimplexMeasure(tri32, node)
	if err != nil {
		t.Fatalf("SimplexMeasure with int32: %v", err)
	}
	if !area.Shape().Equal(tensor.Shape{1}) || math.Abs(area.Float64s()[0]-0.5) > 1e-14 {
		t.Errorf("area = %v, want [0.5]", area.Float64s())
	}
}

func TestBarycenterShape(t *testing.T) {
	node, _ := tensor.FromFloat64s([]float64{0, 0, 2, 0, 0, 2}, tensor.Shape{3, 2})
	tri, _ := tensor.FromInt64s([]int64{0, 1, 2}, tensor.Shape{1, 3})
	bary, err := Barycenter(tri, node)
	if err != nil {
		t.Fatalf("Barycenter: %v", err)
	}
	if !bary.Shape().Equal(tensor.Shape{1, 2}) {
		t.Fatalf("shape = %v, want [1 2]", bary.Shape())
	}
	got := bary.Float64s()
	if math.Abs(got[0]-2.0/3) > 1e-14 || math.Abs(got[1]-2.0/3) > 1e-14 {
		t.Errorf("barycenter = %v, want [2/3 2/3]", got)
	}
}

func TestBcToPointsShape(t *testing.T) {
	node, _ := tensor.FromFloat64s([]float64{0, 0, 1, 0, 0, 1}, tensor.Shape{3, 2})
	tri, _ := tensor.FromInt64s([]int64{0, 1, 2}, tensor.Shape{1, 3})
	bc, _ := tensor.FromFloat64s([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, tensor.Shape{1, 3})
	pts, err := BcToPoints(bc, node, tri)
	if err != nil {
		t.Fatalf("BcToPoints: %v", err)
	}
	if !pts.Shape().Equal(tensor.Shape{1, 1, 2}) {
		t.Fatalf("shape = %v, want [1 1 2]", pts.Shape())
	}
}

func TestTensorprodArrays(t *testing.T) {
	a, _ := tensor.FromFloat64s([]float64{1, 2}, tensor.Shape{1, 2})
	b, _ := tensor.FromFloat64s([]float64{3, 4}, tensor.Shape{1, 2})
	out, err := Tensorprod(a, b)
	if err != nil {
		t.Fatalf("Tensorprod: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{1, 4}) {
		t.Fatalf("shape = %v, want [1 4]", out.Shape())
	}
	want := []float64{3, 4, 6, 8}
	for i, v := range want {
		if out.Float64s()[i] != v {
			t.Fatalf("product = %v, want %v", out.Float64s(), want)
		}
	}
}

func TestTensorprodRequiresRank2Factors(t *testing.T) {
	a, _ := tensor.FromFloat64s([]float64{1, 2}, tensor.Shape{2})
	if _, err := Tensorprod(a); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("rank-1 factor returned %v, want ErrShapeMismatch", err)
	}
}

func TestEdgeGeometryRoundTrip(t *testing.T) {
	node, _ := tensor.FromFloat64s([]float64{0, 0, 0, 3}, tensor.Shape{2, 2})
	edge, _ := tensor.FromInt64s([]int64{0, 1}, tensor.Shape{1, 2})

	l, err := EdgeLength(edge, node)
	if err != nil {
		t.Fatalf("EdgeLength: %v", err)
	}
	if l.Float64s()[0] != 3 {
		t.Errorf("length = %g, want 3", l.Float64s()[0])
	}

	tan, err := EdgeTangent(edge, node, true)
	if err != nil {
		t.Fatalf("EdgeTangent: %v", err)
	}
	if tan.Float64s()[0] != 0 || tan.Float64s()[1] != 1 {
		t.Errorf("unit tangent = %v, want [0 1]", tan.Float64s())
	}

	nrm, err := EdgeNormal(edge, node, true)
	if err != nil {
		t.Fatalf("EdgeNormal: %v", err)
	}
	if nrm.Float64s()[0] != 1 || nrm.Float64s()[1] != 0 {
		t.Errorf("unit normal = %v, want [1 0]", nrm.Float64s())
	}
}
