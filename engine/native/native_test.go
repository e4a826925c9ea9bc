package native

import (
	"errors"
	"testing"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

func fromFloats(t *testing.T, e *Engine, data []float64, shape tensor.Shape) tensor.Tensor {
	t.Helper()
	arr, err := tensor.FromFloat64s(data, shape)
	if err != nil {
		t.Fatal(err)
	}
	tt, err := e.FromHost(arr)
	if err != nil {
		t.Fatal(err)
	}
	return tt
}

func TestCumulativeNeedsConcreteAxis(t *testing.T) {
	e := New()
	tt := fromFloats(t, e, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	if _, err := e.CumSum(tt, engine.AllAxes); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("CumSum over all axes: got %v, want ErrUnsupportedConfiguration", err)
	}
	if _, err := e.CumProd(tt, engine.AllAxes); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("CumProd over all axes: got %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestMeanRequiresFloats(t *testing.T) {
	e := New()
	arr, err := tensor.FromInt64s([]int64{1, 2, 3}, tensor.Shape{3})
	if err != nil {
		t.Fatal(err)
	}
	tt, err := e.FromHost(arr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Mean(tt, 0, false); !errors.Is(err, tensor.ErrDTypeMismatch) {
		t.Errorf("Mean on int64: got %v, want ErrDTypeMismatch", err)
	}
}

func TestKeepdimsOverAllAxes(t *testing.T) {
	e := New()
	tt := fromFloats(t, e, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out, err := e.Sum(tt, engine.AllAxes, true)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Shape().Equal(tensor.Shape{1, 1}) {
		t.Errorf("keepdims shape: got %v, want [1 1]", out.Shape())
	}
}

func TestFloat32Pipeline(t *testing.T) {
	// The native engine carries float32 end to end, unlike the gonum one.
	e := New()
	arr, err := tensor.FromFloat32s([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	tt, err := e.FromHost(arr)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := e.Add(tt, tt)
	if err != nil {
		t.Fatal(err)
	}
	if sum.DType() != tensor.Float32 {
		t.Fatalf("float32 add dtype: got %s", sum.DType())
	}
	red, err := e.Sum(sum, engine.AllAxes, false)
	if err != nil {
		t.Fatal(err)
	}
	host, err := e.ToHost(red)
	if err != nil {
		t.Fatal(err)
	}
	got, err := host.AsFloat64s()
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 20 {
		t.Errorf("float32 pipeline sum: got %v, want 20", got[0])
	}
}

func TestRandomNormalMoments(t *testing.T) {
	e := New()
	r := e.NewRandom()
	r.Seed(12345)
	tt, err := r.Normal(tensor.Shape{4096})
	if err != nil {
		t.Fatal(err)
	}
	host, err := e.ToHost(tt)
	if err != nil {
		t.Fatal(err)
	}
	data := host.Float64s()
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))
	var variance float64
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(data))
	if mean < -0.1 || mean > 0.1 {
		t.Errorf("normal sample mean: got %v, want near 0", mean)
	}
	if variance < 0.8 || variance > 1.2 {
		t.Errorf("normal sample variance: got %v, want near 1", variance)
	}
}
