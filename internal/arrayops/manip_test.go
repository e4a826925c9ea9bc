package arrayops

import (
	"errors"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

func float64Array(t *testing.T, data []float64, shape tensor.Shape) *tensor.Array {
	t.Helper()
	a, err := tensor.FromFloat64s(data, shape)
	if err != nil {
		t.Fatalf("FromFloat64s: %v", err)
	}
	return a
}

func wantFloat64s(t *testing.T, got *tensor.Array, shape tensor.Shape, want []float64) {
	t.Helper()
	if !got.Shape().Equal(shape) {
		t.Fatalf("shape = %v, want %v", got.Shape(), shape)
	}
	if got.DType() != tensor.Float64 {
		t.Fatalf("dtype = %s, want float64", got.DType())
	}
	d := got.Float64s()
	for i := range want {
		if d[i] != want[i] {
			t.Fatalf("data = %v, want %v", d, want)
		}
	}
}

func TestReshape(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out, err := Reshape(a, tensor.Shape{3, 2})
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 2}, []float64{1, 2, 3, 4, 5, 6})

	if _, err := Reshape(a, tensor.Shape{4}); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("element count mismatch returned %v, want ErrShapeMismatch", err)
	}
}

func TestReshapeIsCopy(t *testing.T) {
	a := float64Array(t, []float64{1, 2}, tensor.Shape{2})
	out, err := Reshape(a, tensor.Shape{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	out.Float64s()[0] = 99
	if a.Float64s()[0] != 1 {
		t.Error("reshape aliased its input")
	}
}

func TestTranspose(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	// Default reverses the axes.
	out, err := Transpose(a)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 2}, []float64{1, 4, 2, 5, 3, 6})

	// Explicit permutation with negative axes.
	out, err = Transpose(a, -1, 0)
	if err != nil {
		t.Fatalf("Transpose(-1, 0): %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 2}, []float64{1, 4, 2, 5, 3, 6})

	if _, err := Transpose(a, 0, 0); err == nil {
		t.Error("duplicate permutation axes succeeded")
	}
}

func TestTransposeRank3(t *testing.T) {
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	a := float64Array(t, data, tensor.Shape{2, 3, 4})
	out, err := Transpose(a, 1, 2, 0)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if !out.Shape().Equal(tensor.Shape{3, 4, 2}) {
		t.Fatalf("shape = %v, want [3 4 2]", out.Shape())
	}
	// out[i, j, k] = a[k, i, j]
	d := out.Float64s()
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 2; k++ {
				want := data[k*12+i*4+j]
				if got := d[i*8+j*2+k]; got != want {
					t.Fatalf("out[%d,%d,%d] = %g, want %g", i, j, k, got, want)
				}
			}
		}
	}
}

func TestConcat(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := float64Array(t, []float64{5, 6}, tensor.Shape{1, 2})
	out, err := Concat(0, a, b)
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 2}, []float64{1, 2, 3, 4, 5, 6})

	c := float64Array(t, []float64{7, 8}, tensor.Shape{2, 1})
	out, err = Concat(-1, a, c)
	if err != nil {
		t.Fatalf("Concat(-1): %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{2, 3}, []float64{1, 2, 7, 3, 4, 8})
}

func TestConcatShapeMismatch(t *testing.T) {
	a := float64Array(t, []float64{1, 2}, tensor.Shape{1, 2})
	b := float64Array(t, []float64{3, 4, 5}, tensor.Shape{1, 3})
	if _, err := Concat(0, a, b); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("mismatched off-axis dims returned %v, want ErrShapeMismatch", err)
	}
}

func TestConcatDTypeMismatch(t *testing.T) {
	a := float64Array(t, []float64{1}, tensor.Shape{1})
	b, _ := tensor.FromInt64s([]int64{1}, tensor.Shape{1})
	if _, err := Concat(0, a, b); !errors.Is(err, tensor.ErrDTypeMismatch) {
		t.Errorf("mixed dtypes returned %v, want ErrDTypeMismatch", err)
	}
}

func TestStackAndUnstack(t *testing.T) {
	a := float64Array(t, []float64{1, 2}, tensor.Shape{2})
	b := float64Array(t, []float64{3, 4}, tensor.Shape{2})

	out, err := Stack(0, a, b)
	if err != nil {
		t.Fatalf("Stack: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{2, 2}, []float64{1, 2, 3, 4})

	out, err = Stack(1, a, b)
	if err != nil {
		t.Fatalf("Stack(1): %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{2, 2}, []float64{1, 3, 2, 4})

	parts, err := Unstack(out, 1)
	if err != nil {
		t.Fatalf("Unstack: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("Unstack produced %d parts, want 2", len(parts))
	}
	wantFloat64s(t, parts[0], tensor.Shape{2}, []float64{1, 2})
	wantFloat64s(t, parts[1], tensor.Shape{2}, []float64{3, 4})
}

func TestFlip(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	out, err := Flip(a, 1)
	if err != nil {
		t.Fatalf("Flip: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{2, 3}, []float64{3, 2, 1, 6, 5, 4})

	out, err = Flip(a, 0)
	if err != nil {
		t.Fatalf("Flip(0): %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{2, 3}, []float64{4, 5, 6, 1, 2, 3})
}

func TestExpandDimsAndSqueeze(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3}, tensor.Shape{3})

	out, err := ExpandDims(a, 0)
	if err != nil {
		t.Fatalf("ExpandDims: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{1, 3}, []float64{1, 2, 3})

	out, err = ExpandDims(a, -1)
	if err != nil {
		t.Fatalf("ExpandDims(-1): %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 1}, []float64{1, 2, 3})

	back, err := Squeeze(out, 1)
	if err != nil {
		t.Fatalf("Squeeze: %v", err)
	}
	wantFloat64s(t, back, tensor.Shape{3}, []float64{1, 2, 3})

	if _, err := Squeeze(a, 0); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("squeezing a non-unit axis returned %v, want ErrShapeMismatch", err)
	}
}

func TestTake(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	out, err := Take(a, []int64{2, 0, 2}, 0)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 2}, []float64{5, 6, 1, 2, 5, 6})

	out, err = Take(a, []int64{1}, -1)
	if err != nil {
		t.Fatalf("Take(-1): %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 1}, []float64{2, 4, 6})

	if _, err := Take(a, []int64{3}, 0); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("out-of-range index returned %v, want ErrShapeMismatch", err)
	}
}

func TestSetAt(t *testing.T) {
	a := float64Array(t, []float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
	src := float64Array(t, []float64{10, 20}, tensor.Shape{1, 2})
	out, err := SetAt(a, []int64{1}, src)
	if err != nil {
		t.Fatalf("SetAt: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3, 2}, []float64{1, 2, 10, 20, 5, 6})
	// input untouched
	wantFloat64s(t, a, tensor.Shape{3, 2}, []float64{1, 2, 3, 4, 5, 6})
}

func TestAddAtAccumulatesDuplicates(t *testing.T) {
	a := float64Array(t, []float64{0, 0, 0}, tensor.Shape{3})
	src := float64Array(t, []float64{1, 2, 4}, tensor.Shape{3})
	// index 1 hit twice: assembly-style accumulation, not overwrite
	out, err := AddAt(a, []int64{1, 1, 2}, src)
	if err != nil {
		t.Fatalf("AddAt: %v", err)
	}
	wantFloat64s(t, out, tensor.Shape{3}, []float64{0, 3, 4})
}

func TestAddAtInt(t *testing.T) {
	a, _ := tensor.FromInt64s([]int64{10, 10}, tensor.Shape{2})
	src, _ := tensor.FromInt64s([]int64{1, 2}, tensor.Shape{2})
	out, err := AddAt(a, []int64{0, 0}, src)
	if err != nil {
		t.Fatalf("AddAt: %v", err)
	}
	d := out.Int64s()
	if d[0] != 13 || d[1] != 10 {
		t.Errorf("result = %v, want [13 10]", d)
	}
}
