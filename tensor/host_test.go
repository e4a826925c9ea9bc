package tensor

import (
	"errors"
	"testing"
)

func TestNewArrayAllocates(t *testing.T) {
	for _, dt := range []DataType{Float64, Float32, Int64, Int32, Bool} {
		a, err := NewArray(dt, Shape{2, 3})
		if err != nil {
			t.Fatalf("NewArray(%s): %v", dt, err)
		}
		if a.DType() != dt {
			t.Errorf("DType() = %s, want %s", a.DType(), dt)
		}
		if !a.Shape().Equal(Shape{2, 3}) {
			t.Errorf("Shape() = %v, want [2 3]", a.Shape())
		}
		if a.NumElements() != 6 {
			t.Errorf("NumElements() = %d, want 6", a.NumElements())
		}
	}
}

func TestNewArrayRejectsBadShape(t *testing.T) {
	if _, err := NewArray(Float64, Shape{-2}); err == nil {
		t.Error("NewArray with negative dimension succeeded")
	}
}

func TestFromFloat64sWrapsWithoutCopy(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	a, err := FromFloat64s(data, Shape{2, 2})
	if err != nil {
		t.Fatalf("FromFloat64s: %v", err)
	}
	data[0] = 42
	if a.Float64s()[0] != 42 {
		t.Error("FromFloat64s copied the backing slice, want wrapping")
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	if _, err := FromFloat64s([]float64{1, 2, 3}, Shape{2, 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("length mismatch returned %v, want ErrShapeMismatch", err)
	}
	if _, err := FromInt64s([]int64{1}, Shape{0}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("length mismatch returned %v, want ErrShapeMismatch", err)
	}
}

func TestScalarArray(t *testing.T) {
	a, err := FromFloat64s([]float64{3.5}, Shape{})
	if err != nil {
		t.Fatalf("scalar FromFloat64s: %v", err)
	}
	if a.NDim() != 0 || a.NumElements() != 1 {
		t.Errorf("scalar array NDim=%d NumElements=%d, want 0 and 1", a.NDim(), a.NumElements())
	}
}

func TestEmptyArray(t *testing.T) {
	a, err := FromFloat64s(nil, Shape{0})
	if err != nil {
		t.Fatalf("empty FromFloat64s: %v", err)
	}
	if a.NumElements() != 0 {
		t.Errorf("empty array NumElements = %d, want 0", a.NumElements())
	}
	got, err := a.AsFloat64s()
	if err != nil || len(got) != 0 {
		t.Errorf("AsFloat64s on empty array = %v, %v; want empty, nil", got, err)
	}
	if c := a.Clone(); c.NumElements() != 0 {
		t.Errorf("empty clone NumElements = %d, want 0", c.NumElements())
	}

	if _, err := FromInt64s([]int64{1}, Shape{0}); err == nil {
		t.Error("FromInt64s with mismatched empty shape succeeded, want error")
	}
}

func TestAsFloat64sConverts(t *testing.T) {
	a, _ := FromInt32s([]int32{1, 2, 3}, Shape{3})
	got, err := a.AsFloat64s()
	if err != nil {
		t.Fatalf("AsFloat64s: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		if got[i] != want {
			t.Errorf("AsFloat64s()[%d] = %v, want %v", i, got[i], want)
		}
	}

	b, _ := FromBools([]bool{true}, Shape{1})
	if _, err := b.AsFloat64s(); !errors.Is(err, ErrDTypeMismatch) {
		t.Errorf("AsFloat64s on Bool returned %v, want ErrDTypeMismatch", err)
	}
}

func TestAsInt64sConverts(t *testing.T) {
	a, _ := FromInt32s([]int32{4, 5}, Shape{2})
	got, err := a.AsInt64s()
	if err != nil {
		t.Fatalf("AsInt64s: %v", err)
	}
	if got[0] != 4 || got[1] != 5 {
		t.Errorf("AsInt64s() = %v, want [4 5]", got)
	}

	f, _ := FromFloat64s([]float64{1.5}, Shape{1})
	if _, err := f.AsInt64s(); !errors.Is(err, ErrDTypeMismatch) {
		t.Errorf("AsInt64s on Float64 returned %v, want ErrDTypeMismatch", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	a, _ := FromFloat64s([]float64{1, 2}, Shape{2})
	b := a.Clone()
	b.Float64s()[0] = 99
	b.Shape()[0] = 7
	if a.Float64s()[0] != 1 {
		t.Error("mutating clone data changed original")
	}
	if a.Shape()[0] != 2 {
		t.Error("mutating clone shape changed original")
	}
}

func TestDataTypeOf(t *testing.T) {
	if DataTypeOf[float64]() != Float64 {
		t.Error("DataTypeOf[float64] != Float64")
	}
	if DataTypeOf[int32]() != Int32 {
		t.Error("DataTypeOf[int32] != Int32")
	}
	if DataTypeOf[bool]() != Bool {
		t.Error("DataTypeOf[bool] != Bool")
	}
}
