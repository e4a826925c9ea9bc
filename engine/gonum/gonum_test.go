package gonum

import (
	"errors"
	"testing"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

func TestFromHostRejectsNarrowDTypes(t *testing.T) {
	e := New()
	for _, dt := range []tensor.DataType{tensor.Float32, tensor.Int32} {
		arr, err := tensor.NewArray(dt, tensor.Shape{2})
		if err != nil {
			t.Fatalf("NewArray(%s): %v", dt, err)
		}
		if _, err := e.FromHost(arr); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
			t.Errorf("FromHost(%s): got %v, want ErrUnsupportedConfiguration", dt, err)
		}
	}
}

func TestCreationRejectsNarrowDTypeOption(t *testing.T) {
	e := New()
	if _, err := e.Zeros(tensor.Shape{2}, engine.WithDType(tensor.Float32)); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("Zeros float32: got %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestRejectsNonCPUDevice(t *testing.T) {
	e := New()
	_, err := e.Zeros(tensor.Shape{2}, engine.WithDevice("cuda:0"))
	if !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("Zeros on cuda: got %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestRandomIsInt64AndFloat64Only(t *testing.T) {
	r := New().NewRandom()
	r.Seed(3)
	if _, err := r.Uniform(tensor.Shape{4}, engine.WithDType(tensor.Float32)); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("Uniform float32: got %v, want ErrUnsupportedConfiguration", err)
	}
	if _, err := r.Integers(0, 10, tensor.Shape{4}, engine.WithDType(tensor.Int32)); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("Integers int32: got %v, want ErrUnsupportedConfiguration", err)
	}
}

func TestBoolTensorsRoundTrip(t *testing.T) {
	e := New()
	arr, err := tensor.FromBools([]bool{true, false, true}, tensor.Shape{3})
	if err != nil {
		t.Fatal(err)
	}
	tt, err := e.FromHost(arr)
	if err != nil {
		t.Fatal(err)
	}
	out, err := e.ToHost(tt)
	if err != nil {
		t.Fatal(err)
	}
	got := out.Bools()
	for i, want := range []bool{true, false, true} {
		if got[i] != want {
			t.Errorf("bool round trip at %d: got %v, want %v", i, got[i], want)
		}
	}
}
