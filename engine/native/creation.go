package native

import (
	"fmt"
	"math"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

// Zeros creates a zero-filled tensor.
func (e *Engine) Zeros(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	a, err := tensor.NewArray(o.DType, shape)
	if err != nil {
		return nil, err
	}
	return wrap(a), nil
}

// Empty creates an uninitialized tensor. Go memory is zeroed, so this is
// Zeros under a different canonical name; the distinction matters for
// engines where skipping the fill is observable.
func (e *Engine) Empty(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return e.Zeros(shape, opts...)
}

// Ones creates a one-filled tensor.
func (e *Engine) Ones(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return e.Full(shape, 1, opts...)
}

// Full creates a tensor filled with value, converted to the requested dtype.
func (e *Engine) Full(shape tensor.Shape, value float64, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	a, err := tensor.NewArray(o.DType, shape)
	if err != nil {
		return nil, err
	}
	switch o.DType {
	case tensor.Float64:
		fill(a.Float64s(), value)
	case tensor.Float32:
		fill(a.Float32s(), float32(value))
	case tensor.Int64:
		fill(a.Int64s(), int64(value))
	case tensor.Int32:
		fill(a.Int32s(), int32(value))
	case tensor.Bool:
		fill(a.Bools(), value != 0)
	}
	return wrap(a), nil
}

func fill[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}

// Eye creates the n×n identity matrix.
func (e *Engine) Eye(n int, opts ...engine.Option) (tensor.Tensor, error) {
	t, err := e.Zeros(tensor.Shape{n, n}, opts...)
	if err != nil {
		return nil, err
	}
	nt := t.(*Tensor)
	switch nt.DType() {
	case tensor.Float64:
		d := nt.arr.Float64s()
		for i := 0; i < n; i++ {
			d[i*n+i] = 1
		}
	case tensor.Float32:
		d := nt.arr.Float32s()
		for i := 0; i < n; i++ {
			d[i*n+i] = 1
		}
	case tensor.Int64:
		d := nt.arr.Int64s()
		for i := 0; i < n; i++ {
			d[i*n+i] = 1
		}
	case tensor.Int32:
		d := nt.arr.Int32s()
		for i := 0; i < n; i++ {
			d[i*n+i] = 1
		}
	default:
		return nil, fmt.Errorf("%w: eye is not defined for dtype %s", tensor.ErrDTypeMismatch, nt.DType())
	}
	return nt, nil
}

// Arange creates a 1-D tensor of values start, start+step, ... below stop.
func (e *Engine) Arange(start, stop, step float64, opts ...engine.Option) (tensor.Tensor, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: arange step must be non-zero", tensor.ErrUnsupportedConfiguration)
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: empty arange [%g, %g) with step %g", tensor.ErrShapeMismatch, start, stop, step)
	}
	t, err := e.Zeros(tensor.Shape{n}, opts...)
	if err != nil {
		return nil, err
	}
	nt := t.(*Tensor)
	switch nt.DType() {
	case tensor.Float64:
		d := nt.arr.Float64s()
		for i := range d {
			d[i] = start + float64(i)*step
		}
	case tensor.Float32:
		d := nt.arr.Float32s()
		for i := range d {
			d[i] = float32(start + float64(i)*step)
		}
	case tensor.Int64:
		d := nt.arr.Int64s()
		for i := range d {
			d[i] = int64(start + float64(i)*step)
		}
	case tensor.Int32:
		d := nt.arr.Int32s()
		for i := range d {
			d[i] = int32(start + float64(i)*step)
		}
	default:
		return nil, fmt.Errorf("%w: arange is not defined for dtype %s", tensor.ErrDTypeMismatch, nt.DType())
	}
	return nt, nil
}

// Linspace creates num evenly spaced values over [start, stop], inclusive.
func (e *Engine) Linspace(start, stop float64, num int, opts ...engine.Option) (tensor.Tensor, error) {
	if num < 1 {
		return nil, fmt.Errorf("%w: linspace needs at least 1 sample, got %d", tensor.ErrShapeMismatch, num)
	}
	t, err := e.Zeros(tensor.Shape{num}, opts...)
	if err != nil {
		return nil, err
	}
	nt := t.(*Tensor)
	if nt.DType() != tensor.Float64 && nt.DType() != tensor.Float32 {
		return nil, fmt.Errorf("%w: linspace is not defined for dtype %s", tensor.ErrDTypeMismatch, nt.DType())
	}
	step := 0.0
	if num > 1 {
		step = (stop - start) / float64(num-1)
	}
	if nt.DType() == tensor.Float64 {
		d := nt.arr.Float64s()
		for i := range d {
			d[i] = start + float64(i)*step
		}
	} else {
		d := nt.arr.Float32s()
		for i := range d {
			d[i] = float32(start + float64(i)*step)
		}
	}
	return nt, nil
}

// FromHost copies a host array into a native tensor. The round trip through
// ToHost is loss-free for every dtype.
func (e *Engine) FromHost(a *tensor.Array, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	return wrap(a.Clone()), nil
}

// ToHost copies a native tensor out to a host array.
func (e *Engine) ToHost(t tensor.Tensor) (*tensor.Array, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	return nt.arr.Clone(), nil
}

// DeviceType reports the device kind without touching data.
func (e *Engine) DeviceType(t tensor.Tensor) (string, error) {
	if _, err := asNative(t); err != nil {
		return "", err
	}
	return string(tensor.CPU), nil
}

// DeviceIndex reports the device ordinal without touching data.
func (e *Engine) DeviceIndex(t tensor.Tensor) (int, error) {
	if _, err := asNative(t); err != nil {
		return 0, err
	}
	return 0, nil
}

// Cast converts a tensor to another dtype, copying.
func (e *Engine) Cast(t tensor.Tensor, dtype tensor.DataType) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	if nt.DType() == dtype {
		return wrap(nt.arr.Clone()), nil
	}
	out, err := tensor.NewArray(dtype, nt.Shape())
	if err != nil {
		return nil, err
	}
	if dtype == tensor.Bool || nt.DType() == tensor.Bool {
		return nil, fmt.Errorf("%w: cannot cast between %s and %s", tensor.ErrDTypeMismatch, nt.DType(), dtype)
	}
	src, err := nt.arr.AsFloat64s()
	if err != nil {
		return nil, err
	}
	switch dtype {
	case tensor.Float64:
		copy(out.Float64s(), src)
	case tensor.Float32:
		d := out.Float32s()
		for i, v := range src {
			d[i] = float32(v)
		}
	case tensor.Int64:
		d := out.Int64s()
		for i, v := range src {
			d[i] = int64(v)
		}
	case tensor.Int32:
		d := out.Int32s()
		for i, v := range src {
			d[i] = int32(v)
		}
	}
	return wrap(out), nil
}
