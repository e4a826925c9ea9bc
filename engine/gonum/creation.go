package gonum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

func (e *Engine) newArray(shape tensor.Shape, opts []engine.Option) (*tensor.Array, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	if err := checkDType(o.DType); err != nil {
		return nil, err
	}
	return tensor.NewArray(o.DType, shape)
}

// Zeros creates a zero-filled tensor.
func (e *Engine) Zeros(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	a, err := e.newArray(shape, opts)
	if err != nil {
		return nil, err
	}
	return wrap(a), nil
}

// Empty creates an uninitialized tensor; on the host that is Zeros.
func (e *Engine) Empty(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return e.Zeros(shape, opts...)
}

// Ones creates a one-filled tensor.
func (e *Engine) Ones(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return e.Full(shape, 1, opts...)
}

// Full creates a tensor filled with value, converted to the requested dtype.
func (e *Engine) Full(shape tensor.Shape, value float64, opts ...engine.Option) (tensor.Tensor, error) {
	a, err := e.newArray(shape, opts)
	if err != nil {
		return nil, err
	}
	switch a.DType() {
	case tensor.Float64:
		d := a.Float64s()
		for i := range d {
			d[i] = value
		}
	case tensor.Int64:
		d := a.Int64s()
		for i := range d {
			d[i] = int64(value)
		}
	default:
		d := a.Bools()
		for i := range d {
			d[i] = value != 0
		}
	}
	return wrap(a), nil
}

// Eye creates the n×n identity matrix.
func (e *Engine) Eye(n int, opts ...engine.Option) (tensor.Tensor, error) {
	a, err := e.newArray(tensor.Shape{n, n}, opts)
	if err != nil {
		return nil, err
	}
	switch a.DType() {
	case tensor.Float64:
		d := a.Float64s()
		for i := 0; i < n; i++ {
			d[i*n+i] = 1
		}
	case tensor.Int64:
		d := a.Int64s()
		for i := 0; i < n; i++ {
			d[i*n+i] = 1
		}
	default:
		return nil, fmt.Errorf("%w: eye is not defined for dtype %s", tensor.ErrDTypeMismatch, a.DType())
	}
	return wrap(a), nil
}

// Arange creates a 1-D tensor of values start, start+step, ... below stop.
func (e *Engine) Arange(start, stop, step float64, opts ...engine.Option) (tensor.Tensor, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: arange step must be non-zero", tensor.ErrUnsupportedConfiguration)
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil, fmt.Errorf("%w: empty arange [%g, %g) with step %g", tensor.ErrShapeMismatch, start, stop, step)
	}
	a, err := e.newArray(tensor.Shape{n}, opts)
	if err != nil {
		return nil, err
	}
	switch a.DType() {
	case tensor.Float64:
		d := a.Float64s()
		for i := range d {
			d[i] = start + float64(i)*step
		}
	case tensor.Int64:
		d := a.Int64s()
		for i := range d {
			d[i] = int64(start + float64(i)*step)
		}
	default:
		return nil, fmt.Errorf("%w: arange is not defined for dtype %s", tensor.ErrDTypeMismatch, a.DType())
	}
	return wrap(a), nil
}

// Linspace creates num evenly spaced values over [start, stop], inclusive.
func (e *Engine) Linspace(start, stop float64, num int, opts ...engine.Option) (tensor.Tensor, error) {
	if num < 1 {
		return nil, fmt.Errorf("%w: linspace needs at least 1 sample, got %d", tensor.ErrShapeMismatch, num)
	}
	a, err := e.newArray(tensor.Shape{num}, opts)
	if err != nil {
		return nil, err
	}
	if a.DType() != tensor.Float64 {
		return nil, fmt.Errorf("%w: linspace is not defined for dtype %s", tensor.ErrDTypeMismatch, a.DType())
	}
	d := a.Float64s()
	if num == 1 {
		d[0] = start
	} else {
		floats.Span(d, start, stop)
	}
	return wrap(a), nil
}

// FromHost copies a host array in, rejecting dtypes the engine cannot hold.
func (e *Engine) FromHost(a *tensor.Array, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	if err := checkDType(a.DType()); err != nil {
		return nil, err
	}
	return wrap(a.Clone()), nil
}

// ToHost copies a tensor out to a host array.
func (e *Engine) ToHost(t tensor.Tensor) (*tensor.Array, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	return gt.arr.Clone(), nil
}

// DeviceType reports the device kind without touching data.
func (e *Engine) DeviceType(t tensor.Tensor) (string, error) {
	if _, err := asGonum(t); err != nil {
		return "", err
	}
	return string(tensor.CPU), nil
}

// DeviceIndex reports the device ordinal; the host is always 0.
func (e *Engine) DeviceIndex(t tensor.Tensor) (int, error) {
	if _, err := asGonum(t); err != nil {
		return 0, err
	}
	return 0, nil
}

// Cast converts between the engine's numeric dtypes.
func (e *Engine) Cast(t tensor.Tensor, dtype tensor.DataType) (tensor.Tensor, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	if err := checkDType(dtype); err != nil {
		return nil, err
	}
	if gt.DType() == tensor.Bool || dtype == tensor.Bool {
		if gt.DType() == dtype {
			return wrap(gt.arr.Clone()), nil
		}
		return nil, fmt.Errorf("%w: cast between %s and %s is not defined", tensor.ErrDTypeMismatch, gt.DType(), dtype)
	}
	if gt.DType() == dtype {
		return wrap(gt.arr.Clone()), nil
	}
	out, err := tensor.NewArray(dtype, gt.Shape())
	if err != nil {
		return nil, err
	}
	if dtype == tensor.Float64 {
		src := gt.arr.Int64s()
		dst := out.Float64s()
		for i, v := range src {
			dst[i] = float64(v)
		}
	} else {
		src := gt.arr.Float64s()
		dst := out.Int64s()
		for i, v := range src {
			dst[i] = int64(v)
		}
	}
	return wrap(out), nil
}
