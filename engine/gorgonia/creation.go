package gorgonia

import (
	gt "gorgonia.org/tensor"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

func creationOpts(opts []engine.Option) (gt.Dtype, tensor.DataType, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return gt.Dtype{}, 0, err
	}
	gdt, err := toGtDtype(o.DType)
	if err != nil {
		return gt.Dtype{}, 0, err
	}
	return gdt, o.DType, nil
}

// Zeros creates a zero-filled tensor.
func (e *Engine) Zeros(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	gdt, dt, err := creationOpts(opts)
	if err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(shape) == 0 {
		a, err := tensor.NewArray(dt, shape)
		if err != nil {
			return nil, err
		}
		return fromHostArray(a)
	}
	return wrapDense(gt.New(gt.Of(gdt), gt.WithShape(shape...))), nil
}

// Empty creates an uninitialized tensor; dense values are zeroed.
func (e *Engine) Empty(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return e.Zeros(shape, opts...)
}

// Ones creates a one-filled tensor.
func (e *Engine) Ones(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	gdt, _, err := creationOpts(opts)
	if err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return wrapDense(gt.Ones(gdt, shape...)), nil
}

// Full creates a tensor filled with value, converted to the requested
// dtype on the host before wrapping.
func (e *Engine) Full(shape tensor.Shape, value float64, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	t, err := e.host.Full(shape, value, engine.WithDType(o.DType))
	if err != nil {
		return nil, err
	}
	return e.fromNative(t)
}

// Eye creates the n×n identity matrix.
func (e *Engine) Eye(n int, opts ...engine.Option) (tensor.Tensor, error) {
	gdt, _, err := creationOpts(opts)
	if err != nil {
		return nil, err
	}
	return wrapDense(gt.I(gdt, n, n, 0)), nil
}

// Arange creates a 1-D tensor of values start, start+step, ... below stop.
func (e *Engine) Arange(start, stop, step float64, opts ...engine.Option) (tensor.Tensor, error) {
	t, err := e.host.Arange(start, stop, step, opts...)
	if err != nil {
		return nil, err
	}
	return e.fromNative(t)
}

// Linspace creates num evenly spaced values over [start, stop], inclusive.
func (e *Engine) Linspace(start, stop float64, num int, opts ...engine.Option) (tensor.Tensor, error) {
	t, err := e.host.Linspace(start, stop, num, opts...)
	if err != nil {
		return nil, err
	}
	return e.fromNative(t)
}

// FromHost copies a host array into a dense value.
func (e *Engine) FromHost(a *tensor.Array, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	return fromHostArray(a)
}

// ToHost copies a dense value out to a host array.
func (e *Engine) ToHost(t tensor.Tensor) (*tensor.Array, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	return toHostArray(gg)
}

// DeviceType reports the device kind without touching data.
func (e *Engine) DeviceType(t tensor.Tensor) (string, error) {
	if _, err := asGorgonia(t); err != nil {
		return "", err
	}
	return string(tensor.CPU), nil
}

// DeviceIndex reports the device ordinal; the host is always 0.
func (e *Engine) DeviceIndex(t tensor.Tensor) (int, error) {
	if _, err := asGorgonia(t); err != nil {
		return 0, err
	}
	return 0, nil
}

// Cast converts the element type through the host path.
func (e *Engine) Cast(t tensor.Tensor, dtype tensor.DataType) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.Cast(x, dtype)
	})
}
