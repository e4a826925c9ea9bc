package gorgonia

import (
	"fmt"

	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/basis-fem/basis/tensor"
)

// scalarOf converts a float64 into the scalar type the tensor package
// expects for the operand dtype.
func scalarOf(dt tensor.DataType, v float64) interface{} {
	switch dt {
	case tensor.Float32:
		return float32(v)
	case tensor.Int64:
		return int64(v)
	case tensor.Int32:
		return int32(v)
	default:
		return v
	}
}

func (e *Engine) binary(a, b tensor.Tensor, name string,
	gtOp func(x, y gt.Tensor) (gt.Tensor, error),
	hostOp func(x, y tensor.Tensor) (tensor.Tensor, error)) (tensor.Tensor, error) {
	ga, err := asGorgonia(a)
	if err != nil {
		return nil, err
	}
	gb, err := asGorgonia(b)
	if err != nil {
		return nil, err
	}
	if ga.DType() != gb.DType() {
		return nil, fmt.Errorf("%w: %s operands have dtypes %s and %s", tensor.ErrDTypeMismatch, name, ga.DType(), gb.DType())
	}
	if !ga.Shape().Equal(gb.Shape()) {
		// The tensor package has no NumPy broadcasting; mismatched
		// shapes take the host path.
		return e.fallback2(a, b, hostOp)
	}
	out, err := gtOp(ga.d, gb.d)
	if err != nil {
		return nil, errors.Wrapf(err, "gorgonia %s", name)
	}
	return wrapDense(out.(*gt.Dense)), nil
}

// Add performs broadcasting element-wise addition.
func (e *Engine) Add(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "add",
		func(x, y gt.Tensor) (gt.Tensor, error) { return gt.Add(x, y) },
		e.host.Add)
}

// Sub performs broadcasting element-wise subtraction.
func (e *Engine) Sub(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "sub",
		func(x, y gt.Tensor) (gt.Tensor, error) { return gt.Sub(x, y) },
		e.host.Sub)
}

// Mul performs broadcasting element-wise multiplication.
func (e *Engine) Mul(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "mul",
		func(x, y gt.Tensor) (gt.Tensor, error) { return gt.Mul(x, y) },
		e.host.Mul)
}

// Div performs broadcasting element-wise division. Integer tensors are
// rejected; they carry indices, not arithmetic values.
func (e *Engine) Div(a, b tensor.Tensor) (tensor.Tensor, error) {
	ga, err := asGorgonia(a)
	if err != nil {
		return nil, err
	}
	if ga.DType().IsInt() {
		return nil, fmt.Errorf("%w: div is not defined for integer tensors", tensor.ErrDTypeMismatch)
	}
	return e.binary(a, b, "div",
		func(x, y gt.Tensor) (gt.Tensor, error) { return gt.Div(x, y) },
		e.host.Div)
}

func (e *Engine) scalarOp(t tensor.Tensor, name string, floatOnly bool,
	gtOp func(x gt.Tensor, s interface{}) (gt.Tensor, error), v float64) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	dt := gg.DType()
	if floatOnly && !dt.IsFloat() {
		return nil, fmt.Errorf("%w: %s requires a floating tensor, got %s", tensor.ErrDTypeMismatch, name, dt)
	}
	if dt == tensor.Bool {
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, dt)
	}
	out, err := gtOp(gg.d, scalarOf(dt, v))
	if err != nil {
		return nil, errors.Wrapf(err, "gorgonia %s", name)
	}
	return wrapDense(out.(*gt.Dense)), nil
}

// Neg negates every element.
func (e *Engine) Neg(t tensor.Tensor) (tensor.Tensor, error) {
	return e.scalarOp(t, "neg", false,
		func(x gt.Tensor, s interface{}) (gt.Tensor, error) { return gt.Mul(x, s) }, -1)
}

// Abs takes the absolute value of every element through the host path.
func (e *Engine) Abs(t tensor.Tensor) (tensor.Tensor, error) {
	return e.fallback1(t, e.host.Abs)
}

// Sqrt takes the square root of every element.
func (e *Engine) Sqrt(t tensor.Tensor) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	if !gg.DType().IsFloat() {
		return nil, fmt.Errorf("%w: sqrt requires a floating tensor, got %s", tensor.ErrDTypeMismatch, gg.DType())
	}
	out, err := gt.Sqrt(gg.d)
	if err != nil {
		return nil, errors.Wrap(err, "gorgonia sqrt")
	}
	return wrapDense(out.(*gt.Dense)), nil
}

// Scale multiplies every element by s.
func (e *Engine) Scale(t tensor.Tensor, s float64) (tensor.Tensor, error) {
	return e.scalarOp(t, "scale", true,
		func(x gt.Tensor, sc interface{}) (gt.Tensor, error) { return gt.Mul(x, sc) }, s)
}

// Shift adds s to every element.
func (e *Engine) Shift(t tensor.Tensor, s float64) (tensor.Tensor, error) {
	return e.scalarOp(t, "shift", true,
		func(x gt.Tensor, sc interface{}) (gt.Tensor, error) { return gt.Add(x, sc) }, s)
}

// Pow raises every element to the power p through the host path.
func (e *Engine) Pow(t tensor.Tensor, p float64) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.Pow(x, p)
	})
}
