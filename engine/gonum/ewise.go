package gonum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/basis-fem/basis/tensor"
)

// srcOffset maps a flat index of the broadcast output shape back to the
// flat offset within a (possibly smaller) source shape.
func srcOffset(flat int, outShape, srcShape tensor.Shape, srcStrides []int) int {
	off := 0
	rem := flat
	d0 := len(outShape) - len(srcShape)
	for i := len(outShape) - 1; i >= 0; i-- {
		c := rem % outShape[i]
		rem /= outShape[i]
		if j := i - d0; j >= 0 && srcShape[j] != 1 {
			off += c * srcStrides[j]
		}
	}
	return off
}

// binary dispatches an elementwise operation: equal float64 shapes go
// through the vectorized floats routines, everything else through the
// broadcasting scalar path.
func (e *Engine) binary(a, b tensor.Tensor, name string,
	vec func(dst, s, t []float64),
	ff func(x, y float64) float64, fi func(x, y int64) int64) (tensor.Tensor, error) {
	ga, err := asGonum(a)
	if err != nil {
		return nil, err
	}
	gb, err := asGonum(b)
	if err != nil {
		return nil, err
	}
	if ga.DType() != gb.DType() {
		return nil, fmt.Errorf("%w: %s operands have dtypes %s and %s", tensor.ErrDTypeMismatch, name, ga.DType(), gb.DType())
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(ga.Shape(), gb.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	same := !needsBroadcast && ga.Shape().Equal(gb.Shape())
	out, err := tensor.NewArray(ga.DType(), outShape)
	if err != nil {
		return nil, err
	}
	switch ga.DType() {
	case tensor.Float64:
		ad, bd := ga.arr.Float64s(), gb.arr.Float64s()
		if same {
			vec(out.Float64s(), ad, bd)
			break
		}
		as, bs := ga.Shape().Strides(), gb.Shape().Strides()
		d := out.Float64s()
		for i := range d {
			d[i] = ff(ad[srcOffset(i, outShape, ga.Shape(), as)], bd[srcOffset(i, outShape, gb.Shape(), bs)])
		}
	case tensor.Int64:
		if fi == nil {
			return nil, fmt.Errorf("%w: %s is not defined for integer tensors", tensor.ErrDTypeMismatch, name)
		}
		ad, bd := ga.arr.Int64s(), gb.arr.Int64s()
		as, bs := ga.Shape().Strides(), gb.Shape().Strides()
		d := out.Int64s()
		if same {
			for i := range d {
				d[i] = fi(ad[i], bd[i])
			}
			break
		}
		for i := range d {
			d[i] = fi(ad[srcOffset(i, outShape, ga.Shape(), as)], bd[srcOffset(i, outShape, gb.Shape(), bs)])
		}
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, ga.DType())
	}
	return wrap(out), nil
}

// Add performs broadcasting element-wise addition.
func (e *Engine) Add(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "add",
		func(dst, s, t []float64) { floats.AddTo(dst, s, t) },
		func(x, y float64) float64 { return x + y },
		func(x, y int64) int64 { return x + y })
}

// Sub performs broadcasting element-wise subtraction.
func (e *Engine) Sub(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "sub",
		func(dst, s, t []float64) { floats.SubTo(dst, s, t) },
		func(x, y float64) float64 { return x - y },
		func(x, y int64) int64 { return x - y })
}

// Mul performs broadcasting element-wise multiplication.
func (e *Engine) Mul(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "mul",
		func(dst, s, t []float64) { floats.MulTo(dst, s, t) },
		func(x, y float64) float64 { return x * y },
		func(x, y int64) int64 { return x * y })
}

// Div performs broadcasting element-wise division. Integer tensors are
// rejected; they carry indices, not arithmetic values.
func (e *Engine) Div(a, b tensor.Tensor) (tensor.Tensor, error) {
	return e.binary(a, b, "div",
		func(dst, s, t []float64) { floats.DivTo(dst, s, t) },
		func(x, y float64) float64 { return x / y },
		nil)
}

func (e *Engine) unaryNumeric(t tensor.Tensor, name string,
	vec func(dst, s []float64), f func(float64) float64) (tensor.Tensor, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewArray(gt.DType(), gt.Shape())
	if err != nil {
		return nil, err
	}
	switch gt.DType() {
	case tensor.Float64:
		if vec != nil {
			vec(out.Float64s(), gt.arr.Float64s())
			break
		}
		d := out.Float64s()
		for i, v := range gt.arr.Float64s() {
			d[i] = f(v)
		}
	case tensor.Int64:
		d := out.Int64s()
		for i, v := range gt.arr.Int64s() {
			d[i] = int64(f(float64(v)))
		}
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, gt.DType())
	}
	return wrap(out), nil
}

func (e *Engine) unaryFloat(t tensor.Tensor, name string,
	vec func(dst, s []float64), f func(float64) float64) (tensor.Tensor, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	if !gt.DType().IsFloat() {
		return nil, fmt.Errorf("%w: %s requires a floating tensor, got %s", tensor.ErrDTypeMismatch, name, gt.DType())
	}
	return e.unaryNumeric(t, name, vec, f)
}

// Neg negates every element.
func (e *Engine) Neg(t tensor.Tensor) (tensor.Tensor, error) {
	return e.unaryNumeric(t, "neg",
		func(dst, s []float64) { floats.ScaleTo(dst, -1, s) },
		func(v float64) float64 { return -v })
}

// Abs takes the absolute value of every element.
func (e *Engine) Abs(t tensor.Tensor) (tensor.Tensor, error) {
	return e.unaryNumeric(t, "abs", nil, math.Abs)
}

// Sqrt takes the square root of every element.
func (e *Engine) Sqrt(t tensor.Tensor) (tensor.Tensor, error) {
	return e.unaryFloat(t, "sqrt", nil, math.Sqrt)
}

// Scale multiplies every element by s.
func (e *Engine) Scale(t tensor.Tensor, s float64) (tensor.Tensor, error) {
	return e.unaryFloat(t, "scale",
		func(dst, src []float64) { floats.ScaleTo(dst, s, src) },
		func(v float64) float64 { return v * s })
}

// Shift adds s to every element.
func (e *Engine) Shift(t tensor.Tensor, s float64) (tensor.Tensor, error) {
	return e.unaryFloat(t, "shift",
		func(dst, src []float64) {
			copy(dst, src)
			floats.AddConst(s, dst)
		},
		func(v float64) float64 { return v + s })
}

// Pow raises every element to the power p.
func (e *Engine) Pow(t tensor.Tensor, p float64) (tensor.Tensor, error) {
	return e.unaryFloat(t, "pow", nil, func(v float64) float64 { return math.Pow(v, p) })
}
