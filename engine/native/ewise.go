package native

import (
	"fmt"
	"math"

	"github.com/basis-fem/basis/internal/parallel"
	"github.com/basis-fem/basis/tensor"
)

type number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

type binKind int

const (
	binAdd binKind = iota
	binSub
	binMul
	binDiv
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

func binLoop[T number](kind binKind, cfg parallel.Config, out, a, b []T, outShape, aShape, bShape tensor.Shape, same bool) {
	if same {
		switch kind {
		case binAdd:
			parallel.Ranges(len(out), func(lo, hi int) {
				for i := lo; i < hi; i++ {
					out[i] = a[i] + b[i]
				}
			}, cfg)
		case binSub:
			parallel.Ranges(len(out), func(lo, hi int) {
				for i := lo; i < hi; i++ {
					out[i] = a[i] - b[i]
				}
			}, cfg)
		case binMul:
			parallel.Ranges(len(out), func(lo, hi int) {
				for i := lo; i < hi; i++ {
					out[i] = a[i] * b[i]
				}
			}, cfg)
		case binDiv:
			parallel.Ranges(len(out), func(lo, hi int) {
				for i := lo; i < hi; i++ {
					out[i] = a[i] / b[i]
				}
			}, cfg)
		}
		return
	}

	as, bs := aShape.Strides(), bShape.Strides()
	parallel.Ranges(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			x := a[srcOffset(i, outShape, aShape, as)]
			y := b[srcOffset(i, outShape, bShape, bs)]
			switch kind {
			case binAdd:
				out[i] = x + y
			case binSub:
				out[i] = x - y
			case binMul:
				out[i] = x * y
			case binDiv:
				out[i] = x / y
			}
		}
	}, cfg)
}

func (e *Engine) binary(a, b tensor.Tensor, name string, kind binKind) (tensor.Tensor, error) {
	na, err := asNative(a)
	if err != nil {
		return nil, err
	}
	nb, err := asNative(b)
	if err != nil {
		return nil, err
	}
	if na.DType() != nb.DType() {
		return nil, fmt.Errorf("%w: %s operands have dtypes %s and %s", tensor.ErrDTypeMismatch, name, na.DType(), nb.DType())
	}
	outShape, needsBroadcast, err := tensor.BroadcastShapes(na.Shape(), nb.Shape())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	same := !needsBroadcast && na.Shape().Equal(nb.Shape())
	out, err := tensor.NewArray(na.DType(), outShape)
	if err != nil {
		return nil, err
	}
	switch na.DType() {
	case tensor.Float64:
		binLoop(kind, e.cfg, out.Float64s(), na.arr.Float64s(), nb.arr.Float64s(), outShape, na.Shape(), nb.Shape(), same)
	case tensor.Float32:
		binLoop(kind, e.cfg, out.Float32s(), na.arr.Float32s(), nb.arr.Float32s(), outShape, na.Shape(), nb.Shape(), same)
	case tensor.Int64:
		if kind == binDiv {
			return nil, fmt.Errorf("%w: %s is not defined for integer tensors", tensor.ErrDTypeMismatch, name)
		}
		binLoop(kind, e.cfg, out.Int64s(), na.arr.Int64s(), nb.arr.Int64s(), outShape, na.Shape(), nb.Shape(), same)
	case tensor.Int32:
		if kind == binDiv {
			return nil, fmt.Errorf("%w: %s is not defined for integer tensors", tensor.ErrDTypeMismatch, name)
		}
		binLoop(kind, e.cfg, out.Int32s(), na.arr.Int32s(), nb.arr.Int32s(), outShape, na.Shape(), nb.Shape(), same)
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, na.DType())
	}
	return wrap(out), nil
}

// Add performs broadcasting element-wise addition.
func (e *Engine) Add(a, b tensor.Tensor) (tensor.Tensor, error) { return e.binary(a, b, "add", binAdd) }

// Sub performs broadcasting element-wise subtraction.
func (e *Engine) Sub(a, b tensor.Tensor) (tensor.Tensor, error) { return e.binary(a, b, "sub", binSub) }

// Mul performs broadcasting element-wise multiplication.
func (e *Engine) Mul(a, b tensor.Tensor) (tensor.Tensor, error) { return e.binary(a, b, "mul", binMul) }

// Div performs broadcasting element-wise division. Integer tensors are
// rejected; they carry indices, not arithmetic values.
func (e *Engine) Div(a, b tensor.Tensor) (tensor.Tensor, error) { return e.binary(a, b, "div", binDiv) }

func unaryLoop[T number](out, in []T, op func(T) T) {
	for i, v := range in {
		out[i] = op(v)
	}
}

func (e *Engine) unaryNumeric(t tensor.Tensor, name string, f func(float64) float64) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewArray(nt.DType(), nt.Shape())
	if err != nil {
		return nil, err
	}
	switch nt.DType() {
	case tensor.Float64:
		unaryLoop(out.Float64s(), nt.arr.Float64s(), f)
	case tensor.Float32:
		unaryLoop(out.Float32s(), nt.arr.Float32s(), func(v float32) float32 { return float32(f(float64(v))) })
	case tensor.Int64:
		unaryLoop(out.Int64s(), nt.arr.Int64s(), func(v int64) int64 { return int64(f(float64(v))) })
	case tensor.Int32:
		unaryLoop(out.Int32s(), nt.arr.Int32s(), func(v int32) int32 { return int32(f(float64(v))) })
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, nt.DType())
	}
	return wrap(out), nil
}

func (e *Engine) unaryFloat(t tensor.Tensor, name string, f func(float64) float64) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	if !nt.DType().IsFloat() {
		return nil, fmt.Errorf("%w: %s requires a floating tensor, got %s", tensor.ErrDTypeMismatch, name, nt.DType())
	}
	return e.unaryNumeric(t, name, f)
}

// Neg negates every element.
func (e *Engine) Neg(t tensor.Tensor) (tensor.Tensor, error) {
	return e.unaryNumeric(t, "neg", func(v float64) float64 { return -v })
}

// Abs takes the absolute value of every element.
func (e *Engine) Abs(t tensor.Tensor) (tensor.Tensor, error) {
	return e.unaryNumeric(t, "abs", math.Abs)
}

// Sqrt takes the square root of every element.
func (e *Engine) Sqrt(t tensor.Tensor) (tensor.Tensor, error) {
	return e.unaryFloat(t, "sqrt", math.Sqrt)
}

// Scale multiplies every element by s.
func (e *Engine) Scale(t tensor.Tensor, s float64) (tensor.Tensor, error) {
	return e.unaryFloat(t, "scale", func(v float64) float64 { return v * s })
}

// Shift adds s to every element.
func (e *Engine) Shift(t tensor.Tensor, s float64) (tensor.Tensor, error) {
	return e.unaryFloat(t, "shift", func(v float64) float64 { return v + s })
}

// Pow raises every element to the power p.
func (e *Engine) Pow(t tensor.Tensor, p float64) (tensor.Tensor, error) {
	return e.unaryFloat(t, "pow", func(v float64) float64 { return math.Pow(v, p) })
}
