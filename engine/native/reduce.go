package native

import (
	"fmt"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

// reducePlan describes one reduction: the loop bounds around the reduced
// axis, and the output shape with or without the kept axis.
type reducePlan struct {
	outer, mid, inner int
	outShape          tensor.Shape
}

func planReduce(shape tensor.Shape, axis int, keepdims bool) (reducePlan, error) {
	if axis == engine.AllAxes {
		out := tensor.Shape{}
		if keepdims {
			out = make(tensor.Shape, len(shape))
			for i := range out {
				out[i] = 1
			}
		}
		return reducePlan{outer: 1, mid: shape.NumElements(), inner: 1, outShape: out}, nil
	}
	a, err := tensor.NormAxis(axis, len(shape))
	if err != nil {
		return reducePlan{}, err
	}
	p := reducePlan{outer: 1, mid: shape[a], inner: 1}
	for _, d := range shape[:a] {
		p.outer *= d
	}
	for _, d := range shape[a+1:] {
		p.inner *= d
	}
	if keepdims {
		p.outShape = shape.Clone()
		p.outShape[a] = 1
	} else {
		p.outShape = append(shape[:a].Clone(), shape[a+1:]...)
	}
	return p, nil
}

func reduceLoop[T number](out, in []T, p reducePlan, op func(T, T) T) {
	for o := 0; o < p.outer; o++ {
		for i := 0; i < p.inner; i++ {
			acc := in[o*p.mid*p.inner+i]
			for m := 1; m < p.mid; m++ {
				acc = op(acc, in[(o*p.mid+m)*p.inner+i])
			}
			out[o*p.inner+i] = acc
		}
	}
}

func (e *Engine) reduce(t tensor.Tensor, axis int, keepdims bool, name string,
	f64 func(float64, float64) float64, i64 func(int64, int64) int64) (tensor.Tensor, error) {

	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	p, err := planReduce(nt.Shape(), axis, keepdims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := tensor.NewArray(nt.DType(), p.outShape)
	if err != nil {
		return nil, err
	}
	switch nt.DType() {
	case tensor.Float64:
		reduceLoop(out.Float64s(), nt.arr.Float64s(), p, f64)
	case tensor.Float32:
		reduceLoop(out.Float32s(), nt.arr.Float32s(), p, func(a, b float32) float32 { return float32(f64(float64(a), float64(b))) })
	case tensor.Int64:
		reduceLoop(out.Int64s(), nt.arr.Int64s(), p, i64)
	case tensor.Int32:
		reduceLoop(out.Int32s(), nt.arr.Int32s(), p, func(a, b int32) int32 { return int32(i64(int64(a), int64(b))) })
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, nt.DType())
	}
	return wrap(out), nil
}

// Sum reduces by addition along axis (engine.AllAxes for a full reduction).
func (e *Engine) Sum(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "sum",
		func(a, b float64) float64 { return a + b },
		func(a, b int64) int64 { return a + b })
}

// Prod reduces by multiplication along axis.
func (e *Engine) Prod(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "prod",
		func(a, b float64) float64 { return a * b },
		func(a, b int64) int64 { return a * b })
}

// Max reduces by maximum along axis.
func (e *Engine) Max(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "max",
		func(a, b float64) float64 { return max(a, b) },
		func(a, b int64) int64 { return max(a, b) })
}

// Min reduces by minimum along axis.
func (e *Engine) Min(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "min",
		func(a, b float64) float64 { return min(a, b) },
		func(a, b int64) int64 { return min(a, b) })
}

// Mean reduces by arithmetic mean along axis; floating tensors only.
func (e *Engine) Mean(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	if !nt.DType().IsFloat() {
		return nil, fmt.Errorf("%w: mean requires a floating tensor, got %s", tensor.ErrDTypeMismatch, nt.DType())
	}
	p, err := planReduce(nt.Shape(), axis, keepdims)
	if err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	s, err := e.Sum(t, axis, keepdims)
	if err != nil {
		return nil, err
	}
	return e.Scale(s, 1/float64(p.mid))
}

func cumLoop[T number](out, in []T, p reducePlan, op func(T, T) T) {
	for o := 0; o < p.outer; o++ {
		for i := 0; i < p.inner; i++ {
			acc := in[o*p.mid*p.inner+i]
			out[o*p.mid*p.inner+i] = acc
			for m := 1; m < p.mid; m++ {
				idx := (o*p.mid+m)*p.inner + i
				acc = op(acc, in[idx])
				out[idx] = acc
			}
		}
	}
}

func (e *Engine) cumulative(t tensor.Tensor, axis int, name string,
	f64 func(float64, float64) float64, i64 func(int64, int64) int64) (tensor.Tensor, error) {

	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	if axis == engine.AllAxes {
		return nil, fmt.Errorf("%w: %s needs an explicit axis", tensor.ErrUnsupportedConfiguration, name)
	}
	p, err := planReduce(nt.Shape(), axis, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	out, err := tensor.NewArray(nt.DType(), nt.Shape())
	if err != nil {
		return nil, err
	}
	switch nt.DType() {
	case tensor.Float64:
		cumLoop(out.Float64s(), nt.arr.Float64s(), p, f64)
	case tensor.Float32:
		cumLoop(out.Float32s(), nt.arr.Float32s(), p, func(a, b float32) float32 { return float32(f64(float64(a), float64(b))) })
	case tensor.Int64:
		cumLoop(out.Int64s(), nt.arr.Int64s(), p, i64)
	case tensor.Int32:
		cumLoop(out.Int32s(), nt.arr.Int32s(), p, func(a, b int32) int32 { return int32(i64(int64(a), int64(b))) })
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, nt.DType())
	}
	return wrap(out), nil
}

// CumSum accumulates sums along axis.
func (e *Engine) CumSum(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.cumulative(t, axis, "cumsum",
		func(a, b float64) float64 { return a + b },
		func(a, b int64) int64 { return a + b })
}

// CumProd accumulates products along axis.
func (e *Engine) CumProd(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.cumulative(t, axis, "cumprod",
		func(a, b float64) float64 { return a * b },
		func(a, b int64) int64 { return a * b })
}

// ArgMax returns the index of the largest element along axis as an int64
// tensor. Ties resolve to the first occurrence.
func (e *Engine) ArgMax(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	p, err := planReduce(nt.Shape(), axis, false)
	if err != nil {
		return nil, fmt.Errorf("argmax: %w", err)
	}
	data, err := nt.arr.AsFloat64s()
	if err != nil {
		return nil, fmt.Errorf("argmax: %w", err)
	}
	out := make([]int64, p.outer*p.inner)
	for o := 0; o < p.outer; o++ {
		for i := 0; i < p.inner; i++ {
			best := data[o*p.mid*p.inner+i]
			bestIdx := int64(0)
			for m := 1; m < p.mid; m++ {
				if v := data[(o*p.mid+m)*p.inner+i]; v > best {
					best = v
					bestIdx = int64(m)
				}
			}
			out[o*p.inner+i] = bestIdx
		}
	}
	return wrapInt64s(out, p.outShape)
}
