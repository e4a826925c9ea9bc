package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/internal/arrayops"
	"github.com/basis-fem/basis/tensor"
)

// rowView rotates the reduction axis to the end so each reduced group is a
// contiguous row the gonum slice routines can consume directly.
func rowView(arr *tensor.Array, axis int) (*tensor.Array, []int, int, tensor.Shape, error) {
	shape := arr.Shape()
	ndim := len(shape)
	if axis == engine.AllAxes {
		flat, err := arrayops.Reshape(arr, tensor.Shape{arr.NumElements()})
		if err != nil {
			return nil, nil, 0, nil, err
		}
		return flat, nil, arr.NumElements(), tensor.Shape{}, nil
	}
	ax, err := tensor.NormAxis(axis, ndim)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	perm := make([]int, 0, ndim)
	for i := 0; i < ndim; i++ {
		if i != ax {
			perm = append(perm, i)
		}
	}
	perm = append(perm, ax)
	rot, err := arrayops.Transpose(arr, perm...)
	if err != nil {
		return nil, nil, 0, nil, err
	}
	kept := shape[:ax].Clone()
	kept = append(kept, shape[ax+1:]...)
	return rot, perm, shape[ax], kept, nil
}

func withKeepdims(shape tensor.Shape, full tensor.Shape, axis int, keepdims bool) tensor.Shape {
	if !keepdims {
		return shape
	}
	out := make(tensor.Shape, len(full))
	for i := range out {
		out[i] = 1
	}
	if axis == engine.AllAxes {
		return out
	}
	ax, _ := tensor.NormAxis(axis, len(full))
	copy(out, full[:ax])
	copy(out[ax+1:], full[ax+1:])
	out[ax] = 1
	return out
}

func (e *Engine) reduce(t tensor.Tensor, axis int, keepdims bool, name string,
	rowF func([]float64) float64, intF func([]int64) int64) (tensor.Tensor, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	rot, _, n, kept, err := rowView(gt.arr, axis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s over an empty axis", tensor.ErrShapeMismatch, name)
	}
	outShape := withKeepdims(kept, gt.Shape(), axis, keepdims)
	count := rot.NumElements() / n
	switch gt.DType() {
	case tensor.Float64:
		src := rot.Float64s()
		out := make([]float64, count)
		for r := range out {
			out[r] = rowF(src[r*n : (r+1)*n])
		}
		return wrapFloat64s(out, outShape)
	case tensor.Int64:
		if intF == nil {
			return nil, fmt.Errorf("%w: %s requires a floating tensor, got %s", tensor.ErrDTypeMismatch, name, gt.DType())
		}
		src := rot.Int64s()
		out := make([]int64, count)
		for r := range out {
			out[r] = intF(src[r*n : (r+1)*n])
		}
		return wrapInt64s(out, outShape)
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, gt.DType())
	}
}

// Sum reduces by addition along axis, or over everything for AllAxes.
func (e *Engine) Sum(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "sum", floats.Sum, func(row []int64) int64 {
		var acc int64
		for _, v := range row {
			acc += v
		}
		return acc
	})
}

// Prod reduces by multiplication along axis.
func (e *Engine) Prod(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "prod", floats.Prod, func(row []int64) int64 {
		acc := int64(1)
		for _, v := range row {
			acc *= v
		}
		return acc
	})
}

// Mean reduces by arithmetic mean along axis. Floating tensors only.
func (e *Engine) Mean(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "mean", func(row []float64) float64 {
		return stat.Mean(row, nil)
	}, nil)
}

// Max reduces to the largest element along axis.
func (e *Engine) Max(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "max", floats.Max, func(row []int64) int64 {
		acc := row[0]
		for _, v := range row[1:] {
			acc = max(acc, v)
		}
		return acc
	})
}

// Min reduces to the smallest element along axis.
func (e *Engine) Min(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduce(t, axis, keepdims, "min", floats.Min, func(row []int64) int64 {
		acc := row[0]
		for _, v := range row[1:] {
			acc = min(acc, v)
		}
		return acc
	})
}

func invertPerm(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}

func (e *Engine) cumulative(t tensor.Tensor, axis int, name string,
	rowF func(dst, src []float64), intF func(dst, src []int64)) (tensor.Tensor, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	if axis == engine.AllAxes {
		return nil, fmt.Errorf("%w: %s needs a concrete axis", tensor.ErrUnsupportedConfiguration, name)
	}
	rot, perm, n, kept, err := rowView(gt.arr, axis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if n == 0 {
		return wrap(gt.arr.Clone()), nil
	}
	count := rot.NumElements() / n
	rotShape := append(kept.Clone(), n)
	var cum *tensor.Array
	switch gt.DType() {
	case tensor.Float64:
		src := rot.Float64s()
		out := make([]float64, len(src))
		for r := 0; r < count; r++ {
			rowF(out[r*n:(r+1)*n], src[r*n:(r+1)*n])
		}
		cum, err = tensor.FromFloat64s(out, rotShape)
	case tensor.Int64:
		src := rot.Int64s()
		out := make([]int64, len(src))
		for r := 0; r < count; r++ {
			intF(out[r*n:(r+1)*n], src[r*n:(r+1)*n])
		}
		cum, err = tensor.FromInt64s(out, rotShape)
	default:
		return nil, fmt.Errorf("%w: %s is not defined for dtype %s", tensor.ErrDTypeMismatch, name, gt.DType())
	}
	if err != nil {
		return nil, err
	}
	back, err := arrayops.Transpose(cum, invertPerm(perm)...)
	if err != nil {
		return nil, err
	}
	return wrap(back), nil
}

// CumSum computes the running sum along axis.
func (e *Engine) CumSum(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.cumulative(t, axis, "cumsum",
		func(dst, src []float64) { floats.CumSum(dst, src) },
		func(dst, src []int64) {
			var acc int64
			for i, v := range src {
				acc += v
				dst[i] = acc
			}
		})
}

// CumProd computes the running product along axis.
func (e *Engine) CumProd(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.cumulative(t, axis, "cumprod",
		func(dst, src []float64) { floats.CumProd(dst, src) },
		func(dst, src []int64) {
			acc := int64(1)
			for i, v := range src {
				acc *= v
				dst[i] = acc
			}
		})
}

// ArgMax returns the index of the largest element along axis; ties go to
// the first occurrence.
func (e *Engine) ArgMax(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	if gt.DType() != tensor.Float64 {
		return nil, fmt.Errorf("%w: argmax is not defined for dtype %s", tensor.ErrDTypeMismatch, gt.DType())
	}
	rot, _, n, kept, err := rowView(gt.arr, axis)
	if err != nil {
		return nil, fmt.Errorf("argmax: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: argmax over an empty axis", tensor.ErrShapeMismatch)
	}
	src := rot.Float64s()
	count := rot.NumElements() / n
	out := make([]int64, count)
	for r := range out {
		out[r] = int64(floats.MaxIdx(src[r*n : (r+1)*n]))
	}
	return wrapInt64s(out, kept)
}
