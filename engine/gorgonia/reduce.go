package gorgonia

import (
	"fmt"

	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

// keepdimsShape rebuilds the full-rank shape with the reduced axis pinned
// to one.
func keepdimsShape(full tensor.Shape, axis int) tensor.Shape {
	out := make(tensor.Shape, len(full))
	if axis == engine.AllAxes {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	ax, _ := tensor.NormAxis(axis, len(full))
	copy(out, full)
	out[ax] = 1
	return out
}

func (e *Engine) reduceDense(t tensor.Tensor, axis int, keepdims bool, name string,
	method func(d *gt.Dense, along ...int) (*gt.Dense, error)) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	shape := gg.Shape()
	var out *gt.Dense
	if axis == engine.AllAxes {
		out, err = method(gg.d)
	} else {
		var ax int
		ax, err = tensor.NormAxis(axis, len(shape))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out, err = method(gg.d, ax)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "gorgonia %s", name)
	}
	res := wrapDense(out)
	if !keepdims {
		return res, nil
	}
	return e.Reshape(res, keepdimsShape(shape, axis))
}

// Sum reduces by addition along axis, or over everything for AllAxes.
func (e *Engine) Sum(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduceDense(t, axis, keepdims, "sum",
		func(d *gt.Dense, along ...int) (*gt.Dense, error) { return d.Sum(along...) })
}

// Max reduces to the largest element along axis.
func (e *Engine) Max(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduceDense(t, axis, keepdims, "max",
		func(d *gt.Dense, along ...int) (*gt.Dense, error) { return d.Max(along...) })
}

// Min reduces to the smallest element along axis.
func (e *Engine) Min(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.reduceDense(t, axis, keepdims, "min",
		func(d *gt.Dense, along ...int) (*gt.Dense, error) { return d.Min(along...) })
}

// Prod reduces by multiplication along axis through the host path.
func (e *Engine) Prod(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.Prod(x, axis, keepdims)
	})
}

// Mean reduces by arithmetic mean along axis. Floating tensors only.
func (e *Engine) Mean(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.Mean(x, axis, keepdims)
	})
}

// CumSum computes the running sum along axis through the host path.
func (e *Engine) CumSum(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.CumSum(x, axis)
	})
}

// CumProd computes the running product along axis through the host path.
func (e *Engine) CumProd(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.CumProd(x, axis)
	})
}

// ArgMax returns the index of the largest element along axis; ties go to
// the first occurrence.
func (e *Engine) ArgMax(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	d := gg.d
	ax := axis
	if axis == engine.AllAxes {
		flat := d.Clone().(*gt.Dense)
		if err := flat.Reshape(flat.Len()); err != nil {
			return nil, errors.Wrap(err, "gorgonia argmax")
		}
		d, ax = flat, 0
	} else {
		ax, err = tensor.NormAxis(axis, gg.NDim())
		if err != nil {
			return nil, fmt.Errorf("argmax: %w", err)
		}
	}
	out, err := d.Argmax(ax)
	if err != nil {
		return nil, errors.Wrap(err, "gorgonia argmax")
	}
	// Argmax yields platform ints; rebuild as int64 so the result dtype
	// matches the other engines.
	arr, err := toHostArray(wrapDense(out))
	if err != nil {
		return nil, err
	}
	return fromHostArray(arr)
}
