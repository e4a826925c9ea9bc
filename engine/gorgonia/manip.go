package gorgonia

import (
	"fmt"

	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/basis-fem/basis/tensor"
)

// Reshape returns a fresh tensor with the same elements and a new shape.
func (e *Engine) Reshape(t tensor.Tensor, shape tensor.Shape) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != gg.Shape().NumElements() {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)",
			tensor.ErrShapeMismatch, gg.Shape(), gg.Shape().NumElements(), shape, shape.NumElements())
	}
	if len(shape) == 0 {
		return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
			return e.host.Reshape(x, shape)
		})
	}
	out := gg.d.Clone().(*gt.Dense)
	if err := out.Reshape(shape...); err != nil {
		return nil, errors.Wrap(err, "gorgonia reshape")
	}
	return wrapDense(out), nil
}

// Transpose permutes the dimensions; with no axes, reverses them.
func (e *Engine) Transpose(t tensor.Tensor, axes ...int) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	ndim := gg.NDim()
	norm := make([]int, len(axes))
	for i, ax := range axes {
		norm[i], err = tensor.NormAxis(ax, ndim)
		if err != nil {
			return nil, fmt.Errorf("transpose: %w", err)
		}
	}
	out := gg.d.Clone().(*gt.Dense)
	if err := out.T(norm...); err != nil {
		return nil, errors.Wrap(err, "gorgonia transpose")
	}
	return wrapDense(out.Materialize().(*gt.Dense)), nil
}

func (e *Engine) gatherDense(name string, ts []tensor.Tensor) ([]*gt.Dense, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: %s of no tensors", tensor.ErrShapeMismatch, name)
	}
	ds := make([]*gt.Dense, len(ts))
	for i, t := range ts {
		gg, err := asGorgonia(t)
		if err != nil {
			return nil, err
		}
		ds[i] = gg.d
	}
	return ds, nil
}

// Concat joins tensors along an existing axis.
func (e *Engine) Concat(axis int, ts ...tensor.Tensor) (tensor.Tensor, error) {
	ds, err := e.gatherDense("concat", ts)
	if err != nil {
		return nil, err
	}
	ax, err := tensor.NormAxis(axis, ds[0].Dims())
	if err != nil {
		return nil, fmt.Errorf("concat: %w", err)
	}
	out, err := ds[0].Concat(ax, ds[1:]...)
	if err != nil {
		return nil, errors.Wrap(err, "gorgonia concat")
	}
	return wrapDense(out), nil
}

// Stack joins equally shaped tensors along a new axis.
func (e *Engine) Stack(axis int, ts ...tensor.Tensor) (tensor.Tensor, error) {
	ds, err := e.gatherDense("stack", ts)
	if err != nil {
		return nil, err
	}
	ax := axis
	if ax < 0 {
		ax += ds[0].Dims() + 1
	}
	if ax < 0 || ax > ds[0].Dims() {
		return nil, fmt.Errorf("%w: stack axis %d out of range for result rank %d", tensor.ErrShapeMismatch, axis, ds[0].Dims()+1)
	}
	if len(ds) == 1 {
		return e.Reshape(ts[0], stackShape(ts[0].Shape(), ax))
	}
	out, err := ds[0].Stack(ax, ds[1:]...)
	if err != nil {
		return nil, errors.Wrap(err, "gorgonia stack")
	}
	return wrapDense(out), nil
}

func stackShape(shape tensor.Shape, axis int) tensor.Shape {
	out := append(shape[:axis].Clone(), 1)
	return append(out, shape[axis:]...)
}

// Unstack splits a tensor into its slices along axis through the host path.
func (e *Engine) Unstack(t tensor.Tensor, axis int) ([]tensor.Tensor, error) {
	ht, err := e.toNative(t)
	if err != nil {
		return nil, err
	}
	slices, err := e.host.Unstack(ht, axis)
	if err != nil {
		return nil, err
	}
	out := make([]tensor.Tensor, len(slices))
	for i, s := range slices {
		out[i], err = e.fromNative(s)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Flip reverses the element order along axis through the host path.
func (e *Engine) Flip(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.Flip(x, axis)
	})
}

// ExpandDims inserts a size-1 axis.
func (e *Engine) ExpandDims(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	shape := gg.Shape()
	ax := axis
	if ax < 0 {
		ax += len(shape) + 1
	}
	if ax < 0 || ax > len(shape) {
		return nil, fmt.Errorf("%w: expand_dims axis %d out of range for rank %d", tensor.ErrShapeMismatch, axis, len(shape)+1)
	}
	return e.Reshape(t, stackShape(shape, ax))
}

// Squeeze removes a size-1 axis.
func (e *Engine) Squeeze(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	shape := gg.Shape()
	ax, err := tensor.NormAxis(axis, len(shape))
	if err != nil {
		return nil, fmt.Errorf("squeeze: %w", err)
	}
	if shape[ax] != 1 {
		return nil, fmt.Errorf("%w: cannot squeeze axis %d of size %d", tensor.ErrShapeMismatch, ax, shape[ax])
	}
	out := append(shape[:ax].Clone(), shape[ax+1:]...)
	return e.Reshape(t, out)
}

// Take gathers slices along axis through the host path.
func (e *Engine) Take(t tensor.Tensor, index tensor.Tensor, axis int) (tensor.Tensor, error) {
	hi, err := e.toNative(index)
	if err != nil {
		return nil, err
	}
	return e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.Take(x, hi, axis)
	})
}

// SetAt returns a copy of t with the rows named by index replaced by the
// rows of src; later duplicate indices win.
func (e *Engine) SetAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error) {
	hi, err := e.toNative(index)
	if err != nil {
		return nil, err
	}
	return e.fallback2(t, src, func(x, y tensor.Tensor) (tensor.Tensor, error) {
		return e.host.SetAt(x, hi, y)
	})
}

// AddAt returns a copy of t with the rows of src accumulated into the rows
// named by index; duplicate indices accumulate.
func (e *Engine) AddAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error) {
	hi, err := e.toNative(index)
	if err != nil {
		return nil, err
	}
	return e.fallback2(t, src, func(x, y tensor.Tensor) (tensor.Tensor, error) {
		return e.host.AddAt(x, hi, y)
	})
}
