package native

import (
	"fmt"

	"github.com/basis-fem/basis/internal/arrayops"
	"github.com/basis-fem/basis/tensor"
)

func (e *Engine) Reshape(t tensor.Tensor, shape tensor.Shape) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Reshape(nt.arr, shape)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Transpose(t tensor.Tensor, axes ...int) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Transpose(nt.arr, axes...)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) gatherArrays(name string, ts []tensor.Tensor) ([]*tensor.Array, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: %s of no tensors", tensor.ErrShapeMismatch, name)
	}
	arrs := make([]*tensor.Array, len(ts))
	for i, t := range ts {
		nt, err := asNative(t)
		if err != nil {
			return nil, err
		}
		arrs[i] = nt.arr
	}
	return arrs, nil
}

func (e *Engine) Concat(axis int, ts ...tensor.Tensor) (tensor.Tensor, error) {
	arrs, err := e.gatherArrays("concat", ts)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Concat(axis, arrs...)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Stack(axis int, ts ...tensor.Tensor) (tensor.Tensor, error) {
	arrs, err := e.gatherArrays("stack", ts)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Stack(axis, arrs...)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Unstack(t tensor.Tensor, axis int) ([]tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	slices, err := arrayops.Unstack(nt.arr, axis)
	if err != nil {
		return nil, err
	}
	out := make([]tensor.Tensor, len(slices))
	for i, s := range slices {
		out[i] = wrap(s)
	}
	return out, nil
}

func (e *Engine) Flip(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Flip(nt.arr, axis)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) ExpandDims(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.ExpandDims(nt.arr, axis)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Squeeze(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	out, err := arrayops.Squeeze(nt.arr, axis)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) Take(t tensor.Tensor, index tensor.Tensor, axis int) (tensor.Tensor, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, err
	}
	_, idx, err := intData(index, "take index")
	if err != nil {
		return nil, err
	}
	if index.NDim() != 1 {
		return nil, fmt.Errorf("%w: take index must be rank 1, got rank %d", tensor.ErrShapeMismatch, index.NDim())
	}
	out, err := arrayops.Take(nt.arr, idx, axis)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

func (e *Engine) scatterOperands(t, index, src tensor.Tensor, name string) (*tensor.Array, []int64, *tensor.Array, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, nil, nil, err
	}
	_, idx, err := intData(index, name+" index")
	if err != nil {
		return nil, nil, nil, err
	}
	if index.NDim() != 1 {
		return nil, nil, nil, fmt.Errorf("%w: %s index must be rank 1, got rank %d", tensor.ErrShapeMismatch, name, index.NDim())
	}
	ns, err := asNative(src)
	if err != nil {
		return nil, nil, nil, err
	}
	return nt.arr, idx, ns.arr, nil
}

// SetAt returns a copy of t with the rows named by index replaced by the
// rows of src; later duplicate indices win.
func (e *Engine) SetAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error) {
	target, idx, source, err := e.scatterOperands(t, index, src, "set_at")
	if err != nil {
		return nil, err
	}
	out, err := arrayops.SetAt(target, idx, source)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}

// AddAt returns a copy of t with the rows of src accumulated into the rows
// named by index; duplicate indices accumulate.
func (e *Engine) AddAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error) {
	target, idx, source, err := e.scatterOperands(t, index, src, "add_at")
	if err != nil {
		return nil, err
	}
	out, err := arrayops.AddAt(target, idx, source)
	if err != nil {
		return nil, err
	}
	return wrap(out), nil
}
