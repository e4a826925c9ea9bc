package gorgonia

import (
	"github.com/basis-fem/basis/tensor"
)

// The tensor package has no sparse formats; the sparse surface runs on the
// host kernels and results are rewrapped as dense values.

func (e *Engine) tripleFromNative(rp, ci, dv tensor.Tensor) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	grp, err := e.fromNative(rp)
	if err != nil {
		return nil, nil, nil, err
	}
	gci, err := e.fromNative(ci)
	if err != nil {
		return nil, nil, nil, err
	}
	gdv, err := e.fromNative(dv)
	if err != nil {
		return nil, nil, nil, err
	}
	return grp, gci, gdv, nil
}

// CooToCsr converts coordinate-format triplets to compressed sparse row
// form with sorted columns; duplicate coordinates are summed.
func (e *Engine) CooToCsr(indices, values tensor.Tensor, shape [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	hi, err := e.toNative(indices)
	if err != nil {
		return nil, nil, nil, err
	}
	hv, err := e.toNative(values)
	if err != nil {
		return nil, nil, nil, err
	}
	rp, ci, dv, err := e.host.CooToCsr(hi, hv, shape)
	if err != nil {
		return nil, nil, nil, err
	}
	return e.tripleFromNative(rp, ci, dv)
}

// CooSpmm multiplies a coordinate-format sparse matrix by a dense vector
// or matrix.
func (e *Engine) CooSpmm(indices, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	hi, err := e.toNative(indices)
	if err != nil {
		return nil, err
	}
	hv, err := e.toNative(values)
	if err != nil {
		return nil, err
	}
	return e.fallback1(other, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.CooSpmm(hi, hv, shape, x)
	})
}

// CsrSpmm multiplies a compressed-sparse-row matrix by a dense vector or
// matrix.
func (e *Engine) CsrSpmm(rowptr, col, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	hp, err := e.toNative(rowptr)
	if err != nil {
		return nil, err
	}
	hc, err := e.toNative(col)
	if err != nil {
		return nil, err
	}
	hv, err := e.toNative(values)
	if err != nil {
		return nil, err
	}
	return e.fallback1(other, func(x tensor.Tensor) (tensor.Tensor, error) {
		return e.host.CsrSpmm(hp, hc, hv, shape, x)
	})
}

// CsrSpspmm multiplies two compressed-sparse-row matrices.
func (e *Engine) CsrSpspmm(rowptrA, colA, dataA tensor.Tensor, shapeA [2]int,
	rowptrB, colB, dataB tensor.Tensor, shapeB [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	hs := make([]tensor.Tensor, 6)
	for i, t := range []tensor.Tensor{rowptrA, colA, dataA, rowptrB, colB, dataB} {
		ht, err := e.toNative(t)
		if err != nil {
			return nil, nil, nil, err
		}
		hs[i] = ht
	}
	rp, ci, dv, err := e.host.CsrSpspmm(hs[0], hs[1], hs[2], shapeA, hs[3], hs[4], hs[5], shapeB)
	if err != nil {
		return nil, nil, nil, err
	}
	return e.tripleFromNative(rp, ci, dv)
}
