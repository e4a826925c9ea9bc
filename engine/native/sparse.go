package native

import (
	"fmt"

	"github.com/basis-fem/basis/internal/arrayops"
	"github.com/basis-fem/basis/internal/sparsekit"
	"github.com/basis-fem/basis/tensor"
)

func cooArgs(indices, values tensor.Tensor, shape [2]int, name string) (rows, cols []int64, vals []float64, err error) {
	ni, err := asNative(indices)
	if err != nil {
		return nil, nil, nil, err
	}
	nv, err := asNative(values)
	if err != nil {
		return nil, nil, nil, err
	}
	return arrayops.CooParts(ni.arr, nv.arr, shape, name)
}

func csrArgs(rowptr, col, values tensor.Tensor, shape [2]int, name string) (ptr, ci []int64, vals []float64, err error) {
	np, err := asNative(rowptr)
	if err != nil {
		return nil, nil, nil, err
	}
	nc, err := asNative(col)
	if err != nil {
		return nil, nil, nil, err
	}
	nv, err := asNative(values)
	if err != nil {
		return nil, nil, nil, err
	}
	return arrayops.CsrParts(np.arr, nc.arr, nv.arr, shape, name)
}

func denseOperand(other tensor.Tensor, n int, name string) ([]float64, int, error) {
	_, x, err := floatData(other, name+" dense operand")
	if err != nil {
		return nil, 0, err
	}
	switch other.NDim() {
	case 1:
		if other.Shape()[0] != n {
			return nil, 0, fmt.Errorf("%w: %s expects a length-%d vector, got %v", tensor.ErrShapeMismatch, name, n, other.Shape())
		}
		return x, 0, nil
	case 2:
		if other.Shape()[0] != n {
			return nil, 0, fmt.Errorf("%w: %s expects %d rows, got %v", tensor.ErrShapeMismatch, name, n, other.Shape())
		}
		return x, other.Shape()[1], nil
	default:
		return nil, 0, fmt.Errorf("%w: batched sparse products with rank-%d dense operands are not supported",
			tensor.ErrUnsupportedOperation, other.NDim())
	}
}

// CooToCsr converts coordinate-format triplets to compressed sparse row
// form with sorted columns; duplicate coordinates are summed.
func (e *Engine) CooToCsr(indices, values tensor.Tensor, shape [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	rows, cols, vals, err := cooArgs(indices, values, shape, "coo_to_csr")
	if err != nil {
		return nil, nil, nil, err
	}
	rowptr, col, data, err := sparsekit.CooToCsr(rows, cols, vals, shape[0], shape[1])
	if err != nil {
		return nil, nil, nil, err
	}
	rp, err := wrapInt64s(rowptr, tensor.Shape{len(rowptr)})
	if err != nil {
		return nil, nil, nil, err
	}
	ci, err := wrapInt64s(col, tensor.Shape{len(col)})
	if err != nil {
		return nil, nil, nil, err
	}
	dv, err := wrapFloat64s(data, tensor.Shape{len(data)})
	if err != nil {
		return nil, nil, nil, err
	}
	return rp, ci, dv, nil
}

// CooSpmm multiplies a coordinate-format sparse matrix by a dense vector
// or matrix.
func (e *Engine) CooSpmm(indices, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	rows, cols, vals, err := cooArgs(indices, values, shape, "coo_spmm")
	if err != nil {
		return nil, err
	}
	x, p, err := denseOperand(other, shape[1], "coo_spmm")
	if err != nil {
		return nil, err
	}
	if p == 0 {
		out, err := sparsekit.CooMatVec(shape[0], shape[1], rows, cols, vals, x)
		if err != nil {
			return nil, err
		}
		return wrapFloat64s(out, tensor.Shape{shape[0]})
	}
	out, err := sparsekit.CooMatMat(shape[0], shape[1], rows, cols, vals, x, p)
	if err != nil {
		return nil, err
	}
	return wrapFloat64s(out, tensor.Shape{shape[0], p})
}

// CsrSpmm multiplies a compressed-sparse-row matrix by a dense vector or
// matrix.
func (e *Engine) CsrSpmm(rowptr, col, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	ptr, ci, vals, err := csrArgs(rowptr, col, values, shape, "csr_spmm")
	if err != nil {
		return nil, err
	}
	x, p, err := denseOperand(other, shape[1], "csr_spmm")
	if err != nil {
		return nil, err
	}
	if p == 0 {
		out, err := sparsekit.CsrMatVec(shape[0], shape[1], ptr, ci, vals, x)
		if err != nil {
			return nil, err
		}
		return wrapFloat64s(out, tensor.Shape{shape[0]})
	}
	out, err := sparsekit.CsrMatMat(shape[0], shape[1], ptr, ci, vals, x, p)
	if err != nil {
		return nil, err
	}
	return wrapFloat64s(out, tensor.Shape{shape[0], p})
}

// CsrSpspmm multiplies two compressed-sparse-row matrices, producing a
// compressed result.
func (e *Engine) CsrSpspmm(rowptrA, colA, dataA tensor.Tensor, shapeA [2]int,
	rowptrB, colB, dataB tensor.Tensor, shapeB [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	ptrA, ciA, valsA, err := csrArgs(rowptrA, colA, dataA, shapeA, "csr_spspmm")
	if err != nil {
		return nil, nil, nil, err
	}
	ptrB, ciB, valsB, err := csrArgs(rowptrB, colB, dataB, shapeB, "csr_spspmm")
	if err != nil {
		return nil, nil, nil, err
	}
	if shapeA[1] != shapeB[0] {
		return nil, nil, nil, fmt.Errorf("%w: csr_spspmm of (%d, %d) with (%d, %d)",
			tensor.ErrShapeMismatch, shapeA[0], shapeA[1], shapeB[0], shapeB[1])
	}
	rowptr, col, data, err := sparsekit.CsrSpSpMM(shapeA[0], shapeA[1], ptrA, ciA, valsA, shapeB[1], ptrB, ciB, valsB)
	if err != nil {
		return nil, nil, nil, err
	}
	rp, err := wrapInt64s(rowptr, tensor.Shape{len(rowptr)})
	if err != nil {
		return nil, nil, nil, err
	}
	ci, err := wrapInt64s(col, tensor.Shape{len(col)})
	if err != nil {
		return nil, nil, nil, err
	}
	dv, err := wrapFloat64s(data, tensor.Shape{len(data)})
	if err != nil {
		return nil, nil, nil, err
	}
	return rp, ci, dv, nil
}
