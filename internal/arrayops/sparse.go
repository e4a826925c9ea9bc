package arrayops

import (
	"fmt"

	"github.com/basis-fem/basis/tensor"
)

// CooParts validates a (2, nnz) index array plus a rank-1 value array and
// returns the row indices, column indices and values.
func CooParts(indices, values *tensor.Array, shape [2]int, name string) (rows, cols []int64, vals []float64, err error) {
	idx, err := IntSlice(indices, name+" indices")
	if err != nil {
		return nil, nil, nil, err
	}
	is := indices.Shape()
	if len(is) != 2 || is[0] != 2 {
		return nil, nil, nil, fmt.Errorf("%w: %s indices must have shape (2, nnz), got %v", tensor.ErrShapeMismatch, name, is)
	}
	if values.NDim() != 1 {
		return nil, nil, nil, fmt.Errorf("%w: batched sparse values of rank %d are not supported by %s",
			tensor.ErrUnsupportedOperation, values.NDim(), name)
	}
	vals, err = FloatSlice(values, name+" values")
	if err != nil {
		return nil, nil, nil, err
	}
	nnz := is[1]
	if len(vals) != nnz {
		return nil, nil, nil, fmt.Errorf("%w: %s has %d index columns but %d values", tensor.ErrShapeMismatch, name, nnz, len(vals))
	}
	if shape[0] < 0 || shape[1] < 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s with negative matrix shape %v", tensor.ErrShapeMismatch, name, shape)
	}
	return idx[:nnz], idx[nnz:], vals, nil
}

// CsrParts validates rowptr/col/values arrays for a CSR matrix of the given
// shape and returns their payloads.
func CsrParts(rowptr, col, values *tensor.Array, shape [2]int, name string) (ptr, ci []int64, vals []float64, err error) {
	ptr, err = IntSlice(rowptr, name+" rowptr")
	if err != nil {
		return nil, nil, nil, err
	}
	if rowptr.NDim() != 1 || len(ptr) != shape[0]+1 {
		return nil, nil, nil, fmt.Errorf("%w: %s rowptr must have length rows+1 = %d, got shape %v",
			tensor.ErrShapeMismatch, name, shape[0]+1, rowptr.Shape())
	}
	ci, err = IntSlice(col, name+" col")
	if err != nil {
		return nil, nil, nil, err
	}
	if values.NDim() != 1 {
		return nil, nil, nil, fmt.Errorf("%w: batched sparse values of rank %d are not supported by %s",
			tensor.ErrUnsupportedOperation, values.NDim(), name)
	}
	vals, err = FloatSlice(values, name+" values")
	if err != nil {
		return nil, nil, nil, err
	}
	if len(ci) != len(vals) {
		return nil, nil, nil, fmt.Errorf("%w: %s has %d column indices but %d values", tensor.ErrShapeMismatch, name, len(ci), len(vals))
	}
	return ptr, ci, vals, nil
}
