package gonum

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/basis-fem/basis/internal/arrayops"
	"github.com/basis-fem/basis/internal/sparsekit"
	"github.com/basis-fem/basis/tensor"
)

func (e *Engine) cooArgs(indices, values tensor.Tensor, shape [2]int, name string) (rows, cols []int64, vals []float64, err error) {
	gi, err := asGonum(indices)
	if err != nil {
		return nil, nil, nil, err
	}
	gv, err := asGonum(values)
	if err != nil {
		return nil, nil, nil, err
	}
	return arrayops.CooParts(gi.arr, gv.arr, shape, name)
}

func (e *Engine) csrArgs(rowptr, col, values tensor.Tensor, shape [2]int, name string) (ptr, ci []int64, vals []float64, err error) {
	gp, err := asGonum(rowptr)
	if err != nil {
		return nil, nil, nil, err
	}
	gc, err := asGonum(col)
	if err != nil {
		return nil, nil, nil, err
	}
	gv, err := asGonum(values)
	if err != nil {
		return nil, nil, nil, err
	}
	return arrayops.CsrParts(gp.arr, gc.arr, gv.arr, shape, name)
}

// newCSR builds a james-bowman CSR matrix over canonical int64 triples.
func newCSR(m, n int, rowptr, col []int64, data []float64) *sparse.CSR {
	ia := make([]int, len(rowptr))
	for i, v := range rowptr {
		ia[i] = int(v)
	}
	ja := make([]int, len(col))
	for i, v := range col {
		ja[i] = int(v)
	}
	return sparse.NewCSR(m, n, ia, ja, data)
}

// CooToCsr converts coordinate-format triplets to compressed sparse row
// form with sorted columns; duplicate coordinates are summed. The
// conversion itself stays on the canonicalizing host path so the duplicate
// handling matches the other engines exactly.
func (e *Engine) CooToCsr(indices, values tensor.Tensor, shape [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	rows, cols, vals, err := e.cooArgs(indices, values, shape, "coo_to_csr")
	if err != nil {
		return nil, nil, nil, err
	}
	rowptr, col, data, err := sparsekit.CooToCsr(rows, cols, vals, shape[0], shape[1])
	if err != nil {
		return nil, nil, nil, err
	}
	return e.csrTriple(rowptr, col, data)
}

func (e *Engine) csrTriple(rowptr, col []int64, data []float64) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
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

func (e *Engine) denseOperand(other tensor.Tensor, n int, name string) ([]float64, int, error) {
	x, err := floatData(other, name+" dense operand")
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

func (e *Engine) spmm(lhs *sparse.CSR, m int, x []float64, k, p int) (tensor.Tensor, error) {
	if p == 0 {
		out := mat.NewVecDense(m, nil)
		out.MulVec(lhs, mat.NewVecDense(k, x))
		return wrapFloat64s(out.RawVector().Data, tensor.Shape{m})
	}
	out := mat.NewDense(m, p, nil)
	out.Mul(lhs, mat.NewDense(k, p, x))
	return wrapFloat64s(out.RawMatrix().Data, tensor.Shape{m, p})
}

// CooSpmm multiplies a coordinate-format sparse matrix by a dense vector or
// matrix. The triplets are canonicalized first so duplicates sum.
func (e *Engine) CooSpmm(indices, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	rows, cols, vals, err := e.cooArgs(indices, values, shape, "coo_spmm")
	if err != nil {
		return nil, err
	}
	x, p, err := e.denseOperand(other, shape[1], "coo_spmm")
	if err != nil {
		return nil, err
	}
	rowptr, col, data, err := sparsekit.CooToCsr(rows, cols, vals, shape[0], shape[1])
	if err != nil {
		return nil, err
	}
	return e.spmm(newCSR(shape[0], shape[1], rowptr, col, data), shape[0], x, shape[1], p)
}

// CsrSpmm multiplies a compressed-sparse-row matrix by a dense vector or
// matrix.
func (e *Engine) CsrSpmm(rowptr, col, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	ptr, ci, vals, err := e.csrArgs(rowptr, col, values, shape, "csr_spmm")
	if err != nil {
		return nil, err
	}
	x, p, err := e.denseOperand(other, shape[1], "csr_spmm")
	if err != nil {
		return nil, err
	}
	return e.spmm(newCSR(shape[0], shape[1], ptr, ci, vals), shape[0], x, shape[1], p)
}

// CsrSpspmm multiplies two compressed-sparse-row matrices through the
// sparse library, then re-canonicalizes the product into sorted CSR form.
func (e *Engine) CsrSpspmm(rowptrA, colA, dataA tensor.Tensor, shapeA [2]int,
	rowptrB, colB, dataB tensor.Tensor, shapeB [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	ptrA, ciA, valsA, err := e.csrArgs(rowptrA, colA, dataA, shapeA, "csr_spspmm")
	if err != nil {
		return nil, nil, nil, err
	}
	ptrB, ciB, valsB, err := e.csrArgs(rowptrB, colB, dataB, shapeB, "csr_spspmm")
	if err != nil {
		return nil, nil, nil, err
	}
	if shapeA[1] != shapeB[0] {
		return nil, nil, nil, fmt.Errorf("%w: csr_spspmm of (%d, %d) with (%d, %d)",
			tensor.ErrShapeMismatch, shapeA[0], shapeA[1], shapeB[0], shapeB[1])
	}
	var product sparse.CSR
	product.Mul(newCSR(shapeA[0], shapeA[1], ptrA, ciA, valsA), newCSR(shapeB[0], shapeB[1], ptrB, ciB, valsB))

	rowptr, col, data := extractCSR(&product, shapeA[0])
	return e.csrTriple(rowptr, col, data)
}

// extractCSR walks the non-zero structure of a product matrix into
// canonical triples with sorted columns per row.
func extractCSR(c *sparse.CSR, m int) ([]int64, []int64, []float64) {
	type entry struct {
		col int
		val float64
	}
	byRow := make([][]entry, m)
	c.DoNonZero(func(i, j int, v float64) {
		byRow[i] = append(byRow[i], entry{j, v})
	})
	rowptr := make([]int64, m+1)
	var col []int64
	var data []float64
	for i, row := range byRow {
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		for _, en := range row {
			col = append(col, int64(en.col))
			data = append(data, en.val)
		}
		rowptr[i+1] = int64(len(col))
	}
	if col == nil {
		col = []int64{}
		data = []float64{}
	}
	return rowptr, col, data
}
