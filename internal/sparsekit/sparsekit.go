// Package sparsekit implements the sparse-matrix kernels shared by engines
// without a native sparse library: COO→CSR conversion with duplicate
// summation, CSR/COO dense products, and the CSR×CSR sparse product.
// Everything works on flat host slices; buffers are allocated fresh per call
// so concurrent invocations never alias.
package sparsekit

import (
	"fmt"
	"sort"

	"github.com/basis-fem/basis/internal/parallel"
	"github.com/basis-fem/basis/tensor"
)

// cfg drives the row-parallel CSR loops. COO accumulation stays sequential:
// scattered writes to y alias across entries.
var cfg = parallel.DefaultConfig()

// CooToCsr converts COO triples to CSR form for an m-row matrix. Input
// indices need not be sorted or deduplicated; duplicate (row, col) pairs are
// summed into a single CSR entry. The returned row pointer is monotonically
// non-decreasing with rowptr[0] = 0 and rowptr[m] = nnz.
func CooToCsr(rows, cols []int64, values []float64, m, n int) ([]int64, []int64, []float64, error) {
	nnz := len(values)
	if len(rows) != nnz || len(cols) != nnz {
		return nil, nil, nil, fmt.Errorf("%w: COO arrays disagree: %d rows, %d cols, %d values",
			tensor.ErrShapeMismatch, len(rows), len(cols), nnz)
	}
	for k := 0; k < nnz; k++ {
		if rows[k] < 0 || rows[k] >= int64(m) || cols[k] < 0 || cols[k] >= int64(n) {
			return nil, nil, nil, fmt.Errorf("%w: COO entry %d at (%d, %d) outside %d×%d matrix",
				tensor.ErrShapeMismatch, k, rows[k], cols[k], m, n)
		}
	}

	// counting sort by row
	rowptr := make([]int64, m+1)
	for _, r := range rows {
		rowptr[r+1]++
	}
	for i := 0; i < m; i++ {
		rowptr[i+1] += rowptr[i]
	}
	col := make([]int64, nnz)
	data := make([]float64, nnz)
	next := append([]int64(nil), rowptr[:m]...)
	for k := 0; k < nnz; k++ {
		p := next[rows[k]]
		col[p] = cols[k]
		data[p] = values[k]
		next[rows[k]]++
	}

	// sort within each row and sum duplicates, compacting in place
	out := int64(0)
	newptr := make([]int64, m+1)
	for i := 0; i < m; i++ {
		lo, hi := rowptr[i], rowptr[i+1]
		seg := int(hi - lo)
		if seg > 1 {
			sort.Sort(&rowSegment{col: col[lo:hi], data: data[lo:hi]})
		}
		for k := lo; k < hi; k++ {
			if out > newptr[i] && col[out-1] == col[k] {
				data[out-1] += data[k]
				continue
			}
			col[out] = col[k]
			data[out] = data[k]
			out++
		}
		newptr[i+1] = out
	}
	return newptr, col[:out], data[:out], nil
}

type rowSegment struct {
	col  []int64
	data []float64
}

func (s *rowSegment) Len() int           { return len(s.col) }
func (s *rowSegment) Less(i, j int) bool { return s.col[i] < s.col[j] }
func (s *rowSegment) Swap(i, j int) {
	s.col[i], s.col[j] = s.col[j], s.col[i]
	s.data[i], s.data[j] = s.data[j], s.data[i]
}

// CsrMatVec computes y = A·x for an m×n CSR matrix.
func CsrMatVec(m, n int, rowptr, col []int64, data, x []float64) ([]float64, error) {
	if len(x) != n {
		return nil, fmt.Errorf("%w: vector length %d does not match matrix columns %d", tensor.ErrShapeMismatch, len(x), n)
	}
	y := make([]float64, m)
	parallel.For(m, func(i int) {
		s := 0.0
		for k := rowptr[i]; k < rowptr[i+1]; k++ {
			s += data[k] * x[col[k]]
		}
		y[i] = s
	}, cfg)
	return y, nil
}

// CsrMatMat computes Y = A·X for an m×n CSR matrix and a dense n×p matrix X
// in row-major order, multiplying column by column.
func CsrMatMat(m, n int, rowptr, col []int64, data, x []float64, p int) ([]float64, error) {
	if len(x) != n*p {
		return nil, fmt.Errorf("%w: dense operand has %d elements, want %d×%d", tensor.ErrShapeMismatch, len(x), n, p)
	}
	y := make([]float64, m*p)
	parallel.For(m, func(i int) {
		row := y[i*p : (i+1)*p]
		for k := rowptr[i]; k < rowptr[i+1]; k++ {
			v := data[k]
			xr := x[int(col[k])*p : (int(col[k])+1)*p]
			for j := 0; j < p; j++ {
				row[j] += v * xr[j]
			}
		}
	}, cfg)
	return y, nil
}

// CooMatVec computes y = A·x for an m×n COO matrix by direct accumulation.
func CooMatVec(m, n int, rows, cols []int64, values, x []float64) ([]float64, error) {
	if len(x) != n {
		return nil, fmt.Errorf("%w: vector length %d does not match matrix columns %d", tensor.ErrShapeMismatch, len(x), n)
	}
	y := make([]float64, m)
	for k := range values {
		y[rows[k]] += values[k] * x[cols[k]]
	}
	return y, nil
}

// CooMatMat computes Y = A·X for an m×n COO matrix and a dense n×p matrix.
func CooMatMat(m, n int, rows, cols []int64, values, x []float64, p int) ([]float64, error) {
	if len(x) != n*p {
		return nil, fmt.Errorf("%w: dense operand has %d elements, want %d×%d", tensor.ErrShapeMismatch, len(x), n, p)
	}
	y := make([]float64, m*p)
	for k := range values {
		v := values[k]
		dst := y[int(rows[k])*p : (int(rows[k])+1)*p]
		src := x[int(cols[k])*p : (int(cols[k])+1)*p]
		for j := 0; j < p; j++ {
			dst[j] += v * src[j]
		}
	}
	return y, nil
}

// CsrSpSpMM computes the CSR product C = A·B of an mA×nA and an nA×nB CSR
// matrix with the classic two-pass row-merge: a symbolic pass bounds each
// result row, then a numeric pass accumulates into a dense row workspace.
// Overlapping nonzero positions are summed; result columns are sorted.
func CsrSpSpMM(mA, nA int, rowptrA, colA []int64, dataA []float64,
	nB int, rowptrB, colB []int64, dataB []float64) ([]int64, []int64, []float64, error) {

	// symbolic pass: count distinct columns per result row
	mark := make([]int, nB)
	for j := range mark {
		mark[j] = -1
	}
	rowptr := make([]int64, mA+1)
	for i := 0; i < mA; i++ {
		count := int64(0)
		for ka := rowptrA[i]; ka < rowptrA[i+1]; ka++ {
			j := colA[ka]
			for kb := rowptrB[j]; kb < rowptrB[j+1]; kb++ {
				if c := colB[kb]; mark[c] != i {
					mark[c] = i
					count++
				}
			}
		}
		rowptr[i+1] = rowptr[i] + count
	}

	nnz := rowptr[mA]
	col := make([]int64, nnz)
	data := make([]float64, nnz)

	// numeric pass: dense accumulator per row, gathered in sorted order.
	// Entries that cancel to exact zero stay as explicit zeros so the
	// structure matches the symbolic pass.
	for j := range mark {
		mark[j] = -1
	}
	acc := make([]float64, nB)
	touched := make([]int64, 0, nB)
	for i := 0; i < mA; i++ {
		touched = touched[:0]
		for ka := rowptrA[i]; ka < rowptrA[i+1]; ka++ {
			j, va := colA[ka], dataA[ka]
			for kb := rowptrB[j]; kb < rowptrB[j+1]; kb++ {
				c := colB[kb]
				if mark[c] != i {
					mark[c] = i
					acc[c] = 0
					touched = append(touched, c)
				}
				acc[c] += va * dataB[kb]
			}
		}
		sort.Slice(touched, func(a, b int) bool { return touched[a] < touched[b] })
		p := rowptr[i]
		for _, c := range touched {
			col[p] = c
			data[p] = acc[c]
			p++
		}
	}
	return rowptr, col, data, nil
}
