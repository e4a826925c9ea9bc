package sparsekit

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

// toDense expands a CSR triple into a dense row-major m×n matrix.
func toDense(m, n int, rowptr, col []int64, data []float64) []float64 {
	out := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for k := rowptr[i]; k < rowptr[i+1]; k++ {
			out[i*n+int(col[k])] += data[k]
		}
	}
	return out
}

// randomCoo draws nnz random COO entries for an m×n matrix, duplicates
// allowed.
func randomCoo(rng *rand.Rand, m, n, nnz int) (rows, cols []int64, values []float64) {
	rows = make([]int64, nnz)
	cols = make([]int64, nnz)
	values = make([]float64, nnz)
	for k := 0; k < nnz; k++ {
		rows[k] = rng.Int64N(int64(m))
		cols[k] = rng.Int64N(int64(n))
		values[k] = rng.Float64()*2 - 1
	}
	return rows, cols, values
}

func TestCooToCsr(t *testing.T) {
	rows := []int64{1, 0, 1}
	cols := []int64{2, 0, 0}
	vals := []float64{3, 1, 2}
	rowptr, col, data, err := CooToCsr(rows, cols, vals, 2, 3)
	if err != nil {
		t.Fatalf("CooToCsr: %v", err)
	}
	wantPtr := []int64{0, 1, 3}
	wantCol := []int64{0, 0, 2}
	wantData := []float64{1, 2, 3}
	for i := range wantPtr {
		if rowptr[i] != wantPtr[i] {
			t.Fatalf("rowptr = %v, want %v", rowptr, wantPtr)
		}
	}
	for i := range wantCol {
		if col[i] != wantCol[i] || data[i] != wantData[i] {
			t.Fatalf("col/data = %v/%v, want %v/%v", col, data, wantCol, wantData)
		}
	}
}

func TestCooToCsrSumsDuplicates(t *testing.T) {
	rows := []int64{0, 0, 0}
	cols := []int64{1, 1, 0}
	vals := []float64{2, 3, 5}
	rowptr, col, data, err := CooToCsr(rows, cols, vals, 1, 2)
	if err != nil {
		t.Fatalf("CooToCsr: %v", err)
	}
	if rowptr[1] != 2 {
		t.Fatalf("nnz = %d after deduplication, want 2", rowptr[1])
	}
	if col[0] != 0 || data[0] != 5 || col[1] != 1 || data[1] != 5 {
		t.Errorf("col/data = %v/%v, want [0 1]/[5 5]", col, data)
	}
}

func TestCooToCsrSortsColumns(t *testing.T) {
	rng := rand.New(rand.NewPCG(10, 11))
	rows, cols, vals := randomCoo(rng, 6, 8, 40)
	rowptr, col, _, err := CooToCsr(rows, cols, vals, 6, 8)
	if err != nil {
		t.Fatalf("CooToCsr: %v", err)
	}
	for i := 0; i < 6; i++ {
		for k := rowptr[i] + 1; k < rowptr[i+1]; k++ {
			if col[k-1] >= col[k] {
				t.Fatalf("row %d columns not strictly increasing: %v", i, col[rowptr[i]:rowptr[i+1]])
			}
		}
	}
}

func TestCooToCsrOutOfRange(t *testing.T) {
	if _, _, _, err := CooToCsr([]int64{2}, []int64{0}, []float64{1}, 2, 2); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("row out of range returned %v, want ErrShapeMismatch", err)
	}
	if _, _, _, err := CooToCsr([]int64{0, 1}, []int64{0}, []float64{1}, 2, 2); !errors.Is(err, tensor.ErrShapeMismatch) {
		t.Errorf("length mismatch returned %v, want ErrShapeMismatch", err)
	}
}

func TestCsrMatVecAgainstDense(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 13))
	m, n := 5, 7
	rows, cols, vals := randomCoo(rng, m, n, 20)
	rowptr, col, data, err := CooToCsr(rows, cols, vals, m, n)
	if err != nil {
		t.Fatal(err)
	}
	dense := toDense(m, n, rowptr, col, data)
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}

	got, err := CsrMatVec(m, n, rowptr, col, data, x)
	if err != nil {
		t.Fatalf("CsrMatVec: %v", err)
	}
	for i := 0; i < m; i++ {
		want := 0.0
		for j := 0; j < n; j++ {
			want += dense[i*n+j] * x[j]
		}
		if math.Abs(got[i]-want) > 1e-12 {
			t.Errorf("row %d: %g, want %g", i, got[i], want)
		}
	}
}

func TestCsrMatVecParallelRows(t *testing.T) {
	// Enough rows to take the chunked worker path rather than the
	// sequential fallback.
	rng := rand.New(rand.NewPCG(20, 21))
	m, n := 3000, 50
	rows, cols, vals := randomCoo(rng, m, n, 9000)
	rowptr, col, data, err := CooToCsr(rows, cols, vals, m, n)
	if err != nil {
		t.Fatal(err)
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}

	got, err := CsrMatVec(m, n, rowptr, col, data, x)
	if err != nil {
		t.Fatalf("CsrMatVec: %v", err)
	}
	for i := 0; i < m; i++ {
		want := 0.0
		for k := rowptr[i]; k < rowptr[i+1]; k++ {
			want += data[k] * x[col[k]]
		}
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("row %d: %g, want %g", i, got[i], want)
		}
	}
}

func TestCooMatVecMatchesCsr(t *testing.T) {
	rng := rand.New(rand.NewPCG(14, 15))
	m, n := 4, 6
	rows, cols, vals := randomCoo(rng, m, n, 15)
	x := make([]float64, n)
	for i := range x {
		x[i] = rng.Float64()
	}

	fromCoo, err := CooMatVec(m, n, rows, cols, vals, x)
	if err != nil {
		t.Fatalf("CooMatVec: %v", err)
	}
	rowptr, col, data, err := CooToCsr(rows, cols, vals, m, n)
	if err != nil {
		t.Fatal(err)
	}
	fromCsr, err := CsrMatVec(m, n, rowptr, col, data, x)
	if err != nil {
		t.Fatalf("CsrMatVec: %v", err)
	}
	for i := 0; i < m; i++ {
		if math.Abs(fromCoo[i]-fromCsr[i]) > 1e-12 {
			t.Errorf("row %d: COO %g vs CSR %g", i, fromCoo[i], fromCsr[i])
		}
	}
}

func TestCsrMatMatAgainstDense(t *testing.T) {
	rng := rand.New(rand.NewPCG(16, 17))
	m, n, p := 4, 5, 3
	rows, cols, vals := randomCoo(rng, m, n, 12)
	rowptr, col, data, err := CooToCsr(rows, cols, vals, m, n)
	if err != nil {
		t.Fatal(err)
	}
	dense := toDense(m, n, rowptr, col, data)
	x := make([]float64, n*p)
	for i := range x {
		x[i] = rng.Float64()
	}

	got, err := CsrMatMat(m, n, rowptr, col, data, x, p)
	if err != nil {
		t.Fatalf("CsrMatMat: %v", err)
	}
	for i := 0; i < m; i++ {
		for c := 0; c < p; c++ {
			want := 0.0
			for j := 0; j < n; j++ {
				want += dense[i*n+j] * x[j*p+c]
			}
			if math.Abs(got[i*p+c]-want) > 1e-12 {
				t.Errorf("(%d, %d): %g, want %g", i, c, got[i*p+c], want)
			}
		}
	}
}

func TestCsrSpSpMMAgainstDense(t *testing.T) {
	rng := rand.New(rand.NewPCG(18, 19))
	mA, nA, nB := 5, 4, 6
	rowsA, colsA, valsA := randomCoo(rng, mA, nA, 12)
	rowsB, colsB, valsB := randomCoo(rng, nA, nB, 14)

	rpA, cA, dA, err := CooToCsr(rowsA, colsA, valsA, mA, nA)
	if err != nil {
		t.Fatal(err)
	}
	rpB, cB, dB, err := CooToCsr(rowsB, colsB, valsB, nA, nB)
	if err != nil {
		t.Fatal(err)
	}

	rpC, cC, dC, err := CsrSpSpMM(mA, nA, rpA, cA, dA, nB, rpB, cB, dB)
	if err != nil {
		t.Fatalf("CsrSpSpMM: %v", err)
	}

	denseA := toDense(mA, nA, rpA, cA, dA)
	denseB := toDense(nA, nB, rpB, cB, dB)
	denseC := toDense(mA, nB, rpC, cC, dC)
	for i := 0; i < mA; i++ {
		// result columns stay sorted
		for k := rpC[i] + 1; k < rpC[i+1]; k++ {
			if cC[k-1] >= cC[k] {
				t.Fatalf("row %d result columns not sorted: %v", i, cC[rpC[i]:rpC[i+1]])
			}
		}
		for c := 0; c < nB; c++ {
			want := 0.0
			for j := 0; j < nA; j++ {
				want += denseA[i*nA+j] * denseB[j*nB+c]
			}
			if math.Abs(denseC[i*nB+c]-want) > 1e-12 {
				t.Errorf("(%d, %d): %g, want %g", i, c, denseC[i*nB+c], want)
			}
		}
	}
}

func TestCsrSpSpMMEmpty(t *testing.T) {
	// Multiplying by an all-zero matrix yields an empty but valid CSR triple.
	rpA := []int64{0, 0, 0}
	rpB := []int64{0, 0, 0, 0}
	rowptr, col, data, err := CsrSpSpMM(2, 3, rpA, nil, nil, 4, rpB, nil, nil)
	if err != nil {
		t.Fatalf("CsrSpSpMM: %v", err)
	}
	if rowptr[2] != 0 || len(col) != 0 || len(data) != 0 {
		t.Errorf("empty product has nnz %d", rowptr[2])
	}
}
