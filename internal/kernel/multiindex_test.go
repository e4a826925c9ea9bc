package kernel

import (
	"errors"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

func TestLDof(t *testing.T) {
	cases := []struct {
		p, td, want int
	}{
		{0, 1, 1}, {1, 1, 2}, {3, 1, 4},
		{0, 2, 1}, {1, 2, 3}, {2, 2, 6}, {3, 2, 10},
		{1, 3, 4}, {2, 3, 10}, {3, 3, 20}, {4, 3, 35},
	}
	for _, c := range cases {
		if got := LDof(c.p, c.td); got != c.want {
			t.Errorf("LDof(%d, %d) = %d, want %d", c.p, c.td, got, c.want)
		}
	}
}

func TestMultiIndexMatrixP2Triangle(t *testing.T) {
	mi, err := MultiIndexMatrix(2, 2)
	if err != nil {
		t.Fatalf("MultiIndexMatrix(2, 2): %v", err)
	}
	want := []int64{
		2, 0, 0,
		1, 1, 0,
		1, 0, 1,
		0, 2, 0,
		0, 1, 1,
		0, 0, 2,
	}
	if len(mi) != len(want) {
		t.Fatalf("got %d entries, want %d", len(mi), len(want))
	}
	for i := range want {
		if mi[i] != want[i] {
			t.Fatalf("mi = %v, want %v", mi, want)
		}
	}
}

func TestMultiIndexMatrixProperties(t *testing.T) {
	for td := 1; td <= 3; td++ {
		for p := 0; p <= 8; p++ {
			mi, err := MultiIndexMatrix(p, td)
			if err != nil {
				t.Fatalf("MultiIndexMatrix(%d, %d): %v", p, td, err)
			}
			nv := td + 1
			rows := len(mi) / nv
			if rows != LDof(p, td) {
				t.Errorf("p=%d td=%d: %d rows, want %d", p, td, rows, LDof(p, td))
			}
			seen := make(map[[4]int64]bool)
			for r := 0; r < rows; r++ {
				var key [4]int64
				var sum int64
				for q := 0; q < nv; q++ {
					v := mi[r*nv+q]
					if v < 0 {
						t.Fatalf("p=%d td=%d row %d: negative entry %d", p, td, r, v)
					}
					key[q] = v
					sum += v
				}
				if sum != int64(p) {
					t.Errorf("p=%d td=%d row %d sums to %d, want %d", p, td, r, sum, p)
				}
				if seen[key] {
					t.Errorf("p=%d td=%d row %d duplicated: %v", p, td, r, key)
				}
				seen[key] = true
			}
			// Rows are in descending lexicographic order.
			for r := 1; r < rows; r++ {
				prev, cur := mi[(r-1)*nv:r*nv], mi[r*nv:(r+1)*nv]
				less := false
				for q := 0; q < nv; q++ {
					if cur[q] != prev[q] {
						less = cur[q] < prev[q]
						break
					}
				}
				if !less {
					t.Errorf("p=%d td=%d: row %d (%v) not below row %d (%v)", p, td, r, cur, r-1, prev)
				}
			}
		}
	}
}

func TestMultiIndexMatrixErrors(t *testing.T) {
	if _, err := MultiIndexMatrix(-1, 2); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("negative degree returned %v, want ErrUnsupportedConfiguration", err)
	}
	if _, err := MultiIndexMatrix(2, 4); !errors.Is(err, tensor.ErrUnsupportedConfiguration) {
		t.Errorf("td=4 returned %v, want ErrUnsupportedConfiguration", err)
	}
}
