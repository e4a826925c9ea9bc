package kernel

import (
	"fmt"

	"github.com/basis-fem/basis/tensor"
)

// factorTable holds, for one barycentric point, the normalized factor
// products A[a][q] = (1/a!)·Π_{k<a}(p·bc_q − k) and their derivatives
// F[a][q] = d/dbc_q A[a][q], for a = 0..p and q = 0..nv-1. A fresh table is
// built per call so concurrent evaluations never alias.
type factorTable struct {
	p  int
	nv int
	a  []float64 // (p+1) × nv
	f  []float64 // (p+1) × nv, derivative table (only when withGrad)
}

// fill populates the table for the barycentric coordinates bc (length nv).
//
// The derivative follows the recurrence over the unnormalized products
// g_a(x) = Π_{k<a}(p·x − k):
//
//	g'_a = g'_{a-1}·(p·x − (a-1)) + p·g_{a-1}
//
// which is algebraically the product-rule sum Σ_m p·Π_{l≠m}(p·x − l) but
// needs no triangular masking and stays O(p) per coordinate.
func (t *factorTable) fill(bc []float64, withGrad bool) {
	p, nv := t.p, t.nv
	pf := float64(p)
	invFact := 1.0
	for q := 0; q < nv; q++ {
		t.a[q] = 1
		if withGrad {
			t.f[q] = 0
		}
	}
	g := make([]float64, nv)  // unnormalized running product per coordinate
	dg := make([]float64, nv) // its derivative
	for q := range g {
		g[q] = 1
	}
	for a := 1; a <= p; a++ {
		invFact /= float64(a)
		for q := 0; q < nv; q++ {
			factor := pf*bc[q] - float64(a-1)
			if withGrad {
				dg[q] = dg[q]*factor + pf*g[q]
				t.f[a*nv+q] = dg[q] * invFact
			}
			g[q] *= factor
			t.a[a*nv+q] = g[q] * invFact
		}
	}
}

// shapeFnArgs validates the common inputs of the shape-function kernels and
// returns (points, nv, mi, ldof).
func shapeFnArgs(bc []float64, bcShape tensor.Shape, p int, mi []int64) (int, int, []int64, int, error) {
	if len(bcShape) < 1 {
		return 0, 0, nil, 0, fmt.Errorf("%w: barycentric coordinates must have at least one axis", tensor.ErrShapeMismatch)
	}
	nv := bcShape[len(bcShape)-1]
	td := nv - 1
	if td < 0 || td > 3 {
		return 0, 0, nil, 0, fmt.Errorf("%w: barycentric coordinate count %d is not a simplex of dimension 1..3",
			tensor.ErrShapeMismatch, nv)
	}
	if p < 0 {
		return 0, 0, nil, 0, fmt.Errorf("%w: polynomial degree %d must be non-negative", tensor.ErrUnsupportedConfiguration, p)
	}
	if mi == nil {
		var err error
		mi, err = MultiIndexMatrix(p, td)
		if err != nil {
			return 0, 0, nil, 0, err
		}
	}
	if len(mi)%nv != 0 {
		return 0, 0, nil, 0, fmt.Errorf("%w: multi-index matrix length %d is not a multiple of %d",
			tensor.ErrShapeMismatch, len(mi), nv)
	}
	npts := 1
	for _, d := range bcShape[:len(bcShape)-1] {
		npts *= d
	}
	return npts, nv, mi, len(mi) / nv, nil
}

// SimplexShapeFunction evaluates all degree-p Lagrange basis functions of a
// simplex at the barycentric points bc of shape (..., td+1), returning values
// of shape (..., ldof) with ldof = C(p+td, td). The values at any valid
// barycentric point sum to one.
//
// The degenerate case p = 0 yields the constant element: one basis function
// identically equal to 1.
func SimplexShapeFunction(bc []float64, bcShape tensor.Shape, p int, mi []int64) ([]float64, tensor.Shape, error) {
	npts, nv, mi, ldof, err := shapeFnArgs(bc, bcShape, p, mi)
	if err != nil {
		return nil, nil, err
	}
	outShape := append(bcShape[:len(bcShape)-1].Clone(), ldof)

	if p == 0 {
		phi := make([]float64, npts)
		for i := range phi {
			phi[i] = 1
		}
		return phi, outShape, nil
	}

	phi := make([]float64, npts*ldof)
	tbl := factorTable{p: p, nv: nv, a: make([]float64, (p+1)*nv)}
	for pt := 0; pt < npts; pt++ {
		tbl.fill(bc[pt*nv:(pt+1)*nv], false)
		for l := 0; l < ldof; l++ {
			prod := 1.0
			for q := 0; q < nv; q++ {
				prod *= tbl.a[int(mi[l*nv+q])*nv+q]
			}
			phi[pt*ldof+l] = prod
		}
	}
	return phi, outShape, nil
}

// SimplexGradShapeFunction evaluates the gradients of the degree-p Lagrange
// basis functions with respect to the barycentric coordinates, returning
// values of shape (..., ldof, td+1). Because the basis sums to the constant
// one, every gradient row sums to zero (numerically).
func SimplexGradShapeFunction(bc []float64, bcShape tensor.Shape, p int, mi []int64) ([]float64, tensor.Shape, error) {
	npts, nv, mi, ldof, err := shapeFnArgs(bc, bcShape, p, mi)
	if err != nil {
		return nil, nil, err
	}
	outShape := append(bcShape[:len(bcShape)-1].Clone(), ldof, nv)

	out := make([]float64, npts*ldof*nv)
	if p == 0 {
		return out, outShape, nil
	}

	tbl := factorTable{p: p, nv: nv, a: make([]float64, (p+1)*nv), f: make([]float64, (p+1)*nv)}
	for pt := 0; pt < npts; pt++ {
		tbl.fill(bc[pt*nv:(pt+1)*nv], true)
		base := pt * ldof * nv
		for l := 0; l < ldof; l++ {
			for i := 0; i < nv; i++ {
				// product rule across the nv barycentric factors
				r := tbl.f[int(mi[l*nv+i])*nv+i]
				for q := 0; q < nv; q++ {
					if q == i {
						continue
					}
					r *= tbl.a[int(mi[l*nv+q])*nv+q]
				}
				out[base+l*nv+i] = r
			}
		}
	}
	return out, outShape, nil
}
