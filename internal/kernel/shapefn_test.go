package kernel

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/basis-fem/basis/tensor"
)

// randomBarycentric fills out with npts random points on the nv-simplex.
func randomBarycentric(rng *rand.Rand, npts, nv int) []float64 {
	bc := make([]float64, npts*nv)
	for q := 0; q < npts; q++ {
		sum := 0.0
		for v := 0; v < nv; v++ {
			bc[q*nv+v] = rng.Float64()
			sum += bc[q*nv+v]
		}
		for v := 0; v < nv; v++ {
			bc[q*nv+v] /= sum
		}
	}
	return bc
}

func TestSimplexShapeFunctionPartitionOfUnity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for td := 1; td <= 3; td++ {
		nv := td + 1
		bc := randomBarycentric(rng, 7, nv)
		for p := 0; p <= 8; p++ {
			phi, shape, err := SimplexShapeFunction(bc, tensor.Shape{7, nv}, p, nil)
			if err != nil {
				t.Fatalf("p=%d td=%d: %v", p, td, err)
			}
			ldof := LDof(p, td)
			if !shape.Equal(tensor.Shape{7, ldof}) {
				t.Fatalf("p=%d td=%d: shape %v, want [7 %d]", p, td, shape, ldof)
			}
			for q := 0; q < 7; q++ {
				sum := 0.0
				for l := 0; l < ldof; l++ {
					sum += phi[q*ldof+l]
				}
				if math.Abs(sum-1) > 1e-10 {
					t.Errorf("p=%d td=%d point %d: basis sums to %g, want 1", p, td, q, sum)
				}
			}
		}
	}
}

func TestSimplexShapeFunctionLinearIsIdentity(t *testing.T) {
	// For p = 1 the Lagrange basis is the barycentric coordinates themselves.
	bc := []float64{0.2, 0.3, 0.5, 1, 0, 0}
	phi, shape, err := SimplexShapeFunction(bc, tensor.Shape{2, 3}, 1, nil)
	if err != nil {
		t.Fatalf("SimplexShapeFunction: %v", err)
	}
	if !shape.Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v, want [2 3]", shape)
	}
	for i := range bc {
		if math.Abs(phi[i]-bc[i]) > 1e-14 {
			t.Errorf("phi[%d] = %g, want %g", i, phi[i], bc[i])
		}
	}
}

func TestSimplexShapeFunctionVertexValues(t *testing.T) {
	// At a vertex the matching vertex basis function is 1 and all other
	// basis functions vanish, for every degree.
	for p := 1; p <= 4; p++ {
		bc := []float64{1, 0, 0}
		phi, _, err := SimplexShapeFunction(bc, tensor.Shape{1, 3}, p, nil)
		if err != nil {
			t.Fatalf("p=%d: %v", p, err)
		}
		mi, _ := MultiIndexMatrix(p, 2)
		ldof := LDof(p, 2)
		for l := 0; l < ldof; l++ {
			want := 0.0
			if mi[l*3] == int64(p) { // the multi-index (p, 0, 0)
				want = 1.0
			}
			if math.Abs(phi[l]-want) > 1e-12 {
				t.Errorf("p=%d dof %d: phi = %g, want %g", p, l, phi[l], want)
			}
		}
	}
}

func TestSimplexGradShapeFunctionColumnsSumToZero(t *testing.T) {
	// The basis sums to one, so summing gradients over the dof axis gives
	// zero for every barycentric direction.
	rng := rand.New(rand.NewPCG(3, 4))
	for td := 1; td <= 3; td++ {
		nv := td + 1
		bc := randomBarycentric(rng, 5, nv)
		for p := 0; p <= 6; p++ {
			grad, shape, err := SimplexGradShapeFunction(bc, tensor.Shape{5, nv}, p, nil)
			if err != nil {
				t.Fatalf("p=%d td=%d: %v", p, td, err)
			}
			ldof := LDof(p, td)
			if !shape.Equal(tensor.Shape{5, ldof, nv}) {
				t.Fatalf("p=%d td=%d: shape %v, want [5 %d %d]", p, td, shape, ldof, nv)
			}
			for q := 0; q < 5; q++ {
				for i := 0; i < nv; i++ {
					sum := 0.0
					for l := 0; l < ldof; l++ {
						sum += grad[(q*ldof+l)*nv+i]
					}
					if math.Abs(sum) > 1e-9 {
						t.Errorf("p=%d td=%d point %d direction %d: gradient column sums to %g", p, td, q, i, sum)
					}
				}
			}
		}
	}
}

func TestSimplexGradShapeFunctionMatchesFiniteDifference(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	const h = 1e-6
	for _, p := range []int{1, 2, 4} {
		for td := 1; td <= 3; td++ {
			nv := td + 1
			bc := randomBarycentric(rng, 3, nv)
			grad, _, err := SimplexGradShapeFunction(bc, tensor.Shape{3, nv}, p, nil)
			if err != nil {
				t.Fatalf("p=%d td=%d: %v", p, td, err)
			}
			ldof := LDof(p, td)
			for q := 0; q < 3; q++ {
				point := append([]float64(nil), bc[q*nv:(q+1)*nv]...)
				for i := 0; i < nv; i++ {
					plus := append([]float64(nil), point...)
					minus := append([]float64(nil), point...)
					plus[i] += h
					minus[i] -= h
					fp, _, _ := SimplexShapeFunction(plus, tensor.Shape{1, nv}, p, nil)
					fm, _, _ := SimplexShapeFunction(minus, tensor.Shape{1, nv}, p, nil)
					for l := 0; l < ldof; l++ {
						want := (fp[l] - fm[l]) / (2 * h)
						got := grad[(q*ldof+l)*nv+i]
						if math.Abs(got-want) > 1e-5*(1+math.Abs(want)) {
							t.Errorf("p=%d td=%d point %d dof %d dir %d: grad = %g, finite difference %g",
								p, td, q, l, i, got, want)
						}
					}
				}
			}
		}
	}
}

func TestSimplexShapeFunctionConstantElement(t *testing.T) {
	bc := []float64{0.25, 0.25, 0.25, 0.25}
	phi, shape, err := SimplexShapeFunction(bc, tensor.Shape{1, 4}, 0, nil)
	if err != nil {
		t.Fatalf("p=0: %v", err)
	}
	if !shape.Equal(tensor.Shape{1, 1}) || phi[0] != 1 {
		t.Errorf("p=0 basis = %v with shape %v, want [1] with shape [1 1]", phi, shape)
	}
}

func TestSimplexShapeFunctionExplicitMultiIndex(t *testing.T) {
	// Passing the multi-index matrix explicitly must agree with the
	// derived one.
	bc := randomBarycentric(rand.New(rand.NewPCG(7, 8)), 4, 3)
	mi, err := MultiIndexMatrix(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	a, _, err := SimplexShapeFunction(bc, tensor.Shape{4, 3}, 3, mi)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := SimplexShapeFunction(bc, tensor.Shape{4, 3}, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("explicit and derived multi-index disagree at %d: %g vs %g", i, a[i], b[i])
		}
	}
}
