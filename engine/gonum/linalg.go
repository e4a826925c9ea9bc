package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/internal/kernel"
	"github.com/basis-fem/basis/tensor"
)

type linalg struct {
	e *Engine
}

var _ engine.Linalg = linalg{}

// Det computes determinants over the trailing (n, n) axes through mat.Det;
// unlike the hand-written kernels this has no size ceiling.
func (l linalg) Det(t tensor.Tensor) (tensor.Tensor, error) {
	data, err := floatData(t, "det operand")
	if err != nil {
		return nil, err
	}
	shape := t.Shape()
	nd := len(shape)
	if nd < 2 {
		return nil, fmt.Errorf("%w: det needs at least 2 dimensions, got shape %v", tensor.ErrShapeMismatch, shape)
	}
	n := shape[nd-1]
	if shape[nd-2] != n {
		return nil, fmt.Errorf("%w: det of non-square trailing axes %dx%d", tensor.ErrShapeMismatch, shape[nd-2], n)
	}
	outShape := shape[:nd-2].Clone()
	batch := outShape.NumElements()
	out := make([]float64, batch)
	step := n * n
	for b := 0; b < batch; b++ {
		out[b] = mat.Det(mat.NewDense(n, n, data[b*step:(b+1)*step]))
	}
	return wrapFloat64s(out, outShape)
}

// Norm is the L2 norm, over the whole tensor or along one axis.
func (l linalg) Norm(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return l.e.reduce(t, axis, keepdims, "norm", func(row []float64) float64 {
		return floats.Norm(row, 2)
	}, nil)
}

// Cross computes the 3-D cross product over the trailing axis.
func (l linalg) Cross(a, b tensor.Tensor) (tensor.Tensor, error) {
	ad, err := floatData(a, "cross operand")
	if err != nil {
		return nil, err
	}
	bd, err := floatData(b, "cross operand")
	if err != nil {
		return nil, err
	}
	if !a.Shape().Equal(b.Shape()) {
		return nil, fmt.Errorf("%w: cross operands have shapes %v and %v", tensor.ErrShapeMismatch, a.Shape(), b.Shape())
	}
	out, err := kernel.Cross(ad, bd, a.Shape())
	if err != nil {
		return nil, err
	}
	return wrapFloat64s(out, a.Shape().Clone())
}

// MatMul multiplies an (m, k) matrix by a (k, n) matrix or a length-k
// vector through mat.Dense.
func (l linalg) MatMul(a, b tensor.Tensor) (tensor.Tensor, error) {
	ad, err := floatData(a, "matmul operand")
	if err != nil {
		return nil, err
	}
	bd, err := floatData(b, "matmul operand")
	if err != nil {
		return nil, err
	}
	if a.NDim() != 2 {
		return nil, fmt.Errorf("%w: matmul left operand must be a matrix, got shape %v", tensor.ErrShapeMismatch, a.Shape())
	}
	m, k := a.Shape()[0], a.Shape()[1]
	am := mat.NewDense(m, k, ad)
	switch b.NDim() {
	case 1:
		if b.Shape()[0] != k {
			return nil, fmt.Errorf("%w: matmul (%d, %d) with vector of length %d", tensor.ErrShapeMismatch, m, k, b.Shape()[0])
		}
		out := mat.NewVecDense(m, nil)
		out.MulVec(am, mat.NewVecDense(k, bd))
		return wrapFloat64s(out.RawVector().Data, tensor.Shape{m})
	case 2:
		if b.Shape()[0] != k {
			return nil, fmt.Errorf("%w: matmul (%d, %d) with (%d, %d)", tensor.ErrShapeMismatch, m, k, b.Shape()[0], b.Shape()[1])
		}
		n := b.Shape()[1]
		out := mat.NewDense(m, n, nil)
		out.Mul(am, mat.NewDense(k, n, bd))
		return wrapFloat64s(out.RawMatrix().Data, tensor.Shape{m, n})
	default:
		return nil, fmt.Errorf("%w: matmul right operand must be a vector or matrix, got shape %v", tensor.ErrShapeMismatch, b.Shape())
	}
}
