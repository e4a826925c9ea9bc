package gorgonia

import (
	"fmt"

	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

type linalg struct {
	e *Engine
}

var _ engine.Linalg = linalg{}

// Det computes determinants over the trailing (n, n) axes through the host
// kernels.
func (l linalg) Det(t tensor.Tensor) (tensor.Tensor, error) {
	return l.e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return l.e.host.Linalg().Det(x)
	})
}

// Norm is the L2 norm, over the whole tensor or along one axis.
func (l linalg) Norm(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return l.e.fallback1(t, func(x tensor.Tensor) (tensor.Tensor, error) {
		return l.e.host.Linalg().Norm(x, axis, keepdims)
	})
}

// Cross computes the 3-D cross product over the trailing axis through the
// host kernels.
func (l linalg) Cross(a, b tensor.Tensor) (tensor.Tensor, error) {
	return l.e.fallback2(a, b, func(x, y tensor.Tensor) (tensor.Tensor, error) {
		return l.e.host.Linalg().Cross(x, y)
	})
}

// MatMul multiplies a matrix by a matrix or vector through tensor.Dot.
func (l linalg) MatMul(a, b tensor.Tensor) (tensor.Tensor, error) {
	ga, err := asGorgonia(a)
	if err != nil {
		return nil, err
	}
	gb, err := asGorgonia(b)
	if err != nil {
		return nil, err
	}
	if !ga.DType().IsFloat() || ga.DType() != gb.DType() {
		return nil, fmt.Errorf("%w: matmul needs matching floating operands, got %s and %s",
			tensor.ErrDTypeMismatch, ga.DType(), gb.DType())
	}
	if ga.NDim() != 2 || gb.NDim() < 1 || gb.NDim() > 2 {
		return nil, fmt.Errorf("%w: matmul of shapes %v and %v", tensor.ErrShapeMismatch, ga.Shape(), gb.Shape())
	}
	out, err := gt.Dot(ga.d, gb.d)
	if err != nil {
		return nil, errors.Wrap(err, "gorgonia matmul")
	}
	return wrapDense(out.(*gt.Dense)), nil
}
