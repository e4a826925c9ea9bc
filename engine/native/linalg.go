package native

import (
	"fmt"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/internal/kernel"
	"github.com/basis-fem/basis/tensor"
)

type linalg struct {
	e *Engine
}

var _ engine.Linalg = linalg{}

func (l linalg) Det(t tensor.Tensor) (tensor.Tensor, error) {
	_, data, err := floatData(t, "det operand")
	if err != nil {
		return nil, err
	}
	out, shape, err := kernel.Det(data, t.Shape())
	if err != nil {
		return nil, err
	}
	return wrapFloat64s(out, shape)
}

// Norm is the L2 norm, over the whole tensor or along one axis.
func (l linalg) Norm(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	sq, err := l.e.Mul(t, t)
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	sum, err := l.e.Sum(sq, axis, keepdims)
	if err != nil {
		return nil, fmt.Errorf("norm: %w", err)
	}
	return l.e.Sqrt(sum)
}

func (l linalg) Cross(a, b tensor.Tensor) (tensor.Tensor, error) {
	_, ad, err := floatData(a, "cross operand")
	if err != nil {
		return nil, err
	}
	_, bd, err := floatData(b, "cross operand")
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

func (l linalg) MatMul(a, b tensor.Tensor) (tensor.Tensor, error) {
	_, ad, err := floatData(a, "matmul operand")
	if err != nil {
		return nil, err
	}
	_, bd, err := floatData(b, "matmul operand")
	if err != nil {
		return nil, err
	}
	out, shape, err := kernel.MatMul(ad, a.Shape(), bd, b.Shape())
	if err != nil {
		return nil, err
	}
	return wrapFloat64s(out, shape)
}
