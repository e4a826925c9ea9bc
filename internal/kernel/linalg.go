package kernel

import (
	"fmt"

	"github.com/basis-fem/basis/tensor"
)

// Det computes determinants over the trailing (n, n) axes of a batched
// matrix stack. Only n <= 3 is supported; larger systems belong to a
// dense solver, not these closed forms.
func Det(a []float64, shape tensor.Shape) ([]float64, tensor.Shape, error) {
	nd := len(shape)
	if nd < 2 {
		return nil, nil, fmt.Errorf("%w: det needs at least 2 dimensions, got shape %v", tensor.ErrShapeMismatch, shape)
	}
	n := shape[nd-1]
	if shape[nd-2] != n {
		return nil, nil, fmt.Errorf("%w: det of non-square trailing axes %dx%d", tensor.ErrShapeMismatch, shape[nd-2], n)
	}
	if n < 1 || n > 3 {
		return nil, nil, fmt.Errorf("%w: det supports trailing sizes 1..3, got %d", tensor.ErrUnsupportedConfiguration, n)
	}
	outShape := shape[:nd-2].Clone()
	batch := outShape.NumElements()
	out := make([]float64, batch)
	step := n * n
	for b := 0; b < batch; b++ {
		out[b] = det(a[b*step:(b+1)*step], n)
	}
	return out, outShape, nil
}

// Cross computes the 3-D cross product over the trailing axis of two
// stacks with identical shapes.
func Cross(a, b []float64, shape tensor.Shape) ([]float64, error) {
	nd := len(shape)
	if nd < 1 || shape[nd-1] != 3 {
		return nil, fmt.Errorf("%w: cross needs a trailing axis of size 3, got shape %v", tensor.ErrShapeMismatch, shape)
	}
	batch := shape.NumElements() / 3
	out := make([]float64, shape.NumElements())
	var c [3]float64
	for i := 0; i < batch; i++ {
		cross3(&c, [3]float64{a[3*i], a[3*i+1], a[3*i+2]}, [3]float64{b[3*i], b[3*i+1], b[3*i+2]})
		copy(out[3*i:3*i+3], c[:])
	}
	return out, nil
}

// MatMul multiplies an (m, k) matrix by either a (k, n) matrix or a
// length-k vector, returning the result and its shape.
func MatMul(a []float64, aShape tensor.Shape, b []float64, bShape tensor.Shape) ([]float64, tensor.Shape, error) {
	if len(aShape) != 2 {
		return nil, nil, fmt.Errorf("%w: matmul left operand must be a matrix, got shape %v", tensor.ErrShapeMismatch, aShape)
	}
	m, k := aShape[0], aShape[1]
	switch len(bShape) {
	case 1:
		if bShape[0] != k {
			return nil, nil, fmt.Errorf("%w: matmul (%d, %d) with vector of length %d", tensor.ErrShapeMismatch, m, k, bShape[0])
		}
		out := make([]float64, m)
		for i := 0; i < m; i++ {
			var acc float64
			row := a[i*k : (i+1)*k]
			for j := 0; j < k; j++ {
				acc += row[j] * b[j]
			}
			out[i] = acc
		}
		return out, tensor.Shape{m}, nil
	case 2:
		if bShape[0] != k {
			return nil, nil, fmt.Errorf("%w: matmul (%d, %d) with (%d, %d)", tensor.ErrShapeMismatch, m, k, bShape[0], bShape[1])
		}
		n := bShape[1]
		out := make([]float64, m*n)
		for i := 0; i < m; i++ {
			row := a[i*k : (i+1)*k]
			dst := out[i*n : (i+1)*n]
			for j := 0; j < k; j++ {
				v := row[j]
				if v == 0 {
					continue
				}
				src := b[j*n : (j+1)*n]
				for c := 0; c < n; c++ {
					dst[c] += v * src[c]
				}
			}
		}
		return out, tensor.Shape{m, n}, nil
	default:
		return nil, nil, fmt.Errorf("%w: matmul right operand must be a vector or matrix, got shape %v", tensor.ErrShapeMismatch, bShape)
	}
}
