package engine

import (
	"fmt"

	"github.com/basis-fem/basis/tensor"
)

// NewVmap builds the vectorized form of fn using an engine's Unstack and
// Stack: every tensor argument is split along inAxis, fn is applied to each
// set of leading slices independently, and results are restacked along
// outAxis, each tuple position separately. Engines without a native
// vectorizing transform implement Vmap with this.
//
// Only inAxis == outAxis is supported; a mismatch is a configuration error,
// not a silent reinterpretation.
func NewVmap(e Engine, fn MappedFunc, inAxis, outAxis int) (MappedFunc, error) {
	if inAxis != outAxis {
		return nil, fmt.Errorf("%w: vmap requires in_axis == out_axis, got in_axis=%d, out_axis=%d",
			tensor.ErrUnsupportedConfiguration, inAxis, outAxis)
	}

	return func(args ...tensor.Tensor) ([]tensor.Tensor, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: vmap applied to no arguments", tensor.ErrShapeMismatch)
		}

		slices := make([][]tensor.Tensor, len(args))
		n := -1
		for i, arg := range args {
			s, err := e.Unstack(arg, inAxis)
			if err != nil {
				return nil, err
			}
			if n == -1 {
				n = len(s)
			} else if len(s) != n {
				return nil, fmt.Errorf("%w: vmap arguments disagree along axis %d: %d vs %d slices",
					tensor.ErrShapeMismatch, inAxis, n, len(s))
			}
			slices[i] = s
		}

		var results [][]tensor.Tensor
		callArgs := make([]tensor.Tensor, len(args))
		for k := 0; k < n; k++ {
			for i := range args {
				callArgs[i] = slices[i][k]
			}
			out, err := fn(callArgs...)
			if err != nil {
				return nil, err
			}
			if results == nil {
				results = make([][]tensor.Tensor, len(out))
			} else if len(out) != len(results) {
				return nil, fmt.Errorf("%w: vmap function returned %d values after returning %d",
					tensor.ErrShapeMismatch, len(out), len(results))
			}
			for pos, t := range out {
				results[pos] = append(results[pos], t)
			}
		}

		stacked := make([]tensor.Tensor, len(results))
		for pos, parts := range results {
			s, err := e.Stack(outAxis, parts...)
			if err != nil {
				return nil, err
			}
			stacked[pos] = s
		}
		return stacked, nil
	}, nil
}
