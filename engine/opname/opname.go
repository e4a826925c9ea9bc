// Package opname holds the declarative canonical-to-native operation name
// tables. Each engine declares one Table per API convention of the library it
// wraps; the registry uses the table at registration time to verify the
// engine covers the full canonical surface, and the table documents the 1:1
// correspondence between canonical names and the wrapped library's own
// symbols. Dispatch itself is ordinary interface method calls; the tables are
// data, never reflection.
package opname

import (
	"fmt"

	"github.com/basis-fem/basis/tensor"
)

// Convention tags the array-API generation an engine's name table follows.
// Libraries rename operations between major releases (concat vs concatenate
// and the like), so tables are versioned by convention rather than patched
// in place.
type Convention string

// Conventions of the shipped engines.
const (
	// NativeV1 is the pure Go engine's own surface.
	NativeV1 Convention = "native/v1"
	// GonumV1 follows gonum.org/v1 package naming.
	GonumV1 Convention = "gonum/v1"
	// GorgoniaV09 follows the gorgonia.org/tensor v0.9 API generation.
	GorgoniaV09 Convention = "gorgonia/v0.9"
)

// Table maps canonical operation names to the native symbol each engine
// forwards to. A value of "-" marks an operation the engine implements with
// hand-written kernels rather than a wrapped library call.
type Table map[string]string

// Resolve returns the native name for a canonical operation, failing fast
// for names absent from the table rather than resolving to an unrelated
// symbol.
func (t Table) Resolve(canonical string) (string, error) {
	native, ok := t[canonical]
	if !ok {
		return "", fmt.Errorf("%w: canonical operation %q has no native mapping", tensor.ErrMissingOperation, canonical)
	}
	return native, nil
}

// Merge returns a copy of t with overrides applied, for conventions that
// rename a handful of operations relative to a base table.
func (t Table) Merge(overrides Table) Table {
	out := make(Table, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Canonical is the full canonical operation surface. Every registered engine
// must map every name here; partial silent omission is forbidden.
var Canonical = []string{
	// creation
	"zeros", "ones", "full", "empty", "eye", "arange", "linspace",
	// conversion and introspection
	"from_host", "to_host", "device_type", "device_index",
	// elementwise
	"add", "sub", "mul", "div", "neg", "abs", "sqrt", "scale", "shift", "pow",
	// reduction and statistics
	"sum", "prod", "mean", "max", "min", "cumsum", "cumprod", "argmax",
	// manipulation
	"reshape", "transpose", "concat", "stack", "unstack", "flip",
	"expand_dims", "squeeze", "take", "set_at", "add_at", "cast",
	// linear algebra
	"det", "norm", "cross", "matmul",
	// sparse
	"coo_to_csr", "coo_spmm", "csr_spmm", "csr_spspmm",
	// finite elements
	"multi_index_matrix", "simplex_shape_function", "simplex_grad_shape_function",
	"simplex_measure", "barycenter", "bc_to_points", "tensorprod",
	"edge_length", "edge_normal", "edge_tangent",
	"triangle_area_3d", "triangle_grad_lambda_2d", "triangle_grad_lambda_3d",
	"interval_grad_lambda", "tetrahedron_grad_lambda_3d",
	// transforms
	"vmap",
	// random
	"seed", "uniform", "integers", "normal",
}

// Validate checks that the table covers the entire canonical surface.
func Validate(t Table) error {
	for _, name := range Canonical {
		if _, err := t.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}
