// Package engine defines the canonical tensor-operation surface that
// finite-element code programs against, the registry of interchangeable
// engines implementing it, and the Context type scoping an engine selection
// plus a random-number stream.
//
// Calling code selects an engine once:
//
//	cx, err := engine.Select("gonum")
//	bc, _ := cx.FromHost(points)
//	phi, _ := cx.SimplexShapeFunction(bc, 2, nil)
//
// and every subsequent canonical call dispatches to that engine. Contexts
// are independent values, so concurrent goroutines may hold different
// selections without interference.
package engine

import (
	"github.com/basis-fem/basis/engine/opname"
	"github.com/basis-fem/basis/tensor"
)

// AllAxes selects reduction over every axis, producing a scalar.
const AllAxes = -1 << 30

// Opts carries the optional dtype/device arguments of creation operations.
type Opts struct {
	DType  tensor.DataType
	Device tensor.Device
}

// Option configures a creation operation.
type Option func(*Opts)

// WithDType requests an element type. The default is Float64.
func WithDType(dt tensor.DataType) Option {
	return func(o *Opts) { o.DType = dt }
}

// WithDevice requests a device. Host-only engines accept "" and "cpu" and
// fail explicitly for anything else.
func WithDevice(d tensor.Device) Option {
	return func(o *Opts) { o.Device = d }
}

// MakeOpts folds options into an Opts value. Intended for engine
// implementations.
func MakeOpts(opts ...Option) Opts {
	var o Opts
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// MappedFunc is the function form accepted and produced by Vmap: positional
// tensor arguments in, a tuple of tensors out.
type MappedFunc func(args ...tensor.Tensor) ([]tensor.Tensor, error)

// Linalg groups the linear-algebra operations of an engine.
type Linalg interface {
	// Det returns the determinants of the trailing square matrices of t,
	// shape (..., n, n) → (...), for n ≤ 3.
	Det(t tensor.Tensor) (tensor.Tensor, error)

	// Norm returns the Euclidean norm along axis.
	Norm(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error)

	// Cross returns the cross product of 3-vectors along the last axis.
	Cross(a, b tensor.Tensor) (tensor.Tensor, error)

	// MatMul multiplies two rank-2 tensors, or a rank-2 by a rank-1.
	MatMul(a, b tensor.Tensor) (tensor.Tensor, error)
}

// Random groups the random-number operations. Each Context owns one Random
// value per engine; reseeding replaces the generator deterministically, so a
// given seed always yields the same subsequent sequence for a given engine.
type Random interface {
	// Seed resets the generator state deterministically.
	Seed(seed int64)

	// Uniform draws from U(0, 1).
	Uniform(shape tensor.Shape, opts ...Option) (tensor.Tensor, error)

	// Integers draws uniformly from [low, high).
	Integers(low, high int64, shape tensor.Shape, opts ...Option) (tensor.Tensor, error)

	// Normal draws from N(0, 1).
	Normal(shape tensor.Shape, opts ...Option) (tensor.Tensor, error)
}

// Engine is the canonical operation surface every tensor-computation engine
// implements. Implementing the interface is what guarantees full coverage:
// an engine that genuinely cannot support an operation must return
// tensor.ErrUnsupportedOperation explicitly, never omit it silently. The
// op-name table (OpNames) is validated against opname.Canonical at
// registration.
//
// Implementations:
//   - engine/native: pure Go loops over host buffers
//   - engine/gonum: gonum matrices plus a native sparse library
//   - engine/gorgonia: gorgonia.org/tensor dense values
//
// All operations are synchronous: engines with deferred execution must
// materialize results before returning.
type Engine interface {
	// Name returns the unique engine name used for registration/selection.
	Name() string

	// Convention identifies the API generation of the engine's name table.
	Convention() opname.Convention

	// OpNames returns the canonical-to-native operation name table.
	OpNames() opname.Table

	// Creation. Every constructor accepts dtype/device options; host-only
	// engines reject devices other than "" or "cpu" with an explicit error.

	Zeros(shape tensor.Shape, opts ...Option) (tensor.Tensor, error)
	Ones(shape tensor.Shape, opts ...Option) (tensor.Tensor, error)
	Full(shape tensor.Shape, value float64, opts ...Option) (tensor.Tensor, error)
	Empty(shape tensor.Shape, opts ...Option) (tensor.Tensor, error)
	Eye(n int, opts ...Option) (tensor.Tensor, error)
	Arange(start, stop, step float64, opts ...Option) (tensor.Tensor, error)
	Linspace(start, stop float64, num int, opts ...Option) (tensor.Tensor, error)

	// Conversion and introspection. ToHost/FromHost are loss-free round
	// trips; the introspection calls never trigger a data transfer.

	FromHost(a *tensor.Array, opts ...Option) (tensor.Tensor, error)
	ToHost(t tensor.Tensor) (*tensor.Array, error)
	DeviceType(t tensor.Tensor) (string, error)
	DeviceIndex(t tensor.Tensor) (int, error)

	// Elementwise. Binary operations broadcast NumPy-style.

	Add(a, b tensor.Tensor) (tensor.Tensor, error)
	Sub(a, b tensor.Tensor) (tensor.Tensor, error)
	Mul(a, b tensor.Tensor) (tensor.Tensor, error)
	Div(a, b tensor.Tensor) (tensor.Tensor, error)
	Neg(t tensor.Tensor) (tensor.Tensor, error)
	Abs(t tensor.Tensor) (tensor.Tensor, error)
	Sqrt(t tensor.Tensor) (tensor.Tensor, error)
	Scale(t tensor.Tensor, s float64) (tensor.Tensor, error)
	Shift(t tensor.Tensor, s float64) (tensor.Tensor, error)
	Pow(t tensor.Tensor, p float64) (tensor.Tensor, error)

	// Reductions and statistics. axis may be AllAxes or negative.

	Sum(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error)
	Prod(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error)
	Mean(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error)
	Max(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error)
	Min(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error)
	CumSum(t tensor.Tensor, axis int) (tensor.Tensor, error)
	CumProd(t tensor.Tensor, axis int) (tensor.Tensor, error)
	ArgMax(t tensor.Tensor, axis int) (tensor.Tensor, error)

	// Manipulation.

	Reshape(t tensor.Tensor, shape tensor.Shape) (tensor.Tensor, error)
	Transpose(t tensor.Tensor, axes ...int) (tensor.Tensor, error)
	Concat(axis int, ts ...tensor.Tensor) (tensor.Tensor, error)
	Stack(axis int, ts ...tensor.Tensor) (tensor.Tensor, error)
	Unstack(t tensor.Tensor, axis int) ([]tensor.Tensor, error)
	Flip(t tensor.Tensor, axis int) (tensor.Tensor, error)
	ExpandDims(t tensor.Tensor, axis int) (tensor.Tensor, error)
	Squeeze(t tensor.Tensor, axis int) (tensor.Tensor, error)
	Take(t tensor.Tensor, index tensor.Tensor, axis int) (tensor.Tensor, error)
	SetAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error)
	AddAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error)
	Cast(t tensor.Tensor, dtype tensor.DataType) (tensor.Tensor, error)

	// Linalg returns the linear-algebra namespace.
	Linalg() Linalg

	// Sparse kernels. Dense operands of rank ≥ 3 are a documented
	// limitation surfaced as an unsupported-operation error (batched sparse
	// products), never silently truncated.

	CooToCsr(indices, values tensor.Tensor, shape [2]int) (rowptr, col, data tensor.Tensor, err error)
	CooSpmm(indices, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error)
	CsrSpmm(rowptr, col, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error)
	CsrSpspmm(rowptrA, colA, dataA tensor.Tensor, shapeA [2]int,
		rowptrB, colB, dataB tensor.Tensor, shapeB [2]int) (rowptr, col, data tensor.Tensor, err error)

	// Finite-element kernels. mi == nil derives the multi-index matrix from
	// the degree and the barycentric dimensionality.

	MultiIndexMatrix(p, td int) (tensor.Tensor, error)
	SimplexShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error)
	SimplexGradShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error)
	SimplexMeasure(entity, node tensor.Tensor) (tensor.Tensor, error)
	Barycenter(entity, node tensor.Tensor) (tensor.Tensor, error)
	BcToPoints(bc, node, entity tensor.Tensor) (tensor.Tensor, error)
	Tensorprod(ts ...tensor.Tensor) (tensor.Tensor, error)
	EdgeLength(edge, node tensor.Tensor) (tensor.Tensor, error)
	EdgeNormal(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error)
	EdgeTangent(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error)
	TriangleArea3D(tri, node tensor.Tensor) (tensor.Tensor, error)
	TriangleGradLambda2D(tri, node tensor.Tensor) (tensor.Tensor, error)
	TriangleGradLambda3D(tri, node tensor.Tensor) (tensor.Tensor, error)
	IntervalGradLambda(line, node tensor.Tensor) (tensor.Tensor, error)
	TetrahedronGradLambda3D(tet, node, localFace tensor.Tensor) (tensor.Tensor, error)

	// Vmap vectorizes fn along inAxis of every tensor argument, restacking
	// results (tuple positions independently) along outAxis. Only
	// inAxis == outAxis is supported; a mismatch is a configuration error.
	Vmap(fn MappedFunc, inAxis, outAxis int) (MappedFunc, error)

	// NewRandom creates an independent random namespace with fresh state.
	NewRandom() Random
}
