// Package native implements the pure Go engine: host-buffer tensors,
// vectorized loops with chunked goroutine parallelism for large inputs, and
// hand-written sparse and finite-element kernels. It is the reference
// engine the others are tested against.
package native

import (
	"fmt"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/engine/opname"
	"github.com/basis-fem/basis/internal/parallel"
	"github.com/basis-fem/basis/tensor"
)

// Name under which the engine registers.
const Name = "native"

func init() {
	engine.MustRegister(New())
}

// Tensor is the native engine's tensor value: a host Array plus nothing
// else. Data is row-major and always materialized.
type Tensor struct {
	arr *tensor.Array
}

// Shape returns the tensor's dimensions.
func (t *Tensor) Shape() tensor.Shape { return t.arr.Shape() }

// DType returns the element data type.
func (t *Tensor) DType() tensor.DataType { return t.arr.DType() }

// NDim returns the number of dimensions.
func (t *Tensor) NDim() int { return t.arr.NDim() }

// Device returns the host device.
func (t *Tensor) Device() tensor.Device { return tensor.CPU }

// Engine is the pure Go engine.
type Engine struct {
	cfg parallel.Config
}

// New creates a native engine with default parallelism.
func New() *Engine {
	return &Engine{cfg: parallel.DefaultConfig()}
}

// Name returns the engine name.
func (e *Engine) Name() string { return Name }

// Convention identifies the engine's op-name table generation.
func (e *Engine) Convention() opname.Convention { return opname.NativeV1 }

// Linalg returns the linear-algebra namespace.
func (e *Engine) Linalg() engine.Linalg { return linalg{e} }

// Vmap vectorizes fn via unstack/apply/restack.
func (e *Engine) Vmap(fn engine.MappedFunc, inAxis, outAxis int) (engine.MappedFunc, error) {
	return engine.NewVmap(e, fn, inAxis, outAxis)
}

var _ engine.Engine = (*Engine)(nil)

// wrap turns a host array into a native tensor without copying.
func wrap(a *tensor.Array) *Tensor { return &Tensor{arr: a} }

func wrapFloat64s(data []float64, shape tensor.Shape) (*Tensor, error) {
	a, err := tensor.FromFloat64s(data, shape)
	if err != nil {
		return nil, err
	}
	return wrap(a), nil
}

func wrapInt64s(data []int64, shape tensor.Shape) (*Tensor, error) {
	a, err := tensor.FromInt64s(data, shape)
	if err != nil {
		return nil, err
	}
	return wrap(a), nil
}

// asNative checks tensor ownership. Foreign tensors are an error, never
// silently converted.
func asNative(t tensor.Tensor) (*Tensor, error) {
	nt, ok := t.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a native tensor", tensor.ErrForeignTensor, t)
	}
	return nt, nil
}

func checkDevice(o engine.Opts) error {
	if !o.Device.IsCPU() {
		return fmt.Errorf("%w: the native engine supports only the cpu device, got %q",
			tensor.ErrUnsupportedConfiguration, o.Device)
	}
	return nil
}

// floatData returns the float64 backing of a native tensor.
func floatData(t tensor.Tensor, what string) (*Tensor, []float64, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, nil, err
	}
	if nt.DType() != tensor.Float64 {
		return nil, nil, fmt.Errorf("%w: %s requires a float64 tensor, got %s", tensor.ErrDTypeMismatch, what, nt.DType())
	}
	return nt, nt.arr.Float64s(), nil
}

// intData returns index data as int64, widening int32.
func intData(t tensor.Tensor, what string) (*Tensor, []int64, error) {
	nt, err := asNative(t)
	if err != nil {
		return nil, nil, err
	}
	switch nt.DType() {
	case tensor.Int64:
		return nt, nt.arr.Int64s(), nil
	case tensor.Int32:
		src := nt.arr.Int32s()
		out := make([]int64, len(src))
		for i, v := range src {
			out[i] = int64(v)
		}
		return nt, out, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s requires an integer tensor, got %s", tensor.ErrDTypeMismatch, what, nt.DType())
	}
}
