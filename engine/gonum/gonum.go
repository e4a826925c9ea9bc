// Package gonum implements the engine backed by gonum: dense linear algebra
// through gonum/mat, vectorized float64 slices through gonum/floats,
// distributions through gonum/stat/distuv and compressed sparse matrices
// through the james-bowman sparse package. The engine is double precision
// throughout; float32 and int32 element types are rejected as an unsupported
// configuration rather than silently widened.
package gonum

import (
	"fmt"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/engine/opname"
	"github.com/basis-fem/basis/internal/arrayops"
	"github.com/basis-fem/basis/tensor"
)

// Name under which the engine registers.
const Name = "gonum"

func init() {
	engine.MustRegister(New())
}

// Tensor is the gonum engine's tensor value: a host array restricted to
// the dtypes gonum working memory uses (float64, int64, bool).
type Tensor struct {
	arr *tensor.Array
}

func (t *Tensor) Shape() tensor.Shape    { return t.arr.Shape() }
func (t *Tensor) DType() tensor.DataType { return t.arr.DType() }
func (t *Tensor) NDim() int              { return t.arr.NDim() }
func (t *Tensor) Device() tensor.Device  { return tensor.CPU }

// Engine is the gonum-backed engine.
type Engine struct{}

// New creates a gonum engine.
func New() *Engine { return &Engine{} }

func (e *Engine) Name() string                  { return Name }
func (e *Engine) Convention() opname.Convention { return opname.GonumV1 }

func (e *Engine) Linalg() engine.Linalg { return linalg{e} }

func (e *Engine) Vmap(fn engine.MappedFunc, inAxis, outAxis int) (engine.MappedFunc, error) {
	return engine.NewVmap(e, fn, inAxis, outAxis)
}

var _ engine.Engine = (*Engine)(nil)

func checkDType(dt tensor.DataType) error {
	switch dt {
	case tensor.Float64, tensor.Int64, tensor.Bool:
		return nil
	default:
		return fmt.Errorf("%w: the gonum engine works in float64/int64, %s is not available", tensor.ErrUnsupportedConfiguration, dt)
	}
}

func checkDevice(o engine.Opts) error {
	if !o.Device.IsCPU() {
		return fmt.Errorf("%w: the gonum engine is host-only, device %q is not available", tensor.ErrUnsupportedConfiguration, o.Device)
	}
	return nil
}

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

func asGonum(t tensor.Tensor) (*Tensor, error) {
	gt, ok := t.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: the gonum engine got a %T", tensor.ErrForeignTensor, t)
	}
	return gt, nil
}

func floatData(t tensor.Tensor, what string) ([]float64, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	return arrayops.FloatSlice(gt.arr, what)
}

func intData(t tensor.Tensor, what string) ([]int64, error) {
	gt, err := asGonum(t)
	if err != nil {
		return nil, err
	}
	return arrayops.IntSlice(gt.arr, what)
}
