// Package gorgonia implements the engine backed by gorgonia.org/tensor
// dense values. Elementwise arithmetic, reductions, concatenation and dot
// products go through the tensor package; operations outside its API
// (sparse kernels, finite elements, scatter and cumulative ops) fall back
// to the host path shared with the native engine, so every canonical
// operation is covered either way.
package gorgonia

import (
	"fmt"

	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/engine/native"
	"github.com/basis-fem/basis/engine/opname"
	"github.com/basis-fem/basis/tensor"
)

// Name under which the engine registers.
const Name = "gorgonia"

func init() {
	engine.MustRegister(New())
}

// Tensor is the gorgonia engine's tensor value.
type Tensor struct {
	d *gt.Dense
}

func (t *Tensor) Shape() tensor.Shape {
	gs := t.d.Shape()
	if gs.IsScalar() {
		return tensor.Shape{}
	}
	out := make(tensor.Shape, len(gs))
	copy(out, gs)
	return out
}

func (t *Tensor) DType() tensor.DataType {
	dt, _ := fromGtDtype(t.d.Dtype())
	return dt
}

func (t *Tensor) NDim() int             { return len(t.Shape()) }
func (t *Tensor) Device() tensor.Device { return tensor.CPU }

// Engine is the gorgonia-backed engine. The embedded native engine serves
// as the host fallback for operations the tensor package does not cover.
type Engine struct {
	host *native.Engine
}

// New creates a gorgonia engine.
func New() *Engine { return &Engine{host: native.New()} }

func (e *Engine) Name() string                  { return Name }
func (e *Engine) Convention() opname.Convention { return opname.GorgoniaV09 }

func (e *Engine) Linalg() engine.Linalg { return linalg{e} }

func (e *Engine) Vmap(fn engine.MappedFunc, inAxis, outAxis int) (engine.MappedFunc, error) {
	return engine.NewVmap(e, fn, inAxis, outAxis)
}

var _ engine.Engine = (*Engine)(nil)

func toGtDtype(dt tensor.DataType) (gt.Dtype, error) {
	switch dt {
	case tensor.Float64:
		return gt.Float64, nil
	case tensor.Float32:
		return gt.Float32, nil
	case tensor.Int64:
		return gt.Int64, nil
	case tensor.Int32:
		return gt.Int32, nil
	case tensor.Bool:
		return gt.Bool, nil
	default:
		return gt.Dtype{}, fmt.Errorf("%w: dtype %s has no gorgonia mapping", tensor.ErrUnsupportedConfiguration, dt)
	}
}

func fromGtDtype(dt gt.Dtype) (tensor.DataType, error) {
	switch dt {
	case gt.Float64:
		return tensor.Float64, nil
	case gt.Float32:
		return tensor.Float32, nil
	case gt.Int64:
		return tensor.Int64, nil
	case gt.Int32:
		return tensor.Int32, nil
	case gt.Bool:
		return tensor.Bool, nil
	default:
		return 0, fmt.Errorf("%w: gorgonia dtype %v has no host mapping", tensor.ErrUnsupportedConfiguration, dt)
	}
}

func asGorgonia(t tensor.Tensor) (*Tensor, error) {
	gg, ok := t.(*Tensor)
	if !ok {
		return nil, fmt.Errorf("%w: the gorgonia engine got a %T", tensor.ErrForeignTensor, t)
	}
	return gg, nil
}

func checkDevice(o engine.Opts) error {
	if !o.Device.IsCPU() {
		return fmt.Errorf("%w: the gorgonia engine is host-only, device %q is not available", tensor.ErrUnsupportedConfiguration, o.Device)
	}
	return nil
}

func wrapDense(d *gt.Dense) *Tensor { return &Tensor{d: d} }

// fromHostArray copies a host array into a dense value.
func fromHostArray(a *tensor.Array) (*Tensor, error) {
	shape := a.Shape()
	var backing interface{}
	switch a.DType() {
	case tensor.Float64:
		backing = append([]float64(nil), a.Float64s()...)
	case tensor.Float32:
		backing = append([]float32(nil), a.Float32s()...)
	case tensor.Int64:
		backing = append([]int64(nil), a.Int64s()...)
	case tensor.Int32:
		backing = append([]int32(nil), a.Int32s()...)
	default:
		backing = append([]bool(nil), a.Bools()...)
	}
	if len(shape) == 0 {
		switch b := backing.(type) {
		case []float64:
			return wrapDense(gt.New(gt.FromScalar(b[0]))), nil
		case []float32:
			return wrapDense(gt.New(gt.FromScalar(b[0]))), nil
		case []int64:
			return wrapDense(gt.New(gt.FromScalar(b[0]))), nil
		case []int32:
			return wrapDense(gt.New(gt.FromScalar(b[0]))), nil
		case []bool:
			return wrapDense(gt.New(gt.FromScalar(b[0]))), nil
		}
	}
	return wrapDense(gt.New(gt.WithShape(shape...), gt.WithBacking(backing))), nil
}

// toHostArray copies a dense value out to a host array. Scalar results of
// the tensor package come back as bare values rather than slices.
func toHostArray(t *Tensor) (*tensor.Array, error) {
	shape := t.Shape()
	switch data := t.d.Data().(type) {
	case []float64:
		return tensor.FromFloat64s(append([]float64(nil), data...), shape)
	case []float32:
		return tensor.FromFloat32s(append([]float32(nil), data...), shape)
	case []int64:
		return tensor.FromInt64s(append([]int64(nil), data...), shape)
	case []int32:
		return tensor.FromInt32s(append([]int32(nil), data...), shape)
	case []bool:
		return tensor.FromBools(append([]bool(nil), data...), shape)
	case float64:
		return tensor.FromFloat64s([]float64{data}, tensor.Shape{})
	case float32:
		return tensor.FromFloat32s([]float32{data}, tensor.Shape{})
	case int64:
		return tensor.FromInt64s([]int64{data}, tensor.Shape{})
	case int32:
		return tensor.FromInt32s([]int32{data}, tensor.Shape{})
	case []int:
		// Index results (argmax) come back as platform ints.
		wide := make([]int64, len(data))
		for i, v := range data {
			wide[i] = int64(v)
		}
		return tensor.FromInt64s(wide, shape)
	case int:
		return tensor.FromInt64s([]int64{int64(data)}, tensor.Shape{})
	case bool:
		return tensor.FromBools([]bool{data}, tensor.Shape{})
	default:
		return nil, errors.Errorf("gorgonia tensor holds unexpected backing %T", t.d.Data())
	}
}

// toNative shuttles a gorgonia tensor onto the host fallback engine.
func (e *Engine) toNative(t tensor.Tensor) (tensor.Tensor, error) {
	gg, err := asGorgonia(t)
	if err != nil {
		return nil, err
	}
	arr, err := toHostArray(gg)
	if err != nil {
		return nil, err
	}
	return e.host.FromHost(arr)
}

// optNative converts an optional operand, passing nil through.
func (e *Engine) optNative(t tensor.Tensor) (tensor.Tensor, error) {
	if t == nil {
		return nil, nil
	}
	return e.toNative(t)
}

// fromNative shuttles a host fallback result back into a gorgonia tensor.
func (e *Engine) fromNative(t tensor.Tensor) (tensor.Tensor, error) {
	arr, err := e.host.ToHost(t)
	if err != nil {
		return nil, err
	}
	return fromHostArray(arr)
}

// fallback1 runs a unary host-fallback operation.
func (e *Engine) fallback1(t tensor.Tensor, op func(tensor.Tensor) (tensor.Tensor, error)) (tensor.Tensor, error) {
	ht, err := e.toNative(t)
	if err != nil {
		return nil, err
	}
	out, err := op(ht)
	if err != nil {
		return nil, err
	}
	return e.fromNative(out)
}

// fallback2 runs a binary host-fallback operation.
func (e *Engine) fallback2(a, b tensor.Tensor, op func(x, y tensor.Tensor) (tensor.Tensor, error)) (tensor.Tensor, error) {
	ha, err := e.toNative(a)
	if err != nil {
		return nil, err
	}
	hb, err := e.toNative(b)
	if err != nil {
		return nil, err
	}
	out, err := op(ha, hb)
	if err != nil {
		return nil, err
	}
	return e.fromNative(out)
}
