package native

import (
	"fmt"
	"math/rand/v2"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

// random draws from a PCG source owned by one namespace; namespaces never
// share state, so concurrent contexts stay independent.
type random struct {
	rng *rand.Rand
}

func (e *Engine) NewRandom() engine.Random {
	r := &random{}
	r.Seed(0)
	return r
}

func (r *random) Seed(seed int64) {
	r.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

func floatDTypeOpt(o engine.Opts, name string) (tensor.DataType, error) {
	if err := checkDevice(o); err != nil {
		return 0, err
	}
	if !o.DType.IsFloat() {
		return 0, fmt.Errorf("%w: %s produces floating-point samples, not %s", tensor.ErrDTypeMismatch, name, o.DType)
	}
	return o.DType, nil
}

func (r *random) sample(shape tensor.Shape, dt tensor.DataType, draw func() float64) (tensor.Tensor, error) {
	out, err := tensor.NewArray(dt, shape)
	if err != nil {
		return nil, err
	}
	switch dt {
	case tensor.Float64:
		d := out.Float64s()
		for i := range d {
			d[i] = draw()
		}
	default:
		d := out.Float32s()
		for i := range d {
			d[i] = float32(draw())
		}
	}
	return wrap(out), nil
}

// Uniform draws from U(0, 1).
func (r *random) Uniform(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	dt, err := floatDTypeOpt(engine.MakeOpts(opts...), "uniform")
	if err != nil {
		return nil, err
	}
	return r.sample(shape, dt, r.rng.Float64)
}

// Normal draws from N(0, 1).
func (r *random) Normal(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	dt, err := floatDTypeOpt(engine.MakeOpts(opts...), "normal")
	if err != nil {
		return nil, err
	}
	return r.sample(shape, dt, r.rng.NormFloat64)
}

// Integers draws uniformly from [low, high). The default element type is
// Int64; Int32 may be requested explicitly.
func (r *random) Integers(low, high int64, shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	if low >= high {
		return nil, fmt.Errorf("%w: integers needs low < high, got [%d, %d)", tensor.ErrShapeMismatch, low, high)
	}
	dt := tensor.Int64
	switch o.DType {
	case tensor.Float64, tensor.Int64:
	case tensor.Int32:
		dt = tensor.Int32
	default:
		return nil, fmt.Errorf("%w: integers produces integer samples, not %s", tensor.ErrDTypeMismatch, o.DType)
	}
	out, err := tensor.NewArray(dt, shape)
	if err != nil {
		return nil, err
	}
	span := high - low
	if dt == tensor.Int64 {
		d := out.Int64s()
		for i := range d {
			d[i] = low + r.rng.Int64N(span)
		}
	} else {
		d := out.Int32s()
		for i := range d {
			d[i] = int32(low + r.rng.Int64N(span))
		}
	}
	return wrap(out), nil
}
