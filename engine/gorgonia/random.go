package gorgonia

import (
	"fmt"

	rng "github.com/leesper/go_rng"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

// random draws through go_rng generators. Each namespace owns its own
// generators, so concurrent contexts stay independent.
type random struct {
	uniform  *rng.UniformGenerator
	gaussian *rng.GaussianGenerator
}

func (e *Engine) NewRandom() engine.Random {
	r := &random{}
	r.Seed(0)
	return r
}

// Seed resets both generators. The gaussian stream gets a decorrelated
// seed so interleaved uniform and normal draws stay reproducible.
func (r *random) Seed(seed int64) {
	r.uniform = rng.NewUniformGenerator(seed)
	r.gaussian = rng.NewGaussianGenerator(seed ^ 0x5deece66d)
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
	return fromHostArray(out)
}

// Uniform draws from U(0, 1).
func (r *random) Uniform(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	dt, err := floatDTypeOpt(engine.MakeOpts(opts...), "uniform")
	if err != nil {
		return nil, err
	}
	return r.sample(shape, dt, r.uniform.Float64)
}

// Normal draws from N(0, 1).
func (r *random) Normal(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	dt, err := floatDTypeOpt(engine.MakeOpts(opts...), "normal")
	if err != nil {
		return nil, err
	}
	return r.sample(shape, dt, func() float64 { return r.gaussian.Gaussian(0, 1) })
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
			d[i] = low + r.uniform.Int64n(span)
		}
	} else {
		d := out.Int32s()
		for i := range d {
			d[i] = int32(low + r.uniform.Int64n(span))
		}
	}
	return fromHostArray(out)
}
