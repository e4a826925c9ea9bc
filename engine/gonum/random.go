package gonum

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/basis-fem/basis/engine"
	"github.com/basis-fem/basis/tensor"
)

// random is a namespace over one PCG stream shared by the distuv
// distributions and the integer sampler, so a single Seed pins every draw.
type random struct {
	uniform distuv.Uniform
	normal  distuv.Normal
	rng     *rand.Rand
}

func (e *Engine) NewRandom() engine.Random {
	r := &random{}
	r.Seed(0)
	return r
}

func (r *random) Seed(seed int64) {
	src := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	r.uniform = distuv.Uniform{Min: 0, Max: 1, Src: src}
	r.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	r.rng = rand.New(src)
}

func (r *random) sample(shape tensor.Shape, opts []engine.Option, name string, draw func() float64) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	if err := checkDType(o.DType); err != nil {
		return nil, err
	}
	if o.DType != tensor.Float64 {
		return nil, fmt.Errorf("%w: %s produces floating-point samples, not %s", tensor.ErrDTypeMismatch, name, o.DType)
	}
	out, err := tensor.NewArray(tensor.Float64, shape)
	if err != nil {
		return nil, err
	}
	d := out.Float64s()
	for i := range d {
		d[i] = draw()
	}
	return wrap(out), nil
}

// Uniform draws from U(0, 1).
func (r *random) Uniform(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return r.sample(shape, opts, "uniform", r.uniform.Rand)
}

// Normal draws from N(0, 1).
func (r *random) Normal(shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	return r.sample(shape, opts, "normal", r.normal.Rand)
}

// Integers draws uniformly from [low, high) as int64.
func (r *random) Integers(low, high int64, shape tensor.Shape, opts ...engine.Option) (tensor.Tensor, error) {
	o := engine.MakeOpts(opts...)
	if err := checkDevice(o); err != nil {
		return nil, err
	}
	switch o.DType {
	case tensor.Float64, tensor.Int64:
	default:
		return nil, fmt.Errorf("%w: integers produces int64 samples, not %s", tensor.ErrDTypeMismatch, o.DType)
	}
	if low >= high {
		return nil, fmt.Errorf("%w: integers needs low < high, got [%d, %d)", tensor.ErrShapeMismatch, low, high)
	}
	out, err := tensor.NewArray(tensor.Int64, shape)
	if err != nil {
		return nil, err
	}
	d := out.Int64s()
	span := high - low
	for i := range d {
		d[i] = low + r.rng.Int64N(span)
	}
	return wrap(out), nil
}
