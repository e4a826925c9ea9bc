package engine

import "github.com/basis-fem/basis/tensor"

// Context binds one engine selection to one random stream and re-exposes
// the canonical surface as methods. It replaces implicit process-global
// "active backend" state: a Context is an explicit value, cheap to create,
// safe to use from the goroutine that owns it, and independent of every
// other Context.
type Context struct {
	eng Engine
	rnd Random
}

func newContext(e Engine) *Context {
	return &Context{eng: e, rnd: e.NewRandom()}
}

// Engine returns the bound engine.
func (c *Context) Engine() Engine { return c.eng }

// Name returns the bound engine's name.
func (c *Context) Name() string { return c.eng.Name() }

// Random returns the context-scoped random namespace.
func (c *Context) Random() Random { return c.rnd }

// Creation.

func (c *Context) Zeros(shape tensor.Shape, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Zeros(shape, opts...)
}

func (c *Context) Ones(shape tensor.Shape, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Ones(shape, opts...)
}

func (c *Context) Full(shape tensor.Shape, value float64, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Full(shape, value, opts...)
}

func (c *Context) Empty(shape tensor.Shape, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Empty(shape, opts...)
}

func (c *Context) Eye(n int, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Eye(n, opts...)
}

func (c *Context) Arange(start, stop, step float64, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Arange(start, stop, step, opts...)
}

func (c *Context) Linspace(start, stop float64, num int, opts ...Option) (tensor.Tensor, error) {
	return c.eng.Linspace(start, stop, num, opts...)
}

// Conversion and introspection.

func (c *Context) FromHost(a *tensor.Array, opts ...Option) (tensor.Tensor, error) {
	return c.eng.FromHost(a, opts...)
}

func (c *Context) ToHost(t tensor.Tensor) (*tensor.Array, error) { return c.eng.ToHost(t) }

func (c *Context) DeviceType(t tensor.Tensor) (string, error) { return c.eng.DeviceType(t) }

func (c *Context) DeviceIndex(t tensor.Tensor) (int, error) { return c.eng.DeviceIndex(t) }

// Elementwise.

func (c *Context) Add(a, b tensor.Tensor) (tensor.Tensor, error) { return c.eng.Add(a, b) }
func (c *Context) Sub(a, b tensor.Tensor) (tensor.Tensor, error) { return c.eng.Sub(a, b) }
func (c *Context) Mul(a, b tensor.Tensor) (tensor.Tensor, error) { return c.eng.Mul(a, b) }
func (c *Context) Div(a, b tensor.Tensor) (tensor.Tensor, error) { return c.eng.Div(a, b) }
func (c *Context) Neg(t tensor.Tensor) (tensor.Tensor, error)    { return c.eng.Neg(t) }
func (c *Context) Abs(t tensor.Tensor) (tensor.Tensor, error)    { return c.eng.Abs(t) }
func (c *Context) Sqrt(t tensor.Tensor) (tensor.Tensor, error)   { return c.eng.Sqrt(t) }

func (c *Context) Scale(t tensor.Tensor, s float64) (tensor.Tensor, error) { return c.eng.Scale(t, s) }
func (c *Context) Shift(t tensor.Tensor, s float64) (tensor.Tensor, error) { return c.eng.Shift(t, s) }
func (c *Context) Pow(t tensor.Tensor, p float64) (tensor.Tensor, error)   { return c.eng.Pow(t, p) }

// Reductions.

func (c *Context) Sum(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return c.eng.Sum(t, axis, keepdims)
}

func (c *Context) Prod(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return c.eng.Prod(t, axis, keepdims)
}

func (c *Context) Mean(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return c.eng.Mean(t, axis, keepdims)
}

func (c *Context) Max(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return c.eng.Max(t, axis, keepdims)
}

func (c *Context) Min(t tensor.Tensor, axis int, keepdims bool) (tensor.Tensor, error) {
	return c.eng.Min(t, axis, keepdims)
}

func (c *Context) CumSum(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.CumSum(t, axis)
}

func (c *Context) CumProd(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.CumProd(t, axis)
}

func (c *Context) ArgMax(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.ArgMax(t, axis)
}

// Manipulation.

func (c *Context) Reshape(t tensor.Tensor, shape tensor.Shape) (tensor.Tensor, error) {
	return c.eng.Reshape(t, shape)
}

func (c *Context) Transpose(t tensor.Tensor, axes ...int) (tensor.Tensor, error) {
	return c.eng.Transpose(t, axes...)
}

func (c *Context) Concat(axis int, ts ...tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.Concat(axis, ts...)
}

func (c *Context) Stack(axis int, ts ...tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.Stack(axis, ts...)
}

func (c *Context) Unstack(t tensor.Tensor, axis int) ([]tensor.Tensor, error) {
	return c.eng.Unstack(t, axis)
}

func (c *Context) Flip(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.Flip(t, axis)
}

func (c *Context) ExpandDims(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.ExpandDims(t, axis)
}

func (c *Context) Squeeze(t tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.Squeeze(t, axis)
}

func (c *Context) Take(t tensor.Tensor, index tensor.Tensor, axis int) (tensor.Tensor, error) {
	return c.eng.Take(t, index, axis)
}

func (c *Context) SetAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.SetAt(t, index, src)
}

func (c *Context) AddAt(t tensor.Tensor, index tensor.Tensor, src tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.AddAt(t, index, src)
}

func (c *Context) Cast(t tensor.Tensor, dtype tensor.DataType) (tensor.Tensor, error) {
	return c.eng.Cast(t, dtype)
}

// Linalg returns the linear-algebra namespace of the bound engine.
func (c *Context) Linalg() Linalg { return c.eng.Linalg() }

// Sparse.

func (c *Context) CooToCsr(indices, values tensor.Tensor, shape [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	return c.eng.CooToCsr(indices, values, shape)
}

func (c *Context) CooSpmm(indices, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.CooSpmm(indices, values, shape, other)
}

func (c *Context) CsrSpmm(rowptr, col, values tensor.Tensor, shape [2]int, other tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.CsrSpmm(rowptr, col, values, shape, other)
}

func (c *Context) CsrSpspmm(rowptrA, colA, dataA tensor.Tensor, shapeA [2]int,
	rowptrB, colB, dataB tensor.Tensor, shapeB [2]int) (tensor.Tensor, tensor.Tensor, tensor.Tensor, error) {
	return c.eng.CsrSpspmm(rowptrA, colA, dataA, shapeA, rowptrB, colB, dataB, shapeB)
}

// Finite elements.

func (c *Context) MultiIndexMatrix(p, td int) (tensor.Tensor, error) {
	return c.eng.MultiIndexMatrix(p, td)
}

func (c *Context) SimplexShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.SimplexShapeFunction(bc, p, mi)
}

func (c *Context) SimplexGradShapeFunction(bc tensor.Tensor, p int, mi tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.SimplexGradShapeFunction(bc, p, mi)
}

func (c *Context) SimplexMeasure(entity, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.SimplexMeasure(entity, node)
}

func (c *Context) Barycenter(entity, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.Barycenter(entity, node)
}

func (c *Context) BcToPoints(bc, node, entity tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.BcToPoints(bc, node, entity)
}

func (c *Context) Tensorprod(ts ...tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.Tensorprod(ts...)
}

func (c *Context) EdgeLength(edge, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.EdgeLength(edge, node)
}

func (c *Context) EdgeNormal(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error) {
	return c.eng.EdgeNormal(edge, node, unit)
}

func (c *Context) EdgeTangent(edge, node tensor.Tensor, unit bool) (tensor.Tensor, error) {
	return c.eng.EdgeTangent(edge, node, unit)
}

func (c *Context) TriangleArea3D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.TriangleArea3D(tri, node)
}

func (c *Context) TriangleGradLambda2D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.TriangleGradLambda2D(tri, node)
}

func (c *Context) TriangleGradLambda3D(tri, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.TriangleGradLambda3D(tri, node)
}

func (c *Context) IntervalGradLambda(line, node tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.IntervalGradLambda(line, node)
}

func (c *Context) TetrahedronGradLambda3D(tet, node, localFace tensor.Tensor) (tensor.Tensor, error) {
	return c.eng.TetrahedronGradLambda3D(tet, node, localFace)
}

// Vmap vectorizes fn through the bound engine.
func (c *Context) Vmap(fn MappedFunc, inAxis, outAxis int) (MappedFunc, error) {
	return c.eng.Vmap(fn, inAxis, outAxis)
}
