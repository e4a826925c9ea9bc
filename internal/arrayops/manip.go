// Package arrayops implements dtype-generic structural operations on host
// arrays. Engines that keep their data on the host delegate reshaping,
// gather/scatter and axis manipulation here instead of each growing its own
// index arithmetic.
package arrayops

import (
	"fmt"

	"github.com/basis-fem/basis/tensor"
)

type number interface {
	~float64 | ~float32 | ~int64 | ~int32
}

// copierFor returns an element copier between two arrays of the same dtype.
func copierFor(dst, src *tensor.Array) func(di, si int) {
	switch dst.DType() {
	case tensor.Float64:
		d, s := dst.Float64s(), src.Float64s()
		return func(di, si int) { d[di] = s[si] }
	case tensor.Float32:
		d, s := dst.Float32s(), src.Float32s()
		return func(di, si int) { d[di] = s[si] }
	case tensor.Int64:
		d, s := dst.Int64s(), src.Int64s()
		return func(di, si int) { d[di] = s[si] }
	case tensor.Int32:
		d, s := dst.Int32s(), src.Int32s()
		return func(di, si int) { d[di] = s[si] }
	default:
		d, s := dst.Bools(), src.Bools()
		return func(di, si int) { d[di] = s[si] }
	}
}

func cloneWithShape(src *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	out, err := tensor.NewArray(src.DType(), shape)
	if err != nil {
		return nil, err
	}
	cp := copierFor(out, src)
	for i := 0; i < src.NumElements(); i++ {
		cp(i, i)
	}
	return out, nil
}

// Reshape returns a fresh array with the same elements and a new shape.
func Reshape(a *tensor.Array, shape tensor.Shape) (*tensor.Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != a.NumElements() {
		return nil, fmt.Errorf("%w: cannot reshape %v (%d elements) to %v (%d elements)",
			tensor.ErrShapeMismatch, a.Shape(), a.NumElements(), shape, shape.NumElements())
	}
	return cloneWithShape(a, shape)
}

// Transpose permutes the dimensions; with no axes, reverses them.
func Transpose(a *tensor.Array, axes ...int) (*tensor.Array, error) {
	shape := a.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("%w: transpose got %d axes for a %d-dimensional array", tensor.ErrShapeMismatch, len(axes), ndim)
	}
	seen := make([]bool, ndim)
	outShape := make(tensor.Shape, ndim)
	norm := make([]int, ndim)
	for i, ax := range axes {
		na, err := tensor.NormAxis(ax, ndim)
		if err != nil {
			return nil, fmt.Errorf("transpose: %w", err)
		}
		if seen[na] {
			return nil, fmt.Errorf("%w: transpose axis %d repeated", tensor.ErrShapeMismatch, na)
		}
		seen[na] = true
		norm[i] = na
		outShape[i] = shape[na]
	}

	out, err := tensor.NewArray(a.DType(), outShape)
	if err != nil {
		return nil, err
	}
	cp := copierFor(out, a)
	inStrides := shape.Strides()
	coords := make([]int, ndim)
	n := out.NumElements()
	for flat := 0; flat < n; flat++ {
		rem := flat
		for i := ndim - 1; i >= 0; i-- {
			coords[i] = rem % outShape[i]
			rem /= outShape[i]
		}
		src := 0
		for i := 0; i < ndim; i++ {
			src += coords[i] * inStrides[norm[i]]
		}
		cp(flat, src)
	}
	return out, nil
}

// Concat joins arrays along an existing axis.
func Concat(axis int, as ...*tensor.Array) (*tensor.Array, error) {
	if len(as) == 0 {
		return nil, fmt.Errorf("%w: concat of no arrays", tensor.ErrShapeMismatch)
	}
	first := as[0].Shape()
	a, err := tensor.NormAxis(axis, len(first))
	if err != nil {
		return nil, fmt.Errorf("concat: %w", err)
	}
	total := 0
	for _, arr := range as {
		if arr.DType() != as[0].DType() {
			return nil, fmt.Errorf("%w: concat operands mix dtypes %s and %s",
				tensor.ErrDTypeMismatch, as[0].DType(), arr.DType())
		}
		s := arr.Shape()
		if len(s) != len(first) {
			return nil, fmt.Errorf("%w: concat operands have ranks %d and %d", tensor.ErrShapeMismatch, len(first), len(s))
		}
		for i := range s {
			if i != a && s[i] != first[i] {
				return nil, fmt.Errorf("%w: concat operand shape %v differs from %v outside axis %d",
					tensor.ErrShapeMismatch, s, first, a)
			}
		}
		total += s[a]
	}
	outShape := first.Clone()
	outShape[a] = total
	out, err := tensor.NewArray(as[0].DType(), outShape)
	if err != nil {
		return nil, err
	}

	inner := 1
	for _, d := range first[a+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range first[:a] {
		outer *= d
	}
	dstSlab := total * inner
	off := 0
	for _, arr := range as {
		cp := copierFor(out, arr)
		slab := arr.Shape()[a] * inner
		for o := 0; o < outer; o++ {
			for i := 0; i < slab; i++ {
				cp(o*dstSlab+off+i, o*slab+i)
			}
		}
		off += slab
	}
	return out, nil
}

// Stack joins equally shaped arrays along a new axis.
func Stack(axis int, as ...*tensor.Array) (*tensor.Array, error) {
	if len(as) == 0 {
		return nil, fmt.Errorf("%w: stack of no arrays", tensor.ErrShapeMismatch)
	}
	first := as[0].Shape()
	for _, arr := range as[1:] {
		if arr.DType() != as[0].DType() {
			return nil, fmt.Errorf("%w: stack operands mix dtypes %s and %s",
				tensor.ErrDTypeMismatch, as[0].DType(), arr.DType())
		}
		if !arr.Shape().Equal(first) {
			return nil, fmt.Errorf("%w: stack operands have shapes %v and %v", tensor.ErrShapeMismatch, first, arr.Shape())
		}
	}
	a := axis
	if a < 0 {
		a += len(first) + 1
	}
	if a < 0 || a > len(first) {
		return nil, fmt.Errorf("%w: stack axis %d out of range for result rank %d", tensor.ErrShapeMismatch, axis, len(first)+1)
	}
	outShape := append(first[:a].Clone(), len(as))
	outShape = append(outShape, first[a:]...)
	out, err := tensor.NewArray(as[0].DType(), outShape)
	if err != nil {
		return nil, err
	}

	inner := 1
	for _, d := range first[a:] {
		inner *= d
	}
	outer := 1
	for _, d := range first[:a] {
		outer *= d
	}
	n := len(as)
	for k, arr := range as {
		cp := copierFor(out, arr)
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				cp((o*n+k)*inner+i, o*inner+i)
			}
		}
	}
	return out, nil
}

// Unstack splits an array into its slices along axis, removing the axis.
func Unstack(a *tensor.Array, axis int) ([]*tensor.Array, error) {
	shape := a.Shape()
	ax, err := tensor.NormAxis(axis, len(shape))
	if err != nil {
		return nil, fmt.Errorf("unstack: %w", err)
	}
	outShape := append(shape[:ax].Clone(), shape[ax+1:]...)
	inner := 1
	for _, d := range shape[ax+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range shape[:ax] {
		outer *= d
	}
	n := shape[ax]
	out := make([]*tensor.Array, n)
	for k := 0; k < n; k++ {
		slice, err := tensor.NewArray(a.DType(), outShape)
		if err != nil {
			return nil, err
		}
		cp := copierFor(slice, a)
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				cp(o*inner+i, (o*n+k)*inner+i)
			}
		}
		out[k] = slice
	}
	return out, nil
}

// Flip reverses the element order along axis.
func Flip(a *tensor.Array, axis int) (*tensor.Array, error) {
	shape := a.Shape()
	ax, err := tensor.NormAxis(axis, len(shape))
	if err != nil {
		return nil, fmt.Errorf("flip: %w", err)
	}
	out, err := tensor.NewArray(a.DType(), shape)
	if err != nil {
		return nil, err
	}
	cp := copierFor(out, a)
	inner := 1
	for _, d := range shape[ax+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range shape[:ax] {
		outer *= d
	}
	n := shape[ax]
	for o := 0; o < outer; o++ {
		for m := 0; m < n; m++ {
			for i := 0; i < inner; i++ {
				cp((o*n+m)*inner+i, (o*n+n-1-m)*inner+i)
			}
		}
	}
	return out, nil
}

// ExpandDims inserts a size-1 axis.
func ExpandDims(a *tensor.Array, axis int) (*tensor.Array, error) {
	shape := a.Shape()
	ax := axis
	if ax < 0 {
		ax += len(shape) + 1
	}
	if ax < 0 || ax > len(shape) {
		return nil, fmt.Errorf("%w: expand_dims axis %d out of range for rank %d", tensor.ErrShapeMismatch, axis, len(shape)+1)
	}
	outShape := append(shape[:ax].Clone(), 1)
	outShape = append(outShape, shape[ax:]...)
	return cloneWithShape(a, outShape)
}

// Squeeze removes a size-1 axis.
func Squeeze(a *tensor.Array, axis int) (*tensor.Array, error) {
	shape := a.Shape()
	ax, err := tensor.NormAxis(axis, len(shape))
	if err != nil {
		return nil, fmt.Errorf("squeeze: %w", err)
	}
	if shape[ax] != 1 {
		return nil, fmt.Errorf("%w: cannot squeeze axis %d of size %d", tensor.ErrShapeMismatch, ax, shape[ax])
	}
	outShape := append(shape[:ax].Clone(), shape[ax+1:]...)
	return cloneWithShape(a, outShape)
}

// Take gathers slices along axis by integer index.
func Take(a *tensor.Array, idx []int64, axis int) (*tensor.Array, error) {
	shape := a.Shape()
	ax, err := tensor.NormAxis(axis, len(shape))
	if err != nil {
		return nil, fmt.Errorf("take: %w", err)
	}
	outShape := shape.Clone()
	outShape[ax] = len(idx)
	out, err := tensor.NewArray(a.DType(), outShape)
	if err != nil {
		return nil, err
	}
	cp := copierFor(out, a)
	inner := 1
	for _, d := range shape[ax+1:] {
		inner *= d
	}
	outer := 1
	for _, d := range shape[:ax] {
		outer *= d
	}
	n := shape[ax]
	k := len(idx)
	for j, ix := range idx {
		if ix < 0 || ix >= int64(n) {
			return nil, fmt.Errorf("%w: take index %d out of range [0, %d)", tensor.ErrShapeMismatch, ix, n)
		}
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				cp((o*k+j)*inner+i, (o*n+int(ix))*inner+i)
			}
		}
	}
	return out, nil
}

func scatterArgs(a *tensor.Array, idx []int64, src *tensor.Array, name string) (int, error) {
	if src.DType() != a.DType() {
		return 0, fmt.Errorf("%w: %s source dtype %s differs from target %s",
			tensor.ErrDTypeMismatch, name, src.DType(), a.DType())
	}
	shape := a.Shape()
	if len(shape) == 0 {
		return 0, fmt.Errorf("%w: %s target must have at least one axis", tensor.ErrShapeMismatch, name)
	}
	inner := 1
	for _, d := range shape[1:] {
		inner *= d
	}
	wantSrc := append(tensor.Shape{len(idx)}, shape[1:]...)
	if !src.Shape().Equal(wantSrc) {
		return 0, fmt.Errorf("%w: %s source shape %v, want %v", tensor.ErrShapeMismatch, name, src.Shape(), wantSrc)
	}
	for _, ix := range idx {
		if ix < 0 || ix >= int64(shape[0]) {
			return 0, fmt.Errorf("%w: %s index %d out of range [0, %d)", tensor.ErrShapeMismatch, name, ix, shape[0])
		}
	}
	return inner, nil
}

// SetAt returns a copy with the rows named by idx replaced by the rows of
// src; later duplicate indices win.
func SetAt(a *tensor.Array, idx []int64, src *tensor.Array) (*tensor.Array, error) {
	inner, err := scatterArgs(a, idx, src, "set_at")
	if err != nil {
		return nil, err
	}
	out := a.Clone()
	cp := copierFor(out, src)
	for j, ix := range idx {
		for i := 0; i < inner; i++ {
			cp(int(ix)*inner+i, j*inner+i)
		}
	}
	return out, nil
}

func addAtLoop[T number](dst, src []T, idx []int64, inner int) {
	for j, ix := range idx {
		for i := 0; i < inner; i++ {
			dst[int(ix)*inner+i] += src[j*inner+i]
		}
	}
}

// AddAt returns a copy with the rows of src accumulated into the rows named
// by idx; duplicate indices accumulate.
func AddAt(a *tensor.Array, idx []int64, src *tensor.Array) (*tensor.Array, error) {
	inner, err := scatterArgs(a, idx, src, "add_at")
	if err != nil {
		return nil, err
	}
	out := a.Clone()
	switch a.DType() {
	case tensor.Float64:
		addAtLoop(out.Float64s(), src.Float64s(), idx, inner)
	case tensor.Float32:
		addAtLoop(out.Float32s(), src.Float32s(), idx, inner)
	case tensor.Int64:
		addAtLoop(out.Int64s(), src.Int64s(), idx, inner)
	case tensor.Int32:
		addAtLoop(out.Int32s(), src.Int32s(), idx, inner)
	default:
		return nil, fmt.Errorf("%w: add_at is not defined for dtype %s", tensor.ErrDTypeMismatch, a.DType())
	}
	return out, nil
}
