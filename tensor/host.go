package tensor

import "fmt"

// Array is the portable host-memory representation used to move values
// between engines. It stores elements row-major in exactly one typed slice
// selected by the data type, so engine round trips (ToHost then FromHost)
// are loss-free for every fixed-width numeric dtype.
//
// Array itself satisfies the Tensor interface; its device is always the
// host.
type Array struct {
	shape Shape
	dtype DataType

	f64   []float64
	f32   []float32
	i64   []int64
	i32   []int32
	bools []bool
}

// NewArray allocates a zeroed host array of the given dtype and shape.
func NewArray(dtype DataType, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	a := &Array{shape: shape.Clone(), dtype: dtype}
	n := shape.NumElements()
	switch dtype {
	case Float64:
		a.f64 = make([]float64, n)
	case Float32:
		a.f32 = make([]float32, n)
	case Int64:
		a.i64 = make([]int64, n)
	case Int32:
		a.i32 = make([]int32, n)
	case Bool:
		a.bools = make([]bool, n)
	default:
		return nil, fmt.Errorf("%w: unknown dtype %d", ErrDTypeMismatch, dtype)
	}
	return a, nil
}

// FromFloat64s wraps data (not copied) as a host array of the given shape.
func FromFloat64s(data []float64, shape Shape) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	return &Array{shape: shape.Clone(), dtype: Float64, f64: data}, nil
}

// FromFloat32s wraps data (not copied) as a host array of the given shape.
func FromFloat32s(data []float32, shape Shape) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	return &Array{shape: shape.Clone(), dtype: Float32, f32: data}, nil
}

// FromInt64s wraps data (not copied) as a host array of the given shape.
func FromInt64s(data []int64, shape Shape) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	return &Array{shape: shape.Clone(), dtype: Int64, i64: data}, nil
}

// FromInt32s wraps data (not copied) as a host array of the given shape.
func FromInt32s(data []int32, shape Shape) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	return &Array{shape: shape.Clone(), dtype: Int32, i32: data}, nil
}

// FromBools wraps data (not copied) as a host array of the given shape.
func FromBools(data []bool, shape Shape) (*Array, error) {
	if err := checkLen(len(data), shape); err != nil {
		return nil, err
	}
	return &Array{shape: shape.Clone(), dtype: Bool, bools: data}, nil
}

func checkLen(n int, shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	if n != shape.NumElements() {
		return fmt.Errorf("%w: data length %d does not match shape %v (%d elements)",
			ErrShapeMismatch, n, shape, shape.NumElements())
	}
	return nil
}

// Shape returns the array's dimensions.
func (a *Array) Shape() Shape { return a.shape }

// DType returns the element data type.
func (a *Array) DType() DataType { return a.dtype }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Device returns the host device.
func (a *Array) Device() Device { return CPU }

// NumElements returns the total number of elements.
func (a *Array) NumElements() int { return a.shape.NumElements() }

// Float64s returns the backing slice. Panics if the dtype is not Float64.
func (a *Array) Float64s() []float64 {
	if a.dtype != Float64 {
		panic(fmt.Sprintf("host array dtype is %s, not float64", a.dtype))
	}
	return a.f64
}

// Float32s returns the backing slice. Panics if the dtype is not Float32.
func (a *Array) Float32s() []float32 {
	if a.dtype != Float32 {
		panic(fmt.Sprintf("host array dtype is %s, not float32", a.dtype))
	}
	return a.f32
}

// Int64s returns the backing slice. Panics if the dtype is not Int64.
func (a *Array) Int64s() []int64 {
	if a.dtype != Int64 {
		panic(fmt.Sprintf("host array dtype is %s, not int64", a.dtype))
	}
	return a.i64
}

// Int32s returns the backing slice. Panics if the dtype is not Int32.
func (a *Array) Int32s() []int32 {
	if a.dtype != Int32 {
		panic(fmt.Sprintf("host array dtype is %s, not int32", a.dtype))
	}
	return a.i32
}

// Bools returns the backing slice. Panics if the dtype is not Bool.
func (a *Array) Bools() []bool {
	if a.dtype != Bool {
		panic(fmt.Sprintf("host array dtype is %s, not bool", a.dtype))
	}
	return a.bools
}

// AsFloat64s returns the elements converted to float64, copying. Works for
// every numeric dtype; errors for Bool.
func (a *Array) AsFloat64s() ([]float64, error) {
	n := a.NumElements()
	out := make([]float64, n)
	switch a.dtype {
	case Float64:
		copy(out, a.f64)
	case Float32:
		for i, v := range a.f32 {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range a.i64 {
			out[i] = float64(v)
		}
	case Int32:
		for i, v := range a.i32 {
			out[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("%w: cannot convert %s host array to float64", ErrDTypeMismatch, a.dtype)
	}
	return out, nil
}

// AsInt64s returns the elements converted to int64, copying. Works for the
// integer dtypes; errors for floats and bools, which have no exact integer
// reading.
func (a *Array) AsInt64s() ([]int64, error) {
	n := a.NumElements()
	out := make([]int64, n)
	switch a.dtype {
	case Int64:
		copy(out, a.i64)
	case Int32:
		for i, v := range a.i32 {
			out[i] = int64(v)
		}
	default:
		return nil, fmt.Errorf("%w: cannot convert %s host array to int64", ErrDTypeMismatch, a.dtype)
	}
	return out, nil
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	clone := &Array{shape: a.shape.Clone(), dtype: a.dtype}
	switch a.dtype {
	case Float64:
		clone.f64 = append([]float64(nil), a.f64...)
	case Float32:
		clone.f32 = append([]float32(nil), a.f32...)
	case Int64:
		clone.i64 = append([]int64(nil), a.i64...)
	case Int32:
		clone.i32 = append([]int32(nil), a.i32...)
	case Bool:
		clone.bools = append([]bool(nil), a.bools...)
	}
	return clone
}
