// Package tensor provides the engine-neutral core types of the basis
// abstraction layer: shapes, data types, devices, the minimal Tensor
// capability interface, and the portable host Array used to move values
// between engines.
package tensor

// Elem is a constraint for element types kernels may be generic over.
type Elem interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~bool
}

// Float is a constraint for floating-point element types.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for tensor elements.
//
// Float64 is the zero value: numerical kernels default to it, matching the
// default dtype convention of the array libraries the engines wrap.
type DataType int

// Supported data types.
const (
	Float64 DataType = iota
	Float32
	Int64
	Int32
	Bool
)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64, Int64:
		return 8
	case Float32, Int32:
		return 4
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float64 || dt == Float32
}

// IsInt reports whether the data type is an integer type.
func (dt DataType) IsInt() bool {
	return dt == Int64 || dt == Int32
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// DataTypeOf infers the DataType for a generic element type.
func DataTypeOf[T Elem]() DataType {
	var zero T
	switch any(zero).(type) {
	case float64:
		return Float64
	case float32:
		return Float32
	case int64:
		return Int64
	case int32:
		return Int32
	case bool:
		return Bool
	default:
		panic("unsupported element type")
	}
}
