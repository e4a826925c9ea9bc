package tensor

// Device names where tensor data resides. The empty string is equivalent to
// CPU. The shipped engines are all host-resident; engines for accelerators
// would introduce further values ("cuda:0", ...).
type Device string

// CPU is the host device.
const CPU Device = "cpu"

// IsCPU reports whether the device is the host ("" counts as host).
func (d Device) IsCPU() bool {
	return d == "" || d == CPU
}

// String returns the device name, normalizing the empty value.
func (d Device) String() string {
	if d == "" {
		return string(CPU)
	}
	return string(d)
}

// Tensor is the minimal capability interface every engine's native value
// implements. The abstraction layer never inspects a value beyond this
// surface; the owning engine understands the representation.
//
// Implementations:
//   - engine/native: buffer-backed host tensors
//   - engine/gonum: float64/int64 slice tensors over gonum primitives
//   - engine/gorgonia: wrappers around *gorgonia.org/tensor.Dense
type Tensor interface {
	// Shape returns the tensor's dimensions.
	Shape() Shape

	// DType returns the element data type.
	DType() DataType

	// NDim returns the number of dimensions.
	NDim() int

	// Device returns where the data resides. Must not trigger a transfer.
	Device() Device
}
