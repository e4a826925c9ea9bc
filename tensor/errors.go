package tensor

import "errors"

// Sentinel errors shared by the abstraction layer. Engines wrap these with
// %w so callers can classify failures with errors.Is without parsing
// messages.
var (
	// ErrUnknownEngine is returned when selecting an engine name that was
	// never registered.
	ErrUnknownEngine = errors.New("unknown engine")

	// ErrUnsupportedOperation is returned when a canonical operation has no
	// implementation for the active engine (for example a batched sparse
	// product). It is always surfaced, never silently approximated.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrUnsupportedConfiguration is returned for requests an engine cannot
	// honor, such as a non-cpu device on a host-only engine or mismatched
	// vmap axes. The message names the offending values.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")

	// ErrShapeMismatch is returned for rank or dimension disagreements.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrDTypeMismatch is returned when an operand has a data type the
	// operation cannot accept.
	ErrDTypeMismatch = errors.New("dtype mismatch")

	// ErrForeignTensor is returned when a tensor created by one engine is
	// passed to another.
	ErrForeignTensor = errors.New("tensor belongs to a different engine")

	// ErrDegenerateGeometry is returned by geometric kernels for
	// zero-measure simplices instead of dividing by zero.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrMissingOperation is returned when a canonical operation name is
	// absent from an engine's operation table.
	ErrMissingOperation = errors.New("missing operation")
)
