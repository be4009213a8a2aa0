package stdimg

import "errors"

var (
	// ErrIndexOutOfRange reports a pixel coordinate or channel outside the buffer.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidKernel reports an empty, ragged or even-sized kernel, or a zero divisor.
	ErrInvalidKernel = errors.New("invalid kernel")
	// ErrInvalidParameter reports an argument outside the domain of an operation.
	ErrInvalidParameter = errors.New("invalid parameter")
)
