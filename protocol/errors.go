package protocol

import (
	"errors"
	"fmt"
)

// ErrPrecondition is matched by every error caused by caller-supplied data
// that violates a size or alignment rule. Use errors.Is to test for it.
var ErrPrecondition = errors.New("precondition violation")

// ErrShortPacket is returned by ParsePacket for frames shorter than a command word.
var ErrShortPacket = errors.New("packet too short")

// InvalidLengthError indicates checksummed data whose length is not a
// multiple of WordSize.
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length %d: must be a multiple of %d bytes", e.Length, WordSize)
}

// Is makes InvalidLengthError match ErrPrecondition.
func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrPrecondition
}

// PayloadTooLargeError indicates a DATA payload longer than PayloadSize.
type PayloadTooLargeError struct {
	Length int
	Max    int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: %d bytes exceeds maximum %d bytes", e.Length, e.Max)
}

// Is makes PayloadTooLargeError match ErrPrecondition.
func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPrecondition
}

// UnknownCommandError indicates a frame with an unrecognized command word.
type UnknownCommandError struct {
	Command uint32
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command 0x%08X", e.Command)
}

// FrameSizeError indicates a DATA frame of the wrong size.
type FrameSizeError struct {
	Length   int
	Expected int
}

func (e *FrameSizeError) Error() string {
	return fmt.Sprintf("invalid frame size: got %d bytes, expected %d", e.Length, e.Expected)
}

// ChecksumMismatchError indicates a DATA frame whose payload does not match
// its transmitted checksum.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: frame carries 0x%08X, payload sums to 0x%08X", e.Expected, e.Actual)
}

// IsPreconditionError returns true if err was caused by invalid caller input.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrPrecondition)
}
