package firmware

import (
	"fmt"

	"github.com/moffa90/go-fwupdate/protocol"
)

// HeaderOverflowError indicates header metadata that does not fit in the
// fixed header block.
type HeaderOverflowError struct {
	Size int
	Max  int
}

func (e *HeaderOverflowError) Error() string {
	return fmt.Sprintf("header overflow: metadata is %d bytes, header holds %d", e.Size, e.Max)
}

// Is makes HeaderOverflowError match protocol.ErrPrecondition.
func (e *HeaderOverflowError) Is(target error) bool {
	return target == protocol.ErrPrecondition
}

// VerificationError indicates an image that does not match its header.
type VerificationError struct {
	Message string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("firmware verification failed: %s", e.Message)
}
