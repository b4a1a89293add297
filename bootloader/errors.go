package bootloader

import (
	"errors"
	"fmt"
)

var (
	// ErrNack is matched by NackError.
	ErrNack = errors.New("negative acknowledgement")

	// ErrTransport is matched by TransportError and AckTimeoutError.
	ErrTransport = errors.New("transport failure")
)

// NackError indicates that the receiver answered a packet with -1.
// The upload is aborted; it must be restarted from START.
type NackError struct {
	// Phase is the upload phase the packet belonged to
	Phase string

	// Packet is the 0-based packet index within the phase
	Packet int

	// Offset is the byte offset of the packet payload within the phase
	Offset int
}

func (e *NackError) Error() string {
	return fmt.Sprintf("receiver rejected %s packet %d (offset %d)", e.Phase, e.Packet, e.Offset)
}

// Is makes NackError match ErrNack.
func (e *NackError) Is(target error) bool {
	return target == ErrNack
}

// AckTimeoutError indicates that fewer than 4 acknowledgement bytes arrived
// before the transport read timed out.
type AckTimeoutError struct {
	Phase    string
	Packet   int
	Received int
}

func (e *AckTimeoutError) Error() string {
	return fmt.Sprintf("acknowledgement timeout on %s packet %d: received %d of 4 bytes", e.Phase, e.Packet, e.Received)
}

// Is makes AckTimeoutError match ErrTransport.
func (e *AckTimeoutError) Is(target error) bool {
	return target == ErrTransport
}

// TransportError wraps a failed read or write on the device.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
