package bootloader

import (
	"errors"
	"strings"
	"testing"
)

func TestNackError(t *testing.T) {
	err := &NackError{
		Phase:  PhaseFirmware,
		Packet: 12,
		Offset: 768,
	}

	errMsg := err.Error()

	if !strings.Contains(errMsg, "firmware packet 12") {
		t.Errorf("error message should contain phase and packet, got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "offset 768") {
		t.Errorf("error message should contain offset, got: %s", errMsg)
	}

	if !errors.Is(err, ErrNack) {
		t.Error("NackError should match ErrNack")
	}

	if errors.Is(err, ErrTransport) {
		t.Error("NackError should not match ErrTransport")
	}
}

func TestAckTimeoutError(t *testing.T) {
	err := &AckTimeoutError{
		Phase:    PhaseHeader,
		Packet:   3,
		Received: 2,
	}

	errMsg := err.Error()

	if !strings.Contains(errMsg, "timeout") {
		t.Errorf("error message should contain 'timeout', got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "header packet 3") {
		t.Errorf("error message should contain phase and packet, got: %s", errMsg)
	}

	if !strings.Contains(errMsg, "2 of 4") {
		t.Errorf("error message should contain received byte count, got: %s", errMsg)
	}

	if !errors.Is(err, ErrTransport) {
		t.Error("AckTimeoutError should match ErrTransport")
	}
}

func TestTransportError(t *testing.T) {
	cause := errors.New("port closed")
	err := &TransportError{Op: "write packet", Err: cause}

	if err.Error() != "write packet: port closed" {
		t.Errorf("Error() = %q", err.Error())
	}

	if !errors.Is(err, cause) {
		t.Error("TransportError should unwrap to its cause")
	}

	if !errors.Is(err, ErrTransport) {
		t.Error("TransportError should match ErrTransport")
	}
}

func TestErrorTypes(t *testing.T) {
	// Test that all error types implement error interface
	var _ error = &NackError{}
	var _ error = &AckTimeoutError{}
	var _ error = &TransportError{}
}
