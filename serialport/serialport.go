package serialport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Defaults used by the device updater.
const (
	DefaultBaud        = 115200
	DefaultReadTimeout = 100 * time.Millisecond
)

// Port represents an open serial port.
// Read returns (0, nil) when the read timeout expires.
type Port interface {
	io.ReadWriteCloser

	// SetReadTimeout sets the maximum wait for incoming data
	SetReadTimeout(t time.Duration) error

	// ResetInputBuffer discards unread input
	ResetInputBuffer() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM9")
	Device string

	// Baud rate
	Baud int

	// ReadTimeout is the maximum wait for each read (0 = blocking)
	ReadTimeout time.Duration
}

// DefaultConfig returns the configuration the device updater expects:
// 115200 baud, 8N1, 100 ms read timeout.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Open opens a serial port and discards any stale input.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Device == "" {
		return nil, fmt.Errorf("device path cannot be empty")
	}
	if cfg.Baud <= 0 {
		return nil, fmt.Errorf("invalid baud rate %d", cfg.Baud)
	}

	port, err := serial.Open(cfg.Device, mode(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	if cfg.ReadTimeout > 0 {
		if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("failed to set read timeout on %s: %w", cfg.Device, err)
		}
	}

	if err := port.ResetInputBuffer(); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to reset input buffer on %s: %w", cfg.Device, err)
	}

	return port, nil
}

// List returns the names of the serial ports present on the system.
func List() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

func mode(cfg *Config) *serial.Mode {
	return &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}
