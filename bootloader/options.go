package bootloader

import "time"

// DefaultProgressInterval is the number of bytes between progress reports.
const DefaultProgressInterval = 4096

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called during programming to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ReadTimeout bounds the wait for each acknowledgement. It is applied
	// only when the device implements SetReadTimeout; zero leaves the
	// device setting untouched.
	ReadTimeout time.Duration

	// CommandDelay is an optional pause after every written packet
	CommandDelay time.Duration

	// ProgressInterval is the number of bytes between progress reports
	ProgressInterval int

	// CheckResetAck makes a NACK or missing acknowledgement to RESET fail the upload
	CheckResetAck bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		ReadTimeout:      100 * time.Millisecond,
		ProgressInterval: DefaultProgressInterval,
		CheckResetAck:    true,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track upload progress.
//
// Example:
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("%.1f%% complete\n", p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithReadTimeout sets the acknowledgement read timeout.
// A zero timeout leaves the device's own setting in place.
//
// Example:
//
//	prog := bootloader.New(port, bootloader.WithReadTimeout(500*time.Millisecond))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout >= 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithCommandDelay sets a pause after every written packet.
func WithCommandDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.CommandDelay = delay
		}
	}
}

// WithProgressInterval sets how many bytes are sent between progress reports.
// Phase changes are always reported.
func WithProgressInterval(bytes int) Option {
	return func(c *Config) {
		if bytes > 0 {
			c.ProgressInterval = bytes
		}
	}
}

// WithResetAck enables or disables checking the acknowledgement to RESET.
// Default is true. When disabled the acknowledgement is still read but a
// NACK or timeout is only logged.
func WithResetAck(check bool) Option {
	return func(c *Config) {
		c.CheckResetAck = check
	}
}
