package bootloader

import "time"

// Upload phases reported in Progress.Phase and NackError.Phase.
const (
	PhaseStarting  = "starting"
	PhaseHeader    = "header"
	PhaseFirmware  = "firmware"
	PhaseResetting = "resetting"
	PhaseComplete  = "complete"
)

// Progress contains information about the upload progress.
// Passed to ProgressCallback during Program.
type Progress struct {
	// Phase describes the current operation phase:
	//   "starting"  - START sent, waiting for the receiver
	//   "header"    - sending the firmware header
	//   "firmware"  - sending the application image
	//   "resetting" - RESET sent
	//   "complete"  - upload finished successfully
	Phase string

	// PacketsSent is the number of acknowledged packets so far
	PacketsSent int

	// TotalPackets is the number of packets the whole upload needs
	TotalPackets int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the number of header and image bytes acknowledged
	BytesWritten int

	// TotalBytes is the header size plus the image size
	TotalBytes int

	// ElapsedTime is the time elapsed since the upload started
	ElapsedTime time.Duration
}

// ProgressCallback is called during Program to report progress.
// Implementations should return quickly; the next packet is not sent
// until the callback returns.
//
// Example:
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %.1f%% - %d/%d bytes\n",
//	            p.Phase, p.Percentage, p.BytesWritten, p.TotalBytes)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the programmer.
// This allows integration with any logging framework.
//
// Example with glog:
//
//	type glogLogger struct{}
//	func (glogLogger) Debug(msg string, kv ...interface{}) { glog.V(2).Infoln(msg, kv) }
//	func (glogLogger) Info(msg string, kv ...interface{})  { glog.Infoln(msg, kv) }
//	func (glogLogger) Error(msg string, kv ...interface{}) { glog.Errorln(msg, kv) }
//
//	prog := bootloader.New(port, bootloader.WithLogger(glogLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
