package bootloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/moffa90/go-fwupdate/firmware"
	"github.com/moffa90/go-fwupdate/protocol"
)

// readTimeoutSetter is implemented by serial ports that support per-read timeouts.
type readTimeoutSetter interface {
	SetReadTimeout(t time.Duration) error
}

// Programmer uploads firmware images to a receiver over a byte stream.
// Every packet is acknowledged before the next one is written.
//
// A Programmer owns its device for the duration of Program and must not be
// used for concurrent uploads.
type Programmer struct {
	device io.ReadWriter
	config Config

	state     State
	sent      int
	total     int
	written   int
	totalSize int
	reported  int
	startTime time.Time
}

// New creates a new Programmer with the given device and options.
// The device must implement io.ReadWriter; reads are expected to return
// (0, nil) when the transport read timeout expires.
//
// Example:
//
//	port, _ := serialport.Open(serialport.DefaultConfig("/dev/ttyUSB0"))
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithReadTimeout(200*time.Millisecond),
//	)
func New(device io.ReadWriter, opts ...Option) *Programmer {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		device: device,
		config: cfg,
		state:  StateIdle,
	}
}

// State returns the current position in the upload sequence.
func (p *Programmer) State() State {
	return p.state
}

// PacketsSent returns the number of packets acknowledged during the last upload.
func (p *Programmer) PacketsSent() int {
	return p.sent
}

// Program performs the complete upload sequence:
//  1. Build the firmware header from the image
//  2. Send START
//  3. Send the header as 64 DATA packets
//  4. Send the image as DATA packets, the last one padded with 0xFF
//  5. Send RESET
//
// Any negative acknowledgement, timeout or transport error aborts the
// upload immediately; nothing further is written. The operation can be
// cancelled via context between packets.
//
// Example:
//
//	img, _ := firmware.Load("umeter.bin")
//	err := prog.Program(context.Background(), img.Data)
func (p *Programmer) Program(ctx context.Context, image []byte) error {
	p.reset()

	header, err := firmware.BuildHeader(image)
	if err != nil {
		return fmt.Errorf("build header: %w", err)
	}

	if err := p.applyReadTimeout(); err != nil {
		return err
	}

	p.startTime = time.Now()
	p.total = 1 + protocol.HeaderPackets + protocol.PacketCount(len(image)) + 1
	p.totalSize = len(header) + len(image)

	p.logInfo("starting upload",
		"image_bytes", len(image),
		"packets", p.total,
	)

	// Phase 1: START
	p.state = StateStarting
	p.reportProgress(PhaseStarting)
	if err := p.Start(ctx); err != nil {
		return p.abort("start", err)
	}

	// Phase 2: header
	p.state = StateSendingHeader
	p.reportProgress(PhaseHeader)
	if err := p.sendBlock(ctx, PhaseHeader, header); err != nil {
		return p.abort("send header", err)
	}

	// Phase 3: image
	p.state = StateSendingFirmware
	p.reportProgress(PhaseFirmware)
	if err := p.sendBlock(ctx, PhaseFirmware, image); err != nil {
		return p.abort("send firmware", err)
	}

	// Phase 4: RESET
	p.state = StateFinishing
	p.reportProgress(PhaseResetting)
	if err := p.Reset(ctx); err != nil {
		return p.abort("reset", err)
	}

	p.state = StateDone
	p.reportProgress(PhaseComplete)

	p.logInfo("upload complete",
		"packets", p.sent,
		"bytes", p.written,
		"elapsed", time.Since(p.startTime).String(),
	)

	return nil
}

// Start sends the START command and checks its acknowledgement.
func (p *Programmer) Start(ctx context.Context) error {
	cmd, err := protocol.BuildStartCmd()
	if err != nil {
		return err
	}

	_, err = p.transact(ctx, cmd, PhaseStarting, 0, 0)
	return err
}

// SendData sends a single DATA packet carrying up to protocol.PayloadSize
// bytes and returns the receiver's acknowledgement, which is the flash
// address the payload was written to.
func (p *Programmer) SendData(ctx context.Context, payload []byte) (int32, error) {
	cmd, err := protocol.BuildDataCmd(payload)
	if err != nil {
		return 0, err
	}

	return p.transact(ctx, cmd, PhaseFirmware, p.sent, 0)
}

// Reset sends the RESET command. The receiver acknowledges and reboots
// into its bootloader, which installs the uploaded image.
func (p *Programmer) Reset(ctx context.Context) error {
	cmd, err := protocol.BuildResetCmd()
	if err != nil {
		return err
	}

	_, err = p.transact(ctx, cmd, PhaseResetting, 0, 0)
	if err != nil && !p.config.CheckResetAck {
		var timeout *AckTimeoutError
		if errors.Is(err, ErrNack) || errors.As(err, &timeout) {
			p.logDebug("ignoring reset acknowledgement", "error", err.Error())
			return nil
		}
	}
	return err
}

// sendBlock streams data as consecutive DATA packets.
func (p *Programmer) sendBlock(ctx context.Context, phase string, data []byte) error {
	for i, chunk := range protocol.SplitPayloads(data) {
		offset := i * protocol.PayloadSize

		cmd, err := protocol.BuildDataCmd(chunk)
		if err != nil {
			return err
		}

		ack, err := p.transact(ctx, cmd, phase, i, offset)
		if err != nil {
			return err
		}

		p.logDebug("data acknowledged",
			"phase", phase,
			"packet", i,
			"offset", offset,
			"ack", ack,
		)

		p.written += len(chunk)
		if p.written-p.reported >= p.config.ProgressInterval {
			p.reportProgress(phase)
		}
	}

	return nil
}

// transact writes one packet and waits for its acknowledgement.
func (p *Programmer) transact(ctx context.Context, cmd []byte, phase string, packet, offset int) (int32, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("cancelled: %w", err)
	}

	n, err := p.device.Write(cmd)
	if err != nil {
		return 0, &TransportError{Op: "write packet", Err: err}
	}
	if n != len(cmd) {
		return 0, &TransportError{Op: "write packet", Err: io.ErrShortWrite}
	}

	// Apply inter-command delay if configured
	if p.config.CommandDelay > 0 {
		time.Sleep(p.config.CommandDelay)
	}

	ack, err := p.readAck(phase, packet)
	if err != nil {
		return 0, err
	}

	if protocol.IsNack(ack) {
		return ack, &NackError{Phase: phase, Packet: packet, Offset: offset}
	}

	p.sent++
	return ack, nil
}

// readAck reads exactly protocol.AckSize bytes. A read returning no data
// means the transport timeout expired.
func (p *Programmer) readAck(phase string, packet int) (int32, error) {
	buf := make([]byte, protocol.AckSize)
	received := 0

	for received < len(buf) {
		n, err := p.device.Read(buf[received:])
		received += n
		if received == len(buf) {
			break
		}
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, &TransportError{Op: "read acknowledgement", Err: err}
		}
		if n == 0 {
			return 0, &AckTimeoutError{Phase: phase, Packet: packet, Received: received}
		}
	}

	return protocol.ParseAck(buf)
}

// applyReadTimeout configures the device read timeout when supported.
func (p *Programmer) applyReadTimeout() error {
	if p.config.ReadTimeout <= 0 {
		return nil
	}

	setter, ok := p.device.(readTimeoutSetter)
	if !ok {
		return nil
	}

	if err := setter.SetReadTimeout(p.config.ReadTimeout); err != nil {
		return &TransportError{Op: "set read timeout", Err: err}
	}
	return nil
}

// abort moves the programmer to StateAborted and wraps err with the failed step.
func (p *Programmer) abort(step string, err error) error {
	failed := p.state
	p.state = StateAborted

	p.logError("upload aborted",
		"state", failed.String(),
		"packets", p.sent,
		"error", err.Error(),
	)

	return fmt.Errorf("%s: %w", step, err)
}

func (p *Programmer) reset() {
	p.state = StateIdle
	p.sent = 0
	p.total = 0
	p.written = 0
	p.totalSize = 0
	p.reported = 0
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(phase string) {
	p.reported = p.written

	if p.config.ProgressCallback == nil {
		return
	}

	var percentage float64
	if p.total > 0 {
		percentage = float64(p.sent) / float64(p.total) * 100
	}

	p.config.ProgressCallback(Progress{
		Phase:        phase,
		PacketsSent:  p.sent,
		TotalPackets: p.total,
		Percentage:   percentage,
		BytesWritten: p.written,
		TotalBytes:   p.totalSize,
		ElapsedTime:  time.Since(p.startTime),
	})
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (p *Programmer) logError(msg string, keysAndValues ...interface{}) {
	if p.config.Logger != nil {
		p.config.Logger.Error(msg, keysAndValues...)
	}
}
