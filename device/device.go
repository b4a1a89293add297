package device

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/moffa90/go-fwupdate/firmware"
	"github.com/moffa90/go-fwupdate/protocol"
)

// SectorSize is the erase granularity of the simulated SPI flash.
const SectorSize = 4096

// DefaultFlashSize is the size of the simulated update area.
const DefaultFlashSize = 512 * 1024

// Device simulates the receiving end of the update protocol: a UART
// updater task that writes DATA payloads into external flash.
//
// Each Write is handled as one received packet and queues a 4-byte
// acknowledgement. Read returns the queued acknowledgement, or (0, nil)
// when nothing is pending, the way a serial port behaves when its read
// timeout expires.
//
// Device is safe for concurrent use.
type Device struct {
	mu sync.Mutex

	flash   []byte
	address uint32
	pending []byte

	dataPackets int
	packets     int
	resets      int
	rejected    int

	nackAt   map[int]bool
	silentAt map[int]bool
}

// Option configures a Device.
type Option func(*Device)

// WithFlashSize sets the size of the simulated update area.
// The size is rounded up to a whole number of sectors.
func WithFlashSize(size int) Option {
	return func(d *Device) {
		if size > 0 {
			sectors := (size + SectorSize - 1) / SectorSize
			d.flash = bytes.Repeat([]byte{protocol.PadByte}, sectors*SectorSize)
		}
	}
}

// WithNackAt makes the device reject the given DATA packets with -1.
// Packets are counted from 0 after the most recent START.
func WithNackAt(packets ...int) Option {
	return func(d *Device) {
		for _, n := range packets {
			d.nackAt[n] = true
		}
	}
}

// WithSilentAt makes the device drop the given DATA packets without
// answering, so the host sees a read timeout.
func WithSilentAt(packets ...int) Option {
	return func(d *Device) {
		for _, n := range packets {
			d.silentAt[n] = true
		}
	}
}

// New creates a simulated receiver with erased flash.
func New(opts ...Option) *Device {
	d := &Device{
		flash:    bytes.Repeat([]byte{protocol.PadByte}, DefaultFlashSize),
		nackAt:   make(map[int]bool),
		silentAt: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Write handles one packet from the host.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.packets++
	// A new packet discards any unread acknowledgement.
	d.pending = nil

	ack, respond := d.handle(p)
	if respond {
		d.pending = protocol.BuildAck(ack)
	}
	if ack == protocol.AckFailure {
		d.rejected++
	}

	return len(p), nil
}

// Read returns the pending acknowledgement bytes.
func (d *Device) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	return n, nil
}

func (d *Device) handle(frame []byte) (int32, bool) {
	pkt, err := protocol.ParsePacket(frame)
	if err != nil {
		return protocol.AckFailure, true
	}

	switch pkt.Command {
	case protocol.CmdStart:
		d.address = 0
		d.dataPackets = 0
		return protocol.AckOK, true

	case protocol.CmdReset:
		d.resets++
		return protocol.AckOK, true
	}

	index := d.dataPackets
	d.dataPackets++

	if d.silentAt[index] {
		return 0, false
	}
	if d.nackAt[index] {
		return protocol.AckFailure, true
	}

	if int(d.address)+protocol.PayloadSize > len(d.flash) {
		return protocol.AckFailure, true
	}

	if d.address%SectorSize == 0 {
		d.eraseSector(d.address)
	}
	copy(d.flash[d.address:], pkt.Payload)

	ack := int32(d.address)
	d.address += protocol.PayloadSize
	return ack, true
}

func (d *Device) eraseSector(addr uint32) {
	sector := d.flash[addr : addr+SectorSize]
	for i := range sector {
		sector[i] = protocol.PadByte
	}
}

// Address returns the flash address the next DATA payload will be written to.
func (d *Device) Address() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.address
}

// Packets returns the number of packets received.
func (d *Device) Packets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.packets
}

// Rejected returns the number of packets answered with -1.
func (d *Device) Rejected() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rejected
}

// Resets returns the number of RESET commands received.
func (d *Device) Resets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets
}

// Flash returns a copy of the bytes written since the last START.
func (d *Device) Flash() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]byte(nil), d.flash[:d.address]...)
}

// Header decodes the firmware header stored at the start of the update area.
func (d *Device) Header() (*firmware.Header, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.address < protocol.HeaderSize {
		return nil, fmt.Errorf("header incomplete: %d of %d bytes written", d.address, protocol.HeaderSize)
	}
	return firmware.ParseHeader(d.flash[:protocol.HeaderSize])
}

// Image returns the image stored after the header, trimmed to the size
// the header records.
func (d *Device) Image() ([]byte, error) {
	h, err := d.Header()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	end := uint64(protocol.HeaderSize) + uint64(h.Size)
	if end > uint64(d.address) {
		return nil, fmt.Errorf("image incomplete: header records %d bytes, %d written", h.Size, d.address-protocol.HeaderSize)
	}
	return append([]byte(nil), d.flash[protocol.HeaderSize:end]...), nil
}

// Verify checks the stored image against the stored header, the way the
// device bootloader does before installing an update.
func (d *Device) Verify() error {
	h, err := d.Header()
	if err != nil {
		return err
	}
	if h.Version != protocol.ProtocolVersion {
		return fmt.Errorf("unsupported header version %d", h.Version)
	}

	image, err := d.Image()
	if err != nil {
		return err
	}
	return h.Verify(image)
}

// ErrNotReset is returned by Installed when no RESET has been received.
var ErrNotReset = errors.New("device has not been reset")

// Installed returns the verified image once the host has sent RESET.
func (d *Device) Installed() ([]byte, error) {
	if d.Resets() == 0 {
		return nil, ErrNotReset
	}
	if err := d.Verify(); err != nil {
		return nil, err
	}
	return d.Image()
}
