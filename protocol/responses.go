package protocol

import (
	"encoding/binary"
	"fmt"
)

// ParseAck decodes an acknowledgement as a signed little-endian 32-bit value.
//
// Data format (AckSize bytes):
//
//	[VALUE(4)]
func ParseAck(data []byte) (int32, error) {
	if len(data) != AckSize {
		return 0, fmt.Errorf("invalid acknowledgement length: got %d bytes, expected %d", len(data), AckSize)
	}

	return int32(binary.LittleEndian.Uint32(data)), nil
}

// BuildAck encodes an acknowledgement value.
func BuildAck(value int32) []byte {
	ack := make([]byte, AckSize)
	binary.LittleEndian.PutUint32(ack, uint32(value))
	return ack
}

// IsNack reports whether an acknowledgement value signals receiver failure.
func IsNack(value int32) bool {
	return value == AckFailure
}

// ParsePacket decodes and validates a frame received from the host.
// START and RESET frames must carry at least the command word; DATA frames
// must be exactly DataPacketSize bytes with a matching checksum.
//
// The returned payload shares memory with frame.
func ParsePacket(frame []byte) (*Packet, error) {
	if len(frame) < ControlPacketSize {
		return nil, ErrShortPacket
	}

	cmd := binary.LittleEndian.Uint32(frame[0:4])
	switch cmd {
	case CmdStart, CmdReset:
		return &Packet{Command: cmd}, nil
	case CmdData:
	default:
		return nil, &UnknownCommandError{Command: cmd}
	}

	if len(frame) != DataPacketSize {
		return nil, &FrameSizeError{Length: len(frame), Expected: DataPacketSize}
	}

	pkt := &Packet{
		Command:  cmd,
		Checksum: binary.LittleEndian.Uint32(frame[4:8]),
		Payload:  frame[8:DataPacketSize],
	}

	actual, err := Checksum(pkt.Payload)
	if err != nil {
		return nil, err
	}
	if actual != pkt.Checksum {
		return nil, &ChecksumMismatchError{Expected: pkt.Checksum, Actual: actual}
	}

	return pkt, nil
}
