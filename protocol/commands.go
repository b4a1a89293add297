package protocol

import (
	"bytes"
	"encoding/binary"
)

// BuildStartCmd constructs a START packet.
// The receiver resets its write address and answers AckOK.
//
// Frame structure:
//
//	[CMD(4)]
func BuildStartCmd() ([]byte, error) {
	return buildControlCmd(CmdStart), nil
}

// BuildDataCmd constructs a DATA packet carrying up to PayloadSize bytes.
// Shorter payloads are right-padded with PadByte; the checksum covers the
// padded payload.
//
// Frame structure:
//
//	[CMD(4)][CHECKSUM(4)][PAYLOAD(64)]
//
// Returns a PayloadTooLargeError if payload exceeds PayloadSize.
func BuildDataCmd(payload []byte) ([]byte, error) {
	if len(payload) > PayloadSize {
		return nil, &PayloadTooLargeError{Length: len(payload), Max: PayloadSize}
	}

	padded := padPayload(payload)
	checksum, err := Checksum(padded)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, DataPacketSize)
	frame = binary.LittleEndian.AppendUint32(frame, CmdData)
	frame = binary.LittleEndian.AppendUint32(frame, checksum)
	frame = append(frame, padded...)

	return frame, nil
}

// BuildResetCmd constructs a RESET packet.
// The receiver answers AckOK and reboots into its bootloader.
//
// Frame structure:
//
//	[CMD(4)]
func BuildResetCmd() ([]byte, error) {
	return buildControlCmd(CmdReset), nil
}

// SplitPayloads splits data into consecutive PayloadSize chunks.
// The last chunk may be shorter. Chunks share memory with data.
func SplitPayloads(data []byte) [][]byte {
	chunks := make([][]byte, 0, PacketCount(len(data)))
	for len(data) > PayloadSize {
		chunks = append(chunks, data[:PayloadSize])
		data = data[PayloadSize:]
	}
	if len(data) > 0 {
		chunks = append(chunks, data)
	}
	return chunks
}

// PacketCount returns the number of DATA packets needed for n bytes.
func PacketCount(n int) int {
	return (n + PayloadSize - 1) / PayloadSize
}

func buildControlCmd(cmd uint32) []byte {
	frame := make([]byte, ControlPacketSize)
	binary.LittleEndian.PutUint32(frame, cmd)
	return frame
}

// padPayload returns a PayloadSize copy of payload padded with PadByte.
func padPayload(payload []byte) []byte {
	padded := bytes.Repeat([]byte{PadByte}, PayloadSize)
	copy(padded, payload)
	return padded
}
