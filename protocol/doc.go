// Package protocol implements the UART firmware update packet protocol.
//
// This package builds the host-side command frames, decodes them on the
// receiver side, and encodes the 4-byte acknowledgement returned after
// every frame.
//
// # Protocol Overview
//
// All integers are little-endian 32-bit words:
//
//	START: [CMD=0x00]
//	DATA:  [CMD=0x01][CHECKSUM][PAYLOAD(64)]
//	RESET: [CMD=0x02]
//	ACK:   [VALUE]            (-1 = failure, anything else = success)
//
// DATA payloads shorter than 64 bytes are padded with 0xFF. The checksum
// is 0x5A5A5A5A plus every payload word, modulo 2^32.
//
// # Command Builders
//
//	frame, err := protocol.BuildStartCmd()
//	frame, err := protocol.BuildDataCmd(chunk)
//	frame, err := protocol.BuildResetCmd()
//
// Use SplitPayloads to cut a header or image into DATA-sized chunks:
//
//	for _, chunk := range protocol.SplitPayloads(image) {
//	    frame, err := protocol.BuildDataCmd(chunk)
//	    // ...
//	}
//
// # Acknowledgements
//
//	value, err := protocol.ParseAck(buf[:protocol.AckSize])
//	if protocol.IsNack(value) {
//	    // receiver rejected the frame
//	}
//
// # Error Handling
//
// Errors caused by invalid caller input (payload too large, data length
// not a multiple of 4) match ErrPrecondition:
//
//	if errors.Is(err, protocol.ErrPrecondition) {
//	    // fix the input, do not retry
//	}
package protocol
