package protocol

// Packet is a decoded protocol frame as seen by the receiver.
type Packet struct {
	// Command is one of CmdStart, CmdData or CmdReset
	Command uint32

	// Checksum is the transmitted payload checksum (DATA only)
	Checksum uint32

	// Payload is the padded 64-byte payload (DATA only)
	Payload []byte
}

// CommandName returns a human-readable name for a command code.
func CommandName(cmd uint32) string {
	switch cmd {
	case CmdStart:
		return "START"
	case CmdData:
		return "DATA"
	case CmdReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}
