package protocol

// ProtocolVersion is the firmware header format version written by this library.
const ProtocolVersion = 1

// Command codes. Each is sent on the wire as a 4-byte little-endian word.
const (
	// CmdStart resets the receiver's write address to the start of the update area
	CmdStart = 0x00

	// CmdData carries a checksummed 64-byte payload
	CmdData = 0x01

	// CmdReset tells the receiver to reboot into the bootloader
	CmdReset = 0x02
)

// Frame structure constants.
const (
	// WordSize is the size of every integer field on the wire
	WordSize = 4

	// PayloadSize is the fixed payload size of a DATA packet (16 words)
	PayloadSize = 16 * WordSize

	// ControlPacketSize is the size of START and RESET packets: CMD(4)
	ControlPacketSize = WordSize

	// DataPacketSize is the size of a DATA packet: CMD(4) + CHECKSUM(4) + PAYLOAD(64)
	DataPacketSize = WordSize + WordSize + PayloadSize

	// PadByte fills short payloads and the unused part of the firmware header
	PadByte = 0xFF
)

// ChecksumSeed is the initial value of the rolling checksum.
const ChecksumSeed = 0x5A5A5A5A

// Acknowledgement constants.
const (
	// AckSize is the size of an acknowledgement (signed 32-bit, little-endian)
	AckSize = WordSize

	// AckOK is what the receiver answers to START and RESET
	AckOK = 0

	// AckFailure is the negative acknowledgement value
	AckFailure = -1
)

// Firmware header constants.
const (
	// HeaderSize is the fixed size of the firmware header block
	HeaderSize = 4096

	// HeaderMetadataSize is the size of the used part of the header:
	// LOADED(4) + VERSION(4) + SIZE(4) + CHECKSUM(4)
	HeaderMetadataSize = 4 * WordSize

	// HeaderPackets is the number of DATA packets needed to send the header
	HeaderPackets = HeaderSize / PayloadSize
)
