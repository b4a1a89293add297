package firmware

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/moffa90/go-fwupdate/protocol"
)

// NewHeader derives the header for an image.
// The image length must be a multiple of protocol.WordSize; the image is
// never padded implicitly.
func NewHeader(image []byte) (*Header, error) {
	checksum, err := protocol.Checksum(image)
	if err != nil {
		return nil, fmt.Errorf("image checksum: %w", err)
	}

	return &Header{
		Loaded:   0,
		Version:  protocol.ProtocolVersion,
		Size:     uint32(len(image)),
		Checksum: checksum,
	}, nil
}

// BuildHeader returns the protocol.HeaderSize header block for an image.
//
// Block structure:
//
//	[LOADED(4)][VERSION(4)][SIZE(4)][CHECKSUM(4)][0xFF...]
func BuildHeader(image []byte) ([]byte, error) {
	h, err := NewHeader(image)
	if err != nil {
		return nil, err
	}
	return h.MarshalBinary()
}

// MarshalBinary encodes the header as a protocol.HeaderSize block padded
// with protocol.PadByte.
func (h *Header) MarshalBinary() ([]byte, error) {
	block := make([]byte, 0, protocol.HeaderSize)
	block = binary.LittleEndian.AppendUint32(block, h.Loaded)
	block = binary.LittleEndian.AppendUint32(block, h.Version)
	block = binary.LittleEndian.AppendUint32(block, h.Size)
	block = binary.LittleEndian.AppendUint32(block, h.Checksum)

	if len(block) > protocol.HeaderSize {
		return nil, &HeaderOverflowError{Size: len(block), Max: protocol.HeaderSize}
	}

	block = append(block, bytes.Repeat([]byte{protocol.PadByte}, protocol.HeaderSize-len(block))...)
	return block, nil
}

// ParseHeader decodes a header block read back from the update area.
// Only the metadata words are interpreted; padding is not checked.
func ParseHeader(block []byte) (*Header, error) {
	if len(block) != protocol.HeaderSize {
		return nil, fmt.Errorf("invalid header length: got %d bytes, expected %d", len(block), protocol.HeaderSize)
	}

	h := &Header{
		Loaded:   binary.LittleEndian.Uint32(block[0:4]),
		Version:  binary.LittleEndian.Uint32(block[4:8]),
		Size:     binary.LittleEndian.Uint32(block[8:12]),
		Checksum: binary.LittleEndian.Uint32(block[12:16]),
	}

	return h, nil
}

// Verify checks that image matches the size and checksum recorded in the header.
func (h *Header) Verify(image []byte) error {
	if uint32(len(image)) != h.Size {
		return &VerificationError{
			Message: fmt.Sprintf("size mismatch: header records %d bytes, image has %d", h.Size, len(image)),
		}
	}

	checksum, err := protocol.Checksum(image)
	if err != nil {
		return err
	}
	if checksum != h.Checksum {
		return &VerificationError{
			Message: fmt.Sprintf("checksum mismatch: header records 0x%08X, image sums to 0x%08X", h.Checksum, checksum),
		}
	}

	return nil
}

// String returns a one-line description of the header.
func (h *Header) String() string {
	return fmt.Sprintf("loaded=%d version=%d size=%d checksum=0x%08X", h.Loaded, h.Version, h.Size, h.Checksum)
}
