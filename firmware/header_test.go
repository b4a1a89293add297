package firmware

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/moffa90/go-fwupdate/protocol"
)

func TestBuildHeader(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
	}{
		{name: "empty image", image: []byte{}},
		{name: "two words", image: []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}},
		{name: "100 bytes", image: bytes.Repeat([]byte{0xA5}, 100)},
		{name: "larger than header", image: make([]byte, 3*protocol.HeaderSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := BuildHeader(tt.image)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(block) != protocol.HeaderSize {
				t.Fatalf("header length = %d, want %d", len(block), protocol.HeaderSize)
			}

			if v := binary.LittleEndian.Uint32(block[0:4]); v != 0 {
				t.Errorf("loaded = %d, want 0", v)
			}
			if v := binary.LittleEndian.Uint32(block[4:8]); v != 1 {
				t.Errorf("version = %d, want 1", v)
			}
			if v := binary.LittleEndian.Uint32(block[8:12]); v != uint32(len(tt.image)) {
				t.Errorf("size = %d, want %d", v, len(tt.image))
			}

			want, _ := protocol.Checksum(tt.image)
			if v := binary.LittleEndian.Uint32(block[12:16]); v != want {
				t.Errorf("checksum = 0x%08X, want 0x%08X", v, want)
			}

			for i := protocol.HeaderMetadataSize; i < protocol.HeaderSize; i++ {
				if block[i] != protocol.PadByte {
					t.Fatalf("block[%d] = 0x%02X, want 0x%02X", i, block[i], protocol.PadByte)
				}
			}
		})
	}
}

func TestBuildHeaderKnownImage(t *testing.T) {
	image := []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00}

	block, err := BuildHeader(image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00,
		0x08, 0x00, 0x00, 0x00,
		0x5D, 0x5A, 0x5A, 0x5A,
		0xFF,
	}
	if !bytes.Equal(block[:len(want)], want) {
		t.Errorf("header = % X, want % X", block[:len(want)], want)
	}
}

func TestBuildHeaderUnalignedImage(t *testing.T) {
	_, err := BuildHeader(make([]byte, 101))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var lenErr *protocol.InvalidLengthError
	if !errors.As(err, &lenErr) {
		t.Fatalf("error type = %T, want *protocol.InvalidLengthError", err)
	}
	if !errors.Is(err, protocol.ErrPrecondition) {
		t.Error("expected error to match protocol.ErrPrecondition")
	}
}

func TestParseHeader(t *testing.T) {
	image := bytes.Repeat([]byte{0x12, 0x34, 0x56, 0x78}, 40)

	block, err := BuildHeader(image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h, err := ParseHeader(block)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.Loaded != 0 || h.Version != protocol.ProtocolVersion || h.Size != 160 {
		t.Errorf("ParseHeader() = %s", h)
	}

	if err := h.Verify(image); err != nil {
		t.Errorf("Verify() error: %v", err)
	}

	if _, err := ParseHeader(block[:100]); err == nil {
		t.Error("expected error for short block, got nil")
	}
}

func TestHeaderVerify(t *testing.T) {
	image := make([]byte, 64)
	h, err := NewHeader(image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		image   []byte
		wantMsg string
	}{
		{name: "matching", image: image},
		{name: "truncated", image: image[:60], wantMsg: "size mismatch"},
		{name: "corrupted", image: append([]byte{0x01}, image[1:]...), wantMsg: "checksum mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify(tt.image)
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *VerificationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *VerificationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestHeaderPacketRoundTrip(t *testing.T) {
	block, err := BuildHeader(bytes.Repeat([]byte{0x10, 0x20, 0x30, 0x40}, 64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chunks := protocol.SplitPayloads(block)
	if len(chunks) != protocol.HeaderPackets {
		t.Fatalf("chunks = %d, want %d", len(chunks), protocol.HeaderPackets)
	}

	var rebuilt []byte
	for _, chunk := range chunks {
		frame, err := protocol.BuildDataCmd(chunk)
		if err != nil {
			t.Fatalf("BuildDataCmd() error: %v", err)
		}
		rebuilt = append(rebuilt, frame[2*protocol.WordSize:]...)
	}

	if !bytes.Equal(rebuilt, block) {
		t.Error("payloads re-extracted from DATA packets do not reproduce the header")
	}
}

func TestHeaderOverflowError(t *testing.T) {
	err := &HeaderOverflowError{Size: 5000, Max: 4096}

	if !strings.Contains(err.Error(), "5000") || !strings.Contains(err.Error(), "4096") {
		t.Errorf("error message should contain sizes, got: %s", err.Error())
	}
	if !errors.Is(err, protocol.ErrPrecondition) {
		t.Error("expected error to match protocol.ErrPrecondition")
	}
}
