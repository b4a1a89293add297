package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestBuildControlCmds(t *testing.T) {
	tests := []struct {
		name  string
		build func() ([]byte, error)
		want  []byte
	}{
		{
			name:  "start",
			build: BuildStartCmd,
			want:  []byte{0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "reset",
			build: BuildResetCmd,
			want:  []byte{0x02, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(frame, tt.want) {
				t.Errorf("frame = % X, want % X", frame, tt.want)
			}
		})
	}
}

func TestBuildDataCmd(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		wantErr bool
	}{
		{
			name:    "empty payload",
			payload: nil,
		},
		{
			name:    "short payload",
			payload: []byte{0x01, 0x02, 0x03, 0x04},
		},
		{
			name:    "unaligned payload",
			payload: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
		},
		{
			name:    "full payload",
			payload: bytes.Repeat([]byte{0x11}, PayloadSize),
		},
		{
			name:    "oversized payload",
			payload: make([]byte, PayloadSize+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := BuildDataCmd(tt.payload)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var sizeErr *PayloadTooLargeError
				if !errors.As(err, &sizeErr) {
					t.Fatalf("error type = %T, want *PayloadTooLargeError", err)
				}
				if !errors.Is(err, ErrPrecondition) {
					t.Error("expected error to match ErrPrecondition")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(frame) != DataPacketSize {
				t.Fatalf("frame length = %d, want %d", len(frame), DataPacketSize)
			}

			if cmd := binary.LittleEndian.Uint32(frame[0:4]); cmd != CmdData {
				t.Errorf("CMD = 0x%08X, want 0x%08X", cmd, CmdData)
			}

			payload := frame[8:]
			if !bytes.Equal(payload[:len(tt.payload)], tt.payload) {
				t.Errorf("payload prefix = % X, want % X", payload[:len(tt.payload)], tt.payload)
			}
			for i := len(tt.payload); i < PayloadSize; i++ {
				if payload[i] != PadByte {
					t.Fatalf("payload[%d] = 0x%02X, want 0x%02X", i, payload[i], PadByte)
				}
			}

			want, _ := Checksum(payload)
			if got := binary.LittleEndian.Uint32(frame[4:8]); got != want {
				t.Errorf("CHECKSUM = 0x%08X, want 0x%08X", got, want)
			}
		})
	}
}

func TestBuildDataCmdKnownFrame(t *testing.T) {
	frame, err := BuildDataCmd([]byte{0x01, 0x02, 0x03, 0x04})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []byte{0x01, 0x00, 0x00, 0x00, 0x4C, 0x5C, 0x5D, 0x5E, 0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(frame[:len(want)], want) {
		t.Errorf("frame head = % X, want % X", frame[:len(want)], want)
	}
}

func TestBuildDataCmdDoesNotModifyInput(t *testing.T) {
	payload := []byte{0x01, 0x02}
	buf := append(payload, 0x03, 0x04)[:2]

	if _, err := BuildDataCmd(buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backing := buf[:4]
	if backing[2] != 0x03 || backing[3] != 0x04 {
		t.Errorf("input backing array modified: % X", backing)
	}
}

func TestSplitPayloads(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantChunks int
		wantLast   int
	}{
		{name: "empty", size: 0, wantChunks: 0},
		{name: "single short", size: 10, wantChunks: 1, wantLast: 10},
		{name: "exact", size: PayloadSize, wantChunks: 1, wantLast: PayloadSize},
		{name: "100 bytes", size: 100, wantChunks: 2, wantLast: 36},
		{name: "header", size: HeaderSize, wantChunks: HeaderPackets, wantLast: PayloadSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitPayloads(make([]byte, tt.size))
			if len(chunks) != tt.wantChunks {
				t.Fatalf("chunks = %d, want %d", len(chunks), tt.wantChunks)
			}
			if PacketCount(tt.size) != tt.wantChunks {
				t.Errorf("PacketCount(%d) = %d, want %d", tt.size, PacketCount(tt.size), tt.wantChunks)
			}
			if tt.wantChunks > 0 && len(chunks[len(chunks)-1]) != tt.wantLast {
				t.Errorf("last chunk = %d bytes, want %d", len(chunks[len(chunks)-1]), tt.wantLast)
			}
		})
	}
}

func TestDataPacketRoundTrip(t *testing.T) {
	data := make([]byte, HeaderSize)
	for i := range data {
		data[i] = byte(i % 251)
	}

	var rebuilt []byte
	for _, chunk := range SplitPayloads(data) {
		frame, err := BuildDataCmd(chunk)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pkt, err := ParsePacket(frame)
		if err != nil {
			t.Fatalf("ParsePacket() error: %v", err)
		}
		rebuilt = append(rebuilt, pkt.Payload...)
	}

	if !bytes.Equal(rebuilt, data) {
		t.Error("reassembled payloads do not match original data")
	}
}

func BenchmarkBuildDataCmd(b *testing.B) {
	payload := make([]byte, PayloadSize)
	for i := range payload {
		payload[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = BuildDataCmd(payload)
	}
}
