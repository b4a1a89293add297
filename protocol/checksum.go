package protocol

import "encoding/binary"

// Checksum computes the 32-bit rolling sum used by DATA packets and the
// firmware header: ChecksumSeed plus every little-endian word of data,
// modulo 2^32.
//
// The length of data must be a multiple of WordSize. Callers pad payloads
// before checksumming; the firmware image itself is never padded.
func Checksum(data []byte) (uint32, error) {
	if len(data)%WordSize != 0 {
		return 0, &InvalidLengthError{Length: len(data)}
	}

	sum := uint32(ChecksumSeed)
	for i := 0; i < len(data); i += WordSize {
		sum += binary.LittleEndian.Uint32(data[i : i+WordSize])
	}

	return sum, nil
}

// AppendChecksum appends the little-endian encoding of Checksum(data) to dst.
func AppendChecksum(dst, data []byte) ([]byte, error) {
	sum, err := Checksum(data)
	if err != nil {
		return dst, err
	}
	return binary.LittleEndian.AppendUint32(dst, sum), nil
}
