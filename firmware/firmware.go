package firmware

import "github.com/moffa90/go-fwupdate/protocol"

// Image is a raw application binary as produced by the linker.
// It carries no header and is never modified after loading.
type Image struct {
	// Name identifies where the image came from (file path or label)
	Name string

	// Data is the raw application image
	Data []byte
}

// Size returns the image size in bytes.
func (img *Image) Size() int {
	return len(img.Data)
}

// Packets returns the number of DATA packets needed to send the image.
func (img *Image) Packets() int {
	return protocol.PacketCount(len(img.Data))
}

// Header represents the firmware header written ahead of the image in the
// receiver's update area.
type Header struct {
	// Loaded is set by the bootloader after it has copied the image (0 when built)
	Loaded uint32

	// Version is the header format version
	Version uint32

	// Size is the image size in bytes
	Size uint32

	// Checksum is the rolling checksum of the entire unpadded image
	Checksum uint32
}
