// Package firmware prepares firmware images for upload.
//
// # Firmware Header
//
// Every upload starts with a 4096-byte header describing the image:
//
//	[LOADED(4)][VERSION(4)][SIZE(4)][CHECKSUM(4)][0xFF padding...]
//
// All fields are little-endian. LOADED is 0 when built by the host and is
// set by the device bootloader once the image has been copied. CHECKSUM is
// the protocol rolling checksum of the whole unpadded image, so the image
// length must be a multiple of 4.
//
//	img, err := firmware.Load("umeter.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	header, err := firmware.BuildHeader(img.Data)
//
// # Merging
//
// Merge produces a flashable blob from a bootloader and an application:
// the bootloader is padded with 0xFF to a minimum size and the application
// is appended with no separator.
//
//	res, err := firmware.MergeFiles("bootloader.bin", "app.bin", "", firmware.DefaultBootMinSize)
//	fmt.Printf("boot+app: %d\n", res.Total())
package firmware
