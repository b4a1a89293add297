// Package device provides an in-process simulation of the update receiver.
//
// The simulated device follows the target firmware's UART updater task:
//
//   - START resets the write address and answers 0
//   - DATA must be exactly 72 bytes with a valid checksum; the payload is
//     written to flash (erasing each 4 KiB sector on first touch) and the
//     answer is the address it was written to
//   - RESET answers 0 and reboots the device
//   - anything else is answered with -1
//
// It implements io.ReadWriter and can be handed straight to
// bootloader.New for tests and demos:
//
//	dev := device.New()
//	prog := bootloader.New(dev)
//	if err := prog.Program(ctx, image); err != nil {
//	    log.Fatal(err)
//	}
//	installed, err := dev.Installed()
package device
