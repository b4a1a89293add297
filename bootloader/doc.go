// Package bootloader provides a high-level API for uploading firmware over
// the UART update protocol.
//
// # Overview
//
// This package orchestrates the complete upload sequence:
//   - Building the 4096-byte firmware header from the image
//   - Sending START
//   - Streaming the header and the image in 64-byte DATA packets
//   - Sending RESET so the device bootloader installs the image
//
// Every packet is written only after the previous one has been
// acknowledged. The receiver cannot buffer more than one packet, so this
// pacing is the protocol's flow control.
//
// # Basic Usage
//
//	port, err := serialport.Open(serialport.DefaultConfig("/dev/ttyUSB0"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	img, err := firmware.Load("umeter.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := bootloader.New(port)
//	if err := prog.Program(context.Background(), img.Data); err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Printf("[%s] %.1f%% - %d/%d bytes\n",
//	            p.Phase, p.Percentage, p.BytesWritten, p.TotalBytes)
//	    }),
//	)
//
// # Configuration Options
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithLogger(myLogger),
//	    bootloader.WithReadTimeout(200*time.Millisecond),
//	    bootloader.WithProgressInterval(4096),
//	    bootloader.WithResetAck(true),
//	)
//
// # Error Handling
//
// There is no retry. The first failure aborts the upload, the Programmer
// moves to StateAborted and the upload must be restarted from START:
//
//   - NackError (matches ErrNack): the receiver answered -1
//   - AckTimeoutError (matches ErrTransport): no complete acknowledgement
//     arrived before the transport read timeout
//   - TransportError (matches ErrTransport): a read or write failed
//   - protocol.ErrPrecondition: the image length is not a multiple of 4
//
// Use errors.As to inspect the failure:
//
//	var nack *bootloader.NackError
//	if errors.As(err, &nack) {
//	    fmt.Printf("rejected at %s packet %d\n", nack.Phase, nack.Packet)
//	}
//
// # Hardware Independence
//
// Programmer talks to any io.ReadWriter. Reads must return (0, nil) when
// the transport's read timeout expires, as serial ports do. If the device
// also has a SetReadTimeout(time.Duration) error method, the configured
// read timeout is applied before the upload starts.
package bootloader
