// Command fwupdate uploads a raw application image to a device over a
// serial port.
//
// Usage:
//
//	fwupdate -port /dev/ttyUSB0 -bin app.bin
//	fwupdate -list
//
// Packet-level tracing is enabled with -v=2.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/golang/glog"
	"github.com/schollz/progressbar/v3"

	"github.com/moffa90/go-fwupdate/bootloader"
	"github.com/moffa90/go-fwupdate/firmware"
	"github.com/moffa90/go-fwupdate/protocol"
	"github.com/moffa90/go-fwupdate/serialport"
)

// Config holds command line options.
type Config struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
	Timeout     time.Duration
	ImagePath   string
	NoResetAck  bool
	NoProgress  bool
	List        bool
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.Port, "port", "", "Serial port the device is attached to (required)")
	flag.IntVar(&cfg.Baud, "baud", serialport.DefaultBaud, "Serial baud rate")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", serialport.DefaultReadTimeout, "Acknowledgement read timeout")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Minute, "Overall upload timeout")
	flag.StringVar(&cfg.ImagePath, "bin", firmware.DefaultAppPath, "Application image to upload")
	flag.BoolVar(&cfg.NoResetAck, "no-reset-ack", false, "Do not fail when the RESET command is not acknowledged")
	flag.BoolVar(&cfg.NoProgress, "no-progress", false, "Disable the progress bar")
	flag.BoolVar(&cfg.List, "list", false, "List available serial ports and exit")

	// glog writes to files by default.
	flag.Set("logtostderr", "true")
	flag.Parse()

	return cfg
}

// glogLogger adapts glog to bootloader.Logger.
type glogLogger struct{}

func (glogLogger) Debug(msg string, keysAndValues ...interface{}) {
	if glog.V(2) {
		glog.InfoDepth(1, format(msg, keysAndValues))
	}
}

func (glogLogger) Info(msg string, keysAndValues ...interface{}) {
	glog.InfoDepth(1, format(msg, keysAndValues))
}

func (glogLogger) Error(msg string, keysAndValues ...interface{}) {
	glog.ErrorDepth(1, format(msg, keysAndValues))
}

func format(msg string, keysAndValues []interface{}) string {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		msg += fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	return msg
}

func listPorts() error {
	ports, err := serialport.List()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, name := range ports {
		fmt.Println(name)
	}
	return nil
}

func run(cfg *Config) error {
	img, err := firmware.Load(cfg.ImagePath)
	if err != nil {
		return err
	}

	header, err := firmware.NewHeader(img.Data)
	if err != nil {
		return err
	}
	glog.Infof("Loaded %s: %s", img.Name, header)

	port, err := serialport.Open(&serialport.Config{
		Device:      cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return err
	}
	defer port.Close()
	glog.Infof("Opened %s at %d baud", cfg.Port, cfg.Baud)

	opts := []bootloader.Option{
		bootloader.WithLogger(glogLogger{}),
		bootloader.WithReadTimeout(cfg.ReadTimeout),
		bootloader.WithResetAck(!cfg.NoResetAck),
	}

	var bar *progressbar.ProgressBar
	if !cfg.NoProgress {
		bar = progressbar.NewOptions(protocol.HeaderSize+img.Size(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Writing"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWriter(os.Stderr),
		)
		opts = append(opts, bootloader.WithProgressCallback(func(p bootloader.Progress) {
			bar.Set(p.BytesWritten)
		}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	start := time.Now()
	if err := bootloader.New(port, opts...).Program(ctx, img.Data); err != nil {
		if bar != nil {
			fmt.Fprintln(os.Stderr)
		}
		return err
	}
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	glog.Infof("Uploaded %d bytes in %s", img.Size(), time.Since(start).Round(time.Millisecond))
	return nil
}

func main() {
	cfg := parseFlags()
	defer glog.Flush()

	if cfg.List {
		if err := listPorts(); err != nil {
			glog.Errorf("Failed to list serial ports: %v", err)
			glog.Flush()
			os.Exit(1)
		}
		return
	}

	if cfg.Port == "" {
		fmt.Fprintln(os.Stderr, "Error: -port flag is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		var nack *bootloader.NackError
		var timeout *bootloader.AckTimeoutError
		switch {
		case errors.As(err, &nack):
			glog.Errorf("Device rejected %s packet %d (offset %d)", nack.Phase, nack.Packet, nack.Offset)
		case errors.As(err, &timeout):
			glog.Errorf("No acknowledgement for %s packet %d; check the port and baud rate", timeout.Phase, timeout.Packet)
		}
		glog.Errorf("Upload failed: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
