// Command binmerge combines a bootloader and an application into a single
// flashable binary. The bootloader is padded with 0xFF up to the minimum
// bootloader size before the application is appended.
//
// Usage:
//
//	binmerge -b bootloader.bin -a app.bin -s 8192
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/moffa90/go-fwupdate/firmware"
)

// Config holds command line options.
type Config struct {
	BootPath    string
	AppPath     string
	OutPath     string
	MinBootSize int
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.BootPath, "b", firmware.DefaultBootPath, "Bootloader binary")
	flag.StringVar(&cfg.AppPath, "a", firmware.DefaultAppPath, "Application binary")
	flag.IntVar(&cfg.MinBootSize, "s", firmware.DefaultBootMinSize, "Minimum bootloader size in bytes")
	flag.StringVar(&cfg.OutPath, "o", "", "Output file (default bl-<application>)")

	flag.Set("logtostderr", "true")
	flag.Parse()

	if cfg.OutPath == "" {
		cfg.OutPath = firmware.MergedName(cfg.AppPath)
	}

	return cfg
}

func main() {
	cfg := parseFlags()
	defer glog.Flush()

	result, err := firmware.MergeFiles(cfg.BootPath, cfg.AppPath, cfg.OutPath, cfg.MinBootSize)
	if err != nil {
		glog.Errorf("Merge failed: %v", err)
		glog.Flush()
		os.Exit(1)
	}

	if result.PadSize == 0 && result.BootSize > cfg.MinBootSize {
		glog.Warningf("Bootloader is %d bytes, larger than the %d byte minimum", result.BootSize, cfg.MinBootSize)
	}

	glog.Infof("Bootloader:  %d bytes", result.BootSize)
	glog.Infof("Padding:     %d bytes", result.PadSize)
	glog.Infof("Application: %d bytes", result.AppSize)
	fmt.Printf("Wrote %s (%d bytes)\n", cfg.OutPath, result.Total())
}
