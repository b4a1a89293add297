package firmware

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/moffa90/go-fwupdate/protocol"
)

// Defaults for merging a bootloader with an application.
const (
	// DefaultBootMinSize is the flash space reserved for the bootloader
	DefaultBootMinSize = 8 * 1024

	// DefaultBootPath is the bootloader binary used when none is given
	DefaultBootPath = "bootloader.bin"

	// DefaultAppPath is the application binary used when none is given
	DefaultAppPath = "app.bin"

	// MergedPrefix is prepended to the application file name to name the output
	MergedPrefix = "bl-"
)

// MergeResult reports the sections written by Merge.
type MergeResult struct {
	// BootSize is the size of the bootloader image
	BootSize int

	// PadSize is the number of 0xFF bytes written after the bootloader
	PadSize int

	// AppSize is the size of the application image
	AppSize int
}

// Total returns the size of the merged blob.
func (r *MergeResult) Total() int {
	return r.BootSize + r.PadSize + r.AppSize
}

// Merge writes the bootloader, pads it with 0xFF up to minBootSize and
// appends the application. A bootloader already larger than minBootSize is
// written unpadded. No separator or length prefix is written.
func Merge(w io.Writer, boot, app io.Reader, minBootSize int) (*MergeResult, error) {
	if minBootSize < 0 {
		return nil, fmt.Errorf("minimum bootloader size must not be negative, got %d", minBootSize)
	}

	result := &MergeResult{}

	n, err := io.Copy(w, boot)
	if err != nil {
		return nil, fmt.Errorf("copy bootloader: %w", err)
	}
	result.BootSize = int(n)

	if result.BootSize < minBootSize {
		result.PadSize = minBootSize - result.BootSize
		pad := bytes.Repeat([]byte{protocol.PadByte}, result.PadSize)
		if _, err := w.Write(pad); err != nil {
			return nil, fmt.Errorf("pad bootloader: %w", err)
		}
	}

	n, err = io.Copy(w, app)
	if err != nil {
		return nil, fmt.Errorf("copy application: %w", err)
	}
	result.AppSize = int(n)

	return result, nil
}

// MergeFiles merges the bootloader and application files into outPath.
// If outPath is empty, MergedName(appPath) is used.
func MergeFiles(bootPath, appPath, outPath string, minBootSize int) (*MergeResult, error) {
	if outPath == "" {
		outPath = MergedName(appPath)
	}

	boot, err := os.Open(bootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open bootloader: %w", err)
	}
	defer func() { _ = boot.Close() }()

	app, err := os.Open(appPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open application: %w", err)
	}
	defer func() { _ = app.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}

	result, err := Merge(out, boot, app, minBootSize)
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close output: %w", err)
	}

	return result, nil
}

// MergedName returns the default output name for an application path:
// the application's base name with MergedPrefix, in the current directory.
func MergedName(appPath string) string {
	return MergedPrefix + filepath.Base(appPath)
}
