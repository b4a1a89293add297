package firmware

import (
	"fmt"
	"io"
	"os"
)

// Load reads a raw firmware image from the given file path.
//
// Example:
//
//	img, err := firmware.Load("umeter.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Image size: %d bytes\n", img.Size())
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(f, path)
}

// LoadReader reads a raw firmware image from any io.Reader.
// This is useful for testing and reading from non-file sources.
func LoadReader(r io.Reader, name string) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	return &Image{Name: name, Data: data}, nil
}
