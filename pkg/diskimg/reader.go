// file: pkg/diskimg/reader.go

package diskimg

import (
	"fmt"
	"io"
	"os"
)

// LoadFromFile loads an ATR image from a file.
// A missing file is returned as-is so callers can test it with os.IsNotExist.
func LoadFromFile(filename string) (*DiskImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Load(file)
}

// Load reads an ATR image from an io.Reader.
// Reads at most one byte past ImageSize so that oversized input is
// rejected without buffering all of it.
func Load(r io.Reader) (*DiskImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, ImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read disk image: %w", err)
	}

	return New(data)
}
