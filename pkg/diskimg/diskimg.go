// file: pkg/diskimg/diskimg.go

package diskimg

import (
	"fmt"

	log "github.com/dsoprea/go-logging"

	"github.com/ha1tch/homesoft/internal"
)

const (
	SectorSize      = 256    // Double-density sector size
	ImageSize       = 183952 // 16-byte header, 3 boot sectors of 128 bytes, 717 sectors of 256 bytes
	TotalSectors    = 720
	FirstDataSector = 4 // Sectors 1-3 are boot sectors and are never read

	// Every data sector ends in a 3-byte link: two bytes of next-sector
	// pointer followed by the number of payload bytes in use.
	PayloadSize    = SectorSize - 3
	linkHighOffset = SectorSize - 3
	linkLowOffset  = SectorSize - 2
	byteCountIndex = SectorSize - 1
	linkHighMask   = 0x03
)

var diskLogger = log.NewLogger("diskimg")

// DiskImage is a read-only view over a raw double-density ATR image
type DiskImage struct {
	data []byte
}

// New wraps raw image bytes. The buffer must be exactly ImageSize bytes long;
// anything else is not an image of this format.
func New(data []byte) (*DiskImage, error) {
	if len(data) != ImageSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidImageSize, len(data), ImageSize)
	}
	return &DiskImage{data: data}, nil
}

// Size returns the image size in bytes
func (di *DiskImage) Size() int {
	return len(di.data)
}

// Sector returns a copy of logical sector sectorNum
func (di *DiskImage) Sector(sectorNum int) ([]byte, error) {
	if sectorNum < FirstDataSector {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSector, sectorNum)
	}

	pos := internal.SectorOffset(sectorNum, SectorSize)
	if pos < 0 || pos+SectorSize > len(di.data) {
		return nil, fmt.Errorf("%w: sector %d at offset %d", ErrSectorOutOfRange, sectorNum, pos)
	}

	sector := make([]byte, SectorSize)
	copy(sector, di.data[pos:pos+SectorSize])
	return sector, nil
}

// GetDirectory decodes the 64-slot directory table
func (di *DiskImage) GetDirectory() (*Directory, error) {
	return di.readDirectory()
}
