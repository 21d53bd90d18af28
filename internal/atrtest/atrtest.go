// Package atrtest builds synthetic double-density ATR images for tests.
package atrtest

import (
	"encoding/binary"
	"os"

	"github.com/ha1tch/homesoft/internal"
)

const (
	sectorSize     = 256
	payloadSize    = sectorSize - 3
	imageSize      = 183952
	directoryStart = 361
	entrySize      = 16
	entriesPerSect = 8

	FlagInUse = 0x40
)

// Image is a writable image buffer
type Image struct {
	Data []byte
}

// New returns a blank image with a valid ATR header
func New() *Image {
	im := &Image{Data: make([]byte, imageSize)}
	paragraphs := (imageSize - internal.ImageHeaderSize) / 16
	binary.LittleEndian.PutUint16(im.Data[0:], 0x0296)
	binary.LittleEndian.PutUint16(im.Data[2:], uint16(paragraphs))
	binary.LittleEndian.PutUint16(im.Data[4:], sectorSize)
	im.Data[6] = byte(paragraphs >> 16)
	return im
}

func (im *Image) sector(n int) []byte {
	pos := internal.SectorOffset(n, sectorSize)
	return im.Data[pos : pos+sectorSize]
}

// SetEntry writes directory slot i
func (im *Image) SetEntry(i int, flags byte, sectorCount, startSector int, name, ext string) {
	sector := im.sector(directoryStart + i/entriesPerSect)
	e := sector[(i%entriesPerSect)*entrySize:][:entrySize]
	e[0] = flags
	binary.LittleEndian.PutUint16(e[1:], uint16(sectorCount))
	binary.LittleEndian.PutUint16(e[3:], uint16(startSector))
	copy(e[5:13], pad(name, 8))
	copy(e[13:16], pad(ext, 3))
}

// WriteSector fills data sector n with payload and a link to next
func (im *Image) WriteSector(n int, payload []byte, next int) {
	sector := im.sector(n)
	copy(sector, payload)
	sector[sectorSize-3] = byte(next>>8) & 0x03
	sector[sectorSize-2] = byte(next)
	sector[sectorSize-1] = byte(len(payload))
}

// AddFile stores content in consecutive sectors from start and points slot i
// at them. Returns the number of sectors used.
func (im *Image) AddFile(i int, name, ext string, start int, content []byte) int {
	count := 0
	for off := 0; off < len(content) || count == 0; off += payloadSize {
		end := off + payloadSize
		if end > len(content) {
			end = len(content)
		}
		im.WriteSector(start+count, content[off:end], start+count+1)
		count++
	}
	im.SetEntry(i, FlagInUse, count, start, name, ext)
	return count
}

// Save writes the image to path
func (im *Image) Save(path string) error {
	return os.WriteFile(path, im.Data, 0644)
}

// Pattern returns n bytes of a repeating pattern seeded by seed
func Pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}

func pad(s string, n int) []byte {
	b := []byte(s)
	for len(b) < n {
		b = append(b, ' ')
	}
	return b[:n]
}
