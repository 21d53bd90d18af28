package internal

// BootSectorShortfall is the number of bytes the three 128-byte boot sectors
// are short of three full 256-byte sectors in a double-density image.
const BootSectorShortfall = 3 * 128

// ImageHeaderSize is the size of the header in front of the sector data.
const ImageHeaderSize = 16

// SectorOffset converts a logical sector number (4 and up) into a byte offset
// within a double-density image, header included.
func SectorOffset(sectorNum, sectorSize int) int {
	return (sectorNum-1)*sectorSize - (BootSectorShortfall - ImageHeaderSize)
}
