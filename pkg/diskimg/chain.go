// file: pkg/diskimg/chain.go

package diskimg

import (
	"fmt"
)

// NextSector returns the sector number stored in the link field of a data sector
func NextSector(sector []byte) int {
	return int(sector[linkHighOffset]&linkHighMask)<<8 | int(sector[linkLowOffset])
}

// ByteCount returns the number of payload bytes a data sector contributes
func ByteCount(sector []byte) int {
	return int(sector[byteCountIndex])
}

// FollowChain reassembles a file from sectorCount linked sectors beginning at
// startSector. The walk ends after sectorCount sectors: the link in the last
// sector is decoded but never followed.
func (di *DiskImage) FollowChain(startSector, sectorCount int) ([]byte, error) {
	if sectorCount < 0 {
		return nil, fmt.Errorf("%w: negative sector count %d", ErrCorruptChain, sectorCount)
	}

	data := make([]byte, 0, sectorCount*PayloadSize)
	sectorNum := startSector

	for i := 0; i < sectorCount; i++ {
		sector, err := di.Sector(sectorNum)
		if err != nil {
			return nil, fmt.Errorf("chain sector %d of %d: %w", i+1, sectorCount, err)
		}

		length := ByteCount(sector)
		if length > PayloadSize {
			return nil, fmt.Errorf("%w: sector %d claims %d bytes", ErrCorruptChain, sectorNum, length)
		}
		data = append(data, sector[:length]...)

		sectorNum = NextSector(sector)
	}

	diskLogger.Debugf(nil, "followed %d sectors from %d: %d bytes", sectorCount, startSector, len(data))
	return data, nil
}
