package diskimg

import (
	"fmt"
)

// DiskCheck performs a read-only consistency check of every in-use chain.
// It reports each problem found instead of stopping at the first one.
func (dir *Directory) DiskCheck() []error {
	owner := make(map[int]int)
	var problems []error

	for i := range dir.Entries {
		entry := &dir.Entries[i]
		if !entry.InUse() {
			continue
		}
		if err := dir.checkChain(i, entry, owner); err != nil {
			problems = append(problems, err)
		}
	}

	return problems
}

// checkChain ensures a chain stays inside the image and shares no sector
// with another file.
func (dir *Directory) checkChain(slot int, entry *DirectoryEntry, owner map[int]int) error {
	field := fmt.Sprintf("Entries[%d] %s", slot, entry.GetFilename())
	sectorNum := int(entry.StartSector)

	for i := 0; i < int(entry.SectorCount); i++ {
		if prev, taken := owner[sectorNum]; taken {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("sector %d allocated to slot %d as well", sectorNum, prev),
			}
		}
		owner[sectorNum] = slot

		sector, err := dir.disk.Sector(sectorNum)
		if err != nil {
			return &ValidationError{Field: field, Message: err.Error()}
		}
		if n := ByteCount(sector); n > PayloadSize {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("sector %d claims %d bytes", sectorNum, n),
			}
		}

		sectorNum = NextSector(sector)
	}

	return nil
}
