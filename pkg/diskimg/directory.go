// file: pkg/diskimg/directory.go

package diskimg

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"
)

const (
	// Directory layout for double-density DOS 2 images
	DirectoryEntrySize   = 16
	MaxDirectoryEntries  = 64
	DirectoryStartSector = 361
	EntriesPerSector     = 8 // Only the first 128 bytes of a directory sector hold entries
	DirectorySectors     = MaxDirectoryEntries / EntriesPerSector

	FlagInUse = 0x40

	// Executable files carry this extension on disk and are renamed to
	// ExecutableRename when extracted.
	ExecutableExtension = "COM"
	ExecutableRename    = "XEX"
)

// DirectoryEntry represents a single 16-byte directory slot
type DirectoryEntry struct {
	Flags       uint8   // Status flags (0x40 = in use)
	SectorCount uint16  // Number of sectors in the file chain
	StartSector uint16  // First sector of the file chain
	Name        [8]byte // File name (padded with spaces)
	Extension   [3]byte // File extension (padded with spaces)
}

// InUse returns true if the slot names a live file
func (de *DirectoryEntry) InUse() bool {
	return de.Flags&FlagInUse != 0
}

// IsExecutable returns true if the extension is exactly "COM"
func (de *DirectoryEntry) IsExecutable() bool {
	return string(de.Extension[:]) == ExecutableExtension
}

// HasExtension reports whether the first extension byte is not a space
func (de *DirectoryEntry) HasExtension() bool {
	return de.Extension[0] != ' '
}

// BaseName returns the name bytes up to the first space
func (de *DirectoryEntry) BaseName() string {
	return untilSpace(de.Name[:])
}

// Ext returns the extension bytes up to the first space
func (de *DirectoryEntry) Ext() string {
	return untilSpace(de.Extension[:])
}

// GetFilename returns the host filename for the entry. Executables always
// come out as .XEX so they are directly runnable.
func (de *DirectoryEntry) GetFilename() string {
	name := de.BaseName()
	if !de.HasExtension() {
		return name
	}
	if de.IsExecutable() {
		return name + "." + ExecutableRename
	}
	return name + "." + de.Ext()
}

// Directory represents the 64-slot directory table
type Directory struct {
	Entries [MaxDirectoryEntries]DirectoryEntry
	disk    *DiskImage
}

// readDirectory reads the directory from the disk image
func (di *DiskImage) readDirectory() (*Directory, error) {
	dir := &Directory{
		disk: di,
	}

	for s := 0; s < DirectorySectors; s++ {
		sectorNum := DirectoryStartSector + s
		sector, err := di.Sector(sectorNum)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory sector %d: %w", sectorNum, err)
		}

		for e := 0; e < EntriesPerSector; e++ {
			i := s*EntriesPerSector + e
			offset := e * DirectoryEntrySize
			raw := sector[offset : offset+DirectoryEntrySize]
			if err := restruct.Unpack(raw, binary.LittleEndian, &dir.Entries[i]); err != nil {
				return nil, fmt.Errorf("error parsing directory entry %d: %w", i, err)
			}
		}
	}

	return dir, nil
}

// Disk returns the image the directory was read from
func (dir *Directory) Disk() *DiskImage {
	return dir.disk
}

// CountFiles counts in-use slots from the start of the table up to the first
// slot without the in-use flag. Slots after that gap are not examined.
func (dir *Directory) CountFiles() int {
	count := 0
	for i := range dir.Entries {
		if !dir.Entries[i].InUse() {
			break
		}
		count++
	}
	return count
}

// CountExecutables counts every slot whose extension is "COM", scanning all
// 64 slots regardless of gaps or the in-use flag.
func (dir *Directory) CountExecutables() int {
	count := 0
	for i := range dir.Entries {
		if dir.Entries[i].IsExecutable() {
			count++
		}
	}
	return count
}

// NewCursor returns a cursor positioned at the first slot
func (dir *Directory) NewCursor() *Cursor {
	return &Cursor{dir: dir}
}

// Helper functions

// untilSpace returns b up to (not including) the first space
func untilSpace(b []byte) string {
	for i, c := range b {
		if c == ' ' {
			return string(b[:i])
		}
	}
	return string(b)
}
