// file: pkg/diskimg/cursor.go

package diskimg

import (
	"fmt"
)

// File is a program extracted from the image
type File struct {
	Name  string         // Decoded host filename
	Slot  int            // Directory slot the file came from
	Entry DirectoryEntry // Raw directory entry
	Data  []byte         // Exact file contents
}

// Cursor walks the directory slots in order. Each cursor keeps its own
// position, so one Directory can serve any number of independent passes.
type Cursor struct {
	dir   *Directory
	index int
}

// Index returns the slot the next search starts from
func (c *Cursor) Index() int {
	return c.index
}

// Reset rewinds the cursor to the first slot
func (c *Cursor) Reset() {
	c.index = 0
}

// Next extracts the next in-use file. With onlyExecutable set, slots whose
// extension is not "COM" are skipped. Returns ErrNoMoreFiles once every slot
// has been visited.
func (c *Cursor) Next(onlyExecutable bool) (*File, error) {
	for c.index < MaxDirectoryEntries {
		slot := c.index
		entry := c.dir.Entries[slot]
		c.index++

		if !entry.InUse() {
			continue
		}
		if onlyExecutable && !entry.IsExecutable() {
			continue
		}

		return c.extract(slot, entry)
	}

	return nil, ErrNoMoreFiles
}

// extract decodes the name and reassembles the data of one entry
func (c *Cursor) extract(slot int, entry DirectoryEntry) (*File, error) {
	name := entry.GetFilename()

	data, err := c.dir.disk.FollowChain(int(entry.StartSector), int(entry.SectorCount))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q (slot %d): %w", name, slot, err)
	}

	return &File{
		Name:  name,
		Slot:  slot,
		Entry: entry,
		Data:  data,
	}, nil
}
