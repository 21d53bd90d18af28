// file: cmd/list/list.go

package list

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ha1tch/homesoft/pkg/diskimg"
)

// FileEntry represents a slot in the directory listing
type FileEntry struct {
	Slot       int    `json:"slot"`
	Name       string `json:"name"`
	HostName   string `json:"host_name"`
	Sectors    int    `json:"sectors"`
	Start      int    `json:"start_sector"`
	Flags      byte   `json:"flags"`
	InUse      bool   `json:"in_use"`
	Executable bool   `json:"executable"`
}

// ListOptions configures the directory listing
type ListOptions struct {
	DiskPath string // Shown in the listing header
	JSON     bool   // Output in JSON format
	ShowFree bool   // Include slots without the in-use flag that still carry a name
	Quiet    bool   // Suppress the "File Not Found" banner
}

// DefaultListOptions returns default options for List
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		JSON:     false,
		ShowFree: true,
		Quiet:    false,
	}
}

// List writes the directory of an already loaded disk to w
func List(w io.Writer, dir *diskimg.Directory, opts *ListOptions) error {
	if opts == nil {
		opts = DefaultListOptions()
	}

	files := Collect(dir, opts.ShowFree)

	if opts.JSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(files)
	}

	return outputDOS(w, files, dir, opts)
}

// Collect gathers the slots worth showing, in slot order
func Collect(dir *diskimg.Directory, showFree bool) []FileEntry {
	var files []FileEntry
	for i := range dir.Entries {
		entry := &dir.Entries[i]
		if !entry.InUse() && (!showFree || entry.Name[0] == 0) {
			continue
		}
		files = append(files, FileEntry{
			Slot:       i,
			Name:       onDiskName(entry),
			HostName:   entry.GetFilename(),
			Sectors:    int(entry.SectorCount),
			Start:      int(entry.StartSector),
			Flags:      entry.Flags,
			InUse:      entry.InUse(),
			Executable: entry.IsExecutable(),
		})
	}
	return files
}

func onDiskName(entry *diskimg.DirectoryEntry) string {
	if !entry.HasExtension() {
		return entry.BaseName()
	}
	return entry.BaseName() + "." + entry.Ext()
}

func outputDOS(w io.Writer, files []FileEntry, dir *diskimg.Directory, opts *ListOptions) error {
	fmt.Fprintf(w, "\n Directory of %s\n\n", opts.DiskPath)

	if len(files) == 0 {
		if !opts.Quiet {
			fmt.Fprintln(w, "File Not Found")
		}
		return nil
	}

	var totalSectors int
	for _, file := range files {
		mark := " "
		switch {
		case !file.InUse:
			mark = "-"
		case file.Executable:
			mark = "*"
		}
		fmt.Fprintf(w, "%2d %s %-12s %02X  %4d sectors  @%-4d %s\n",
			file.Slot, mark, file.Name, file.Flags, file.Sectors, file.Start, file.HostName)
		if file.InUse {
			totalSectors += file.Sectors
		}
	}

	fmt.Fprintf(w, "\n    %d file(s) before first gap, %d executable(s)\n",
		dir.CountFiles(), dir.CountExecutables())
	fmt.Fprintf(w, "    %s bytes in %d sectors\n",
		formatWithCommas(totalSectors*diskimg.SectorSize), totalSectors)

	return nil
}

func formatWithCommas(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return sign + str
	}

	var result []byte
	for i := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, str[i])
	}

	return sign + string(result)
}
