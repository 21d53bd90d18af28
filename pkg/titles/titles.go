// file: pkg/titles/titles.go

package titles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/dsoprea/go-logging"
)

const (
	DefaultFile = "GAMES.TXT" // Title list read from the working directory
	ImagePrefix = "GAMES"
	ImageSuffix = ".ATR"
	GameSuffix  = ".xex"

	// Characters that cannot appear in a host filename
	forbiddenChars = `:\/*?|<>`
)

var titlesLogger = log.NewLogger("titles")

// Disk describes one disk image and the titles expected on it. Titles are
// listed in directory order: the n-th title names the n-th executable.
type Disk struct {
	Number int
	Titles []string
}

// ImageName returns the filename of the disk image, e.g. GAMES007.ATR
func (d *Disk) ImageName() string {
	return fmt.Sprintf("%s%03d%s", ImagePrefix, d.Number, ImageSuffix)
}

// Dump writes the image name followed by one title per line
func (d *Disk) Dump(w io.Writer) {
	fmt.Fprintln(w, d.ImageName())
	for _, title := range d.Titles {
		fmt.Fprintln(w, title)
	}
}

// LoadFromFile reads a title list from a file
func LoadFromFile(filename string) ([]*Disk, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a tab-delimited title list. A line "N<TAB>title" starts disk
// N; a line "<TAB>title" adds a title to the current disk. Every other line
// is ignored.
func Parse(r io.Reader) ([]*Disk, error) {
	var disks []*Disk
	var current *Disk

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		tab := strings.IndexByte(line, '\t')
		if tab == -1 {
			continue
		}
		title := line[tab+1:]

		if tab == 0 {
			if current == nil {
				titlesLogger.Debugf(nil, "line %d: title %q before any disk, ignored", lineNum, title)
				continue
			}
			current.Titles = append(current.Titles, title)
			continue
		}

		number, err := strconv.Atoi(strings.TrimSpace(line[:tab]))
		if err != nil {
			titlesLogger.Debugf(nil, "line %d: bad disk number %q, ignored", lineNum, line[:tab])
			continue
		}

		current = &Disk{Number: number, Titles: []string{title}}
		disks = append(disks, current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read title list: %w", err)
	}

	return disks, nil
}

// Sanitize replaces characters that are not allowed in host filenames with
// '_'. The result has the same number of characters as the input.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenChars, r) {
			return '_'
		}
		return r
	}, name)
}

// OutputName returns the host filename for a title
func OutputName(title string) string {
	return Sanitize(title + GameSuffix)
}
