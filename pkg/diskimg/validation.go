// file: pkg/diskimg/validation.go

package diskimg

import (
	"fmt"
)

// ValidationError represents a disagreement found while checking a disk
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error - %s: %s", e.Field, e.Message)
}

// Verdict says how the files of a disk can be named on extraction
type Verdict int

const (
	Mismatched Verdict = iota // Extract with on-disk names for manual review
	WellFormed                // Extract with titles from the title list
)

func (v Verdict) String() string {
	if v == WellFormed {
		return "OK"
	}
	return "NOT OK"
}

// Counts holds the three numbers the naming decision is based on
type Counts struct {
	Files       int // In-use slots before the first gap
	Executables int // "COM" slots over the whole table
	Titles      int // Titles listed for the disk
}

// CountDisk reads the directory counts of a disk
func (dir *Directory) CountDisk(titles int) Counts {
	return Counts{
		Files:       dir.CountFiles(),
		Executables: dir.CountExecutables(),
		Titles:      titles,
	}
}

// Validate checks that the directory and the title list agree. Only when all
// three counts are equal can titles be paired with files by position.
func (c Counts) Validate() error {
	if c.Files != c.Executables {
		return &ValidationError{
			Field:   "Directory.Executables",
			Message: fmt.Sprintf("%d files listed but %d executables", c.Files, c.Executables),
		}
	}

	if c.Files != c.Titles {
		return &ValidationError{
			Field:   "Titles",
			Message: fmt.Sprintf("%d files listed but %d titles", c.Files, c.Titles),
		}
	}

	return nil
}

// Classify turns the counts into a naming verdict
func (c Counts) Classify() Verdict {
	if c.Validate() != nil {
		return Mismatched
	}
	return WellFormed
}
