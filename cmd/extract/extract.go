// file: cmd/extract/extract.go

package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/dsoprea/go-logging"

	"github.com/ha1tch/homesoft/cmd/list"
	"github.com/ha1tch/homesoft/pkg/diskimg"
	"github.com/ha1tch/homesoft/pkg/titles"
)

var extractLogger = log.NewLogger("extract")

// ExtractOptions configures the batch extraction
type ExtractOptions struct {
	ImageDir      string // Directory the disk images are read from
	OutputDir     string // Directory title-named files are written to
	DiagnosticDir string // Root directory for files of mismatched disks
	Overwrite     bool   // Allow overwriting existing files
	Quiet         bool   // Suppress status lines and directory listings
}

// DefaultExtractOptions returns default options for Extract
func DefaultExtractOptions() *ExtractOptions {
	return &ExtractOptions{
		ImageDir:      "",
		OutputDir:     "",
		DiagnosticDir: "NOT OK",
		Overwrite:     true,
		Quiet:         false,
	}
}

// Skip explains why a disk produced no output
type Skip int

const (
	NotSkipped   Skip = iota
	ImageMissing      // No image file for the disk
	ImageSize         // Image file is not a double-density image
)

// Result describes what happened to one disk
type Result struct {
	Image   string
	Skip    Skip
	Counts  diskimg.Counts
	Verdict diskimg.Verdict
	Files   []string // Paths written, in extraction order
}

// Extractor runs the extraction for a list of disks
type Extractor struct {
	opts   *ExtractOptions
	stdout io.Writer
	stderr io.Writer
}

// New creates an Extractor writing status lines to the process streams
func New(opts *ExtractOptions) *Extractor {
	if opts == nil {
		opts = DefaultExtractOptions()
	}
	return &Extractor{
		opts:   opts,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetOutput redirects status lines
func (x *Extractor) SetOutput(stdout, stderr io.Writer) {
	x.stdout = stdout
	x.stderr = stderr
}

// Run processes the disks one after another in list order. Missing and
// odd-sized images are skipped; any other failure stops the batch.
func (x *Extractor) Run(ctx context.Context, disks []*titles.Disk) ([]*Result, error) {
	results := make([]*Result, 0, len(disks))

	for _, d := range disks {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := x.ExtractDisk(d)
		if err != nil {
			return results, fmt.Errorf("%s: %w", d.ImageName(), err)
		}
		results = append(results, res)
	}

	return results, nil
}

// ExtractDisk extracts the programs of one disk.
//
// When the directory, its executables and the title list all agree in count,
// the n-th title names the n-th executable in directory order. Titles are
// never matched against on-disk names. Otherwise every file before the first
// directory gap is written under the diagnostic directory with its on-disk
// name.
func (x *Extractor) ExtractDisk(d *titles.Disk) (*Result, error) {
	res := &Result{Image: d.ImageName()}
	imagePath := filepath.Join(x.opts.ImageDir, res.Image)

	disk, err := diskimg.LoadFromFile(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			extractLogger.Debugf(nil, "%s not found, skipped", imagePath)
			res.Skip = ImageMissing
			return res, nil
		}
		if errors.Is(err, diskimg.ErrInvalidImageSize) {
			res.Skip = ImageSize
			return res, nil
		}
		return nil, err
	}

	dir, err := disk.GetDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	res.Counts = dir.CountDisk(len(d.Titles))
	res.Verdict = res.Counts.Classify()

	if res.Verdict == diskimg.WellFormed {
		x.status(x.stdout, "%s %s\n", res.Image, res.Verdict)
		res.Files, err = x.extractTitled(dir, d.Titles)
		return res, err
	}

	extractLogger.Infof(nil, "%s: %v", res.Image, res.Counts.Validate())
	for _, problem := range dir.DiskCheck() {
		extractLogger.Warningf(nil, "%s: %v", res.Image, problem)
	}
	x.status(x.stderr, "%s %s\n", res.Image, res.Verdict)
	if !x.opts.Quiet {
		listOpts := list.DefaultListOptions()
		listOpts.DiskPath = res.Image
		if err := list.List(x.stdout, dir, listOpts); err != nil {
			return nil, err
		}
	}

	res.Files, err = x.extractDiagnostic(dir, res.Image, res.Counts.Files)
	return res, err
}

// extractTitled writes one executable per title, named after the title
func (x *Extractor) extractTitled(dir *diskimg.Directory, names []string) ([]string, error) {
	if x.opts.OutputDir != "" {
		if err := os.MkdirAll(x.opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	cursor := dir.NewCursor()
	written := make([]string, 0, len(names))

	for _, title := range names {
		f, err := cursor.Next(true)
		if errors.Is(err, diskimg.ErrNoMoreFiles) {
			return written, fmt.Errorf("no executable left for title %q: %w", title, err)
		}
		if err != nil {
			return written, err
		}

		outPath := filepath.Join(x.opts.OutputDir, titles.OutputName(title))
		if err := x.writeFile(outPath, f.Data); err != nil {
			return written, err
		}
		extractLogger.Infof(nil, "extracted %s (%d bytes) to %s", f.Name, len(f.Data), outPath)
		written = append(written, outPath)
	}

	return written, nil
}

// extractDiagnostic writes the first count files with their on-disk names
func (x *Extractor) extractDiagnostic(dir *diskimg.Directory, image string, count int) ([]string, error) {
	outDir := filepath.Join(x.opts.DiagnosticDir, image)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create diagnostic directory: %w", err)
	}

	cursor := dir.NewCursor()
	written := make([]string, 0, count)

	for i := 0; i < count; i++ {
		f, err := cursor.Next(false)
		if err != nil {
			return written, err
		}

		outPath := filepath.Join(outDir, hostName(f))
		if err := x.writeFile(outPath, f.Data); err != nil {
			return written, err
		}
		extractLogger.Infof(nil, "extracted %s (%d bytes) to %s", f.Name, len(f.Data), outPath)
		written = append(written, outPath)
	}

	return written, nil
}

// hostName returns the on-disk name unless it cannot be used as a single
// path element on the host.
func hostName(f *diskimg.File) string {
	name := f.Name
	switch {
	case name == "" || name == "." || name == "..":
		return fmt.Sprintf("SLOT%02d", f.Slot)
	case filepath.Base(name) != name:
		return titles.Sanitize(name)
	}
	return name
}

func (x *Extractor) writeFile(path string, data []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !x.opts.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	out, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("output file already exists: %s (use overwrite to replace)", path)
		}
		return err
	}

	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return out.Close()
}

func (x *Extractor) status(w io.Writer, format string, args ...interface{}) {
	if !x.opts.Quiet {
		fmt.Fprintf(w, format, args...)
	}
}
