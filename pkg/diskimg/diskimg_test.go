// file: pkg/diskimg/diskimg_test.go

package diskimg

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ha1tch/homesoft/internal/atrtest"
)

func TestNewRejectsWrongSize(t *testing.T) {
	for _, size := range []int{0, ImageSize - 1, ImageSize + 1, 92176} {
		_, err := New(make([]byte, size))
		if !errors.Is(err, ErrInvalidImageSize) {
			t.Errorf("size %d: expected ErrInvalidImageSize, got %v", size, err)
		}
	}

	if _, err := New(make([]byte, ImageSize)); err != nil {
		t.Fatalf("exact size rejected: %v", err)
	}
}

func TestSector(t *testing.T) {
	im := atrtest.New()
	payload := []byte("SECTOR FOUR")
	im.WriteSector(4, payload, 5)
	im.WriteSector(TotalSectors, []byte("LAST"), 0)

	disk, err := New(im.Data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t.Run("first data sector", func(t *testing.T) {
		sector, err := disk.Sector(4)
		if err != nil {
			t.Fatalf("Sector(4) failed: %v", err)
		}
		if len(sector) != SectorSize {
			t.Fatalf("expected %d bytes, got %d", SectorSize, len(sector))
		}
		if !bytes.HasPrefix(sector, payload) {
			t.Errorf("unexpected sector contents % x", sector[:16])
		}
		// Offset (4-1)*256 - 368 = 400
		if !bytes.Equal(sector, im.Data[400:400+SectorSize]) {
			t.Error("sector 4 not read from offset 400")
		}
	})

	t.Run("last sector", func(t *testing.T) {
		sector, err := disk.Sector(TotalSectors)
		if err != nil {
			t.Fatalf("Sector(%d) failed: %v", TotalSectors, err)
		}
		if !bytes.HasPrefix(sector, []byte("LAST")) {
			t.Error("last sector contents mismatch")
		}
	})

	t.Run("returns a copy", func(t *testing.T) {
		sector, _ := disk.Sector(4)
		sector[0] = 0xFF
		again, _ := disk.Sector(4)
		if again[0] != 'S' {
			t.Error("modifying a returned sector changed the image")
		}
	})

	t.Run("boot sectors", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1, 2, 3} {
			if _, err := disk.Sector(n); !errors.Is(err, ErrInvalidSector) {
				t.Errorf("Sector(%d): expected ErrInvalidSector, got %v", n, err)
			}
		}
	})

	t.Run("past end of image", func(t *testing.T) {
		for _, n := range []int{TotalSectors + 1, 1023} {
			if _, err := disk.Sector(n); !errors.Is(err, ErrSectorOutOfRange) {
				t.Errorf("Sector(%d): expected ErrSectorOutOfRange, got %v", n, err)
			}
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("valid image", func(t *testing.T) {
		path := filepath.Join(tmpDir, "valid.atr")
		if err := atrtest.New().Save(path); err != nil {
			t.Fatal(err)
		}
		disk, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile failed: %v", err)
		}
		if disk.Size() != ImageSize {
			t.Errorf("expected size %d, got %d", ImageSize, disk.Size())
		}
	})

	t.Run("short image", func(t *testing.T) {
		path := filepath.Join(tmpDir, "short.atr")
		os.WriteFile(path, make([]byte, ImageSize-1), 0644)
		if _, err := LoadFromFile(path); !errors.Is(err, ErrInvalidImageSize) {
			t.Errorf("expected ErrInvalidImageSize, got %v", err)
		}
	})

	t.Run("long image", func(t *testing.T) {
		path := filepath.Join(tmpDir, "long.atr")
		os.WriteFile(path, make([]byte, ImageSize*2), 0644)
		if _, err := LoadFromFile(path); !errors.Is(err, ErrInvalidImageSize) {
			t.Errorf("expected ErrInvalidImageSize, got %v", err)
		}
	})

	t.Run("missing image", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(tmpDir, "missing.atr"))
		if !os.IsNotExist(err) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}
