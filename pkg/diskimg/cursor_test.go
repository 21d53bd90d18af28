// file: pkg/diskimg/cursor_test.go

package diskimg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ha1tch/homesoft/internal/atrtest"
)

func TestCursorNext(t *testing.T) {
	im := atrtest.New()
	games := atrtest.Pattern(600, 1)
	notes := []byte("HIGH SCORES")
	tool := atrtest.Pattern(253, 9)

	im.AddFile(0, "GAME", "COM", 10, games)
	im.AddFile(1, "NOTES", "DAT", 20, notes)
	im.AddFile(3, "TOOL", "COM", 30, tool) // after a free slot

	dir := loadDirectory(t, im)

	t.Run("all files", func(t *testing.T) {
		c := dir.NewCursor()
		want := []struct {
			name string
			slot int
			data []byte
		}{
			{"GAME.XEX", 0, games},
			{"NOTES.DAT", 1, notes},
			{"TOOL.XEX", 3, tool},
		}
		for _, w := range want {
			f, err := c.Next(false)
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			if f.Name != w.name || f.Slot != w.slot {
				t.Errorf("got %s (slot %d), want %s (slot %d)", f.Name, f.Slot, w.name, w.slot)
			}
			if !bytes.Equal(f.Data, w.data) {
				t.Errorf("%s: data mismatch (%d bytes, want %d)", f.Name, len(f.Data), len(w.data))
			}
		}
		if _, err := c.Next(false); !errors.Is(err, ErrNoMoreFiles) {
			t.Errorf("expected ErrNoMoreFiles, got %v", err)
		}
		if c.Index() != MaxDirectoryEntries {
			t.Errorf("exhausted cursor at slot %d", c.Index())
		}
	})

	t.Run("executables only", func(t *testing.T) {
		c := dir.NewCursor()
		var names []string
		for {
			f, err := c.Next(true)
			if errors.Is(err, ErrNoMoreFiles) {
				break
			}
			if err != nil {
				t.Fatalf("Next failed: %v", err)
			}
			names = append(names, f.Name)
		}
		if len(names) != 2 || names[0] != "GAME.XEX" || names[1] != "TOOL.XEX" {
			t.Errorf("got %v", names)
		}
	})

	t.Run("independent cursors", func(t *testing.T) {
		a := dir.NewCursor()
		b := dir.NewCursor()
		a.Next(false)
		a.Next(false)
		f, err := b.Next(false)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if f.Slot != 0 {
			t.Errorf("second cursor started at slot %d", f.Slot)
		}
		if a.Index() != 2 {
			t.Errorf("first cursor at slot %d, want 2", a.Index())
		}
	})

	t.Run("reset", func(t *testing.T) {
		c := dir.NewCursor()
		c.Next(true)
		c.Next(true)
		c.Reset()
		f, err := c.Next(true)
		if err != nil || f.Name != "GAME.XEX" {
			t.Errorf("after Reset got %v, %v", f, err)
		}
	})
}

func TestCursorEmptyDirectory(t *testing.T) {
	c := loadDirectory(t, atrtest.New()).NewCursor()
	for _, only := range []bool{false, true} {
		if _, err := c.Next(only); !errors.Is(err, ErrNoMoreFiles) {
			t.Errorf("Next(%v): expected ErrNoMoreFiles, got %v", only, err)
		}
	}
}

func TestCursorBrokenChain(t *testing.T) {
	im := atrtest.New()
	im.SetEntry(0, atrtest.FlagInUse, 2, 900, "BROKEN", "COM")
	c := loadDirectory(t, im).NewCursor()

	_, err := c.Next(true)
	if !errors.Is(err, ErrSectorOutOfRange) {
		t.Fatalf("expected ErrSectorOutOfRange, got %v", err)
	}
	if c.Index() != 1 {
		t.Errorf("cursor should move past the broken slot, at %d", c.Index())
	}
}
