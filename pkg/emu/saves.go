// Package emu persists the battery backed RAM of cartridges
// between runs.
package emu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

const (
	// DefaultSaveFolder is the folder saves are kept in when
	// none is given.
	DefaultSaveFolder = "saves"
)

// ErrCorruptSave is returned alongside an empty save when the save
// file couldn't be read.
var ErrCorruptSave = errors.New("emu: corrupt save file")

// save file naming convention:
// <save folder>/<cartridge title>.sav

// Save represents a save file.
type Save struct {
	b     []byte // the save file data
	dirty bool   // written since the last flush
	Path  string // the path to the save file
}

// SavePath returns the path of the save file for the given
// cartridge title.
func SavePath(folder, title string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, strings.TrimSpace(title))
	if name == "" {
		name = "untitled"
	}
	return filepath.Join(folder, name+".sav")
}

// LoadSave loads the save file at path. The returned Save is always
// usable: a missing file gives an empty save, and so does an
// unreadable one, along with an error wrapping ErrCorruptSave. The
// data is returned as stored, it is up to the cartridge to decide
// whether it fits.
func LoadSave(path string) (*Save, error) {
	s := &Save{Path: path}

	b, err := utils.LoadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return s, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}

	s.b = b
	return s, nil
}

// Empty reports whether the save holds no data.
func (s *Save) Empty() bool {
	return len(s.b) == 0
}

// Reset discards the loaded data. The save file itself is only
// replaced by the next Flush after SetBytes.
func (s *Save) Reset() {
	s.b = nil
}

// Bytes returns the save file data.
func (s *Save) Bytes() []byte {
	return s.b
}

// SetBytes sets the save file data, to be written by the next Flush.
func (s *Save) SetBytes(b []byte) {
	s.b = append(s.b[:0], b...)
	s.dirty = true
}

// Dirty reports whether the data has changed since the last Flush.
func (s *Save) Dirty() bool {
	return s.dirty
}

// Flush writes the save file. The data is written to a temporary
// file in the same folder which then replaces the save file, so a
// crash part way through never corrupts an existing save.
func (s *Save) Flush() error {
	if !s.dirty {
		return nil
	}

	folder := filepath.Dir(s.Path)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(folder, filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}

	var result *multierror.Error
	if _, err := f.Write(s.b); err != nil {
		result = multierror.Append(result, err)
	}
	if err := f.Sync(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := f.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		_ = os.Remove(f.Name())
		return fmt.Errorf("failed to write save file %s: %w", s.Path, err)
	}

	if err := os.Rename(f.Name(), s.Path); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// FlushAll flushes every save, returning all the errors
// encountered.
func FlushAll(saves ...*Save) error {
	var result *multierror.Error
	for _, s := range saves {
		if err := s.Flush(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
