package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/ulikunitz/xz"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("utils: archive is empty")

// romExtensions are the extensions preferred when picking a
// file out of an archive.
var romExtensions = []string{".gb", ".gbc", ".sgb"}

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z) yield their first ROM file, or their first
// file if none has a ROM extension.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filepath.Ext(filename), data)
}

// Decompress decompresses data according to the file extension
// ext. Unknown extensions are returned as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	var err error
	switch strings.ToLower(ext) {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		names := make([]string, len(r.File))
		for i, f := range r.File {
			names[i] = f.Name
		}
		i, ok := pickFile(names)
		if !ok {
			return nil, ErrEmptyArchive
		}
		var rc io.ReadCloser
		if rc, err = r.File[i].Open(); err != nil {
			break
		}
		defer rc.Close()
		decoder = rc
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			break
		}
		names := make([]string, len(r.File))
		for i, f := range r.File {
			names[i] = f.Name
		}
		i, ok := pickFile(names)
		if !ok {
			return nil, ErrEmptyArchive
		}
		var rc io.ReadCloser
		if rc, err = r.File[i].Open(); err != nil {
			break
		}
		defer rc.Close()
		decoder = rc
	default:
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("utils: opening %s archive: %w", ext, err)
	}

	return io.ReadAll(decoder)
}

// pickFile returns the index of the first ROM in names,
// falling back to the first file that isn't a directory.
func pickFile(names []string) (int, bool) {
	fallback := -1
	for i, name := range names {
		if strings.HasSuffix(name, "/") {
			continue
		}
		for _, ext := range romExtensions {
			if strings.EqualFold(filepath.Ext(name), ext) {
				return i, true
			}
		}
		if fallback < 0 {
			fallback = i
		}
	}
	return fallback, fallback >= 0
}
