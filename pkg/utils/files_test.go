package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var payload = []byte("not really a rom, but close enough")

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0644))
		return path
	}

	t.Run("plain", func(t *testing.T) {
		data, err := LoadFile(write("game.gb", payload))
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("gzip", func(t *testing.T) {
		var b bytes.Buffer
		w := gzip.NewWriter(&b)
		_, _ = w.Write(payload)
		require.NoError(t, w.Close())

		data, err := LoadFile(write("game.gb.gz", b.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("xz", func(t *testing.T) {
		var b bytes.Buffer
		w, err := xz.NewWriter(&b)
		require.NoError(t, err)
		_, _ = w.Write(payload)
		require.NoError(t, w.Close())

		data, err := LoadFile(write("game.gb.xz", b.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("zip", func(t *testing.T) {
		var b bytes.Buffer
		w := zip.NewWriter(&b)
		readme, _ := w.Create("README.txt")
		_, _ = readme.Write([]byte("readme"))
		rom, _ := w.Create("game.GBC")
		_, _ = rom.Write(payload)
		require.NoError(t, w.Close())

		data, err := LoadFile(write("game.zip", b.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, payload, data, "the rom should be preferred over the readme")
	})

	t.Run("empty zip", func(t *testing.T) {
		var b bytes.Buffer
		require.NoError(t, zip.NewWriter(&b).Close())

		_, err := LoadFile(write("empty.zip", b.Bytes()))
		assert.ErrorIs(t, err, ErrEmptyArchive)
	})

	t.Run("corrupt", func(t *testing.T) {
		_, err := LoadFile(write("broken.7z", payload))
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.gb"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.25, Clamp(0.25, 0.1, 8))
	assert.Equal(t, 8.0, Clamp(0.25, 10, 8))
	assert.Equal(t, 3, Clamp(1, 3, 5))
}

func TestBits(t *testing.T) {
	assert.Equal(t, uint8(0b1000_0001), SetBit(0b1, 7))
	assert.Equal(t, uint8(0b1), ClearBit(0b1000_0001, 7))
	assert.True(t, TestBit(0b100, 2))
	assert.Equal(t, uint8(1), GetBit(0b100, 2))
	assert.Equal(t, uint8(0), GetBit(0b100, 1))
}
