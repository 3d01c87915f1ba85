package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
	"golang.org/x/image/bmp"
)

func writeTestROM(t *testing.T, cartType uint8, program ...uint8) string {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], program)
	copy(rom[0x134:], "GBCORETEST")
	rom[0x147] = cartType
	if cartType == 0x03 || cartType == 0x10 {
		rom[0x149] = 0x02
	}

	path := filepath.Join(t.TempDir(), "test.gb")
	require.NoError(t, os.WriteFile(path, rom, 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	rom := writeTestROM(t, 0x00, 0x18, 0xFE) // JR -2

	err := run(log.NewNullLogger(), options{
		rom:        rom,
		model:      "dmg",
		frames:     2,
		scale:      2,
		screenshot: filepath.Join(dir, "frame.bmp"),
		saves:      filepath.Join(dir, "saves"),
		palette:    "greyscale",
	})
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "frame.bmp"))
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 288, img.Bounds().Dy())

	// no battery, no save folder
	_, err = os.Stat(filepath.Join(dir, "saves"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Errors(t *testing.T) {
	rom := writeTestROM(t, 0x00, 0x18, 0xFE)

	tests := []struct {
		name string
		o    options
	}{
		{"no rom", options{}},
		{"missing rom", options{rom: filepath.Join(t.TempDir(), "missing.gb"), model: "auto"}},
		{"unknown model", options{rom: rom, model: "gba"}},
		{"unknown palette", options{rom: rom, model: "auto", palette: "purple"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(log.NewNullLogger(), tt.o))
		})
	}
}

func TestRun_BatterySave(t *testing.T) {
	saves := filepath.Join(t.TempDir(), "saves")
	rom := writeTestROM(t, 0x03,
		0x3E, 0x0A, // LD A, 0x0A
		0xEA, 0x00, 0x00, // LD (0x0000), A
		0x3E, 0x42, // LD A, 0x42
		0xEA, 0x00, 0xA0, // LD (0xA000), A
		0x18, 0xFE, // JR -2
	)

	o := options{rom: rom, model: "auto", frames: 1, saves: saves}
	require.NoError(t, run(log.NewNullLogger(), o))

	b, err := os.ReadFile(filepath.Join(saves, "GBCORETEST.sav"))
	require.NoError(t, err)
	assert.Len(t, b, 0x2000)
	assert.Equal(t, uint8(0x42), b[0])

	// a second run starts from the saved RAM
	require.NoError(t, run(log.NewNullLogger(), o))
	b, err = os.ReadFile(filepath.Join(saves, "GBCORETEST.sav"))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), b[0])
}

func TestRun_ClockSave(t *testing.T) {
	saves := filepath.Join(t.TempDir(), "saves")
	rom := writeTestROM(t, 0x10, 0x18, 0xFE) // MBC3+TIMER+RAM+BATTERY, JR -2
	path := filepath.Join(saves, "GBCORETEST.sav")

	tests := []struct {
		name   string
		footer int
	}{
		{"32 bit timestamp", 44},
		{"64 bit timestamp", 48},
		{"no clock", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			save := bytes.Repeat([]byte{0xAB}, 0x2000)
			footer := make([]byte, tt.footer)
			if tt.footer > 0 {
				binary.LittleEndian.PutUint32(footer, 5) // seconds
			}
			require.NoError(t, os.MkdirAll(saves, 0o755))
			require.NoError(t, os.WriteFile(path, append(save, footer...), 0o644))

			o := options{rom: rom, model: "auto", frames: 1, saves: saves}
			require.NoError(t, run(log.NewNullLogger(), o))

			b, err := os.ReadFile(path)
			require.NoError(t, err)
			require.Len(t, b, 0x2000+48)
			assert.Equal(t, save, b[:0x2000], "RAM kept")
			if tt.footer > 0 {
				assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(b[0x2000:]), "clock kept")
			}
		})
	}
}

func TestRun_MismatchedSave(t *testing.T) {
	saves := filepath.Join(t.TempDir(), "saves")
	rom := writeTestROM(t, 0x03, 0x18, 0xFE)
	path := filepath.Join(saves, "GBCORETEST.sav")
	require.NoError(t, os.MkdirAll(saves, 0o755))
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	// the save doesn't fit the cartridge, so it's replaced
	require.NoError(t, run(log.NewNullLogger(), options{rom: rom, model: "auto", frames: 1, saves: saves}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, b, 0x2000)
}

func TestEncodeScreenshot(t *testing.T) {
	frame := &gameboy.Frame{}
	frame[0][0] = [3]uint8{0xFF, 0x00, 0x00}

	var buf bytes.Buffer
	require.NoError(t, encodeScreenshot(&buf, frame, 3))

	img, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 480, img.Bounds().Dx())

	for _, p := range [][2]int{{0, 0}, {2, 2}} {
		r, g, b, _ := img.At(p[0], p[1]).RGBA()
		assert.Equal(t, []uint32{0xFFFF, 0, 0}, []uint32{r, g, b})
	}
	r, _, _, _ := img.At(3, 3).RGBA()
	assert.Zero(t, r)
}

func TestPlotFrameTimes(t *testing.T) {
	times := []time.Duration{time.Millisecond, 2 * time.Millisecond, 16 * time.Millisecond}

	p, err := frameTimePlot(times)
	require.NoError(t, err)
	assert.Equal(t, "Frame Time", p.Title.Text)

	path := filepath.Join(t.TempDir(), "frames.png")
	require.NoError(t, plotFrameTimes(path, times))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
