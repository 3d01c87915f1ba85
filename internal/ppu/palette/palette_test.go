package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteToPalette(t *testing.T) {
	p := ByteToPalette(Palettes[Greyscale], 0b11_10_01_00)
	assert.Equal(t, Palettes[Greyscale], p)

	p = ByteToPalette(Palettes[Greyscale], 0b00_01_10_11)
	assert.Equal(t, Palettes[Greyscale][3], p.GetColour(0))
	assert.Equal(t, Palettes[Greyscale][0], p.GetColour(3))
}

func TestByName(t *testing.T) {
	p, ok := ByName("Green")
	assert.True(t, ok)
	assert.Equal(t, Palettes[Green], p)

	_, ok = ByName("ultraviolet")
	assert.False(t, ok)
}

func TestCGBPalette(t *testing.T) {
	p := NewCGBPalette()
	assert.Equal(t, RGB{0xFF, 0xFF, 0xFF}, p.GetColour(7, 3))

	t.Run("auto increment", func(t *testing.T) {
		p.SetIndex(0x80 | 0x02) // palette 0, colour 1, low byte
		assert.Equal(t, uint8(0xC2), p.GetIndex())

		// pure red, 0x001F
		p.Write(0x1F)
		p.Write(0x00)
		assert.Equal(t, uint8(0x04), p.Index)
		assert.Equal(t, RGB{0xFF, 0x00, 0x00}, p.GetColour(0, 1))
	})

	t.Run("5 to 8 bit conversion", func(t *testing.T) {
		p.SetIndex(0x08) // palette 1, colour 0, no increment
		p.Write(0x10)    // red = 0x10
		assert.Equal(t, uint8(0x08), p.Index)
		assert.Equal(t, uint8(0x10<<3|0x10>>2), p.GetColour(1, 0)[0])
		assert.Equal(t, uint8(0x10), p.Read())
	})

	t.Run("index wraps", func(t *testing.T) {
		p.SetIndex(0x80 | 0x3F)
		p.Write(0x00)
		assert.Equal(t, uint8(0x00), p.Index)
	})
}

func TestColourise(t *testing.T) {
	tetris := Colourise(0xDB, 'T', true)
	assert.Equal(t, CompatibilityPalettes[0x07][0x00], tetris)

	assert.Equal(t, DefaultCompatibilityPalette, Colourise(0xDB, 'T', false), "non-Nintendo games are never looked up")
	assert.Equal(t, DefaultCompatibilityPalette, Colourise(0xFE, 0, true))

	_, ok := GetCompatibilityPaletteEntry(0x6A, 'A')
	assert.False(t, ok, "disambiguation letter should be checked")
	_, ok = GetCompatibilityPaletteEntry(0x6A, 'I')
	assert.True(t, ok)
}
