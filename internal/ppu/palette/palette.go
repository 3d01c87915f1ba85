// Package palette provides the colour palettes used by the PPU:
// the 4 shade palettes of the DMG, the RGB555 palette memory of
// the CGB and the colourisation table the CGB boot ROM applies to
// DMG games.
package palette

import "strings"

// RGB is a 24-bit colour.
type RGB = [3]uint8

// Palette holds the 4 colours a 2-bit colour index resolves to.
type Palette [4]RGB

const (
	// Greyscale is the default greyscale palette.
	Greyscale = iota
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green
	// Red is a red palette.
	Red
	// Yellow is a yellow palette.
	Yellow
)

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	// Greyscale
	{
		{0xFF, 0xFF, 0xFF},
		{0xCC, 0xCC, 0xCC},
		{0x77, 0x77, 0x77},
		{0x00, 0x00, 0x00},
	},
	// Green
	{
		{0x9B, 0xBC, 0x0F},
		{0x8B, 0xAC, 0x0F},
		{0x30, 0x62, 0x30},
		{0x0F, 0x38, 0x0F},
	},
	// Red
	{
		{0xFF, 0x00, 0x00},
		{0xCC, 0x00, 0x00},
		{0x77, 0x00, 0x00},
		{0x00, 0x00, 0x00},
	},
	// Yellow
	{
		{0xFF, 0xFF, 0x00},
		{0xCC, 0xCC, 0x00},
		{0x77, 0x77, 0x00},
		{0x00, 0x00, 0x00},
	},
}

var names = map[string]int{
	"greyscale": Greyscale,
	"grayscale": Greyscale,
	"green":     Green,
	"red":       Red,
	"yellow":    Yellow,
}

// ByName returns the palette with the given name, and false
// if there is no such palette.
func ByName(name string) (Palette, bool) {
	i, ok := names[strings.ToLower(name)]
	if !ok {
		return Palette{}, false
	}
	return Palettes[i], true
}

// ByteToPalette maps a DMG palette register (BGP, OBP0, OBP1)
// onto the colours of base.
//
//	Bit 7-6 - Colour for index 3
//	Bit 5-4 - Colour for index 2
//	Bit 3-2 - Colour for index 1
//	Bit 1-0 - Colour for index 0
func ByteToPalette(base Palette, b byte) Palette {
	var p Palette
	p[0] = base[b&0x03]
	p[1] = base[(b>>2)&0x03]
	p[2] = base[(b>>4)&0x03]
	p[3] = base[(b>>6)&0x03]
	return p
}

// GetColour returns the colour for the given colour index.
func (p Palette) GetColour(index uint8) RGB {
	return p[index&0x03]
}
