package ppu

// TileAttributes are stored in VRAM bank 1 alongside each
// entry of the tile maps, in CGB mode only.
type TileAttributes struct {
	// UseBGPriority is the BG Priority bit. When set, the tile is
	// drawn over sprites, unless its colour index is 0.
	UseBGPriority bool
	// YFlip is the Y Flip bit. When set, the tile is flipped vertically.
	YFlip bool
	// XFlip is the X Flip bit. When set, the tile is flipped horizontally.
	XFlip bool
	// PaletteNumber specifies the palette number (0-7) that is used
	// to determine the tile's colors.
	PaletteNumber uint8
	// VRAMBank specifies the VRAM bank (0-1) holding the tile's data.
	VRAMBank uint8
}

func decodeTileAttributes(value uint8) TileAttributes {
	return TileAttributes{
		UseBGPriority: value&0x80 != 0,
		YFlip:         value&0x40 != 0,
		XFlip:         value&0x20 != 0,
		PaletteNumber: value & 0b111,
		VRAMBank:      value & 0x8 >> 3,
	}
}

// tilePixel returns the 2-bit colour index of pixel x (0 being
// the leftmost) from the two bitplanes of a tile row.
func tilePixel(lo, hi uint8, x uint8) uint8 {
	bit := 7 - x
	return (lo>>bit)&1 | ((hi>>bit)&1)<<1
}
