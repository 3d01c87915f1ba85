package ppu

// Sprite is a single entry in OAM, decoded.
type Sprite struct {
	X      int // screen position, OAM X - 8
	Y      int // screen position, OAM Y - 16
	TileID uint8
	spriteAttributes

	index uint8 // position in OAM
}

// spriteAttributes represents the attributes of a sprite.
type spriteAttributes struct {
	// Bit 7 - OBJ-to-BG priority (0=OBJ Above BG, 1=OBJ Behind BG color 1-3)
	// (Used for both BG and Window. BG color 0 is always behind OBJ)
	behind bool
	// Bit 6 - Y flip          (0=Normal, 1=Vertically mirrored)
	flipY bool
	// Bit 5 - X flip          (0=Normal, 1=Horizontally mirrored)
	flipX bool
	// Bit 4 - Palette number  **Non CGB mode Only** (0=OBP0, 1=OBP1)
	useSecondPalette uint8
	// Bit 3 - Tile VRAM-Bank  **CGB mode Only**     (0=Bank 0, 1=Bank 1)
	vRAMBank uint8
	// Bit 0-2 - Palette number  **CGB mode Only**     (OBP0-7)
	cgbPalette uint8
}

// newSprite decodes the 4 bytes of OAM entry index.
func newSprite(index uint8, entry []uint8) Sprite {
	value := entry[3]
	return Sprite{
		Y:      int(entry[0]) - 16,
		X:      int(entry[1]) - 8,
		TileID: entry[2],
		spriteAttributes: spriteAttributes{
			behind:           value&0x80 != 0,
			flipY:            value&0x40 != 0,
			flipX:            value&0x20 != 0,
			useSecondPalette: value & 0x10 >> 4,
			vRAMBank:         (value >> 3) & 0x01,
			cgbPalette:       value & 0x07,
		},
		index: index,
	}
}
