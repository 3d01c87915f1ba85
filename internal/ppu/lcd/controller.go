// Package lcd decodes the LCD control (LCDC) and status (STAT)
// registers.
package lcd

import (
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit. When set, the LCD is enabled.
	Enabled bool
	// WindowTileMapAddress represents the Window Tile Map Display Select bit,
	// stored as the start address of the tile map.
	WindowTileMapAddress uint16
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileDataAddress represents the BG & Window Tile Data Select bit. When
	// set, the tile data is located at 0x8000-0x8FFF. Otherwise, it is located
	// at 0x8800-0x97FF (signed).
	TileDataAddress uint16
	// BackgroundTileMapAddress represents the BG Tile Map Display Select bit,
	// stored as the start address of the tile map.
	BackgroundTileMapAddress uint16
	// SpriteSize is the height of a sprite in pixels, 8 or 16.
	SpriteSize uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit. In
	// CGB mode it instead decides whether the background may be
	// drawn over sprites.
	BackgroundEnabled bool
}

// NewController returns a new LCD controller, in the state
// it is at power on (0x00).
func NewController() *Controller {
	c := &Controller{}
	c.Write(0x00)
	return c
}

// Write decodes value into the controller.
func (c *Controller) Write(value uint8) {
	c.Enabled = utils.TestBit(value, 7)
	c.WindowTileMapAddress = 0x9800
	if utils.TestBit(value, 6) {
		c.WindowTileMapAddress = 0x9C00
	}
	c.WindowEnabled = utils.TestBit(value, 5)
	c.TileDataAddress = 0x8800
	if utils.TestBit(value, 4) {
		c.TileDataAddress = 0x8000
	}
	c.BackgroundTileMapAddress = 0x9800
	if utils.TestBit(value, 3) {
		c.BackgroundTileMapAddress = 0x9C00
	}
	c.SpriteSize = 8 + utils.GetBit(value, 2)*8
	c.SpriteEnabled = utils.TestBit(value, 1)
	c.BackgroundEnabled = utils.TestBit(value, 0)
}

// Read encodes the controller back into its register value.
func (c *Controller) Read() uint8 {
	var value uint8
	if c.Enabled {
		value |= 1 << 7
	}
	if c.WindowTileMapAddress == 0x9C00 {
		value |= 1 << 6
	}
	if c.WindowEnabled {
		value |= 1 << 5
	}
	if c.TileDataAddress == 0x8000 {
		value |= 1 << 4
	}
	if c.BackgroundTileMapAddress == 0x9C00 {
		value |= 1 << 3
	}
	if c.SpriteSize == 16 {
		value |= 1 << 2
	}
	if c.SpriteEnabled {
		value |= 1 << 1
	}
	if c.BackgroundEnabled {
		value |= 1 << 0
	}
	return value
}

// UsingSignedTileData returns true if the LCD controller is using signed tile
// data.
func (c *Controller) UsingSignedTileData() bool {
	return c.TileDataAddress == 0x8800
}

// TileAddress returns the address of the tile with the given
// index in the selected tile data area.
func (c *Controller) TileAddress(index uint8) uint16 {
	if c.UsingSignedTileData() {
		return uint16(0x9000 + int(int8(index))*16)
	}
	return 0x8000 + uint16(index)*16
}
