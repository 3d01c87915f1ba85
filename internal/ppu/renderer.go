package ppu

// tag records which layer last drew a pixel of the current
// line. A layer may only draw over pixels with a lower or
// equal tag, so later layers never regress an earlier one.
type tag uint8

const (
	tagNone tag = iota
	tagBackground
	tagWindow
	tagSpriteBehind
	tagSpriteAbove
	// tagBackgroundPriority marks a CGB background pixel with
	// the priority attribute set, which sprites can't draw over.
	tagBackgroundPriority
)

// plot draws a pixel of the current line if t is at least the
// tag already present.
func (p *PPU) plot(x int, t tag, rgb [3]uint8) bool {
	if t < p.tags[x] {
		return false
	}
	p.tags[x] = t
	p.back[p.ly][x] = rgb
	return true
}

// renderScanline composites the background, window and sprites
// of the current line into the back buffer.
func (p *PPU) renderScanline() {
	p.tags = [ScreenWidth]tag{}
	p.colour = [ScreenWidth]uint8{}

	// in DMG mode LCDC.0 turns off the background and window
	if !p.cgb && !p.BackgroundEnabled {
		blank := p.bgPalette.GetColour(0)
		for x := 0; x < ScreenWidth; x++ {
			p.plot(x, tagBackground, blank)
		}
	} else {
		p.drawBackground()
	}

	if p.SpriteEnabled {
		p.drawSprites()
	}
}

// drawBackground draws the background, and the window over it
// where the window is visible.
func (p *PPU) drawBackground() {
	winX := ScreenWidth
	if p.WindowEnabled && p.ly >= p.wy && p.wx <= 166 {
		winX = int(p.wx) - 7
	}

	for x := 0; x < ScreenWidth; x++ {
		var colour uint8
		var rgb [3]uint8
		var priority bool
		t := tagBackground

		if x >= winX {
			colour, rgb, priority = p.mapPixel(p.WindowTileMapAddress, uint8(x-winX), p.wly)
			t = tagWindow
		} else {
			colour, rgb, priority = p.mapPixel(p.BackgroundTileMapAddress, uint8(x)+p.scx, p.ly+p.scy)
		}

		// LCDC.0 is the master priority in CGB mode
		if p.cgb && p.BackgroundEnabled && priority && colour != 0 {
			t = tagBackgroundPriority
		}

		p.colour[x] = colour
		p.plot(x, t, rgb)
	}

	if winX < ScreenWidth {
		p.wly++
	}
}

// mapPixel returns the colour index, colour and priority of the
// pixel at (x, y) of the 256x256 picture described by the tile
// map at mapAddress.
func (p *PPU) mapPixel(mapAddress uint16, x, y uint8) (uint8, [3]uint8, bool) {
	offset := mapAddress - 0x8000 + uint16(y/8)*32 + uint16(x/8)
	tileID := p.vRAM[0][offset]

	var attr TileAttributes
	if p.cgb {
		attr = decodeTileAttributes(p.vRAM[1][offset])
	}

	row := y % 8
	if attr.YFlip {
		row = 7 - row
	}
	col := x % 8
	if attr.XFlip {
		col = 7 - col
	}

	address := p.TileAddress(tileID) - 0x8000 + uint16(row)*2
	colour := tilePixel(p.vRAM[attr.VRAMBank][address], p.vRAM[attr.VRAMBank][address+1], col)

	if p.cgb {
		return colour, p.BGPalette.GetColour(attr.PaletteNumber, colour), attr.UseBGPriority
	}
	return colour, p.bgPalette.GetColour(colour), false
}

// drawSprites draws the sprites selected for the current line.
// Sprites are visited highest priority first, and the first
// opaque pixel of a sprite claims that column, even if the
// background ends up drawn over it.
func (p *PPU) drawSprites() {
	height := int(p.SpriteSize)
	masterPriority := p.cgb && !p.BackgroundEnabled

	var claimed [ScreenWidth]bool
	for _, s := range p.scanOAM() {
		row := int(p.ly) - s.Y
		if s.flipY {
			row = height - 1 - row
		}
		tileID := s.TileID
		if height == 16 {
			tileID &= 0xFE
		}
		var bank uint8
		if p.cgb {
			bank = s.vRAMBank
		}

		address := uint16(tileID)*16 + uint16(row)*2
		lo, hi := p.vRAM[bank][address], p.vRAM[bank][address+1]

		for i := 0; i < 8; i++ {
			x := s.X + i
			if x < 0 || x >= ScreenWidth || claimed[x] {
				continue
			}

			col := uint8(i)
			if s.flipX {
				col = 7 - col
			}
			colour := tilePixel(lo, hi, col)
			if colour == 0 {
				continue // transparent
			}
			claimed[x] = true

			t := tagSpriteAbove
			if s.behind && !masterPriority {
				if p.colour[x] != 0 {
					continue
				}
				t = tagSpriteBehind
			}
			if p.cgb {
				p.plot(x, t, p.OBJPalette.GetColour(s.cgbPalette, colour))
			} else {
				p.plot(x, t, p.objPalette[s.useSecondPalette].GetColour(colour))
			}
		}
	}
}
