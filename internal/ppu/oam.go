package ppu

import "sort"

// maxSpritesPerLine is the number of sprites the OAM scan
// selects for a single line.
const maxSpritesPerLine = 10

// scanOAM selects the sprites that overlap the current line,
// in OAM order, stopping once maxSpritesPerLine are found. The
// result is sorted by drawing priority, highest first: in CGB
// mode that is OAM order, otherwise the sprite with the lowest X
// wins, ties going to the earliest in OAM.
func (p *PPU) scanOAM() []Sprite {
	height := int(p.SpriteSize)
	ly := int(p.ly)

	sprites := make([]Sprite, 0, maxSpritesPerLine)
	for i := uint8(0); i < 40 && len(sprites) < maxSpritesPerLine; i++ {
		s := newSprite(i, p.oam[i*4:i*4+4])
		if ly >= s.Y && ly < s.Y+height {
			sprites = append(sprites, s)
		}
	}

	if !p.cgb {
		sort.SliceStable(sprites, func(i, j int) bool {
			return sprites[i].X < sprites[j].X
		})
	}

	return sprites
}
