package palette

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// CGBPalette is a palette used by the CGB to provide
// up to 32768 colors. Palette memory is accessed a byte at
// a time through an index register (BCPS/OCPS) and a data
// register (BCPD/OCPD).
type CGBPalette struct {
	Palettes     [8]Palette
	Index        byte
	Incrementing bool
}

// NewCGBPalette returns a palette memory with every colour set
// to white, as it is at power on.
func NewCGBPalette() *CGBPalette {
	p := &CGBPalette{}
	p.Reset()
	return p
}

// Reset sets every colour to white and clears the index.
func (p *CGBPalette) Reset() {
	for i := range p.Palettes {
		for j := range p.Palettes[i] {
			p.Palettes[i][j] = RGB{0xFF, 0xFF, 0xFF}
		}
	}
	p.Index = 0
	p.Incrementing = false
}

// SetIndex updates the index of the palette.
func (p *CGBPalette) SetIndex(value byte) {
	p.Index = value & 0x3F
	p.Incrementing = value&types.Bit7 != 0
}

// GetIndex returns the index of the palette. Bit 6 is unused
// and reads as 1.
func (p *CGBPalette) GetIndex() byte {
	if p.Incrementing {
		return p.Index | types.Bit7 | types.Bit6
	}
	return p.Index | types.Bit6
}

// raw returns the RGB555 value of the colour selected by the index.
func (p *CGBPalette) raw() uint16 {
	c := p.Palettes[p.Index>>3][(p.Index&0x7)>>1]
	return uint16(c[0]>>3) | uint16(c[1]>>3)<<5 | uint16(c[2]>>3)<<10
}

// Read returns the byte of palette memory selected by the index.
func (p *CGBPalette) Read() byte {
	colour := p.raw()
	if p.Index&1 == 0 {
		return uint8(colour)
	}
	return uint8(colour >> 8)
}

// Write writes a byte of palette memory at the index, and
// advances the index if auto increment is enabled.
func (p *CGBPalette) Write(value byte) {
	colour := p.raw()
	if p.Index&0x1 == 0 {
		colour = (colour & 0xFF00) | uint16(value)
	} else {
		colour = (colour & 0x00FF) | uint16(value)<<8
	}

	p.Palettes[p.Index>>3][(p.Index&0x7)>>1] = RGB{
		scale(uint8(colour) & 0x1F),
		scale(uint8(colour>>5) & 0x1F),
		scale(uint8(colour>>10) & 0x1F),
	}

	if p.Incrementing {
		p.Index = (p.Index + 1) & 0x3F
	}
}

// scale converts a 5-bit channel to 8 bits.
func scale(c uint8) uint8 {
	return c<<3 | c>>2
}

// GetColour returns the colour for a given palette index,
// and colour index.
func (p *CGBPalette) GetColour(paletteIndex byte, colourIndex byte) RGB {
	return p.Palettes[paletteIndex&0x7][colourIndex&0x3]
}

// Load restores the palette memory from s.
func (p *CGBPalette) Load(s *types.State) {
	for i := range p.Palettes {
		for j := range p.Palettes[i] {
			s.ReadData(p.Palettes[i][j][:])
		}
	}
	p.Index = s.Read8()
	p.Incrementing = s.ReadBool()
}

// Save writes the palette memory to s.
func (p *CGBPalette) Save(s *types.State) {
	for i := range p.Palettes {
		for j := range p.Palettes[i] {
			s.WriteData(p.Palettes[i][j][:])
		}
	}
	s.Write8(p.Index)
	s.WriteBool(p.Incrementing)
}
