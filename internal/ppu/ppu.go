// Package ppu implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// The PPU is advanced by the number of cycles each CPU step takes,
// and renders a whole scanline at once when the line enters H-Blank.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
package ppu

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/ppu/lcd"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// oamCycles is the length of mode 2 (OAM scan).
	oamCycles = 80
	// transferCycles is the length of mode 3 (pixel transfer),
	// which is fixed as no sprite or window penalties are modeled.
	transferCycles = 172
	// lineCycles is the length of a single scanline.
	lineCycles = 456
	// lines is the number of scanlines in a frame, including
	// the 10 lines of V-Blank.
	lines = 154

	// FrameCycles is the number of cycles in a single frame.
	FrameCycles = lineCycles * lines
)

// PPU holds the LCD registers, video memory and the frame
// being drawn.
type PPU struct {
	*lcd.Controller
	*lcd.Status

	// 0x8000 - 0x9FFF, 2 banks in CGB mode
	vRAM     [2][0x2000]uint8
	vRAMBank uint8
	// 0xFE00 - 0xFE9F
	oam [160]uint8

	scy, scx uint8
	ly, lyc  uint8
	wy, wx   uint8
	wly      uint8 // internal window line counter
	bgp      uint8
	obp      [2]uint8

	dot      uint16 // cycles into the current line
	statLine bool   // state of the STAT interrupt line

	// palettes
	basePalettes [3]palette.Palette // BG, OBJ0, OBJ1 base colours for DMG palettes
	bgPalette    palette.Palette
	objPalette   [2]palette.Palette
	BGPalette    *palette.CGBPalette
	OBJPalette   *palette.CGBPalette

	cgb bool

	// frames
	back   Frame
	front  Frame
	frames uint64
	tags   [ScreenWidth]tag
	colour [ScreenWidth]uint8

	irq *interrupts.Service

	// HBlank is called every time a visible line enters H-Blank.
	HBlank func()
}

// New returns a new PPU that requests its interrupts through irq.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{
		Controller: lcd.NewController(),
		Status:     &lcd.Status{},
		BGPalette:  palette.NewCGBPalette(),
		OBJPalette: palette.NewCGBPalette(),
		irq:        irq,
	}
	p.SetPalette(palette.Palettes[palette.Greyscale])
	p.Reset()
	return p
}

// Reset puts the PPU back into its power on state. The model and
// the base palettes are left as they were.
func (p *PPU) Reset() {
	p.Controller.Write(0)
	p.Status.Write(0)
	p.Status.Mode = lcd.HBlank
	p.Status.Coincidence = false

	p.vRAM = [2][0x2000]uint8{}
	p.vRAMBank = 0
	p.oam = [160]uint8{}
	p.scy, p.scx, p.ly, p.lyc, p.wy, p.wx, p.wly = 0, 0, 0, 0, 0, 0, 0
	p.dot, p.statLine = 0, false
	p.BGPalette.Reset()
	p.OBJPalette.Reset()

	p.bgp, p.obp = 0, [2]uint8{}
	p.updateDMGPalettes()

	p.back, p.front = Frame{}, Frame{}
	p.frames = 0
}

// SetCGB enables the CGB features of the PPU: VRAM banking,
// tile attributes and colour palette memory.
func (p *PPU) SetCGB(cgb bool) {
	p.cgb = cgb
}

// SetPalette sets the base colours used by every DMG palette.
func (p *PPU) SetPalette(base palette.Palette) {
	p.basePalettes = [3]palette.Palette{base, base, base}
	p.updateDMGPalettes()
}

// Colourise sets separate base colours for the background and
// both sprite palettes, as the CGB does when running DMG games.
func (p *PPU) Colourise(entry palette.CompatibilityPaletteEntry) {
	p.basePalettes = [3]palette.Palette{entry.BG, entry.OBJ0, entry.OBJ1}
	p.updateDMGPalettes()
}

func (p *PPU) updateDMGPalettes() {
	p.bgPalette = palette.ByteToPalette(p.basePalettes[0], p.bgp)
	p.objPalette[0] = palette.ByteToPalette(p.basePalettes[1], p.obp[0])
	p.objPalette[1] = palette.ByteToPalette(p.basePalettes[2], p.obp[1])
}

// Read returns the value of the LCD register at address.
func (p *PPU) Read(address uint16) uint8 {
	switch address {
	case types.LCDC:
		return p.Controller.Read()
	case types.STAT:
		return p.Status.Read()
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp[0]
	case types.OBP1:
		return p.obp[1]
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}

	if !p.cgb {
		return 0xFF
	}
	switch address {
	case types.VBK:
		return p.vRAMBank | 0xFE
	case types.BCPS:
		return p.BGPalette.GetIndex()
	case types.BCPD:
		return p.BGPalette.Read()
	case types.OCPS:
		return p.OBJPalette.GetIndex()
	case types.OCPD:
		return p.OBJPalette.Read()
	}
	return 0xFF
}

// Write sets the value of the LCD register at address.
func (p *PPU) Write(address uint16, value uint8) {
	switch address {
	case types.LCDC:
		p.writeLCDC(value)
	case types.STAT:
		p.Status.Write(value)
		p.updateStatLine()
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		// read only
	case types.LYC:
		p.lyc = value
		if p.Enabled {
			p.compareLYC()
		}
	case types.BGP:
		p.bgp = value
		p.updateDMGPalettes()
	case types.OBP0:
		p.obp[0] = value
		p.updateDMGPalettes()
	case types.OBP1:
		p.obp[1] = value
		p.updateDMGPalettes()
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	}

	if !p.cgb {
		return
	}
	switch address {
	case types.VBK:
		p.vRAMBank = value & types.Bit0
	case types.BCPS:
		p.BGPalette.SetIndex(value)
	case types.BCPD:
		p.BGPalette.Write(value)
	case types.OCPS:
		p.OBJPalette.SetIndex(value)
	case types.OCPD:
		p.OBJPalette.Write(value)
	}
}

func (p *PPU) writeLCDC(value uint8) {
	wasEnabled := p.Enabled
	p.Controller.Write(value)

	switch {
	case wasEnabled && !p.Enabled:
		// when the LCD is off, LY reads 0, and STAT mode reads 0 (HBlank)
		p.ly, p.dot, p.wly = 0, 0, 0
		p.Status.Mode = lcd.HBlank
		p.statLine = false

		// the screen goes blank
		p.clearFrame()
	case !wasEnabled && p.Enabled:
		p.dot = 0
		p.Status.Mode = lcd.OAM
		p.compareLYC()
	}
}

// ReadVRAM returns the value at address in the selected VRAM bank.
func (p *PPU) ReadVRAM(address uint16) uint8 {
	return p.vRAM[p.vRAMBank][address&0x1FFF]
}

// WriteVRAM sets the value at address in the selected VRAM bank.
func (p *PPU) WriteVRAM(address uint16, value uint8) {
	p.vRAM[p.vRAMBank][address&0x1FFF] = value
}

// ReadOAM returns the value at address in OAM.
func (p *PPU) ReadOAM(address uint16) uint8 {
	return p.oam[(address-0xFE00)%160]
}

// WriteOAM sets the value at address in OAM.
func (p *PPU) WriteOAM(address uint16, value uint8) {
	p.oam[(address-0xFE00)%160] = value
}

// Tick advances the PPU by the given number of cycles. Lines
// are rendered as they enter H-Blank, and the frame is
// published when LY reaches 144.
func (p *PPU) Tick(cycles uint8) {
	if !p.Enabled {
		return
	}

	p.dot += uint16(cycles)
	for {
		switch p.Status.Mode {
		case lcd.OAM:
			if p.dot < oamCycles {
				return
			}
			p.setMode(lcd.VRAM)
		case lcd.VRAM:
			if p.dot < oamCycles+transferCycles {
				return
			}
			p.renderScanline()
			p.setMode(lcd.HBlank)
			if p.HBlank != nil {
				p.HBlank()
			}
		case lcd.HBlank:
			if p.dot < lineCycles {
				return
			}
			p.dot -= lineCycles
			p.setLY(p.ly + 1)

			if p.ly == ScreenHeight {
				p.setMode(lcd.VBlank)
				p.irq.Request(interrupts.VBlankFlag)
				p.publish()
			} else {
				p.setMode(lcd.OAM)
			}
		case lcd.VBlank:
			if p.dot < lineCycles {
				return
			}
			p.dot -= lineCycles

			if p.ly == lines-1 {
				p.wly = 0
				p.setLY(0)
				p.setMode(lcd.OAM)
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

func (p *PPU) setMode(mode lcd.Mode) {
	p.Status.Mode = mode
	p.updateStatLine()
}

func (p *PPU) setLY(ly uint8) {
	p.ly = ly
	p.compareLYC()
}

func (p *PPU) compareLYC() {
	p.Status.Coincidence = p.ly == p.lyc
	p.updateStatLine()
}

// updateStatLine requests the LCD interrupt on the rising
// edge of the STAT interrupt line.
func (p *PPU) updateStatLine() {
	line := p.Enabled && p.Status.Line()
	if line && !p.statLine {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.statLine = line
}

// LY returns the current scanline.
func (p *PPU) LY() uint8 {
	return p.ly
}

// Load restores the PPU from s.
func (p *PPU) Load(s *types.State) {
	p.Controller.Write(s.Read8())
	p.Status.Write(s.Read8())
	p.Status.Mode = s.Read8()
	p.Status.Coincidence = s.ReadBool()
	for i := range p.vRAM {
		s.ReadData(p.vRAM[i][:])
	}
	p.vRAMBank = s.Read8()
	s.ReadData(p.oam[:])
	p.scy, p.scx = s.Read8(), s.Read8()
	p.ly, p.lyc = s.Read8(), s.Read8()
	p.wy, p.wx, p.wly = s.Read8(), s.Read8(), s.Read8()
	p.bgp, p.obp[0], p.obp[1] = s.Read8(), s.Read8(), s.Read8()
	p.dot = s.Read16()
	p.statLine = s.ReadBool()
	p.BGPalette.Load(s)
	p.OBJPalette.Load(s)
	p.updateDMGPalettes()
}

// Save writes the PPU to s.
func (p *PPU) Save(s *types.State) {
	s.Write8(p.Controller.Read())
	s.Write8(p.Status.Read())
	s.Write8(p.Status.Mode)
	s.WriteBool(p.Status.Coincidence)
	for i := range p.vRAM {
		s.WriteData(p.vRAM[i][:])
	}
	s.Write8(p.vRAMBank)
	s.WriteData(p.oam[:])
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.ly)
	s.Write8(p.lyc)
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.Write8(p.wly)
	s.Write8(p.bgp)
	s.Write8(p.obp[0])
	s.Write8(p.obp[1])
	s.Write16(p.dot)
	s.WriteBool(p.statLine)
	p.BGPalette.Save(s)
	p.OBJPalette.Save(s)
}

var _ types.Stater = (*PPU)(nil)
