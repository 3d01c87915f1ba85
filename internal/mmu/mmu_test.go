package mmu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// testVideo is a minimal Video with banked VRAM.
type testVideo struct {
	vRAM [2][0x2000]uint8
	bank uint8
	oam  [160]uint8
	regs map[uint16]uint8
}

func newTestVideo() *testVideo {
	return &testVideo{regs: map[uint16]uint8{}}
}

func (v *testVideo) Read(address uint16) uint8         { return v.regs[address] }
func (v *testVideo) Write(address uint16, value uint8) { v.regs[address] = value }
func (v *testVideo) ReadVRAM(address uint16) uint8     { return v.vRAM[v.bank][address&0x1FFF] }
func (v *testVideo) WriteVRAM(address uint16, value uint8) {
	v.vRAM[v.bank][address&0x1FFF] = value
}
func (v *testVideo) ReadOAM(address uint16) uint8         { return v.oam[address-0xFE00] }
func (v *testVideo) WriteOAM(address uint16, value uint8) { v.oam[address-0xFE00] = value }

func newTestMMU(t *testing.T) (*MMU, *testVideo) {
	t.Helper()
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = uint8(i >> 8)
	}
	rom[0x147], rom[0x148], rom[0x149] = 0x00, 0x00, 0x00
	cart, err := cartridge.New(rom)
	require.NoError(t, err)

	video := newTestVideo()
	m := NewMMU(cart, video, interrupts.NewService())
	m.MapRange(video, types.LCDC, types.WX)
	return m, video
}

func TestMMU_Regions(t *testing.T) {
	m, video := newTestMMU(t)

	assert.Equal(t, uint8(0x01), m.Read(0x0100), "rom bank 0")
	assert.Equal(t, uint8(0x40), m.Read(0x4000), "rom bank 1")

	m.Write(0x8123, 0x42)
	assert.Equal(t, uint8(0x42), video.vRAM[0][0x123])
	assert.Equal(t, uint8(0x42), m.Read(0x8123))

	m.Write(0xFE10, 0x24)
	assert.Equal(t, uint8(0x24), video.oam[0x10])

	m.Write(0xFF85, 0x99)
	assert.Equal(t, uint8(0x99), m.Read(0xFF85))

	m.Write(0xFFFF, 0x1F)
	assert.Equal(t, uint8(0x1F), m.irq.Enable)
	assert.Equal(t, uint8(0x1F), m.Read(0xFFFF))

	m.Write(types.SCX, 0x12)
	assert.Equal(t, uint8(0x12), video.regs[types.SCX])

	t.Run("echo", func(t *testing.T) {
		m.Write(0xC000, 0x11)
		m.Write(0xDDFF, 0x22)
		assert.Equal(t, uint8(0x11), m.Read(0xE000))
		assert.Equal(t, uint8(0x22), m.Read(0xFDFF))

		m.Write(0xE001, 0x33)
		assert.Equal(t, uint8(0x33), m.Read(0xC001))
	})

	t.Run("unusable", func(t *testing.T) {
		for addr := uint16(0xFEA0); addr < 0xFF00; addr++ {
			m.Write(addr, 0x00)
			assert.Equal(t, uint8(0xFF), m.Read(addr))
		}
	})

	t.Run("unmapped io", func(t *testing.T) {
		assert.Equal(t, uint8(0xFF), m.Read(0xFF7F))
		m.Write(0xFF7F, 0x00)
		assert.Equal(t, uint8(0xFF), m.Read(0xFF7F))
	})

	t.Run("interrupt flag", func(t *testing.T) {
		m.Write(types.IF, 0x01)
		assert.Equal(t, uint8(0xE1), m.Read(types.IF))
	})
}

func TestMMU_ROMWritesIgnored(t *testing.T) {
	m, _ := newTestMMU(t)
	m.Write(0x2000, 0x02)
	assert.Equal(t, uint8(0x40), m.Read(0x4000))
}

func TestMMU_CGBRegisters(t *testing.T) {
	m, _ := newTestMMU(t)

	t.Run("DMG mode", func(t *testing.T) {
		m.Write(types.SVBK, 0x02)
		assert.Equal(t, uint8(0xFF), m.Read(types.SVBK))
		assert.Equal(t, uint8(0xFF), m.Read(types.KEY1))
		assert.Equal(t, uint8(0xFF), m.Read(types.HDMA5))
	})

	m.SetModel(types.CGB)
	t.Run("WRAM banks", func(t *testing.T) {
		m.Write(0xD000, 0x01)
		m.Write(types.SVBK, 0x02)
		assert.Equal(t, uint8(0xFA), m.Read(types.SVBK))
		assert.Equal(t, uint8(0x00), m.Read(0xD000))
		m.Write(0xD000, 0x02)

		m.Write(types.SVBK, 0x00) // selects bank 1
		assert.Equal(t, uint8(0x01), m.Read(0xD000))
		assert.Equal(t, uint8(0x01), m.Read(0xF000), "echo follows the bank")

		m.Write(types.SVBK, 0x0A) // only 3 bits are used
		assert.Equal(t, uint8(0x02), m.Read(0xD000))
	})
	t.Run("KEY1", func(t *testing.T) {
		assert.Equal(t, uint8(0x7E), m.Read(types.KEY1))
		m.Write(types.KEY1, 0xFF)
		assert.Equal(t, uint8(0x7F), m.Read(types.KEY1))
	})
}

func TestMMU_OAMDMA(t *testing.T) {
	m, video := newTestMMU(t)
	for i := uint16(0); i < 160; i++ {
		m.Write(0xC100+i, uint8(i))
	}
	m.Write(types.DMA, 0xC1)
	assert.Equal(t, uint8(0xC1), m.Read(types.DMA))
	for i := 0; i < 160; i++ {
		assert.Equal(t, uint8(i), video.oam[i])
	}

	m.Write(types.DMA, 0x01) // from ROM
	assert.Equal(t, uint8(0x01), video.oam[0])
}

func TestMMU_HDMA(t *testing.T) {
	setup := func() (*MMU, *testVideo) {
		m, video := newTestMMU(t)
		m.SetModel(types.CGB)
		for i := uint16(0); i < 0x100; i++ {
			m.Write(0xC000+i, uint8(i))
		}
		m.Write(types.HDMA1, 0xC0)
		m.Write(types.HDMA2, 0x00)
		m.Write(types.HDMA3, 0x81) // upper bits are ignored
		m.Write(types.HDMA4, 0x0F) // lower nibble is ignored
		return m, video
	}

	t.Run("general purpose", func(t *testing.T) {
		m, video := setup()
		m.Write(types.HDMA5, 0x03) // 4 blocks
		for i := 0; i < 0x40; i++ {
			assert.Equal(t, uint8(i), video.vRAM[0][0x100+i])
		}
		assert.Equal(t, uint8(0), video.vRAM[0][0x140])
		assert.Equal(t, uint8(0xFF), m.Read(types.HDMA5))
		assert.Equal(t, uint16(4*cyclesPerBlock), m.HDMA.Stall())
		assert.Zero(t, m.HDMA.Stall())
	})

	t.Run("h-blank", func(t *testing.T) {
		m, video := setup()
		m.Write(types.HDMA5, 0x82) // 3 blocks
		assert.Equal(t, uint8(0x02), m.Read(types.HDMA5))
		assert.Equal(t, uint8(0), video.vRAM[0][0x101])

		m.HDMA.SetHBlank()
		assert.Equal(t, uint8(0x0F), video.vRAM[0][0x10F])
		assert.Equal(t, uint8(0), video.vRAM[0][0x110])
		assert.Equal(t, uint8(0x01), m.Read(types.HDMA5))
		assert.Equal(t, uint16(cyclesPerBlock), m.HDMA.Stall())

		m.HDMA.SetHBlank()
		m.HDMA.SetHBlank()
		assert.Equal(t, uint8(0x2F), video.vRAM[0][0x12F])
		assert.Equal(t, uint8(0xFF), m.Read(types.HDMA5))
		assert.False(t, m.HDMA.IsCopying())

		m.HDMA.SetHBlank()
		assert.Equal(t, uint8(0), video.vRAM[0][0x130])
	})

	t.Run("cancel", func(t *testing.T) {
		m, video := setup()
		m.Write(types.HDMA5, 0x83)
		m.HDMA.SetHBlank()
		m.Write(types.HDMA5, 0x00)
		assert.False(t, m.HDMA.IsCopying())
		assert.Equal(t, uint8(0x82), m.Read(types.HDMA5))

		m.HDMA.SetHBlank()
		assert.Equal(t, uint8(0), video.vRAM[0][0x110])
	})

	t.Run("into the selected bank", func(t *testing.T) {
		m, video := setup()
		video.bank = 1
		m.Write(types.HDMA5, 0x00)
		assert.Equal(t, uint8(0x0F), video.vRAM[1][0x10F])
		assert.Equal(t, uint8(0x00), video.vRAM[0][0x10F])
	})
}

func TestMMU_BootROM(t *testing.T) {
	m, _ := newTestMMU(t)
	raw := make([]byte, 256)
	for i := range raw {
		raw[i] = 0xAA
	}
	rom, err := boot.LoadBootROM(raw)
	require.NoError(t, err)

	m.SetBootROM(rom)
	assert.False(t, m.BootROMDone())
	assert.Equal(t, uint8(0xAA), m.Read(0x0000))
	assert.Equal(t, uint8(0x01), m.Read(0x0100), "cartridge header is visible")

	m.Write(types.BDIS, 0x01)
	assert.True(t, m.BootROMDone())
	assert.Equal(t, uint8(0x00), m.Read(0x0000))

	m.Reset()
	assert.Equal(t, uint8(0xAA), m.Read(0x0000), "reset maps the boot rom back in")
}

func TestMMU_State(t *testing.T) {
	m, _ := newTestMMU(t)
	m.SetModel(types.CGB)
	m.Write(types.SVBK, 3)
	m.Write(0xD123, 0x77)
	m.Write(0xFF90, 0x66)

	s := types.NewState()
	m.Save(s)

	m2, _ := newTestMMU(t)
	m2.Load(types.StateFromBytes(s.Bytes()))
	require.NoError(t, s.Err())
	assert.True(t, m2.IsGBC())
	assert.Equal(t, uint8(0x77), m2.Read(0xD123))
	assert.Equal(t, uint8(0x66), m2.Read(0xFF90))
}
