package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/gbcore/internal/types"
)

func TestMBC1(t *testing.T) {
	t.Run("bank 0 redirect", func(t *testing.T) {
		c := newTestCartridge(t, MBC1, 0x06, 0) // 128 banks
		for _, tt := range []struct {
			bank2, bank1 uint8
			expected     int
		}{
			{0, 0x00, 0x01},
			{1, 0x00, 0x21},
			{2, 0x00, 0x41},
			{3, 0x00, 0x61},
			{0, 0x05, 0x05},
			{3, 0x1F, 0x7F},
		} {
			c.Write(0x4000, tt.bank2)
			c.Write(0x2000, tt.bank1)
			assert.Equal(t, tt.expected, bank(c, 0x4000), "bank2 %d bank1 %02X", tt.bank2, tt.bank1)
		}
	})

	t.Run("upper bits masked", func(t *testing.T) {
		c := newTestCartridge(t, MBC1, 0x02, 0) // 8 banks
		c.Write(0x2000, 0xE3)
		assert.Equal(t, 3, bank(c, 0x4000))
		c.Write(0x2000, 0x0A)
		assert.Equal(t, 2, bank(c, 0x4000), "bank wraps around the rom size")
	})

	t.Run("mode 1", func(t *testing.T) {
		c := newTestCartridge(t, MBC1RAM, 0x06, 0x03)
		c.Write(0x4000, 0x02)
		assert.Equal(t, 0, bank(c, 0x0000))
		c.Write(0x6000, 0x01)
		assert.Equal(t, 0x40, bank(c, 0x0000), "mode 1 remaps the first bank")

		c.Write(0x0000, 0x0A)
		c.Write(0xA000, 0x42)
		c.Write(0x6000, 0x00)
		assert.NotEqual(t, uint8(0x42), c.Read(0xA000), "mode 0 always maps ram bank 0")
		c.Write(0x6000, 0x01)
		assert.Equal(t, uint8(0x42), c.Read(0xA000))
	})

	t.Run("ram gate", func(t *testing.T) {
		c := newTestCartridge(t, MBC1RAM, 0x01, 0x02)
		c.Write(0xA000, 0x12)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000))
		c.Write(0x0000, 0x1A)
		c.Write(0xA000, 0x12)
		assert.Equal(t, uint8(0x12), c.Read(0xA000))
		c.Write(0x0000, 0x00)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000))
	})
}

func TestMBC2(t *testing.T) {
	c := newTestCartridge(t, MBC2BATT, 0x03, 0)

	t.Run("rom bank", func(t *testing.T) {
		c.Write(0x2100, 0x05)
		assert.Equal(t, 5, bank(c, 0x4000))
		c.Write(0x2100, 0x00)
		assert.Equal(t, 1, bank(c, 0x4000))
		c.Write(0x2000, 0x07)
		assert.Equal(t, 1, bank(c, 0x4000), "bit 8 clear addresses the ram gate")
	})

	t.Run("nibble ram", func(t *testing.T) {
		c.Write(0x0000, 0x0A)
		c.Write(0xA000, 0xAB)
		assert.Equal(t, uint8(0xFB), c.Read(0xA000), "upper nibble reads as 1s")
		assert.Equal(t, uint8(0xFB), c.Read(0xA200), "ram is mirrored every 512 bytes")
		assert.Equal(t, uint8(0xFB), c.Read(0xBE00))

		saved, err := c.SaveRAM()
		assert.NoError(t, err)
		assert.Len(t, saved, 512)
		assert.Equal(t, uint8(0x0B), saved[0])

		c.Write(0x0100, 0x00)
		assert.Equal(t, uint8(0x0B)|0xF0, c.Read(0xA000), "bit 8 set addresses the rom bank")
		c.Write(0x0000, 0x00)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000))
	})
}

func TestMBC3(t *testing.T) {
	t.Run("rom bank", func(t *testing.T) {
		c := newTestCartridge(t, MBC3, 0x06, 0)
		c.Write(0x2000, 0x00)
		assert.Equal(t, 1, bank(c, 0x4000))
		c.Write(0x2000, 0x20)
		assert.Equal(t, 0x20, bank(c, 0x4000), "no redirect for 0x20")
		c.Write(0x2000, 0xFF)
		assert.Equal(t, 0x7F, bank(c, 0x4000))
	})

	t.Run("ram banks", func(t *testing.T) {
		c := newTestCartridge(t, MBC3RAMBATT, 0x01, 0x03)
		c.Write(0x0000, 0x0A)
		for b := uint8(0); b < 4; b++ {
			c.Write(0x4000, b)
			c.Write(0xA000, 0x10+b)
		}
		for b := uint8(0); b < 4; b++ {
			c.Write(0x4000, b)
			assert.Equal(t, 0x10+b, c.Read(0xA000))
		}
	})

	t.Run("rtc", func(t *testing.T) {
		c := newTestCartridge(t, MBC3TIMERRAMBATT, 0x01, 0x03)
		m := c.MemoryBankController.(*MemoryBankedCartridge3)
		c.Write(0x0000, 0x0A)

		// set the clock to 23:59:58 on day 511
		for reg, v := range map[uint8]uint8{rtcS: 58, rtcM: 59, rtcH: 23, rtcDL: 0xFF, rtcDH: 0x01} {
			c.Write(0x4000, reg)
			c.Write(0xA000, v)
		}

		for i := 0; i < 2*CyclesPerSecond/4; i++ {
			c.Tick(4)
		}

		// not latched yet
		c.Write(0x4000, rtcS)
		assert.Equal(t, uint8(58), c.Read(0xA000))

		c.Write(0x6000, 0x00)
		c.Write(0x6000, 0x01)
		for reg, v := range map[uint8]uint8{rtcS: 0, rtcM: 0, rtcH: 0, rtcDL: 0, rtcDH: types.Bit7} {
			c.Write(0x4000, reg)
			assert.Equal(t, v, c.Read(0xA000), "register %02X", reg)
		}

		// halt stops the clock
		c.Write(0x4000, rtcDH)
		c.Write(0xA000, types.Bit6)
		for i := 0; i < CyclesPerSecond/4; i++ {
			c.Tick(4)
		}
		c.Write(0x6000, 0x00)
		c.Write(0x6000, 0x01)
		c.Write(0x4000, rtcS)
		assert.Equal(t, uint8(0), c.Read(0xA000))
		assert.NotNil(t, m.RTC())
	})

	t.Run("no rtc", func(t *testing.T) {
		c := newTestCartridge(t, MBC3RAM, 0x01, 0x02)
		c.Write(0x0000, 0x0A)
		c.Write(0x4000, rtcS)
		assert.Equal(t, uint8(0xFF), c.Read(0xA000))
	})
}

func TestMBC5(t *testing.T) {
	c := newTestCartridge(t, MBC5RAM, 0x08, 0x04) // 512 banks

	c.Write(0x2000, 0x00)
	assert.Equal(t, 0, bank(c, 0x4000), "bank 0 is mapped directly")

	c.Write(0x2000, 0x34)
	c.Write(0x3000, 0x01)
	assert.Equal(t, 0x134, bank(c, 0x4000))
	c.Write(0x2000, 0xFF)
	assert.Equal(t, 0x1FF, bank(c, 0x4000))
	c.Write(0x3000, 0x00)
	assert.Equal(t, 0xFF, bank(c, 0x4000))

	c.Write(0x0000, 0x0A)
	for b := uint8(0); b < 16; b++ {
		c.Write(0x4000, b)
		c.Write(0xA123, b)
	}
	for b := uint8(0); b < 16; b++ {
		c.Write(0x4000, b)
		assert.Equal(t, b, c.Read(0xA123))
	}

	t.Run("rumble", func(t *testing.T) {
		c := newTestCartridge(t, MBC5RUMBLERAM, 0x01, 0x03)
		var on bool
		c.MemoryBankController.(*MemoryBankedCartridge5).RumbleCallback = func(v bool) { on = v }
		c.Write(0x4000, 0x08)
		assert.True(t, on)
		c.Write(0x4000, 0x01)
		assert.False(t, on)
	})
}

func TestMBC_State(t *testing.T) {
	c := newTestCartridge(t, MBC1RAMBATT, 0x04, 0x03)
	c.Write(0x0000, 0x0A)
	c.Write(0x2000, 0x07)
	c.Write(0xA010, 0x99)

	s := types.NewState()
	c.Save(s)

	restored := newTestCartridge(t, MBC1RAMBATT, 0x04, 0x03)
	restored.Load(types.StateFromBytes(s.Bytes()))
	assert.Equal(t, 7, bank(restored, 0x4000))
	assert.Equal(t, uint8(0x99), restored.Read(0xA010))
}
