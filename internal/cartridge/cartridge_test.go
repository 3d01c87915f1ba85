package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestROM creates a ROM image of the given cartridge type,
// with the bank number written to the first two bytes of
// every bank.
func newTestROM(t Type, romSize, ramSize uint8) []byte {
	banks := 2 << romSize
	rom := make([]byte, banks*BankSize)
	for bank := 0; bank < banks; bank++ {
		rom[bank*BankSize] = uint8(bank)
		rom[bank*BankSize+1] = uint8(bank >> 8)
	}
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = uint8(t)
	rom[0x148] = romSize
	rom[0x149] = ramSize
	rom[0x14B] = 0x01
	return rom
}

func newTestCartridge(t *testing.T, typ Type, romSize, ramSize uint8) *Cartridge {
	t.Helper()
	c, err := New(newTestROM(typ, romSize, ramSize))
	require.NoError(t, err)
	return c
}

// bank returns the bank number mapped at the given address.
func bank(c *Cartridge, address uint16) int {
	return int(c.Read(address)) | int(c.Read(address+1))<<8
}

func TestNew(t *testing.T) {
	t.Run("rom size mismatch", func(t *testing.T) {
		rom := newTestROM(ROM, 0x02, 0)
		_, err := New(rom[:len(rom)-BankSize])
		assert.ErrorIs(t, err, ErrROMSizeMismatch)

		_, err = New(append(rom, make([]byte, BankSize)...))
		assert.ErrorIs(t, err, ErrROMSizeMismatch)
	})
	t.Run("too small", func(t *testing.T) {
		_, err := New(make([]byte, 0x100))
		assert.ErrorIs(t, err, ErrROMTooSmall)
	})
	t.Run("invalid rom size", func(t *testing.T) {
		rom := newTestROM(ROM, 0x00, 0)
		rom[0x148] = 0x20
		_, err := New(rom)
		assert.ErrorIs(t, err, ErrInvalidROMSize)
	})
	t.Run("unsupported", func(t *testing.T) {
		for _, typ := range []Type{MMM01, POCKETCAMERA, HUDSONHUC1, 0x42} {
			_, err := New(newTestROM(typ, 0x00, 0))
			assert.ErrorIs(t, err, ErrUnsupportedMapper, "%s", typ)
		}
	})
	t.Run("kinds", func(t *testing.T) {
		tests := map[Type]Kind{
			ROM:              KindNone,
			ROMRAMBATT:       KindNone,
			MBC1RAMBATT:      KindMBC1,
			MBC2:             KindMBC2,
			MBC3TIMERRAMBATT: KindMBC3,
			MBC5RUMBLE:       KindMBC5,
		}
		for typ, kind := range tests {
			c := newTestCartridge(t, typ, 0x01, 0x02)
			assert.Equal(t, kind, c.Kind(), "%s", typ)
		}
	})
}

func TestCartridge_SaveRAM(t *testing.T) {
	t.Run("no battery", func(t *testing.T) {
		for _, typ := range []Type{ROM, ROMRAM, MBC1, MBC1RAM, MBC2, MBC3RAM, MBC5RAM, MBC5RUMBLERAM} {
			c := newTestCartridge(t, typ, 0x01, 0x02)
			_, err := c.SaveRAM()
			assert.ErrorIs(t, err, ErrNoBattery, "%s", typ)
			assert.ErrorIs(t, c.LoadRAM(make([]byte, 0x2000)), ErrNoBattery, "%s", typ)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, typ := range []Type{ROMRAMBATT, MBC1RAMBATT, MBC2BATT, MBC3TIMERBATT, MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT} {
			c := newTestCartridge(t, typ, 0x02, 0x03)
			c.Write(0x0000, 0x0A)
			for i := uint16(0); i < 0x200; i++ {
				c.Write(0xA000+i, uint8(i*7))
			}

			saved, err := c.SaveRAM()
			require.NoError(t, err, "%s", typ)

			fresh := newTestCartridge(t, typ, 0x02, 0x03)
			require.NoError(t, fresh.LoadRAM(saved), "%s", typ)
			restored, err := fresh.SaveRAM()
			require.NoError(t, err)
			assert.Equal(t, saved, restored, "%s", typ)
		}
	})

	t.Run("wrong size", func(t *testing.T) {
		c := newTestCartridge(t, MBC1RAMBATT, 0x01, 0x02)
		assert.ErrorIs(t, c.LoadRAM(make([]byte, 10)), ErrSaveSize)
		saved, _ := c.SaveRAM()
		assert.Equal(t, make([]byte, 0x2000), saved, "RAM should be left untouched")
	})
}

func TestCartridge_ROMOnly(t *testing.T) {
	c := newTestCartridge(t, ROM, 0x00, 0)
	assert.Equal(t, 1, bank(c, 0x4000))

	c.Write(0x2000, 0x00)
	assert.Equal(t, 1, bank(c, 0x4000), "writes to 0x2000 must have no effect")
	c.Write(0x2000, 0x01)
	assert.Equal(t, 1, bank(c, 0x4000))
	assert.Equal(t, uint8(0xFF), c.Read(0xA000))
}
