package cartridge

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// MemoryBankedCartridge1 represents an MBC1 cartridge, supporting up
// to 2MiB of ROM and 32KiB of RAM.
//
// The controller holds two bank registers. BANK1 holds the lower 5
// bits of the ROM bank, where 0 is treated as 1, so the banks 0x20,
// 0x40 and 0x60 can never be mapped to 0x4000-0x7FFF. BANK2 holds 2
// bits which always form bits 5-6 of the switchable ROM bank. When
// the mode register is 1, BANK2 also selects the RAM bank and the
// ROM bank mapped to 0x0000-0x3FFF.
type MemoryBankedCartridge1 struct {
	bankedMemory

	bank1 uint8
	bank2 uint8
	mode  bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		bankedMemory: newBankedMemory(rom, header),
		bank1:        1,
	}
}

func (m *MemoryBankedCartridge1) Kind() Kind { return KindMBC1 }

// romBank returns the bank mapped to 0x4000-0x7FFF.
func (m *MemoryBankedCartridge1) romBank() int {
	return int(m.bank2)<<5 | int(m.bank1)
}

// zeroBank returns the bank mapped to 0x0000-0x3FFF.
func (m *MemoryBankedCartridge1) zeroBank() int {
	if m.mode {
		return int(m.bank2) << 5
	}
	return 0
}

func (m *MemoryBankedCartridge1) ramBank() int {
	if m.mode {
		return int(m.bank2)
	}
	return 0
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(m.zeroBank(), address)
	case address < 0x8000:
		return m.readROM(m.romBank(), address)
	}
	return m.readRAM(m.ramBank(), address)
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value&types.Bit0 != 0
	case address >= 0xA000 && address < 0xC000:
		m.writeRAM(m.ramBank(), address, value)
	}
}

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.loadMemory(s)
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.mode = s.ReadBool()
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	m.saveMemory(s)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.mode)
}
