package cartridge

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// MemoryBankedCartridge5 represents an MBC5 cartridge, supporting up
// to 8MiB of ROM and 128KiB of RAM. The 9 bit ROM bank is split over
// two registers, and unlike the earlier controllers bank 0 can be
// mapped to 0x4000-0x7FFF.
type MemoryBankedCartridge5 struct {
	bankedMemory

	romBank uint16
	ramBank uint8
	rumble  bool

	// RumbleCallback is called whenever the rumble motor
	// is switched on or off.
	RumbleCallback func(on bool)
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(rom []byte, header *Header) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		bankedMemory: newBankedMemory(rom, header),
		romBank:      1,
		rumble:       header.CartridgeType.Rumble(),
	}
}

func (m *MemoryBankedCartridge5) Kind() Kind { return KindMBC5 }

func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	}
	return m.readRAM(int(m.ramBank), address)
}

func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value == 0x0A
	case address < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&types.Bit0)<<8
	case address < 0x6000:
		if m.rumble {
			// bit 3 drives the motor on rumble cartridges
			if m.RumbleCallback != nil {
				m.RumbleCallback(value&types.Bit3 != 0)
			}
			value &= 0x07
		}
		m.ramBank = value & 0x0F
	case address >= 0xA000 && address < 0xC000:
		m.writeRAM(int(m.ramBank), address, value)
	}
}

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	m.loadMemory(s)
	m.romBank = s.Read16()
	m.ramBank = s.Read8()
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	m.saveMemory(s)
	s.Write16(m.romBank)
	s.Write8(m.ramBank)
}
