package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// mbc2RAMSize is the number of 4 bit cells of built-in RAM.
const mbc2RAMSize = 512

// MemoryBankedCartridge2 represents an MBC2 cartridge, supporting up
// to 256KiB of ROM. The controller has 512 half-bytes of RAM built
// in, mapped to 0xA000-0xA1FF and mirrored up to 0xBFFF. Only the
// lower 4 bits of each cell are stored, the upper 4 bits read as 1.
//
// Both registers live in 0x0000-0x3FFF, bit 8 of the address picks
// between them: clear for the RAM gate, set for the ROM bank.
type MemoryBankedCartridge2 struct {
	bankedMemory

	romBank uint8
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(rom []byte, header *Header) *MemoryBankedCartridge2 {
	m := &MemoryBankedCartridge2{
		bankedMemory: newBankedMemory(rom, header),
		romBank:      1,
	}
	// the header RAM size is 0 for MBC2, the RAM is part of the controller
	m.ram = make([]byte, mbc2RAMSize)
	m.ramBanks = 1
	return m
}

func (m *MemoryBankedCartridge2) Kind() Kind { return KindMBC2 }

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge2) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	}
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[address&0x01FF] | 0xF0
}

func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x0100 != 0 {
			m.romBank = value & 0x0F
			if m.romBank == 0 {
				m.romBank = 1
			}
		} else {
			m.ramEnabled = value&0x0F == 0x0A
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.ram[address&0x01FF] = value & 0x0F
		}
	}
}

// LoadRAM restores the RAM, dropping the unused upper bits
// of each cell.
func (m *MemoryBankedCartridge2) LoadRAM(data []byte) error {
	if err := m.bankedMemory.LoadRAM(data); err != nil {
		return err
	}
	for i := range m.ram {
		m.ram[i] &= 0x0F
	}
	return nil
}

func (m *MemoryBankedCartridge2) Load(s *types.State) {
	m.loadMemory(s)
	m.romBank = s.Read8()
}

func (m *MemoryBankedCartridge2) Save(s *types.State) {
	m.saveMemory(s)
	s.Write8(m.romBank)
}
