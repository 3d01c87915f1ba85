package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// Kind tags the variant of a MemoryBankController.
type Kind uint8

const (
	KindUnsupported Kind = iota
	KindNone
	KindMBC1
	KindMBC2
	KindMBC3
	KindMBC5
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindMBC1:
		return "MBC1"
	case KindMBC2:
		return "MBC2"
	case KindMBC3:
		return "MBC3"
	case KindMBC5:
		return "MBC5"
	}
	return "Unsupported"
}

// MemoryBankController maps the banks of the ROM and the
// external RAM into the 0x0000-0x7FFF and 0xA000-0xBFFF
// windows of the address space. Writes into the ROM window
// are taken as writes to its control registers.
//
// Read and Write are total over those two windows, reads of
// disabled or absent RAM return 0xFF.
type MemoryBankController interface {
	Kind() Kind
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	// SaveRAM returns a copy of the RAM as written to a save file.
	SaveRAM() []byte
	// LoadRAM restores the RAM from a save file.
	LoadRAM(data []byte) error

	types.Stater
}

// bankedMemory holds the state every banked controller
// shares: the ROM, the external RAM and the RAM gate.
type bankedMemory struct {
	rom        []byte
	romBanks   int
	ram        []byte
	ramBanks   int
	ramEnabled bool
}

func newBankedMemory(rom []byte, header *Header) bankedMemory {
	return bankedMemory{
		rom:      rom,
		romBanks: header.ROMBanks,
		ram:      make([]byte, header.RAMSize()),
		ramBanks: header.RAMBanks,
	}
}

// readROM reads from the given ROM bank, wrapping the bank
// number around the number of banks present.
func (b *bankedMemory) readROM(bank int, address uint16) uint8 {
	bank %= b.romBanks
	return b.rom[bank*BankSize+int(address&0x3FFF)]
}

// readRAM reads from the given RAM bank if RAM is enabled.
func (b *bankedMemory) readRAM(bank int, address uint16) uint8 {
	if !b.ramEnabled || b.ramBanks == 0 {
		return 0xFF
	}
	bank %= b.ramBanks
	return b.ram[bank*RAMBankSize+int(address&0x1FFF)]
}

// writeRAM writes to the given RAM bank if RAM is enabled.
func (b *bankedMemory) writeRAM(bank int, address uint16, value uint8) {
	if !b.ramEnabled || b.ramBanks == 0 {
		return
	}
	bank %= b.ramBanks
	b.ram[bank*RAMBankSize+int(address&0x1FFF)] = value
}

func (b *bankedMemory) SaveRAM() []byte {
	data := make([]byte, len(b.ram))
	copy(data, b.ram)
	return data
}

func (b *bankedMemory) LoadRAM(data []byte) error {
	if len(data) != len(b.ram) {
		return ErrSaveSize
	}
	copy(b.ram, data)
	return nil
}

func (b *bankedMemory) loadMemory(s *types.State) {
	s.ReadData(b.ram)
	b.ramEnabled = s.ReadBool()
}

func (b *bankedMemory) saveMemory(s *types.State) {
	s.WriteData(b.ram)
	s.WriteBool(b.ramEnabled)
}
