package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// ROMCartridge represents a cartridge without a memory bank
// controller. The 32KiB ROM is mapped directly, along with
// up to 8KiB of RAM (ROM+RAM), which is always enabled.
type ROMCartridge struct {
	bankedMemory
}

// NewROM returns a new ROM cartridge.
func NewROM(rom []byte, header *Header) *ROMCartridge {
	r := &ROMCartridge{bankedMemory: newBankedMemory(rom, header)}
	r.ramEnabled = true
	return r
}

func (r *ROMCartridge) Kind() Kind { return KindNone }

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return r.rom[address]
	case address < 0x8000:
		return r.readROM(1, address)
	}
	return r.readRAM(0, address)
}

// Write writes to RAM, there are no control registers.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		r.writeRAM(0, address, value)
	}
}

func (r *ROMCartridge) Load(s *types.State) {
	s.ReadData(r.ram)
}

func (r *ROMCartridge) Save(s *types.State) {
	s.WriteData(r.ram)
}
