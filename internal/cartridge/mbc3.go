package cartridge

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

// MemoryBankedCartridge3 represents an MBC3 cartridge, supporting up
// to 2MiB of ROM, 32KiB of RAM and optionally a real time clock.
// The RTC registers are mapped into the RAM window by selecting
// banks 0x08-0x0C instead of a RAM bank.
type MemoryBankedCartridge3 struct {
	bankedMemory

	romBank uint8
	ramBank uint8 // 0-3 RAM, 0x08-0x0C RTC register

	rtc *RTC
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header *Header) *MemoryBankedCartridge3 {
	m := &MemoryBankedCartridge3{
		bankedMemory: newBankedMemory(rom, header),
		romBank:      1,
	}
	if header.CartridgeType.Timer() {
		m.rtc = &RTC{}
	}
	return m
}

func (m *MemoryBankedCartridge3) Kind() Kind { return KindMBC3 }

// RTC returns the real time clock, or nil if the cartridge
// doesn't have one.
func (m *MemoryBankedCartridge3) RTC() *RTC {
	return m.rtc
}

// Tick advances the real time clock.
func (m *MemoryBankedCartridge3) Tick(cycles uint8) {
	if m.rtc != nil {
		m.rtc.Tick(cycles)
	}
}

func (m *MemoryBankedCartridge3) rtcSelected() bool {
	return m.ramBank >= rtcS && m.ramBank <= rtcDH
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom[address]
	case address < 0x8000:
		return m.readROM(int(m.romBank), address)
	}
	if m.rtcSelected() {
		if m.rtc == nil || !m.ramEnabled {
			return 0xFF
		}
		return m.rtc.read(m.ramBank)
	}
	return m.readRAM(int(m.ramBank), address)
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		if value <= 0x03 || (value >= rtcS && value <= rtcDH) {
			m.ramBank = value
		}
	case address < 0x8000:
		if m.rtc != nil {
			m.rtc.writeLatch(value)
		}
	case address >= 0xA000 && address < 0xC000:
		if m.rtcSelected() {
			if m.rtc != nil && m.ramEnabled {
				m.rtc.write(m.ramBank, value)
			}
			return
		}
		m.writeRAM(int(m.ramBank), address, value)
	}
}

// SaveRAM returns the RAM, followed by the RTC if present.
func (m *MemoryBankedCartridge3) SaveRAM() []byte {
	data := m.bankedMemory.SaveRAM()
	if m.rtc != nil {
		data = append(data, m.rtc.marshal()...)
	}
	return data
}

// LoadRAM restores the RAM, and the RTC if the save has one.
func (m *MemoryBankedCartridge3) LoadRAM(data []byte) error {
	if m.rtc == nil || len(data) == len(m.ram) {
		return m.bankedMemory.LoadRAM(data)
	}
	footer := len(data) - len(m.ram)
	if footer != rtcFooterSize && footer != rtcFooterSize-4 {
		return ErrSaveSize
	}
	copy(m.ram, data)
	m.rtc.unmarshal(data[len(m.ram):])
	return nil
}

func (m *MemoryBankedCartridge3) Load(s *types.State) {
	m.loadMemory(s)
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	if m.rtc != nil {
		m.rtc.Load(s)
	}
}

func (m *MemoryBankedCartridge3) Save(s *types.State) {
	m.saveMemory(s)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	if m.rtc != nil {
		m.rtc.Save(s)
	}
}
