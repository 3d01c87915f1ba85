// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and handles all the memory
// reads and writes via the IOBus interface.
package mmu

import (
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the other
// components.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Video is the component that owns VRAM and OAM. Its registers
// are reached through IOBus once mapped with MMU.Map.
type Video interface {
	IOBus
	ReadVRAM(address uint16) uint8
	WriteVRAM(address uint16, value uint8)
	ReadOAM(address uint16) uint8
	WriteOAM(address uint16, value uint8)
}

// unmapped is the IOBus of every I/O register nothing has been
// mapped to.
type unmapped struct{}

func (unmapped) Read(uint16) uint8   { return 0xFF }
func (unmapped) Write(uint16, uint8) {}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
type MMU struct {
	// 0x0000 - 0x00FF/0x0900 - BOOT ROM (256B/2304B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (16kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart *cartridge.Cartridge
	// Genie patches reads from the cartridge ROM, if set
	Genie *cheats.GameGenie

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	Video Video

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - 0xFF7F - I/O Registers
	io [0x80]IOBus

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM [0x7F]uint8

	// 0xFFFF - interrupt enable register
	irq *interrupts.Service

	Log log.Logger

	HDMA *HDMA

	dma   uint8
	key1  uint8
	isGBC bool
}

// NewMMU returns a new MMU, starting in DMG mode.
func NewMMU(cart *cartridge.Cartridge, video Video, irq *interrupts.Service) *MMU {
	m := &MMU{
		Cart:        cart,
		Video:       video,
		wRAM:        NewWRAM(),
		irq:         irq,
		Log:         log.NewNullLogger(),
		bootROMDone: true,
	}
	m.HDMA = NewHDMA(m, video)

	for i := range m.io {
		m.io[i] = unmapped{}
	}
	m.Map(irq, types.IF)

	return m
}

// Map routes the given I/O registers to bus.
func (m *MMU) Map(bus IOBus, addresses ...uint16) {
	for _, address := range addresses {
		m.io[address&0x7F] = bus
	}
}

// MapRange routes every I/O register in [start, end] to bus.
func (m *MMU) MapRange(bus IOBus, start, end uint16) {
	for address := start; address <= end; address++ {
		m.io[address&0x7F] = bus
	}
}

// SetBootROM maps rom over the cartridge until it is disabled
// through types.BDIS. A nil rom unmaps the boot ROM.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = rom == nil
}

// BootROMDone reports whether the boot ROM has been unmapped.
func (m *MMU) BootROMDone() bool {
	return m.bootROMDone
}

// SetModel enables or disables the CGB registers.
func (m *MMU) SetModel(model types.Model) {
	m.isGBC = model == types.CGB
	m.Log.Debugf("mmu: running in %s mode", model)
}

// IsGBC reports whether the CGB registers are enabled.
func (m *MMU) IsGBC() bool {
	return m.isGBC
}

// Key returns the value of KEY1.
func (m *MMU) Key() uint8 {
	return m.key1
}

// Reset clears the RAM owned by the MMU, and maps the boot ROM
// back in if there is one.
func (m *MMU) Reset() {
	m.wRAM = NewWRAM()
	m.zRAM = [0x7F]uint8{}
	m.HDMA = NewHDMA(m, m.Video)
	m.bootROMDone = m.bootROM == nil
	m.dma, m.key1 = 0, 0
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if !m.bootROMDone && m.bootROM.Contains(address) {
		return m.bootROM.Read(address)
	}

	if m.Cart == nil {
		return 0xFF
	}
	if m.Genie != nil {
		return m.Genie.Read(address, m.Cart.Read(address))
	}
	return m.Cart.Read(address)
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.readCart(address)
	case address < 0xA000:
		return m.Video.ReadVRAM(address)
	case address < 0xC000:
		if m.Cart == nil {
			return 0xFF
		}
		return m.Cart.Read(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.Video.ReadOAM(address)
	case address < 0xFF00:
		// unusable memory
		return 0xFF
	case address < 0xFF80:
		return m.readIO(address)
	case address < 0xFFFF:
		return m.zRAM[address-0xFF80]
	default:
		return m.irq.Enable
	}
}

// Write sets the value at the given address.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		if m.Cart != nil {
			m.Cart.Write(address, value)
		}
	case address < 0xA000:
		m.Video.WriteVRAM(address, value)
	case address < 0xC000:
		if m.Cart != nil {
			m.Cart.Write(address, value)
		}
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.Video.WriteOAM(address, value)
	case address < 0xFF00:
		// unusable memory
	case address < 0xFF80:
		m.writeIO(address, value)
	case address < 0xFFFF:
		m.zRAM[address-0xFF80] = value
	default:
		m.irq.Enable = value
	}
}

func (m *MMU) readIO(address uint16) uint8 {
	switch address {
	case types.DMA:
		return m.dma
	case types.BDIS:
		return 0xFF
	}

	if m.isGBC {
		switch address {
		case types.KEY1:
			return m.key1 | 0x7E
		case types.SVBK:
			return m.wRAM.Bank() | 0xF8
		case types.HDMA1, types.HDMA2, types.HDMA3, types.HDMA4, types.HDMA5:
			return m.HDMA.Read(address)
		}
	}

	return m.io[address&0x7F].Read(address)
}

func (m *MMU) writeIO(address uint16, value uint8) {
	switch address {
	case types.DMA:
		m.dma = value
		m.oamDMA(uint16(value) << 8)
		return
	case types.BDIS:
		// it's assumed any write to this register will disable the boot rom
		if !m.bootROMDone {
			m.Log.Debugf("mmu: boot rom disabled")
		}
		m.bootROMDone = true
		return
	}

	if m.isGBC {
		switch address {
		case types.KEY1:
			m.key1 = value & types.Bit0 // only the lower bit is writable
			return
		case types.SVBK:
			m.wRAM.SetBank(value)
			return
		case types.HDMA1, types.HDMA2, types.HDMA3, types.HDMA4, types.HDMA5:
			m.HDMA.Write(address, value)
			return
		}
	}

	m.io[address&0x7F].Write(address, value)
}

// oamDMA copies 160 bytes from source to OAM.
func (m *MMU) oamDMA(source uint16) {
	// sources past 0xDF00 are read from the echo
	if source >= 0xE000 {
		source -= 0x2000
	}
	for i := uint16(0); i < 160; i++ {
		m.Video.WriteOAM(0xFE00+i, m.Read(source+i))
	}
}

// Load restores the MMU from s.
func (m *MMU) Load(s *types.State) {
	m.wRAM.Load(s)
	s.ReadData(m.zRAM[:])
	m.HDMA.Load(s)
	m.bootROMDone = s.ReadBool()
	m.dma = s.Read8()
	m.key1 = s.Read8()
	m.isGBC = s.ReadBool()
}

// Save writes the MMU to s.
func (m *MMU) Save(s *types.State) {
	m.wRAM.Save(s)
	s.WriteData(m.zRAM[:])
	m.HDMA.Save(s)
	s.WriteBool(m.bootROMDone)
	s.Write8(m.dma)
	s.Write8(m.key1)
	s.WriteBool(m.isGBC)
}

var _ types.Stater = (*MMU)(nil)
