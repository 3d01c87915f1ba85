// Package cartridge provides the game cartridge: the parsed
// header, the ROM image and the memory bank controller that
// maps it, and any external RAM, into the address space.
package cartridge

import (
	"errors"
	"fmt"
)

var (
	// ErrROMTooSmall is returned when the ROM is too small
	// to contain a cartridge header.
	ErrROMTooSmall = errors.New("cartridge: rom too small to contain a header")
	// ErrInvalidROMSize is returned when the ROM size byte
	// of the header isn't one of the known values.
	ErrInvalidROMSize = errors.New("cartridge: invalid rom size in header")
	// ErrROMSizeMismatch is returned when the length of the
	// ROM doesn't match the bank count declared in the header.
	ErrROMSizeMismatch = errors.New("cartridge: rom length does not match header")
	// ErrUnsupportedMapper is returned when the cartridge
	// type byte names hardware that isn't emulated.
	ErrUnsupportedMapper = errors.New("cartridge: unsupported cartridge type")
	// ErrNoBattery is returned when saving or loading the
	// RAM of a cartridge without battery backup.
	ErrNoBattery = errors.New("cartridge: cartridge has no battery")
	// ErrSaveSize is returned when a save doesn't match the
	// size of the cartridge RAM.
	ErrSaveSize = errors.New("cartridge: save size does not match cartridge")
)

// Cartridge is a game cartridge. The header and ROM never
// change once the cartridge has been created, all of the
// mutable state lives in the MemoryBankController.
type Cartridge struct {
	*Header
	MemoryBankController

	rom   []byte
	clock interface{ Tick(uint8) }
}

// New parses the header of rom and creates a cartridge with
// the memory bank controller it describes. No cartridge is
// returned if the ROM is malformed or the controller isn't
// supported.
func New(rom []byte) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	if len(rom) != header.ROMSize() {
		return nil, fmt.Errorf("%w: expected %d bytes (%d banks), got %d", ErrROMSizeMismatch, header.ROMSize(), header.ROMBanks, len(rom))
	}

	var mbc MemoryBankController
	switch header.CartridgeType.Kind() {
	case KindNone:
		mbc = NewROM(rom, header)
	case KindMBC1:
		mbc = NewMemoryBankedCartridge1(rom, header)
	case KindMBC2:
		mbc = NewMemoryBankedCartridge2(rom, header)
	case KindMBC3:
		mbc = NewMemoryBankedCartridge3(rom, header)
	case KindMBC5:
		mbc = NewMemoryBankedCartridge5(rom, header)
	default:
		return nil, fmt.Errorf("%w: %s (0x%02X)", ErrUnsupportedMapper, header.CartridgeType, uint8(header.CartridgeType))
	}

	c := &Cartridge{
		Header:               header,
		MemoryBankController: mbc,
		rom:                  rom,
	}
	if m3, ok := mbc.(*MemoryBankedCartridge3); ok && m3.rtc != nil {
		c.clock = m3
	}
	return c, nil
}

// Tick advances any clocked hardware on the cartridge.
func (c *Cartridge) Tick(cycles uint8) {
	if c.clock != nil {
		c.clock.Tick(cycles)
	}
}

// ROM returns the raw ROM image.
func (c *Cartridge) ROM() []byte {
	return c.rom
}

// SaveRAM returns a copy of the battery backed RAM, in the
// layout written to save files.
func (c *Cartridge) SaveRAM() ([]byte, error) {
	if !c.CartridgeType.Battery() {
		return nil, ErrNoBattery
	}
	return c.MemoryBankController.SaveRAM(), nil
}

// LoadRAM restores the battery backed RAM from a save. A
// save of the wrong size leaves the RAM untouched.
func (c *Cartridge) LoadRAM(data []byte) error {
	if !c.CartridgeType.Battery() {
		return ErrNoBattery
	}
	return c.MemoryBankController.LoadRAM(data)
}

// String implements the fmt.Stringer interface.
func (c *Cartridge) String() string {
	return c.Header.String()
}
