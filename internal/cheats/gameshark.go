package cheats

import (
	"fmt"
	"strconv"
)

// Bus is the memory a GameShark writes its codes to.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// svbk is the CGB WRAM bank register.
const svbk = 0xFF70

// GameShark writes fixed values to RAM once per frame.
type GameShark struct {
	Codes []GameSharkCode
}

// A GameSharkCode consists of eight hex digits, formatted as
// ABCDEFGH. AB is the RAM bank, CD is the new data, and GHEF is
// the memory address.
type GameSharkCode struct {
	Bank    uint8
	Address uint16
	NewData uint8

	Name    string
	Enabled bool
	rawCode string
}

func parseGameSharkCode(code string) (GameSharkCode, error) {
	var c GameSharkCode
	if len(code) != 8 {
		return c, fmt.Errorf("%w: gameshark code %q has length %d", ErrInvalidCode, code, len(code))
	}

	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return c, fmt.Errorf("%w: %q is not hex", ErrInvalidCode, code)
	}
	c.Bank = uint8(v >> 24)
	c.NewData = uint8(v >> 16)
	// GHEF is little endian
	c.Address = uint16(v&0xFF)<<8 | uint16(v>>8)&0xFF
	c.rawCode = code

	switch {
	case c.Address >= 0xA000 && c.Address < 0xC000:
		return c, fmt.Errorf("%w: cartridge RAM patching (%s)", ErrUnsupportedCode, code)
	case c.Address < 0xC000 || c.Address >= 0xE000:
		return c, fmt.Errorf("%w: gameshark address %04X is outside WRAM", ErrInvalidCode, c.Address)
	}

	return c, nil
}

// Load parses code and adds it to the GameShark under name. Codes
// are disabled until enabled.
func (g *GameShark) Load(code, name string) error {
	c, err := parseGameSharkCode(code)
	if err != nil {
		return err
	}
	c.Name = name
	g.Codes = append(g.Codes, c)

	return nil
}

// Apply writes every enabled code to bus. In CGB mode codes for the
// switchable WRAM bank select their bank first, and the previous
// bank is restored afterwards.
func (g *GameShark) Apply(bus Bus, cgb bool) {
	for _, c := range g.Codes {
		if !c.Enabled {
			continue
		}

		if cgb && c.Address >= 0xD000 && c.Bank > 0 {
			bank := bus.Read(svbk)
			bus.Write(svbk, c.Bank&0x07)
			bus.Write(c.Address, c.NewData)
			bus.Write(svbk, bank)
			continue
		}
		bus.Write(c.Address, c.NewData)
	}
}

// SetEnabled enables or disables every code loaded under name.
func (g *GameShark) SetEnabled(name string, enabled bool) bool {
	found := false
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
			found = true
		}
	}
	return found
}
