package cheats

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// GameGenie patches values read from the cartridge ROM.
type GameGenie struct {
	Codes []GameGenieCode
}

// A GameGenieCode consists of nine hex digits, formatted as
// ABC-DEF-GHI. AB is the new data, FCDE is the memory address XORed
// by 0xF000, GI is the old data XORed by 0xBA and rotated left by 2,
// and H is unused. The six digit form ABC-DEF has no old data, and
// patches the address whatever it holds.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	Compare bool // only patch when the ROM holds OldData

	Name    string
	Enabled bool
	rawCode string
}

func parseGameGenieCode(code string) (GameGenieCode, error) {
	var c GameGenieCode
	if len(code) != 7 && len(code) != 11 {
		return c, fmt.Errorf("%w: game genie code %q has length %d", ErrInvalidCode, code, len(code))
	}

	digits := strings.ReplaceAll(code, "-", "")
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return c, fmt.Errorf("%w: %q is not hex", ErrInvalidCode, code)
	}
	if len(digits) == 9 {
		// GHI
		c.Compare = true
		gi := uint8(v>>4)&0xF0 | uint8(v)&0x0F
		c.OldData = bits.RotateLeft8(gi, -2) ^ 0xBA
		v >>= 12
	}

	// ABCDEF
	c.NewData = uint8(v >> 16)
	c.Address = (uint16(v&0xF)<<12 | uint16(v>>4)&0x0FFF) ^ 0xF000
	if c.Address >= 0x8000 {
		return c, fmt.Errorf("%w: game genie address %04X is outside the ROM", ErrInvalidCode, c.Address)
	}
	c.rawCode = code

	return c, nil
}

// Load parses code and adds it to the GameGenie under name. Codes
// are disabled until enabled.
func (g *GameGenie) Load(code, name string) error {
	c, err := parseGameGenieCode(code)
	if err != nil {
		return err
	}
	c.Name = name
	g.Codes = append(g.Codes, c)

	return nil
}

// Read returns the value the ROM reads as at address, given that
// it holds value.
func (g *GameGenie) Read(address uint16, value uint8) uint8 {
	for _, c := range g.Codes {
		if c.Enabled && c.Address == address && (!c.Compare || c.OldData == value) {
			return c.NewData
		}
	}

	return value
}

// SetEnabled enables or disables every code loaded under name.
func (g *GameGenie) SetEnabled(name string, enabled bool) bool {
	found := false
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
			found = true
		}
	}
	return found
}
