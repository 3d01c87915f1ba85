package types

import "strings"

// Model is the hardware revision being emulated.
type Model int

const (
	Unset Model = iota // Unset - decided by the cartridge header
	DMG                // DMG - original Game Boy
	CGB                // CGB - Game Boy Color
)

var modelNames = map[Model]string{
	Unset: "Unset",
	DMG:   "DMG",
	CGB:   "CGB",
}

// StringToModel converts a string to a Model, returning
// Unset for anything it doesn't recognise.
func StringToModel(s string) Model {
	for m, n := range modelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return modelNames[m]
}

// ModelRegisters holds the CPU registers left behind by the
// boot ROM of each model, in the order A F B C D E H L.
var ModelRegisters = map[Model][8]uint8{
	DMG: {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	CGB: {0x11, 0x80, 0x00, 0x00, 0xFF, 0x56, 0x00, 0x0D},
}
