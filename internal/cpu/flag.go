package cpu

import "github.com/thelolagemann/gbcore/pkg/utils"

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flag = 7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = 6
	// FlagHalfCarry is set on a carry out of bit 3 (or bit 11).
	FlagHalfCarry Flag = 5
	// FlagCarry is set on a carry out of bit 7 (or bit 15).
	FlagCarry Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = utils.ClearBit(c.F, flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = utils.SetBit(c.F, flag)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return utils.TestBit(c.F, flag)
}

// shouldZeroFlag sets the zero flag if value is 0, and clears it
// otherwise.
func (c *CPU) shouldZeroFlag(value uint8) {
	if value == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}

// setFlags replaces all 4 flags at once. The lower nibble of F
// always reads 0.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.F |= 1 << FlagZero
	}
	if subtract {
		c.F |= 1 << FlagSubtract
	}
	if halfCarry {
		c.F |= 1 << FlagHalfCarry
	}
	if carry {
		c.F |= 1 << FlagCarry
	}
}
