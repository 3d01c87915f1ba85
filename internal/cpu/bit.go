package cpu

import "github.com/thelolagemann/gbcore/pkg/utils"

// testBit tests bit b in n.
//
//	BIT b, n
//	b = 0 - 7, n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b, n uint8) {
	c.setFlags(!utils.TestBit(n, b), false, true, c.isFlagSet(FlagCarry))
}
