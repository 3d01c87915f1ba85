package cpu

// and performs a bitwise AND of n with A.
//
//	AND n
//	n = A, B, C, D, E, H, L, (HL), d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR of n with A.
//
//	OR n
//	n = A, B, C, D, E, H, L, (HL), d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR of n with A.
//
//	XOR n
//	n = A, B, C, D, E, H, L, (HL), d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare A with n. This is a subtraction with the result
// thrown away.
//
//	CP n
//	n = A, B, C, D, E, H, L, (HL), d8
//
// Flags affected:
//
//	Z - Set if result is zero. (Set if A = n.)
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set for no borrow. (Set if A < n.)
func (c *CPU) compare(n uint8) {
	c.sub(c.A, n, false)
}

func init() {
	for i := registerIndex(0); i < 8; i++ {
		index := i
		DefineInstruction(0xA0+index, "AND "+registerNames[index], func(c *CPU) {
			c.and(c.readIndex(index))
		})
		DefineInstruction(0xA8+index, "XOR "+registerNames[index], func(c *CPU) {
			c.xor(c.readIndex(index))
		})
		DefineInstruction(0xB0+index, "OR "+registerNames[index], func(c *CPU) {
			c.or(c.readIndex(index))
		})
		DefineInstruction(0xB8+index, "CP "+registerNames[index], func(c *CPU) {
			c.compare(c.readIndex(index))
		})
	}
	DefineInstruction(0xE6, "AND d8", func(c *CPU) { c.and(c.readOperand()) })
	DefineInstruction(0xEE, "XOR d8", func(c *CPU) { c.xor(c.readOperand()) })
	DefineInstruction(0xF6, "OR d8", func(c *CPU) { c.or(c.readOperand()) })
	DefineInstruction(0xFE, "CP d8", func(c *CPU) { c.compare(c.readOperand()) })
}
