package cpu

// increment the given value and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 0x01
	c.setFlags(incremented == 0, false, value&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement the given value and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 0x01
	c.setFlags(decremented == 0, true, value&0xF == 0x0, c.isFlagSet(FlagCarry))
	return decremented
}

// add n (+ carry flag with useCarry) to a, and return the result.
//
//	ADD A, n
//	ADC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(a, n uint8, useCarry bool) uint8 {
	carry := uint8(0)
	if useCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	result := uint16(a) + uint16(n) + uint16(carry)
	c.setFlags(uint8(result) == 0, false, (a&0xF)+(n&0xF)+carry > 0xF, result > 0xFF)
	return uint8(result)
}

// sub n (+ carry flag with useCarry) from a, and return the result.
//
//	SUB A, n
//	SBC A, n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(a, n uint8, useCarry bool) uint8 {
	carry := int16(0)
	if useCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	result := int16(a) - int16(n) - carry
	c.setFlags(uint8(result) == 0, true, int16(a&0xF)-int16(n&0xF)-carry < 0, result < 0)
	return uint8(result)
}

// addHL adds n to HL.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	result := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0xFFF)+(n&0xFFF) > 0xFFF, result > 0xFFFF)
	c.HL.SetUint16(uint16(result))
	c.tickCycle()
}

// addSPSigned returns SP plus the signed displacement e. The carry
// flags come from adding the unsigned low byte of SP and e,
// whatever the sign of e.
//
//	ADD SP, e
//	LD HL, SP+e
//	e = 8-bit signed value
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	result := uint16(int32(c.SP) + int32(int8(e)))
	tmp := c.SP ^ uint16(int8(e)) ^ result
	c.setFlags(false, false, tmp&0x10 != 0, tmp&0x100 != 0)
	return result
}

// push a 16-bit value onto the stack, high byte first.
//
//	PUSH nn
//	nn = 16-bit register
func (c *CPU) push(high, low uint8) {
	c.tickCycle()
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop a 16-bit value from the stack.
//
//	POP nn
//	nn = 16-bit register
func (c *CPU) pop() (high, low uint8) {
	low = c.readByte(c.SP)
	c.SP++
	high = c.readByte(c.SP)
	c.SP++
	return high, low
}

func init() {
	for i := registerIndex(0); i < 8; i++ {
		index := i
		DefineInstruction(0x04+index<<3, "INC "+registerNames[index], func(c *CPU) {
			c.writeIndex(index, c.increment(c.readIndex(index)))
		})
		DefineInstruction(0x05+index<<3, "DEC "+registerNames[index], func(c *CPU) {
			c.writeIndex(index, c.decrement(c.readIndex(index)))
		})
		DefineInstruction(0x80+index, "ADD A, "+registerNames[index], func(c *CPU) {
			c.A = c.add(c.A, c.readIndex(index), false)
		})
		DefineInstruction(0x88+index, "ADC A, "+registerNames[index], func(c *CPU) {
			c.A = c.add(c.A, c.readIndex(index), true)
		})
		DefineInstruction(0x90+index, "SUB "+registerNames[index], func(c *CPU) {
			c.A = c.sub(c.A, c.readIndex(index), false)
		})
		DefineInstruction(0x98+index, "SBC A, "+registerNames[index], func(c *CPU) {
			c.A = c.sub(c.A, c.readIndex(index), true)
		})
	}
	DefineInstruction(0xC6, "ADD A, d8", func(c *CPU) {
		c.A = c.add(c.A, c.readOperand(), false)
	})
	DefineInstruction(0xCE, "ADC A, d8", func(c *CPU) {
		c.A = c.add(c.A, c.readOperand(), true)
	})
	DefineInstruction(0xD6, "SUB d8", func(c *CPU) {
		c.A = c.sub(c.A, c.readOperand(), false)
	})
	DefineInstruction(0xDE, "SBC A, d8", func(c *CPU) {
		c.A = c.sub(c.A, c.readOperand(), true)
	})

	for p := uint8(0); p < 4; p++ {
		pair := p
		DefineInstruction(0x03+pair<<4, "INC "+pairNames[pair], func(c *CPU) {
			c.setPairOrSP(pair, c.pairOrSP(pair)+1)
			c.tickCycle()
		})
		DefineInstruction(0x0B+pair<<4, "DEC "+pairNames[pair], func(c *CPU) {
			c.setPairOrSP(pair, c.pairOrSP(pair)-1)
			c.tickCycle()
		})
		DefineInstruction(0x09+pair<<4, "ADD HL, "+pairNames[pair], func(c *CPU) {
			c.addHL(c.pairOrSP(pair))
		})

		name := pairNames[pair]
		if pair == 3 {
			name = "AF"
		}
		DefineInstruction(0xC5+pair<<4, "PUSH "+name, func(c *CPU) {
			rp := c.registerPair(pair)
			c.push(*rp.High, *rp.Low)
		})
		DefineInstruction(0xC1+pair<<4, "POP "+name, func(c *CPU) {
			high, low := c.pop()
			c.registerPair(pair).SetUint16(uint16(high)<<8 | uint16(low))
			if pair == 3 {
				c.F &= 0xF0
			}
		})
	}

	DefineInstruction(0xE8, "ADD SP, e8", func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
		c.tickCycle()
		c.tickCycle()
	})
}

// pairOrSP reads the 16-bit register addressed by the rr field
// of an opcode, where 3 addresses SP.
func (c *CPU) pairOrSP(index uint8) uint16 {
	if index == 3 {
		return c.SP
	}
	return c.registerPair(index).Uint16()
}

func (c *CPU) setPairOrSP(index uint8, value uint16) {
	if index == 3 {
		c.SP = value
		return
	}
	c.registerPair(index).SetUint16(value)
}
