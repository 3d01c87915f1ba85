package cpu

import "fmt"

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition evaluates the cc field of a conditional jump.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}

// jumpAbsolute jumps to address, taking an extra cycle to load PC.
//
//	JP nn
func (c *CPU) jumpAbsolute(address uint16) {
	c.PC = address
	c.tickCycle()
}

// jumpRelative adds the signed offset to PC.
//
//	JR e
//	e = 8-bit signed value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC = uint16(int32(c.PC) + int32(int8(offset)))
	c.tickCycle()
}

// call pushes the address of the next instruction onto the stack
// and jumps to address.
//
//	CALL nn
func (c *CPU) call(address uint16) {
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = address
}

// ret pops the return address from the stack into PC.
//
//	RET
func (c *CPU) ret() {
	high, low := c.pop()
	c.PC = uint16(high)<<8 | uint16(low)
	c.tickCycle()
}

func init() {
	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.jumpAbsolute(c.readOperand16())
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0x18, "JR e8", func(c *CPU) {
		c.jumpRelative(c.readOperand())
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		c.call(c.readOperand16())
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.irq.IME = true
	})

	// the operands are always read, the branch itself only costs
	// cycles when taken
	for i := uint8(0); i < 4; i++ {
		cc := i
		DefineInstruction(0xC2+cc<<3, "JP "+conditionNames[cc]+", a16", func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.jumpAbsolute(address)
			}
		})
		DefineInstruction(0x20+cc<<3, "JR "+conditionNames[cc]+", e8", func(c *CPU) {
			offset := c.readOperand()
			if c.condition(cc) {
				c.jumpRelative(offset)
			}
		})
		DefineInstruction(0xC4+cc<<3, "CALL "+conditionNames[cc]+", a16", func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.call(address)
			}
		})
		DefineInstruction(0xC0+cc<<3, "RET "+conditionNames[cc], func(c *CPU) {
			c.tickCycle()
			if c.condition(cc) {
				c.ret()
			}
		})
	}

	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) << 3
		DefineInstruction(0xC7+i<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.call(vector)
		})
	}
}
