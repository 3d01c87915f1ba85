package cpu

// Instruction is a single entry of a dispatch table.
type Instruction struct {
	name string
	fn   func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Defined reports whether the instruction is part of the
// instruction set.
func (i Instruction) Defined() bool {
	return i.fn != nil
}

// InstructionSet holds the unprefixed instructions, indexed by opcode.
// Opcodes with no instruction have a nil Instruction, and lock the
// CPU when executed.
var InstructionSet [256]Instruction

// InstructionSetCB holds the instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet,
// with the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name: name,
		fn:   fn,
	}
}

// IllegalOpcodes lists the opcodes that are not part of the
// instruction set.
var IllegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	// no speed switch or low power mode, the padding byte is skipped
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.readOperand()
	})
	DefineInstruction(0x27, "DAA", func(c *CPU) {
		c.decimalAdjust()
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.irq.IME && c.irq.HasInterrupts() {
			c.mode = ModeHaltBug
		} else {
			c.mode = ModeHalt
		}
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.irq.IME = false
		c.imeScheduled = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.imeScheduled = true
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {
		InstructionSetCB[c.readOperand()].fn(c)
	})
}

// decimalAdjust corrects A into binary coded decimal after an
// addition or subtraction.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) decimalAdjust() {
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || c.A > 0x99 {
			c.A += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if carry {
			c.A -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	}
	c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, carry)
}
