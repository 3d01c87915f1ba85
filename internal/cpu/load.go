package cpu

// loadRegisterToRegister copies the operand at src to dst.
//
//	LD r, r'
//	r, r' = A, B, C, D, E, H, L, (HL)
//
// Flags affected: none.
func (c *CPU) loadRegisterToRegister(dst, src registerIndex) {
	c.writeIndex(dst, c.readIndex(src))
}

// generateLoadRegisterToRegisterInstructions defines 0x40 - 0x7F,
// apart from 0x76 which would be LD (HL), (HL) and is HALT instead.
func generateLoadRegisterToRegisterInstructions() {
	for d := registerIndex(0); d < 8; d++ {
		for s := registerIndex(0); s < 8; s++ {
			if d == indexHL && s == indexHL {
				continue
			}
			dst, src := d, s
			DefineInstruction(0x40+dst<<3+src, "LD "+registerNames[dst]+", "+registerNames[src], func(c *CPU) {
				c.loadRegisterToRegister(dst, src)
			})
		}
	}
}

func init() {
	generateLoadRegisterToRegisterInstructions()

	for i := registerIndex(0); i < 8; i++ {
		index := i
		DefineInstruction(0x06+index<<3, "LD "+registerNames[index]+", d8", func(c *CPU) {
			c.writeIndex(index, c.readOperand())
		})
	}
	for p := uint8(0); p < 4; p++ {
		pair := p
		DefineInstruction(0x01+pair<<4, "LD "+pairNames[pair]+", d16", func(c *CPU) {
			c.setPairOrSP(pair, c.readOperand16())
		})
	}

	// indirect loads through BC, DE and HL with post increment/decrement
	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	})

	// high page
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.readOperand()), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.readOperand()))
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.writeByte(0xFF00+uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.A = c.readByte(0xFF00 + uint16(c.C))
	})

	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.writeByte(c.readOperand16(), c.A)
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.A = c.readByte(c.readOperand16())
	})

	DefineInstruction(0xF8, "LD HL, SP+e8", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
		c.tickCycle()
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tickCycle()
	})
}
