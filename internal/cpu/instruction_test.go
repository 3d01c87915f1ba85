package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// execute loads program at 0x0100 and runs a single instruction.
func execute(c *CPU, bus *testBus, program ...uint8) uint8 {
	copy(bus[0x0100:], program)
	c.PC = 0x0100
	return c.Step()
}

func flags(z, n, h, carry bool) uint8 {
	f := uint8(0)
	for i, set := range []bool{carry, h, n, z} {
		if set {
			f |= 1 << (4 + i)
		}
	}
	return f
}

func TestInstruction_Arithmetic8(t *testing.T) {
	c, bus := newTestCPU()
	for _, useCarry := range []bool{false, true} {
		for a := 0; a < 256; a++ {
			for b := 0; b < 256; b++ {
				carryIn := 0
				if useCarry {
					carryIn = 1
				}

				// ADD A, B / ADC A, B
				c.A, c.B, c.F = uint8(a), uint8(b), 0
				if useCarry {
					c.F = 1 << FlagCarry
				}
				opcode := uint8(0x80)
				if useCarry {
					opcode = 0x88
				}
				execute(c, bus, opcode)

				sum := a + b + carryIn
				if c.A != uint8(sum) || c.F != flags(uint8(sum) == 0, false, a&0xF+b&0xF+carryIn > 0xF, sum > 0xFF) {
					t.Fatalf("ADD/ADC %02X + %02X (carry %d): got A=%02X F=%02X", a, b, carryIn, c.A, c.F)
				}

				// SUB B / SBC A, B
				c.A, c.B, c.F = uint8(a), uint8(b), 0
				if useCarry {
					c.F = 1 << FlagCarry
				}
				execute(c, bus, opcode+0x10)

				diff := a - b - carryIn
				if c.A != uint8(diff) || c.F != flags(uint8(diff) == 0, true, a&0xF-b&0xF-carryIn < 0, diff < 0) {
					t.Fatalf("SUB/SBC %02X - %02X (carry %d): got A=%02X F=%02X", a, b, carryIn, c.A, c.F)
				}
			}
		}
	}
}

func TestInstruction_Compare(t *testing.T) {
	c, bus := newTestCPU()
	c.A, c.B = 0x3C, 0x2F
	execute(c, bus, 0xB8)
	assert.Equal(t, uint8(0x3C), c.A)
	assert.Equal(t, flags(false, true, true, false), c.F)

	execute(c, bus, 0xFE, 0x3C)
	assert.Equal(t, flags(true, true, false, false), c.F)

	execute(c, bus, 0xFE, 0x40)
	assert.Equal(t, flags(false, true, false, true), c.F)
}

func TestInstruction_Logic(t *testing.T) {
	tests := []struct {
		name     string
		program  []uint8
		a, b     uint8
		expected uint8
		f        uint8
	}{
		{"AND B", []uint8{0xA0}, 0x5A, 0x3F, 0x1A, flags(false, false, true, false)},
		{"AND d8 zero", []uint8{0xE6, 0x0F}, 0xF0, 0, 0x00, flags(true, false, true, false)},
		{"XOR A", []uint8{0xAF}, 0xFF, 0, 0x00, flags(true, false, false, false)},
		{"XOR d8", []uint8{0xEE, 0x0F}, 0xFF, 0, 0xF0, 0},
		{"OR B", []uint8{0xB0}, 0x5A, 0x0F, 0x5F, 0},
		{"OR d8 zero", []uint8{0xF6, 0x00}, 0x00, 0, 0x00, flags(true, false, false, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestCPU()
			c.A, c.B, c.F = tt.a, tt.b, 0xF0
			execute(c, bus, tt.program...)
			assert.Equal(t, tt.expected, c.A)
			assert.Equal(t, tt.f, c.F)
		})
	}
}

func TestInstruction_IncrementDecrement(t *testing.T) {
	c, bus := newTestCPU()

	c.B, c.F = 0xFF, 1<<FlagCarry
	execute(c, bus, 0x04) // INC B
	assert.Equal(t, uint8(0x00), c.B)
	assert.Equal(t, flags(true, false, true, true), c.F)

	c.C, c.F = 0x10, 0
	execute(c, bus, 0x0D) // DEC C
	assert.Equal(t, uint8(0x0F), c.C)
	assert.Equal(t, flags(false, true, true, false), c.F)

	c.D, c.F = 0x01, 0
	execute(c, bus, 0x15) // DEC D
	assert.Equal(t, flags(true, true, false, false), c.F)

	c.HL.SetUint16(0xC000)
	bus[0xC000] = 0x0F
	assert.Equal(t, uint8(12), execute(c, bus, 0x34)) // INC (HL)
	assert.Equal(t, uint8(0x10), bus[0xC000])

	c.BC.SetUint16(0xFFFF)
	c.F = 0
	execute(c, bus, 0x03) // INC BC
	assert.Equal(t, uint16(0x0000), c.BC.Uint16())
	assert.Equal(t, uint8(0), c.F)

	c.SP = 0x0000
	execute(c, bus, 0x3B) // DEC SP
	assert.Equal(t, uint16(0xFFFF), c.SP)
}

func TestInstruction_AddHL(t *testing.T) {
	c, bus := newTestCPU()

	c.HL.SetUint16(0x0FFF)
	c.BC.SetUint16(0x0001)
	c.F = 1 << FlagZero
	execute(c, bus, 0x09)
	assert.Equal(t, uint16(0x1000), c.HL.Uint16())
	assert.Equal(t, flags(true, false, true, false), c.F)

	c.HL.SetUint16(0xFFFF)
	c.SP = 0x0001
	c.F = 0
	execute(c, bus, 0x39)
	assert.Equal(t, uint16(0x0000), c.HL.Uint16())
	assert.Equal(t, flags(false, false, true, true), c.F)

	c.HL.SetUint16(0x8000)
	execute(c, bus, 0x29)
	assert.Equal(t, uint16(0x0000), c.HL.Uint16())
	assert.Equal(t, flags(false, false, false, true), c.F)
}

func TestInstruction_AddSPSigned(t *testing.T) {
	tests := []struct {
		sp       uint16
		e        uint8
		expected uint16
		h, c     bool
	}{
		{0x00FF, 0x01, 0x0100, true, true},
		{0x0001, 0xFF, 0x0000, true, true},
		{0xFFF8, 0x08, 0x0000, true, true},
		{0x1000, 0x80, 0x0F80, false, false},
		{0x100F, 0x01, 0x1010, true, false},
		{0x10F0, 0x10, 0x1100, false, true},
		{0x0000, 0xFF, 0xFFFF, false, false},
	}
	for _, tt := range tests {
		c, bus := newTestCPU()

		c.SP, c.F = tt.sp, 0xF0
		assert.Equal(t, uint8(16), execute(c, bus, 0xE8, tt.e))
		assert.Equal(t, tt.expected, c.SP, "ADD SP, %02X from %04X", tt.e, tt.sp)
		assert.Equal(t, flags(false, false, tt.h, tt.c), c.F, "ADD SP, %02X from %04X", tt.e, tt.sp)

		c.SP, c.F = tt.sp, 0xF0
		assert.Equal(t, uint8(12), execute(c, bus, 0xF8, tt.e))
		assert.Equal(t, tt.expected, c.HL.Uint16(), "LD HL, SP+%02X from %04X", tt.e, tt.sp)
		assert.Equal(t, tt.sp, c.SP)
		assert.Equal(t, flags(false, false, tt.h, tt.c), c.F, "LD HL, SP+%02X from %04X", tt.e, tt.sp)
	}
}

func toBCD(n int) uint8 {
	return uint8(n/10<<4 | n%10)
}

func TestInstruction_DAA(t *testing.T) {
	c, bus := newTestCPU()
	for a := 0; a < 100; a++ {
		for b := 0; b < 100; b++ {
			// ADD A, B then DAA
			c.A, c.B, c.F = toBCD(a), toBCD(b), 0
			execute(c, bus, 0x80)
			execute(c, bus, 0x27)
			sum := a + b
			if c.A != toBCD(sum%100) || c.isFlagSet(FlagCarry) != (sum >= 100) || c.isFlagSet(FlagZero) != (sum%100 == 0) {
				t.Fatalf("%d + %d: got A=%02X F=%02X", a, b, c.A, c.F)
			}
			if c.isFlagSet(FlagHalfCarry) {
				t.Fatalf("%d + %d: half carry not reset", a, b)
			}

			// SUB B then DAA
			c.A, c.B, c.F = toBCD(a), toBCD(b), 0
			execute(c, bus, 0x90)
			execute(c, bus, 0x27)
			diff := a - b
			if diff < 0 {
				diff += 100
			}
			if c.A != toBCD(diff) || c.isFlagSet(FlagCarry) != (a < b) || !c.isFlagSet(FlagSubtract) {
				t.Fatalf("%d - %d: got A=%02X F=%02X", a, b, c.A, c.F)
			}
		}
	}
}

func TestInstruction_Misc(t *testing.T) {
	c, bus := newTestCPU()

	c.A, c.F = 0x35, flags(true, false, false, true)
	execute(c, bus, 0x2F) // CPL
	assert.Equal(t, uint8(0xCA), c.A)
	assert.Equal(t, flags(true, true, true, true), c.F)

	c.F = flags(false, true, true, false)
	execute(c, bus, 0x37) // SCF
	assert.Equal(t, flags(false, false, false, true), c.F)

	execute(c, bus, 0x3F) // CCF
	assert.Equal(t, flags(false, false, false, false), c.F)
	execute(c, bus, 0x3F)
	assert.Equal(t, flags(false, false, false, true), c.F)
}

func TestInstruction_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		program  []uint8
		value    uint8
		carryIn  bool
		expected uint8
		f        uint8
	}{
		{"RLCA", []uint8{0x07}, 0x80, false, 0x01, flags(false, false, false, true)},
		{"RRCA", []uint8{0x0F}, 0x01, false, 0x80, flags(false, false, false, true)},
		{"RLA", []uint8{0x17}, 0x80, false, 0x00, flags(false, false, false, true)},
		{"RRA", []uint8{0x1F}, 0x00, true, 0x80, 0},
		{"RLC A", []uint8{0xCB, 0x07}, 0x00, false, 0x00, flags(true, false, false, false)},
		{"RRC A", []uint8{0xCB, 0x0F}, 0x03, false, 0x81, flags(false, false, false, true)},
		{"RL A", []uint8{0xCB, 0x17}, 0x80, false, 0x00, flags(true, false, false, true)},
		{"RR A", []uint8{0xCB, 0x1F}, 0x02, true, 0x81, 0},
		{"SLA A", []uint8{0xCB, 0x27}, 0xC1, false, 0x82, flags(false, false, false, true)},
		{"SRA A", []uint8{0xCB, 0x2F}, 0x81, false, 0xC0, flags(false, false, false, true)},
		{"SWAP A", []uint8{0xCB, 0x37}, 0xF1, true, 0x1F, 0},
		{"SRL A", []uint8{0xCB, 0x3F}, 0x01, false, 0x00, flags(true, false, false, true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, bus := newTestCPU()
			c.A, c.F = tt.value, 0
			if tt.carryIn {
				c.F = 1 << FlagCarry
			}
			execute(c, bus, tt.program...)
			assert.Equal(t, tt.expected, c.A)
			assert.Equal(t, tt.f, c.F)
		})
	}
}

func TestInstruction_Bit(t *testing.T) {
	c, bus := newTestCPU()

	c.H, c.F = 0x80, 1<<FlagCarry
	execute(c, bus, 0xCB, 0x7C) // BIT 7, H
	assert.Equal(t, flags(false, false, true, true), c.F)
	execute(c, bus, 0xCB, 0x74) // BIT 6, H
	assert.Equal(t, flags(true, false, true, true), c.F)

	c.HL.SetUint16(0xC000)
	bus[0xC000] = 0xFF
	assert.Equal(t, uint8(16), execute(c, bus, 0xCB, 0x86)) // RES 0, (HL)
	assert.Equal(t, uint8(0xFE), bus[0xC000])
	execute(c, bus, 0xCB, 0xFE) // SET 7, (HL)
	assert.Equal(t, uint8(0xFE), bus[0xC000])
	bus[0xC000] = 0
	execute(c, bus, 0xCB, 0xDE) // SET 3, (HL)
	assert.Equal(t, uint8(0x08), bus[0xC000])
	execute(c, bus, 0xCB, 0xF8) // SET 7, B
	assert.Equal(t, uint8(0x80), c.B)
}

func TestInstruction_Load(t *testing.T) {
	c, bus := newTestCPU()

	execute(c, bus, 0x21, 0x00, 0xC0) // LD HL, d16
	assert.Equal(t, uint16(0xC000), c.HL.Uint16())

	c.A = 0x42
	execute(c, bus, 0x22) // LD (HL+), A
	assert.Equal(t, uint8(0x42), bus[0xC000])
	assert.Equal(t, uint16(0xC001), c.HL.Uint16())

	bus[0xC001] = 0x24
	execute(c, bus, 0x3A) // LD A, (HL-)
	assert.Equal(t, uint8(0x24), c.A)
	assert.Equal(t, uint16(0xC000), c.HL.Uint16())

	execute(c, bus, 0x46) // LD B, (HL)
	assert.Equal(t, uint8(0x42), c.B)

	execute(c, bus, 0x36, 0x99) // LD (HL), d8
	assert.Equal(t, uint8(0x99), bus[0xC000])

	execute(c, bus, 0x78) // LD A, B
	assert.Equal(t, uint8(0x42), c.A)

	execute(c, bus, 0xE0, 0x80) // LDH (a8), A
	assert.Equal(t, uint8(0x42), bus[0xFF80])

	c.C = 0x81
	bus[0xFF81] = 0x17
	execute(c, bus, 0xF2) // LD A, (C)
	assert.Equal(t, uint8(0x17), c.A)

	execute(c, bus, 0xEA, 0x00, 0xD0) // LD (a16), A
	assert.Equal(t, uint8(0x17), bus[0xD000])

	c.SP = 0xBEEF
	execute(c, bus, 0x08, 0x10, 0xD0) // LD (a16), SP
	assert.Equal(t, uint8(0xEF), bus[0xD010])
	assert.Equal(t, uint8(0xBE), bus[0xD011])

	execute(c, bus, 0xF9) // LD SP, HL
	assert.Equal(t, uint16(0xC000), c.SP)
}

func TestInstruction_Stack(t *testing.T) {
	c, bus := newTestCPU()
	c.SP = 0xFFFE

	c.BC.SetUint16(0x12FF)
	execute(c, bus, 0xC5) // PUSH BC
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, uint8(0x12), bus[0xFFFD])
	assert.Equal(t, uint8(0xFF), bus[0xFFFC])

	execute(c, bus, 0xF1) // POP AF
	assert.Equal(t, uint16(0x12F0), c.AF.Uint16())
	assert.Equal(t, uint16(0xFFFE), c.SP)

	c.SP = 0xFFFC
	execute(c, bus, 0xD1) // POP DE
	assert.Equal(t, uint16(0x12FF), c.DE.Uint16())
}

func TestInstruction_Jump(t *testing.T) {
	c, bus := newTestCPU()

	execute(c, bus, 0x18, 0xFE) // JR -2
	assert.Equal(t, uint16(0x0100), c.PC)

	execute(c, bus, 0xC3, 0x50, 0x01) // JP a16
	assert.Equal(t, uint16(0x0150), c.PC)

	c.HL.SetUint16(0x4000)
	execute(c, bus, 0xE9) // JP HL
	assert.Equal(t, uint16(0x4000), c.PC)

	c.SP = 0xFFFE
	execute(c, bus, 0xCD, 0x00, 0x20) // CALL a16
	assert.Equal(t, uint16(0x2000), c.PC)
	assert.Equal(t, uint16(0xFFFC), c.SP)

	bus[0x2000] = 0xC9 // RET
	c.Step()
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, uint16(0xFFFE), c.SP)

	execute(c, bus, 0xFF) // RST 38H
	assert.Equal(t, uint16(0x0038), c.PC)
	assert.Equal(t, uint8(0x01), bus[0xFFFD])
	assert.Equal(t, uint8(0x01), bus[0xFFFC])

	c.F = 1 << FlagZero
	execute(c, bus, 0x20, 0x10) // JR NZ, not taken
	assert.Equal(t, uint16(0x0102), c.PC)
	execute(c, bus, 0x28, 0x10) // JR Z, taken
	assert.Equal(t, uint16(0x0112), c.PC)
}
