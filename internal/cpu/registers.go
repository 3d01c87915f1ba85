package cpu

// Register represents a single 8-bit register.
type Register = uint8

// RegisterPair joins two 8-bit registers into a single 16-bit
// register, with High holding the most significant byte.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as a uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the 8 8-bit registers of the CPU, and the
// 4 16-bit pairs formed from them.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// linkPairs wires the register pairs to the 8-bit registers. It must be
// called whenever the Registers are moved to a new location.
func (r *Registers) linkPairs() {
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
	r.AF = &RegisterPair{&r.A, &r.F}
}

// registerIndex is the operand encoding used by the register
// addressed opcodes, where index 6 addresses (HL).
type registerIndex = uint8

const (
	indexB registerIndex = iota
	indexC
	indexD
	indexE
	indexH
	indexL
	indexHL
	indexA
)

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// register returns a pointer to the register addressed by index.
// indexHL has no register and returns nil.
func (c *CPU) register(index registerIndex) *Register {
	switch index {
	case indexB:
		return &c.B
	case indexC:
		return &c.C
	case indexD:
		return &c.D
	case indexE:
		return &c.E
	case indexH:
		return &c.H
	case indexL:
		return &c.L
	case indexA:
		return &c.A
	}
	return nil
}

// readIndex reads the operand addressed by index, going through
// the bus for (HL).
func (c *CPU) readIndex(index registerIndex) uint8 {
	if index == indexHL {
		return c.readByte(c.HL.Uint16())
	}
	return *c.register(index)
}

// writeIndex writes value to the operand addressed by index.
func (c *CPU) writeIndex(index registerIndex, value uint8) {
	if index == indexHL {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.register(index) = value
}

// registerPair returns the 16-bit pair addressed by the rr field of
// an opcode. Index 3 returns AF, opcodes that address SP there
// handle it themselves.
func (c *CPU) registerPair(index uint8) *RegisterPair {
	switch index {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	return c.AF
}

var pairNames = [4]string{"BC", "DE", "HL", "SP"}
