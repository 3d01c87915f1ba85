// Package cpu implements the Sharp SM83 CPU of the Game Boy.
//
// Instructions are decoded through two dispatch tables, InstructionSet
// and InstructionSetCB, that are filled in by the init functions of
// each instruction family. Every memory access made by an instruction
// costs 4 cycles, so the cycles reported by Step fall out of the
// accesses the instruction makes, plus any internal delays.
package cpu

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU in Hz.
	ClockSpeed = 4194304
)

// ErrIllegalInstruction is returned when the CPU fetches an opcode
// that is not part of the instruction set.
var ErrIllegalInstruction = errors.New("cpu: illegal instruction")

// IllegalInstructionError records the opcode and address of an
// illegal instruction.
type IllegalInstructionError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("cpu: illegal instruction 0x%02X at 0x%04X", e.Opcode, e.PC)
}

func (e *IllegalInstructionError) Unwrap() error {
	return ErrIllegalInstruction
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is entered by HALT, until an interrupt is pending.
	ModeHalt
	// ModeHaltBug is entered by HALT when IME is clear and an
	// interrupt is already pending. The next opcode is read twice.
	ModeHaltBug
	// ModeLocked is entered after an illegal instruction.
	ModeLocked
)

// Bus is the address space the CPU reads and writes through.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Game Boy CPU. It is responsible for executing
// instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus Bus
	irq *interrupts.Service

	currentTick  uint8
	mode         mode
	imeScheduled bool
	err          error
}

// NewCPU creates a new CPU that reads and writes through bus.
func NewCPU(bus Bus, irq *interrupts.Service) *CPU {
	c := &CPU{
		bus: bus,
		irq: irq,
	}
	c.Registers.linkPairs()
	return c
}

// Reset clears every register and leaves the CPU running from 0x0000.
func (c *CPU) Reset() {
	c.PC, c.SP = 0, 0
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
	c.mode = ModeNormal
	c.imeScheduled = false
	c.err = nil
}

// Err returns the error that locked the CPU, if any.
func (c *CPU) Err() error {
	return c.err
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.mode == ModeHalt
}

// Step executes the next instruction and returns the number of
// cycles it took. While halted or locked, Step returns 4.
func (c *CPU) Step() uint8 {
	c.currentTick = 0

	switch c.mode {
	case ModeLocked:
		return 4
	case ModeHalt:
		// pending interrupts wake the CPU even with IME clear
		if c.irq.HasInterrupts() {
			c.mode = ModeNormal
		}
		return 4
	}

	// EI takes effect after the instruction following it
	if c.imeScheduled {
		c.imeScheduled = false
		c.irq.IME = true
	}

	pc := c.PC
	opcode := c.readInstruction()
	if c.mode == ModeHaltBug {
		c.PC--
		c.mode = ModeNormal
	}

	instruction := InstructionSet[opcode]
	if instruction.fn == nil {
		c.mode = ModeLocked
		c.err = &IllegalInstructionError{Opcode: opcode, PC: pc}
		return c.currentTick
	}
	instruction.fn(c)

	return c.currentTick
}

// ServiceInterrupt dispatches the highest priority pending interrupt
// if IME is set, returning the 20 cycles it took, or 0 if nothing
// was serviced.
func (c *CPU) ServiceInterrupt() uint8 {
	if !c.irq.IME || !c.irq.HasInterrupts() || c.mode == ModeLocked {
		return 0
	}
	c.currentTick = 0
	c.irq.IME = false
	c.mode = ModeNormal

	c.tickCycle()
	c.tickCycle()

	// the vector is resolved after the high byte is pushed, so a push
	// that lands on IE can cancel the dispatch
	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	vector := c.irq.Vector()
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))

	c.PC = vector
	c.tickCycle()

	return c.currentTick
}

// tickCycle accounts for a single machine cycle.
func (c *CPU) tickCycle() {
	c.currentTick += 4
}

// readInstruction reads the next opcode from memory and
// increments the program counter.
func (c *CPU) readInstruction() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand reads the next immediate byte.
func (c *CPU) readOperand() uint8 {
	return c.readInstruction()
}

// readOperand16 reads the next little-endian immediate word.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads a byte from the bus, taking 1 machine cycle.
func (c *CPU) readByte(address uint16) uint8 {
	c.tickCycle()
	return c.bus.Read(address)
}

// writeByte writes a byte to the bus, taking 1 machine cycle.
func (c *CPU) writeByte(address uint16, value uint8) {
	c.tickCycle()
	c.bus.Write(address, value)
}

// Snapshot is a copy of the CPU's programmer visible state.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	Halted                 bool
}

// Snapshot returns a copy of the registers.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP: c.SP, PC: c.PC,
		IME:    c.irq.IME,
		Halted: c.mode == ModeHalt,
	}
}

// Restore loads the registers from s. The lower nibble of F is
// discarded.
func (c *CPU) Restore(s Snapshot) {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = s.A, s.F&0xF0, s.B, s.C, s.D, s.E, s.H, s.L
	c.SP, c.PC = s.SP, s.PC
	c.irq.IME = s.IME
	c.mode = ModeNormal
	if s.Halted {
		c.mode = ModeHalt
	}
	c.imeScheduled = false
	c.err = nil
}

// Load restores the CPU from s.
func (c *CPU) Load(s *types.State) {
	c.PC = s.Read16()
	c.SP = s.Read16()
	c.A = s.Read8()
	c.F = s.Read8()
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.mode = s.Read8()
	c.imeScheduled = s.ReadBool()
	if c.mode == ModeLocked {
		c.mode = ModeNormal
	}
	c.err = nil
}

// Save writes the CPU to s.
func (c *CPU) Save(s *types.State) {
	s.Write16(c.PC)
	s.Write16(c.SP)
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write8(c.mode)
	s.WriteBool(c.imeScheduled)
}

var _ types.Stater = (*CPU)(nil)
