// Package timer provides an implementation of the Game Boy
// timer. DIV is a free running divider, TIMA counts at the
// frequency selected by TAC and requests an interrupt when
// it overflows.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// DividerPeriod is the number of cycles between each increment
// of DIV, giving its frequency of 16384Hz.
const DividerPeriod = 256

// periods holds the number of cycles between each increment of
// TIMA, indexed by the clock select bits of TAC.
//
//	00: 4096 Hz
//	01: 262144 Hz
//	10: 65536 Hz
//	11: 16384 Hz
var periods = [4]uint16{1024, 16, 64, 256}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	// internal 16 bit divider, DIV is its upper byte
	div uint16

	tima    uint8
	tma     uint8
	tac     uint8
	counter uint16 // cycles accumulated towards the next TIMA increment
	period  uint16
	Enabled bool

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	c := &Controller{irq: irq}
	c.Reset()
	return c
}

// Reset puts the timer back into its power on state.
func (c *Controller) Reset() {
	c.div, c.counter = 0, 0
	c.tima, c.tma = 0, 0
	c.writeTAC(0)
}

// Tick advances the timer by the given number of cycles.
func (c *Controller) Tick(cycles uint8) {
	c.div += uint16(cycles)

	if !c.Enabled {
		return
	}
	c.counter += uint16(cycles)
	for c.counter >= c.period {
		c.counter -= c.period
		c.tima++
		if c.tima == 0 {
			c.tima = c.tma
			c.irq.Request(interrupts.TimerFlag)
		}
	}
}

// Div returns the internal 16-bit divider.
func (c *Controller) Div() uint16 {
	return c.div
}

// Read returns the value of one of the timer registers.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.div >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0b1111_1000
	}
	return 0xFF
}

// Write writes to one of the timer registers. Any write
// to DIV resets the whole divider.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		c.div = 0
	case types.TIMA:
		c.tima = value
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.writeTAC(value)
	}
}

func (c *Controller) writeTAC(value uint8) {
	c.tac = value & 0b111
	c.Enabled = value&types.Bit2 != 0
	period := periods[value&0b11]
	if period != c.period {
		c.counter = 0
	}
	c.period = period
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.writeTAC(s.Read8())
	c.counter = s.Read16()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)
	s.Write16(c.counter)
}
