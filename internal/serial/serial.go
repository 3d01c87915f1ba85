// Package serial provides the serial port of the Game Boy.
// Only internally clocked transfers are driven, as there is
// never a second Game Boy on the other end of the cable.
package serial

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// ticksPerBit is the number of cycles taken to shift a single
// bit, giving the 8192Hz internal clock.
const ticksPerBit = 512

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each bit, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
type Controller struct {
	data    uint8
	control uint8

	count  uint8  // the number of bits that have been transferred
	cycles uint16 // cycles towards the next bit

	AttachedDevice Device

	irq *interrupts.Service
}

// NewController creates a new Controller with nothing attached.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq:            irq,
		AttachedDevice: nullDevice{},
	}
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

func (c *Controller) transferring() bool {
	return c.control&types.Bit7 != 0 && c.control&types.Bit0 != 0
}

// Read returns the value of SB or SC.
func (c *Controller) Read(address uint16) uint8 {
	if address == types.SB {
		return c.data
	}
	return c.control | 0x7E // bits 1-6 are always set
}

// Write writes to SB or SC, a write to SC with bits 7 and 0
// set starts a transfer.
func (c *Controller) Write(address uint16, value uint8) {
	if address == types.SB {
		c.data = value
		return
	}
	c.control = value & 0x81
	if c.transferring() {
		c.count, c.cycles = 0, 0
	}
}

// Tick advances an ongoing transfer.
func (c *Controller) Tick(cycles uint8) {
	if !c.transferring() {
		return
	}
	c.cycles += uint16(cycles)
	for c.cycles >= ticksPerBit && c.transferring() {
		c.cycles -= ticksPerBit

		bit := c.AttachedDevice.Send()
		c.AttachedDevice.Receive(c.data&types.Bit7 != 0)
		c.data <<= 1
		if bit {
			c.data |= 1
		}

		if c.count++; c.count == 8 {
			c.count = 0
			c.control &^= types.Bit7
			c.irq.Request(interrupts.SerialFlag)
		}
	}
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
	c.count = s.Read8()
	c.cycles = s.Read16()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
	s.Write8(c.count)
	s.Write16(c.cycles)
}
