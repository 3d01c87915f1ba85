package serial

import "io"

// Device is a device that can be attached to the Controller.
// Bits are exchanged most significant first.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true.
func (n nullDevice) Send() bool { return true }

// Console is a Device that collects each byte sent by the
// Game Boy and writes it to w. Test ROMs print their results
// this way.
type Console struct {
	w    io.Writer
	bits uint8
	n    int
}

// NewConsole returns a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Receive shifts in a bit, writing out every completed byte.
func (c *Console) Receive(bit bool) {
	c.bits <<= 1
	if bit {
		c.bits |= 1
	}
	if c.n++; c.n == 8 {
		_, _ = c.w.Write([]byte{c.bits})
		c.n, c.bits = 0, 0
	}
}

// Send always returns true, as if nothing was connected.
func (c *Console) Send() bool { return true }
