// Package interrupts provides the interrupt service shared by
// the CPU and every peripheral able to request an interrupt.
package interrupts

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode (lcd.VBlank).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when TIMA overflows.
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4),
	// requested when a selected button is pressed.
	JoypadFlag = types.Bit4
)

// Service holds the interrupt flag (types.IF) and enable
// (types.IE) registers, along with the master enable
// (IME), which is only changed by the CPU through DI, EI,
// RETI and interrupt dispatch.
//
// Bits are serviced in priority order, VBlank first, and
// the vector of bit i is 0x40 + 8*i.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
	IME    bool  // interrupt master enable
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// Read returns the value of IF or IE.
func (s *Service) Read(address uint16) uint8 {
	if address == types.IF {
		return s.Flag | 0xE0 // the upper 3 bits are always set
	}
	return s.Enable
}

// Write sets the value of IF or IE.
func (s *Service) Write(address uint16, value uint8) {
	if address == types.IF {
		s.Flag = value & 0x1F // only the first 5 bits are used
		return
	}
	s.Enable = value
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled, regardless of IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag
}

// Vector returns the vector of the highest priority
// pending interrupt, clearing its bit in the Flag
// register. It returns 0 if nothing is pending.
func (s *Service) Vector() uint16 {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)
		if pending&flag != 0 {
			s.Flag &^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// Reset clears every register.
func (s *Service) Reset() {
	s.Flag, s.Enable, s.IME = 0, 0, false
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	s.IME = st.ReadBool()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	st.WriteBool(s.IME)
}
