// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State holds the pressed buttons, a 1 meaning pressed.
	// The lower 4 bits are the action buttons, the upper
	// 4 bits the direction buttons.
	State   Button
	selects uint8

	irq *interrupts.Service
}

// New returns a new joypad state.
func New(irq *interrupts.Service) *State {
	return &State{
		irq:     irq,
		selects: 0x30,
	}
}

// Read returns the value of the P1 register.
func (s *State) Read(uint16) uint8 {
	d := uint8(0xC0) | s.selects
	if s.selects&types.Bit4 == 0 {
		d |= s.State >> 4 & 0xF
	}
	if s.selects&types.Bit5 == 0 {
		d |= s.State & 0xF
	}

	// pressed buttons read as 0
	return d ^ 0xF
}

// Write selects the buttons to be read.
func (s *State) Write(_ uint16, value uint8) {
	s.selects = value & 0x30
}

// Press presses a button. The joypad interrupt is requested when
// the button's group is selected, as only then does a P1 line go low.
func (s *State) Press(button Button) {
	if utils.TestBit(s.State, button) {
		return
	}
	s.State = utils.SetBit(s.State, button)
	if s.selected(button) {
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// selected reports whether the group of button is selected in P1.
func (s *State) selected(button Button) bool {
	if button >= ButtonRight {
		return s.selects&types.Bit4 == 0
	}
	return s.selects&types.Bit5 == 0
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = utils.ClearBit(s.State, button)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
	s.selects = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
	st.Write8(s.selects)
}
