package gameboy

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// stateMagic starts every save state, followed by stateVersion.
const (
	stateMagic   = 0x54534247 // "GBST"
	stateVersion = 1
)

var (
	// ErrInvalidState is returned when loading data that isn't
	// a save state of this version.
	ErrInvalidState = errors.New("gameboy: invalid save state")
	// ErrStateMismatch is returned when loading a save state
	// made with a different cartridge.
	ErrStateMismatch = errors.New("gameboy: save state belongs to another cartridge")
)

// components returns every component taking part in a save state,
// in the order they are written.
func (g *GameBoy) components() []types.Stater {
	return []types.Stater{
		g.CPU,
		g.Interrupts,
		g.Timer,
		g.MMU,
		g.PPU,
		g.Joypad,
		g.Serial,
		g.cart.MemoryBankController,
	}
}

// SaveState returns a snapshot of the whole GameBoy, including the
// RAM of the cartridge.
func (g *GameBoy) SaveState() ([]byte, error) {
	if g.cart == nil {
		return nil, ErrNoCartridge
	}

	s := types.NewState()
	s.Write32(stateMagic)
	s.Write8(stateVersion)
	s.Write16(g.cart.GlobalChecksum)
	for _, c := range g.components() {
		c.Save(s)
	}

	return s.Bytes(), nil
}

// LoadState restores a snapshot made by SaveState with the same
// cartridge inserted. The GameBoy is left untouched if the header
// of the state doesn't match.
func (g *GameBoy) LoadState(data []byte) error {
	if g.cart == nil {
		return ErrNoCartridge
	}

	s := types.StateFromBytes(data)
	if s.Read32() != stateMagic || s.Read8() != stateVersion {
		return ErrInvalidState
	}
	if checksum := s.Read16(); checksum != g.cart.GlobalChecksum {
		return fmt.Errorf("%w: checksum %04X, expected %04X", ErrStateMismatch, checksum, g.cart.GlobalChecksum)
	}
	for _, c := range g.components() {
		c.Load(s)
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	g.PPU.SetCGB(g.MMU.IsGBC())
	g.frames = g.PPU.Frames()
	g.publish()
	g.Debugf("loaded save state (%d bytes)", len(data))

	return nil
}
