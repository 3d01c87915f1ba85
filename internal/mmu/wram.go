package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// WRAM is the work RAM at 0xC000 - 0xDFFF, mirrored at 0xE000 -
// 0xFDFF. In CGB mode, 0xD000 - 0xDFFF can be switched between
// banks 1-7 through types.SVBK.
type WRAM struct {
	bank uint8
	raw  [8][0x1000]uint8
}

func NewWRAM() *WRAM {
	return &WRAM{
		bank: 1, // bank 1 is the default as the first bank is fixed
	}
}

// SetBank selects the switchable bank. Only 3 bits are used,
// and bank 0 selects bank 1.
func (w *WRAM) SetBank(v uint8) {
	v &= 0x07
	if v == 0 {
		v = 1
	}
	w.bank = v
}

// Bank returns the selected bank.
func (w *WRAM) Bank() uint8 {
	return w.bank
}

func (w *WRAM) Read(addr uint16) uint8 {
	// the echo mirrors 0xC000 - 0xDDFF, so only bit 12 tells
	// apart the fixed and the switchable bank
	if addr&0x1000 == 0 {
		return w.raw[0][addr&0xFFF]
	}
	return w.raw[w.bank][addr&0xFFF]
}

func (w *WRAM) Write(addr uint16, v uint8) {
	if addr&0x1000 == 0 {
		w.raw[0][addr&0xFFF] = v
		return
	}
	w.raw[w.bank][addr&0xFFF] = v
}

func (w *WRAM) Load(s *types.State) {
	w.bank = s.Read8()
	for i := range w.raw {
		s.ReadData(w.raw[i][:])
	}
}

func (w *WRAM) Save(s *types.State) {
	s.Write8(w.bank)
	for i := range w.raw {
		s.WriteData(w.raw[i][:])
	}
}
