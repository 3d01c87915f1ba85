package cartridge

import (
	"encoding/binary"

	"github.com/thelolagemann/gbcore/internal/types"
)

// CyclesPerSecond is the rate at which the RTC is clocked,
// matching the CPU clock so that emulated time is deterministic.
const CyclesPerSecond = 4194304

// rtcFooterSize is the size of the RTC block appended to
// the RAM in save files.
const rtcFooterSize = 48

// RTC registers, as selected by writing 0x08-0x0C to 0x4000-0x5FFF.
const (
	rtcS  = 0x08 // seconds 0-59
	rtcM  = 0x09 // minutes 0-59
	rtcH  = 0x0A // hours 0-23
	rtcDL = 0x0B // lower 8 bits of the day counter
	rtcDH = 0x0C // bit 0 day counter bit 8, bit 6 halt, bit 7 day counter carry
)

// RTC is the real time clock of an MBC3 cartridge. Reads
// always return the latched copy of the registers, which is
// updated by writing 0 then 1 to 0x6000-0x7FFF.
type RTC struct {
	registers [5]uint8
	latched   [5]uint8
	latch     uint8
	cycles    uint32
	timestamp uint64 // unix time recorded in the save file
}

// Tick advances the clock by the given number of cycles.
func (r *RTC) Tick(cycles uint8) {
	if r.registers[rtcDH-rtcS]&types.Bit6 != 0 {
		return
	}
	r.cycles += uint32(cycles)
	for r.cycles >= CyclesPerSecond {
		r.cycles -= CyclesPerSecond
		r.advance()
	}
}

// advance moves the clock forward by one second.
func (r *RTC) advance() {
	reg := &r.registers
	reg[0] = (reg[0] + 1) & 0x3F
	if reg[0] != 60 {
		return
	}
	reg[0] = 0
	reg[1] = (reg[1] + 1) & 0x3F
	if reg[1] != 60 {
		return
	}
	reg[1] = 0
	reg[2] = (reg[2] + 1) & 0x1F
	if reg[2] != 24 {
		return
	}
	reg[2] = 0

	days := uint16(reg[4]&types.Bit0)<<8 | uint16(reg[3])
	days++
	if days == 512 {
		days = 0
		reg[4] |= types.Bit7
	}
	reg[3] = uint8(days)
	reg[4] = reg[4]&^types.Bit0 | uint8(days>>8)
}

// writeLatch latches the registers on a 0 -> 1 transition.
func (r *RTC) writeLatch(value uint8) {
	if r.latch == 0x00 && value == 0x01 {
		r.latched = r.registers
	}
	r.latch = value
}

func (r *RTC) read(register uint8) uint8 {
	return r.latched[register-rtcS]
}

func (r *RTC) write(register uint8, value uint8) {
	switch register {
	case rtcS:
		value &= 0x3F
		r.cycles = 0
	case rtcM:
		value &= 0x3F
	case rtcH:
		value &= 0x1F
	case rtcDH:
		value &= 0xC1
	}
	r.registers[register-rtcS] = value
	r.latched[register-rtcS] = value
}

// marshal encodes the clock in the common 48 byte layout:
// the five registers and their latched copies as 32 bit
// little endian words, followed by a 64 bit timestamp.
func (r *RTC) marshal() []byte {
	b := make([]byte, rtcFooterSize)
	for i := 0; i < 5; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(r.registers[i]))
		binary.LittleEndian.PutUint32(b[20+i*4:], uint32(r.latched[i]))
	}
	binary.LittleEndian.PutUint64(b[40:], r.timestamp)
	return b
}

// unmarshal decodes the clock, accepting the older 44 byte
// layout with a 32 bit timestamp.
func (r *RTC) unmarshal(b []byte) {
	for i := 0; i < 5; i++ {
		r.registers[i] = uint8(binary.LittleEndian.Uint32(b[i*4:]))
		r.latched[i] = uint8(binary.LittleEndian.Uint32(b[20+i*4:]))
	}
	if len(b) >= rtcFooterSize {
		r.timestamp = binary.LittleEndian.Uint64(b[40:])
	} else {
		r.timestamp = uint64(binary.LittleEndian.Uint32(b[40:]))
	}
}

func (r *RTC) Load(s *types.State) {
	s.ReadData(r.registers[:])
	s.ReadData(r.latched[:])
	r.latch = s.Read8()
	r.cycles = s.Read32()
}

func (r *RTC) Save(s *types.State) {
	s.WriteData(r.registers[:])
	s.WriteData(r.latched[:])
	s.Write8(r.latch)
	s.Write32(r.cycles)
}
