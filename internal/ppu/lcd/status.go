package lcd

import (
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// Status represents the LCD status register. It contains information about the
// current state of the LCD controller. Its value is stored in the status register
// (0xFF41) as follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see below) (Read Only)
//		0: During H-Blank
//		1: During V-Blank
//		2: During Searching OAM-RAM
//		3: During Transferring Data to LCD Driver
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	Coincidence          bool
	Mode                 Mode
}

// Write writes the interrupt selection bits, the rest
// of the register is read only.
func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = utils.TestBit(value, 6)
	s.OAMInterrupt = utils.TestBit(value, 5)
	s.VBlankInterrupt = utils.TestBit(value, 4)
	s.HBlankInterrupt = utils.TestBit(value, 3)
}

// Read returns the value of the status register.
func (s *Status) Read() uint8 {
	value := uint8(0b1000_0000) // bit 7 is always set
	if s.CoincidenceInterrupt {
		value |= 1 << 6
	}
	if s.OAMInterrupt {
		value |= 1 << 5
	}
	if s.VBlankInterrupt {
		value |= 1 << 4
	}
	if s.HBlankInterrupt {
		value |= 1 << 3
	}
	if s.Coincidence {
		value |= 1 << 2
	}
	return value | s.Mode&0x03
}

// Line returns the state of the STAT interrupt line. An
// interrupt is requested when it goes from low to high.
func (s *Status) Line() bool {
	return (s.Coincidence && s.CoincidenceInterrupt) ||
		(s.Mode == HBlank && s.HBlankInterrupt) ||
		(s.Mode == VBlank && s.VBlankInterrupt) ||
		(s.Mode == OAM && s.OAMInterrupt)
}
