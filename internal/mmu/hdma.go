package mmu

import (
	"github.com/thelolagemann/gbcore/internal/types"
)

type Mode = uint8

const (
	// GDMAMode copies every block as soon as HDMA5 is written.
	GDMAMode Mode = iota
	// HDMAMode copies a single block every H-Blank.
	HDMAMode
)

// cyclesPerBlock is the time the CPU is halted for while a
// 16 byte block is copied.
const cyclesPerBlock = 8

// HDMA is the CGB's VRAM DMA controller, which copies blocks of
// 16 bytes from ROM or RAM to VRAM, either all at once (general
// purpose DMA) or one block per H-Blank.
type HDMA struct {
	mode Mode

	transferring bool

	blocks      uint8 // blocks left to copy
	source      uint16
	destination uint16

	stall uint16 // cycles owed to the CPU for copied blocks

	bus   IOBus
	video Video
}

// NewHDMA returns a new HDMA controller copying from bus into video.
func NewHDMA(bus IOBus, video Video) *HDMA {
	return &HDMA{
		bus:   bus,
		video: video,
	}
}

// Read returns the value of HDMA5. HDMA1 - HDMA4 are write only.
func (h *HDMA) Read(address uint16) uint8 {
	if address != types.HDMA5 {
		return 0xFF
	}
	// is HDMA transferring?
	if h.transferring {
		return (h.blocks - 1) & 0x7F
	}
	return types.Bit7 | (h.blocks-1)&0x7F
}

// Write sets the source and destination registers, or starts
// and stops a transfer through HDMA5.
func (h *HDMA) Write(address uint16, v uint8) {
	switch address {
	case types.HDMA1:
		h.source = (h.source & 0x00FF) | (uint16(v) << 8)
	case types.HDMA2:
		h.source = (h.source & 0xFF00) | uint16(v&0xF0)
	case types.HDMA3:
		h.destination = (h.destination & 0x00FF) | (uint16(v&0x1F) << 8)
	case types.HDMA4:
		h.destination = (h.destination & 0xFF00) | uint16(v&0xF0)
	case types.HDMA5:
		// is HDMA copying?
		if h.mode == HDMAMode && h.transferring {
			if v&types.Bit7 == 0 {
				// stop the HDMA transfer
				h.transferring = false
				return
			}
			// restart the HDMA transfer
			h.blocks = (v & 0x7F) + 1
			return
		}

		h.mode = v >> 7
		h.blocks = (v & 0x7F) + 1
		if h.mode == GDMAMode {
			for h.blocks > 0 {
				h.copyBlock()
			}
			return
		}
		h.transferring = true
	}
}

// SetHBlank copies the next block of an H-Blank transfer.
func (h *HDMA) SetHBlank() {
	if h.mode == HDMAMode && h.transferring {
		h.copyBlock()
		if h.blocks == 0 {
			h.transferring = false
		}
	}
}

func (h *HDMA) copyBlock() {
	for i := 0; i < 16; i++ {
		h.video.WriteVRAM(0x8000|h.destination&0x1FFF, h.bus.Read(h.source))
		h.source++
		h.destination++
	}
	h.destination &= 0x1FFF
	h.blocks--
	h.stall += cyclesPerBlock
}

// IsCopying returns true if an H-Blank transfer is in progress.
func (h *HDMA) IsCopying() bool {
	return h.transferring
}

// Stall returns, and clears, the number of cycles the CPU
// should be halted for due to copied blocks.
func (h *HDMA) Stall() uint16 {
	s := h.stall
	h.stall = 0
	return s
}

func (h *HDMA) Load(s *types.State) {
	h.mode = s.Read8()
	h.transferring = s.ReadBool()
	h.blocks = s.Read8()
	h.source = s.Read16()
	h.destination = s.Read16()
}

func (h *HDMA) Save(s *types.State) {
	s.Write8(h.mode)
	s.WriteBool(h.transferring)
	s.Write8(h.blocks)
	s.Write16(h.source)
	s.Write16(h.destination)
}
