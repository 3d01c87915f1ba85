package interrupts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/gbcore/internal/types"
)

func TestService_Vector(t *testing.T) {
	tests := []struct {
		name   string
		flag   uint8
		enable uint8
		vector uint16
		left   uint8
	}{
		{"none pending", 0x00, 0x1F, 0, 0x00},
		{"disabled", 0x01, 0x00, 0, 0x01},
		{"vblank", VBlankFlag, 0x1F, 0x40, 0x00},
		{"lcd", LCDFlag, 0x1F, 0x48, 0x00},
		{"timer", TimerFlag, 0x1F, 0x50, 0x00},
		{"serial", SerialFlag, 0x1F, 0x58, 0x00},
		{"joypad", JoypadFlag, 0x1F, 0x60, 0x00},
		{"priority", TimerFlag | LCDFlag, 0x1F, 0x48, TimerFlag},
		{"priority skips disabled", VBlankFlag | JoypadFlag, JoypadFlag, 0x60, VBlankFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService()
			s.Flag, s.Enable = tt.flag, tt.enable
			assert.Equal(t, tt.vector, s.Vector())
			assert.Equal(t, tt.left, s.Flag)
		})
	}
}

func TestService_Registers(t *testing.T) {
	s := NewService()
	s.Write(types.IF, 0xFF)
	assert.Equal(t, uint8(0x1F), s.Flag)
	assert.Equal(t, uint8(0xFF), s.Read(types.IF))

	s.Write(types.IF, 0x00)
	assert.Equal(t, uint8(0xE0), s.Read(types.IF), "upper bits of IF always read 1")

	s.Write(types.IE, 0xAB)
	assert.Equal(t, uint8(0xAB), s.Read(types.IE))
	assert.False(t, s.HasInterrupts())

	s.Request(TimerFlag)
	assert.True(t, s.HasInterrupts())
}
