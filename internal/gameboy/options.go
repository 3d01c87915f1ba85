package gameboy

import (
	"io"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// AsModel emulates m, whatever the cartridge asks for.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// WithBootROM runs rom before the cartridge. Without a boot ROM,
// the GameBoy starts at 0x0100 with the registers set to the
// values left by the boot ROM of the model.
func WithBootROM(rom *boot.ROM) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithColourisation enables or disables colourisation of
// games running in DMG mode.
func WithColourisation(colourise bool) Opt {
	return func(gb *GameBoy) {
		gb.config.SetColourise(colourise)
	}
}

// WithPalette sets the palette used by games running in DMG mode.
func WithPalette(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.config.SetPalette(p)
	}
}

// SerialDebugger writes every byte sent over the serial port
// to w. Test ROMs print their results this way.
func SerialDebugger(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.Serial.Attach(serial.NewConsole(w))
	}
}

// Speed sets the speed multiplier Run paces to.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.config.SetSpeed(speed)
	}
}

// NoPacing runs frames as fast as possible.
func NoPacing() Opt {
	return func(gb *GameBoy) {
		gb.config.SetPacing(false)
	}
}
