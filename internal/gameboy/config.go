package gameboy

import (
	"sync"
	"sync/atomic"

	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

const (
	// MinSpeed is the slowest speed multiplier accepted by Config.SetSpeed.
	MinSpeed = 0.25
	// MaxSpeed is the fastest speed multiplier accepted by Config.SetSpeed.
	MaxSpeed = 8.0
)

// Settings is a snapshot of the values held by a Config.
type Settings struct {
	// Speed multiplies the frame rate Run paces to.
	Speed float64
	// FrameSkip is the number of frames Run drops between
	// each frame it sends.
	FrameSkip int
	// Pacing makes Run sleep between frames to match the
	// frame rate of the hardware.
	Pacing bool
	// Colourise applies the CGB colourisation table to
	// games running in DMG mode.
	Colourise bool
	// Palette is the base palette of games running in DMG mode
	// without colourisation.
	Palette palette.Palette
	// Paused holds Run between frames.
	Paused bool
}

// Config holds the settings of a GameBoy that may be changed
// from another goroutine while it runs. Every change bumps the
// version, and is passed to the observers in the order they
// were added.
type Config struct {
	mu        sync.Mutex
	settings  Settings
	observers []func(Settings)

	version atomic.Uint64
	paused  atomic.Bool
}

// NewConfig returns a Config holding the default settings.
func NewConfig() *Config {
	return &Config{
		settings: Settings{
			Speed:   1,
			Pacing:  true,
			Palette: palette.Palettes[palette.Greyscale],
		},
	}
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Version returns the number of changes made to the Config.
func (c *Config) Version() uint64 {
	return c.version.Load()
}

// Observe adds fn to the functions called after each change.
func (c *Config) Observe(fn func(Settings)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// update applies fn to the settings and notifies the observers.
func (c *Config) update(fn func(s *Settings)) {
	c.mu.Lock()
	fn(&c.settings)
	c.paused.Store(c.settings.Paused)
	c.version.Add(1)
	settings := c.settings
	observers := append([]func(Settings){}, c.observers...)
	c.mu.Unlock()

	for _, observer := range observers {
		observer(settings)
	}
}

// SetSpeed sets the speed multiplier, clamped to [MinSpeed, MaxSpeed].
func (c *Config) SetSpeed(speed float64) {
	c.update(func(s *Settings) {
		s.Speed = utils.Clamp(MinSpeed, speed, MaxSpeed)
	})
}

// SetFrameSkip sets the number of frames dropped between sent frames.
func (c *Config) SetFrameSkip(skip int) {
	c.update(func(s *Settings) {
		s.FrameSkip = utils.Clamp(0, skip, 59)
	})
}

// SetPacing enables or disables pacing to the hardware frame rate.
func (c *Config) SetPacing(pacing bool) {
	c.update(func(s *Settings) {
		s.Pacing = pacing
	})
}

// SetColourise enables or disables colourisation of DMG games.
func (c *Config) SetColourise(colourise bool) {
	c.update(func(s *Settings) {
		s.Colourise = colourise
	})
}

// SetPalette sets the base palette of DMG games.
func (c *Config) SetPalette(p palette.Palette) {
	c.update(func(s *Settings) {
		s.Palette = p
	})
}

// SetPaused pauses or resumes Run.
func (c *Config) SetPaused(paused bool) {
	c.update(func(s *Settings) {
		s.Paused = paused
	})
}

// Paused reports whether Run is paused. It never blocks.
func (c *Config) Paused() bool {
	return c.paused.Load()
}
