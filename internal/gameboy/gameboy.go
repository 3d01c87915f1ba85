// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy steps its components in lock-step: every instruction
// executed by the CPU reports the cycles it took, which are then
// used to advance the timer, the PPU, the serial port and the
// cartridge by the same amount.
package gameboy

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/ppu"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/emulator"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// FrameCycles is the number of clock cycles per frame.
	FrameCycles = ppu.FrameCycles
	// FrameRate is the number of frames drawn per second.
	FrameRate = float64(ClockSpeed) / FrameCycles
)

// ErrNoCartridge is returned when stepping a GameBoy, or
// accessing its save, before a cartridge has been loaded.
var ErrNoCartridge = errors.New("gameboy: no cartridge loaded")

// Frame is a completed frame, as returned by FrameBuffer.
type Frame = ppu.Frame

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	PPU        *ppu.PPU
	Joypad     *joypad.State
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller

	log.Logger

	cart    *cartridge.Cartridge
	bootROM *boot.ROM
	model   types.Model // requested model, Unset to follow the cartridge

	cheats         *cheats.Cheats
	config         *Config
	appliedVersion uint64

	// published is a copy of the last completed frame, the only
	// state shared with other goroutines
	published     Frame
	publishedLock sync.Mutex
	frames        uint64

	stopping atomic.Bool
}

// New returns a new GameBoy with no cartridge inserted.
func New(opts ...Opt) *GameBoy {
	irq := interrupts.NewService()
	video := ppu.New(irq)
	memBus := mmu.NewMMU(nil, video, irq)

	g := &GameBoy{
		CPU:        cpu.NewCPU(memBus, irq),
		MMU:        memBus,
		PPU:        video,
		Joypad:     joypad.New(irq),
		Interrupts: irq,
		Timer:      timer.NewController(irq),
		Serial:     serial.NewController(irq),
		Logger:     log.NewNullLogger(),
		config:     NewConfig(),
		cheats:     &cheats.Cheats{},
	}
	// the config version starts at 0, so the first frame applies it
	g.appliedVersion = ^uint64(0)

	memBus.Map(g.Joypad, types.P1)
	memBus.Map(g.Serial, types.SB, types.SC)
	memBus.MapRange(g.Timer, types.DIV, types.TAC)
	memBus.MapRange(video, types.LCDC, types.WX)
	memBus.Map(video, types.VBK, types.BCPS, types.BCPD, types.OCPS, types.OCPD)
	video.HBlank = func() { g.MMU.HDMA.SetHBlank() }
	memBus.Genie = &g.cheats.Genie

	for _, opt := range opts {
		opt(g)
	}
	memBus.Log = g.Logger

	return g
}

// Config returns the settings of the GameBoy.
func (g *GameBoy) Config() *Config {
	return g.config
}

// Cheats returns the cheats applied to the GameBoy. They are
// not safe to change while Run is stepping the GameBoy.
func (g *GameBoy) Cheats() *cheats.Cheats {
	return g.cheats
}

// Cartridge returns the inserted cartridge, or nil.
func (g *GameBoy) Cartridge() *cartridge.Cartridge {
	return g.cart
}

// LoadCartridge inserts the cartridge held in rom and resets the
// GameBoy. Nothing changes if the ROM can't be loaded.
func (g *GameBoy) LoadCartridge(rom []byte) (*cartridge.Cartridge, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}

	g.cart = cart
	g.Infof("loaded cartridge: %s", cart)
	g.Reset()

	return cart, nil
}

// Model returns the model being emulated, as decided by the
// requested model, the boot ROM and the cartridge.
func (g *GameBoy) Model() types.Model {
	switch {
	case g.model != types.Unset:
		return g.model
	case g.bootROM != nil:
		return g.bootROM.Model()
	case g.cart != nil && g.cart.GameboyColor():
		return types.CGB
	}
	return types.DMG
}

// cgbMode reports whether CGB features are enabled, which needs
// both a CGB and a cartridge that makes use of them.
func (g *GameBoy) cgbMode() bool {
	return g.Model() == types.CGB && g.cart != nil && g.cart.GameboyColor()
}

// postBootIO holds the I/O registers written by the boot ROM
// that matter to games.
var postBootIO = []struct {
	address uint16
	value   uint8
}{
	{types.TAC, 0xF8},
	{types.IF, 0xE1},
	{types.LCDC, 0x91},
	{types.SCY, 0x00},
	{types.SCX, 0x00},
	{types.LYC, 0x00},
	{types.BGP, 0xFC},
	{types.OBP0, 0xFF},
	{types.OBP1, 0xFF},
	{types.WY, 0x00},
	{types.WX, 0x00},
}

// Reset puts the GameBoy back into its power on state. The
// battery backed RAM of the cartridge survives a reset.
func (g *GameBoy) Reset() {
	if g.cart != nil {
		// the ROM was already validated, so this can't fail
		cart, _ := cartridge.New(g.cart.ROM())
		if ram, err := g.cart.SaveRAM(); err == nil {
			_ = cart.LoadRAM(ram)
		}
		g.cart = cart
	}
	g.MMU.Cart = g.cart

	g.Interrupts.Reset()
	g.Timer.Reset()
	g.PPU.Reset()
	g.MMU.Reset()
	g.CPU.Reset()
	g.Joypad.State = 0
	g.Joypad.Write(types.P1, 0x30)
	g.Serial.Write(types.SC, 0)

	model := types.DMG
	if g.cgbMode() {
		model = types.CGB
	}
	g.MMU.SetModel(model)
	g.PPU.SetCGB(model == types.CGB)
	g.applyPalette(g.config.Settings())

	g.MMU.SetBootROM(g.bootROM)
	if g.bootROM == nil {
		r := types.ModelRegisters[g.Model()]
		g.CPU.Restore(cpu.Snapshot{
			A: r[0], F: r[1], B: r[2], C: r[3], D: r[4], E: r[5], H: r[6], L: r[7],
			SP: 0xFFFE,
			PC: 0x0100,
		})
		for _, io := range postBootIO {
			g.MMU.Write(io.address, io.value)
		}
	}

	g.publishedLock.Lock()
	g.published = Frame{}
	g.publishedLock.Unlock()
	g.frames = g.PPU.Frames()
	g.Debugf("reset as %s (cgb mode: %t)", g.Model(), model == types.CGB)
}

// applyPalette sets the DMG palettes from s. A colourised DMG game
// takes its palettes from the header of the cartridge.
func (g *GameBoy) applyPalette(s Settings) {
	if g.cgbMode() {
		return
	}
	if s.Colourise && g.cart != nil {
		g.PPU.Colourise(palette.Colourise(g.cart.TitleChecksum(), g.cart.TitleDisambiguation(), g.cart.Nintendo()))
		return
	}
	g.PPU.SetPalette(s.Palette)
}

// applyConfig applies any settings changed since the last call.
func (g *GameBoy) applyConfig() {
	if v := g.config.Version(); v != g.appliedVersion {
		g.appliedVersion = v
		g.applyPalette(g.config.Settings())
	}
}

// tick advances every component other than the CPU.
func (g *GameBoy) tick(cycles uint8) {
	g.Timer.Tick(cycles)
	g.PPU.Tick(cycles)
	g.Serial.Tick(cycles)
	g.cart.Tick(cycles)
}

// Step executes a single instruction, servicing any interrupt it
// raises, and returns the number of cycles that elapsed. An
// illegal instruction stops the GameBoy, with every following
// Step returning the same error.
func (g *GameBoy) Step() (int, error) {
	if g.cart == nil {
		return 0, ErrNoCartridge
	}

	cycles := g.CPU.Step()
	if err := g.CPU.Err(); err != nil {
		return int(cycles), err
	}
	g.tick(cycles)
	total := int(cycles)

	if serviced := g.CPU.ServiceInterrupt(); serviced > 0 {
		g.tick(serviced)
		total += int(serviced)
	}

	// the CPU is stalled while HDMA copies
	for stall := g.MMU.HDMA.Stall(); stall > 0; {
		n := uint8(min(stall, 0xFC))
		g.tick(n)
		stall -= uint16(n)
		total += int(n)
	}

	if frames := g.PPU.Frames(); frames != g.frames {
		g.frames = frames
		g.cheats.Shark.Apply(g.MMU, g.MMU.IsGBC())
		g.publish()
	}

	return total, nil
}

// StepFrame steps until the PPU completes a frame. A frame's worth
// of cycles is run when the LCD is off.
func (g *GameBoy) StepFrame() error {
	g.applyConfig()

	frames := g.PPU.Frames()
	for cycles := 0; cycles < FrameCycles; {
		if g.stopping.Load() {
			return errStopped
		}
		n, err := g.Step()
		if err != nil {
			return err
		}
		cycles += n
		if g.PPU.Frames() != frames {
			return nil
		}
	}
	if !g.PPU.Enabled {
		g.publish()
	}

	return nil
}

// publish copies the frame last completed by the PPU.
func (g *GameBoy) publish() {
	g.publishedLock.Lock()
	g.published = *g.PPU.Frame()
	g.publishedLock.Unlock()
}

// FrameBuffer returns a copy of the last completed frame. It is
// safe to call while Run is stepping the GameBoy.
func (g *GameBoy) FrameBuffer() *Frame {
	g.publishedLock.Lock()
	defer g.publishedLock.Unlock()
	f := g.published
	return &f
}

// FrameHash returns the xxhash of the last completed frame.
func (g *GameBoy) FrameHash() uint64 {
	return xxhash.Sum64(g.FrameBuffer().Bytes())
}

// SetButton presses or releases button.
func (g *GameBoy) SetButton(button joypad.Button, pressed bool) {
	if pressed {
		g.Joypad.Press(button)
	} else {
		g.Joypad.Release(button)
	}
}

// SaveRAM returns the battery backed RAM of the cartridge.
func (g *GameBoy) SaveRAM() ([]byte, error) {
	if g.cart == nil {
		return nil, ErrNoCartridge
	}
	return g.cart.SaveRAM()
}

// LoadRAM restores the battery backed RAM of the cartridge.
func (g *GameBoy) LoadRAM(data []byte) error {
	if g.cart == nil {
		return ErrNoCartridge
	}
	return g.cart.LoadRAM(data)
}

// Peek reads address through the memory bus, as the CPU would.
func (g *GameBoy) Peek(address uint16) uint8 {
	return g.MMU.Read(address)
}

// Poke writes value to address through the memory bus.
func (g *GameBoy) Poke(address uint16, value uint8) {
	g.MMU.Write(address, value)
}

// Registers returns the CPU registers.
func (g *GameBoy) Registers() cpu.Snapshot {
	return g.CPU.Snapshot()
}

// SetRegisters replaces the CPU registers, unlocking a CPU that
// executed an illegal instruction.
func (g *GameBoy) SetRegisters(s cpu.Snapshot) {
	g.CPU.Restore(s)
}

// Pause holds Run between frames.
func (g *GameBoy) Pause() {
	g.config.SetPaused(true)
}

// Resume resumes a paused Run.
func (g *GameBoy) Resume() {
	g.config.SetPaused(false)
}

// Paused reports whether Run is paused.
func (g *GameBoy) Paused() bool {
	return g.config.Paused()
}

// Status reports the state of the CPU.
func (g *GameBoy) Status() emulator.Status {
	switch {
	case g.CPU.Err() != nil:
		return emulator.Errored
	case g.CPU.Halted():
		return emulator.Halted
	}
	return emulator.Running
}

var _ emulator.Controller = (*GameBoy)(nil)

// String implements the fmt.Stringer interface.
func (g *GameBoy) String() string {
	if g.cart == nil {
		return fmt.Sprintf("%s (no cartridge)", g.Model())
	}
	return fmt.Sprintf("%s %s", g.Model(), g.cart.Title)
}
