package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/emu"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	asModel := flag.String("model", "auto", "The model to emulate. Can be auto, dmg or cgb")
	frames := flag.Int("frames", 60, "The number of frames to run before exiting")
	screenshot := flag.String("screenshot", "", "Write the last frame to this file as a BMP")
	scale := flag.Int("scale", 1, "The scale to write the screenshot at")
	hash := flag.Bool("hash", false, "Print a hash of the last frame")
	plotFile := flag.String("plot", "", "Plot the time taken by each frame to this file (png, svg or pdf)")
	saveFolder := flag.String("save", emu.DefaultSaveFolder, "The folder battery saves are kept in")
	level := flag.String("v", "info", "The log level. Can be debug, info, warn or error")
	paletteName := flag.String("palette", "greyscale", "The palette to use for DMG games")
	colourise := flag.Bool("colourise", false, "Colourise DMG games when running as a CGB")
	serial := flag.Bool("serial", false, "Print bytes sent over the serial port to stdout")
	cheatFile := flag.String("cheats", "", "The cheat file to load")
	flag.Parse()

	lvl, err := log.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := log.NewWithLevel(os.Stderr, lvl)

	if err := run(logger, options{
		rom:        *romFile,
		boot:       *bootROM,
		model:      *asModel,
		frames:     *frames,
		screenshot: *screenshot,
		scale:      *scale,
		hash:       *hash,
		plot:       *plotFile,
		saves:      *saveFolder,
		palette:    *paletteName,
		colourise:  *colourise,
		serial:     *serial,
		cheats:     *cheatFile,
	}); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}

type options struct {
	rom, boot, model string
	frames, scale    int
	screenshot, plot string
	hash             bool
	saves, palette   string
	colourise        bool
	serial           bool
	cheats           string
}

func run(logger log.Logger, o options) error {
	if o.rom == "" {
		return errors.New("no rom file given, use -rom")
	}

	// open the rom file
	rom, err := utils.LoadFile(o.rom)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.NoPacing(),
		gameboy.WithColourisation(o.colourise),
	}

	// open the boot rom file
	if o.boot != "" {
		b, err := utils.LoadFile(o.boot)
		if err != nil {
			return err
		}
		bootROM, err := boot.LoadBootROM(b)
		if err != nil {
			return err
		}
		logger.Infof("loaded boot rom %s", bootROM.Name())
		opts = append(opts, gameboy.WithBootROM(bootROM))
	}

	if o.model != "auto" {
		model := types.StringToModel(o.model)
		if model == types.Unset {
			return fmt.Errorf("unknown model %q", o.model)
		}
		opts = append(opts, gameboy.AsModel(model))
	}

	if o.palette != "" {
		pal, ok := palette.ByName(o.palette)
		if !ok {
			return fmt.Errorf("unknown palette %q", o.palette)
		}
		opts = append(opts, gameboy.WithPalette(pal))
	}

	if o.serial {
		opts = append(opts, gameboy.SerialDebugger(os.Stdout))
	}

	gb := gameboy.New(opts...)
	cart, err := gb.LoadCartridge(rom)
	if err != nil {
		return err
	}
	logger.Infof("running %s as %s", cart.Title, gb.Model())

	if o.cheats != "" {
		f, err := os.Open(o.cheats)
		if err != nil {
			return err
		}
		err = gb.Cheats().Parse(f)
		f.Close()
		if err != nil {
			return err
		}
		logger.Infof("loaded %d cheats", len(gb.Cheats().List()))
	}

	save, err := loadSave(gb, cart, o.saves)
	if err != nil {
		// a corrupt save is replaced rather than fatal
		logger.Warnf("%s", err)
	}

	frameTimes := make([]time.Duration, 0, o.frames)
	for i := 0; i < o.frames; i++ {
		start := time.Now()
		if err := gb.StepFrame(); err != nil {
			return err
		}
		frameTimes = append(frameTimes, time.Since(start))
	}
	logger.Debugf("ran %d frames, status %s", len(frameTimes), gb.Status())

	if save != nil {
		ram, err := gb.SaveRAM()
		if err != nil {
			return err
		}
		save.SetBytes(ram)
		if err := save.Flush(); err != nil {
			return err
		}
		logger.Infof("saved %s", save.Path)
	}

	if o.hash {
		fmt.Printf("%016x\n", gb.FrameHash())
	}

	if o.screenshot != "" {
		if err := writeScreenshot(o.screenshot, gb.FrameBuffer(), o.scale); err != nil {
			return err
		}
	}

	if o.plot != "" {
		if err := plotFrameTimes(o.plot, frameTimes); err != nil {
			return err
		}
	}

	return nil
}

// loadSave restores battery RAM from the save folder. Carts without
// a battery have no save. A save the cartridge can't use is
// replaced by the next flush.
func loadSave(gb *gameboy.GameBoy, cart *cartridge.Cartridge, folder string) (*emu.Save, error) {
	if _, err := gb.SaveRAM(); errors.Is(err, cartridge.ErrNoBattery) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	save, err := emu.LoadSave(emu.SavePath(folder, cart.Title))
	if err != nil || save.Empty() {
		return save, err
	}
	if err := gb.LoadRAM(save.Bytes()); err != nil {
		save.Reset()
		return save, fmt.Errorf("%w: %s: %w", emu.ErrCorruptSave, save.Path, err)
	}

	return save, nil
}
