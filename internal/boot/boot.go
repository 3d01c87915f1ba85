// Package boot provides an optional boot ROM for the Game Boy.
// Without one the emulator starts at 0x0100 with the registers
// left as the boot ROM would have left them.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// ErrInvalidLength is returned for a boot ROM that is neither
// the size of a DMG nor a CGB boot ROM.
var ErrInvalidLength = errors.New("boot: invalid boot rom length")

// ROM represents a boot ROM. At power on, the boot ROM is mapped
// over 0x0000-0x00FF (and 0x0200-0x08FF on the CGB), hiding the
// cartridge until the boot ROM writes to types.BDIS.
type ROM struct {
	raw      []byte
	checksum string // MD5 checksum of raw
}

// LoadBootROM loads a boot ROM, which must be 256 bytes for the
// DMG/MGB/SGB, or 2304 bytes for the CGB.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != 256 && len(b) != 2304 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}

	bootChecksum := md5.Sum(b)
	return &ROM{
		raw:      b,
		checksum: hex.EncodeToString(bootChecksum[:]),
	}, nil
}

// Contains reports whether the boot ROM covers the address.
func (b *ROM) Contains(addr uint16) bool {
	if addr < 0x100 {
		return true
	}
	return len(b.raw) > 0x100 && addr >= 0x200 && int(addr) < len(b.raw)
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	return b.checksum
}

// Name returns the name of the hardware the boot ROM was
// dumped from, if it is a known dump.
func (b *ROM) Name() string {
	if name, ok := knownBootROMChecksums[b.checksum]; ok {
		return name
	}
	return "unknown"
}

// Model returns the model the boot ROM belongs to, judged
// by its size.
func (b *ROM) Model() types.Model {
	if len(b.raw) == 2304 {
		return types.CGB
	}
	return types.DMG
}

// knownBootROMChecksums maps the checksums of known dumps
// to the hardware they were dumped from.
var knownBootROMChecksums = map[string]string{
	"a8f84a0ac44da5d3f0ee19f9cea80a8c": "Game Boy (DMG-0)",
	"32fbbd84168d3482956eb3c5051637f5": "Game Boy (DMG-01)",
	"71a378e71ff30b2d8a1f02bf5c7896aa": "Game Boy Pocket",
	"d574d4f9c12f305074798f54c091a8b4": "Super Game Boy",
	"e0430bca9925fb9882148fd2dc2418c1": "Super Game Boy 2",
	"7c773f3c0b01cb73bca8e83227287b7f": "Game Boy Color (CGB-0)",
	"dbfce9db9deaa2567f6a84fde55f9680": "Game Boy Color (CGB-A/B/C/D/E)",
	"e6cefb5f7d352fab6681989763917c73": "Game Boy Advance (AGB-001)",
}
