package cartridge

import (
	"fmt"
	"strings"
)

// BankSize is the size of a single ROM bank.
const BankSize = 0x4000

// RAMBankSize is the size of a single external RAM bank.
const RAMBankSize = 0x2000

// Flag specifies the level of CGB support of a cartridge.
type Flag uint8

const (
	FlagOnlyDMG     Flag = iota // no CGB support specified, a regular Game Boy game
	FlagSupportsCGB             // CGB enhancements, but backwards compatible
	FlagOnlyCGB                 // the game works on CGB only
)

// Type represents the hardware present in a cartridge,
// as specified by the cartridge type byte (0x0147).
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0xFC
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

// typeInfo describes the hardware of each cartridge type.
type typeInfo struct {
	name    string
	kind    Kind
	battery bool
	timer   bool
	rumble  bool
}

var typeTable = map[Type]typeInfo{
	ROM:               {"ROM", KindNone, false, false, false},
	MBC1:              {"MBC1", KindMBC1, false, false, false},
	MBC1RAM:           {"MBC1+RAM", KindMBC1, false, false, false},
	MBC1RAMBATT:       {"MBC1+RAM+BATTERY", KindMBC1, true, false, false},
	MBC2:              {"MBC2", KindMBC2, false, false, false},
	MBC2BATT:          {"MBC2+BATTERY", KindMBC2, true, false, false},
	ROMRAM:            {"ROM+RAM", KindNone, false, false, false},
	ROMRAMBATT:        {"ROM+RAM+BATTERY", KindNone, true, false, false},
	MMM01:             {"MMM01", KindUnsupported, false, false, false},
	MMM01RAM:          {"MMM01+RAM", KindUnsupported, false, false, false},
	MMM01RAMBATT:      {"MMM01+RAM+BATTERY", KindUnsupported, true, false, false},
	MBC3TIMERBATT:     {"MBC3+TIMER+BATTERY", KindMBC3, true, true, false},
	MBC3TIMERRAMBATT:  {"MBC3+TIMER+RAM+BATTERY", KindMBC3, true, true, false},
	MBC3:              {"MBC3", KindMBC3, false, false, false},
	MBC3RAM:           {"MBC3+RAM", KindMBC3, false, false, false},
	MBC3RAMBATT:       {"MBC3+RAM+BATTERY", KindMBC3, true, false, false},
	MBC5:              {"MBC5", KindMBC5, false, false, false},
	MBC5RAM:           {"MBC5+RAM", KindMBC5, false, false, false},
	MBC5RAMBATT:       {"MBC5+RAM+BATTERY", KindMBC5, true, false, false},
	MBC5RUMBLE:        {"MBC5+RUMBLE", KindMBC5, false, false, true},
	MBC5RUMBLERAM:     {"MBC5+RUMBLE+RAM", KindMBC5, false, false, true},
	MBC5RUMBLERAMBATT: {"MBC5+RUMBLE+RAM+BATTERY", KindMBC5, true, false, true},
	POCKETCAMERA:      {"POCKET CAMERA", KindUnsupported, true, false, false},
	BANDAITAMA5:       {"BANDAI TAMA5", KindUnsupported, false, false, false},
	HUDSONHUC3:        {"HuC3", KindUnsupported, true, true, false},
	HUDSONHUC1:        {"HuC1+RAM+BATTERY", KindUnsupported, true, false, false},
}

// Kind returns the memory bank controller used by the
// cartridge type, KindUnsupported if it isn't emulated.
func (t Type) Kind() Kind {
	if info, ok := typeTable[t]; ok {
		return info.kind
	}
	return KindUnsupported
}

// Battery reports whether the cartridge has battery backed RAM.
func (t Type) Battery() bool {
	return typeTable[t].battery
}

// Timer reports whether the cartridge has a real time clock.
func (t Type) Timer() bool {
	return typeTable[t].timer
}

// Rumble reports whether the cartridge has a rumble motor.
func (t Type) Rumble() bool {
	return typeTable[t].rumble
}

func (t Type) String() string {
	if info, ok := typeTable[t]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
}

// ramBanks maps the RAM size byte (0x0149) to a bank count.
var ramBanks = map[uint8]int{
	0x00: 0,
	0x01: 1, // 2KiB on real hardware, rounded up to a full bank
	0x02: 1,
	0x03: 4,
	0x04: 16,
	0x05: 8,
}

// Header represents the header of a cartridge, located at
// 0x0100-0x014F. The header contains information about the
// cartridge itself, and the hardware it expects to run on.
type Header struct {
	Title            string // $0134-$0143 title of the game in uppercase ASCII
	ManufacturerCode string // $013F-$0142 only present on CGB cartridges
	CartridgeGBMode  Flag   // $0143 level of CGB support
	NewLicenseeCode  string // $0144-$0145 used when OldLicenseeCode is $33
	SGBFlag          bool   // $0146 supports SGB functions
	CartridgeType    Type   // $0147 hardware present on the cartridge
	ROMBanks         int    // $0148 number of 16KiB ROM banks
	RAMBanks         int    // $0149 number of 8KiB RAM banks
	DestinationCode  uint8  // $014A 0 = Japanese
	OldLicenseeCode  uint8  // $014B publisher, $33 = see NewLicenseeCode
	MaskROMVersion   uint8  // $014C version of the game
	HeaderChecksum   uint8  // $014D checksum of $0134-$014C
	GlobalChecksum   uint16 // $014E-$014F big endian sum of the ROM

	raw [0x50]byte
}

// ParseHeader parses the cartridge header from the given ROM.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < 0x150 {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}
	h := &Header{}
	copy(h.raw[:], rom[0x100:0x150])

	switch {
	case rom[0x143] == 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	case rom[0x143]&0x80 != 0:
		h.CartridgeGBMode = FlagSupportsCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// CGB cartridges moved the manufacturer code into the
	// last 4 bytes of the title
	if h.CartridgeGBMode == FlagOnlyDMG {
		h.Title = string(rom[0x134:0x144])
	} else {
		h.Title = string(rom[0x134:0x13F])
		h.ManufacturerCode = strings.TrimRight(string(rom[0x13F:0x143]), "\x00")
	}
	h.Title = strings.TrimRight(strings.ReplaceAll(h.Title, "\x00", " "), " ")

	h.NewLicenseeCode = string(rom[0x144:0x146])
	h.SGBFlag = rom[0x146] == 0x03
	h.CartridgeType = Type(rom[0x147])

	switch size := rom[0x148]; {
	case size <= 0x08:
		h.ROMBanks = 2 << size
	case size == 0x52:
		h.ROMBanks = 72
	case size == 0x53:
		h.ROMBanks = 80
	case size == 0x54:
		h.ROMBanks = 96
	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrInvalidROMSize, size)
	}
	h.RAMBanks = ramBanks[rom[0x149]]

	h.DestinationCode = rom[0x14A]
	h.OldLicenseeCode = rom[0x14B]
	h.MaskROMVersion = rom[0x14C]
	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E])<<8 | uint16(rom[0x14F])

	return h, nil
}

// ROMSize returns the expected size of the ROM in bytes.
func (h *Header) ROMSize() int {
	return h.ROMBanks * BankSize
}

// RAMSize returns the size of the external RAM in bytes.
func (h *Header) RAMSize() int {
	return h.RAMBanks * RAMBankSize
}

// GameboyColor reports whether the cartridge makes use of
// CGB features, optionally or not.
func (h *Header) GameboyColor() bool {
	return h.CartridgeGBMode != FlagOnlyDMG
}

// Japanese reports whether the cartridge was intended
// for sale in Japan.
func (h *Header) Japanese() bool {
	return h.DestinationCode == 0
}

// Destination returns the destination as specified in the cartridge header.
func (h *Header) Destination() string {
	switch h.DestinationCode {
	case 0:
		return "Japanese"
	case 1:
		return "Non-Japanese"
	default:
		return "Unknown"
	}
}

// SGB returns true if the cartridge supports SGB functions,
// which also requires the new licensee code to be in use.
func (h *Header) SGB() bool {
	return h.SGBFlag && h.OldLicenseeCode == 0x33
}

// Licensee returns the publisher of the cartridge.
func (h *Header) Licensee() string {
	if h.OldLicenseeCode == 0x33 {
		return newLicenseeCodeMap[h.NewLicenseeCode]
	}

	return oldLicenseeCodeMap[h.OldLicenseeCode]
}

// Nintendo reports whether the cartridge was published by
// Nintendo. Only these games are colourised by the CGB boot ROM.
func (h *Header) Nintendo() bool {
	return h.OldLicenseeCode == 0x01 || (h.OldLicenseeCode == 0x33 && h.NewLicenseeCode == "01")
}

// HeaderChecksumOK verifies the header checksum the boot ROM
// checks before starting the game.
func (h *Header) HeaderChecksumOK() bool {
	var x uint8
	for _, b := range h.raw[0x34:0x4D] {
		x = x - b - 1
	}
	return x == h.HeaderChecksum
}

// TitleChecksum returns the sum of the 16 title bytes, used
// by the CGB boot ROM to pick a colourisation palette for
// DMG games.
func (h *Header) TitleChecksum() uint8 {
	var sum uint8
	for _, b := range h.raw[0x34:0x44] {
		sum += b
	}
	return sum
}

// TitleDisambiguation returns the fourth letter of the title,
// used to tell apart games that share a TitleChecksum.
func (h *Header) TitleDisambiguation() uint8 {
	return h.raw[0x37]
}

// Hardware returns the name of the hardware the cartridge targets.
func (h *Header) Hardware() string {
	if h.GameboyColor() {
		return "CGB"
	}
	return "DMG"
}

// String implements the fmt.Stringer interface.
func (h *Header) String() string {
	return fmt.Sprintf("%s (%s) | %s | ROM: %dKiB RAM: %dKiB | %s", h.Title, h.Licensee(), h.Hardware(), h.ROMSize()/1024, h.RAMSize()/1024, h.CartridgeType)
}
