// Package cheats implements Game Genie and GameShark codes. Game
// Genie codes patch values read from the cartridge ROM, GameShark
// codes overwrite RAM once per frame.
package cheats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidCode is returned for codes that can't be parsed.
	ErrInvalidCode = errors.New("cheats: invalid code")
	// ErrUnsupportedCode is returned for valid codes that can't
	// be emulated.
	ErrUnsupportedCode = errors.New("cheats: unsupported code")
	// ErrNoCheat is returned when enabling or disabling a cheat
	// that was never added.
	ErrNoCheat = errors.New("cheats: no such cheat")
)

// Cheat is a named group of codes.
type Cheat struct {
	Name    string
	Enabled bool

	codes []string
}

// Codes returns the raw codes of the cheat.
func (c Cheat) Codes() []string {
	return c.codes
}

// Cheats is the set of cheats applied to a game.
type Cheats struct {
	Genie GameGenie
	Shark GameShark

	cheats []Cheat
}

// Add parses the whitespace separated codes in text as the cheat
// name, and enables it. Nothing is added if any of the codes is
// invalid.
func (c *Cheats) Add(name, text string) error {
	codes := strings.Fields(text)
	if len(codes) == 0 {
		return fmt.Errorf("%w: cheat %q has no codes", ErrInvalidCode, name)
	}

	var genie []GameGenieCode
	var shark []GameSharkCode
	for _, code := range codes {
		// Game Genie codes are hyphenated
		if strings.Contains(code, "-") {
			gc, err := parseGameGenieCode(code)
			if err != nil {
				return err
			}
			gc.Name, gc.Enabled = name, true
			genie = append(genie, gc)
			continue
		}

		sc, err := parseGameSharkCode(code)
		if err != nil {
			return err
		}
		sc.Name, sc.Enabled = name, true
		shark = append(shark, sc)
	}

	c.Genie.Codes = append(c.Genie.Codes, genie...)
	c.Shark.Codes = append(c.Shark.Codes, shark...)
	c.cheats = append(c.cheats, Cheat{Name: name, Enabled: true, codes: codes})

	return nil
}

// SetEnabled enables or disables the cheat name.
func (c *Cheats) SetEnabled(name string, enabled bool) error {
	found := false
	for i := range c.cheats {
		if c.cheats[i].Name == name {
			c.cheats[i].Enabled = enabled
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %q", ErrNoCheat, name)
	}

	c.Genie.SetEnabled(name, enabled)
	c.Shark.SetEnabled(name, enabled)
	return nil
}

// List returns the cheats in the order they were added.
func (c *Cheats) List() []Cheat {
	return append([]Cheat(nil), c.cheats...)
}

// Parse reads a cheat file, adding each cheat it holds. The file
// format is as follows:
//
//	# Cheat Name
//	ABC-DEF-GHI
//	01FF12C0
//
// Each cheat may have any number of codes, of either kind. Blank
// lines are ignored.
func (c *Cheats) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	name, codes := "", []string(nil)
	flush := func() error {
		if name == "" && len(codes) == 0 {
			return nil
		}
		if name == "" {
			return fmt.Errorf("%w: codes before the first cheat name", ErrInvalidCode)
		}
		err := c.Add(name, strings.Join(codes, " "))
		name, codes = "", nil
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line[0] == '#':
			if err := flush(); err != nil {
				return err
			}
			name = strings.TrimSpace(line[1:])
		default:
			codes = append(codes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return flush()
}

// Save writes the cheats to w in the format read by Parse.
func (c *Cheats) Save(w io.Writer) error {
	for _, cheat := range c.cheats {
		if _, err := fmt.Fprintf(w, "# %s\n", cheat.Name); err != nil {
			return err
		}
		for _, code := range cheat.codes {
			if _, err := fmt.Fprintln(w, code); err != nil {
				return err
			}
		}
	}

	return nil
}
