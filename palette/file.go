// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package palette

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// UI role slots are stored as 256 + (slot - 32) in colors.conf, so that the
// files stay interchangeable with other HexChat-derived clients.
const roleFileBase = 256

// Load reads "color_<n> = <r> <g> <b>" lines from r. Lines that don't parse,
// name an unknown slot, or carry components outside 0..255 are skipped.
func (p *Palette) Load(r io.Reader) error {
	p.Lock()
	defer p.Unlock()
	p.saveDefaults()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var idx, red, green, blue int
		n, err := fmt.Sscanf(scanner.Text(), "color_%d = %d %d %d", &idx, &red, &green, &blue)
		if err != nil || n != 4 {
			continue
		}
		if idx >= roleFileBase {
			idx = 2*MircColors + (idx - roleFileBase)
		}
		slot := Slot(idx)
		if !slot.Valid() || !component(red) || !component(green) || !component(blue) {
			continue
		}
		p.colors[slot] = RGB{uint8(red), uint8(green), uint8(blue)}
	}
	return scanner.Err()
}

func component(v int) bool {
	return 0 <= v && v <= 255
}

// Save writes the table in the format read by Load.
func (p *Palette) Save(w io.Writer) error {
	colors := p.Colors()
	bw := bufio.NewWriter(w)
	for i, c := range colors {
		idx := i
		if i >= 2*MircColors {
			idx = roleFileBase + (i - 2*MircColors)
		}
		fmt.Fprintf(bw, "color_%d = %d %d %d\n", idx, c.R, c.G, c.B)
	}
	return bw.Flush()
}

// LoadFile loads colors from path. A missing file leaves the palette as it is.
func (p *Palette) LoadFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	return p.Load(f)
}

// SaveFile writes the palette to path, replacing its contents.
func (p *Palette) SaveFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if err := p.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
