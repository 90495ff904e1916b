// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package styles

import (
	"github.com/ergochat/ircmark/palette"
)

// Font is the weight or slant of an entry.
type Font int

const (
	FontRegular Font = iota
	FontBold
	FontItalic
)

func (f Font) String() string {
	switch f {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	default:
		return "regular"
	}
}

// Entry is how one tag is drawn. Color refers to a palette slot so that
// palette edits apply without rebuilding the table.
type Entry struct {
	Color palette.Slot
	Font  Font
	Size  int
}

// Table maps every Tag to its Entry.
type Table [NumTags]Entry

// Lookup returns the entry for t; tags past the end get the plain entry.
func (t *Table) Lookup(tag Tag) Entry {
	if int(tag) >= NumTags {
		return t[Plain]
	}
	return t[tag]
}

// Build returns the table for the given point size. It must be rebuilt when
// the size changes.
func Build(size int) (table Table) {
	fill := func(base int, font Font) {
		// the region default also covers the two padding slots
		for i := 0; i < colorBase; i++ {
			table[base+i] = Entry{Color: palette.SlotTextFG, Font: font, Size: size}
		}
		for i := 0; i < palette.MircColors; i++ {
			table[base+colorBase+i] = Entry{Color: palette.Slot(i), Font: font, Size: size}
		}
	}

	fill(0, FontRegular)
	fill(boldRegion, FontBold)
	// the underline region keeps the plain weight; renderers that can
	// underline do so from the tag itself
	fill(underlineRegion, FontRegular)

	table[Plain] = Entry{Color: palette.SlotTextFG, Font: FontRegular, Size: size}
	table[Action] = Entry{Color: 3, Font: FontItalic, Size: size}
	table[CTCP] = Entry{Color: 2, Font: FontBold, Size: size}
	table[Hyperlink] = Entry{Color: 2, Font: FontRegular, Size: size}
	return
}
