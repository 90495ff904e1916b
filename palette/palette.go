// Copyright (c) 2026 ircmark contributors
// released under the ISC license

// Package palette holds the RGB color table shared by the renderer and the
// spell overlay: the 16 mIRC colors (twice, for the legacy extended range)
// followed by the UI role colors.
package palette

import (
	"fmt"
	"sync"
)

// Slot indexes a palette entry.
type Slot int

const (
	// MircColors is the number of conventional mIRC colors.
	MircColors = 16

	SlotMarkFG    Slot = 32 // selection foreground
	SlotMarkBG    Slot = 33 // selection background
	SlotTextFG    Slot = 34 // text foreground
	SlotTextBG    Slot = 35 // text background
	SlotMarker    Slot = 36 // marker line
	SlotNewData   Slot = 37 // tab with new data
	SlotHighlight Slot = 38 // tab with a highlight
	SlotNewMsg    Slot = 39 // tab with a new message
	SlotAway      Slot = 40 // away user
	SlotSpell     Slot = 41 // spelling error

	MaxSlot  Slot = 41
	NumSlots      = int(MaxSlot) + 1
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var mircDefaults = [MircColors]RGB{
	{211, 215, 207}, // 00 white
	{46, 52, 54},    // 01 black
	{52, 101, 164},  // 02 blue
	{78, 154, 6},    // 03 green
	{204, 0, 0},     // 04 red
	{143, 57, 2},    // 05 brown
	{92, 53, 102},   // 06 purple
	{206, 92, 0},    // 07 orange
	{196, 160, 0},   // 08 yellow
	{115, 210, 22},  // 09 light green
	{17, 168, 121},  // 10 cyan
	{88, 161, 157},  // 11 light cyan
	{87, 121, 158},  // 12 light blue
	{160, 66, 101},  // 13 pink
	{85, 87, 83},    // 14 grey
	{136, 138, 133}, // 15 light grey
}

var roleDefaults = [NumSlots - 2*MircColors]RGB{
	{211, 215, 207}, // mark fg
	{32, 74, 135},   // mark bg
	{37, 41, 43},    // text fg
	{250, 250, 248}, // text bg
	{143, 57, 2},    // marker
	{52, 101, 164},  // new data
	{78, 154, 6},    // highlight
	{206, 92, 0},    // new message
	{136, 138, 133}, // away
	{164, 0, 0},     // spell error
}

// Defaults returns the built-in color table.
func Defaults() (result [NumSlots]RGB) {
	copy(result[:MircColors], mircDefaults[:])
	copy(result[MircColors:2*MircColors], mircDefaults[:])
	copy(result[2*MircColors:], roleDefaults[:])
	return
}

// Palette is a mutable color table. The zero value is not usable; use New.
type Palette struct {
	sync.RWMutex
	colors [NumSlots]RGB
	// snapshot of the colors before the first change, for Reset
	defaults *[NumSlots]RGB
}

// New returns a palette initialized with the built-in colors.
func New() *Palette {
	return &Palette{colors: Defaults()}
}

// Valid reports whether slot is inside the table.
func (s Slot) Valid() bool {
	return 0 <= s && s <= MaxSlot
}

// Get returns the color for slot; slots outside the table get the text
// foreground color.
func (p *Palette) Get(slot Slot) RGB {
	p.RLock()
	defer p.RUnlock()
	if !slot.Valid() {
		return p.colors[SlotTextFG]
	}
	return p.colors[slot]
}

// Colors returns a copy of the whole table.
func (p *Palette) Colors() [NumSlots]RGB {
	p.RLock()
	defer p.RUnlock()
	return p.colors
}

// Set changes one slot. It reports false (and changes nothing) when the slot
// is out of range.
func (p *Palette) Set(slot Slot, c RGB) bool {
	if !slot.Valid() {
		return false
	}
	p.Lock()
	defer p.Unlock()
	p.saveDefaults()
	p.colors[slot] = c
	return true
}

// Reset restores the colors captured before the first change.
func (p *Palette) Reset() {
	p.Lock()
	defer p.Unlock()
	if p.defaults != nil {
		p.colors = *p.defaults
	}
}

// requires the write lock
func (p *Palette) saveDefaults() {
	if p.defaults == nil {
		snapshot := p.colors
		p.defaults = &snapshot
	}
}
