// Copyright (c) 2026 ircmark contributors
// released under the ISC license

// Package styles defines the per-character style tags attached to transcoded
// text and the table that maps each tag to a color, font and size.
package styles

import (
	"github.com/ergochat/ircmark/palette"
)

// Tag selects one rendering region for a single character.
//
// Layout:
//
//	0      plain
//	1      action (italic)
//	2      CTCP (bold)
//	3-18   mIRC foreground 0-15
//	19-37  bold region (19 = bold default, 22-37 = bold mIRC 0-15)
//	38-56  underline region (38 = underline default, 41-56 = underline mIRC 0-15)
//	57     hyperlink
type Tag uint8

const (
	Plain     Tag = 0
	Action    Tag = 1
	CTCP      Tag = 2
	Hyperlink Tag = 57

	// NumTags is the size of a Table.
	NumTags = 58

	colorBase       = 3
	regionSize      = 19
	boldRegion      = regionSize
	underlineRegion = 2 * regionSize
)

// Compose returns the tag for a foreground color (negative for none) combined
// with bold or underline. Bold takes precedence over underline; foregrounds
// outside 0..15 are treated as none.
func Compose(fg int, bold, underline bool) Tag {
	base := 0
	if 0 <= fg && fg < palette.MircColors {
		base = colorBase + fg
	}
	if bold {
		base += boldRegion
	} else if underline {
		base += underlineRegion
	}
	return Tag(base)
}

// Foreground returns the mIRC color carried by t, if any.
func (t Tag) Foreground() (fg int, ok bool) {
	if t >= Hyperlink {
		return -1, false
	}
	offset := int(t) % regionSize
	if offset < colorBase {
		// plain/action/CTCP in the first region, defaults and padding elsewhere
		return -1, false
	}
	return offset - colorBase, true
}

// Bold reports whether t is in the bold region.
func (t Tag) Bold() bool {
	return boldRegion <= t && t < underlineRegion
}

// Underline reports whether t is in the underline region.
func (t Tag) Underline() bool {
	return underlineRegion <= t && t < Hyperlink
}
