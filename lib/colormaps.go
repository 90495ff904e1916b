// Copyright (c) 2023 Shivaram Lingamneni <slingamn@cs.stanford.edu>
// released under the ISC license

package lib

// there is a slight mismatch between the 16 basic IRC colors and the ANSI colors;
// this is Dan's mapping that works nicely with mainstream terminal color schemes
var ircColorToAnsiForeground = [16]uint8{
	97, // 00 white -> white, high intensity
	30, // 01 black
	34, // 02 blue
	32, // 03 green
	91, // 04 red -> red, high intensity
	31, // 05 brown -> red, normal intensity
	35, // 06 magenta
	33, // 07 orange -> yellow, normal intensity
	93, // 08 yellow -> yellow, high intensity
	92, // 09 light green -> green, high intensity
	36, // 10 cyan
	96, // 11 light cyan -> cyan, high intensity
	94, // 12 light blue -> blue, high intensity
	95, // 13 pink -> magenta, high intensity
	90, // 14 gray -> black, high intensity
	37, // 15 light gray -> white, normal intensity
}

var ircColorToAnsi256 = map[uint8]uint8{
	// overrides for the 16-color palette
	5: 94,  // brown
	7: 208, // orange
	// i considered mapping red to a "true red" but not sure how that would
	// interact with unusual remappings of the 16 colors, such as Solarized
	// 4: 196,
}
