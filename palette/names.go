// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package palette

import (
	"fmt"
	"strconv"
	"strings"
)

var roleNames = map[Slot]string{
	SlotMarkFG:    "mark-fg",
	SlotMarkBG:    "mark-bg",
	SlotTextFG:    "text-fg",
	SlotTextBG:    "text-bg",
	SlotMarker:    "marker",
	SlotNewData:   "new-data",
	SlotHighlight: "highlight",
	SlotNewMsg:    "new-message",
	SlotAway:      "away",
	SlotSpell:     "spell",
}

// String returns the role name of a UI slot, or its number.
func (s Slot) String() string {
	if name, ok := roleNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

// ParseSlot accepts a slot number or a role name such as "spell".
func ParseSlot(name string) (Slot, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, err := strconv.Atoi(name); err == nil {
		if slot := Slot(n); slot.Valid() {
			return slot, nil
		}
		return 0, fmt.Errorf("color slot %d out of range 0-%d", n, MaxSlot)
	}
	for slot, role := range roleNames {
		if role == name {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("unknown color slot %q", name)
}

// ParseRGB accepts "#rrggbb", "rrggbb" or "r g b".
func ParseRGB(s string) (c RGB, err error) {
	s = strings.TrimSpace(s)
	if fields := strings.Fields(s); len(fields) == 3 {
		var parts [3]uint8
		for i, field := range fields {
			v, err := strconv.ParseUint(field, 10, 8)
			if err != nil {
				return c, fmt.Errorf("invalid color %q: %w", s, err)
			}
			parts[i] = uint8(v)
		}
		return RGB{parts[0], parts[1], parts[2]}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return c, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}
