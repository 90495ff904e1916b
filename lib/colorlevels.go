package lib

import (
	"fmt"
	"strings"
)

// this is copied and pasted from https://github.com/jwalton/go-supportscolor
// to avoid a direct dependency of our lib/ package on the upstream library

// ColorLevel represents the ANSI color level supported by the terminal.
type ColorLevel int

const (
	// None represents a terminal that does not support color at all.
	ColorLevelNone ColorLevel = 0
	// Basic represents a terminal with basic 16 color support.
	ColorLevelBasic ColorLevel = 1
	// Ansi256 represents a terminal with 256 color support.
	ColorLevelAnsi256 ColorLevel = 2
	// Ansi16m represents a terminal with full true color support.
	ColorLevelAnsi16m ColorLevel = 3
)

func (c ColorLevel) String() string {
	switch c {
	case ColorLevelNone:
		return "none"
	case ColorLevelBasic:
		return "16"
	case ColorLevelAnsi256:
		return "256"
	case ColorLevelAnsi16m:
		return "truecolor"
	default:
		return fmt.Sprintf("ColorLevel(%d)", int(c))
	}
}

// ParseColorLevel reads a --color or config value. "auto" and "" are not
// levels; callers detect the terminal's level for those.
func ParseColorLevel(s string) (ColorLevel, error) {
	switch strings.ToLower(s) {
	case "none", "off", "0":
		return ColorLevelNone, nil
	case "16", "basic":
		return ColorLevelBasic, nil
	case "256":
		return ColorLevelAnsi256, nil
	case "truecolor", "16m", "24bit":
		return ColorLevelAnsi16m, nil
	default:
		return ColorLevelNone, fmt.Errorf("unknown color level %q", s)
	}
}
