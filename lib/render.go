// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/ergochat/ircmark/markup"
	"github.com/ergochat/ircmark/palette"
	"github.com/ergochat/ircmark/styles"
)

// DefaultFontSize is the point size the style table is built for; terminals
// ignore it, but it is kept with the table for other front ends.
const DefaultFontSize = 10

// Renderer draws styled lines as ANSI text for a terminal.
type Renderer struct {
	Palette    *palette.Palette
	Table      styles.Table
	Level      ColorLevel
	Hyperlinks bool
	// italic table entries are drawn upright when false
	Italics bool
}

// NewRenderer returns a renderer over pal at the given color level.
func NewRenderer(pal *palette.Palette, level ColorLevel, hyperlinks bool) *Renderer {
	return &Renderer{
		Palette:    pal,
		Table:      styles.Build(DefaultFontSize),
		Level:      level,
		Hyperlinks: hyperlinks,
		Italics:    true,
	}
}

// SetFontSize rebuilds the style table for size, if it changed.
func (r *Renderer) SetFontSize(size int) {
	if r.Table.Lookup(styles.Plain).Size != size {
		r.Table = styles.Build(size)
	}
}

// Render returns line with ANSI escapes.
func (r *Renderer) Render(line markup.StyledLine) string {
	var buf strings.Builder
	for _, run := range line.Runs() {
		buf.WriteString(r.renderRun(run))
	}
	return buf.String()
}

func (r *Renderer) renderRun(run markup.Run) string {
	text := run.Text
	if run.Tag == styles.Hyperlink && r.Hyperlinks {
		text = termenv.Hyperlink(linkTarget(text), text)
	}
	if r.Level == ColorLevelNone {
		return text
	}

	entry := r.Table.Lookup(run.Tag)
	style := termenv.String()
	switch entry.Font {
	case styles.FontBold:
		style = style.Bold()
	case styles.FontItalic:
		if r.Italics {
			style = style.Italic()
		}
	}
	// the table gives underline the plain weight; terminals can draw it
	if run.Tag.Underline() {
		style = style.Underline()
	}
	style = style.Foreground(r.Color(entry.Color))
	return style.Styled(text)
}

// Color returns the terminal color for slot at the renderer's level, or nil
// for the terminal's own foreground.
func (r *Renderer) Color(slot palette.Slot) termenv.Color {
	if slot == palette.SlotTextFG || r.Level == ColorLevelNone {
		return nil
	}
	mirc := slot >= 0 && int(slot) < 2*palette.MircColors
	index := uint8(int(slot) % palette.MircColors)

	switch r.Level {
	case ColorLevelBasic:
		if mirc {
			return ansiColor(ircColorToAnsiForeground[index])
		}
		return termenv.ANSI.Convert(r.rgb(slot))
	case ColorLevelAnsi256:
		if mirc {
			if override, ok := ircColorToAnsi256[index]; ok {
				return termenv.ANSI256Color(override)
			}
			return ansiColor(ircColorToAnsiForeground[index])
		}
		return termenv.ANSI256.Convert(r.rgb(slot))
	default:
		return r.rgb(slot)
	}
}

func (r *Renderer) rgb(slot palette.Slot) termenv.Color {
	return termenv.RGBColor(r.Palette.Get(slot).Hex())
}

// ansiColor turns an SGR foreground code (30-37, 90-97) into a termenv color.
func ansiColor(code uint8) termenv.Color {
	if code >= 90 {
		return termenv.ANSIColor(code - 90 + 8)
	}
	return termenv.ANSIColor(code - 30)
}

func linkTarget(text string) string {
	if len(text) >= 4 && strings.EqualFold(text[:4], "www.") {
		return "http://" + text
	}
	return text
}

// Status renders a line of ircmark's own output in the action style.
func (r *Renderer) Status(text string) string {
	return r.Render(markup.Tagged(text, styles.Action))
}

// Message renders free text (a message body) without a trailing newline.
func (r *Renderer) Message(text string) string {
	return r.Render(markup.TranscodeText(text))
}

// ProtocolLine renders a raw protocol line. Only the final parameter is
// formatted; tags, source, command and middle parameters are left as sent.
func (r *Renderer) ProtocolLine(line string) string {
	parts := SplitLineIntoParts(line)
	final := finalParameterIndex(parts)
	if final == -1 {
		return line
	}
	param := parts[final]
	prefix := ""
	if strings.HasPrefix(param, ":") {
		prefix, param = ":", param[1:]
	}
	parts[final] = prefix + r.Message(param)
	return strings.Join(parts, "")
}

// finalParameterIndex finds the part holding the last parameter, or -1 if
// the line has none.
func finalParameterIndex(parts []string) int {
	haveTags, haveSource, haveCommand := false, false, false
	lastParam := -1
	for i, part := range parts {
		if part == "" || part[0] == ' ' {
			continue
		}
		switch {
		case haveCommand:
			lastParam = i
		case !haveTags && !haveSource && part[0] == '@':
			haveTags = true
		case !haveSource && part[0] == ':':
			haveSource = true
		default:
			haveCommand = true
		}
	}
	if lastParam != len(parts)-1 {
		return -1
	}
	return lastParam
}

var defaultPalette = palette.New()

// IRCMessageToAnsi renders a message body with the default palette.
func IRCMessageToAnsi(text string, level ColorLevel, hyperlinks bool) string {
	return NewRenderer(defaultPalette, level, hyperlinks).Message(text)
}

// IRCLineToAnsi renders a raw protocol line with the default palette.
func IRCLineToAnsi(line string, level ColorLevel, hyperlinks bool) string {
	return NewRenderer(defaultPalette, level, hyperlinks).ProtocolLine(line)
}
