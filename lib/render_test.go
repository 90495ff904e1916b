// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergochat/ircmark/palette"
	"github.com/ergochat/ircmark/styles"
)

func TestRendererColor(t *testing.T) {
	pal := palette.New()

	basic := NewRenderer(pal, ColorLevelBasic, false)
	assert.Nil(t, basic.Color(palette.SlotTextFG))
	assert.Equal(t, termenv.ANSIColor(4), basic.Color(2))
	// the second copy of the mIRC colors maps the same way
	assert.Equal(t, termenv.ANSIColor(4), basic.Color(palette.MircColors+2))
	assert.Equal(t, termenv.ANSIColor(9), basic.Color(4))

	ansi256 := NewRenderer(pal, ColorLevelAnsi256, false)
	assert.Equal(t, termenv.ANSI256Color(94), ansi256.Color(5))
	assert.Equal(t, termenv.ANSIColor(4), ansi256.Color(2))

	truecolor := NewRenderer(pal, ColorLevelAnsi16m, false)
	assert.Equal(t, termenv.RGBColor("#a40000"), truecolor.Color(palette.SlotSpell))
	pal.Set(palette.SlotSpell, palette.RGB{R: 255})
	assert.Equal(t, termenv.RGBColor("#ff0000"), truecolor.Color(palette.SlotSpell))

	none := NewRenderer(pal, ColorLevelNone, false)
	assert.Nil(t, none.Color(2))
}

func TestRendererFontSize(t *testing.T) {
	renderer := NewRenderer(palette.New(), ColorLevelBasic, false)
	assert.Equal(t, DefaultFontSize, renderer.Table.Lookup(styles.Plain).Size)
	renderer.SetFontSize(14)
	for tag := styles.Tag(0); tag < styles.NumTags; tag++ {
		require.Equal(t, 14, renderer.Table.Lookup(tag).Size, "tag %d", tag)
	}
	// the rest of the table is unchanged
	assert.Equal(t, styles.Build(14), renderer.Table)
}

func TestRendererItalics(t *testing.T) {
	renderer := NewRenderer(palette.New(), ColorLevelBasic, false)
	assert.Equal(t, "\x1b[3;32m** hi\x1b[0m", renderer.Status("** hi"))
	renderer.Italics = false
	assert.Equal(t, "\x1b[32m** hi\x1b[0m", renderer.Status("** hi"))
	renderer.Level = ColorLevelNone
	assert.Equal(t, "** hi", renderer.Status("** hi"))
}

func TestParseColorLevel(t *testing.T) {
	for input, expected := range map[string]ColorLevel{
		"none":      ColorLevelNone,
		"16":        ColorLevelBasic,
		"256":       ColorLevelAnsi256,
		"TrueColor": ColorLevelAnsi16m,
	} {
		level, err := ParseColorLevel(input)
		require.NoError(t, err)
		assert.Equal(t, expected, level)
		if input != "TrueColor" {
			assert.Equal(t, input, level.String())
		}
	}
	_, err := ParseColorLevel("auto")
	assert.Error(t, err)
}

func testDisplay(format string) *Display {
	return &Display{
		Renderer:        NewRenderer(palette.New(), ColorLevelNone, false),
		TimestampFormat: format,
		Now: func() time.Time {
			return time.Date(2026, 3, 1, 12, 34, 56, 0, time.UTC)
		},
	}
}

var displayTestCases = []stringTestCase{
	{":alice!a@example.com PRIVMSG #chan :hello there", "12:34 <alice> hello there"},
	{":alice!a@example.com PRIVMSG #chan :\x02bold\x02 move", "12:34 <alice> bold move"},
	{":alice!a@example.com PRIVMSG #chan :\x01ACTION waves\x01", "12:34 * alice waves"},
	{":alice!a@example.com PRIVMSG #chan :\x01ACTION \x0304waves hi\x01", "12:34 * alice waves hi"},
	{":alice!a@example.com NOTICE bob :psst", "12:34 -alice- psst"},
	{"PING :\x02x", "12:34 PING :x"},
	{":irc.example.com 001 bob :Welcome", "12:34 :irc.example.com 001 bob :Welcome"},
}

func TestDisplayLine(t *testing.T) {
	runTestCases(t, displayTestCases, testDisplay("%H:%M").Line, ansiDebugEscape)
}

func TestDisplayWithoutTimestamp(t *testing.T) {
	display := testDisplay("")
	assert.Equal(t, "<alice> hi", display.Line(":alice PRIVMSG #chan :hi"))
	assert.Equal(t, "PING :x", display.Line("PING :x"))
}

func TestDisplayNickColor(t *testing.T) {
	display := testDisplay("")
	display.Renderer.Level = ColorLevelBasic
	line := display.Line(":alice PRIVMSG #chan :hi")
	assert.Contains(t, line, "alice")
	assert.NotEqual(t, "<alice> hi", line)
	assert.Contains(t, line, "\x1b[")
}
