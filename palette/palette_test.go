// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package palette

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendedRangeDuplicatesMirc(t *testing.T) {
	p := New()
	for i := 0; i < MircColors; i++ {
		assert.Equal(t, p.Get(Slot(i)), p.Get(Slot(i+MircColors)), "slot %d", i)
	}
}

func TestOutOfRangeFallsBackToForeground(t *testing.T) {
	p := New()
	fg := p.Get(SlotTextFG)
	assert.Equal(t, fg, p.Get(-1))
	assert.Equal(t, fg, p.Get(MaxSlot+1))
	assert.Equal(t, fg, p.Get(1000))
	assert.False(t, p.Set(42, RGB{1, 2, 3}))
}

func TestSetAndReset(t *testing.T) {
	p := New()
	orig := p.Get(4)
	require.True(t, p.Set(4, RGB{1, 2, 3}))
	assert.Equal(t, RGB{1, 2, 3}, p.Get(4))
	require.True(t, p.Set(4, RGB{9, 9, 9}))
	p.Reset()
	// reset goes back to the values before the *first* change
	assert.Equal(t, orig, p.Get(4))
}

func TestResetWithoutChanges(t *testing.T) {
	p := New()
	p.Reset()
	assert.Equal(t, Defaults(), p.Colors())
}

func TestLoad(t *testing.T) {
	p := New()
	input := strings.Join([]string{
		"color_2 = 1 2 3",
		"color_256 = 10 20 30",
		"color_265 = 200 0 0",
		"color_3 = 999 0 0",
		"color_300 = 5 5 5",
		"garbage",
		"color_17 = 4 5",
	}, "\n")
	require.NoError(t, p.Load(strings.NewReader(input)))
	assert.Equal(t, RGB{1, 2, 3}, p.Get(2))
	assert.Equal(t, RGB{10, 20, 30}, p.Get(SlotMarkFG))
	assert.Equal(t, RGB{200, 0, 0}, p.Get(SlotSpell))
	assert.Equal(t, Defaults()[3], p.Get(3))
	assert.Equal(t, Defaults()[17], p.Get(17))

	p.Reset()
	assert.Equal(t, Defaults(), p.Colors())
}

func TestSaveRoundTrip(t *testing.T) {
	p := New()
	p.Set(SlotAway, RGB{7, 8, 9})
	p.Set(0, RGB{255, 255, 255})

	var buf bytes.Buffer
	require.NoError(t, p.Save(&buf))
	out := buf.String()
	assert.Contains(t, out, "color_0 = 255 255 255\n")
	assert.Contains(t, out, "color_264 = 7 8 9\n")
	assert.Equal(t, NumSlots, strings.Count(out, "\n"))

	q := New()
	require.NoError(t, q.Load(&buf))
	assert.Equal(t, p.Colors(), q.Colors())
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.conf")

	p := New()
	require.NoError(t, p.LoadFile(path), "missing file is fine")
	p.Set(5, RGB{1, 1, 1})
	require.NoError(t, p.SaveFile(path))

	q := New()
	require.NoError(t, q.LoadFile(path))
	assert.Equal(t, RGB{1, 1, 1}, q.Get(5))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#3465a4", RGB{52, 101, 164}.Hex())
}

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("4")
	require.NoError(t, err)
	assert.Equal(t, Slot(4), slot)

	slot, err = ParseSlot("Spell")
	require.NoError(t, err)
	assert.Equal(t, SlotSpell, slot)
	assert.Equal(t, "spell", slot.String())
	assert.Equal(t, "12", Slot(12).String())

	_, err = ParseSlot("42")
	assert.Error(t, err)
	_, err = ParseSlot("sparkle")
	assert.Error(t, err)
}

func TestParseRGB(t *testing.T) {
	cases := []struct {
		input string
		rgb   RGB
		ok    bool
	}{
		{"#3465a4", RGB{52, 101, 164}, true},
		{"3465A4", RGB{52, 101, 164}, true},
		{"52 101 164", RGB{52, 101, 164}, true},
		{"#3465a", RGB{}, false},
		{"#zzzzzz", RGB{}, false},
		{"256 0 0", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, c := range cases {
		rgb, err := ParseRGB(c.input)
		if c.ok {
			require.NoError(t, err, c.input)
			assert.Equal(t, c.rgb, rgb, c.input)
		} else {
			assert.Error(t, err, c.input)
		}
	}
}
