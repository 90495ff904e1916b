// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ergochat/ircmark/palette"
)

func TestCompose(t *testing.T) {
	assert.Equal(t, Plain, Compose(-1, false, false))
	assert.Equal(t, Tag(3), Compose(0, false, false))
	assert.Equal(t, Tag(18), Compose(15, false, false))
	assert.Equal(t, Tag(19), Compose(-1, true, false))
	assert.Equal(t, Tag(22), Compose(0, true, false))
	assert.Equal(t, Tag(37), Compose(15, true, false))
	assert.Equal(t, Tag(38), Compose(-1, false, true))
	assert.Equal(t, Tag(41), Compose(0, false, true))
	assert.Equal(t, Tag(56), Compose(15, false, true))
	// bold wins
	assert.Equal(t, Tag(24), Compose(2, true, true))
	// out of range colors are ignored
	assert.Equal(t, Plain, Compose(16, false, false))
	assert.Equal(t, Tag(19), Compose(99, true, false))
}

func TestTagAccessors(t *testing.T) {
	for fg := -1; fg < 16; fg++ {
		for _, bold := range []bool{false, true} {
			for _, underline := range []bool{false, true} {
				tag := Compose(fg, bold, underline)
				got, ok := tag.Foreground()
				if fg < 0 {
					assert.False(t, ok, "tag %d", tag)
				} else {
					assert.True(t, ok, "tag %d", tag)
					assert.Equal(t, fg, got)
				}
				assert.Equal(t, bold, tag.Bold(), "tag %d", tag)
				assert.Equal(t, underline && !bold, tag.Underline(), "tag %d", tag)
			}
		}
	}
	for _, tag := range []Tag{Plain, Action, CTCP, Hyperlink} {
		_, ok := tag.Foreground()
		assert.False(t, ok)
		assert.False(t, tag.Bold())
		assert.False(t, tag.Underline())
	}
}

func TestBuild(t *testing.T) {
	table := Build(12)
	for i, entry := range table {
		assert.Equal(t, 12, entry.Size, "tag %d", i)
	}

	assert.Equal(t, Entry{palette.SlotTextFG, FontRegular, 12}, table[Plain])
	assert.Equal(t, FontItalic, table[Action].Font)
	assert.Equal(t, FontBold, table[CTCP].Font)
	assert.Equal(t, FontRegular, table[Hyperlink].Font)

	for fg := 0; fg < 16; fg++ {
		plain := table[Compose(fg, false, false)]
		bold := table[Compose(fg, true, false)]
		underline := table[Compose(fg, false, true)]
		assert.Equal(t, palette.Slot(fg), plain.Color)
		assert.Equal(t, palette.Slot(fg), bold.Color)
		assert.Equal(t, palette.Slot(fg), underline.Color)
		assert.Equal(t, FontRegular, plain.Font)
		assert.Equal(t, FontBold, bold.Font)
		assert.Equal(t, FontRegular, underline.Font)
	}

	// padding slots render as their region's default
	assert.Equal(t, table[19], table[20])
	assert.Equal(t, table[19], table[21])
	assert.Equal(t, table[38], table[40])
}

func TestBuildFollowsSize(t *testing.T) {
	small, large := Build(9), Build(16)
	assert.NotEqual(t, small, large)
	assert.Equal(t, 16, large.Lookup(Hyperlink).Size)
	assert.Equal(t, large[Plain], large.Lookup(Tag(200)))
}
