// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package markup

import (
	"github.com/ergochat/ircmark/styles"
)

// StyledLine is display text with one style tag per character. Text and
// Styles always have the same length.
type StyledLine struct {
	Text   []rune
	Styles []styles.Tag
}

// Plain returns s with every character tagged plain.
func Plain(s string) StyledLine {
	return Tagged(s, styles.Plain)
}

// Tagged returns s with every character tagged tag.
func Tagged(s string, tag styles.Tag) (line StyledLine) {
	line.pushString(s, tag)
	return
}

func (l *StyledLine) push(r rune, tag styles.Tag) {
	l.Text = append(l.Text, r)
	l.Styles = append(l.Styles, tag)
}

func (l *StyledLine) pushString(s string, tag styles.Tag) {
	for _, r := range s {
		l.push(r, tag)
	}
}

// Append adds the contents of other to the end of l.
func (l *StyledLine) Append(other StyledLine) {
	l.Text = append(l.Text, other.Text...)
	l.Styles = append(l.Styles, other.Styles...)
}

// Len returns the number of characters.
func (l StyledLine) Len() int {
	return len(l.Text)
}

// String returns the display text.
func (l StyledLine) String() string {
	return string(l.Text)
}

// Run is a maximal stretch of characters sharing one tag.
type Run struct {
	Text string
	Tag  styles.Tag
}

// Runs splits the line into runs of equal style.
func (l StyledLine) Runs() (result []Run) {
	start := 0
	for i := 1; i <= len(l.Text); i++ {
		if i == len(l.Text) || l.Styles[i] != l.Styles[start] {
			result = append(result, Run{Text: string(l.Text[start:i]), Tag: l.Styles[start]})
			start = i
		}
	}
	return
}

func (l StyledLine) endsWithNewline() bool {
	return len(l.Text) != 0 && l.Text[len(l.Text)-1] == '\n'
}
