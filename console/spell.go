// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package console

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/termenv"

	"github.com/ergochat/ircmark/lib"
	"github.com/ergochat/ircmark/spell"
	"github.com/ergochat/ircmark/words"
)

const keyTab = '\t'

// messageStart returns the offset of the text that should be spell checked:
// the trailing parameter of a protocol line. Local commands and lines
// without a trailing parameter are not checked.
func messageStart(line string) (int, bool) {
	if lib.IsLocal(line) {
		return 0, false
	}
	i := strings.Index(line, " :")
	if i == -1 {
		return 0, false
	}
	return i + 2, true
}

func byteOffset(line []rune, pos int) int {
	if pos > len(line) {
		pos = len(line)
	}
	return len(string(line[:pos]))
}

// Painter underlines misspelled words of the message being typed in the
// palette's spelling error color. The word just before the cursor is left
// alone while it is still being typed.
type Painter struct {
	Engine *spell.Engine
	// Color gives the current spelling error color; nil keeps the
	// terminal's foreground
	Color func() termenv.Color
}

func (p *Painter) Paint(line []rune, pos int) []rune {
	text := string(line)
	start, ok := messageStart(text)
	if !ok {
		return line
	}
	cursor := byteOffset(line, pos)

	var buf strings.Builder
	last := 0
	for _, span := range p.Engine.Check(text[start:]) {
		span.Start += start
		span.End += start
		if span.Correct || span.End == cursor {
			continue
		}
		buf.WriteString(text[last:span.Start])
		buf.WriteString(p.mark(span.Text(text)))
		last = span.End
	}
	if last == 0 {
		return line
	}
	buf.WriteString(text[last:])
	return []rune(buf.String())
}

func (p *Painter) mark(word string) string {
	style := termenv.String().Underline()
	if p.Color != nil {
		style = style.Foreground(p.Color())
	}
	return style.Styled(word)
}

// Corrector replaces the misspelled word at the cursor with its first
// suggestion when TAB is pressed. Pressing TAB again cycles through the
// remaining suggestions and finally back to the original word.
type Corrector struct {
	Engine *spell.Engine

	// state of the last replacement, to recognize a repeated TAB
	lastLine    string
	lastCursor  int
	span        words.Span
	choices     []string
	choiceIndex int
}

func (c *Corrector) OnChange(line []rune, pos int, key rune) (newLine []rune, newPos int, ok bool) {
	if key != keyTab {
		return nil, 0, false
	}
	text := string(line)
	cursor := byteOffset(line, pos)

	if text == c.lastLine && cursor == c.lastCursor && len(c.choices) != 0 {
		c.choiceIndex = (c.choiceIndex + 1) % len(c.choices)
	} else if !c.start(text, cursor) {
		return nil, 0, false
	}

	replaced, newCursor, err := c.Engine.Apply(text, c.span, spell.Suggestion{Text: c.choices[c.choiceIndex]})
	if err != nil {
		c.choices = nil
		return nil, 0, false
	}
	c.span.End = newCursor
	c.lastLine, c.lastCursor = replaced, newCursor
	return []rune(replaced), utf8.RuneCountInString(replaced[:newCursor]), true
}

// start looks up suggestions for the word at cursor; the original word is
// the last choice so that cycling can undo the correction.
func (c *Corrector) start(text string, cursor int) bool {
	c.choices = nil
	begin, ok := messageStart(text)
	if !ok || cursor < begin {
		return false
	}
	span, ok := words.At(text[begin:], cursor-begin)
	if !ok {
		return false
	}
	span.Start += begin
	span.End += begin
	word := span.Text(text)
	if c.Engine.IsCorrect(word) {
		return false
	}
	suggestions := c.Engine.Suggest(word)
	if len(suggestions) == 0 {
		return false
	}
	c.span = span
	c.choices = append(suggestions, word)
	c.choiceIndex = 0
	return true
}

// Listener intercepts keys typed into the line editor. TAB goes to the
// Corrector. A key that finishes a word at the end of the line forces a full
// repaint, because the editor only paints the new runes when appending.
type Listener struct {
	Painter   *Painter
	Corrector *Corrector
}

func (l *Listener) OnChange(line []rune, pos int, key rune) (newLine []rune, newPos int, ok bool) {
	if key == keyTab {
		return l.Corrector.OnChange(line, pos, key)
	}
	if len(line) == 0 || pos != len(line) || !endsWord(key) {
		return nil, 0, false
	}
	if painted := l.Painter.Paint(line, pos); len(painted) == len(line) {
		return nil, 0, false
	}
	return line, pos, true
}

// endsWord reports whether typing key finishes the word before it.
func endsWord(key rune) bool {
	switch key {
	case '\'', '-', keyTab:
		return false
	}
	return unicode.IsSpace(key) || unicode.IsPunct(key) || unicode.IsSymbol(key)
}

var localCommands = []string{"help", "palette", "spell", "urls"}

// Completer completes local command names. Message words are corrected by
// Corrector instead, since completion can only insert text.
type Completer struct{}

func (Completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if pos < 1 || pos > len(line) || line[0] != '/' {
		return nil, 0
	}
	typed := string(line[1:pos])
	if strings.ContainsRune(typed, ' ') || strings.HasPrefix(typed, "/") {
		return nil, 0
	}
	for _, name := range localCommands {
		if strings.HasPrefix(name, typed) {
			newLine = append(newLine, []rune(name[len(typed):]+" "))
		}
	}
	return newLine, utf8.RuneCountInString(typed)
}
