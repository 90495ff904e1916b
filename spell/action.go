// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"fmt"

	"github.com/ergochat/ircmark/words"
)

// Action is what the user chose to do about a flagged word.
type Action interface {
	isAction()
}

// Suggestion replaces the word with Text.
type Suggestion struct {
	Text string
}

// AddToDictionary adds the word to the personal dictionary.
type AddToDictionary struct{}

// IgnoreSession ignores the word until exit.
type IgnoreSession struct{}

func (Suggestion) isAction()      {}
func (AddToDictionary) isAction() {}
func (IgnoreSession) isAction()   {}

// Apply performs action on the word at span in text, returning the
// (possibly unchanged) text and the cursor position after the word.
func (e *Engine) Apply(text string, span words.Span, action Action) (string, int, error) {
	if span.Start < 0 || span.End > len(text) || span.Start >= span.End {
		return text, len(text), fmt.Errorf("span %d:%d out of range for %d bytes", span.Start, span.End, len(text))
	}
	word := span.Text(text)
	switch action := action.(type) {
	case Suggestion:
		newText, cursor := words.Replace(text, span, action.Text)
		return newText, cursor, nil
	case AddToDictionary:
		return text, span.End, e.AddToPersonal(word)
	case IgnoreSession:
		e.IgnoreSession(word)
		return text, span.End, nil
	default:
		return text, span.End, fmt.Errorf("unknown spell action %T", action)
	}
}
