// Copyright (c) 2026 ircmark contributors
// released under the ISC license

// Package words splits text into the alphabetic word spans that the spell
// checker annotates.
package words

import (
	"unicode"
	"unicode/utf8"
)

// Span is a word of a text buffer, as byte offsets. End is exclusive.
type Span struct {
	Start   int
	End     int
	Correct bool
}

// Text returns the word in buf.
func (s Span) Text(buf string) string {
	return buf[s.Start:s.End]
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r) || isJoiner(r)
}

// Tokenize returns the words of text in order. A word starts with a letter
// and runs over letters, combining marks, apostrophes and hyphens; trailing
// apostrophes and hyphens are not part of it. Digits, punctuation and spaces
// separate words. Every span is initially marked correct.
func Tokenize(text string) (result []Span) {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsLetter(r) {
			i += size
			continue
		}

		start := i
		end := i // end of the last letter or mark
		for i < len(text) {
			r, size = utf8.DecodeRuneInString(text[i:])
			if !isWordRune(r) {
				break
			}
			i += size
			if !isJoiner(r) {
				end = i
			}
		}
		result = append(result, Span{Start: start, End: end, Correct: true})
	}
	return
}

// Annotate tokenizes text and marks each span with isCorrect.
func Annotate(text string, isCorrect func(word string) bool) []Span {
	spans := Tokenize(text)
	for i := range spans {
		spans[i].Correct = isCorrect(spans[i].Text(text))
	}
	return spans
}

// At returns the word containing the byte offset pos, including a word that
// ends exactly at pos (a cursor just after it).
func At(text string, pos int) (Span, bool) {
	for _, span := range Tokenize(text) {
		if span.Start <= pos && pos <= span.End {
			return span, true
		}
		if span.Start > pos {
			break
		}
	}
	return Span{}, false
}

// Replace substitutes with for the span's word. It returns the new text and
// the byte offset just after the inserted word.
func Replace(text string, span Span, with string) (string, int) {
	if span.Start < 0 || span.End > len(text) || span.Start > span.End {
		return text, len(text)
	}
	return text[:span.Start] + with + text[span.End:], span.Start + len(with)
}
