// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// distance is the Damerau-Levenshtein distance between a and b, counted in
// runes.
func distance(a, b string) int {
	return matchr.DamerauLevenshtein(a, b)
}

// maxDistance is how far a suggestion may be from a word of n runes.
func maxDistance(n int) int {
	if n <= 4 {
		return 1
	}
	return 2
}

type casePattern int

const (
	caseLower casePattern = iota
	caseTitle
	caseUpper
	caseMixed
)

func patternOf(word string) casePattern {
	upper, lower := 0, 0
	first := true
	firstUpper := false
	for _, r := range word {
		if unicode.IsUpper(r) {
			upper++
			if first {
				firstUpper = true
			}
		} else if unicode.IsLower(r) {
			lower++
		}
		if unicode.IsLetter(r) {
			first = false
		}
	}
	switch {
	case upper == 0:
		return caseLower
	case lower == 0 && upper > 1:
		return caseUpper
	case firstUpper && upper == 1:
		return caseTitle
	default:
		return caseMixed
	}
}

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
	titleCaser = cases.Title(language.Und, cases.NoLower)
)

// caseVariants returns the spellings to look up for word: itself, and the
// lower/title forms a dictionary would store it under.
func caseVariants(word string) []string {
	switch patternOf(word) {
	case caseTitle:
		return []string{word, lowerCaser.String(word)}
	case caseUpper:
		lower := lowerCaser.String(word)
		return []string{word, lower, titleFirst(lower)}
	default:
		return []string{word}
	}
}

// titleFirst upper-cases only the first letter of s.
func titleFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return titleCaser.String(string(r)) + s[size:]
}

// applyCase shapes a suggestion after the word it replaces.
func applyCase(pattern casePattern, suggestion string) string {
	switch pattern {
	case caseTitle:
		return titleFirst(suggestion)
	case caseUpper:
		return upperCaser.String(suggestion)
	default:
		return suggestion
	}
}

type candidate struct {
	word     string
	distance int
	delta    int
}

// rank orders candidates for misspelled by edit distance, then length
// difference, then lexically, and keeps at most limit of them.
func rank(misspelled string, pool []string, limit int) []string {
	target := lowerCaser.String(misspelled)
	targetLen := utf8.RuneCountInString(target)
	maxDist := maxDistance(targetLen)
	var found []candidate
	for _, word := range pool {
		lowered := lowerCaser.String(word)
		delta := utf8.RuneCountInString(lowered) - targetLen
		if delta < 0 {
			delta = -delta
		}
		if delta > maxDist {
			continue
		}
		if d := distance(target, lowered); 0 < d && d <= maxDist {
			found = append(found, candidate{word: word, distance: d, delta: delta})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		if found[i].delta != found[j].delta {
			return found[i].delta < found[j].delta
		}
		return found[i].word < found[j].word
	})

	pattern := patternOf(misspelled)
	seen := make(map[string]struct{})
	var result []string
	for _, c := range found {
		shaped := applyCase(pattern, c.word)
		if _, ok := seen[shaped]; ok {
			continue
		}
		seen[shaped] = struct{}{}
		result = append(result, shaped)
		if len(result) == limit {
			break
		}
	}
	return result
}

// hasPrefixFold is strings.HasPrefix, ignoring ASCII case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
