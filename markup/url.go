// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package markup

import (
	"strings"
)

var urlPrefixes = []string{"http://", "https://", "ftp://", "irc://", "www."}

// LooksLikeURL reports whether s starts with one of the recognized URL
// prefixes, ignoring ASCII case.
func LooksLikeURL(s string) bool {
	for _, prefix := range urlPrefixes {
		if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}

// urlEnd returns the end of the URL starting at i, or i if there is none.
// The URL extends over bytes that are neither ASCII whitespace nor controls.
func urlEnd(raw string, i int) int {
	if !LooksLikeURL(raw[i:]) {
		return i
	}
	end := i
	for end < len(raw) && !isSpace(raw[end]) && raw[end] >= 0x20 {
		end++
	}
	return end
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// URLs returns the URLs found in raw, in order.
func URLs(raw string) (result []string) {
	for i := 0; i < len(raw); {
		if end := urlEnd(raw, i); end > i {
			result = append(result, raw[i:end])
			i = end
		} else {
			i++
		}
	}
	return
}
