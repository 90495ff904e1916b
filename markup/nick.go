// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package markup

// NickRange is a byte range of the visible text of a line (the line with its
// control codes removed) holding the sender's nickname.
type NickRange struct {
	Start int
	Len   int
}

func (n *NickRange) contains(i int) bool {
	return n.Start <= i && i < n.Start+n.Len
}

// Color returns the nickname's color, or -1 if the range falls outside text.
func (n *NickRange) Color(text string) int {
	if n.Len <= 0 || n.Start < 0 || len(text) < n.Start+n.Len {
		return -1
	}
	return NickColor(text[n.Start : n.Start+n.Len])
}

// NickColor derives a stable mIRC color (0-15) from a nickname: the sum of
// its bytes modulo 16.
func NickColor(nick string) int {
	sum := 0
	for i := 0; i < len(nick); i++ {
		sum += int(nick[i])
	}
	return sum % 16
}

// DetectNick finds the nickname in a line of the form "<nick> ..." or
// "* nick ...", after any leading spaces or tabs.
func DetectNick(raw string) (nick NickRange, ok bool) {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	rest := raw[i:]
	switch {
	case len(rest) > 0 && rest[0] == '<':
		start := i + 1
		end := start
		for end < len(raw) && raw[end] != '>' && raw[end] != ' ' {
			end++
		}
		if end < len(raw) && raw[end] == '>' && end > start {
			return NickRange{Start: start, Len: end - start}, true
		}
	case len(rest) > 1 && rest[0] == '*' && rest[1] == ' ':
		start := i + 2
		end := start
		for end < len(raw) && raw[end] != ' ' {
			end++
		}
		if end > start {
			return NickRange{Start: start, Len: end - start}, true
		}
	}
	return NickRange{}, false
}
