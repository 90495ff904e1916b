// Copyright (c) 2026 ircmark contributors
// released under the ISC license

// Package markup turns one line of raw IRC text (formatting control codes,
// CTCP delimiters, URLs, a leading nickname) into a StyledLine.
package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ergochat/irc-go/ircfmt"

	"github.com/ergochat/ircmark/styles"
)

// In-band control codes.
const (
	CTCPDelim = '\x01'
	Bold      = '\x02'
	Color     = '\x03'
	Bell      = '\x07'
	Reset     = '\x0f'
	Monospace = '\x11'
	Reverse   = '\x16'
	Italic    = '\x1d'
	Strike    = '\x1e'
	Underline = '\x1f'
)

const actionPrefix = "\x01ACTION "

// colorCommaRe matches a color code whose comma ircfmt would leave in the
// text: "\x03NN," with no background digits, or "\x03,NN" with no foreground.
var colorCommaRe = regexp.MustCompile("\x03([0-9]{0,2}),([0-9]{0,2})")

// normalizeColors rewrites color codes so the comma after them is consumed.
func normalizeColors(raw string) string {
	if !strings.Contains(raw, "\x03") {
		return raw
	}
	return colorCommaRe.ReplaceAllStringFunc(raw, func(code string) string {
		fg, bg, _ := strings.Cut(code[1:], ",")
		switch {
		case fg != "" && bg != "":
			return code
		case fg != "":
			return "\x03" + fg
		default:
			// a bare color reset; the empty bold pair stops digits that
			// follow from being read as a color
			return "\x03\x02\x02"
		}
	})
}

// ScanState is the formatting state threaded through a line.
type ScanState struct {
	CTCP       bool
	Bold       bool
	Underline  bool
	Foreground int // -1 when unset
	Background int // parsed but never rendered
}

func newScanState() ScanState {
	return ScanState{Foreground: -1, Background: -1}
}

// apply takes the formatting of chunk. CTCP sections are delimited inside
// chunk content and are not touched.
func (s *ScanState) apply(chunk *ircfmt.FormattedSubstring) {
	s.Bold = chunk.Bold
	s.Underline = chunk.Underline
	s.Foreground = -1
	// 99 is "default"; the extended 16-98 range has no style slot
	if chunk.ForegroundColor.IsSet && chunk.ForegroundColor.Value < 16 {
		s.Foreground = int(chunk.ForegroundColor.Value)
	}
	s.Background = -1
	if chunk.BackgroundColor.IsSet {
		s.Background = int(chunk.BackgroundColor.Value)
	}
}

// Tag returns the style for an ordinary character in this state.
func (s ScanState) Tag() styles.Tag {
	if s.CTCP && s.Foreground < 0 && !s.Bold && !s.Underline {
		return styles.CTCP
	}
	return styles.Compose(s.Foreground, s.Bold, s.Underline)
}

// Transcode converts raw into display text. nick, when non-nil, is a byte
// range of the visible text (raw without its control codes) that gets the
// nickname's color; timestamp, when non-empty, is prepended followed by a
// space. Malformed control sequences are consumed and skipped, never copied
// to the output, and the result always ends in a newline.
func Transcode(raw string, nick *NickRange, timestamp string) (line StyledLine) {
	if timestamp != "" {
		line.pushString(timestamp, styles.Plain)
		line.push(' ', styles.Plain)
	}

	if strings.HasPrefix(raw, actionPrefix) {
		body := strings.TrimSuffix(raw[len(actionPrefix):], string(CTCPDelim))
		line.pushString("* ", styles.CTCP)
		line.pushString(StripControls(body), styles.CTCP)
	} else {
		transcodeBody(&line, raw, nick)
	}

	if !line.endsWithNewline() {
		line.push('\n', styles.Plain)
	}
	return
}

// TranscodeLine is Transcode with the nickname detected from the visible
// text of raw.
func TranscodeLine(raw, timestamp string) StyledLine {
	if nick, ok := DetectNick(StripControls(raw)); ok {
		return Transcode(raw, &nick, timestamp)
	}
	return Transcode(raw, nil, timestamp)
}

// TranscodeText converts raw with no action rewriting, timestamp or final
// newline. CTCP delimiters only toggle the CTCP style.
func TranscodeText(raw string) (line StyledLine) {
	transcodeBody(&line, raw, nil)
	return
}

func transcodeBody(line *StyledLine, raw string, nick *NickRange) {
	chunks := ircfmt.Split(normalizeColors(raw))
	nickColor := -1
	if nick != nil {
		nickColor = nick.Color(visibleText(chunks))
	}

	state := newScanState()
	// offset into the visible text
	pos := 0
	for c := range chunks {
		state.apply(&chunks[c])
		content := chunks[c].Content
		for i := 0; i < len(content); {
			switch content[i] {
			case CTCPDelim:
				state.CTCP = !state.CTCP
				i++
				continue
			case Bell:
				i++
				continue
			}

			if end := urlEnd(content, i); end > i {
				line.pushString(content[i:end], styles.Hyperlink)
				pos += end - i
				i = end
				continue
			}

			r, size := utf8.DecodeRuneInString(content[i:])
			tag := state.Tag()
			if nickColor >= 0 && nick.contains(pos) {
				colored := state
				colored.Foreground = nickColor
				tag = colored.Tag()
			}
			line.push(r, tag)
			i += size
			pos += size
		}
	}
}

// IsControl reports whether b is one of the formatting control codes that
// never appear in transcoded text.
func IsControl(b byte) bool {
	switch b {
	case CTCPDelim, Bold, Color, Bell, Reset, Monospace, Reverse, Italic, Strike, Underline:
		return true
	}
	return false
}

// visibleText is the text of chunks as it will be displayed.
func visibleText(chunks []ircfmt.FormattedSubstring) string {
	var buf strings.Builder
	for _, chunk := range chunks {
		for i := 0; i < len(chunk.Content); i++ {
			if b := chunk.Content[i]; b != CTCPDelim && b != Bell {
				buf.WriteByte(b)
			}
		}
	}
	return buf.String()
}

// StripControls drops the control codes from s, along with the arguments of
// color codes.
func StripControls(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return r < 0x20 && IsControl(byte(r)) }) == -1 {
		return s
	}
	return visibleText(ircfmt.Split(normalizeColors(s)))
}
