// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package lib

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/ergochat/irc-go/ircmsg"
	"github.com/ncruces/go-strftime"

	"github.com/ergochat/ircmark/markup"
)

var controlCodeReplacements = map[string]string{
	"CTCP": "\x01",
	"B":    "\x02",
	"C":    "\x03",
	"M":    "\x11",
	"I":    "\x1d",
	"S":    "\x1e",
	"U":    "\x1f",
	"R":    "\x0f",
}

// ReplaceControlCodes expands the [[B]]-style escapes typed at the console
// into raw control characters. [[\xNN]] (one or more hex bytes) inserts
// arbitrary bytes; anything else in double brackets is left alone.
func ReplaceControlCodes(line string) string {
	if !strings.Contains(line, "[[") {
		return line
	}
	var buf strings.Builder
	buf.Grow(len(line))
	for i := 0; i < len(line); {
		if strings.HasPrefix(line[i:], "[[") {
			if end := strings.Index(line[i+2:], "]]"); end != -1 {
				if replacement, ok := decodeControlEscape(line[i+2 : i+2+end]); ok {
					buf.WriteString(replacement)
					i += end + 4
					continue
				}
			}
		}
		buf.WriteByte(line[i])
		i++
	}
	return buf.String()
}

func decodeControlEscape(name string) (string, bool) {
	if replacement, ok := controlCodeReplacements[name]; ok {
		return replacement, true
	}
	if name == "" || len(name)%4 != 0 {
		return "", false
	}
	var out []byte
	for i := 0; i < len(name); i += 4 {
		if name[i] != '\\' || name[i+1] != 'x' {
			return "", false
		}
		b, err := hex.DecodeString(name[i+2 : i+4])
		if err != nil {
			return "", false
		}
		out = append(out, b...)
	}
	return string(out), true
}

// Display turns incoming protocol lines into what the user sees: chat
// messages in the familiar "<nick> text" form, everything else as the raw
// line with its final parameter formatted.
type Display struct {
	Renderer *Renderer
	// strftime format for the timestamp column; empty disables it
	TimestampFormat string
	Now             func() time.Time
}

func (d *Display) timestamp() string {
	if d.TimestampFormat == "" {
		return ""
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return strftime.Format(d.TimestampFormat, now())
}

// Line renders one incoming line, without a trailing newline.
func (d *Display) Line(raw string) string {
	msg, err := ircmsg.ParseLine(raw)
	if err == nil && msg.Source != "" && len(msg.Params) == 2 &&
		(msg.Command == "PRIVMSG" || msg.Command == "NOTICE") {
		text, nick := chatLine(&msg)
		line := markup.Transcode(text, nick, d.timestamp())
		return strings.TrimSuffix(d.Renderer.Render(line), "\n")
	}

	rendered := d.Renderer.ProtocolLine(raw)
	if ts := d.timestamp(); ts != "" {
		return ts + " " + rendered
	}
	return rendered
}

// chatLine returns the chat form of a PRIVMSG or NOTICE and the range of
// the nickname in it, if it should be colored.
func chatLine(msg *ircmsg.Message) (string, *markup.NickRange) {
	nick := msg.Nick()
	text := msg.Params[1]
	switch {
	case msg.Command == "NOTICE":
		return "-" + nick + "- " + text, nil
	case strings.HasPrefix(text, "\x01ACTION "):
		body := strings.TrimSuffix(text[len("\x01ACTION "):], "\x01")
		return "\x01ACTION " + nick + " " + body + "\x01", nil
	default:
		return "<" + nick + "> " + text, &markup.NickRange{Start: 1, Len: len(nick)}
	}
}
