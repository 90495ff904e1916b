// Copyright (c) 2026 ircmark contributors
// released under the ISC license

//go:build !minimal

package console

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/ergochat/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.Lock()
	defer b.Unlock()
	return b.buf.String()
}

// typeLine feeds keys to a line editor built from options, as if typed at an
// interactive terminal, and returns the entered line and everything drawn.
func typeLine(t *testing.T, options Options, keys string) (string, string) {
	t.Helper()
	var out syncBuffer
	config := readlineConfig(options)
	// the editor asks for the cursor position before drawing the prompt
	config.Stdin = strings.NewReader("\x1b[1;1R" + keys)
	config.Stdout = &out
	config.Stderr = &out
	config.FuncIsTerminal = func() bool { return true }
	config.FuncMakeRaw = func() error { return nil }
	config.FuncExitRaw = func() error { return nil }
	config.FuncGetSize = func() (int, int) { return 200, 24 }
	config.FuncOnWidthChanged = func(func()) {}

	instance, err := readline.NewFromConfig(config)
	require.NoError(t, err)
	defer instance.Close()
	line, err := instance.Readline()
	require.NoError(t, err)
	return line, out.String()
}

func TestTypedMisspellingIsMarked(t *testing.T) {
	options := Options{Readline: true, Prompt: "> ", Spell: testEngine(t)}
	line, drawn := typeLine(t, options, "PRIVMSG #chan :helo world \r")
	assert.Equal(t, "PRIVMSG #chan :helo world ", line)
	assert.Contains(t, drawn, "\x1b[4mhelo\x1b[0m")
	assert.NotContains(t, drawn, "\x1b[4mworld")
}

func TestTypedTabCorrects(t *testing.T) {
	options := Options{Readline: true, Prompt: "> ", Spell: testEngine(t)}
	line, _ := typeLine(t, options, "PRIVMSG #chan :wrold\t\r")
	assert.Equal(t, "PRIVMSG #chan :world", line)
}

func TestTypedWithoutSpelling(t *testing.T) {
	line, drawn := typeLine(t, Options{Readline: true}, "PRIVMSG #chan :helo \r")
	assert.Equal(t, "PRIVMSG #chan :helo ", line)
	assert.Contains(t, drawn, defaultPrompt)
	assert.NotContains(t, drawn, "\x1b[4m")
}
