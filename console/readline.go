//go:build !minimal

package console

import (
	"syscall"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const defaultPrompt = ">>> "

func NewConsole(options Options) (Console, error) {
	if !(options.Readline && term.IsTerminal(int(syscall.Stdin))) {
		return NewStandardConsole()
	}
	return readline.NewFromConfig(readlineConfig(options))
}

func readlineConfig(options Options) *readline.Config {
	prompt := options.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	config := &readline.Config{
		Prompt:       prompt,
		HistoryFile:  options.HistoryFile,
		HistoryLimit: 1000,
		AutoComplete: Completer{},
	}
	if options.Spell != nil {
		painter := &Painter{Engine: options.Spell, Color: options.SpellColor}
		listener := &Listener{
			Painter:   painter,
			Corrector: &Corrector{Engine: options.Spell},
		}
		config.Painter = painter.Paint
		config.Listener = listener.OnChange
	}
	return config
}
