// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/ergochat/ircmark/palette"
	"github.com/ergochat/ircmark/spell"
)

var (
	ErrUnknownCommand = errors.New("unknown command, try /help")
	ErrNoPaletteFile  = errors.New("no palette file configured")
	ErrNoURL          = errors.New("no such URL, see /urls")
)

const commandHelp = `local commands:
  /spell [status]          show the spell checker state
  /spell suggest <word>    list suggestions for a word
  /spell add <word>        add a word to the personal dictionary
  /spell ignore <word>     accept a word until exit
  /spell langs             list the loaded dictionaries
  /palette [show]          show the color table
  /palette set <slot> <color>
                           change a slot (number or role name; #rrggbb or "r g b")
  /palette reset           undo palette changes
  /palette load [file]     load colors.conf
  /palette save [file]     write colors.conf
  /urls [list]             list the URLs seen so far
  /urls copy [n]           copy URL n (default the newest) to the clipboard
  /urls clear              forget the URLs
  /urls save <file>        write the URLs to a file
  /help                    this text
lines starting with // are sent with a single leading /`

var swatchLabel = lipgloss.NewStyle().Width(13)

// Commands runs the console's local slash commands.
type Commands struct {
	Spell   *spell.Engine
	Palette *palette.Palette
	// default file for /palette load and /palette save
	PaletteFile string
	URLs        *URLGrabber
	// Copy puts text on the clipboard; nil uses the terminal's OSC 52
	Copy func(string)
}

// IsLocal reports whether line is a local command rather than protocol
// text. A doubled slash escapes a line that really starts with "/".
func IsLocal(line string) bool {
	return strings.HasPrefix(line, "/") && !strings.HasPrefix(line, "//")
}

// Unescape strips the escaping slash from a "//" line.
func Unescape(line string) string {
	if strings.HasPrefix(line, "//") {
		return line[1:]
	}
	return line
}

// Run executes one local command line and returns its output.
func (c *Commands) Run(line string) (string, error) {
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return "", ErrUnknownCommand
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "spell":
		return c.spell(args)
	case "palette":
		return c.palette(args)
	case "urls":
		return c.urls(args)
	case "help":
		return commandHelp, nil
	default:
		return "", ErrUnknownCommand
	}
}

func (c *Commands) spell(args []string) (string, error) {
	sub := "status"
	if len(args) != 0 {
		sub = strings.ToLower(args[0])
		args = args[1:]
	}
	needWord := func() (string, error) {
		if len(args) != 1 {
			return "", fmt.Errorf("usage: /spell %s <word>", sub)
		}
		return args[0], nil
	}

	switch sub {
	case "status":
		return c.Spell.Status(), nil
	case "langs":
		langs := c.Spell.Languages()
		if len(langs) == 0 {
			return "no dictionaries loaded", nil
		}
		return strings.Join(langs, ", "), nil
	case "suggest":
		word, err := needWord()
		if err != nil {
			return "", err
		}
		if c.Spell.IsCorrect(word) {
			return fmt.Sprintf("%s is spelled correctly", word), nil
		}
		suggestions := c.Spell.Suggest(word)
		if len(suggestions) == 0 {
			return fmt.Sprintf("no suggestions for %s", word), nil
		}
		return fmt.Sprintf("%s: %s", word, strings.Join(suggestions, ", ")), nil
	case "add":
		word, err := needWord()
		if err != nil {
			return "", err
		}
		if err := c.Spell.AddToPersonal(word); err != nil {
			return "", err
		}
		return fmt.Sprintf("added %s to the personal dictionary", word), nil
	case "ignore":
		word, err := needWord()
		if err != nil {
			return "", err
		}
		c.Spell.IgnoreSession(word)
		return fmt.Sprintf("ignoring %s for this session", word), nil
	default:
		return "", fmt.Errorf("unknown /spell subcommand %q", sub)
	}
}

func (c *Commands) palette(args []string) (string, error) {
	sub := "show"
	if len(args) != 0 {
		sub = strings.ToLower(args[0])
		args = args[1:]
	}
	fileArg := func() (string, error) {
		switch {
		case len(args) == 1:
			return args[0], nil
		case len(args) == 0 && c.PaletteFile != "":
			return c.PaletteFile, nil
		case len(args) == 0:
			return "", ErrNoPaletteFile
		default:
			return "", fmt.Errorf("usage: /palette %s [file]", sub)
		}
	}

	switch sub {
	case "show":
		return showPalette(c.Palette), nil
	case "set":
		if len(args) < 2 {
			return "", errors.New("usage: /palette set <slot> <color>")
		}
		slot, err := palette.ParseSlot(args[0])
		if err != nil {
			return "", err
		}
		// the color may be "r g b"
		color, err := palette.ParseRGB(strings.Join(args[1:], " "))
		if err != nil {
			return "", err
		}
		c.Palette.Set(slot, color)
		return fmt.Sprintf("%s = %s", slot, color.Hex()), nil
	case "reset":
		c.Palette.Reset()
		return "palette reset", nil
	case "load":
		path, err := fileArg()
		if err != nil {
			return "", err
		}
		if err := c.Palette.LoadFile(path); err != nil {
			return "", err
		}
		return fmt.Sprintf("loaded %s", path), nil
	case "save":
		path, err := fileArg()
		if err != nil {
			return "", err
		}
		if err := c.Palette.SaveFile(path); err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %s", path), nil
	default:
		return "", fmt.Errorf("unknown /palette subcommand %q", sub)
	}
}

func (c *Commands) urls(args []string) (string, error) {
	sub := "list"
	if len(args) != 0 {
		sub = strings.ToLower(args[0])
		args = args[1:]
	}

	switch sub {
	case "list":
		urls := c.URLs.List()
		if len(urls) == 0 {
			return "no URLs seen yet", nil
		}
		lines := make([]string, len(urls))
		for i, url := range urls {
			lines[i] = fmt.Sprintf("%3d %s", i+1, url)
		}
		return strings.Join(lines, "\n"), nil
	case "copy":
		n := len(c.URLs.List())
		if len(args) == 1 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil {
				return "", ErrNoURL
			}
		} else if len(args) > 1 {
			return "", errors.New("usage: /urls copy [n]")
		}
		url, ok := c.URLs.Get(n)
		if !ok {
			return "", ErrNoURL
		}
		copyText := c.Copy
		if copyText == nil {
			copyText = termenv.Copy
		}
		copyText(url)
		return fmt.Sprintf("copied %s", url), nil
	case "clear":
		c.URLs.Clear()
		return "URL list cleared", nil
	case "save":
		if len(args) != 1 {
			return "", errors.New("usage: /urls save <file>")
		}
		if err := c.URLs.Save(args[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("saved %s", args[0]), nil
	default:
		return "", fmt.Errorf("unknown /urls subcommand %q", sub)
	}
}

// showPalette lists every slot with a swatch, its name and its color.
func showPalette(pal *palette.Palette) string {
	colors := pal.Colors()
	lines := make([]string, 0, len(colors))
	for i := range colors {
		slot := palette.Slot(i)
		hex := colors[i].Hex()
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			swatch, " ", swatchLabel.Render(slot.String()), hex))
	}
	return strings.Join(lines, "\n")
}
