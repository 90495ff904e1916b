// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package lib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/go-strftime"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/ergochat/ircmark/palette"
	"github.com/ergochat/ircmark/spell"
)

var (
	ErrBadFontSize = errors.New("display font-size must be positive")
)

type DisplayConfig struct {
	// auto, none, 16, 256 or truecolor
	Color           string   `yaml:"color"`
	Hyperlinks      bool     `yaml:"hyperlinks"`
	TimestampFormat string   `yaml:"timestamp-format"`
	FontSize        int      `yaml:"font-size"`
	Hide            []string `yaml:"hide"`
}

type PaletteConfig struct {
	// colors.conf to load at startup and write with /palette save
	File string `yaml:"file"`
	// slot (number or role name) -> color, applied after File
	Colors map[string]string `yaml:"colors"`
}

type SpellConfig struct {
	spell.Config `yaml:",inline"`
	// extra directories searched for dictionaries before the system ones
	DictionaryPaths []string `yaml:"dictionary-paths"`
	// buntdb file for added words; empty keeps them in memory
	PersonalDictionary string `yaml:"personal-dictionary"`
}

type LoggingConfig struct {
	// debug, info, warn or error
	Level string `yaml:"level"`
	// log file; empty means stderr
	File string `yaml:"file"`
}

// Config is the YAML configuration file.
type Config struct {
	Filename string `yaml:"-"`

	Display DisplayConfig `yaml:"display"`
	Palette PaletteConfig `yaml:"palette"`
	Spell   SpellConfig   `yaml:"spell"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig is used when no configuration file is given, and underlies
// any file that is.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Color:      "auto",
			Hyperlinks: true,
			FontSize:   DefaultFontSize,
		},
		Spell: SpellConfig{
			Config: spell.Config{
				Enabled:   true,
				Languages: "en_US",
				Backends:  append([]string(nil), spell.DefaultCandidates...),
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the given YAML configuration file over the defaults.
func LoadConfig(filename string) (config *Config, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config = DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", filename, err)
	}
	config.Filename = filename
	config.resolvePaths()

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// relative paths in the file are relative to the file's directory
func (conf *Config) resolvePaths() {
	dir := filepath.Dir(conf.Filename)
	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	conf.Palette.File = resolve(conf.Palette.File)
	conf.Spell.PersonalDictionary = resolve(conf.Spell.PersonalDictionary)
	conf.Logging.File = resolve(conf.Logging.File)
	for i, path := range conf.Spell.DictionaryPaths {
		conf.Spell.DictionaryPaths[i] = resolve(path)
	}
}

// Validate checks the values that can be checked without side effects.
func (conf *Config) Validate() error {
	if conf.Display.Color != "auto" && conf.Display.Color != "" {
		if _, err := ParseColorLevel(conf.Display.Color); err != nil {
			return err
		}
	}
	if conf.Display.FontSize < 1 {
		return ErrBadFontSize
	}
	if conf.Display.TimestampFormat != "" {
		if _, err := strftime.Layout(conf.Display.TimestampFormat); err != nil {
			return fmt.Errorf("invalid timestamp-format: %w", err)
		}
	}
	for slot, color := range conf.Palette.Colors {
		if _, err := palette.ParseSlot(slot); err != nil {
			return err
		}
		if _, err := palette.ParseRGB(color); err != nil {
			return err
		}
	}
	if _, err := parseLogLevel(conf.Logging.Level); err != nil {
		return err
	}
	return nil
}

// ApplyPalette loads the palette file and the per-slot overrides into pal.
func (conf *Config) ApplyPalette(pal *palette.Palette) error {
	if conf.Palette.File != "" {
		if err := pal.LoadFile(conf.Palette.File); err != nil {
			return fmt.Errorf("loading palette: %w", err)
		}
	}
	for name, value := range conf.Palette.Colors {
		slot, err := palette.ParseSlot(name)
		if err != nil {
			return err
		}
		color, err := palette.ParseRGB(value)
		if err != nil {
			return err
		}
		pal.Set(slot, color)
	}
	return nil
}

// SpellEnvironment is the environment for spell engines built from this
// configuration.
func (conf *Config) SpellEnvironment(store spell.PersonalStore, logger *zap.Logger) spell.Environment {
	return spell.Environment{
		SearchPaths: conf.Spell.DictionaryPaths,
		Personal:    store,
		Logger:      logger,
	}
}
