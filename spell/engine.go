// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ergochat/ircmark/words"
)

// SessionTerms are accepted by every dictionary the engine loads.
var SessionTerms = []string{"IRC", "IRCv3", "CTCP", "ircmark", "ergo"}

// scheme-like prefixes that are never checked as words
var nonWordPrefixes = []string{"http", "ftp:", "irc:"}

// Config is the spell section of the configuration.
type Config struct {
	Enabled   bool     `yaml:"enabled"`
	Languages string   `yaml:"languages"`
	Backends  []string `yaml:"backends"`
}

func (c Config) equal(o Config) bool {
	return c.Enabled == o.Enabled && c.Languages == o.Languages && slices.Equal(c.Backends, o.Backends)
}

// Engine checks words against the dictionaries of the configured languages.
// It is safe for concurrent use.
type Engine struct {
	sync.Mutex

	config Config
	env    Environment
	logger *zap.Logger

	// backend discovery happens once per engine
	probed   bool
	provider Provider

	inited  bool
	broker  Broker
	dicts   []Dictionary
	ignores map[string]struct{}
}

// NewEngine returns an engine; backends are probed on first use.
func NewEngine(config Config, env Environment) *Engine {
	return &Engine{
		config:  config,
		env:     env,
		logger:  env.logger(),
		ignores: make(map[string]struct{}),
	}
}

// ensure initializes the engine if needed. Requires the lock.
func (e *Engine) ensure() {
	if e.inited {
		return
	}
	e.inited = true
	if !e.config.Enabled {
		return
	}

	if !e.probed {
		e.probed = true
		provider, ok := Discover(e.config.Backends, e.env)
		if !ok {
			e.logger.Info("spell checking unavailable", zap.Error(ErrNoProvider))
			return
		}
		e.provider = provider
		e.logger.Debug("spell backend found", zap.String("backend", provider.Name()))
	}
	if e.provider == nil {
		return
	}

	broker, err := e.provider.NewBroker()
	if err != nil {
		e.logger.Warn("spell backend failed", zap.String("backend", e.provider.Name()), zap.Error(err))
		return
	}
	e.broker = broker

	for _, tag := range ParseLanguages(e.config.Languages) {
		e.request(tag)
	}
	if len(e.dicts) == 0 {
		e.request(FallbackLanguage)
	}
	if len(e.dicts) == 0 {
		e.logger.Info("no dictionaries resolved", zap.String("languages", e.config.Languages))
	}
}

// request loads the dictionary for tag and appends it. Requires the lock.
func (e *Engine) request(tag string) {
	dict, err := e.broker.RequestDictionary(tag)
	if err != nil {
		e.logger.Debug("language not resolved", zap.String("language", tag), zap.Error(err))
		return
	}
	for _, loaded := range e.dicts {
		if loaded.Tag() == dict.Tag() {
			dict.Close()
			return
		}
	}
	for _, term := range SessionTerms {
		dict.AddToSession(term)
	}
	for word := range e.ignores {
		dict.AddToSession(word)
	}
	e.logger.Debug("language resolved", zap.String("language", tag), zap.String("dictionary", dict.Tag()))
	e.dicts = append(e.dicts, dict)
}

// teardown closes all dictionaries and the broker. Requires the lock.
func (e *Engine) teardown() {
	for _, dict := range e.dicts {
		if err := dict.Close(); err != nil {
			e.logger.Debug("closing dictionary", zap.String("dictionary", dict.Tag()), zap.Error(err))
		}
	}
	e.dicts = nil
	if e.broker != nil {
		e.broker.Close()
		e.broker = nil
	}
	e.inited = false
}

// IsCorrect reports whether word should be left unmarked.
func (e *Engine) IsCorrect(word string) bool {
	e.Lock()
	defer e.Unlock()
	return e.isCorrect(word)
}

func (e *Engine) isCorrect(word string) bool {
	if word == "" {
		return true
	}
	e.ensure()
	if len(e.dicts) == 0 {
		return true
	}
	if len(word) >= 4 {
		for _, prefix := range nonWordPrefixes {
			if hasPrefixFold(word, prefix) {
				return true
			}
		}
	}
	if first, _ := utf8.DecodeRuneInString(word); !unicode.IsLetter(first) {
		return true
	}
	if _, ok := e.ignores[word]; ok {
		return true
	}
	for _, dict := range e.dicts {
		if dict.Check(word) {
			return true
		}
	}
	return false
}

// Suggest returns up to MaxSuggestions replacements for word, from every
// dictionary in configured order.
func (e *Engine) Suggest(word string) (result []string) {
	if word == "" {
		return nil
	}
	e.Lock()
	defer e.Unlock()
	e.ensure()

	seen := make(map[string]struct{})
	for _, dict := range e.dicts {
		for _, suggestion := range dict.Suggest(word) {
			if _, ok := seen[suggestion]; ok {
				continue
			}
			seen[suggestion] = struct{}{}
			result = append(result, suggestion)
			if len(result) == MaxSuggestions {
				return
			}
		}
	}
	return
}

// AddToPersonal adds word to the personal dictionary of every loaded language.
func (e *Engine) AddToPersonal(word string) error {
	if word == "" {
		return nil
	}
	e.Lock()
	defer e.Unlock()
	e.ensure()

	var errs []error
	for _, dict := range e.dicts {
		if err := dict.AddToPersonal(word); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dict.Tag(), err))
		}
	}
	return errors.Join(errs...)
}

// IgnoreSession accepts word for the rest of this process.
func (e *Engine) IgnoreSession(word string) {
	if word == "" {
		return
	}
	e.Lock()
	defer e.Unlock()
	e.ensure()

	e.ignores[word] = struct{}{}
	for _, dict := range e.dicts {
		dict.AddToSession(word)
	}
}

// Check tokenizes text and marks each word's correctness.
func (e *Engine) Check(text string) []words.Span {
	e.Lock()
	defer e.Unlock()
	return words.Annotate(text, e.isCorrect)
}

// Reconfigure applies a new configuration. Changing the languages, the
// enabled flag or the backends reloads all dictionaries; the session ignore
// set is kept.
func (e *Engine) Reconfigure(config Config) {
	e.Lock()
	defer e.Unlock()

	if e.config.equal(config) {
		return
	}
	backendsChanged := !slices.Equal(e.config.Backends, config.Backends)
	e.config = config
	e.teardown()
	if backendsChanged {
		e.probed = false
		e.provider = nil
	}
	e.ensure()
}

// SetSearchPaths replaces the extra dictionary directories. A change drops
// the loaded dictionaries and probes the backends again on next use.
func (e *Engine) SetSearchPaths(paths []string) {
	e.Lock()
	defer e.Unlock()

	if slices.Equal(e.env.SearchPaths, paths) {
		return
	}
	e.env.SearchPaths = slices.Clone(paths)
	e.teardown()
	e.probed = false
	e.provider = nil
}

// Available reports whether any dictionary is loaded.
func (e *Engine) Available() bool {
	e.Lock()
	defer e.Unlock()
	e.ensure()
	return len(e.dicts) != 0
}

// Languages returns the tags of the loaded dictionaries, in order.
func (e *Engine) Languages() (result []string) {
	e.Lock()
	defer e.Unlock()
	e.ensure()
	for _, dict := range e.dicts {
		result = append(result, dict.Tag())
	}
	return
}

// Status describes the engine state for display.
func (e *Engine) Status() string {
	e.Lock()
	defer e.Unlock()
	e.ensure()
	switch {
	case !e.config.Enabled:
		return "spell checking is disabled"
	case e.provider == nil:
		return "spell checking is unavailable: no backend found"
	case len(e.dicts) == 0:
		return fmt.Sprintf("spell checking is unavailable: no dictionary for %q", e.config.Languages)
	}
	tags := make([]string, len(e.dicts))
	for i, dict := range e.dicts {
		tags[i] = dict.Tag()
	}
	return fmt.Sprintf("spell checking with %s: %s (%d ignored this session)",
		e.provider.Name(), strings.Join(tags, ", "), len(e.ignores))
}

// Close releases all dictionaries. The engine reinitializes if used again.
func (e *Engine) Close() error {
	e.Lock()
	defer e.Unlock()
	e.teardown()
	// stay closed until reconfigured
	e.inited = true
	return nil
}
