// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrDictionaryNotFound means no dictionary could be located for a language.
	ErrDictionaryNotFound = errors.New("no dictionary for language")
	// ErrNoProvider means no spell-check backend is present.
	ErrNoProvider = errors.New("no spell-check backend available")
)

// Dictionary is one language's word-correctness and suggestion source.
// Dictionaries are owned by the engine that requested them and are only
// used under its lock.
type Dictionary interface {
	// Tag is the resolved language tag, e.g. "en_US".
	Tag() string
	Check(word string) bool
	Suggest(word string) []string
	// AddToPersonal accepts word permanently (as far as the backend's
	// personal store goes).
	AddToPersonal(word string) error
	// AddToSession accepts word until the dictionary is closed.
	AddToSession(word string)
	Close() error
}

// Broker hands out dictionaries for language tags.
type Broker interface {
	RequestDictionary(tag string) (Dictionary, error)
	Close() error
}

// Provider is a backend that was found on this system.
type Provider interface {
	Name() string
	NewBroker() (Broker, error)
}

// Environment is what probes and brokers get to work with.
type Environment struct {
	// SearchPaths are extra dictionary directories, searched first.
	SearchPaths []string
	// Personal persists words added to the personal dictionary; may be nil.
	Personal PersonalStore
	Logger   *zap.Logger
}

func (env Environment) logger() *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}
	return env.Logger
}

// Probe looks for a backend. Not finding one is not an error.
type Probe func(env Environment) (Provider, bool)

var (
	probesMutex sync.RWMutex
	probes      = make(map[string]Probe)
)

// DefaultCandidates is the order in which backends are tried.
var DefaultCandidates = []string{"hunspell", "wordlist"}

// RegisterProbe makes a backend available to Discover under name.
func RegisterProbe(name string, probe Probe) {
	probesMutex.Lock()
	defer probesMutex.Unlock()
	probes[name] = probe
}

func init() {
	RegisterProbe("hunspell", probeHunspell)
	RegisterProbe("wordlist", probeWordlist)
}

// Discover tries the named backends in order and returns the first one
// present. Unknown names are skipped.
func Discover(candidates []string, env Environment) (Provider, bool) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, name := range candidates {
		probesMutex.RLock()
		probe := probes[name]
		probesMutex.RUnlock()
		if probe == nil {
			env.logger().Debug("unknown spell backend", zap.String("backend", name))
			continue
		}
		if provider, ok := probe(env); ok {
			return provider, true
		}
	}
	return nil, false
}
