// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// word lists without affix data, such as Debian's wamerican
const systemWordlistDir = "/usr/share/dict"

func probeWordlist(env Environment) (Provider, bool) {
	dirs := dedupe(append(append([]string(nil), env.SearchPaths...), systemWordlistDir))
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			if entries, err := os.ReadDir(dir); err == nil && len(entries) != 0 {
				return &wordlistProvider{dirs: dirs, env: env}, true
			}
		}
	}
	return nil, false
}

type wordlistProvider struct {
	dirs []string
	env  Environment
}

func (p *wordlistProvider) Name() string {
	return "wordlist"
}

func (p *wordlistProvider) NewBroker() (Broker, error) {
	return p, nil
}

func (p *wordlistProvider) RequestDictionary(tag string) (Dictionary, error) {
	for _, name := range wordlistNames(tag) {
		for _, dir := range p.dirs {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			dict := newMemDictionary(tag, nil, p.env.Personal)
			if err := dict.loadWords(data); err != nil {
				return nil, fmt.Errorf("loading %s: %w", path, err)
			}
			if err := dict.loadPersonal(); err != nil {
				return nil, err
			}
			p.env.logger().Debug("loaded word list", zap.String("tag", tag), zap.String("path", path))
			return dict, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDictionaryNotFound, tag)
}

func (p *wordlistProvider) Close() error {
	return nil
}
