// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// hunspellDirs returns where .dic/.aff pairs are looked for.
func hunspellDirs(env Environment) (dirs []string) {
	dirs = append(dirs, env.SearchPaths...)
	if dicpath := os.Getenv("DICPATH"); dicpath != "" {
		dirs = append(dirs, filepath.SplitList(dicpath)...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "hunspell"))
	}
	dirs = append(dirs,
		"/usr/share/hunspell",
		"/usr/share/myspell",
		"/usr/share/myspell/dicts",
		"/usr/local/share/hunspell",
	)
	return dedupe(dirs)
}

func probeHunspell(env Environment) (Provider, bool) {
	dirs := hunspellDirs(env)
	for _, dir := range dirs {
		matches, _ := filepath.Glob(filepath.Join(dir, "*.dic"))
		if len(matches) != 0 {
			env.logger().Debug("found hunspell dictionaries", zap.String("dir", dir))
			return &hunspellProvider{dirs: dirs, env: env}, true
		}
	}
	return nil, false
}

type hunspellProvider struct {
	dirs []string
	env  Environment
}

func (p *hunspellProvider) Name() string {
	return "hunspell"
}

func (p *hunspellProvider) NewBroker() (Broker, error) {
	return &hunspellBroker{provider: p}, nil
}

type hunspellBroker struct {
	provider *hunspellProvider
}

// RequestDictionary loads the first name from dictionaryNames that has both
// files present in some search directory.
func (b *hunspellBroker) RequestDictionary(tag string) (Dictionary, error) {
	for _, name := range dictionaryNames(tag) {
		for _, dir := range b.provider.dirs {
			dicPath := filepath.Join(dir, name+".dic")
			affPath := filepath.Join(dir, name+".aff")
			if _, err := os.Stat(dicPath); err != nil {
				continue
			}
			if _, err := os.Stat(affPath); err != nil {
				continue
			}
			dict, err := loadHunspell(name, dicPath, affPath, b.provider.env.Personal)
			if err != nil {
				return nil, fmt.Errorf("loading %s: %w", dicPath, err)
			}
			b.provider.env.logger().Debug("loaded dictionary",
				zap.String("tag", tag), zap.String("path", dicPath))
			return dict, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDictionaryNotFound, tag)
}

func (b *hunspellBroker) Close() error {
	return nil
}

func loadHunspell(tag, dicPath, affPath string, store PersonalStore) (*memDictionary, error) {
	rawAff, err := os.ReadFile(affPath)
	if err != nil {
		return nil, err
	}
	charset := sniffEncoding(rawAff)
	affData, err := decodeText(rawAff, charset)
	if err != nil {
		return nil, err
	}
	aff, err := parseAffix(affData, charset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", affPath, err)
	}

	rawDic, err := os.ReadFile(dicPath)
	if err != nil {
		return nil, err
	}
	dicData, err := decodeText(rawDic, charset)
	if err != nil {
		return nil, err
	}
	dict := newMemDictionary(strings.ReplaceAll(tag, "-", "_"), aff, store)
	if err := dict.loadWords(dicData); err != nil {
		return nil, err
	}
	if err := dict.loadPersonal(); err != nil {
		return nil, err
	}
	return dict, nil
}
