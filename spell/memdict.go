// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxSuggestions caps every suggestion list.
const MaxSuggestions = 10

// memDictionary is a dictionary held entirely in memory: stems with their
// affix flags, plus the words accepted for this session or permanently.
type memDictionary struct {
	tag     string
	words   map[string][]string
	aff     *affixFile
	session map[string]struct{}
	store   PersonalStore

	// every form the dictionary can produce, built on first Suggest
	pool []string
}

func newMemDictionary(tag string, aff *affixFile, store PersonalStore) *memDictionary {
	if aff == nil {
		aff = &affixFile{}
	}
	return &memDictionary{
		tag:     tag,
		words:   make(map[string][]string),
		aff:     aff,
		session: make(map[string]struct{}),
		store:   store,
	}
}

// loadWords reads .dic content or a plain word list, one word per line. A
// leading line holding only a number is the .dic word count.
func (d *memDictionary) loadWords(data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				continue
			}
		}
		word, flags := splitDicLine(line)
		if word == "" {
			continue
		}
		word = norm.NFC.String(word)
		d.words[word] = append(d.words[word], d.aff.splitFlags(flags)...)
	}
	return scanner.Err()
}

// loadPersonal adds the stored personal words for this dictionary's tag.
func (d *memDictionary) loadPersonal() error {
	if d.store == nil {
		return nil
	}
	personal, err := d.store.Words(d.tag)
	if err != nil {
		return err
	}
	for _, word := range personal {
		d.accept(word)
	}
	return nil
}

func (d *memDictionary) Tag() string {
	return d.tag
}

func (d *memDictionary) Check(word string) bool {
	word = norm.NFC.String(word)
	for i, variant := range caseVariants(word) {
		if _, ok := d.session[variant]; ok {
			return true
		}
		if d.lookup(variant, i > 0) {
			return true
		}
	}
	return false
}

// lookup checks one spelling. recased means the spelling differs in case from
// what the user typed, which KEEPCASE stems don't allow.
func (d *memDictionary) lookup(word string, recased bool) bool {
	aff := d.aff
	if flags, ok := d.words[word]; ok {
		if hasFlag(flags, aff.forbidden) {
			return false
		}
		if !(recased && hasFlag(flags, aff.keepCase)) && !hasFlag(flags, aff.needAffix) {
			return true
		}
	}

	for _, sfx := range aff.suffixes {
		stem, ok := sfx.unapply(word)
		if !ok {
			continue
		}
		if d.stemAllows(stem, recased, sfx.flag) {
			return true
		}
		if !sfx.cross {
			continue
		}
		for _, pfx := range aff.prefixes {
			if !pfx.cross {
				continue
			}
			if root, ok := pfx.unapply(stem); ok && d.stemAllows(root, recased, sfx.flag, pfx.flag) {
				return true
			}
		}
	}

	for _, pfx := range aff.prefixes {
		if stem, ok := pfx.unapply(word); ok && d.stemAllows(stem, recased, pfx.flag) {
			return true
		}
	}
	return false
}

// stemAllows reports whether stem exists and carries every affix flag given.
func (d *memDictionary) stemAllows(stem string, recased bool, affixFlags ...string) bool {
	flags, ok := d.words[stem]
	if !ok {
		return false
	}
	if hasFlag(flags, d.aff.forbidden) || (recased && hasFlag(flags, d.aff.keepCase)) {
		return false
	}
	for _, flag := range affixFlags {
		if !hasFlag(flags, flag) {
			return false
		}
	}
	return true
}

func (d *memDictionary) Suggest(word string) []string {
	if d.pool == nil {
		d.pool = d.expand()
	}
	return rank(norm.NFC.String(word), d.pool, MaxSuggestions)
}

// expand generates every suggestible form: stems, single affixes and
// prefix+suffix cross products.
func (d *memDictionary) expand() []string {
	aff := d.aff
	seen := make(map[string]struct{}, len(d.words))
	var pool []string
	add := func(form string) {
		if _, ok := seen[form]; !ok && form != "" {
			seen[form] = struct{}{}
			pool = append(pool, form)
		}
	}

	for stem, flags := range d.words {
		if hasFlag(flags, aff.forbidden) || hasFlag(flags, aff.noSuggest) {
			continue
		}
		if !hasFlag(flags, aff.needAffix) {
			add(stem)
		}
		for _, sfx := range aff.suffixes {
			if !hasFlag(flags, sfx.flag) {
				continue
			}
			suffixed, ok := sfx.apply(stem)
			if !ok {
				continue
			}
			add(suffixed)
			if !sfx.cross {
				continue
			}
			for _, pfx := range aff.prefixes {
				if pfx.cross && hasFlag(flags, pfx.flag) {
					if both, ok := pfx.apply(suffixed); ok {
						add(both)
					}
				}
			}
		}
		for _, pfx := range aff.prefixes {
			if hasFlag(flags, pfx.flag) {
				if prefixed, ok := pfx.apply(stem); ok {
					add(prefixed)
				}
			}
		}
	}
	for word := range d.session {
		add(word)
	}
	return pool
}

// accept makes word a valid stem with no affixes.
func (d *memDictionary) accept(word string) {
	word = norm.NFC.String(word)
	if _, ok := d.words[word]; ok {
		return
	}
	d.words[word] = nil
	if d.pool != nil {
		d.pool = append(d.pool, word)
	}
}

func (d *memDictionary) AddToPersonal(word string) error {
	d.accept(word)
	if d.store == nil {
		return nil
	}
	return d.store.Add(d.tag, norm.NFC.String(word))
}

func (d *memDictionary) AddToSession(word string) {
	word = norm.NFC.String(word)
	if _, ok := d.session[word]; ok {
		return
	}
	d.session[word] = struct{}{}
	if d.pool != nil {
		d.pool = append(d.pool, word)
	}
}

func (d *memDictionary) Close() error {
	d.words = nil
	d.session = nil
	d.pool = nil
	return nil
}
