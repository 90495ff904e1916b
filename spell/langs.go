// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// FallbackLanguage is requested when none of the configured languages resolve.
const FallbackLanguage = "en"

// ParseLanguages splits a language list on commas, spaces and tabs.
func ParseLanguages(list string) (result []string) {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// dictionaryNames returns the file base names to try for tag, most specific
// first: the tag as written (with '_' separators), then language_REGION using
// the likely region for a bare language, then the bare language.
func dictionaryNames(tag string) []string {
	names := []string{strings.ReplaceAll(tag, "-", "_")}
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err == nil {
		base, _ := parsed.Base()
		if region, confidence := parsed.Region(); confidence != language.No {
			names = append(names, base.String()+"_"+region.String())
		}
		names = append(names, base.String())
	}
	return dedupe(names)
}

// regional word list names, as shipped by Debian's wordlist packages
var regionAdjectives = map[string]string{
	"US": "american",
	"GB": "british",
	"CA": "canadian",
	"AU": "australian",
}

var languageListAliases = map[string][]string{
	"de": {"ngerman", "ogerman"},
	"pt": {"portuguese", "brazilian"},
}

// wordlistNames returns the /usr/share/dict file names to try for tag.
func wordlistNames(tag string) (names []string) {
	parsed, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return nil
	}
	base, _ := parsed.Base()
	english := strings.ToLower(display.English.Languages().Name(base))
	if region, confidence := parsed.Region(); confidence != language.No && english != "" {
		if adjective, ok := regionAdjectives[region.String()]; ok {
			names = append(names, adjective+"-"+english)
		}
	}
	names = append(names, languageListAliases[base.String()]...)
	if english != "" {
		names = append(names, english)
	}
	if base.String() == "en" {
		names = append(names, "words")
	}
	return dedupe(names)
}

func dedupe(in []string) (result []string) {
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return
}
