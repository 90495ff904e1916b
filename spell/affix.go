// Copyright (c) 2026 ircmark contributors
// released under the ISC license

package spell

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

type flagMode int

const (
	flagChar flagMode = iota // one rune per flag (also FLAG UTF-8)
	flagLong                 // two runes per flag
	flagNum                  // comma-separated decimal numbers
)

// affixRule is one PFX or SFX line.
type affixRule struct {
	flag   string
	prefix bool
	cross  bool
	strip  string
	add    string
	// continuation flags on the affix itself, e.g. "ed/X"
	flags []string
	cond  *regexp.Regexp
}

// unapply undoes the rule on word, returning the stem it was built from.
func (r *affixRule) unapply(word string) (string, bool) {
	var stem string
	if r.prefix {
		if !strings.HasPrefix(word, r.add) {
			return "", false
		}
		stem = r.strip + word[len(r.add):]
	} else {
		if !strings.HasSuffix(word, r.add) {
			return "", false
		}
		stem = word[:len(word)-len(r.add)] + r.strip
	}
	if stem == "" || !r.cond.MatchString(stem) {
		return "", false
	}
	return stem, true
}

// apply builds the affixed form of stem, if the condition allows it.
func (r *affixRule) apply(stem string) (string, bool) {
	if !r.cond.MatchString(stem) {
		return "", false
	}
	if r.prefix {
		if !strings.HasPrefix(stem, r.strip) {
			return "", false
		}
		return r.add + stem[len(r.strip):], true
	}
	if !strings.HasSuffix(stem, r.strip) {
		return "", false
	}
	return stem[:len(stem)-len(r.strip)] + r.add, true
}

// affixFile is the parsed content of a .aff file that matters for checking
// and suggesting.
type affixFile struct {
	encoding  string
	mode      flagMode
	aliases   [][]string
	prefixes  []*affixRule
	suffixes  []*affixRule
	forbidden string
	noSuggest string
	keepCase  string
	needAffix string
}

// compileCondition turns a hunspell condition into an anchored regexp.
// Bracket classes are kept, '.' matches anything and the rest is literal.
func compileCondition(cond string, prefix bool) (*regexp.Regexp, error) {
	var buf strings.Builder
	if prefix {
		buf.WriteByte('^')
	}
	if cond != "." && cond != "" {
		inClass := false
		for _, r := range cond {
			switch {
			case inClass:
				if r == ']' {
					inClass = false
				}
				if r == '\\' {
					buf.WriteString(`\\`)
				} else {
					buf.WriteRune(r)
				}
			case r == '[':
				inClass = true
				buf.WriteRune(r)
			case r == '.':
				buf.WriteRune(r)
			default:
				buf.WriteString(regexp.QuoteMeta(string(r)))
			}
		}
	}
	if !prefix {
		buf.WriteByte('$')
	}
	return regexp.Compile(buf.String())
}

// splitFlags decodes a flag field according to the FLAG mode.
func (a *affixFile) splitFlags(field string) (result []string) {
	if len(a.aliases) != 0 {
		if index, err := strconv.Atoi(field); err == nil && 0 < index && index <= len(a.aliases) {
			return a.aliases[index-1]
		}
	}
	return a.rawFlags(field)
}

// rawFlags splits field by the FLAG mode alone, without AF aliases.
func (a *affixFile) rawFlags(field string) (result []string) {
	switch a.mode {
	case flagNum:
		for _, f := range strings.Split(field, ",") {
			if f = strings.TrimSpace(f); f != "" {
				result = append(result, f)
			}
		}
	case flagLong:
		runes := []rune(field)
		for i := 0; i+1 < len(runes); i += 2 {
			result = append(result, string(runes[i:i+2]))
		}
	default:
		for _, r := range field {
			result = append(result, string(r))
		}
	}
	return
}

func (a *affixFile) singleFlag(field string) string {
	if flags := a.rawFlags(field); len(flags) != 0 {
		return flags[0]
	}
	return ""
}

// sniffEncoding finds the SET line of raw .aff content.
func sniffEncoding(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "SET" {
			return fields[1]
		}
	}
	return "UTF-8"
}

// decodeText converts data from the named charset to UTF-8.
func decodeText(data []byte, charset string) ([]byte, error) {
	name := strings.ToLower(charset)
	switch {
	case name == "utf-8" || name == "utf8" || name == "":
		return data, nil
	case strings.HasPrefix(name, "iso8859-"):
		name = "iso-8859-" + strings.TrimPrefix(name, "iso8859-")
	case strings.HasPrefix(name, "microsoft-cp"):
		name = "windows-" + strings.TrimPrefix(name, "microsoft-cp")
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported dictionary encoding %s: %w", charset, err)
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	return result, err
}

// parseAffix reads a .aff file that is already UTF-8.
func parseAffix(data []byte, charset string) (*affixFile, error) {
	aff := &affixFile{encoding: charset}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	// remaining lines of the current AF or PFX/SFX block
	pendingAliases, pendingRules := 0, 0
	cross := false
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "FLAG":
			if len(fields) < 2 {
				continue
			}
			switch fields[1] {
			case "long":
				aff.mode = flagLong
			case "num":
				aff.mode = flagNum
			default:
				aff.mode = flagChar
			}
		case "AF":
			if len(fields) < 2 {
				continue
			}
			if pendingAliases == 0 {
				count, err := strconv.Atoi(fields[1])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad AF count: %w", lineNo, err)
				}
				pendingAliases = count
				continue
			}
			pendingAliases--
			aff.aliases = append(aff.aliases, aff.rawFlags(fields[1]))
		case "FORBIDDENWORD":
			if len(fields) >= 2 {
				aff.forbidden = aff.singleFlag(fields[1])
			}
		case "NOSUGGEST":
			if len(fields) >= 2 {
				aff.noSuggest = aff.singleFlag(fields[1])
			}
		case "KEEPCASE":
			if len(fields) >= 2 {
				aff.keepCase = aff.singleFlag(fields[1])
			}
		case "NEEDAFFIX", "PSEUDOROOT":
			if len(fields) >= 2 {
				aff.needAffix = aff.singleFlag(fields[1])
			}
		case "PFX", "SFX":
			prefix := fields[0] == "PFX"
			if pendingRules == 0 {
				// header: PFX flag cross count
				if len(fields) < 4 {
					return nil, fmt.Errorf("line %d: short affix header", lineNo)
				}
				count, err := strconv.Atoi(fields[3])
				if err != nil {
					return nil, fmt.Errorf("line %d: bad affix count: %w", lineNo, err)
				}
				pendingRules = count
				cross = fields[2] == "Y"
				continue
			}
			pendingRules--
			rule, err := aff.parseRule(fields, prefix, cross)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if prefix {
				aff.prefixes = append(aff.prefixes, rule)
			} else {
				aff.suffixes = append(aff.suffixes, rule)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return aff, nil
}

// parseRule reads "PFX flag strip add[/flags] [cond]".
func (a *affixFile) parseRule(fields []string, prefix, cross bool) (*affixRule, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf("short affix rule")
	}
	rule := &affixRule{
		flag:   a.singleFlag(fields[1]),
		prefix: prefix,
		cross:  cross,
	}
	if fields[2] != "0" {
		rule.strip = fields[2]
	}
	add := fields[3]
	if i := strings.IndexByte(add, '/'); i != -1 {
		rule.flags = a.splitFlags(add[i+1:])
		add = add[:i]
	}
	if add != "0" {
		rule.add = add
	}
	cond := "."
	if len(fields) >= 5 {
		cond = fields[4]
	}
	var err error
	if rule.cond, err = compileCondition(cond, prefix); err != nil {
		return nil, fmt.Errorf("bad condition %q: %w", cond, err)
	}
	return rule, nil
}

// hasFlag reports whether flags contains flag; an empty flag is never set.
func hasFlag(flags []string, flag string) bool {
	if flag == "" {
		return false
	}
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}

// splitDicLine separates "word/FLAGS morph..." into the word and its flag
// field. A "\/" is a literal slash.
func splitDicLine(line string) (word, flags string) {
	if i := strings.IndexAny(line, "\t"); i != -1 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, ' '); i != -1 {
		line = line[:i]
	}
	for i := 0; i < len(line); i++ {
		if line[i] == '\\' && i+1 < len(line) && line[i+1] == '/' {
			i++
			continue
		}
		if line[i] == '/' {
			return strings.ReplaceAll(line[:i], `\/`, "/"), line[i+1:]
		}
	}
	return strings.ReplaceAll(line, `\/`, "/"), ""
}
