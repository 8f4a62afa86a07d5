// Package script classifies text by writing system. A variety's designated
// script name (an ISO 15924 code such as "Latn" or "Hant") resolves to a
// Pattern: a set of Unicode script tables, or match-everything for scripts
// that carry no character-level signal.
package script

import (
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
)

// DefaultCacheSize is the number of resolved patterns kept by NewMatcher
// when a non-positive size is given.
const DefaultCacheSize = 256

// overrides maps script names whose pattern differs from the generic
// single-script lookup. A nil slice means match everything.
var overrides = map[string][]string{
	"Blis": nil,
	"Geok": {"Georgian"},
	"Hanb": {"Han", "Bopomofo"},
	"Hans": {"Han"},
	"Hant": {"Han"},
	"Hrkt": {"Hiragana", "Katakana"},
	"Jamo": {"Hangul"},
	"Jpan": {"Han", "Hiragana", "Katakana"},
	"Kore": {"Han", "Hangul"},
	"Zmth": nil,
	"Zsye": nil,
	"Zsym": nil,
}

// Pattern is a resolved script pattern.
type Pattern struct {
	name       string
	tables     []*unicode.RangeTable
	unresolved bool
}

// Name returns the script name the pattern was resolved from.
func (p *Pattern) Name() string { return p.name }

// Unresolved reports whether the name matched neither an override nor a
// Unicode script, so the pattern fell back to match-everything.
func (p *Pattern) Unresolved() bool { return p.unresolved }

// MatchAll reports whether the pattern accepts any character.
func (p *Pattern) MatchAll() bool { return len(p.tables) == 0 }

// MatchRune reports whether r belongs to one of the pattern's scripts.
func (p *Pattern) MatchRune(r rune) bool {
	if p.MatchAll() {
		return true
	}
	return unicode.In(r, p.tables...)
}

// MatchPrefix reports whether s starts with a character of the pattern's
// scripts. Empty s matches only a match-everything pattern.
func (p *Pattern) MatchPrefix(s string) bool {
	if p.MatchAll() {
		return true
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}
	return p.MatchRune(r)
}

// Matcher resolves script names into patterns and memoizes the result.
// It is safe for concurrent use.
type Matcher struct {
	cache *lru.Cache[string, *Pattern]
}

// NewMatcher creates a Matcher that keeps up to size resolved patterns.
func NewMatcher(size int) *Matcher {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[string, *Pattern](size)
	return &Matcher{cache: cache}
}

// Pattern returns the pattern for scriptName: the override entry if one
// exists, otherwise the generic single-script pattern built from the name.
// Unresolvable names yield a match-everything pattern.
func (m *Matcher) Pattern(scriptName string) *Pattern {
	if p, ok := m.cache.Get(scriptName); ok {
		return p
	}
	p := resolve(scriptName)
	m.cache.Add(scriptName, p)
	return p
}

// Matches reports whether the leading character of s belongs to scriptName.
func (m *Matcher) Matches(s, scriptName string) bool {
	return m.Pattern(scriptName).MatchPrefix(s)
}

func resolve(scriptName string) *Pattern {
	if names, ok := overrides[scriptName]; ok {
		return &Pattern{name: scriptName, tables: lookupTables(names)}
	}

	goName := unicodeName(scriptName)
	table, ok := unicode.Scripts[goName]
	if !ok {
		return &Pattern{name: scriptName, unresolved: true}
	}
	return &Pattern{name: scriptName, tables: []*unicode.RangeTable{table}}
}

func lookupTables(names []string) []*unicode.RangeTable {
	if len(names) == 0 {
		return nil
	}
	tables := make([]*unicode.RangeTable, 0, len(names))
	for _, n := range names {
		if t, ok := unicode.Scripts[n]; ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// unicodeName maps an ISO 15924 code to the name used by the unicode
// package's script tables. Names that are not valid codes are returned as
// given so that "Latin" or "Cyrillic" still resolve.
func unicodeName(scriptName string) string {
	s, err := language.ParseScript(scriptName)
	if err != nil {
		return scriptName
	}
	if name, ok := iso15924[s.String()]; ok {
		return name
	}
	return scriptName
}
