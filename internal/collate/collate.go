// Package collate orders expressions of a language variety: expressions whose
// degraded text starts in the variety's script come first, each group sorted
// by degraded text, then display text.
package collate

import (
	"cmp"
	"slices"
	"strings"

	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/internal/script"
)

// Key is the ordering key of one expression.
type Key struct {
	// Mismatch is true when the leading character is outside the variety's
	// script. Always false for match-everything scripts.
	Mismatch bool
	Degr     string
	Text     string
}

// Compare orders keys: script matches first, then degraded text, then
// display text, all by codepoint.
func (k Key) Compare(o Key) int {
	if k.Mismatch != o.Mismatch {
		if k.Mismatch {
			return 1
		}
		return -1
	}
	if c := strings.Compare(k.Degr, o.Degr); c != 0 {
		return c
	}
	return strings.Compare(k.Text, o.Text)
}

// Collator builds ordering keys for one variety.
type Collator struct {
	pattern *script.Pattern
}

// ForScript returns the Collator for a variety whose designated script is
// scriptName.
func ForScript(m *script.Matcher, scriptName string) Collator {
	return Collator{pattern: m.Pattern(scriptName)}
}

// Key returns the ordering key of e.
func (c Collator) Key(e domain.Expr) Key {
	k := Key{Degr: e.TextDegr, Text: e.Text}
	if !c.pattern.MatchAll() {
		k.Mismatch = !c.pattern.MatchPrefix(e.TextDegr)
	}
	return k
}

// Sort orders exprs in place. Expressions with equal keys are ordered by ID
// so that the result never depends on input order.
func (c Collator) Sort(exprs []domain.Expr) {
	type keyed struct {
		key  Key
		expr domain.Expr
	}
	ks := make([]keyed, len(exprs))
	for i, e := range exprs {
		ks[i] = keyed{key: c.Key(e), expr: e}
	}
	slices.SortFunc(ks, func(a, b keyed) int {
		if r := a.key.Compare(b.key); r != 0 {
			return r
		}
		return cmp.Compare(a.expr.ID, b.expr.ID)
	})
	for i := range ks {
		exprs[i] = ks[i].expr
	}
}
