// Package index builds the derived vocabulary index of a language variety:
// the dense, collated position list and the sparse leading-character jump
// index used for alphabetic navigation.
package index

import (
	"slices"

	"github.com/heartmarshall/vocabindex/internal/collate"
	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/internal/script"
)

// Result is the derived index of one variety.
type Result struct {
	UID     string
	Entries []domain.IndexEntry
	Jumps   []domain.CharJump
}

// Build sorts exprs with the variety's collator, assigns positions 1..N and
// derives the jump index. exprs is not modified.
//
// A leading character gets a jump entry when at least domain.JumpThreshold
// expressions start with it and it belongs to the variety's script. The entry
// targets the first position at which the character appears. Expressions with
// empty degraded text are positioned but never considered for jumps.
func Build(lv domain.Langvar, exprs []domain.Expr, m *script.Matcher) Result {
	res := Result{UID: lv.UID}
	if len(exprs) == 0 {
		return res
	}

	coll := collate.ForScript(m, lv.Script)
	sorted := slices.Clone(exprs)
	coll.Sort(sorted)

	res.Entries = make([]domain.IndexEntry, len(sorted))

	counts := make(map[string]int)
	first := make(map[string]int)
	var seen []string

	for i, e := range sorted {
		pos := i + 1
		res.Entries[i] = domain.IndexEntry{
			UID:      lv.UID,
			Position: pos,
			ExprID:   e.ID,
			Text:     e.Text,
		}

		ch := domain.LeadingChar(e.TextDegr)
		if ch == "" {
			continue
		}
		if counts[ch] == 0 {
			first[ch] = pos
			seen = append(seen, ch)
		}
		counts[ch]++
	}

	pattern := m.Pattern(lv.Script)
	for _, ch := range seen {
		if counts[ch] < domain.JumpThreshold || !pattern.MatchPrefix(ch) {
			continue
		}
		res.Jumps = append(res.Jumps, domain.CharJump{
			UID:            lv.UID,
			JumpPosition:   len(res.Jumps) + 1,
			Char:           ch,
			TargetPosition: first[ch],
		})
	}

	return res
}

// CharPages resolves jump entries to page numbers, preserving order.
func CharPages(jumps []domain.CharJump) []domain.CharPage {
	pages := make([]domain.CharPage, len(jumps))
	for i, j := range jumps {
		pages[i] = domain.CharPage{Char: j.Char, Page: domain.PageNumber(j.TargetPosition)}
	}
	return pages
}
