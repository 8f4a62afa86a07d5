package domain

import "math"

const (
	// PageSize is the number of expressions per vocabulary page.
	PageSize = 50

	// JumpThreshold is the minimum number of expressions that must start with a
	// character before it gets a jump index entry.
	JumpThreshold = 3

	// PageRange is the number of neighbouring page links rendered on each side
	// of the current page.
	PageRange = 2
)

// Expr is an atomic lexical expression. Expressions are read-only input.
type Expr struct {
	ID       int64
	Text     string
	TextDegr string
}

// IndexEntry is one row of the ordered expression list of a variety.
// Positions are dense and 1-based.
type IndexEntry struct {
	UID      string
	Position int
	ExprID   int64
	Text     string
}

// CharJump is one row of the sparse jump index of a variety: the first
// position at which Char starts appearing as a leading character.
type CharJump struct {
	UID            string
	JumpPosition   int
	Char           string
	TargetPosition int
}

// CharPage is a jump index entry resolved to a page number.
type CharPage struct {
	Char string
	Page int
}

// Translation is a candidate translation of a source expression, ranked by Quality.
type Translation struct {
	ExprID  int64
	Text    string
	Quality float64
}

// TranslatedExpr pairs a source expression with its ranked translations.
type TranslatedExpr struct {
	Expr         Expr
	Translations []Translation
}

// PageNumber returns the 1-based page that holds the given position
// (ceil(position / PageSize)). Non-positive positions yield 0.
func PageNumber(position int) int {
	if position <= 0 {
		return 0
	}
	return (position + PageSize - 1) / PageSize
}

// PageBounds returns the exclusive lower and inclusive upper position bounds
// of a page: positions p with lo < p <= hi belong to the page. ok is false
// for pages that cannot hold any position (non-positive or overflowing).
func PageBounds(page int) (lo, hi int, ok bool) {
	if page < 1 || page > math.MaxInt/PageSize {
		return 0, 0, false
	}
	hi = page * PageSize
	return hi - PageSize, hi, true
}

// Attestation is one denotation pair backing a candidate translation:
// the group (source-level grouping) and quality of the target denotation.
type Attestation struct {
	Group   int64
	Quality int
}

// Candidate is a target-variety expression that shares at least one meaning
// with a source expression.
type Candidate struct {
	SourceExprID int64
	ExprID       int64
	Text         string
	Attestations []Attestation
}
