package domain

import (
	"fmt"
	"regexp"
)

// Langvar is a language variety: a language plus an orthographic or dialect
// variant, identified by a uid such as "eng-000".
//
// A Langvar is immutable for the life of a cache generation.
type Langvar struct {
	ID       int64
	UID      string
	LangCode string
	VarCode  int
	NameExpr string
	// Script is the ISO 15924 code of the designated script (e.g. "Latn", "Hant").
	Script    string
	ExprCount int

	// Display-only statistics; zero when not loaded.
	AnalyzedSourceCount   int
	UnanalyzedSourceCount int
}

// PageCount returns the number of vocabulary pages for the variety.
func (l Langvar) PageCount() int {
	return PageNumber(l.ExprCount)
}

var uidPattern = regexp.MustCompile(`^[a-z]{3}-\d{3}$`)

// ValidateUID checks that uid has the "abc-000" form.
func ValidateUID(uid string) error {
	if uid == "" {
		return NewValidationError("uid", "required")
	}
	if !uidPattern.MatchString(uid) {
		return NewValidationError("uid", "must match xxx-000")
	}
	return nil
}

// FormatUID builds a uid from a language code and a variant code.
func FormatUID(langCode string, varCode int) string {
	return fmt.Sprintf("%s-%03d", langCode, varCode)
}
