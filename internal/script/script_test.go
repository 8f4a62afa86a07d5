package script

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Overrides(t *testing.T) {
	t.Parallel()

	m := NewMatcher(0)

	tests := []struct {
		script string
		text   string
		want   bool
	}{
		{"Hant", "猫", true},
		{"Hant", "cat", false},
		{"Hans", "犬", true},
		{"Hrkt", "ねこ", true},
		{"Hrkt", "ネコ", true},
		{"Hrkt", "猫", false},
		{"Jpan", "猫", true},
		{"Jpan", "ねこ", true},
		{"Jpan", "고양이", false},
		{"Kore", "고양이", true},
		{"Kore", "猫", true},
		{"Jamo", "ㄱ", true},
		{"Hanb", "ㄅ", true},
		{"Geok", "ა", true},
		{"Zsym", "→", true},
		{"Zsye", "x", true},
		{"Blis", "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Matches(tt.text, tt.script), "Matches(%q, %q)", tt.text, tt.script)
	}
}

func TestMatcher_GenericFallback(t *testing.T) {
	t.Parallel()

	m := NewMatcher(8)

	assert.True(t, m.Matches("cat", "Latn"))
	assert.False(t, m.Matches("кот", "Latn"))
	assert.True(t, m.Matches("кот", "Cyrl"))
	assert.True(t, m.Matches("γάτα", "Grek"))
	assert.True(t, m.Matches("قطة", "Arab"))
	// Lowercase codes are canonicalized.
	assert.True(t, m.Matches("cat", "latn"))
	// Unicode table names resolve verbatim.
	assert.True(t, m.Matches("cat", "Latin"))
}

func TestMatcher_UnknownScriptFailsClosed(t *testing.T) {
	t.Parallel()

	m := NewMatcher(8)

	for _, name := range []string{"Qaaa", "not a script", "", "}{"} {
		p := m.Pattern(name)
		assert.True(t, p.MatchAll(), "pattern for %q should match everything", name)
		assert.True(t, p.Unresolved(), "pattern for %q should be marked unresolved", name)
		assert.True(t, m.Matches("anything", name))
	}

	// Explicit match-everything scripts are resolved, not fallbacks.
	assert.False(t, m.Pattern("Zmth").Unresolved())
	assert.False(t, m.Pattern("Latn").Unresolved())
}

func TestPattern_EmptyText(t *testing.T) {
	t.Parallel()

	m := NewMatcher(8)

	assert.False(t, m.Matches("", "Latn"))
	assert.True(t, m.Matches("", "Zmth"))
}

func TestMatcher_Memoizes(t *testing.T) {
	t.Parallel()

	m := NewMatcher(8)

	first := m.Pattern("Cyrl")
	second := m.Pattern("Cyrl")
	assert.Same(t, first, second)
	assert.Equal(t, "Cyrl", first.Name())
}

func TestMatcher_ConcurrentUse(t *testing.T) {
	t.Parallel()

	m := NewMatcher(2)
	scripts := []string{"Latn", "Cyrl", "Hant", "Grek", "Arab"}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := scripts[i%len(scripts)]
			_ = m.Matches("x", s)
		}(i)
	}
	wg.Wait()
}
