package translate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockPageReader struct {
	GetPageFunc func(ctx context.Context, uid string, page int) ([]domain.Expr, error)
}

func (m *mockPageReader) GetPage(ctx context.Context, uid string, page int) ([]domain.Expr, error) {
	if m.GetPageFunc != nil {
		return m.GetPageFunc(ctx, uid, page)
	}
	return []domain.Expr{}, nil
}

type mockCandidateRepo struct {
	CandidatesFunc func(ctx context.Context, targetUID string, sourceIDs []int64) ([]domain.Candidate, error)

	calls int
}

func (m *mockCandidateRepo) Candidates(ctx context.Context, targetUID string, sourceIDs []int64) ([]domain.Candidate, error) {
	m.calls++
	if m.CandidatesFunc != nil {
		return m.CandidatesFunc(ctx, targetUID, sourceIDs)
	}
	return nil, nil
}

// ===========================================================================
// Helpers
// ===========================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sourcePage() []domain.Expr {
	return []domain.Expr{
		{ID: 10, Text: "cat", TextDegr: "cat"},
		{ID: 11, Text: "dog", TextDegr: "dog"},
		{ID: 12, Text: "emu", TextDegr: "emu"},
	}
}

func pageOf(exprs []domain.Expr) *mockPageReader {
	return &mockPageReader{
		GetPageFunc: func(_ context.Context, _ string, _ int) ([]domain.Expr, error) {
			return exprs, nil
		},
	}
}

func att(group int64, quality int) domain.Attestation {
	return domain.Attestation{Group: group, Quality: quality}
}

// ===========================================================================
// GetTranslatedPage
// ===========================================================================

func TestGetTranslatedPage_EmptyTarget(t *testing.T) {
	t.Parallel()

	repo := &mockCandidateRepo{}
	svc := NewService(discardLogger(), pageOf(sourcePage()), repo, nil)

	got, err := svc.GetTranslatedPage(context.Background(), "eng-000", "", 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, te := range got {
		assert.Equal(t, sourcePage()[i], te.Expr)
		assert.NotNil(t, te.Translations)
		assert.Empty(t, te.Translations)
	}
	assert.Zero(t, repo.calls, "no candidate query for an empty target")
}

func TestGetTranslatedPage_EmptyPage(t *testing.T) {
	t.Parallel()

	repo := &mockCandidateRepo{}
	svc := NewService(discardLogger(), pageOf([]domain.Expr{}), repo, nil)

	got, err := svc.GetTranslatedPage(context.Background(), "eng-000", "fra-000", 9)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, repo.calls)
}

func TestGetTranslatedPage_RankingAndPairing(t *testing.T) {
	t.Parallel()

	var gotTarget string
	var gotIDs []int64
	repo := &mockCandidateRepo{
		CandidatesFunc: func(_ context.Context, targetUID string, sourceIDs []int64) ([]domain.Candidate, error) {
			gotTarget, gotIDs = targetUID, sourceIDs
			return []domain.Candidate{
				// cat: chat scores (5+1)+(2+1)=9, minou scores 1.
				{SourceExprID: 10, ExprID: 200, Text: "minou", Attestations: []domain.Attestation{att(1, 0)}},
				{SourceExprID: 10, ExprID: 201, Text: "chat", Attestations: []domain.Attestation{att(1, 5), att(2, 2), att(1, 3)}},
				// dog: tie at 3, lower id first.
				{SourceExprID: 11, ExprID: 301, Text: "toutou", Attestations: []domain.Attestation{att(4, 2)}},
				{SourceExprID: 11, ExprID: 300, Text: "chien", Attestations: []domain.Attestation{att(5, 1), att(6, 0)}},
			}, nil
		},
	}
	svc := NewService(discardLogger(), pageOf(sourcePage()), repo, nil)

	got, err := svc.GetTranslatedPage(context.Background(), "eng-000", "fra-000", 1)
	require.NoError(t, err)

	assert.Equal(t, "fra-000", gotTarget)
	assert.Equal(t, []int64{10, 11, 12}, gotIDs)

	require.Len(t, got, 3)
	assert.Equal(t, int64(10), got[0].Expr.ID)
	assert.Equal(t, []domain.Translation{
		{ExprID: 201, Text: "chat", Quality: 9},
		{ExprID: 200, Text: "minou", Quality: 1},
	}, got[0].Translations)

	assert.Equal(t, []domain.Translation{
		{ExprID: 300, Text: "chien", Quality: 3},
		{ExprID: 301, Text: "toutou", Quality: 3},
	}, got[1].Translations)

	assert.Equal(t, int64(12), got[2].Expr.ID)
	assert.Empty(t, got[2].Translations)
}

func TestGetTranslatedPage_MergesDuplicatePairs(t *testing.T) {
	t.Parallel()

	repo := &mockCandidateRepo{
		CandidatesFunc: func(_ context.Context, _ string, _ []int64) ([]domain.Candidate, error) {
			return []domain.Candidate{
				{SourceExprID: 10, ExprID: 201, Text: "chat", Attestations: []domain.Attestation{att(1, 1)}},
				{SourceExprID: 10, ExprID: 201, Text: "chat", Attestations: []domain.Attestation{att(2, 1)}},
			}, nil
		},
	}
	svc := NewService(discardLogger(), pageOf(sourcePage()[:1]), repo, nil)

	got, err := svc.GetTranslatedPage(context.Background(), "eng-000", "fra-000", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []domain.Translation{{ExprID: 201, Text: "chat", Quality: 4}}, got[0].Translations)
}

func TestGetTranslatedPage_CustomScorer(t *testing.T) {
	t.Parallel()

	repo := &mockCandidateRepo{
		CandidatesFunc: func(_ context.Context, _ string, _ []int64) ([]domain.Candidate, error) {
			return []domain.Candidate{
				{SourceExprID: 10, ExprID: 201, Text: "chat", Attestations: []domain.Attestation{att(1, 9)}},
				{SourceExprID: 10, ExprID: 200, Text: "minou", Attestations: []domain.Attestation{att(1, 0), att(2, 0)}},
			}, nil
		},
	}
	count := ScorerFunc(func(atts []domain.Attestation) float64 { return float64(len(atts)) })
	svc := NewService(discardLogger(), pageOf(sourcePage()[:1]), repo, count)

	got, err := svc.GetTranslatedPage(context.Background(), "eng-000", "fra-000", 1)
	require.NoError(t, err)
	require.Len(t, got[0].Translations, 2)
	assert.Equal(t, int64(200), got[0].Translations[0].ExprID)
	assert.Equal(t, int64(201), got[0].Translations[1].ExprID)
}

func TestGetTranslatedPage_PageError(t *testing.T) {
	t.Parallel()

	pages := &mockPageReader{
		GetPageFunc: func(_ context.Context, _ string, _ int) ([]domain.Expr, error) {
			return nil, domain.ErrNotFound
		},
	}
	repo := &mockCandidateRepo{}
	svc := NewService(discardLogger(), pages, repo, nil)

	_, err := svc.GetTranslatedPage(context.Background(), "zzz-999", "fra-000", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, repo.calls)
}

func TestGetTranslatedPage_CandidateError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	repo := &mockCandidateRepo{
		CandidatesFunc: func(_ context.Context, _ string, _ []int64) ([]domain.Candidate, error) {
			return nil, boom
		},
	}
	svc := NewService(discardLogger(), pageOf(sourcePage()), repo, nil)

	_, err := svc.GetTranslatedPage(context.Background(), "eng-000", "fra-000", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fra-000")
}

// ===========================================================================
// GroupQualityScorer
// ===========================================================================

func TestGroupQualityScorer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		atts []domain.Attestation
		want float64
	}{
		{name: "none", atts: nil, want: 0},
		{name: "single", atts: []domain.Attestation{att(1, 4)}, want: 5},
		{name: "best per group", atts: []domain.Attestation{att(1, 1), att(1, 7), att(1, 3)}, want: 8},
		{name: "groups add up", atts: []domain.Attestation{att(1, 2), att(2, 2), att(3, 0)}, want: 7},
		{name: "negative counts as zero", atts: []domain.Attestation{att(1, -5)}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GroupQualityScorer{}.Score(tt.atts))
		})
	}
}

func TestGroupQualityScorer_Monotonic(t *testing.T) {
	t.Parallel()

	var s GroupQualityScorer
	atts := []domain.Attestation{att(1, 3)}
	prev := s.Score(atts)
	for _, extra := range []domain.Attestation{att(1, 0), att(2, 1), att(1, 9), att(3, -1), att(2, 0)} {
		atts = append(atts, extra)
		cur := s.Score(atts)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestGroupQualityScorer_OrderIndependent(t *testing.T) {
	t.Parallel()

	var s GroupQualityScorer
	a := []domain.Attestation{att(1, 3), att(2, 1), att(1, 5)}
	b := []domain.Attestation{att(1, 5), att(1, 3), att(2, 1)}
	assert.Equal(t, s.Score(a), s.Score(b))
}
