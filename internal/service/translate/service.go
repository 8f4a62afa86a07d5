// Package translate aligns a vocabulary page with ranked translations into a
// second language variety.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type pageReader interface {
	GetPage(ctx context.Context, uid string, page int) ([]domain.Expr, error)
}

type candidateRepo interface {
	Candidates(ctx context.Context, targetUID string, sourceIDs []int64) ([]domain.Candidate, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service builds translated pages.
type Service struct {
	log        *slog.Logger
	pages      pageReader
	candidates candidateRepo
	scorer     Scorer
}

// NewService creates a new translate service. A nil scorer selects
// GroupQualityScorer.
func NewService(logger *slog.Logger, pages pageReader, candidates candidateRepo, scorer Scorer) *Service {
	if scorer == nil {
		scorer = GroupQualityScorer{}
	}
	return &Service{
		log:        logger.With("service", "translate"),
		pages:      pages,
		candidates: candidates,
		scorer:     scorer,
	}
}

type pairKey struct {
	source int64
	target int64
}

// GetTranslatedPage returns page of sourceUID with each expression paired
// with its translations into targetUID, best first. An empty targetUID pairs
// every expression with an empty list without querying the store.
func (s *Service) GetTranslatedPage(ctx context.Context, sourceUID, targetUID string, page int) ([]domain.TranslatedExpr, error) {
	exprs, err := s.pages.GetPage(ctx, sourceUID, page)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TranslatedExpr, len(exprs))
	for i, e := range exprs {
		result[i] = domain.TranslatedExpr{Expr: e, Translations: []domain.Translation{}}
	}
	if targetUID == "" || len(exprs) == 0 {
		return result, nil
	}

	ids := make([]int64, len(exprs))
	for i, e := range exprs {
		ids[i] = e.ID
	}

	cands, err := s.candidates.Candidates(ctx, targetUID, ids)
	if err != nil {
		return nil, fmt.Errorf("translate %s page %d into %s: %w", sourceUID, page, targetUID, err)
	}

	// Merge attestations per (source, target) pair.
	merged := make(map[pairKey]*domain.Candidate, len(cands))
	var order []pairKey
	for _, c := range cands {
		key := pairKey{source: c.SourceExprID, target: c.ExprID}
		if m, ok := merged[key]; ok {
			m.Attestations = append(m.Attestations, c.Attestations...)
			continue
		}
		c.Attestations = slices.Clone(c.Attestations)
		merged[key] = &c
		order = append(order, key)
	}

	bySource := make(map[int64][]domain.Translation, len(exprs))
	for _, key := range order {
		c := merged[key]
		bySource[key.source] = append(bySource[key.source], domain.Translation{
			ExprID:  c.ExprID,
			Text:    c.Text,
			Quality: s.scorer.Score(c.Attestations),
		})
	}

	for i := range result {
		trs, ok := bySource[result[i].Expr.ID]
		if !ok {
			continue
		}
		slices.SortFunc(trs, compareTranslations)
		result[i].Translations = trs
	}

	s.log.DebugContext(ctx, "translated page",
		slog.String("source", sourceUID),
		slog.String("target", targetUID),
		slog.Int("page", page),
		slog.Int("candidates", len(cands)),
	)
	return result, nil
}

// compareTranslations orders by quality descending, then target id ascending.
func compareTranslations(a, b domain.Translation) int {
	switch {
	case a.Quality > b.Quality:
		return -1
	case a.Quality < b.Quality:
		return 1
	case a.ExprID < b.ExprID:
		return -1
	case a.ExprID > b.ExprID:
		return 1
	}
	return 0
}
