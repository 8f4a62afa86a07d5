package browse

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/internal/index"
)

// GetLangvar returns the variety identified by uid.
// Returns domain.ErrNotFound for unknown uids; failed loads are not cached.
func (s *Service) GetLangvar(ctx context.Context, uid string) (domain.Langvar, error) {
	lv, gen, ok := s.cache.langvar(uid)
	if ok {
		return lv, nil
	}

	lv, err := s.loader.Load(ctx, uid)()
	if err != nil {
		return domain.Langvar{}, err
	}

	s.log.DebugContext(ctx, "langvar loaded", slog.String("uid", uid))
	s.cache.storeLangvar(gen, lv)
	return lv, nil
}

// ListLangvars returns every variety ordered by uid, without statistics.
func (s *Service) ListLangvars(ctx context.Context) ([]domain.Langvar, error) {
	all, gen, ok := s.cache.allLangvars()
	if ok {
		return all, nil
	}

	all, err := s.langvars.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list langvars: %w", err)
	}

	s.cache.storeAllLangvars(gen, all)
	return all, nil
}

// GetPage returns the expressions of page (1-based) in index order.
// Pages outside [1, page count] yield an empty slice.
func (s *Service) GetPage(ctx context.Context, uid string, page int) ([]domain.Expr, error) {
	lo, hi, ok := domain.PageBounds(page)
	if !ok {
		return []domain.Expr{}, nil
	}

	exprs, gen, ok := s.cache.page(uid, page)
	if ok {
		return exprs, nil
	}

	exprs, err := s.index.Page(ctx, uid, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("get page %d of %s: %w", page, uid, err)
	}

	s.cache.storePage(gen, uid, page, exprs)
	return exprs, nil
}

// GetPageCount returns the number of pages of the variety.
func (s *Service) GetPageCount(ctx context.Context, uid string) (int, error) {
	lv, err := s.GetLangvar(ctx, uid)
	if err != nil {
		return 0, err
	}
	return lv.PageCount(), nil
}

// GetCharIndex returns the jump index of the variety resolved to pages.
// Unknown uids yield an empty index.
func (s *Service) GetCharIndex(ctx context.Context, uid string) ([]domain.CharPage, error) {
	cp, gen, ok := s.cache.charPages(uid)
	if ok {
		return cp, nil
	}

	jumps, err := s.index.CharJumps(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get char index of %s: %w", uid, err)
	}

	cp = index.CharPages(jumps)
	s.cache.storeCharPages(gen, uid, cp)
	return cp, nil
}

// FindPage returns the page holding the first expression whose normalized
// text starts with the normalized query.
// Returns domain.ErrNotFound when nothing matches or the query normalizes to
// the empty string.
func (s *Service) FindPage(ctx context.Context, uid, query string) (int, error) {
	degr, err := s.normalizer.Degrade(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("normalize query: %w", err)
	}
	if degr == "" {
		return 0, fmt.Errorf("empty query: %w", domain.ErrNotFound)
	}

	pos, err := s.index.FindPosition(ctx, uid, domain.EscapeLike(degr)+"%")
	if err != nil {
		return 0, err
	}
	return domain.PageNumber(pos), nil
}
