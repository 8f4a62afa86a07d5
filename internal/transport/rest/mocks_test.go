package rest

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/internal/service/rebuild"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type browseServiceMock struct {
	GetLangvarFunc   func(ctx context.Context, uid string) (domain.Langvar, error)
	ListLangvarsFunc func(ctx context.Context) ([]domain.Langvar, error)
	GetPageCountFunc func(ctx context.Context, uid string) (int, error)
	GetCharIndexFunc func(ctx context.Context, uid string) ([]domain.CharPage, error)
	FindPageFunc     func(ctx context.Context, uid, query string) (int, error)
}

func (m *browseServiceMock) GetLangvar(ctx context.Context, uid string) (domain.Langvar, error) {
	if m.GetLangvarFunc != nil {
		return m.GetLangvarFunc(ctx, uid)
	}
	return domain.Langvar{}, domain.ErrNotFound
}

func (m *browseServiceMock) ListLangvars(ctx context.Context) ([]domain.Langvar, error) {
	if m.ListLangvarsFunc != nil {
		return m.ListLangvarsFunc(ctx)
	}
	return []domain.Langvar{}, nil
}

func (m *browseServiceMock) GetPageCount(ctx context.Context, uid string) (int, error) {
	if m.GetPageCountFunc != nil {
		return m.GetPageCountFunc(ctx, uid)
	}
	return 0, nil
}

func (m *browseServiceMock) GetCharIndex(ctx context.Context, uid string) ([]domain.CharPage, error) {
	if m.GetCharIndexFunc != nil {
		return m.GetCharIndexFunc(ctx, uid)
	}
	return []domain.CharPage{}, nil
}

func (m *browseServiceMock) FindPage(ctx context.Context, uid, query string) (int, error) {
	if m.FindPageFunc != nil {
		return m.FindPageFunc(ctx, uid, query)
	}
	return 0, domain.ErrNotFound
}

type translateCall struct {
	source string
	target string
	page   int
}

type translateServiceMock struct {
	GetTranslatedPageFunc func(ctx context.Context, sourceUID, targetUID string, page int) ([]domain.TranslatedExpr, error)

	calls []translateCall
}

func (m *translateServiceMock) GetTranslatedPage(ctx context.Context, sourceUID, targetUID string, page int) ([]domain.TranslatedExpr, error) {
	m.calls = append(m.calls, translateCall{source: sourceUID, target: targetUID, page: page})
	if m.GetTranslatedPageFunc != nil {
		return m.GetTranslatedPageFunc(ctx, sourceUID, targetUID, page)
	}
	return []domain.TranslatedExpr{}, nil
}

type rebuilderMock struct {
	RebuildAllFunc func(ctx context.Context) (rebuild.Report, error)

	calls atomic.Int32
}

func (m *rebuilderMock) RebuildAll(ctx context.Context) (rebuild.Report, error) {
	m.calls.Add(1)
	if m.RebuildAllFunc != nil {
		return m.RebuildAllFunc(ctx)
	}
	return rebuild.Report{}, nil
}

type cacheInvalidatorMock struct {
	invalidated atomic.Int32
}

func (m *cacheInvalidatorMock) Invalidate() { m.invalidated.Add(1) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
