// Package rebuild regenerates the derived vocabulary index of every language
// variety in a single transaction.
package rebuild

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/vocabindex/internal/config"
	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/internal/script"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type langvarRepo interface {
	ListAll(ctx context.Context) ([]domain.Langvar, error)
}

type exprRepo interface {
	ListByLangvar(ctx context.Context, uid string) ([]domain.Expr, error)
}

type indexWriter interface {
	Clear(ctx context.Context) error
	ReplaceLangvar(ctx context.Context, uid string, entries []domain.IndexEntry, jumps []domain.CharJump) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Report summarizes a successful rebuild.
type Report struct {
	Langvars int           `json:"langvars"`
	Entries  int           `json:"entries"`
	Jumps    int           `json:"jumps"`
	Duration time.Duration `json:"duration"`
}

// Service rebuilds the derived index tables.
type Service struct {
	log      *slog.Logger
	langvars langvarRepo
	exprs    exprRepo
	index    indexWriter
	tx       txManager
	matcher  *script.Matcher
	cfg      config.RebuildConfig
}

// NewService creates a new rebuild service.
func NewService(
	logger *slog.Logger,
	langvars langvarRepo,
	exprs exprRepo,
	index indexWriter,
	tx txManager,
	matcher *script.Matcher,
	cfg config.RebuildConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "rebuild"),
		langvars: langvars,
		exprs:    exprs,
		index:    index,
		tx:       tx,
		matcher:  matcher,
		cfg:      cfg,
	}
}
