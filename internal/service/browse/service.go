// Package browse implements the page reader: cached, read-only access to the
// derived vocabulary index of each language variety.
package browse

import (
	"context"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/vocabindex/internal/config"
	"github.com/heartmarshall/vocabindex/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type langvarRepo interface {
	GetByUIDs(ctx context.Context, uids []string) ([]domain.Langvar, error)
	ListAll(ctx context.Context) ([]domain.Langvar, error)
}

type indexRepo interface {
	Page(ctx context.Context, uid string, lo, hi int) ([]domain.Expr, error)
	CharJumps(ctx context.Context, uid string) ([]domain.CharJump, error)
	FindPosition(ctx context.Context, uid, likePattern string) (int, error)
}

// Normalizer maps free text to the normalized form stored in expr.txt_degr.
type Normalizer interface {
	Degrade(ctx context.Context, text string) (string, error)
}

const (
	loaderMaxBatch = 100
	loaderWait     = 2 * time.Millisecond
	loaderTimeout  = 10 * time.Second
)

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service serves vocabulary pages, jump indexes and variety metadata.
// It never writes the derived tables and never triggers a rebuild.
type Service struct {
	log        *slog.Logger
	langvars   langvarRepo
	index      indexRepo
	normalizer Normalizer
	cache      *cache
	loader     *dataloader.Loader[string, domain.Langvar]
}

// NewService creates a new browse service.
func NewService(
	logger *slog.Logger,
	langvars langvarRepo,
	index indexRepo,
	normalizer Normalizer,
	cfg config.BrowseConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "browse"),
		langvars:   langvars,
		index:      index,
		normalizer: normalizer,
		cache:      newCache(cfg.PageCacheSize),
		loader:     newLangvarLoader(langvars),
	}
}

// Invalidate starts a new cache generation. Entries loaded before the call
// are dropped; loads still in flight are discarded when they complete.
func (s *Service) Invalidate() {
	gen := s.cache.invalidate()
	s.log.Info("reader cache invalidated", slog.Uint64("generation", gen))
}

// Generation returns the current cache generation.
func (s *Service) Generation() uint64 {
	return s.cache.generation()
}
