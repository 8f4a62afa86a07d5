package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/denotation"
	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/expr"
	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/langvar"
	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/vocabindex"
	"github.com/heartmarshall/vocabindex/internal/config"
	"github.com/heartmarshall/vocabindex/internal/script"
	"github.com/heartmarshall/vocabindex/internal/service/browse"
	"github.com/heartmarshall/vocabindex/internal/service/rebuild"
	"github.com/heartmarshall/vocabindex/internal/service/translate"
)

// Services bundles the engine services built on one connection pool.
type Services struct {
	Browse    *browse.Service
	Translate *translate.Service
	Rebuild   *rebuild.Service
}

// NewServices wires repositories and services on top of pool.
func NewServices(pool *pgxpool.Pool, logger *slog.Logger, cfg config.Config) Services {
	langvars := langvar.New(pool)
	exprs := expr.New(pool)
	index := vocabindex.New(pool)
	denotations := denotation.New(pool)

	browseSvc := browse.NewService(logger, langvars, index, newNormalizer(cfg.Browse.Normalizer, exprs), cfg.Browse)

	return Services{
		Browse:    browseSvc,
		Translate: translate.NewService(logger, browseSvc, denotations, translate.GroupQualityScorer{}),
		Rebuild: rebuild.NewService(
			logger,
			langvars,
			exprs,
			index,
			postgres.NewTxManager(pool),
			script.NewMatcher(cfg.Browse.PatternCacheSize),
			cfg.Rebuild,
		),
	}
}

// newNormalizer picks the query normalizer. The sql mode reuses the store's
// txt_degr so queries fold exactly like the corpus.
func newNormalizer(mode string, store browse.Normalizer) browse.Normalizer {
	if mode == config.NormalizerBuiltin {
		return browse.BuiltinNormalizer{}
	}
	return store
}
