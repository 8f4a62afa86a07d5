// Package expr implements read access to lexical expressions using PostgreSQL.
package expr

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/domain"
)

// Repo provides expression reads backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new expr repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ListByLangvar returns every expression of the variety identified by uid,
// in no particular order. Returns an empty slice for unknown uids.
func (r *Repo) ListByLangvar(ctx context.Context, uid string) ([]domain.Expr, error) {
	query, args, err := postgres.Builder().
		Select("e.id", "e.txt", "e.txt_degr").
		From("expr e").
		Where(squirrel.Expr("e.langvar = uid_langvar(?)", uid)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list exprs query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exprs of %s: %w", uid, err)
	}

	exprs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Expr, error) {
		var e domain.Expr
		err := row.Scan(&e.ID, &e.Text, &e.TextDegr)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan exprs of %s: %w", uid, err)
	}
	if exprs == nil {
		exprs = []domain.Expr{}
	}
	return exprs, nil
}

// Degrade normalizes text with the store's txt_degr function, the same
// normalization applied to the corpus.
func (r *Repo) Degrade(ctx context.Context, text string) (string, error) {
	var degr *string
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, `SELECT txt_degr($1)`, text).
		Scan(&degr)
	if err != nil {
		return "", fmt.Errorf("degrade text: %w", err)
	}
	if degr == nil {
		return "", nil
	}
	return *degr, nil
}
