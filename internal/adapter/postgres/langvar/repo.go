// Package langvar implements read access to language varieties using PostgreSQL.
package langvar

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/domain"
)

// Repo provides language variety lookups backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new langvar repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Query builders
// ---------------------------------------------------------------------------

const uidExpr = "uid(lv.lang_code, lv.var_code)"

var baseColumns = []string{
	"lv.id",
	"lv.lang_code",
	"lv.var_code",
	uidExpr + " AS uid",
	"COALESCE(name_expr.txt, '') AS name_expr_txt",
	"COALESCE(script_expr.txt, '') AS script_expr_txt",
}

var statColumns = []string{
	"(SELECT count(*) FROM expr e WHERE e.langvar = lv.id) AS expr_count",
	"(SELECT count(*) FROM source s WHERE EXISTS (" + denotedBySource("s.id") + ")) AS analyzed_source_count",
	"(SELECT count(*) FROM source_langvar sl WHERE sl.langvar = lv.id AND NOT EXISTS (" + denotedBySource("sl.source") + ")) AS unanalyzed_source_count",
}

// denotedBySource is a subquery that yields rows when source has at least one
// denotation in the variety.
func denotedBySource(source string) string {
	return "SELECT 1 FROM denotationx dx WHERE dx.langvar = lv.id AND dx.source = " + source
}

func selectLangvars(withStats bool) squirrel.SelectBuilder {
	b := postgres.Builder().
		Select(baseColumns...).
		From("langvar lv").
		LeftJoin("expr name_expr ON name_expr.id = lv.name_expr").
		LeftJoin("expr script_expr ON script_expr.id = lv.script_expr")
	if withStats {
		b = b.Columns(statColumns...)
	}
	return b
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByUIDs returns the varieties matching uids with their expression count
// and source statistics (batch for the reader cache).
// Unknown uids are silently skipped; the order of the result is unspecified.
func (r *Repo) GetByUIDs(ctx context.Context, uids []string) ([]domain.Langvar, error) {
	if len(uids) == 0 {
		return []domain.Langvar{}, nil
	}

	query, args, err := selectLangvars(true).
		Where(squirrel.Expr(uidExpr+" = ANY(?)", uids)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get langvars query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get langvars by uids: %w", err)
	}
	defer rows.Close()

	return collect(rows, true)
}

// ListAll returns every variety ordered by uid, without statistics.
// Returns an empty slice (not nil) when the store holds no varieties.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Langvar, error) {
	query, args, err := selectLangvars(false).
		OrderBy(uidExpr).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list langvars query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list langvars: %w", err)
	}
	defer rows.Close()

	return collect(rows, false)
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanLangvar(row pgx.Row, withStats bool) (domain.Langvar, error) {
	var (
		lv      domain.Langvar
		varCode int32
	)
	dest := []any{&lv.ID, &lv.LangCode, &varCode, &lv.UID, &lv.NameExpr, &lv.Script}

	var exprCount, analyzed, unanalyzed int64
	if withStats {
		dest = append(dest, &exprCount, &analyzed, &unanalyzed)
	}

	if err := row.Scan(dest...); err != nil {
		return domain.Langvar{}, err
	}

	lv.VarCode = int(varCode)
	lv.ExprCount = int(exprCount)
	lv.AnalyzedSourceCount = int(analyzed)
	lv.UnanalyzedSourceCount = int(unanalyzed)
	return lv, nil
}

func collect(rows pgx.Rows, withStats bool) ([]domain.Langvar, error) {
	result := make([]domain.Langvar, 0)
	for rows.Next() {
		lv, err := scanLangvar(rows, withStats)
		if err != nil {
			return nil, fmt.Errorf("scan langvar: %w", err)
		}
		result = append(result, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate langvars: %w", err)
	}
	return result, nil
}
