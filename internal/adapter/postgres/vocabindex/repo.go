// Package vocabindex implements the derived vocabulary index tables
// (uid_expr and uid_char_index) using PostgreSQL.
//
// Writes are bulk replacements performed with COPY; they are meant to run
// inside the rebuild transaction obtained via postgres.TxManager.
package vocabindex

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/domain"
)

var (
	exprTable = pgx.Identifier{"uid_expr"}
	exprCols  = []string{"uid", "idx", "id", "txt"}
	charTable = pgx.Identifier{"uid_char_index"}
	charCols  = []string{"uid", "jump_idx", "char", "idx"}
)

// Repo provides reads and bulk writes of the derived index tables.
type Repo struct {
	pool postgres.Querier
}

// New creates a new vocabindex repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Clear empties both derived tables. DELETE rather than TRUNCATE: readers
// outside the rebuild transaction keep seeing the previous index instead of
// waiting on an ACCESS EXCLUSIVE lock until commit.
func (r *Repo) Clear(ctx context.Context) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, `DELETE FROM uid_expr`); err != nil {
		return fmt.Errorf("clear uid_expr: %w", err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM uid_char_index`); err != nil {
		return fmt.Errorf("clear uid_char_index: %w", err)
	}
	return nil
}

// ReplaceLangvar replaces the index rows of one variety with entries and jumps.
// Zero entries leave the variety with no rows.
func (r *Repo) ReplaceLangvar(ctx context.Context, uid string, entries []domain.IndexEntry, jumps []domain.CharJump) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, `DELETE FROM uid_expr WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("clear uid_expr of %s: %w", uid, err)
	}
	if _, err := q.Exec(ctx, `DELETE FROM uid_char_index WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("clear uid_char_index of %s: %w", uid, err)
	}

	if len(entries) > 0 {
		src := pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.UID, int32(e.Position), e.ExprID, e.Text}, nil
		})
		if _, err := q.CopyFrom(ctx, exprTable, exprCols, src); err != nil {
			return fmt.Errorf("copy uid_expr of %s: %w", uid, err)
		}
	}

	if len(jumps) > 0 {
		src := pgx.CopyFromSlice(len(jumps), func(i int) ([]any, error) {
			j := jumps[i]
			return []any{j.UID, int32(j.JumpPosition), j.Char, int32(j.TargetPosition)}, nil
		})
		if _, err := q.CopyFrom(ctx, charTable, charCols, src); err != nil {
			return fmt.Errorf("copy uid_char_index of %s: %w", uid, err)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Page returns the expressions at positions lo < idx <= hi in position order.
// The returned expressions carry no normalized text.
func (r *Repo) Page(ctx context.Context, uid string, lo, hi int) ([]domain.Expr, error) {
	query, args, err := postgres.Builder().
		Select("ue.id", "ue.txt").
		From("uid_expr ue").
		Where(squirrel.Eq{"ue.uid": uid}).
		Where(squirrel.Gt{"ue.idx": lo}).
		Where(squirrel.LtOrEq{"ue.idx": hi}).
		OrderBy("ue.idx").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build page query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get page of %s: %w", uid, err)
	}

	exprs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Expr, error) {
		var e domain.Expr
		err := row.Scan(&e.ID, &e.Text)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan page of %s: %w", uid, err)
	}
	if exprs == nil {
		exprs = []domain.Expr{}
	}
	return exprs, nil
}

// CharJumps returns the jump index of a variety ordered by jump position.
func (r *Repo) CharJumps(ctx context.Context, uid string) ([]domain.CharJump, error) {
	query, args, err := postgres.Builder().
		Select("ci.jump_idx", "ci.char", "ci.idx").
		From("uid_char_index ci").
		Where(squirrel.Eq{"ci.uid": uid}).
		OrderBy("ci.jump_idx").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build char index query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get char index of %s: %w", uid, err)
	}

	jumps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CharJump, error) {
		var (
			j            domain.CharJump
			jump, target int32
		)
		if err := row.Scan(&jump, &j.Char, &target); err != nil {
			return j, err
		}
		j.UID = uid
		j.JumpPosition = int(jump)
		j.TargetPosition = int(target)
		return j, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan char index of %s: %w", uid, err)
	}
	if jumps == nil {
		jumps = []domain.CharJump{}
	}
	return jumps, nil
}

// FindPosition returns the lowest position whose normalized text matches the
// LIKE pattern. Returns domain.ErrNotFound when nothing matches.
func (r *Repo) FindPosition(ctx context.Context, uid, likePattern string) (int, error) {
	query, args, err := postgres.Builder().
		Select("ue.idx").
		From("uid_expr ue").
		Join("expr e ON e.id = ue.id").
		Where(squirrel.Eq{"ue.uid": uid}).
		Where(squirrel.Expr("e.txt_degr LIKE ?", likePattern)).
		OrderBy("ue.idx").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build search query: %w", err)
	}

	var idx int32
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&idx)
	if err != nil {
		return 0, postgres.MapError(err, "position", uid+" "+likePattern)
	}
	return int(idx), nil
}
