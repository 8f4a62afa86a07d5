// Package denotation implements translation candidate lookups over the
// denotationx relation using PostgreSQL.
package denotation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/domain"
)

// Repo provides denotation reads backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new denotation repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// candidatesSQL pairs each source expression with every target-variety
// expression sharing a meaning with it. A denotation never pairs with itself.
const candidatesSQL = `
SELECT
    e.id,
    e.txt,
    src.expr AS source_expr,
    array_agg(d.grp ORDER BY d.id) AS groups,
    array_agg(d.quality ORDER BY d.id) AS qualities
FROM expr e
JOIN denotationx d ON d.expr = e.id
JOIN denotationx src ON src.meaning = d.meaning AND src.expr <> d.expr
WHERE e.langvar = uid_langvar($1)
  AND src.expr = ANY($2::bigint[])
GROUP BY e.id, e.txt, src.expr
ORDER BY src.expr, e.id`

// Candidates returns the translation candidates in the variety targetUID for
// the given source expressions, ordered by source and target id.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) Candidates(ctx context.Context, targetUID string, sourceIDs []int64) ([]domain.Candidate, error) {
	if len(sourceIDs) == 0 {
		return []domain.Candidate{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, candidatesSQL, targetUID, sourceIDs)
	if err != nil {
		return nil, fmt.Errorf("get candidates in %s: %w", targetUID, err)
	}

	result, err := pgx.CollectRows(rows, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("scan candidates in %s: %w", targetUID, err)
	}
	if result == nil {
		result = []domain.Candidate{}
	}
	return result, nil
}

func scanCandidate(row pgx.CollectableRow) (domain.Candidate, error) {
	var (
		c         domain.Candidate
		groups    []int64
		qualities []int16
	)
	if err := row.Scan(&c.ExprID, &c.Text, &c.SourceExprID, &groups, &qualities); err != nil {
		return c, err
	}
	if len(groups) != len(qualities) {
		return c, fmt.Errorf("candidate %d: %d groups but %d qualities", c.ExprID, len(groups), len(qualities))
	}

	c.Attestations = make([]domain.Attestation, len(groups))
	for i := range groups {
		c.Attestations[i] = domain.Attestation{Group: groups[i], Quality: int(qualities[i])}
	}
	return c, nil
}
