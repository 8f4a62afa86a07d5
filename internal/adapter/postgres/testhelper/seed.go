package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

// uniqueLangCode returns a random three-letter code. Combined with a random
// variant code it keeps parallel tests on the shared database apart.
func uniqueLangCode() string {
	b := make([]byte, 3)
	for i := range b {
		b[i] = byte('a' + rand.IntN(26))
	}
	return string(b)
}

// SeedLangvar creates a language variety with a unique uid, a name expression
// and a script expression holding script. The name and script expressions are
// stored in a separate metadata variety so they do not count towards the
// variety's own vocabulary.
func SeedLangvar(t *testing.T, pool *pgxpool.Pool, script string) domain.Langvar {
	t.Helper()
	ctx := context.Background()

	meta := seedRawLangvar(t, pool)
	lv := seedRawLangvar(t, pool)

	var nameID, scriptID int64
	err := pool.QueryRow(ctx,
		`INSERT INTO expr (langvar, txt) VALUES ($1, $2) RETURNING id`,
		meta.ID, "Name of "+lv.UID,
	).Scan(&nameID)
	if err != nil {
		t.Fatalf("testhelper: SeedLangvar insert name expr: %v", err)
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO expr (langvar, txt) VALUES ($1, $2) RETURNING id`,
		meta.ID, script,
	).Scan(&scriptID)
	if err != nil {
		t.Fatalf("testhelper: SeedLangvar insert script expr: %v", err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE langvar SET name_expr = $2, script_expr = $3 WHERE id = $1`,
		lv.ID, nameID, scriptID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLangvar update langvar: %v", err)
	}

	lv.NameExpr = "Name of " + lv.UID
	lv.Script = script
	return lv
}

func seedRawLangvar(t *testing.T, pool *pgxpool.Pool) domain.Langvar {
	t.Helper()

	for range 10 {
		lv := domain.Langvar{LangCode: uniqueLangCode(), VarCode: rand.IntN(1000)}
		lv.UID = domain.FormatUID(lv.LangCode, lv.VarCode)

		err := pool.QueryRow(context.Background(),
			`INSERT INTO langvar (lang_code, var_code) VALUES ($1, $2)
			 ON CONFLICT (lang_code, var_code) DO NOTHING
			 RETURNING id`,
			lv.LangCode, lv.VarCode,
		).Scan(&lv.ID)
		if err == nil {
			return lv
		}
	}

	t.Fatal("testhelper: seedRawLangvar could not find a free uid")
	return domain.Langvar{}
}

// SeedExprs inserts expressions into the variety and returns them with the
// normalized form computed by the store.
func SeedExprs(t *testing.T, pool *pgxpool.Pool, lv domain.Langvar, texts ...string) []domain.Expr {
	t.Helper()
	ctx := context.Background()

	exprs := make([]domain.Expr, 0, len(texts))
	for _, txt := range texts {
		e := domain.Expr{Text: txt}
		err := pool.QueryRow(ctx,
			`INSERT INTO expr (langvar, txt) VALUES ($1, $2) RETURNING id, txt_degr`,
			lv.ID, txt,
		).Scan(&e.ID, &e.TextDegr)
		if err != nil {
			t.Fatalf("testhelper: SeedExprs insert %q: %v", txt, err)
		}
		exprs = append(exprs, e)
	}
	return exprs
}

// SeedSource creates a source with a unique label and links it to the given
// varieties.
func SeedSource(t *testing.T, pool *pgxpool.Pool, langvars ...domain.Langvar) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO source (label) VALUES ($1) RETURNING id`,
		"src:"+uniqueLangCode()+uniqueLangCode()+uniqueLangCode(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedSource insert: %v", err)
	}

	for _, lv := range langvars {
		_, err := pool.Exec(ctx,
			`INSERT INTO source_langvar (source, langvar) VALUES ($1, $2)`,
			id, lv.ID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedSource link langvar: %v", err)
		}
	}
	return id
}

// Denotation describes one denotationx row for SeedDenotations.
type Denotation struct {
	Meaning int64
	Group   int64
	Quality int
	Langvar domain.Langvar
	Expr    domain.Expr
}

// SeedDenotations inserts denotation rows attributed to source.
func SeedDenotations(t *testing.T, pool *pgxpool.Pool, source int64, dens ...Denotation) {
	t.Helper()
	ctx := context.Background()

	for _, d := range dens {
		_, err := pool.Exec(ctx,
			`INSERT INTO denotationx (meaning, expr, langvar, source, grp, quality)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			d.Meaning, d.Expr.ID, d.Langvar.ID, source, d.Group, d.Quality,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedDenotations insert: %v", err)
		}
	}
}

// UniqueMeaning returns a meaning id unlikely to be shared with other tests.
func UniqueMeaning() int64 {
	return rand.Int64N(1 << 40)
}
