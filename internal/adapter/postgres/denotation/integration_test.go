package denotation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/denotation"
	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/testhelper"
)

func TestRepo_Candidates_Integration(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()

	eng := testhelper.SeedLangvar(t, pool, "Latn")
	deu := testhelper.SeedLangvar(t, pool, "Latn")
	engExprs := testhelper.SeedExprs(t, pool, eng, "apple", "pear")
	deuExprs := testhelper.SeedExprs(t, pool, deu, "Apfel", "Birne", "Obst")

	src := testhelper.SeedSource(t, pool, eng, deu)
	fruit, pearMeaning := testhelper.UniqueMeaning(), testhelper.UniqueMeaning()
	testhelper.SeedDenotations(t, pool, src,
		testhelper.Denotation{Meaning: fruit, Group: 1, Quality: 2, Langvar: eng, Expr: engExprs[0]},
		testhelper.Denotation{Meaning: fruit, Group: 1, Quality: 4, Langvar: deu, Expr: deuExprs[0]},
		testhelper.Denotation{Meaning: pearMeaning, Group: 2, Quality: 1, Langvar: eng, Expr: engExprs[1]},
		testhelper.Denotation{Meaning: pearMeaning, Group: 2, Quality: 3, Langvar: deu, Expr: deuExprs[1]},
	)

	got, err := denotation.New(pool).Candidates(ctx, deu.UID, []int64{engExprs[0].ID, engExprs[1].ID})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, engExprs[0].ID, got[0].SourceExprID)
	assert.Equal(t, deuExprs[0].ID, got[0].ExprID)
	assert.Equal(t, "Apfel", got[0].Text)
	require.Len(t, got[0].Attestations, 1)
	assert.Equal(t, int64(1), got[0].Attestations[0].Group)
	assert.Equal(t, 4, got[0].Attestations[0].Quality)

	assert.Equal(t, engExprs[1].ID, got[1].SourceExprID)
	assert.Equal(t, deuExprs[1].ID, got[1].ExprID)
}

func TestRepo_Candidates_ExcludesSelf(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)

	eng := testhelper.SeedLangvar(t, pool, "Latn")
	exprs := testhelper.SeedExprs(t, pool, eng, "car", "automobile")

	src := testhelper.SeedSource(t, pool, eng)
	meaning := testhelper.UniqueMeaning()
	testhelper.SeedDenotations(t, pool, src,
		testhelper.Denotation{Meaning: meaning, Group: 1, Langvar: eng, Expr: exprs[0]},
		testhelper.Denotation{Meaning: meaning, Group: 1, Langvar: eng, Expr: exprs[1]},
	)

	got, err := denotation.New(pool).Candidates(context.Background(), eng.UID, []int64{exprs[0].ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, exprs[1].ID, got[0].ExprID)
}
