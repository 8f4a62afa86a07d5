package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/adapter/postgres/testhelper"
)

// sourceExists checks whether a source row with the given label exists in the database.
func sourceExists(t *testing.T, pool *pgxpool.Pool, label string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM source WHERE label = $1)`,
		label,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("sourceExists query: %v", err)
	}
	return exists
}

func insertSource(ctx context.Context, q postgres.Querier, label string) error {
	_, err := q.Exec(ctx, `INSERT INTO source (label) VALUES ($1)`, label)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	label := "tx-commit-" + t.Name()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertSource(ctx, postgres.QuerierFromCtx(ctx, pool), label)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !sourceExists(t, pool, label) {
		t.Fatal("expected source to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	label := "tx-rollback-" + t.Name()
	sentinel := errors.New("rebuild failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertSource(ctx, postgres.QuerierFromCtx(ctx, pool), label); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if sourceExists(t, pool, label) {
		t.Fatal("expected source NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackAfterCancel(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	label := "tx-cancel-" + t.Name()
	sentinel := errors.New("build failed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		if execErr := insertSource(ctx, postgres.QuerierFromCtx(ctx, pool), label); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		// Sibling workers cancel the shared context when one of them fails.
		cancel()
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if err.Error() != sentinel.Error() {
		t.Fatalf("expected rollback to succeed, got: %v", err)
	}

	if sourceExists(t, pool, label) {
		t.Fatal("expected source NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	label := "tx-panic-" + t.Name()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		if sourceExists(t, pool, label) {
			t.Fatal("expected source NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSource(ctx, postgres.QuerierFromCtx(ctx, pool), label); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	label := "tx-ctx-" + t.Name()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertSource(ctx, q, label); err != nil {
			return err
		}

		// Visible within the transaction, not yet outside.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM source WHERE label = $1)`, label).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected source to be visible within the transaction")
		}
		if sourceExists(t, pool, label) {
			t.Fatal("expected source NOT to be visible outside before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !sourceExists(t, pool, label) {
		t.Fatal("expected source to exist after committed transaction")
	}
}
