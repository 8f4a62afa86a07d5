// Command rebuild recomputes the derived vocabulary index tables of every
// language variety in one transaction. It is intended to be invoked by an
// external cron job after the base data changes. Running servers keep their
// caches until restarted or told to invalidate via POST /admin/rebuild.
//
// Exit codes: 0 = success, 1 = error (the previous index stays in place).
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/vocabindex/internal/adapter/postgres"
	"github.com/heartmarshall/vocabindex/internal/app"
	"github.com/heartmarshall/vocabindex/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := app.NewServices(pool, logger, *cfg)

	report, err := svc.Rebuild.RebuildAll(ctx)
	if err != nil {
		logger.Error("rebuild failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	logger.Info("rebuild completed",
		slog.Int("langvars", report.Langvars),
		slog.Int("entries", report.Entries),
		slog.Int("jumps", report.Jumps),
		slog.Duration("duration", report.Duration),
	)
}
