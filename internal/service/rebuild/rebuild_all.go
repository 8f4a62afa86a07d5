package rebuild

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/internal/index"
)

// RebuildAll clears the derived tables and rebuilds the index of every
// variety, committing once at the end. Varieties are built by up to
// cfg.Workers goroutines reading outside the transaction; a single writer
// streams their results into it. Any failure rolls everything back and the
// previous index stays visible. Reader caches are left untouched.
func (s *Service) RebuildAll(ctx context.Context) (Report, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	langvars, err := s.langvars.ListAll(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("rebuild: list langvars: %w", err)
	}

	s.log.InfoContext(ctx, "rebuild started",
		slog.Int("langvars", len(langvars)),
		slog.Int("workers", s.cfg.Workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan index.Result, s.cfg.Workers)

	g.Go(func() error {
		if err := s.buildAll(gctx, langvars, results); err != nil {
			return err
		}
		// Closed only on success: the writer commits when it sees the end of
		// the stream and rolls back when gctx is cancelled instead.
		close(results)
		return nil
	})

	var report Report
	g.Go(func() error {
		return s.tx.RunInTx(gctx, func(txCtx context.Context) error {
			return s.writeAll(txCtx, results, &report)
		})
	})

	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "rebuild failed", slog.String("error", err.Error()))
		return Report{}, fmt.Errorf("rebuild: %w", err)
	}

	report.Duration = time.Since(start)
	s.log.InfoContext(ctx, "rebuild finished",
		slog.Int("langvars", report.Langvars),
		slog.Int("entries", report.Entries),
		slog.Int("jumps", report.Jumps),
		slog.Duration("duration", report.Duration),
	)
	return report, nil
}

// buildAll builds every variety with bounded parallelism and sends the
// results to out in completion order.
func (s *Service) buildAll(ctx context.Context, langvars []domain.Langvar, out chan<- index.Result) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for _, lv := range langvars {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := s.buildOne(gctx, lv)
			if err != nil {
				return err
			}
			select {
			case out <- res:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Service) buildOne(ctx context.Context, lv domain.Langvar) (index.Result, error) {
	exprs, err := s.exprs.ListByLangvar(ctx, lv.UID)
	if err != nil {
		return index.Result{}, fmt.Errorf("build %s: %w", lv.UID, err)
	}

	if s.matcher.Pattern(lv.Script).Unresolved() {
		s.log.DebugContext(ctx, "unknown script, indexing script-agnostic",
			slog.String("uid", lv.UID),
			slog.String("script", lv.Script),
		)
	}

	return index.Build(lv, exprs, s.matcher), nil
}

// writeAll runs inside the rebuild transaction.
func (s *Service) writeAll(ctx context.Context, in <-chan index.Result, report *Report) error {
	if err := s.index.Clear(ctx); err != nil {
		return err
	}

	for {
		select {
		case res, ok := <-in:
			if !ok {
				return nil
			}
			if err := s.index.ReplaceLangvar(ctx, res.UID, res.Entries, res.Jumps); err != nil {
				return fmt.Errorf("write %s: %w", res.UID, err)
			}

			report.Langvars++
			report.Entries += len(res.Entries)
			report.Jumps += len(res.Jumps)

			s.log.DebugContext(ctx, "langvar indexed",
				slog.String("uid", res.UID),
				slog.Int("entries", len(res.Entries)),
				slog.Int("jumps", len(res.Jumps)),
			)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
