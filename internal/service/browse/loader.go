package browse

import (
	"context"
	"fmt"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/vocabindex/internal/domain"
)

// newLangvarLoader batches concurrent variety cache misses into a single
// uid = ANY(...) query. The loader keeps no cache of its own; results are
// cached per generation by the service.
func newLangvarLoader(repo langvarRepo) *dataloader.Loader[string, domain.Langvar] {
	return dataloader.NewBatchedLoader(
		newLangvarBatchFn(repo),
		dataloader.WithCache[string, domain.Langvar](&dataloader.NoCache[string, domain.Langvar]{}),
		dataloader.WithWait[string, domain.Langvar](loaderWait),
		dataloader.WithBatchCapacity[string, domain.Langvar](loaderMaxBatch),
	)
}

func newLangvarBatchFn(repo langvarRepo) dataloader.BatchFunc[string, domain.Langvar] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[domain.Langvar] {
		// The batch runs on the context of whichever caller opened it; other
		// callers in the same window must not fail when that one goes away.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loaderTimeout)
		defer cancel()

		rows, err := repo.GetByUIDs(ctx, keys)
		if err != nil {
			return errorResults[domain.Langvar](len(keys), err)
		}

		byUID := make(map[string]domain.Langvar, len(rows))
		for _, lv := range rows {
			byUID[lv.UID] = lv
		}

		return mapResults(keys, byUID, func(uid string) error {
			return fmt.Errorf("langvar %s: %w", uid, domain.ErrNotFound)
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps found values back to key order, using missingFn to build
// the error of keys with no value.
func mapResults[K comparable, V any](keys []K, found map[K]V, missingFn func(K) error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := found[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Error: missingFn(key)}
		}
	}
	return results
}
