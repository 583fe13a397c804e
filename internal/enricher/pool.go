// internal/enricher/pool.go
package enricher

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github-profile-collector/internal/model"
)

// EnrichFunc enriches a single repository.
type EnrichFunc func(ctx context.Context, repo model.Repository) model.EnrichedRepository

// RunPool drains repos with exactly concurrency workers sharing one cursor.
// Every index is claimed by exactly one worker. It returns once all workers have
// seen the end of the list. Callers must not rely on the order of the result.
func RunPool(ctx context.Context, repos []model.Repository, concurrency int, enrich EnrichFunc) []model.EnrichedRepository {
	if len(repos) == 0 {
		return []model.EnrichedRepository{}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var cursor atomic.Int64
	results := make([]model.EnrichedRepository, len(repos))

	var g errgroup.Group
	for w := 0; w < concurrency; w++ {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1) - 1)
				if i >= len(repos) {
					return nil
				}
				// Claimed indexes are disjoint, so workers never write the same slot.
				results[i] = enrich(ctx, repos[i])
			}
		})
	}
	_ = g.Wait()

	return results
}
