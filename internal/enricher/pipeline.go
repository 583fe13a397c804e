// internal/enricher/pipeline.go
package enricher

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github-profile-collector/internal/model"
)

// DefaultConcurrency is the number of repositories enriched in parallel.
const DefaultConcurrency = 8

// Pipeline enriches a repository list and orders it for rendering.
type Pipeline struct {
	enrich      EnrichFunc
	concurrency int
	logger      *slog.Logger
}

func NewPipeline(e *Enricher, concurrency int, logger *slog.Logger) *Pipeline {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Pipeline{enrich: e.Enrich, concurrency: concurrency, logger: logger}
}

// Run enriches every repository and returns them sorted by push time, newest first.
// Repositories pushed at the same instant come out in no particular order.
func (p *Pipeline) Run(ctx context.Context, repos []model.Repository) []model.EnrichedRepository {
	start := time.Now()
	p.logger.Info("Enriching repositories", "count", len(repos), "concurrency", p.concurrency)

	results := RunPool(ctx, repos, p.concurrency, p.enrich)
	sortByPushedAt(results)

	p.logger.Info("Enrichment finished", "count", len(results), "duration", time.Since(start).String())
	return results
}

func sortByPushedAt(repos []model.EnrichedRepository) {
	slices.SortFunc(repos, func(a, b model.EnrichedRepository) int {
		return b.PushedAt.Compare(a.PushedAt)
	})
}
