// internal/enricher/enricher.go
package enricher

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github-profile-collector/internal/model"
)

const (
	DefaultStatsAttempts     = 6
	DefaultStatsInitialDelay = 1500 * time.Millisecond
	DefaultThrottle          = 120 * time.Millisecond
)

// Source is everything the enricher needs from GitHub for one repository.
type Source interface {
	StatsSource
	ListLanguages(ctx context.Context, owner, name string) (map[string]int, error)
	LatestCommit(ctx context.Context, owner, name, branch string) (*model.LatestCommit, error)
}

// Options tunes the enricher. Zero values are replaced by the defaults above,
// except Throttle where a negative value disables the pause.
type Options struct {
	StatsAttempts     int
	StatsInitialDelay time.Duration
	Throttle          time.Duration
}

// Enricher attaches languages, latest commit and contributor statistics to a repository.
type Enricher struct {
	source Source
	poller *Poller
	logger *slog.Logger
	opts   Options
}

func NewEnricher(source Source, logger *slog.Logger, opts Options) *Enricher {
	if opts.StatsAttempts <= 0 {
		opts.StatsAttempts = DefaultStatsAttempts
	}
	if opts.StatsInitialDelay <= 0 {
		opts.StatsInitialDelay = DefaultStatsInitialDelay
	}
	if opts.Throttle == 0 {
		opts.Throttle = DefaultThrottle
	}

	return &Enricher{
		source: source,
		poller: NewPoller(source, logger),
		logger: logger,
		opts:   opts,
	}
}

// Enrich runs the three lookups for repo concurrently and merges whatever succeeded.
// A failed lookup leaves its field in the empty/nil form; the others are unaffected.
func (e *Enricher) Enrich(ctx context.Context, repo model.Repository) model.EnrichedRepository {
	logger := e.logger.With("owner", repo.Owner, "repo", repo.Name)
	result := model.EnrichedRepository{Repository: repo}

	// Each task writes a distinct field and always returns nil, so Wait joins all three.
	var g errgroup.Group

	g.Go(func() error {
		langs, err := e.source.ListLanguages(ctx, repo.Owner, repo.Name)
		if err != nil {
			logger.Warn("Failed to fetch languages", "error", err)
			langs = nil
		}
		if langs == nil {
			langs = map[string]int{}
		}
		result.Languages = langs
		return nil
	})

	g.Go(func() error {
		commit, err := e.source.LatestCommit(ctx, repo.Owner, repo.Name, repo.DefaultBranch)
		if err != nil {
			logger.Warn("Failed to fetch latest commit", "branch", repo.DefaultBranch, "error", err)
			return nil
		}
		result.LatestCommit = commit
		return nil
	})

	g.Go(func() error {
		stats := e.poller.Poll(ctx, repo.Owner, repo.Name, e.opts.StatsAttempts, e.opts.StatsInitialDelay)
		if stats == nil {
			return nil
		}
		total := 0
		for _, s := range stats {
			total += s.Total
		}
		result.Contributors = stats
		result.CommitCountEstimate = &total
		return nil
	})

	_ = g.Wait()

	if e.opts.Throttle > 0 {
		sleep(ctx, e.opts.Throttle)
	}
	return result
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
