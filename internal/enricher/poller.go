// internal/enricher/poller.go
package enricher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"

	custom_errors "github-profile-collector/internal/errors"
	"github-profile-collector/internal/model"
)

// StatsSource fetches contributor statistics, which GitHub computes asynchronously.
type StatsSource interface {
	ContributorStats(ctx context.Context, owner, name string) ([]model.ContributorStat, error)
}

type pollState int

const (
	statePending pollState = iota
	stateReady
	stateFailed
)

func (s pollState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateReady:
		return "ready"
	default:
		return "failed"
	}
}

// nextState decides what a single statistics response means for the poll loop.
// Only a list is usable; a pending signal or a non-list answer is worth another attempt.
func nextState(stats []model.ContributorStat, err error) pollState {
	switch {
	case err == nil && stats != nil:
		return stateReady
	case err == nil, errors.Is(err, custom_errors.ErrStatsPending):
		return statePending
	default:
		return stateFailed
	}
}

// linearDelay is the wait after the given attempt, attempt counted from 1.
func linearDelay(initial time.Duration, attempt int) time.Duration {
	return initial * time.Duration(attempt)
}

// Poller repeatedly asks for contributor statistics until they are ready.
type Poller struct {
	source StatsSource
	logger *slog.Logger
	timer  retry.Timer
}

func NewPoller(source StatsSource, logger *slog.Logger) *Poller {
	return &Poller{source: source, logger: logger}
}

// Poll returns the contributor statistics of owner/name, or nil if they did not
// become available within maxAttempts or the source failed. It never returns an error.
func (p *Poller) Poll(ctx context.Context, owner, name string, maxAttempts int, initialDelay time.Duration) []model.ContributorStat {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	logger := p.logger.With("owner", owner, "repo", name)

	attempt := 0
	opts := []retry.Option{
		retry.Attempts(uint(maxAttempts)),
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			return linearDelay(initialDelay, attempt)
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(_ uint, err error) {
			logger.Debug("Contributor stats not ready", "attempt", attempt, "max_attempts", maxAttempts)
		}),
	}
	if p.timer != nil {
		opts = append(opts, retry.WithTimer(p.timer))
	}

	stats, err := retry.DoWithData(func() ([]model.ContributorStat, error) {
		attempt++
		stats, err := p.source.ContributorStats(ctx, owner, name)
		switch nextState(stats, err) {
		case stateReady:
			return stats, nil
		case statePending:
			if err == nil {
				err = custom_errors.ErrStatsPending
			}
			return nil, err
		default:
			return nil, retry.Unrecoverable(err)
		}
	}, opts...)
	if err != nil {
		if errors.Is(err, custom_errors.ErrStatsPending) {
			logger.Warn("Contributor stats still pending after all attempts", "attempts", maxAttempts)
		} else {
			logger.Warn("Failed to fetch contributor stats", "error", err)
		}
		return nil
	}
	return stats
}
