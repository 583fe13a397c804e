// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	custom_errors "github-profile-collector/internal/errors"
	"github-profile-collector/internal/model"
	"github-profile-collector/internal/summary"
)

var loginPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9]){0,38}$`)

// AccountSource lists the account-level data of a GitHub user.
type AccountSource interface {
	GetUser(ctx context.Context, login string) (*model.Profile, error)
	ListRepositories(ctx context.Context, login string) ([]model.Repository, error)
	ListOrganizations(ctx context.Context, login string) ([]model.Organization, error)
}

// Enricher turns the repository list into enriched, sorted records.
type Enricher interface {
	Run(ctx context.Context, repos []model.Repository) []model.EnrichedRepository
}

// Sink persists the result of a run.
type Sink interface {
	Save(ctx context.Context, snap *model.Snapshot) error
}

// Syncer orchestrates collecting, enriching and storing one account's data.
type Syncer struct {
	source       AccountSource
	enricher     Enricher
	sinks        []Sink
	logger       *slog.Logger
	login        string
	includeForks bool
	syncInterval time.Duration
	now          func() time.Time
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(source AccountSource, enricher Enricher, sinks []Sink, logger *slog.Logger, login string, includeForks bool, interval time.Duration) (*Syncer, error) {
	if err := ValidateLogin(login); err != nil {
		return nil, err
	}

	return &Syncer{
		source:       source,
		enricher:     enricher,
		sinks:        sinks,
		logger:       logger,
		login:        login,
		includeForks: includeForks,
		syncInterval: interval,
		now:          time.Now,
	}, nil
}

// ValidateLogin checks that login is a syntactically valid GitHub account name.
func ValidateLogin(login string) error {
	if len(login) > 39 || !loginPattern.MatchString(login) {
		return &custom_errors.ErrInvalidLogin{Login: login}
	}
	return nil
}

// Start begins the continuous synchronization process.
func (s *Syncer) Start(ctx context.Context) {
	s.logger.Info("Starting syncer", "login", s.login, "interval", s.syncInterval.String())
	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	s.runSyncCycle(ctx) // Initial sync

	for {
		select {
		case <-ticker.C:
			s.runSyncCycle(ctx)
		case <-ctx.Done():
			s.logger.Info("Syncer shutting down", "reason", ctx.Err())
			return
		}
	}
}

func (s *Syncer) runSyncCycle(ctx context.Context) {
	s.logger.Info("Starting new sync cycle")
	if _, err := s.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Sync cycle failed", "error", err)
		return
	}
	s.logger.Info("Sync cycle finished")
}

// RunOnce collects the account, enriches its repositories and hands the snapshot to every sink.
// Enrichment failures only degrade the snapshot; profile and repository listing failures abort the run.
func (s *Syncer) RunOnce(ctx context.Context) (*model.Snapshot, error) {
	logger := s.logger.With("login", s.login)

	profile, err := s.source.GetUser(ctx, s.login)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	allRepos, err := s.source.ListRepositories(ctx, s.login)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	logger.Info("Fetched repositories", "count", len(allRepos))

	orgs, err := s.source.ListOrganizations(ctx, s.login)
	if err != nil {
		logger.Warn("Failed to list organizations", "error", err)
		orgs = []model.Organization{}
	}

	repos := s.selectRepositories(allRepos)
	if skipped := len(allRepos) - len(repos); skipped > 0 {
		logger.Info("Skipping forked repositories", "count", skipped)
	}

	enriched := s.enricher.Run(ctx, repos)

	now := s.now()
	snap := &model.Snapshot{
		Profile:              *profile,
		Organizations:        orgs,
		Repositories:         enriched,
		Summary:              summary.Compute(*profile, enriched, len(allRepos), now),
		TotalRepositoryCount: len(allRepos),
		GeneratedAt:          now.UTC(),
	}

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Save(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return snap, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return snap, nil
}

func (s *Syncer) selectRepositories(all []model.Repository) []model.Repository {
	if s.includeForks {
		return all
	}
	repos := make([]model.Repository, 0, len(all))
	for _, r := range all {
		if !r.Fork {
			repos = append(repos, r)
		}
	}
	return repos
}
