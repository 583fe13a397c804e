// internal/storage/postgres.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github-profile-collector/internal/database"
	"github-profile-collector/internal/model"
)

// PostgresStore persists snapshots so the read API can serve them.
type PostgresStore struct {
	dbpool      *pgxpool.Pool
	logger      *slog.Logger
	keepHistory bool
}

// NewPostgresStore creates a store. Unless keepHistory is set, older snapshots
// of the same account are removed once a new one is committed.
func NewPostgresStore(dbpool *pgxpool.Pool, logger *slog.Logger, keepHistory bool) *PostgresStore {
	return &PostgresStore{dbpool: dbpool, logger: logger, keepHistory: keepHistory}
}

// Save stores snap inside a single transaction.
func (p *PostgresStore) Save(ctx context.Context, snap *model.Snapshot) error {
	tx, err := p.dbpool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // Rollback is a no-op if the transaction is already committed.

	if _, err := p.saveSnapshot(ctx, database.New(tx), snap); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// saveSnapshot writes the snapshot row and its repositories and returns the new snapshot ID.
func (p *PostgresStore) saveSnapshot(ctx context.Context, q database.Querier, snap *model.Snapshot) (int64, error) {
	logger := p.logger.With("login", snap.Profile.Login)

	params, err := prepareSnapshotInsert(snap)
	if err != nil {
		return 0, err
	}
	row, err := q.CreateSnapshot(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("failed to create snapshot: %w", err)
	}
	logger = logger.With("snapshot_id", row.ID)

	if len(snap.Repositories) > 0 {
		repoParams, err := prepareRepositoryBulkInsert(row.ID, snap.Repositories)
		if err != nil {
			return 0, err
		}
		n, err := q.CreateRepositories(ctx, repoParams)
		if err != nil {
			return 0, fmt.Errorf("failed to insert repositories: %w", err)
		}
		logger.Info("Inserted repositories into database", "count", n)
	}

	if !p.keepHistory {
		n, err := q.DeleteSnapshotsBefore(ctx, database.DeleteSnapshotsBeforeParams{
			Login: snap.Profile.Login,
			ID:    row.ID,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to prune snapshots: %w", err)
		}
		if n > 0 {
			logger.Info("Pruned older snapshots", "count", n)
		}
	}

	return row.ID, nil
}

func prepareSnapshotInsert(snap *model.Snapshot) (database.CreateSnapshotParams, error) {
	orgs := snap.Organizations
	if orgs == nil {
		orgs = []model.Organization{}
	}

	profile, err := json.Marshal(snap.Profile)
	if err != nil {
		return database.CreateSnapshotParams{}, err
	}
	orgsJSON, err := json.Marshal(orgs)
	if err != nil {
		return database.CreateSnapshotParams{}, err
	}
	summary, err := json.Marshal(snap.Summary)
	if err != nil {
		return database.CreateSnapshotParams{}, err
	}

	return database.CreateSnapshotParams{
		Login:                snap.Profile.Login,
		Profile:              profile,
		Organizations:        orgsJSON,
		Summary:              summary,
		TotalRepositoryCount: int32(snap.TotalRepositoryCount),
	}, nil
}

func prepareRepositoryBulkInsert(snapshotID int64, repos []model.EnrichedRepository) ([]database.CreateRepositoriesParams, error) {
	params := make([]database.CreateRepositoriesParams, len(repos))
	for i, r := range repos {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode repository %s: %w", r.Name, err)
		}
		params[i] = database.CreateRepositoriesParams{
			SnapshotID:          snapshotID,
			Owner:               r.Owner,
			Name:                r.Name,
			PushedAt:            pgtype.Timestamptz{Time: r.PushedAt, Valid: true},
			StarsCount:          int32(r.StarsCount),
			ForksCount:          int32(r.ForksCount),
			CommitCountEstimate: toPgInt4(r.CommitCountEstimate),
			Data:                data,
		}
	}
	return params, nil
}

func toPgInt4(v *int) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*v), Valid: true}
}
