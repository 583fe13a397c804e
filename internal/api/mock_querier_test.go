// internal/api/mock_querier_test.go
package api

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github-profile-collector/internal/database"
)

// MockQuerier is a mock of the database.Querier interface.
type MockQuerier struct {
	mock.Mock
}

func (m *MockQuerier) CreateRepositories(ctx context.Context, arg []database.CreateRepositoriesParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) CreateSnapshot(ctx context.Context, arg database.CreateSnapshotParams) (database.Snapshot, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Snapshot), args.Error(1)
}
func (m *MockQuerier) DeleteSnapshotsBefore(ctx context.Context, arg database.DeleteSnapshotsBeforeParams) (int64, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockQuerier) GetLatestSnapshot(ctx context.Context, login string) (database.Snapshot, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(database.Snapshot), args.Error(1)
}
func (m *MockQuerier) GetRepositoryBySnapshotAndName(ctx context.Context, arg database.GetRepositoryBySnapshotAndNameParams) (database.Repository, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(database.Repository), args.Error(1)
}
func (m *MockQuerier) ListRepositoriesBySnapshot(ctx context.Context, snapshotID int64) ([]database.Repository, error) {
	args := m.Called(ctx, snapshotID)
	return args.Get(0).([]database.Repository), args.Error(1)
}
