// internal/enricher/poller_test.go
package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "github-profile-collector/internal/errors"
	"github-profile-collector/internal/model"
)

// MockSource is a mock of the Source interface.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) ListLanguages(ctx context.Context, owner, name string) (map[string]int, error) {
	args := m.Called(ctx, owner, name)
	langs, _ := args.Get(0).(map[string]int)
	return langs, args.Error(1)
}
func (m *MockSource) LatestCommit(ctx context.Context, owner, name, branch string) (*model.LatestCommit, error) {
	args := m.Called(ctx, owner, name, branch)
	commit, _ := args.Get(0).(*model.LatestCommit)
	return commit, args.Error(1)
}
func (m *MockSource) ContributorStats(ctx context.Context, owner, name string) ([]model.ContributorStat, error) {
	args := m.Called(ctx, owner, name)
	stats, _ := args.Get(0).([]model.ContributorStat)
	return stats, args.Error(1)
}

// recordingTimer fires immediately and remembers every requested delay.
type recordingTimer struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordingTimer) After(d time.Duration) <-chan time.Time {
	r.mu.Lock()
	r.delays = append(r.delays, d)
	r.mu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func pendingErr() error {
	return fmt.Errorf("%w: 202 Accepted", custom_errors.ErrStatsPending)
}

func TestNextState(t *testing.T) {
	tests := []struct {
		name  string
		stats []model.ContributorStat
		err   error
		want  pollState
	}{
		{"list is ready", []model.ContributorStat{{Total: 1}}, nil, stateReady},
		{"empty list is ready", []model.ContributorStat{}, nil, stateReady},
		{"pending signal", nil, pendingErr(), statePending},
		{"no list and no error", nil, nil, statePending},
		{"not found is terminal", nil, custom_errors.ErrNotFound, stateFailed},
		{"forbidden is terminal", nil, custom_errors.ErrForbidden, stateFailed},
		{"rate limit is terminal", nil, custom_errors.ErrRateLimited, stateFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextState(tt.stats, tt.err))
		})
	}
}

func TestPoller_Poll(t *testing.T) {
	ctx := context.Background()
	stats := []model.ContributorStat{{Total: 5}, {Total: 7}}

	t.Run("returns the list after pending responses", func(t *testing.T) {
		src := new(MockSource)
		timer := &recordingTimer{}
		p := &Poller{source: src, logger: testLogger(), timer: timer}

		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(nil, pendingErr()).Times(3)
		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(stats, nil).Once()

		got := p.Poll(ctx, "octo", "hello", 6, time.Second)

		assert.Equal(t, stats, got)
		src.AssertNumberOfCalls(t, "ContributorStats", 4)
		src.AssertExpectations(t)
	})

	t.Run("gives up after exactly maxAttempts pending responses", func(t *testing.T) {
		src := new(MockSource)
		timer := &recordingTimer{}
		p := &Poller{source: src, logger: testLogger(), timer: timer}

		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(nil, pendingErr())

		got := p.Poll(ctx, "octo", "hello", 4, 100*time.Millisecond)

		assert.Nil(t, got)
		src.AssertNumberOfCalls(t, "ContributorStats", 4)
	})

	t.Run("waits linearly longer between attempts", func(t *testing.T) {
		src := new(MockSource)
		timer := &recordingTimer{}
		p := &Poller{source: src, logger: testLogger(), timer: timer}

		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(nil, pendingErr())

		p.Poll(ctx, "octo", "hello", 4, 100*time.Millisecond)

		// No wait after the final attempt.
		assert.Equal(t, []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			300 * time.Millisecond,
		}, timer.delays)
	})

	t.Run("stops immediately on a terminal error", func(t *testing.T) {
		src := new(MockSource)
		timer := &recordingTimer{}
		p := &Poller{source: src, logger: testLogger(), timer: timer}

		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(nil, fmt.Errorf("%w: 403", custom_errors.ErrForbidden)).Once()

		got := p.Poll(ctx, "octo", "hello", 6, time.Second)

		assert.Nil(t, got)
		src.AssertNumberOfCalls(t, "ContributorStats", 1)
		assert.Empty(t, timer.delays)
	})

	t.Run("treats a non-positive budget as a single attempt", func(t *testing.T) {
		src := new(MockSource)
		p := &Poller{source: src, logger: testLogger(), timer: &recordingTimer{}}

		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(nil, pendingErr())

		got := p.Poll(ctx, "octo", "hello", 0, time.Second)

		assert.Nil(t, got)
		src.AssertNumberOfCalls(t, "ContributorStats", 1)
	})

	t.Run("never surfaces an error for unexpected failures", func(t *testing.T) {
		src := new(MockSource)
		p := NewPoller(src, testLogger())

		src.On("ContributorStats", mock.Anything, "octo", "hello").Return(nil, errors.New("connection reset")).Once()

		require.NotPanics(t, func() {
			assert.Nil(t, p.Poll(ctx, "octo", "hello", 3, time.Hour))
		})
	})
}
