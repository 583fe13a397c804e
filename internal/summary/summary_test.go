// internal/summary/summary_test.go
package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-profile-collector/internal/model"
)

func intPtr(v int) *int { return &v }

func TestCompute(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	profile := model.Profile{Login: "octo", Followers: 3, Following: 1, PublicRepos: 9}
	repos := []model.EnrichedRepository{
		{
			Repository:          model.Repository{Name: "a", StarsCount: 5, ForksCount: 1, PushedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			Languages:           map[string]int{"Go": 300, "Shell": 100},
			CommitCountEstimate: intPtr(40),
		},
		{
			Repository: model.Repository{Name: "b", StarsCount: 12, ForksCount: 4, PushedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			Languages:  map[string]int{"Go": 100},
		},
		{
			Repository:          model.Repository{Name: "c", StarsCount: 5},
			Languages:           map[string]int{},
			CommitCountEstimate: intPtr(2),
		},
	}

	s := Compute(profile, repos, 11, now)

	assert.Equal(t, "octo", s.Login)
	assert.Equal(t, 3, s.Followers)
	assert.Equal(t, 9, s.PublicRepos)
	assert.Equal(t, 11, s.TotalRepositories)
	assert.Equal(t, 3, s.AnalyzedRepositories)
	assert.Equal(t, 22, s.TotalStars)
	assert.Equal(t, 5, s.TotalForks)
	assert.Equal(t, 42, s.TotalCommitEstimate)
	assert.Equal(t, 2, s.ReposWithCommitStats)
	assert.Equal(t, now, s.GeneratedAt)

	require.Len(t, s.Languages, 2)
	assert.Equal(t, model.LanguageShare{Name: "Go", Bytes: 400, Percent: 80}, s.Languages[0])
	assert.Equal(t, model.LanguageShare{Name: "Shell", Bytes: 100, Percent: 20}, s.Languages[1])

	require.Len(t, s.TopRepositories, 3)
	assert.Equal(t, "b", s.TopRepositories[0].Name)
	assert.Equal(t, "a", s.TopRepositories[1].Name)
	assert.Equal(t, "c", s.TopRepositories[2].Name)

	require.NotNil(t, s.LastPushedAt)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *s.LastPushedAt)
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(model.Profile{Login: "octo"}, nil, 0, time.Now())

	assert.Equal(t, 0, s.AnalyzedRepositories)
	assert.NotNil(t, s.Languages)
	assert.Empty(t, s.Languages)
	assert.NotNil(t, s.TopRepositories)
	assert.Nil(t, s.LastPushedAt)
}

func TestCompute_LimitsTopRepositories(t *testing.T) {
	var repos []model.EnrichedRepository
	for i := 0; i < 8; i++ {
		repos = append(repos, model.EnrichedRepository{Repository: model.Repository{Name: string(rune('a' + i)), StarsCount: i}})
	}

	s := Compute(model.Profile{}, repos, len(repos), time.Now())

	require.Len(t, s.TopRepositories, topRepositories)
	assert.Equal(t, "h", s.TopRepositories[0].Name)
}
