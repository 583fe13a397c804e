// internal/summary/summary.go
package summary

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github-profile-collector/internal/model"
)

const topRepositories = 5

// Compute aggregates the enriched repositories of one run.
// totalCount is the size of the account's full repository list, before any filtering.
func Compute(profile model.Profile, repos []model.EnrichedRepository, totalCount int, now time.Time) model.Summary {
	s := model.Summary{
		Login:                profile.Login,
		Followers:            profile.Followers,
		Following:            profile.Following,
		PublicRepos:          profile.PublicRepos,
		TotalRepositories:    totalCount,
		AnalyzedRepositories: len(repos),
		Languages:            []model.LanguageShare{},
		TopRepositories:      []model.RepositoryRef{},
		GeneratedAt:          now.UTC(),
	}

	langBytes := map[string]int{}
	totalBytes := 0
	for _, r := range repos {
		s.TotalStars += r.StarsCount
		s.TotalForks += r.ForksCount
		if r.CommitCountEstimate != nil {
			s.TotalCommitEstimate += *r.CommitCountEstimate
			s.ReposWithCommitStats++
		}
		for lang, n := range r.Languages {
			langBytes[lang] += n
			totalBytes += n
		}
		if !r.PushedAt.IsZero() && (s.LastPushedAt == nil || r.PushedAt.After(*s.LastPushedAt)) {
			pushed := r.PushedAt
			s.LastPushedAt = &pushed
		}
	}

	for lang, n := range langBytes {
		s.Languages = append(s.Languages, model.LanguageShare{
			Name:    lang,
			Bytes:   n,
			Percent: percent(n, totalBytes),
		})
	}
	slices.SortFunc(s.Languages, func(a, b model.LanguageShare) int {
		return cmp.Or(cmp.Compare(b.Bytes, a.Bytes), cmp.Compare(a.Name, b.Name))
	})

	byStars := slices.Clone(repos)
	slices.SortFunc(byStars, func(a, b model.EnrichedRepository) int {
		return cmp.Or(cmp.Compare(b.StarsCount, a.StarsCount), cmp.Compare(a.Name, b.Name))
	})
	for _, r := range byStars[:min(topRepositories, len(byStars))] {
		s.TopRepositories = append(s.TopRepositories, model.RepositoryRef{
			Name:       r.Name,
			URL:        r.URL,
			StarsCount: r.StarsCount,
		})
	}

	return s
}

// percent rounds to two decimals.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}
