// internal/model/models.go
package model

import "time"

// Profile is the public profile of the collected account.
type Profile struct {
	Login       string    `json:"login"`
	Name        *string   `json:"name"`
	Bio         *string   `json:"bio"`
	Company     *string   `json:"company"`
	Location    *string   `json:"location"`
	Blog        *string   `json:"blog"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	PublicRepos int       `json:"public_repos"`
	PublicGists int       `json:"public_gists"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Organization struct {
	Login       string  `json:"login"`
	Description *string `json:"description"`
	AvatarURL   string  `json:"avatar_url"`
	URL         string  `json:"url"`
}

// Repository represents the metadata of a GitHub repository as listed for the account.
type Repository struct {
	ID              int64     `json:"id"`
	Owner           string    `json:"owner"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     *string   `json:"description"`
	URL             string    `json:"html_url"`
	Language        *string   `json:"language"`
	DefaultBranch   string    `json:"default_branch"`
	Fork            bool      `json:"fork"`
	Archived        bool      `json:"archived"`
	StarsCount      int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	WatchersCount   int       `json:"watchers_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	Topics          []string  `json:"topics"`
	RepoCreatedAt   time.Time `json:"created_at"`
	RepoUpdatedAt   time.Time `json:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"`
}

type LatestCommit struct {
	SHA     string    `json:"sha"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
	URL     string    `json:"url"`
}

type ContributorAuthor struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// ContributorStat is one entry of the contributor statistics of a repository.
type ContributorStat struct {
	Total  int                `json:"total"`
	Author *ContributorAuthor `json:"author"`
}

// EnrichedRepository is a Repository plus the data attached by enrichment.
// Languages is never nil. LatestCommit, Contributors and CommitCountEstimate
// are nil when the corresponding lookup produced nothing.
type EnrichedRepository struct {
	Repository
	Languages           map[string]int    `json:"languages"`
	LatestCommit        *LatestCommit     `json:"latest_commit"`
	Contributors        []ContributorStat `json:"contributors"`
	CommitCountEstimate *int              `json:"commit_count_estimate"`
}

type LanguageShare struct {
	Name    string  `json:"name"`
	Bytes   int     `json:"bytes"`
	Percent float64 `json:"percent"`
}

type RepositoryRef struct {
	Name       string `json:"name"`
	URL        string `json:"html_url"`
	StarsCount int    `json:"stargazers_count"`
}

// Summary aggregates a collection run into the numbers rendered downstream.
type Summary struct {
	Login                string          `json:"login"`
	Followers            int             `json:"followers"`
	Following            int             `json:"following"`
	PublicRepos          int             `json:"public_repos"`
	TotalRepositories    int             `json:"total_repositories"`
	AnalyzedRepositories int             `json:"analyzed_repositories"`
	TotalStars           int             `json:"total_stars"`
	TotalForks           int             `json:"total_forks"`
	TotalCommitEstimate  int             `json:"total_commit_estimate"`
	ReposWithCommitStats int             `json:"repos_with_commit_stats"`
	Languages            []LanguageShare `json:"languages"`
	TopRepositories      []RepositoryRef `json:"top_repositories"`
	LastPushedAt         *time.Time      `json:"last_pushed_at"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

// Snapshot is everything one collection run produced.
type Snapshot struct {
	Profile              Profile              `json:"profile"`
	Organizations        []Organization       `json:"organizations"`
	Repositories         []EnrichedRepository `json:"repositories"`
	Summary              Summary              `json:"summary"`
	TotalRepositoryCount int                  `json:"total_repository_count"`
	GeneratedAt          time.Time            `json:"generated_at"`
}
