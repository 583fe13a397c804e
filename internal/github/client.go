// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-profile-collector/internal/errors"
	"github-profile-collector/internal/model"
)

const perPage = 100

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// A non-empty token is used to create an authenticated http.Client;
// an empty token yields unauthenticated requests with lower rate limits.
func NewClient(token string, logger *slog.Logger) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		gh:     github.NewClient(hc),
		logger: logger,
	}
}

// SetBaseURL points the client at a different API root (GitHub Enterprise, test servers).
func (c *Client) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	c.gh.BaseURL = u
	return nil
}

// GetUser fetches the public profile of an account.
func (c *Client) GetUser(ctx context.Context, login string) (*model.Profile, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, translateError(err)
	}
	return toInternalProfile(user), nil
}

// ListRepositories fetches every repository owned by the account.
// It handles API pagination transparently.
func (c *Client) ListRepositories(ctx context.Context, login string) ([]model.Repository, error) {
	var allRepos []model.Repository

	opts := &github.RepositoryListByUserOptions{
		Type: "owner",
		Sort: "pushed",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	for {
		c.logger.Debug("Fetching repositories page", "login", login, "page", opts.Page)

		repos, resp, err := c.gh.Repositories.ListByUser(ctx, login, opts)
		if err != nil {
			return nil, translateError(err)
		}

		for _, repo := range repos {
			allRepos = append(allRepos, toInternalRepository(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

// ListOrganizations fetches the public organization memberships of the account.
func (c *Client) ListOrganizations(ctx context.Context, login string) ([]model.Organization, error) {
	var allOrgs []model.Organization

	opts := &github.ListOptions{PerPage: perPage}
	for {
		orgs, resp, err := c.gh.Organizations.List(ctx, login, opts)
		if err != nil {
			return nil, translateError(err)
		}

		for _, org := range orgs {
			allOrgs = append(allOrgs, model.Organization{
				Login:       org.GetLogin(),
				Description: org.Description,
				AvatarURL:   org.GetAvatarURL(),
				URL:         fmt.Sprintf("https://github.com/%s", org.GetLogin()),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allOrgs, nil
}

// ListLanguages returns the language breakdown (bytes per language) of a repository.
func (c *Client) ListLanguages(ctx context.Context, owner, name string) (map[string]int, error) {
	langs, _, err := c.gh.Repositories.ListLanguages(ctx, owner, name)
	if err != nil {
		return nil, translateError(err)
	}
	if langs == nil {
		langs = map[string]int{}
	}
	return langs, nil
}

// LatestCommit returns the most recent commit on branch, or nil if the branch has no commits.
func (c *Client) LatestCommit(ctx context.Context, owner, name, branch string) (*model.LatestCommit, error) {
	opts := &github.CommitsListOptions{
		SHA:         branch,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	commits, _, err := c.gh.Repositories.ListCommits(ctx, owner, name, opts)
	if err != nil {
		// GitHub answers 409 for a repository without any commits.
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusConflict {
			return nil, nil
		}
		return nil, translateError(err)
	}
	if len(commits) == 0 {
		return nil, nil
	}
	return toInternalCommit(commits[0]), nil
}

// ContributorStats returns per-contributor commit totals.
// While GitHub is still computing them it answers 202, reported as ErrStatsPending.
func (c *Client) ContributorStats(ctx context.Context, owner, name string) ([]model.ContributorStat, error) {
	stats, _, err := c.gh.Repositories.ListContributorsStats(ctx, owner, name)
	if err != nil {
		return nil, translateError(err)
	}
	if stats == nil {
		// 204 or an empty body: nothing usable yet.
		return nil, nil
	}

	result := make([]model.ContributorStat, 0, len(stats))
	for _, s := range stats {
		stat := model.ContributorStat{Total: s.GetTotal()}
		if s.Author != nil {
			stat.Author = &model.ContributorAuthor{
				Login:   s.Author.GetLogin(),
				HTMLURL: s.Author.GetHTMLURL(),
			}
		}
		result = append(result, stat)
	}
	return result, nil
}

// translateError maps go-github errors onto the collector's error taxonomy.
func translateError(err error) error {
	var acceptedErr *github.AcceptedError
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse

	switch {
	case errors.As(err, &acceptedErr):
		return fmt.Errorf("%w: %v", custom_errors.ErrStatsPending, err)
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return fmt.Errorf("%w: %v", custom_errors.ErrRateLimited, err)
	case errors.As(err, &respErr) && respErr.Response != nil:
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", custom_errors.ErrNotFound, err)
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("%w: %v", custom_errors.ErrForbidden, err)
		}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	return fmt.Errorf("%w: %v", custom_errors.ErrUpstream, err)
}

// toInternalProfile translates a github.User object to our internal model.Profile.
func toInternalProfile(u *github.User) *model.Profile {
	return &model.Profile{
		Login:       u.GetLogin(),
		Name:        u.Name,
		Bio:         u.Bio,
		Company:     u.Company,
		Location:    u.Location,
		Blog:        u.Blog,
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
		UpdatedAt:   u.GetUpdatedAt().Time,
	}
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	return model.Repository{
		ID:              r.GetID(),
		Owner:           r.GetOwner().GetLogin(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.Description,
		URL:             r.GetHTMLURL(),
		Language:        r.Language,
		DefaultBranch:   r.GetDefaultBranch(),
		Fork:            r.GetFork(),
		Archived:        r.GetArchived(),
		StarsCount:      r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		WatchersCount:   r.GetWatchersCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Topics:          r.Topics,
		RepoCreatedAt:   r.GetCreatedAt().Time,
		RepoUpdatedAt:   r.GetUpdatedAt().Time,
		PushedAt:        r.GetPushedAt().Time,
	}
}

// toInternalCommit translates a github.RepositoryCommit object to our internal model.LatestCommit.
// The author date is preferred; the committer date is used when it is missing.
func toInternalCommit(c *github.RepositoryCommit) *model.LatestCommit {
	date := c.GetCommit().GetAuthor().GetDate().Time
	if date.IsZero() {
		date = c.GetCommit().GetCommitter().GetDate().Time
	}
	return &model.LatestCommit{
		SHA:     c.GetSHA(),
		Date:    date,
		Message: c.GetCommit().GetMessage(),
		URL:     c.GetHTMLURL(),
	}
}
