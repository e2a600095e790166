// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client library.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com/"

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
	SearchPullRequests(ctx context.Context, username string) ([]domain.PullRequestItem, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
// Requests are unauthenticated, single-page and never retried.
type GitHubGateway struct {
	restClient *github.Client
	logger     *logrus.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway
// talking to the REST API rooted at baseURL.
func NewGitHubGateway(baseURL string, logger *logrus.Logger) (*GitHubGateway, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GitHub API URL %q: %w", baseURL, err)
	}
	restClient := github.NewClient(nil)
	restClient.BaseURL = u
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchProfile retrieves the user's profile. Any status other than 200 is
// reported as domain.ErrProfileNotFound.
func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Debugf("[1/3] Fetching profile of %s...", username)
	user, resp, err := g.restClient.Users.Get(ctx, username)
	if status := statusCode(resp); status != 0 && status != http.StatusOK {
		g.logger.WithField("status", status).Debug("Profile request rejected")
		return nil, fmt.Errorf("%w (status %d)", domain.ErrProfileNotFound, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &domain.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		Bio:         user.GetBio(),
		AvatarURL:   user.GetAvatarURL(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}, nil
}

// FetchRepositories lists the first page of the user's repositories in the
// order returned by the API.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Debugf("[2/3] Fetching repositories of %s...", username)
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, username, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, domain.Repository{
			Name:     repo.GetName(),
			FullName: repo.GetFullName(),
			Stars:    repo.GetStargazersCount(),
			Forks:    repo.GetForksCount(),
			Language: repo.GetLanguage(),
		})
	}
	g.logger.Debugf("Fetched %d repositories.", len(result))
	return result, nil
}

// SearchPullRequests returns the first page of pull requests authored by the user.
// The username is interpolated into the search query as is.
func (g *GitHubGateway) SearchPullRequests(ctx context.Context, username string) ([]domain.PullRequestItem, error) {
	g.logger.Debugf("[3/3] Searching pull requests of %s...", username)
	query := fmt.Sprintf("type:pr author:%s", username)
	result, _, err := g.restClient.Search.Issues(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to search pull requests: %w", err)
	}
	if result.Issues == nil {
		return nil, fmt.Errorf("%w: search result has no items", domain.ErrMalformedPayload)
	}
	items := make([]domain.PullRequestItem, 0, len(result.Issues))
	for _, issue := range result.Issues {
		items = append(items, domain.PullRequestItem{RepositoryURL: issue.GetRepositoryURL()})
	}
	g.logger.Debugf("Found %d pull requests.", len(items))
	return items, nil
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}
