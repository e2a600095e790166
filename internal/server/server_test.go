package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	js "github.com/buger/jsonparser"
	"github.com/naka-gawa/github-profile/internal/chart"
	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/usecase"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned GitHub data and counts the calls it receives.
type stubFetcher struct {
	profileErr error
	searchErr  error
	calls      int
}

func (f *stubFetcher) FetchProfile(_ context.Context, username string) (*domain.Profile, error) {
	f.calls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return &domain.Profile{Login: username, PublicRepos: 2, Followers: 2, Following: 1}, nil
}

func (f *stubFetcher) FetchRepositories(_ context.Context, username string) ([]domain.Repository, error) {
	f.calls++
	return []domain.Repository{
		{Name: "a", FullName: username + "/a", Stars: 3, Forks: 1, Language: "Go"},
		{Name: "b", FullName: username + "/b", Stars: 5},
	}, nil
}

func (f *stubFetcher) SearchPullRequests(_ context.Context, username string) ([]domain.PullRequestItem, error) {
	f.calls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return []domain.PullRequestItem{
		{RepositoryURL: "https://api.github.com/repos/" + username + "/a"},
		{RepositoryURL: "https://api.github.com/repos/" + username + "/a-extra"},
	}, nil
}

func newTestServer(fetcher *stubFetcher) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	pipeline := usecase.NewPipeline(fetcher, logger, usecase.WithPalette(chart.FixedPalette("#000000")))
	return New(pipeline, logger, "/chart.js")
}

func doGet(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	rec := doGet(t, newTestServer(&stubFetcher{}), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_GetStats(t *testing.T) {
	testCases := []struct {
		name           string
		target         string
		fetcher        *stubFetcher
		expectedStatus int
		expectedError  string
		expectedCalls  int
	}{
		{
			name:           "happy path",
			target:         "/api/stats?username=alice",
			fetcher:        &stubFetcher{},
			expectedStatus: http.StatusOK,
			expectedCalls:  3,
		},
		{
			name:           "missing username",
			target:         "/api/stats",
			fetcher:        &stubFetcher{},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Please enter a GitHub username",
			expectedCalls:  0,
		},
		{
			name:           "profile not found",
			target:         "/api/stats?username=ghost",
			fetcher:        &stubFetcher{profileErr: fmt.Errorf("%w (status 404)", domain.ErrProfileNotFound)},
			expectedStatus: http.StatusNotFound,
			expectedError:  "GitHub user not found or rate limit exceeded.",
			expectedCalls:  1,
		},
		{
			name:           "search fails after the first charts",
			target:         "/api/stats?username=alice",
			fetcher:        &stubFetcher{searchErr: fmt.Errorf("%w: search result has no items", domain.ErrMalformedPayload)},
			expectedStatus: http.StatusBadGateway,
			expectedError:  "malformed upstream payload: search result has no items",
			expectedCalls:  3,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(t, newTestServer(tc.fetcher), tc.target)
			body := rec.Body.Bytes()

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedCalls, tc.fetcher.calls)

			errMsg, err := js.GetString(body, "error")
			if tc.expectedError == "" {
				assert.ErrorIs(t, err, js.KeyPathNotFoundError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedError, errMsg)
			}
		})
	}
}

func TestServer_GetStats_Snapshot(t *testing.T) {
	rec := doGet(t, newTestServer(&stubFetcher{}), "/api/stats?username=alice")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.Bytes()

	name, err := js.GetString(body, "page", "text", "name")
	require.NoError(t, err)
	assert.Equal(t, "Name: alice", name)

	bio, err := js.GetString(body, "page", "text", "bio")
	require.NoError(t, err)
	assert.Equal(t, "Bio: No bio available", bio)

	chartType, err := js.GetString(body, "page", "charts", "openSourceChart", "[0]", "config", "type")
	require.NoError(t, err)
	assert.Equal(t, "bar", chartType)

	var counts []int64
	_, err = js.ArrayEach(body, func(value []byte, _ js.ValueType, _ int, _ error) {
		n, parseErr := js.ParseInt(value)
		require.NoError(t, parseErr)
		counts = append(counts, n)
	}, "page", "charts", "openSourceChart", "[0]", "config", "data", "datasets", "[0]", "data")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 0}, counts)

	stars, err := js.GetInt(body, "page", "charts", "contributionChart", "[0]", "config", "data", "datasets", "[0]", "data", "[0]")
	require.NoError(t, err)
	assert.Equal(t, int64(8), stars)
}

func TestServer_GetPage(t *testing.T) {
	testCases := []struct {
		name           string
		target         string
		fetcher        *stubFetcher
		expectedCalls  int
		expectedCanvas int
		contains       []string
		notContains    []string
	}{
		{
			name:           "form only before submission",
			target:         "/",
			fetcher:        &stubFetcher{},
			expectedCalls:  0,
			expectedCanvas: 0,
			contains:       []string{`id="githubUsername"`, `src="/chart.js"`},
			notContains:    []string{"alert("},
		},
		{
			name:           "empty submission alerts",
			target:         "/?username=",
			fetcher:        &stubFetcher{},
			expectedCalls:  0,
			expectedCanvas: 0,
			contains:       []string{"alert(", "Please enter a GitHub username"},
		},
		{
			name:           "unknown user alerts",
			target:         "/?username=ghost",
			fetcher:        &stubFetcher{profileErr: domain.ErrProfileNotFound},
			expectedCalls:  1,
			expectedCanvas: 0,
			contains:       []string{"alert(", "GitHub user not found or rate limit exceeded."},
		},
		{
			name:           "full render",
			target:         "/?username=alice",
			fetcher:        &stubFetcher{},
			expectedCalls:  3,
			expectedCanvas: 4,
			contains:       []string{"Name: alice", "Followers: 2", "Language: N/A", `value="alice"`},
			notContains:    []string{"alert("},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(t, newTestServer(tc.fetcher), tc.target)
			out := rec.Body.String()

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Equal(t, tc.expectedCalls, tc.fetcher.calls)
			assert.Equal(t, tc.expectedCanvas, strings.Count(out, "<canvas "))
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}
