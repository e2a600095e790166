// Package usecase contains the business logic of the application.
package usecase

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-profile/internal/domain"
)

// RepositoryNames returns the short names of repos in order.
func RepositoryNames(repos []domain.Repository) []string {
	names := make([]string, len(repos))
	for i, repo := range repos {
		names[i] = repo.Name
	}
	return names
}

// FullNames returns the "owner/repo" names of repos in order.
func FullNames(repos []domain.Repository) []string {
	names := make([]string, len(repos))
	for i, repo := range repos {
		names[i] = repo.FullName
	}
	return names
}

// StarSeries returns the star count of every repository in order.
func StarSeries(repos []domain.Repository) []int {
	stars := make([]int, len(repos))
	for i, repo := range repos {
		stars[i] = repo.Stars
	}
	return stars
}

// Totals sums stars and forks over repos. Commits is the number of repositories;
// no commit data is fetched.
func Totals(repos []domain.Repository) domain.ContributionTotals {
	totals := domain.ContributionTotals{Commits: len(repos)}
	for _, repo := range repos {
		totals.Stars += repo.Stars
		totals.Forks += repo.Forks
	}
	return totals
}

// LanguageUsage counts repositories per primary language, in the order each
// language is first seen. Repositories without a language are skipped.
func LanguageUsage(repos []domain.Repository) []domain.LanguageCount {
	usage := []domain.LanguageCount{}
	index := make(map[string]int)
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if i, ok := index[repo.Language]; ok {
			usage[i].Count++
			continue
		}
		index[repo.Language] = len(usage)
		usage = append(usage, domain.LanguageCount{Name: repo.Language, Count: 1})
	}
	return usage
}

// ContributionCounts counts, for every full name, the pull requests whose
// repository URL contains it. Matching is by substring, so "alice/a" also counts
// pull requests against "alice/a-extra".
func ContributionCounts(fullNames []string, prs []domain.PullRequestItem) []int {
	counts := make([]int, len(fullNames))
	for i, name := range fullNames {
		for _, pr := range prs {
			if strings.Contains(pr.RepositoryURL, name) {
				counts[i]++
			}
		}
	}
	return counts
}

// SummarizeStars describes the distribution of stars over repos. An empty list
// yields a zero summary.
func SummarizeStars(repos []domain.Repository) (domain.StarSummary, error) {
	if len(repos) == 0 {
		return domain.StarSummary{}, nil
	}
	data := stats.LoadRawData(StarSeries(repos))
	mean, err := stats.Mean(data)
	if err != nil {
		return domain.StarSummary{}, fmt.Errorf("failed to compute mean stars: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return domain.StarSummary{}, fmt.Errorf("failed to compute median stars: %w", err)
	}
	most, err := stats.Max(data)
	if err != nil {
		return domain.StarSummary{}, fmt.Errorf("failed to compute max stars: %w", err)
	}
	return domain.StarSummary{Mean: mean, Median: median, Max: int(most)}, nil
}
