package usecase

import (
	"context"
	"fmt"

	"github.com/naka-gawa/github-profile/internal/chart"
	"github.com/naka-gawa/github-profile/internal/domain"
	"github.com/naka-gawa/github-profile/internal/gateway"
	"github.com/naka-gawa/github-profile/internal/view"
	"github.com/sirupsen/logrus"
)

// Stage names a completed step of a pipeline run.
type Stage string

const (
	StageProfile      Stage = "profile"
	StageRepositories Stage = "repositories"
	StageOpenSource   Stage = "open-source"
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageProfile, StageRepositories, StageOpenSource}

const (
	contributionFill   = "rgba(52, 152, 219, 0.5)"
	contributionBorder = "#3498db"
	openSourceFill     = "#2ecc71"
)

// Pipeline is the use case that fetches a user's GitHub data and renders it
// into a page. Network calls are made one after another; nothing runs
// concurrently and nothing is retried.
type Pipeline struct {
	fetcher  gateway.Fetcher
	logger   *logrus.Logger
	palette  chart.Palette
	observer func(Stage)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPalette replaces the random per-category chart colors.
func WithPalette(p chart.Palette) Option {
	return func(pl *Pipeline) { pl.palette = p }
}

// WithObserver registers a callback invoked after each stage completes.
func WithObserver(fn func(Stage)) Option {
	return func(pl *Pipeline) { pl.observer = fn }
}

// NewPipeline creates a new Pipeline instance.
func NewPipeline(fetcher gateway.Fetcher, logger *logrus.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: fetcher,
		logger:  logger,
		palette: chart.RandomPalette(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run renders username's statistics into page.
//
// A missing username and a rejected profile request are alerted on the page and
// returned. Any later failure is only returned: whatever was rendered before it
// stays on the page and the remaining stages are skipped. Charts are always
// added to the page, never replaced, so running twice on one page leaves two
// sets of charts.
func (p *Pipeline) Run(ctx context.Context, username string, page *view.Page) error {
	if username == "" {
		page.Alert(domain.ErrMissingUsername.Error())
		return domain.ErrMissingUsername
	}
	log := p.logger.WithField("username", username)
	log.Info("Usecase: Starting profile pipeline...")

	profile, err := p.fetcher.FetchProfile(ctx, username)
	if err != nil {
		if msg := domain.Notification(err); msg != "" {
			page.Alert(msg)
		}
		return err
	}
	renderStatsOverview(page, profile)
	p.done(StageProfile)

	repos, err := p.fetcher.FetchRepositories(ctx, username)
	if err != nil {
		return err
	}
	p.renderRepositories(page, repos)
	p.renderContributions(page, repos)
	p.done(StageRepositories)

	if err := p.renderOpenSource(ctx, page, repos, username); err != nil {
		return err
	}
	p.done(StageOpenSource)

	log.WithField("repositories", len(repos)).Info("Usecase: Profile pipeline complete.")
	return nil
}

func (p *Pipeline) done(stage Stage) {
	p.logger.Debugf("Usecase: Stage %s rendered.", stage)
	if p.observer != nil {
		p.observer(stage)
	}
}

func renderStatsOverview(page *view.Page, profile *domain.Profile) {
	page.SetSrc(view.IDAvatar, profile.AvatarURL)
	page.SetText(view.IDName, "Name: "+profile.DisplayName())
	page.SetText(view.IDBio, "Bio: "+profile.BioText())
	page.SetText(view.IDPublicRepos, fmt.Sprintf("Public Repositories: %d", profile.PublicRepos))
	page.SetText(view.IDFollowers, fmt.Sprintf("Followers: %d", profile.Followers))
	page.SetText(view.IDFollowing, fmt.Sprintf("Following: %d", profile.Following))
}

func (p *Pipeline) renderRepositories(page *view.Page, repos []domain.Repository) {
	items := make([]view.RepoItem, len(repos))
	for i, repo := range repos {
		language := repo.Language
		if language == "" {
			language = "N/A"
		}
		items[i] = view.RepoItem{Name: repo.Name, Stars: repo.Stars, Forks: repo.Forks, Language: language}
	}
	page.ReplaceItems(view.IDRepoList, items)

	names := RepositoryNames(repos)
	page.NewChart(view.IDRepositoryChart, chart.Config{
		Type: chart.Pie,
		Data: chart.Data{
			Labels: names,
			Datasets: []chart.Dataset{{
				Label:           "Repository Stars",
				Data:            StarSeries(repos),
				BackgroundColor: chart.Colors(p.palette, names),
			}},
		},
	})
}

func (p *Pipeline) renderContributions(page *view.Page, repos []domain.Repository) {
	totals := Totals(repos)
	page.NewChart(view.IDContributionChart, chart.Config{
		Type: chart.Line,
		Data: chart.Data{
			Labels: []string{"Stars", "Forks", "Commits"},
			Datasets: []chart.Dataset{{
				Label:           "Contribution Analysis",
				Data:            []int{totals.Stars, totals.Forks, totals.Commits},
				BackgroundColor: contributionFill,
				BorderColor:     contributionBorder,
				Fill:            true,
				Tension:         0.4,
			}},
		},
	})

	usage := LanguageUsage(repos)
	languages := make([]string, len(usage))
	counts := make([]int, len(usage))
	for i, lc := range usage {
		languages[i] = lc.Name
		counts[i] = lc.Count
	}
	page.NewChart(view.IDLanguageChart, chart.Config{
		Type: chart.Pie,
		Data: chart.Data{
			Labels: languages,
			Datasets: []chart.Dataset{{
				Label:           "Languages Used",
				Data:            counts,
				BackgroundColor: chart.Colors(p.palette, languages),
			}},
		},
	})

	summary, err := SummarizeStars(repos)
	if err != nil {
		p.logger.WithError(err).Warn("Usecase: Skipping star summary.")
		return
	}
	page.SetText(view.IDStarSummary, fmt.Sprintf("Stars per repository: mean %.2f, median %.2f, max %d",
		summary.Mean, summary.Median, summary.Max))
}

func (p *Pipeline) renderOpenSource(ctx context.Context, page *view.Page, repos []domain.Repository, username string) error {
	prs, err := p.fetcher.SearchPullRequests(ctx, username)
	if err != nil {
		return err
	}
	fullNames := FullNames(repos)
	page.NewChart(view.IDOpenSourceChart, chart.Config{
		Type: chart.Bar,
		Data: chart.Data{
			Labels: fullNames,
			Datasets: []chart.Dataset{{
				Label:           "Open Source Contributions",
				Data:            ContributionCounts(fullNames, prs),
				BackgroundColor: openSourceFill,
			}},
		},
	})
	return nil
}
