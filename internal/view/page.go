// Package view holds the page state the pipeline renders into, keyed by element
// id, and turns it into HTML or JSON.
package view

import (
	"sync"

	"github.com/naka-gawa/github-profile/internal/chart"
)

// Element ids of the profile page.
const (
	IDAvatar      = "avatar"
	IDName        = "name"
	IDBio         = "bio"
	IDPublicRepos = "publicRepos"
	IDFollowers   = "followers"
	IDFollowing   = "following"
	IDStarSummary = "starSummary"
	IDRepoList    = "repoList"

	IDRepositoryChart   = "repositoryChart"
	IDContributionChart = "contributionChart"
	IDLanguageChart     = "languageChart"
	IDOpenSourceChart   = "openSourceChart"
)

// RepoItem is one block of the repository list.
type RepoItem struct {
	Name     string `json:"name"`
	Stars    int    `json:"stars"`
	Forks    int    `json:"forks"`
	Language string `json:"language"`
}

// Page is the mutable state of one rendered profile page.
//
// The lock only keeps individual mutations memory safe. Overlapping pipeline runs
// on the same Page still overwrite each other in whatever order they finish.
type Page struct {
	mu      sync.Mutex
	text    map[string]string
	src     map[string]string
	lists   map[string][]RepoItem
	charts  map[string][]chart.Chart
	alerts  []string
	chartID int
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{
		text:   make(map[string]string),
		src:    make(map[string]string),
		lists:  make(map[string][]RepoItem),
		charts: make(map[string][]chart.Chart),
	}
}

// SetText replaces the text content of an element.
func (p *Page) SetText(id, text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.text[id] = text
}

// SetSrc replaces the image source of an element.
func (p *Page) SetSrc(id, src string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.src[id] = src
}

// ReplaceItems clears a list element and fills it with items.
func (p *Page) ReplaceItems(id string, items []RepoItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lists[id] = append([]RepoItem(nil), items...)
}

// NewChart creates a chart instance on a canvas. Earlier instances on the same
// canvas are kept.
func (p *Page) NewChart(canvas string, cfg chart.Config) chart.Chart {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chartID++
	c := chart.Chart{ID: p.chartID, Canvas: canvas, Config: cfg}
	p.charts[canvas] = append(p.charts[canvas], c)
	return c
}

// Alert records a notification for the user.
func (p *Page) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

func (p *Page) Text(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text[id]
}

func (p *Page) Src(id string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.src[id]
}

func (p *Page) Items(id string) []RepoItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]RepoItem(nil), p.lists[id]...)
}

// Charts returns every instance created on canvas, oldest first.
func (p *Page) Charts(canvas string) []chart.Chart {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]chart.Chart(nil), p.charts[canvas]...)
}

func (p *Page) Alerts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.alerts...)
}

// Snapshot is a copy of a page, safe to serialize while the page keeps changing.
type Snapshot struct {
	Text   map[string]string        `json:"text"`
	Src    map[string]string        `json:"src"`
	Lists  map[string][]RepoItem    `json:"lists"`
	Charts map[string][]chart.Chart `json:"charts"`
	Alerts []string                 `json:"alerts"`
}

// Snapshot copies the current page state.
func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Snapshot{
		Text:   make(map[string]string, len(p.text)),
		Src:    make(map[string]string, len(p.src)),
		Lists:  make(map[string][]RepoItem, len(p.lists)),
		Charts: make(map[string][]chart.Chart, len(p.charts)),
		Alerts: append([]string{}, p.alerts...),
	}
	for k, v := range p.text {
		s.Text[k] = v
	}
	for k, v := range p.src {
		s.Src[k] = v
	}
	for k, v := range p.lists {
		s.Lists[k] = append([]RepoItem(nil), v...)
	}
	for k, v := range p.charts {
		s.Charts[k] = append([]chart.Chart(nil), v...)
	}
	return s
}
