// Package domain contains the core data structures and domain logic for the application.
package domain

// LanguageCount is one entry of the language usage map: how many repositories
// use Name as their primary language.
type LanguageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ContributionTotals holds the aggregates plotted by the contribution chart.
// Commits is the repository count, not real commit data.
type ContributionTotals struct {
	Stars   int `json:"stars"`
	Forks   int `json:"forks"`
	Commits int `json:"commits"`
}

// StarSummary describes how stars are spread across a user's repositories.
type StarSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    int     `json:"max"`
}
