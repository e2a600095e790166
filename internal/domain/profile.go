package domain

const noBio = "No bio available"

// Profile holds the public account-level attributes of a GitHub user.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// DisplayName returns the profile name, or the login when no name is set.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// BioText returns the bio, or a placeholder when the user has none.
func (p *Profile) BioText() string {
	if p.Bio != "" {
		return p.Bio
	}
	return noBio
}

// Repository is a single project owned by the user, as returned by the API.
// An empty Language means GitHub reported no primary language.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Stars    int    `json:"stargazers_count"`
	Forks    int    `json:"forks_count"`
	Language string `json:"language,omitempty"`
}

// PullRequestItem is one hit of the pull request search.
type PullRequestItem struct {
	RepositoryURL string `json:"repository_url"`
}
