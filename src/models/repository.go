package models

// MRepoStats are the headline numbers of one hosted repository.
type MRepoStats struct {
	Repository string `json:"repository"`
	Stars      int    `json:"stars"`
	Forks      int    `json:"forks"`
	OpenIssues int    `json:"open_issues"`
	LastUpdate string `json:"last_update"` // upstream ISO-8601, "Z" suffixed
}

// MTrendingRepo is one item of a repository search.
type MTrendingRepo struct {
	FullName    string `json:"full_name"`
	Stars       int    `json:"stars"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// MChartImage is the raw body returned by the chart renderer.
type MChartImage struct {
	ContentType string
	Data        []byte
}

