package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"widget-backend/src/helpers"
	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/models"
)

// GitHubSource reads the GitHub REST API. The token is optional; without it
// requests run under the lower unauthenticated rate limit.
type GitHubSource struct {
	Config  models.MProviderConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewGitHubSource(cfg models.MProviderConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *GitHubSource {
	if cfg.APIKey == "" {
		log.Info("No GitHub token configured, using unauthenticated requests")
	}
	return &GitHubSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *GitHubSource) headers() map[string]string {
	h := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if s.Config.APIKey != "" {
		h["Authorization"] = "Bearer " + s.Config.APIKey
	}
	return h
}

// -----------------------------------------------------------------------------

func (s *GitHubSource) baseURL() string {
	return strings.TrimRight(s.Config.BaseURL, "/")
}

// -----------------------------------------------------------------------------
// Repository stats
// -----------------------------------------------------------------------------

type githubRepo struct {
	FullName        string  `json:"full_name"`
	StargazersCount int     `json:"stargazers_count"`
	ForksCount      int     `json:"forks_count"`
	OpenIssuesCount int     `json:"open_issues_count"`
	UpdatedAt       string  `json:"updated_at"`
	Description     *string `json:"description"`
	HTMLURL         string  `json:"html_url"`
}

// RepoStats fetches /repos/{owner}/{repo}. Any non-2xx answer is an error.
func (s *GitHubSource) RepoStats(ctx context.Context, repo string) (*models.MRepoStats, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, helpers.NewValidationError("repository %q is not owner/repo", repo)
	}

	addr := fmt.Sprintf("%s/repos/%s/%s", s.baseURL(), url.PathEscape(owner), url.PathEscape(name))
	resp, err := s.Network.Get(ctx, addr, nil, s.headers())
	if err != nil {
		return nil, fmt.Errorf("github repo %s: %w", repo, err)
	}

	var data githubRepo
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("github decode %s: %w", repo, err)
	}

	return &models.MRepoStats{
		Repository: repo,
		Stars:      data.StargazersCount,
		Forks:      data.ForksCount,
		OpenIssues: data.OpenIssuesCount,
		LastUpdate: data.UpdatedAt,
	}, nil
}

// -----------------------------------------------------------------------------
// Search
// -----------------------------------------------------------------------------

type githubSearchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []githubRepo `json:"items"`
}

// SearchRepositories runs a repository search sorted by stars, descending.
func (s *GitHubSource) SearchRepositories(ctx context.Context, query string, limit int) ([]models.MTrendingRepo, error) {
	params := map[string]string{
		"q":        query,
		"sort":     "stars",
		"order":    "desc",
		"per_page": strconv.Itoa(limit),
	}
	resp, err := s.Network.Get(ctx, s.baseURL()+"/search/repositories", params, s.headers())
	if err != nil {
		return nil, fmt.Errorf("github search: %w", err)
	}

	var data githubSearchResponse
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("github decode search: %w", err)
	}

	items := data.Items
	if len(items) > limit {
		items = items[:limit]
	}

	repos := make([]models.MTrendingRepo, 0, len(items))
	for _, it := range items {
		desc := ""
		if it.Description != nil {
			desc = *it.Description
		}
		repos = append(repos, models.MTrendingRepo{
			FullName:    it.FullName,
			Stars:       it.StargazersCount,
			Description: desc,
			URL:         it.HTMLURL,
		})
	}
	return repos, nil
}
