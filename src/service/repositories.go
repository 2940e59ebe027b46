package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"widget-backend/src/aggregation"
	"widget-backend/src/helpers"
	"widget-backend/src/models"
	"widget-backend/src/utils"
	"widget-backend/src/widgets"
)

const (
	upstreamTimeLayout = "2006-01-02T15:04:05Z"
	displayTimeLayout  = "2006-01-02 15:04:05"
)

// -----------------------------------------------------------------------------

// GitHubStats builds one row per repository, most starred first.
func (s *WidgetService) GitHubStats(ctx context.Context, repos []string) ([]models.MRow, error) {
	results := make([]aggregation.MItemResult, 0, len(repos))
	for _, repo := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats, err := s.Repos.RepoStats(ctx, repo)
		if err != nil {
			results = append(results, aggregation.Skip(repo, err))
			continue
		}
		results = append(results, aggregation.Success(repo, models.MRow{
			{Column: widgets.ColRepository, Value: stats.Repository},
			{Column: widgets.ColStars, Value: stats.Stars},
			{Column: widgets.ColForks, Value: stats.Forks},
			{Column: widgets.ColOpenIssues, Value: stats.OpenIssues},
			{Column: widgets.ColLastUpdate, Value: FormatLastUpdate(stats.LastUpdate)},
		}))
	}

	return aggregation.BuildTable(results, widgets.ColStars, s.Logger)
}

// -----------------------------------------------------------------------------

// FormatLastUpdate rewrites "2006-01-02T15:04:05Z" as "2006-01-02 15:04:05".
// Values in any other layout are returned unchanged.
func FormatLastUpdate(ts string) string {
	t, err := time.Parse(upstreamTimeLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format(displayTimeLayout)
}

// -----------------------------------------------------------------------------
// Trending
// -----------------------------------------------------------------------------

// ParseTimePeriod reads the time_period query value. Empty means the
// default; anything but a positive integer is a ValidationError.
func ParseTimePeriod(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return utils.DefaultTrendingDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, helpers.NewValidationError("time_period must be a positive integer, got %q", raw)
	}
	return days, nil
}

// -----------------------------------------------------------------------------

// TrendingQuery is the search expression for repositories created in the
// last days, optionally narrowed to a language.
func TrendingQuery(now time.Time, days int, language string) string {
	since := now.AddDate(0, 0, -days).Format(time.DateOnly)
	q := "created:>" + since
	if language != "" {
		q += " language:" + language
	}
	return q
}

// -----------------------------------------------------------------------------

// Trending lists the most starred repositories created in the last days.
func (s *WidgetService) Trending(ctx context.Context, days int, language string) ([]models.MRow, error) {
	if days <= 0 {
		return nil, helpers.NewValidationError("time_period must be a positive integer, got %d", days)
	}

	query := TrendingQuery(s.Now(), days, language)
	items, err := s.Repos.SearchRepositories(ctx, query, utils.TrendingLimit)
	if err != nil {
		return nil, fmt.Errorf("trending search %q: %w", query, err)
	}

	rows := make([]models.MRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, models.MRow{
			{Column: widgets.ColRepository, Value: it.FullName},
			{Column: widgets.ColStars, Value: it.Stars},
			{Column: widgets.ColDescription, Value: it.Description},
			{Column: widgets.ColURL, Value: it.URL},
		})
	}
	if len(rows) > utils.TrendingLimit {
		rows = rows[:utils.TrendingLimit]
	}
	return rows, nil
}
