package service

import (
	"context"
	"time"

	"widget-backend/src/models"
)

type mockFinancial struct {
	HistoricalPricesFunc func(ctx context.Context, symbol string, from time.Time) ([]models.MPricePoint, error)
	FundamentalsFunc     func(ctx context.Context, symbol string) (*models.MFundamentals, error)
	calls                []string
}

func (m *mockFinancial) Name() string { return "mock" }

func (m *mockFinancial) HistoricalPrices(ctx context.Context, symbol string, from time.Time) ([]models.MPricePoint, error) {
	m.calls = append(m.calls, "prices:"+symbol)
	return m.HistoricalPricesFunc(ctx, symbol, from)
}

func (m *mockFinancial) Fundamentals(ctx context.Context, symbol string) (*models.MFundamentals, error) {
	m.calls = append(m.calls, "fundamentals:"+symbol)
	return m.FundamentalsFunc(ctx, symbol)
}

type mockRepos struct {
	RepoStatsFunc func(ctx context.Context, repo string) (*models.MRepoStats, error)
	SearchFunc    func(ctx context.Context, query string, limit int) ([]models.MTrendingRepo, error)
	calls         int
}

func (m *mockRepos) RepoStats(ctx context.Context, repo string) (*models.MRepoStats, error) {
	m.calls++
	return m.RepoStatsFunc(ctx, repo)
}

func (m *mockRepos) SearchRepositories(ctx context.Context, query string, limit int) ([]models.MTrendingRepo, error) {
	m.calls++
	return m.SearchFunc(ctx, query, limit)
}

type mockCharts struct {
	StarHistoryFunc func(ctx context.Context, repos []string, chartType, theme string) (*models.MChartImage, error)
	calls           int
}

func (m *mockCharts) StarHistory(ctx context.Context, repos []string, chartType, theme string) (*models.MChartImage, error) {
	m.calls++
	return m.StarHistoryFunc(ctx, repos, chartType, theme)
}

func ptr(v float64) *float64 { return &v }
