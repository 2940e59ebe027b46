package server

import (
	"context"
	"errors"

	"widget-backend/src/models"
)

var errMockUpstream = errors.New("upstream down")

// MockWidgetService implements interfaces.IWidgetService for testing
type MockWidgetService struct {
	OSSCompanyStatsFunc func(ctx context.Context, tickers []string) ([]models.MRow, error)
	GitHubStatsFunc     func(ctx context.Context, repos []string) ([]models.MRow, error)
	TrendingFunc        func(ctx context.Context, days int, language string) ([]models.MRow, error)
	StarHistoryFunc     func(ctx context.Context, repos []string, chartType, theme string) (string, error)
	RefreshFunc         func(ctx context.Context, widgetID string) ([]models.MRow, error)
}

func (m *MockWidgetService) OSSCompanyStats(ctx context.Context, tickers []string) ([]models.MRow, error) {
	if m.OSSCompanyStatsFunc != nil {
		return m.OSSCompanyStatsFunc(ctx, tickers)
	}
	return nil, nil
}

func (m *MockWidgetService) GitHubStats(ctx context.Context, repos []string) ([]models.MRow, error) {
	if m.GitHubStatsFunc != nil {
		return m.GitHubStatsFunc(ctx, repos)
	}
	return nil, nil
}

func (m *MockWidgetService) Trending(ctx context.Context, days int, language string) ([]models.MRow, error) {
	if m.TrendingFunc != nil {
		return m.TrendingFunc(ctx, days, language)
	}
	return nil, nil
}

func (m *MockWidgetService) StarHistory(ctx context.Context, repos []string, chartType, theme string) (string, error) {
	if m.StarHistoryFunc != nil {
		return m.StarHistoryFunc(ctx, repos, chartType, theme)
	}
	return "", nil
}

func (m *MockWidgetService) Refresh(ctx context.Context, widgetID string) ([]models.MRow, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, widgetID)
	}
	return nil, nil
}

// countingCharts records outbound chart renders.
type countingCharts struct {
	calls int
}

func (c *countingCharts) StarHistory(ctx context.Context, repos []string, chartType, theme string) (*models.MChartImage, error) {
	c.calls++
	return &models.MChartImage{ContentType: "image/svg+xml", Data: []byte("<svg/>")}, nil
}
