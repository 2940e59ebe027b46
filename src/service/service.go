// Package service turns upstream data into widget payloads. Each exported
// method is the whole pipeline of one endpoint; handlers and the live
// scheduler both call through here.
package service

import (
	"context"
	"fmt"
	"time"

	"widget-backend/src/analysis"
	"widget-backend/src/config"
	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/models"
	"widget-backend/src/utils"
	"widget-backend/src/widgets"
)

type WidgetService struct {
	Financial interfaces.IFinancialSource
	Repos     interfaces.IRepoSource
	Charts    interfaces.IChartSource
	Defaults  models.MDefaultsConfig
	Formatter analysis.Formatter
	Logger    *logger.Logger
	Now       func() time.Time
}

// -----------------------------------------------------------------------------

func NewWidgetService(cfg *models.MConfig, fin interfaces.IFinancialSource, repos interfaces.IRepoSource, charts interfaces.IChartSource, log *logger.Logger) *WidgetService {
	return &WidgetService{
		Financial: fin,
		Repos:     repos,
		Charts:    charts,
		Defaults:  cfg.Defaults,
		Formatter: analysis.Formatter{MissingAsZero: cfg.Formatting.MissingScalars == "" || cfg.Formatting.MissingScalars == config.MissingAsZero},
		Logger:    log,
		Now:       time.Now,
	}
}

// -----------------------------------------------------------------------------

// Refresh rebuilds the table of a widget with its default parameters.
// Markdown widgets have no rows and are rejected.
func (s *WidgetService) Refresh(ctx context.Context, widgetID string) ([]models.MRow, error) {
	switch widgetID {
	case widgets.OSSCompanyStats:
		return s.OSSCompanyStats(ctx, s.Defaults.Tickers)
	case widgets.GitHubStats:
		return s.GitHubStats(ctx, s.Defaults.Repositories)
	case widgets.GitHubTrending:
		return s.Trending(ctx, utils.DefaultTrendingDays, "")
	default:
		return nil, fmt.Errorf("widget %q has no table to refresh", widgetID)
	}
}
