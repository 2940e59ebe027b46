package interfaces

import (
	"context"

	"widget-backend/src/models"
)

// -----------------------------------------------------------------------------
// IWidgetService builds the payload of each data endpoint.
// -----------------------------------------------------------------------------

type IWidgetService interface {
	OSSCompanyStats(ctx context.Context, tickers []string) ([]models.MRow, error)

	GitHubStats(ctx context.Context, repos []string) ([]models.MRow, error)

	Trending(ctx context.Context, days int, language string) ([]models.MRow, error)

	// StarHistory returns a markdown document.
	StarHistory(ctx context.Context, repos []string, chartType, theme string) (string, error)

	// -----------------------------------------------------------------------------

	// Refresh rebuilds a table widget with its default parameters.
	Refresh(ctx context.Context, widgetID string) ([]models.MRow, error)
}
