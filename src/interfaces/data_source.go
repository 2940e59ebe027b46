package interfaces

import (
	"context"
	"time"

	"widget-backend/src/models"
)

// -----------------------------------------------------------------------------
// IFinancialSource fetches prices and fundamentals by ticker symbol.
// -----------------------------------------------------------------------------

type IFinancialSource interface {

	// Name returns the provider label shown in widget metadata
	Name() string

	// -----------------------------------------------------------------------------

	// HistoricalPrices returns the daily series since from, oldest first.
	HistoricalPrices(ctx context.Context, symbol string, from time.Time) ([]models.MPricePoint, error)

	// -----------------------------------------------------------------------------

	// Fundamentals returns company name, market cap, revenue and EV/Sales.
	Fundamentals(ctx context.Context, symbol string) (*models.MFundamentals, error)
}

// -----------------------------------------------------------------------------
// IRepoSource reads repository metadata from a source-hosting platform.
// -----------------------------------------------------------------------------

type IRepoSource interface {

	// RepoStats fetches stars, forks, open issues and last update of "owner/repo".
	RepoStats(ctx context.Context, repo string) (*models.MRepoStats, error)

	// -----------------------------------------------------------------------------

	// SearchRepositories returns up to limit repositories matching query, most
	// starred first.
	SearchRepositories(ctx context.Context, query string, limit int) ([]models.MTrendingRepo, error)
}

// -----------------------------------------------------------------------------
// IChartSource renders repository charts as images.
// -----------------------------------------------------------------------------

type IChartSource interface {

	// StarHistory renders the star history of repos.
	StarHistory(ctx context.Context, repos []string, chartType, theme string) (*models.MChartImage, error)
}
