package service

import (
	"context"
	"fmt"

	"widget-backend/src/aggregation"
	"widget-backend/src/analysis"
	"widget-backend/src/models"
	"widget-backend/src/widgets"
)

// OSSCompanyStats builds one row per ticker: price returns over four horizons
// plus scaled fundamentals. Tickers that fail are logged and left out.
func (s *WidgetService) OSSCompanyStats(ctx context.Context, tickers []string) ([]models.MRow, error) {
	w := analysis.NewWindows(s.Now())

	results := make([]aggregation.MItemResult, 0, len(tickers))
	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := s.companyRow(ctx, ticker, w)
		if err != nil {
			results = append(results, aggregation.Skip(ticker, err))
			continue
		}
		results = append(results, aggregation.Success(ticker, row))
	}

	return aggregation.BuildTable(results, widgets.ColChange1W, s.Logger)
}

// -----------------------------------------------------------------------------

func (s *WidgetService) companyRow(ctx context.Context, ticker string, w analysis.MWindows) (models.MRow, error) {
	series, err := s.Financial.HistoricalPrices(ctx, ticker, w.Start3Y)
	if err != nil {
		return nil, fmt.Errorf("historical prices: %w", err)
	}
	returns := analysis.HorizonReturns(series, w)

	f, err := s.Financial.Fundamentals(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("fundamentals: %w", err)
	}

	return models.MRow{
		{Column: widgets.ColTicker, Value: ticker},
		{Column: widgets.ColName, Value: f.CompanyName},
		{Column: widgets.ColChange1W, Value: returns.OneWeek},
		{Column: widgets.ColMarketCap, Value: s.Formatter.Billions(f.MarketCap)},
		{Column: widgets.ColRevenue, Value: s.Formatter.Millions(f.Revenue)},
		{Column: widgets.ColChange1D, Value: returns.OneDay},
		{Column: widgets.ColReturn1Y, Value: returns.OneYear},
		{Column: widgets.ColReturn3Y, Value: returns.ThreeYear},
		{Column: widgets.ColEVToSales, Value: s.Formatter.Ratio(f.EVToSales)},
	}, nil
}
