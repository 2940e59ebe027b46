package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"widget-backend/src/helpers"
	"widget-backend/src/logger"
	"widget-backend/src/models"
	"widget-backend/src/widgets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)

func newTestService(fin *mockFinancial, repos *mockRepos, charts *mockCharts, missing string) *WidgetService {
	cfg := &models.MConfig{
		Defaults: models.MDefaultsConfig{
			Tickers:      []string{"AAA"},
			Repositories: []string{"a/a"},
			StarHistory:  []string{"openbb-finance/OpenBB"},
		},
		Formatting: models.MFormatConfig{MissingScalars: missing},
	}
	s := NewWidgetService(cfg, fin, repos, charts, logger.NewLogger(nil, "test"))
	s.Now = func() time.Time { return fixedNow }
	return s
}

func daysAgo(n int, price float64) models.MPricePoint {
	return models.MPricePoint{Date: fixedNow.AddDate(0, 0, -n), AdjClose: ptr(price)}
}

func equitySource() *mockFinancial {
	series := map[string][]models.MPricePoint{
		"AAA": {daysAgo(1000, 50), daysAgo(300, 80), daysAgo(5, 100), daysAgo(2, 105), daysAgo(1, 110)},
		"CCC": {daysAgo(6, 10), daysAgo(1, 12)},
		"BBB": {daysAgo(3, 1), daysAgo(1, 2)},
	}
	return &mockFinancial{
		HistoricalPricesFunc: func(_ context.Context, symbol string, from time.Time) ([]models.MPricePoint, error) {
			if !from.Equal(fixedNow.AddDate(0, 0, -1095)) {
				return nil, errors.New("unexpected start date")
			}
			s, ok := series[symbol]
			if !ok {
				return nil, helpers.NewDataSourceError("no history for "+symbol, nil)
			}
			return s, nil
		},
		FundamentalsFunc: func(_ context.Context, symbol string) (*models.MFundamentals, error) {
			switch symbol {
			case "AAA":
				return &models.MFundamentals{Symbol: symbol, CompanyName: "Alpha", MarketCap: ptr(2.5e9), EVToSales: ptr(12.34)}, nil
			case "CCC":
				return &models.MFundamentals{Symbol: symbol, CompanyName: "Gamma", MarketCap: ptr(1e9), Revenue: ptr(7.5e8), EVToSales: ptr(3)}, nil
			default:
				return nil, errors.New("profile not found")
			}
		},
	}
}

func TestOSSCompanyStats(t *testing.T) {
	fin := equitySource()
	s := newTestService(fin, nil, nil, "zero")

	rows, err := s.OSSCompanyStats(context.Background(), []string{"AAA", "BBB", "ZZZ", "CCC"})
	require.NoError(t, err)
	require.Len(t, rows, 2, "BBB and ZZZ fail and are dropped")

	ticker, _ := rows[0].Get(widgets.ColTicker)
	assert.Equal(t, "CCC", ticker, "20% weekly change sorts above 10%")

	aaa := rows[1]
	get := func(col string) interface{} {
		v, ok := aaa.Get(col)
		require.True(t, ok, col)
		return v
	}
	assert.Equal(t, "Alpha", get(widgets.ColName))
	assert.InDelta(t, 10.0, get(widgets.ColChange1W).(models.MReturn).Value, 1e-9)
	assert.InDelta(t, (110.0/105.0-1)*100, get(widgets.ColChange1D).(models.MReturn).Value, 1e-9)
	assert.InDelta(t, 37.5, get(widgets.ColReturn1Y).(models.MReturn).Value, 1e-9)
	assert.InDelta(t, 120.0, get(widgets.ColReturn3Y).(models.MReturn).Value, 1e-9)
	assert.Equal(t, "2.50", get(widgets.ColMarketCap))
	assert.Equal(t, "0.00", get(widgets.ColRevenue), "missing revenue is zero under the default policy")
	assert.Equal(t, "12.3", get(widgets.ColEVToSales))

	var columns []string
	for _, c := range aaa {
		columns = append(columns, c.Column)
	}
	assert.Equal(t, []string{widgets.ColTicker, widgets.ColName, widgets.ColChange1W, widgets.ColMarketCap,
		widgets.ColRevenue, widgets.ColChange1D, widgets.ColReturn1Y, widgets.ColReturn3Y, widgets.ColEVToSales}, columns)

	assert.Contains(t, fin.calls, "prices:BBB")
	assert.NotContains(t, fin.calls, "fundamentals:ZZZ", "history failure stops the ticker early")
}

func TestOSSCompanyStatsNotAvailablePolicy(t *testing.T) {
	s := newTestService(equitySource(), nil, nil, "not_available")

	rows, err := s.OSSCompanyStats(context.Background(), []string{"AAA"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded[widgets.ColRevenue])
	assert.Equal(t, "2.50", decoded[widgets.ColMarketCap])
}

func TestOSSCompanyStatsKeepsRowWithoutName(t *testing.T) {
	fin := equitySource()
	fin.FundamentalsFunc = func(_ context.Context, symbol string) (*models.MFundamentals, error) {
		return &models.MFundamentals{Symbol: symbol}, nil
	}
	s := newTestService(fin, nil, nil, "zero")

	rows, err := s.OSSCompanyStats(context.Background(), []string{"AAA"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	name, ok := rows[0].Get(widgets.ColName)
	assert.True(t, ok)
	assert.Equal(t, "", name)
}

func TestOSSCompanyStatsShortHistory(t *testing.T) {
	fin := equitySource()
	fin.HistoricalPricesFunc = func(context.Context, string, time.Time) ([]models.MPricePoint, error) {
		return []models.MPricePoint{daysAgo(1, 10)}, nil
	}
	s := newTestService(fin, nil, nil, "zero")

	rows, err := s.OSSCompanyStats(context.Background(), []string{"AAA"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	v, _ := rows[0].Get(widgets.ColChange1W)
	assert.False(t, v.(models.MReturn).Valid)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Price Chg % (1W)":null`)
}

func TestOSSCompanyStatsAllFail(t *testing.T) {
	s := newTestService(equitySource(), nil, nil, "zero")

	_, err := s.OSSCompanyStats(context.Background(), []string{"BBB", "ZZZ"})
	require.Error(t, err)
	var dsErr *helpers.DataSourceError
	assert.True(t, errors.As(err, &dsErr))
	assert.Contains(t, err.Error(), "all 2 identifiers failed")
}

func TestOSSCompanyStatsEmptyList(t *testing.T) {
	s := newTestService(equitySource(), nil, nil, "zero")

	rows, err := s.OSSCompanyStats(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestOSSCompanyStatsCancelled(t *testing.T) {
	s := newTestService(equitySource(), nil, nil, "zero")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.OSSCompanyStats(ctx, []string{"AAA"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefresh(t *testing.T) {
	s := newTestService(equitySource(), nil, nil, "zero")

	rows, err := s.Refresh(context.Background(), widgets.OSSCompanyStats)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = s.Refresh(context.Background(), widgets.GitHubStarHistory)
	assert.Error(t, err)
}
