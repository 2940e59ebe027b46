package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"widget-backend/src/helpers"
	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/models"

	"github.com/PaesslerAG/jsonpath"
)

// Field paths into the FMP documents. Each document is a JSON list whose
// first element describes the symbol.
const (
	pathCompanyName = "$[0].companyName"
	pathMarketCap   = "$[0].marketCapTTM"
	pathEVToSales   = "$[0].evToSalesTTM"
	pathRevenue     = "$[0].revenue"
)

// FMPSource reads Financial Modeling Prep REST endpoints.
type FMPSource struct {
	Config  models.MProviderConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewFMPSource(cfg models.MProviderConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *FMPSource {
	if cfg.APIKey == "" {
		log.Warning("No FMP API key configured, equity widgets will fail upstream")
	}
	return &FMPSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *FMPSource) Name() string {
	return "FMP"
}

// -----------------------------------------------------------------------------

func (s *FMPSource) endpoint(kind, symbol string) string {
	return fmt.Sprintf("%s/api/v3/%s/%s", strings.TrimRight(s.Config.BaseURL, "/"), kind, url.PathEscape(symbol))
}

// -----------------------------------------------------------------------------

func (s *FMPSource) get(ctx context.Context, kind, symbol string, params map[string]string) ([]byte, error) {
	if params == nil {
		params = map[string]string{}
	}
	params["apikey"] = s.Config.APIKey

	resp, err := s.Network.Get(ctx, s.endpoint(kind, symbol), params, nil)
	if err != nil {
		return nil, fmt.Errorf("fmp %s for %s: %w", kind, symbol, err)
	}
	return resp.Body, nil
}

// -----------------------------------------------------------------------------
// Historical prices
// -----------------------------------------------------------------------------

type fmpHistoricalResponse struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date     string   `json:"date"`
		AdjClose *float64 `json:"adjClose"`
	} `json:"historical"`
}

// HistoricalPrices fetches daily adjusted closes from `from` on, oldest first.
func (s *FMPSource) HistoricalPrices(ctx context.Context, symbol string, from time.Time) ([]models.MPricePoint, error) {
	body, err := s.get(ctx, "historical-price-full", symbol, map[string]string{
		"from": from.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}
	return parseHistorical(symbol, body)
}

// -----------------------------------------------------------------------------

func parseHistorical(symbol string, body []byte) ([]models.MPricePoint, error) {
	var resp fmpHistoricalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("fmp decode history for %s: %w", symbol, err)
	}
	if len(resp.Historical) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("no historical prices for %s", symbol), nil)
	}

	points := make([]models.MPricePoint, 0, len(resp.Historical))
	for _, h := range resp.Historical {
		date, err := time.Parse(time.DateOnly, h.Date)
		if err != nil {
			continue
		}
		points = append(points, models.MPricePoint{Date: date, AdjClose: h.AdjClose})
	}

	// FMP lists the most recent day first
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// -----------------------------------------------------------------------------
// Fundamentals
// -----------------------------------------------------------------------------

// Fundamentals combines the profile, TTM key metrics and latest income
// statement. A field the provider leaves out is nil; a failed request fails
// the whole lookup.
func (s *FMPSource) Fundamentals(ctx context.Context, symbol string) (*models.MFundamentals, error) {
	profile, err := s.document(ctx, "profile", symbol, nil)
	if err != nil {
		return nil, err
	}
	metrics, err := s.document(ctx, "key-metrics-ttm", symbol, nil)
	if err != nil {
		return nil, err
	}
	income, err := s.document(ctx, "income-statement", symbol, map[string]string{"limit": "1"})
	if err != nil {
		return nil, err
	}

	if list, ok := profile.([]interface{}); !ok || len(list) == 0 {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("no profile for %s", symbol), nil)
	}

	return &models.MFundamentals{
		Symbol:      symbol,
		CompanyName: lookupString(profile, pathCompanyName),
		MarketCap:   lookupFloat(metrics, pathMarketCap),
		Revenue:     lookupFloat(income, pathRevenue),
		EVToSales:   lookupFloat(metrics, pathEVToSales),
	}, nil
}

// -----------------------------------------------------------------------------

func (s *FMPSource) document(ctx context.Context, kind, symbol string, params map[string]string) (interface{}, error) {
	body, err := s.get(ctx, kind, symbol, params)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("fmp decode %s for %s: %w", kind, symbol, err)
	}
	return doc, nil
}

// -----------------------------------------------------------------------------

// lookup evaluates path and unwraps single-element result lists.
func lookup(doc interface{}, path string) interface{} {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil
	}
	if list, ok := val.([]interface{}); ok {
		if len(list) == 0 {
			return nil
		}
		val = list[0]
	}
	return val
}

// -----------------------------------------------------------------------------

// lookupFloat accepts JSON numbers and numeric strings; anything else,
// including NaN and infinities, is nil.
func lookupFloat(doc interface{}, path string) *float64 {
	var f float64
	switch v := lookup(doc, path).(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// -----------------------------------------------------------------------------

func lookupString(doc interface{}, path string) string {
	if v, ok := lookup(doc, path).(string); ok {
		return v
	}
	return ""
}
