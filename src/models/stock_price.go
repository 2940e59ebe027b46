package models

import "time"

// MPricePoint is one day of a historical series.
// AdjClose is nil when the provider did not report an adjusted close.
type MPricePoint struct {
	Date     time.Time `json:"date"`
	AdjClose *float64  `json:"adj_close"`
}

// MFundamentals holds the per-symbol scalar lookups.
// A nil pointer means the provider returned nothing usable.
type MFundamentals struct {
	Symbol      string   `json:"symbol"`
	CompanyName string   `json:"company_name"`
	MarketCap   *float64 `json:"market_cap"`
	Revenue     *float64 `json:"revenue"`
	EVToSales   *float64 `json:"ev_to_sales"`
}
