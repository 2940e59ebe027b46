package analysis

import (
	"github.com/shopspring/decimal"
)

var (
	billion = decimal.NewFromInt(1_000_000_000)
	million = decimal.NewFromInt(1_000_000)
)

// Formatter renders fundamentals as fixed-point text. With MissingAsZero a
// missing value is formatted as 0; otherwise it stays nil (JSON null).
// Rounding is half away from zero on the exact decimal quotient.
type Formatter struct {
	MissingAsZero bool
}

// -----------------------------------------------------------------------------

// Billions formats v / 1e9 with two decimals: 2.5e9 gives "2.50".
func (f Formatter) Billions(v *float64) interface{} {
	return f.scaled(v, billion, 2)
}

// Millions formats v / 1e6 with two decimals: 7.5e8 gives "750.00".
func (f Formatter) Millions(v *float64) interface{} {
	return f.scaled(v, million, 2)
}

// Ratio formats v with one decimal.
func (f Formatter) Ratio(v *float64) interface{} {
	return f.scaled(v, decimal.NewFromInt(1), 1)
}

// -----------------------------------------------------------------------------

func (f Formatter) scaled(v *float64, divisor decimal.Decimal, places int32) interface{} {
	if v == nil {
		if !f.MissingAsZero {
			return nil
		}
		return decimal.Zero.StringFixed(places)
	}
	return decimal.NewFromFloat(*v).Div(divisor).StringFixed(places)
}
