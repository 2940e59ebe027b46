package core

import "widget-backend/src/models"

// -----------------------------------------------------------------------------

// CalculateReturn is the percentage change from first to last,
// ((last / first) - 1) * 100. A missing price, a zero first price or a
// non-finite result gives models.NotAvailable().
func CalculateReturn(first, last *float64) models.MReturn {
	if first == nil || last == nil {
		return models.NotAvailable()
	}
	if *first == 0 {
		return models.NotAvailable()
	}
	return models.ReturnOf(((*last / *first) - 1) * 100)
}
