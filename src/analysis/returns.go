package analysis

import (
	"time"

	"widget-backend/src/analysis/core"
	"widget-backend/src/models"
	"widget-backend/src/utils"
)

// -----------------------------------------------------------------------------
// Time windows
// -----------------------------------------------------------------------------

// MWindows are the start instants of the return horizons, all before Now.
type MWindows struct {
	Now     time.Time
	Start1W time.Time
	Start1Y time.Time
	Start3Y time.Time
}

func NewWindows(now time.Time) MWindows {
	day := 24 * time.Hour
	return MWindows{
		Now:     now,
		Start1W: now.Add(-utils.WeekDays * day),
		Start1Y: now.Add(-utils.YearDays * day),
		Start3Y: now.Add(-utils.ThreeYearDays * day),
	}
}

// -----------------------------------------------------------------------------
// Returns per horizon
// -----------------------------------------------------------------------------

type MHorizonReturns struct {
	OneDay    models.MReturn
	OneWeek   models.MReturn
	OneYear   models.MReturn
	ThreeYear models.MReturn
}

// -----------------------------------------------------------------------------

// SubWindow keeps the points dated strictly after start and not after now.
// points must be ordered oldest first; the order is preserved.
func SubWindow(points []models.MPricePoint, start, now time.Time) []models.MPricePoint {
	var out []models.MPricePoint
	for _, p := range points {
		if p.Date.After(start) && !p.Date.After(now) {
			out = append(out, p)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// WindowReturn is the return between the first and last point of a
// sub-window. Fewer than two points is not available.
func WindowReturn(points []models.MPricePoint) models.MReturn {
	if len(points) < 2 {
		return models.NotAvailable()
	}
	return core.CalculateReturn(points[0].AdjClose, points[len(points)-1].AdjClose)
}

// -----------------------------------------------------------------------------

// HorizonReturns derives the four nested horizons from one 3-year series.
// The 1-day return uses the last two points of the 1-week slice.
func HorizonReturns(series []models.MPricePoint, w MWindows) MHorizonReturns {
	threeYear := SubWindow(series, w.Start3Y, w.Now)
	oneYear := SubWindow(threeYear, w.Start1Y, w.Now)
	oneWeek := SubWindow(oneYear, w.Start1W, w.Now)

	lastDay := oneWeek
	if len(lastDay) > 2 {
		lastDay = lastDay[len(lastDay)-2:]
	}

	return MHorizonReturns{
		OneDay:    WindowReturn(lastDay),
		OneWeek:   WindowReturn(oneWeek),
		OneYear:   WindowReturn(oneYear),
		ThreeYear: WindowReturn(threeYear),
	}
}
