package utils

import (
	"sync"
	"time"

	"widget-backend/src/logger"
)

// MarketScheduler tells whether any exchange of a symbol set is trading.
type MarketScheduler struct {
	Calendars map[string]*TradingCalendar // keyed by MIC
	Logger    *logger.Logger
	Now       func() time.Time
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(symbols []string, l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{
		Calendars: make(map[string]*TradingCalendar),
		Logger:    l,
		Now:       time.Now,
	}
	ms.MapSymbolsToCalendars(symbols)
	return ms
}

// -----------------------------------------------------------------------------

// MapSymbolsToCalendars replaces the tracked calendars with those of symbols.
func (ms *MarketScheduler) MapSymbolsToCalendars(symbols []string) {
	calendars := make(map[string]*TradingCalendar)
	for _, symbol := range symbols {
		mic := MICForSymbol(symbol)
		if _, ok := calendars[mic]; ok {
			continue
		}
		if cal := GetCalendar(symbol); cal != nil {
			calendars[cal.MIC] = cal
		}
	}

	ms.mu.Lock()
	ms.Calendars = calendars
	ms.mu.Unlock()

	ms.Logger.Info("MarketScheduler: Mapped %d symbols to %d unique calendars.", len(symbols), len(calendars))
}

// -----------------------------------------------------------------------------

// AnyMarketOpen checks if ANY tracked market is currently open
func (ms *MarketScheduler) AnyMarketOpen() bool {
	now := ms.Now().UTC()

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for _, cal := range ms.Calendars {
		if cal.IsOpenOnMinute(now) {
			return true
		}
	}
	return false
}
