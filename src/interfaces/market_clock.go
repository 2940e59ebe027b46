package interfaces

// IMarketClock reports whether any tracked exchange is trading right now.
type IMarketClock interface {
	AnyMarketOpen() bool
}
