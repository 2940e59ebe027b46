package utils

// -----------------------------------------------------------------------------

// Lookback windows in days for historical returns.
const (
	WeekDays      = 7
	YearDays      = 365
	ThreeYearDays = 3 * 365
)

// -----------------------------------------------------------------------------

// Repository search and chart limits.
const (
	DefaultTrendingDays = 7
	TrendingLimit       = 10
	MaxStarHistoryRepos = 5
)

// -----------------------------------------------------------------------------

// Default identifier lists, used when the caller gives none.
var (
	DefaultTickers = []string{
		"KLTR", "COIN", "BASE", "CFLT", "FROG", "FSLY", "MDB", "ESTC",
		"PRGS", "GTLB", "HCP", "RPD", "DOCN",
	}

	DefaultRepositories = []string{
		"openbb-finance/OpenBB",
		"appsmithorg/appsmith",
		"hoppscotch/hoppscotch",
		"nocodb/nocodb",
		"calcom/cal.com",
		"remix-run/remix",
		"dagster-io/dagster",
		"cerbos/cerbos",
		"plane-org/plane",
		"bittensor/bittensor",
		"rustdesk/rustdesk",
		"traefik/traefik",
		"appflowy/appflowy",
		"researchhub/researchhub",
		"w4games/godot",
	}

	DefaultStarHistoryRepos = []string{"openbb-finance/OpenBB"}
)
