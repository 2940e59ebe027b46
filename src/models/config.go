package models

// MConfig Structure
type MConfig struct {
	Name          string           `yaml:"name"`
	Host          string           `yaml:"host"`
	Port          int              `yaml:"port"`
	LogLevel      string           `yaml:"log_level"`
	AllowOrigins  []string         `yaml:"allow_origins"`
	TemplatesPath string           `yaml:"templates_path"`
	Network       MNetworkConfig   `yaml:"network"`
	Providers     MProvidersConfig `yaml:"providers"`
	Defaults      MDefaultsConfig  `yaml:"defaults"`
	Formatting    MFormatConfig    `yaml:"formatting"`
	Live          MLiveConfig      `yaml:"live"`
}

type MNetworkConfig struct {
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	MaxRetries     int      `yaml:"retries"`
	UserAgent      string   `yaml:"user_agent"`
}

type MProvidersConfig struct {
	FMP         MProviderConfig `yaml:"fmp"`
	GitHub      MProviderConfig `yaml:"github"`
	StarHistory MProviderConfig `yaml:"star_history"`
}

// MProviderConfig describes one upstream. APIKey is usually injected from the
// environment rather than written in the YAML file.
type MProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type MDefaultsConfig struct {
	Tickers      []string `yaml:"tickers"`
	Repositories []string `yaml:"repositories"`
	StarHistory  []string `yaml:"star_history"`
}

type MFormatConfig struct {
	// MissingScalars is "zero" or "not_available".
	MissingScalars string `yaml:"missing_scalars"`
}

type MLiveConfig struct {
	Enabled         bool     `yaml:"enabled"`
	Schedule        string   `yaml:"schedule"`
	Widgets         []string `yaml:"widgets"`
	MarketHoursOnly bool     `yaml:"market_hours_only"`
}
