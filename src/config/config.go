package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"widget-backend/src/helpers"
	"widget-backend/src/models"
	"widget-backend/src/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the YAML file.
const (
	EnvFMPAPIKey    = "FMP_API_KEY"
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvPort         = "WIDGET_BACKEND_PORT"
	MissingAsZero   = "zero"
	MissingAsNA     = "not_available"
	defaultSchedule = "@every 5m"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file. A .env file next to
// the working directory is loaded first when present, then environment
// variables override credentials and port.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Credentials and overrides from the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	if err := config.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides fields from the environment. getenv is os.Getenv outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvFMPAPIKey); v != "" {
		c.Providers.FMP.APIKey = v
	}
	if v := getenv(EnvGitHubToken); v != "" {
		c.Providers.GitHub.APIKey = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &helpers.ConfigurationError{WidgetBackendError: helpers.WidgetBackendError{
				Message: fmt.Sprintf("invalid %s %q", EnvPort, v),
				Cause:   err,
			}}
		}
		c.Port = port
	}
	return nil
}

// -----------------------------------------------------------------------------

// ApplyDefaults fills every optional field left empty.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "widget-backend"
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 7779
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"https://pro.openbb.co"}
	}
	if c.TemplatesPath == "" {
		c.TemplatesPath = "templates.json"
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 30
	}
	if c.Providers.FMP.BaseURL == "" {
		c.Providers.FMP.BaseURL = "https://financialmodelingprep.com"
	}
	if c.Providers.GitHub.BaseURL == "" {
		c.Providers.GitHub.BaseURL = "https://api.github.com"
	}
	if c.Providers.StarHistory.BaseURL == "" {
		c.Providers.StarHistory.BaseURL = "https://api.star-history.com"
	}
	if len(c.Defaults.Tickers) == 0 {
		c.Defaults.Tickers = append([]string(nil), utils.DefaultTickers...)
	}
	if len(c.Defaults.Repositories) == 0 {
		c.Defaults.Repositories = append([]string(nil), utils.DefaultRepositories...)
	}
	if len(c.Defaults.StarHistory) == 0 {
		c.Defaults.StarHistory = append([]string(nil), utils.DefaultStarHistoryRepos...)
	}
	if c.Formatting.MissingScalars == "" {
		c.Formatting.MissingScalars = MissingAsZero
	}
	if c.Live.Schedule == "" {
		c.Live.Schedule = defaultSchedule
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation. Failures are
// *helpers.ConfigurationError.
func (c *Config) Validate() error {
	if c.Name == "" {
		return helpers.NewConfigurationError("application name cannot be empty")
	}

	if c.Host == "" {
		return helpers.NewConfigurationError("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return helpers.NewConfigurationError("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	if c.Network.RequestTimeout <= 0 {
		return helpers.NewConfigurationError("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return helpers.NewConfigurationError("max retries cannot be negative")
	}

	for name, p := range map[string]models.MProviderConfig{
		"fmp":          c.Providers.FMP,
		"github":       c.Providers.GitHub,
		"star_history": c.Providers.StarHistory,
	} {
		if p.BaseURL == "" {
			return helpers.NewConfigurationError("provider %s needs a base_url", name)
		}
	}

	if len(c.Defaults.StarHistory) > utils.MaxStarHistoryRepos {
		return helpers.NewConfigurationError("default star history list has %d repositories, at most %d allowed",
			len(c.Defaults.StarHistory), utils.MaxStarHistoryRepos)
	}

	switch c.Formatting.MissingScalars {
	case MissingAsZero, MissingAsNA:
	default:
		return helpers.NewConfigurationError("formatting.missing_scalars must be %q or %q, got %q",
			MissingAsZero, MissingAsNA, c.Formatting.MissingScalars)
	}

	if c.Live.Enabled {
		if c.Live.Schedule == "" {
			return helpers.NewConfigurationError("live feed needs a schedule")
		}
		for i, w := range c.Live.Widgets {
			if w == "" {
				return helpers.NewConfigurationError("live widget %d cannot be empty", i)
			}
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path.
// Credentials are never written back.
func (c *Config) Save(configPath string) error {
	clean := *c.MConfig
	clean.Providers.FMP.APIKey = ""
	clean.Providers.GitHub.APIKey = ""
	clean.Providers.StarHistory.APIKey = ""

	data, err := yaml.Marshal(&clean)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
