package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (API base URL, etc.)
// - default: Values common across all environments (timezone, timeout, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	API APIConfig
	UI  UIConfig
	Log LogConfig
}

type APIConfig struct {
	BaseURL   string        `envconfig:"API_BASE_URL" required:"true"`
	Timeout   time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	UserAgent string        `envconfig:"API_USER_AGENT" default:"futsalku-client/1.0"`
}

type UIConfig struct {
	// Civil-date grouping of slots happens in this zone, matching the
	// backend's schedule generation.
	TimeZone        string `envconfig:"UI_TIMEZONE" default:"Asia/Jakarta"`
	DefaultPageSize int    `envconfig:"UI_DEFAULT_PAGE_SIZE" default:"10"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func (c *UIConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8889",
			Timeout:   5 * time.Second,
			UserAgent: "futsalku-client/test",
		},
		UI: UIConfig{
			TimeZone:        "Asia/Jakarta",
			DefaultPageSize: 10,
		},
		Log: LogConfig{
			Level: "error", // Error level only for tests
		},
	}
}
