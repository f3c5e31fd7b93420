// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Service ServiceConfig `mapstructure:"service"`
	Query   QueryConfig   `mapstructure:"query"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServiceConfig holds the fixed focus model service endpoints.
type ServiceConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	RequestPath string        `mapstructure:"request_path"`
	TablePath   string        `mapstructure:"table_path"` // fmt template: year, MM.DD date, HHMM start, HHMM stop
	PlotPath    string        `mapstructure:"plot_path"`  // same template as table_path
	Timeout     time.Duration `mapstructure:"timeout"`
}

// RequestURL returns the CGI endpoint that generates the model output files.
func (s ServiceConfig) RequestURL() string {
	return strings.TrimSuffix(s.BaseURL, "/") + s.RequestPath
}

// QueryConfig holds default query parameter values.
type QueryConfig struct {
	DefaultCamera string `mapstructure:"default_camera"`
	DefaultFormat string `mapstructure:"default_format"`
	MinYear       int    `mapstructure:"min_year"` // first year with telemetry
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if cfg.Service.Timeout <= 0 {
		return fmt.Errorf("service.timeout must be positive")
	}
	if cfg.Query.MinYear < 1990 {
		return fmt.Errorf("query.min_year is before any HST focus telemetry")
	}
	return nil
}
