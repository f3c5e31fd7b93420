package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmechtley/hstfocus/internal/common/config"
)

type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	RequestPath   string        `mapstructure:"request_path"`
	TablePath     string        `mapstructure:"table_path"`
	PlotPath      string        `mapstructure:"plot_path"`
	Timeout       time.Duration `mapstructure:"timeout"`
	DefaultCamera Camera        `mapstructure:"default_camera"`
	DefaultFormat Format        `mapstructure:"default_format"`
	MinYear       int           `mapstructure:"min_year"`
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://focustool.stsci.edu",
		RequestPath:   "/cgi-bin/control3.py",
		TablePath:     "/images/focusdata%d.%s_%s-%s.txt",
		PlotPath:      "/images/focusplot%d.%s_%s-%s.png",
		Timeout:       30 * time.Second,
		DefaultCamera: CameraUVIS1,
		DefaultFormat: FormatTXT,
		MinYear:       2003,
	}
}

// FromAppConfig builds the query config from the loaded application config.
func FromAppConfig(cfg *config.Config) *Config {
	return &Config{
		BaseURL:       cfg.Service.BaseURL,
		RequestPath:   cfg.Service.RequestPath,
		TablePath:     cfg.Service.TablePath,
		PlotPath:      cfg.Service.PlotPath,
		Timeout:       cfg.Service.Timeout,
		DefaultCamera: Camera(cfg.Query.DefaultCamera),
		DefaultFormat: Format(cfg.Query.DefaultFormat),
		MinYear:       cfg.Query.MinYear,
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.RequestPath == "" || c.TablePath == "" || c.PlotPath == "" {
		return fmt.Errorf("request_path, table_path and plot_path are required")
	}
	if c.MinYear <= 0 {
		return fmt.Errorf("min_year must be positive")
	}
	return nil
}

// RequestURL returns the CGI endpoint that generates the model output files.
func (c *Config) RequestURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.RequestPath
}

// TableURL returns the URL of the generated text table for the given window.
func (c *Config) TableURL(p Params) string {
	return strings.TrimSuffix(c.BaseURL, "/") + fmt.Sprintf(c.TablePath, p.Year, fileDate(p.Date), fileTime(p.Start), fileTime(p.Stop))
}

// PlotURL returns the URL of the generated plot image for the given window.
func (c *Config) PlotURL(p Params) string {
	return strings.TrimSuffix(c.BaseURL, "/") + fmt.Sprintf(c.PlotPath, p.Year, fileDate(p.Date), fileTime(p.Start), fileTime(p.Stop))
}

// The server names generated files with MM.DD dates and HHMM times.
func fileDate(date string) string {
	return strings.ReplaceAll(date, "/", ".")
}

func fileTime(t string) string {
	return strings.ReplaceAll(t, ":", "")
}
