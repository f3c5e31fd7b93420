package annotate

import (
	"fmt"
	"time"
)

type Config struct {
	// MeanKeyword is the header card the mean defocus is written to.
	// FITS keywords are limited to 8 characters.
	MeanKeyword string `mapstructure:"mean_keyword"`
	DateKeyword string `mapstructure:"date_keyword"`
	TimeKeyword string `mapstructure:"time_keyword"`
	// Window is the half-width of the query window centred on the
	// observation time when no table is supplied.
	Window time.Duration `mapstructure:"window"`
}

func DefaultConfig() *Config {
	return &Config{
		MeanKeyword: "MEANFOCS",
		DateKeyword: "DATE-OBS",
		TimeKeyword: "TIME-OBS",
		Window:      15 * time.Minute,
	}
}

func (c *Config) Validate() error {
	if c.MeanKeyword == "" || len(c.MeanKeyword) > 8 {
		return fmt.Errorf("mean_keyword must be 1-8 characters")
	}
	if c.DateKeyword == "" || c.TimeKeyword == "" {
		return fmt.Errorf("date_keyword and time_keyword are required")
	}
	if c.Window <= 0 {
		return fmt.Errorf("window must be positive")
	}
	return nil
}
