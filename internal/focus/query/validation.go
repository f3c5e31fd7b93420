package query

import (
	"fmt"
	"time"

	"github.com/mmechtley/hstfocus/internal/common/errors"
)

// Normalize fills defaulted fields and validates every parameter. It returns
// the parameters the query will actually send, or an INVALID_PARAMETER error
// before anything touches the network.
func (c *Config) Normalize(p Params) (Params, error) {
	if p.Camera == "" {
		p.Camera = c.DefaultCamera
	}
	if p.Format == "" {
		p.Format = c.DefaultFormat
	}

	if !validCamera(p.Camera) {
		return p, errors.NewInvalidParameterError(fmt.Sprintf("unknown camera %q, valid cameras: %v", p.Camera, ValidCameras))
	}
	switch p.Format {
	case FormatTXT, FormatPNG, FormatBOTH:
	default:
		return p, errors.NewInvalidParameterError(fmt.Sprintf("unknown format %q, must be TXT, PNG or BOTH", p.Format))
	}

	if p.Year < c.MinYear || p.Year > time.Now().Year() {
		return p, errors.NewInvalidParameterError(fmt.Sprintf("year %d outside telemetry range %d-%d", p.Year, c.MinYear, time.Now().Year()))
	}

	// Parsing year and date together catches both malformed dates and
	// calendar impossibilities like 02/29 in a non-leap year.
	if _, err := time.Parse("2006/01/02", fmt.Sprintf("%04d/%s", p.Year, p.Date)); err != nil {
		return p, errors.NewInvalidParameterError(fmt.Sprintf("date %q is not a valid MM/DD date in %d", p.Date, p.Year))
	}

	start, err := time.Parse("15:04", p.Start)
	if err != nil {
		return p, errors.NewInvalidParameterError(fmt.Sprintf("start time %q is not a valid 24-hr HH:MM time", p.Start))
	}
	stop, err := time.Parse("15:04", p.Stop)
	if err != nil {
		return p, errors.NewInvalidParameterError(fmt.Sprintf("stop time %q is not a valid 24-hr HH:MM time", p.Stop))
	}
	if stop.Before(start) {
		return p, errors.NewInvalidParameterError(fmt.Sprintf("stop time %s is before start time %s", p.Stop, p.Start))
	}

	return p, nil
}

func validCamera(c Camera) bool {
	for _, v := range ValidCameras {
		if c == v {
			return true
		}
	}
	return false
}
