package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmechtley/hstfocus/internal/common/errors"
)

func validParams() Params {
	return Params{
		Year:   2010,
		Date:   "06/21",
		Start:  "12:00",
		Stop:   "12:30",
		Camera: CameraUVIS1,
		Format: FormatTXT,
	}
}

func TestNormalize_AppliesDefaults(t *testing.T) {
	cfg := DefaultConfig()

	p := validParams()
	p.Camera = ""
	p.Format = ""

	got, err := cfg.Normalize(p)
	require.NoError(t, err)
	assert.Equal(t, CameraUVIS1, got.Camera)
	assert.Equal(t, FormatTXT, got.Format)
}

func TestNormalize_Valid(t *testing.T) {
	cfg := DefaultConfig()
	for _, cam := range ValidCameras {
		p := validParams()
		p.Camera = cam
		_, err := cfg.Normalize(p)
		assert.NoError(t, err, "camera %s", cam)
	}
}

func TestNormalize_Invalid(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"malformed date", func(p *Params) { p.Date = "13/45" }},
		{"feb 29 in non-leap year", func(p *Params) { p.Year = 2011; p.Date = "02/29" }},
		{"date with wrong separator", func(p *Params) { p.Date = "06-21" }},
		{"stop before start", func(p *Params) { p.Start = "14:00"; p.Stop = "12:00" }},
		{"malformed start time", func(p *Params) { p.Start = "25:00" }},
		{"malformed stop time", func(p *Params) { p.Stop = "12:61" }},
		{"unknown camera", func(p *Params) { p.Camera = "NICMOS" }},
		{"unknown format", func(p *Params) { p.Format = "JPEG" }},
		{"year before telemetry", func(p *Params) { p.Year = 2002 }},
		{"year in the future", func(p *Params) { p.Year = time.Now().Year() + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := cfg.Normalize(p)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidParameter), "got %v", err)
			assert.False(t, errors.IsRetryable(err))
		})
	}
}

func TestConfig_ArtifactURLs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "http://example.test"

	p := validParams()
	assert.Equal(t, "http://example.test/cgi-bin/control3.py", cfg.RequestURL())
	assert.Equal(t, "http://example.test/images/focusdata2010.06.21_1200-1230.txt", cfg.TableURL(p))
	assert.Equal(t, "http://example.test/images/focusplot2010.06.21_1200-1230.png", cfg.PlotURL(p))
}
