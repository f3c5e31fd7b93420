package annotate

import (
	"context"
	"fmt"
	"time"

	"github.com/mmechtley/hstfocus/internal/common/errors"
	"github.com/mmechtley/hstfocus/internal/common/logger"
	"github.com/mmechtley/hstfocus/internal/common/metrics"
	"github.com/mmechtley/hstfocus/internal/focus/query"
)

// Observation cards use the standard FITS forms, e.g.
// DATE-OBS = '2010-06-21' and TIME-OBS = '12:30:00'.
const obsTimeLayout = "2006-01-02 15:04:05"

type Service struct {
	config  *Config
	logger  logger.Logger
	fetcher Fetcher
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid annotate config: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Service{
		config:  config,
		logger:  log,
		fetcher: deps.Fetcher,
	}, nil
}

// AddMeanFocus computes the mean defocus of table and writes it into the
// target header. When table is nil the model data is fetched first, for a
// window centred on the target's own observation timestamp. The header is
// not touched until a non-empty table is in hand.
func (s *Service) AddMeanFocus(ctx context.Context, hdr Header, table *query.FocusTable) (float64, error) {
	if table == nil {
		fetched, err := s.fetchForObservation(ctx, hdr)
		if err != nil {
			metrics.HeaderAnnotationsTotal.WithLabelValues("fetch_failed").Inc()
			return 0, err
		}
		table = fetched
	}

	mean, err := table.Mean()
	if err != nil {
		metrics.HeaderAnnotationsTotal.WithLabelValues("empty_table").Inc()
		return 0, err
	}

	if err := hdr.WriteCard(s.config.MeanKeyword, mean, "Mean model defocus, microns"); err != nil {
		metrics.HeaderAnnotationsTotal.WithLabelValues("write_failed").Inc()
		return 0, errors.NewMetadataWriteError(hdr.Name(), err)
	}

	metrics.HeaderAnnotationsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Wrote mean focus to header", map[string]interface{}{
		"target":  hdr.Name(),
		"keyword": s.config.MeanKeyword,
		"mean":    mean,
		"rows":    table.Len(),
	})

	return mean, nil
}

// fetchForObservation derives query parameters from the target's observation
// date and time cards and retrieves the table for that window.
func (s *Service) fetchForObservation(ctx context.Context, hdr Header) (*query.FocusTable, error) {
	dateStr, err := hdr.ReadCard(s.config.DateKeyword)
	if err != nil {
		return nil, errors.NewMetadataReadError(hdr.Name(), err)
	}
	timeStr, err := hdr.ReadCard(s.config.TimeKeyword)
	if err != nil {
		return nil, errors.NewMetadataReadError(hdr.Name(), err)
	}

	obs, err := time.Parse(obsTimeLayout, dateStr+" "+timeStr)
	if err != nil {
		return nil, errors.NewInvalidParameterError(fmt.Sprintf("cannot parse observation timestamp %q %q from %s: %v", dateStr, timeStr, hdr.Name(), err))
	}

	// Window clamped to the observation date; the service only generates
	// output for a single day at a time.
	dayStart := time.Date(obs.Year(), obs.Month(), obs.Day(), 0, 0, 0, 0, obs.Location())
	dayEnd := time.Date(obs.Year(), obs.Month(), obs.Day(), 23, 59, 0, 0, obs.Location())
	start := obs.Add(-s.config.Window)
	if start.Before(dayStart) {
		start = dayStart
	}
	stop := obs.Add(s.config.Window)
	if stop.After(dayEnd) {
		stop = dayEnd
	}

	params := query.Params{
		Year:   obs.Year(),
		Date:   obs.Format("01/02"),
		Start:  start.Format("15:04"),
		Stop:   stop.Format("15:04"),
		Format: query.FormatTXT,
	}

	s.logger.Debug("Fetching model data for observation window", map[string]interface{}{
		"target": hdr.Name(),
		"year":   params.Year,
		"date":   params.Date,
		"start":  params.Start,
		"stop":   params.Stop,
	})

	result, err := s.fetcher.GetModelData(ctx, params)
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}
