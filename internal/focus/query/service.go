package query

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mmechtley/hstfocus/internal/common/errors"
	commonhttp "github.com/mmechtley/hstfocus/internal/common/http"
	"github.com/mmechtley/hstfocus/internal/common/logger"
	"github.com/mmechtley/hstfocus/internal/common/metrics"
)

// Service queries the STScI focus model web service. The service side has no
// programmatic API, only the browser form, so the query emulates a form
// submission: one POST makes the CGI script generate the output files on the
// server, then one GET per requested artifact retrieves them.
type Service struct {
	config *Config
	logger logger.Logger
	http   *commonhttp.Client
}

type ServiceDependencies struct {
	Logger logger.Logger
	// HTTP overrides the transport, primarily for tests. When nil a client
	// with the configured timeout is built.
	HTTP *commonhttp.Client
}

func NewService(deps ServiceDependencies, config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query config: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	httpClient := deps.HTTP
	if httpClient == nil {
		httpClient = commonhttp.NewClient(config.Timeout)
	}

	return &Service{
		config: config,
		logger: log,
		http:   httpClient,
	}, nil
}

// GetModelData retrieves the model focus table and/or plot for the given
// time range. Exactly the artifacts selected by params.Format are returned;
// on any failure the result is nil. A single attempt is made per call, the
// caller decides whether to re-issue.
func (s *Service) GetModelData(ctx context.Context, params Params) (*Result, error) {
	params, err := s.config.Normalize(params)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithFields(map[string]interface{}{
		"requestId": uuid.New().String(),
		"year":      params.Year,
		"date":      params.Date,
		"start":     params.Start,
		"stop":      params.Stop,
		"camera":    string(params.Camera),
		"format":    string(params.Format),
	})

	metrics.ModelQueriesTotal.WithLabelValues(string(params.Camera), string(params.Format)).Inc()
	started := time.Now()

	result, err := s.fetch(ctx, log, params)
	if err != nil {
		metrics.ModelQueryFailures.WithLabelValues(string(errors.CodeOf(err))).Inc()
		log.WithError(err).Error("Focus model query failed", nil)
		return nil, err
	}

	metrics.ModelQueryDuration.WithLabelValues(string(params.Format)).Observe(time.Since(started).Seconds())
	log.Info("Focus model query completed", map[string]interface{}{
		"rows":      result.Table.Len(),
		"plotBytes": len(result.Plot),
		"duration":  time.Since(started).String(),
	})

	return result, nil
}

func (s *Service) fetch(ctx context.Context, log logger.Logger, params Params) (*Result, error) {
	// These are the form controls passed via POST on the website. The POST
	// only triggers output generation, its body is ignored.
	form := url.Values{
		"Output": {"Model"},
		"Year":   {fmt.Sprintf("%d", params.Year)},
		"Camera": {string(params.Camera)},
		"Date":   {params.Date},
		"Start":  {params.Start},
		"Stop":   {params.Stop},
	}

	log.Debug("Submitting model generation request", map[string]interface{}{
		"url": s.config.RequestURL(),
	})
	resp, err := s.http.PostForm(ctx, s.config.RequestURL(), form)
	if err != nil {
		return nil, transportError(err)
	}
	if !resp.IsSuccess() {
		return nil, errors.NewBadHTTPStatusError(resp.StatusCode, resp.Status)
	}

	result := &Result{}

	if params.Format == FormatTXT || params.Format == FormatBOTH {
		resp, err := s.http.Get(ctx, s.config.TableURL(params), "text/plain")
		if err != nil {
			return nil, transportError(err)
		}
		if !resp.IsSuccess() {
			return nil, errors.NewBadHTTPStatusError(resp.StatusCode, resp.Status)
		}
		table, err := ParseTable(resp.Body)
		if err != nil {
			return nil, err
		}
		result.Table = table
		result.TableText = resp.Body
	}

	if params.Format == FormatPNG || params.Format == FormatBOTH {
		resp, err := s.http.Get(ctx, s.config.PlotURL(params), "image/png")
		if err != nil {
			return nil, transportError(err)
		}
		if !resp.IsSuccess() {
			return nil, errors.NewBadHTTPStatusError(resp.StatusCode, resp.Status)
		}
		if err := ValidatePlot(resp.Body); err != nil {
			return nil, err
		}
		result.Plot = resp.Body
	}

	return result, nil
}

func transportError(err error) error {
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewRequestTimeoutError(err)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewRequestTimeoutError(err)
	}
	return errors.NewRequestFailedError(err)
}
