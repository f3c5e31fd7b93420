// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModelQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_model_queries_total",
			Help: "Total number of focus model queries issued",
		},
		[]string{"camera", "format"},
	)

	ModelQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_model_query_failures_total",
			Help: "Total number of failed focus model queries",
		},
		[]string{"error_code"},
	)

	ModelQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "focus_model_query_duration_seconds",
			Help: "Duration of focus model queries in seconds",
		},
		[]string{"format"},
	)

	HeaderAnnotationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_header_annotations_total",
			Help: "Total number of mean-focus header annotations",
		},
		[]string{"outcome"},
	)
)
