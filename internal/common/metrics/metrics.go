package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnosis_requests_total",
			Help: "Total number of API requests by route and status",
		},
		[]string{"route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "diagnosis_request_duration_seconds",
			Help: "Duration of API request processing in seconds",
		},
		[]string{"route"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnosis_generations_total",
			Help: "Text generation attempts by report type and outcome",
		},
		[]string{"report_type", "outcome"},
	)

	FallbackRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnosis_fallback_renders_total",
			Help: "Reports served from the deterministic fallback renderer",
		},
		[]string{"report_type"},
	)

	ReportCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "diagnosis_report_cache_hits_total",
			Help: "Rendered reports served from the cache",
		},
		[]string{"report_type"},
	)
)
