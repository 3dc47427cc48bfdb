// Package metrics registers the Prometheus instruments for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	FormsCreated     prometheus.Counter
	FormsDeleted     prometheus.Counter
	ExportsGenerated *prometheus.CounterVec
	SuggestRequests  *prometheus.CounterVec
	RequestLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		FormsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dotaznik_forms_created_total",
			Help: "Total number of intake forms persisted.",
		}),
		FormsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dotaznik_forms_deleted_total",
			Help: "Total number of intake forms deleted by admins.",
		}),
		ExportsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dotaznik_exports_generated_total",
			Help: "Total number of collection exports by format.",
		}, []string{"format"}),
		SuggestRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dotaznik_suggest_requests_total",
			Help: "Total number of address suggestion provider calls by outcome.",
		}, []string{"provider", "outcome"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dotaznik_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
