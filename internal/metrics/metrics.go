// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name
const Namespace = "nutriscope"

// Upstream outcomes
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
	OutcomeCanceled  = "canceled"
)

// Metrics holds every collector
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	SearchesTotal    *prometheus.CounterVec
}

// New creates and registers the collectors on reg. A nil reg means the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		UpstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream API requests",
			},
			[]string{"upstream", "outcome"},
		),
		UpstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream API requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"upstream"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "searches_total",
				Help:      "Total number of searches by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
	}
}

// NewNop returns collectors registered on a throwaway registry
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
