// Package metrics defines the Prometheus instruments exposed at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// UnknownScenario is the scenario label recorded for keys outside the catalog.
const UnknownScenario = "unknown"

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests by scenario and outcome",
		},
		[]string{"scenario", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent producing a recommendation list",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scenario"},
	)

	DatasetRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Number of songs in the most recently loaded dataset",
		},
	)

	// result: hit, miss, error
	LastFMLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lastfm_lookups_total",
			Help: "Last.fm tag lookups by result",
		},
		[]string{"result"},
	)

	// result: found, not_found, error, cached
	SpotifyLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotify_lookups_total",
			Help: "Spotify track link lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecommendation records one recommendation request.
func RecordRecommendation(scenario, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(scenario, outcome).Inc()
	RecommendationDuration.WithLabelValues(scenario).Observe(duration.Seconds())
}

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
