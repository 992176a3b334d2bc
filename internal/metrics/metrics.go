// Package metrics holds the prometheus collectors shared by the proxy,
// the engine API and the simulation runner. They are registered on the
// default registry and exposed by the HTTP server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamFetches counts puzzle fetches by result (ok, error, invalid_date).
	UpstreamFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlebuddy_upstream_fetches_total",
		Help: "Puzzle-of-the-day fetches by result",
	}, []string{"result"})

	// UpstreamDuration tracks upstream round-trip latency.
	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlebuddy_upstream_duration_seconds",
		Help:    "Upstream puzzle fetch duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
	})

	// CacheLookups counts payload cache lookups by outcome (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlebuddy_cache_lookups_total",
		Help: "Puzzle payload cache lookups by outcome",
	}, []string{"outcome"})

	// Suggestions counts engine calls by result (found, none).
	Suggestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlebuddy_suggestions_total",
		Help: "Engine suggestions by result",
	}, []string{"result"})

	// Sessions counts finished solving sessions by mode and final state.
	Sessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlebuddy_sessions_total",
		Help: "Finished solving sessions by mode and state",
	}, []string{"mode", "state"})

	// SessionAttempts records how many guesses finished sessions used.
	SessionAttempts = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wordlebuddy_session_attempts",
		Help:    "Guesses used per finished session",
		Buckets: []float64{1, 2, 3, 4, 5, 6},
	}, []string{"mode"})
)
