// Package observability provides Prometheus collectors and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for consistency operation counters.
const (
	ResultAdded    = "added"
	ResultRemoved  = "removed"
	ResultDeleted  = "deleted"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "comunidad_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FavoriteToggles counts favorite toggles by outcome.
	FavoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comunidad_favorite_toggles_total",
		Help: "Total number of favorite toggles by result",
	}, []string{"result"})

	// PostCascadeDeletes counts cascading post deletions by outcome.
	PostCascadeDeletes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comunidad_post_cascade_deletes_total",
		Help: "Total number of cascading post deletions by result",
	}, []string{"result"})

	// SupplyDateToggles counts medication supply date toggles by outcome.
	SupplyDateToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comunidad_supply_date_toggles_total",
		Help: "Total number of medication supply date toggles by result",
	}, []string{"result"})

	// WebSocketEventsTotal counts forum events fanned out to websocket clients.
	WebSocketEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comunidad_websocket_events_total",
		Help: "Total WebSocket events by type",
	}, []string{"event_type"})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "comunidad_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
