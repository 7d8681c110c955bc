package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DatabaseQueryLatency records database query latency by operation and table.
var DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "bayaaz_database_query_latency_seconds",
	Help:    "Database query latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"operation", "table"})

// WebSocketBackpressureDrops counts messages dropped because a client's send
// buffer was full or its channel already closed.
var WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bayaaz_websocket_backpressure_drops_total",
	Help: "Total websocket messages dropped due to backpressure, by hub and reason",
}, []string{"hub", "reason"})

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
