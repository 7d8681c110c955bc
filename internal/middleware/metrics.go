package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bayaaz_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedRequests counts feed assemblies by branch taken (personalized or random).
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bayaaz_feed_requests_total",
		Help: "Total number of feed assemblies by branch",
	}, []string{"branch"})

	// FeedItemsReturned records how many items each feed response carried.
	FeedItemsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bayaaz_feed_items_returned",
		Help:    "Number of feed items returned per response",
		Buckets: []float64{1, 5, 10, 20, 50, 100},
	})

	// ActiveWebSockets tracks the number of open reader WebSocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bayaaz_active_websockets",
		Help: "Number of active WebSocket connections",
	})

	// PoemViews counts recorded poem detail views.
	PoemViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bayaaz_poem_views_total",
		Help: "Total number of poem detail views recorded",
	})
)

// InitMetrics creates the Prometheus middleware for the Fiber app.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
