package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodshot",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodshot",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodshot",
			Subsystem: "submissions",
			Name:      "status_transitions_total",
			Help:      "Total number of persisted submission status transitions.",
		},
		[]string{"from", "to"},
	)

	servingAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodshot",
			Subsystem: "ledger",
			Name:      "serving_adjustments_total",
			Help:      "Serving ledger outcomes by direction and result.",
		},
		[]string{"direction", "result"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, statusTransitions, servingAdjustments)
}

// ObserveStatusTransition records one persisted status change.
func ObserveStatusTransition(from, to string) {
	statusTransitions.WithLabelValues(from, to).Inc()
}

// ObserveServingAdjustment records a ledger outcome. result is one of
// applied, skipped, failed.
func ObserveServingAdjustment(direction, result string) {
	servingAdjustments.WithLabelValues(direction, result).Inc()
}

// Handler serves the /metrics endpoint from the application registry.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Middleware records request counts and latency per route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
