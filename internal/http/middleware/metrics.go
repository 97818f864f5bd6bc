package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// namespace prefixes every collector this service registers.
const namespace = "mission_control"

// unmatchedRoute labels requests that hit no registered route, keeping the
// path label bounded no matter what URLs clients send.
const unmatchedRoute = "<unmatched>"

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// Latency omits status to keep the histogram small.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_inflight",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_size_bytes",
			Help:      "Size of HTTP responses in bytes.",
			// single resources are a few hundred bytes, full lists grow with the store
			Buckets: prometheus.ExponentialBuckets(128, 4, 8),
		},
		[]string{"method", "path"},
	)

	// apiErrors counts classified failures by resource (mission, incident,
	// user) and class (conflict, not_found, invalid_input, internal).
	apiErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_errors_total",
			Help:      "Total number of classified API errors.",
		},
		[]string{"resource", "class"},
	)

	idemReplays = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotency_replays_total",
			Help:      "Create requests answered from a stored Idempotency-Key result.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, apiErrors, idemReplays)
}

// CountError records one classified API failure for resource.
func CountError(resource, class string) {
	apiErrors.WithLabelValues(resource, class).Inc()
}

// CountReplay records one create answered from a stored idempotency result.
func CountReplay() { idemReplays.Inc() }

// Metrics instruments every request with the http_* collectors above. The
// path label is the Gin route template, so /missions/:id is one series no
// matter how many missions exist.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}
		method := c.Request.Method

		httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		// Size is -1 when nothing was written.
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
