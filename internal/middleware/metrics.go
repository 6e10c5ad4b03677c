package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	textCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "text_cache_lookups_total",
			Help: "Generated-text cache lookups by outcome",
		},
		[]string{"hit", "language"},
	)

	generationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_attempts_total",
			Help: "Validation attempts against the new-word budget",
		},
		[]string{"valid"},
	)

	generationTruncations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "generation_truncations_total",
			Help: "Texts accepted via the sentence-truncation fallback",
		},
	)

	generatorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_calls_total",
			Help: "Calls to the generator collaborator",
		},
		[]string{"status"},
	)

	generatorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generator_call_duration_seconds",
			Help:    "Generator collaborator call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)
)

// MetricsMiddleware collects Prometheus metrics for each HTTP request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		c.Next()

		httpRequestsInFlight.Dec()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration)
	}
}

// RecordCacheLookup records one generated-text cache lookup.
func RecordCacheLookup(hit bool, language string) {
	textCacheLookups.WithLabelValues(strconv.FormatBool(hit), language).Inc()
}

// RecordGenerationAttempt records one ratio-validation attempt.
func RecordGenerationAttempt(valid bool) {
	generationAttempts.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

// RecordTruncation records an acceptance through the truncation fallback.
func RecordTruncation() {
	generationTruncations.Inc()
}

// RecordGeneratorCall records one call to the generator collaborator.
func RecordGeneratorCall(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	generatorCalls.WithLabelValues(status).Inc()
	generatorDuration.Observe(duration.Seconds())
}
