// Package metrics provides Prometheus instrumentation for the scoring service.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraudscore",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fraudscore",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PredictionsTotal counts scored transactions by outcome status.
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraudscore",
			Name:      "predictions_total",
			Help:      "Total predictions served by outcome (FRAUDE/NORMAL).",
		},
		[]string{"status"},
	)

	// PredictionDuration observes end-to-end scoring latency.
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fraudscore",
		Name:      "prediction_duration_seconds",
		Help:      "Time from validated input to prediction result in seconds.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	// FraudProbability observes the distribution of fraud probabilities.
	FraudProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fraudscore",
		Name:      "fraud_probability",
		Help:      "Distribution of predicted fraud probabilities.",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
	})

	// ValidationFailuresTotal counts rejected payloads by failure kind.
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fraudscore",
			Name:      "validation_failures_total",
			Help:      "Total payloads rejected by input validation, by failure kind.",
		},
		[]string{"kind"}, // "missing_field", "not_numeric", "negative_amount"
	)

	// InferenceErrorsTotal counts classifier invocation failures.
	InferenceErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fraudscore",
		Name:      "inference_errors_total",
		Help:      "Total classifier invocation failures surfaced as internal errors.",
	})

	// ModelLoaded reports whether the classifier artifact is loaded (1) or not (0).
	ModelLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fraudscore",
		Name:      "model_loaded",
		Help:      "Whether the classifier artifact loaded successfully.",
	})

	// ActiveWebSocketClients tracks connected event-stream clients.
	ActiveWebSocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fraudscore",
		Name:      "active_websocket_clients",
		Help:      "Number of currently connected WebSocket clients.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		PredictionsTotal,
		PredictionDuration,
		FraudProbability,
		ValidationFailuresTotal,
		InferenceErrorsTotal,
		ModelLoaded,
		ActiveWebSocketClients,
	)
}

// Middleware returns a gin middleware that records request metrics.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(), // Uses route pattern, not actual path (avoids cardinality explosion)
		))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for /metrics endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
