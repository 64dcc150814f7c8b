package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Oracle call outcomes. "fallback" means the oracle answered but its output
// could not be parsed and a synthesized payload was substituted. Callers
// never see that substitution, so this counter is the only place it shows up.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seogenix",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "seogenix",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "seogenix",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	oracleRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seogenix",
			Subsystem: "oracle",
			Name:      "requests_total",
			Help:      "Total number of text-generation calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	oracleRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "seogenix",
			Subsystem: "oracle",
			Name:      "request_duration_seconds",
			Help:      "Text-generation call duration in seconds",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	pageFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seogenix",
			Subsystem: "fetch",
			Name:      "pages_total",
			Help:      "Total number of target-page fetches by outcome",
		},
		[]string{"outcome"},
	)

	entitlementDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seogenix",
			Subsystem: "entitlement",
			Name:      "denials_total",
			Help:      "Total number of actions denied by plan gating",
		},
		[]string{"action"},
	)

	auditsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seogenix",
			Subsystem: "audit",
			Name:      "created_total",
			Help:      "Total number of audits written",
		},
		[]string{"kind"},
	)
)

// RecordOracleRequest records the outcome of one text-generation call.
func RecordOracleRequest(endpoint, outcome string, duration time.Duration) {
	oracleRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	oracleRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordPageFetch records a target-page fetch outcome ("ok" or "error").
func RecordPageFetch(outcome string) {
	pageFetchTotal.WithLabelValues(outcome).Inc()
}

// RecordEntitlementDenial records a gated action that was refused.
func RecordEntitlementDenial(action string) {
	entitlementDenialsTotal.WithLabelValues(action).Inc()
}

// RecordAuditCreated records a stored audit ("site" or "competitor").
func RecordAuditCreated(kind string) {
	auditsCreatedTotal.WithLabelValues(kind).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrapped.statusCode)

		// Use the route pattern rather than the raw path to bound cardinality.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
