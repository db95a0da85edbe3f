package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedPattern = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	salesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_sales_created_total",
			Help: "Sales created, by initial status.",
		},
		[]string{"status"},
	)
	saleTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_sale_status_transitions_total",
			Help: "Sale status transitions, by target status and outcome.",
		},
		[]string{"status", "outcome"},
	)
	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backoffice_admin_login_attempts_total",
			Help: "Admin login attempts, by result.",
		},
		[]string{"result"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request metrics labelled by the matched route pattern.
// It must wrap the ServeMux directly: the mux fills in r.Pattern on the request it receives.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {
			pattern := r.Pattern
			if pattern == "" {
				pattern = unmatchedPattern
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, pattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

// statusLabel keeps label cardinality bounded when arbitrary statuses are accepted.
func statusLabel(status string, known bool) string {
	if !known {
		return "OTHER"
	}
	return status
}

func SaleCreated(status string) {
	salesCreatedTotal.WithLabelValues(status).Inc()
}

func SaleTransition(status string, known bool, outcome string) {
	saleTransitionsTotal.WithLabelValues(statusLabel(status, known), outcome).Inc()
}

func LoginAttempt(result string) {
	loginAttemptsTotal.WithLabelValues(result).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
