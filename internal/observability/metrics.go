package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts HTTP requests by route, method and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	// HTTPRequestDuration observes HTTP request latency.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	// AIRequestsTotal counts inference calls by provider and operation.
	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	// AIRequestDuration observes inference call latency.
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	// AnalysisCandidatesTotal counts per-candidate pipeline outcomes:
	// analyzed (genuine AI result), defaulted (safe default substituted),
	// dropped (malformed application excluded).
	AnalysisCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_candidates_total",
			Help: "Per-candidate analysis outcomes",
		},
		[]string{"outcome"},
	)
	// AnalysisBatchDuration observes full batch pipeline duration.
	AnalysisBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_batch_duration_seconds",
			Help:    "Duration of a full job analysis batch",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
	// CompositeScoreHistogram observes the deterministic composite score
	// distribution across analyzed candidates.
	CompositeScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_composite_score",
			Help:    "Distribution of deterministic composite scores (0-100)",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	// RunsEnqueuedTotal counts analysis runs enqueued.
	RunsEnqueuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_runs_enqueued_total",
			Help: "Total number of analysis runs enqueued",
		},
	)
	// RunsCompletedTotal counts analysis runs by terminal status.
	RunsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_runs_completed_total",
			Help: "Total number of analysis runs finished, by status",
		},
		[]string{"status"},
	)
)

// InitMetrics registers all metrics once per process.
func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AIRequestsTotal)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(AnalysisCandidatesTotal)
	prometheus.MustRegister(AnalysisBatchDuration)
	prometheus.MustRegister(CompositeScoreHistogram)
	prometheus.MustRegister(RunsEnqueuedTotal)
	prometheus.MustRegister(RunsCompletedTotal)
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}
