package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Analysis metrics
	eventsTotal      *prometheus.CounterVec
	horizonsTotal    *prometheus.CounterVec
	analysesTotal    prometheus.Counter
	analysisDuration prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Analysis metrics
	r.eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aftermath_events_total",
			Help: "Total number of events processed, by outcome",
		},
		[]string{"status"},
	)
	r.horizonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aftermath_horizons_total",
			Help: "Total number of horizon evaluations, by years and availability",
		},
		[]string{"years", "status"},
	)
	r.analysesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "aftermath_analyses_total",
			Help: "Total number of full analysis runs",
		},
	)
	r.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aftermath_analysis_duration_seconds",
			Help:    "Full analysis run duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	reg.MustRegister(r.eventsTotal)
	reg.MustRegister(r.horizonsTotal)
	reg.MustRegister(r.analysesTotal)
	reg.MustRegister(r.analysisDuration)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordEvent records a processed event with outcome "evaluated" or
// "skipped".
func (r *Registry) RecordEvent(status string) {
	r.eventsTotal.WithLabelValues(status).Inc()
}

// RecordHorizon records one horizon evaluation with availability
// "available" or "unavailable".
func (r *Registry) RecordHorizon(years string, status string) {
	r.horizonsTotal.WithLabelValues(years, status).Inc()
}

// RecordAnalysis records a completed analysis run.
func (r *Registry) RecordAnalysis(duration float64) {
	r.analysesTotal.Inc()
	r.analysisDuration.Observe(duration)
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
