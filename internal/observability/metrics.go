package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
	upstreamRequestsTotal *prometheus.CounterVec
	upstreamDuration      *prometheus.HistogramVec
	pipelineStageDuration *prometheus.HistogramVec
	processedTotal        *prometheus.CounterVec
	retrievalEmptyTotal   prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bhasharag_http_requests_total",
				Help: "Total number of HTTP requests handled.",
			},
			[]string{"route", "method", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bhasharag_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
		upstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bhasharag_upstream_requests_total",
				Help: "Total upstream OpenAI-compatible API requests.",
			},
			[]string{"endpoint", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bhasharag_upstream_request_duration_seconds",
				Help:    "Upstream request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "status"},
		),
		pipelineStageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bhasharag_pipeline_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		processedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bhasharag_processed_requests_total",
				Help: "Processed requests by detected and output language.",
			},
			[]string{"detected_lang", "output_lang"},
		),
		retrievalEmptyTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bhasharag_retrieval_empty_total",
				Help: "Number of processed requests with no knowledge base hits.",
			},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.upstreamRequestsTotal,
		m.upstreamDuration,
		m.pipelineStageDuration,
		m.processedTotal,
		m.retrievalEmptyTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	if method == "" {
		method = "UNKNOWN"
	}
	statusLabel := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(route, method, statusLabel).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, statusLabel).Observe(duration.Seconds())
}

func (m *Metrics) ObserveUpstream(endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	statusLabel := strconv.Itoa(status)
	m.upstreamRequestsTotal.WithLabelValues(endpoint, statusLabel).Inc()
	m.upstreamDuration.WithLabelValues(endpoint, statusLabel).Observe(duration.Seconds())
}

func (m *Metrics) ObserveStage(stage string, duration time.Duration) {
	if m == nil {
		return
	}
	m.pipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (m *Metrics) ObserveProcessed(detectedLang, outputLang string, retrievedCount int) {
	if m == nil {
		return
	}
	m.processedTotal.WithLabelValues(detectedLang, outputLang).Inc()
	if retrievedCount == 0 {
		m.retrievalEmptyTotal.Inc()
	}
}
