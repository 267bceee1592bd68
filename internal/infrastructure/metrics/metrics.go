package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generations
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnassist_generations_total",
			Help: "Generation requests by endpoint and result",
		},
		[]string{"endpoint", "result"}, // result: success|failure
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnassist_generation_duration_seconds",
			Help:    "End-to-end duration of generation pipelines",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
		[]string{"endpoint"},
	)
	RecommendationShapes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnassist_recommendation_shapes_total",
			Help: "Recommendation results by parse outcome",
		},
		[]string{"shape"}, // structured|raw
	)

	// LLM
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnassist_llm_requests_total",
			Help: "Number of LLM requests by provider/model",
		},
		[]string{"provider", "model"},
	)
	LLMDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learnassist_llm_request_duration_seconds",
			Help:    "Latency of LLM provider calls",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"provider"},
	)

	// Journal store ops
	JournalOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnassist_journal_ops_total",
			Help: "Generation journal operations performed",
		},
		[]string{"backend", "op"}, // op: put|get|list|count
	)

	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed.",
		},
		[]string{"method", "path"},
	)
	HTTPDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	HTTPErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP request errors.",
		},
		[]string{"method", "path", "status"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnassist_errors_total",
			Help: "Errors encountered in components",
		},
		[]string{"component", "type"},
	)
)

func init() {
	prometheus.MustRegister(
		// Generations
		Generations,
		GenerationDurationSeconds,
		RecommendationShapes,
		// LLM
		LLMRequests,
		LLMDurationSeconds,
		// Journal
		JournalOps,
		// HTTP
		HTTPRequests,
		HTTPDurationSeconds,
		HTTPErrors,
		// Errors
		Errors,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer serves /metrics on a dedicated listener. It blocks.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}

// Generations
func IncGeneration(endpoint, result string) {
	Generations.WithLabelValues(endpoint, result).Inc()
}

func ObserveGenerationDuration(endpoint string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(endpoint).Observe(d.Seconds())
}

func IncRecommendationShape(shape string) {
	RecommendationShapes.WithLabelValues(shape).Inc()
}

// LLM
func IncLLMRequest(provider, model string) {
	LLMRequests.WithLabelValues(provider, model).Inc()
}

func ObserveLLMDuration(provider string, d time.Duration) {
	LLMDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}

// Journal
func IncJournalOp(backend, op string) {
	JournalOps.WithLabelValues(backend, op).Inc()
}

// HTTP
func ObserveHTTP(method, path string, status int, d time.Duration) {
	statusStr := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, path).Inc()
	HTTPDurationSeconds.WithLabelValues(method, path, statusStr).Observe(d.Seconds())
	if status >= 400 {
		HTTPErrors.WithLabelValues(method, path, statusStr).Inc()
	}
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
