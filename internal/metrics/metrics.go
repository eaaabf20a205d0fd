package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeflow_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "typeflow_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typeflow_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})

	DisplayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeflow_display_requests_total",
		Help: "Display split requests by whether the prompt aligned with the word",
	}, []string{"aligned"})

	ResultSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeflow_result_submissions_total",
		Help: "Result submissions by outcome",
	}, []string{"result"})

	ResultKPM = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "typeflow_result_kpm",
		Help:    "Keystrokes per minute of submitted results",
		Buckets: []float64{50, 100, 150, 200, 250, 300, 400, 500},
	})

	ResultsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "typeflow_results_deleted_total",
		Help: "Results removed by the retention loop",
	})
)

// Word generation metrics.
var (
	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "typeflow_llm_request_duration_seconds",
		Help:    "LLM word generation call duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"provider"})

	WordsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "typeflow_words_generated_total",
		Help: "Generated words by outcome",
	}, []string{"result"})
)

// Database pool metrics (gauges updated periodically).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "typeflow_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "typeflow_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "typeflow_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "typeflow_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)
