// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Fetch metrics
	BarsFetched  *prometheus.CounterVec
	FetchErrors  *prometheus.CounterVec
	FetchLatency *prometheus.HistogramVec

	// Analysis metrics
	TimeframesAnalyzed *prometheus.CounterVec
	CrossoversDetected *prometheus.CounterVec
	SummariesStored    prometheus.Counter
	AnalysisDuration   *prometheus.HistogramVec
	ReportsGenerated   prometheus.Counter

	// Run metrics
	RunsTotal   *prometheus.CounterVec
	RunDuration prometheus.Histogram

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "sma_crossover_lab"
	}

	return &Metrics{
		// Fetch metrics
		BarsFetched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "bars_fetched_total",
			Help:      "Total number of price bars fetched by timeframe",
		}, []string{"timeframe"}),
		FetchErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "errors_total",
			Help:      "Total number of fetch errors by timeframe",
		}, []string{"timeframe"}),
		FetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "latency_seconds",
			Help:      "Market data fetch latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"timeframe"}),

		// Analysis metrics
		TimeframesAnalyzed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "timeframes_analyzed_total",
			Help:      "Total number of timeframe analyses by status",
		}, []string{"timeframe", "status"}),
		CrossoversDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "crossovers_detected_total",
			Help:      "Total number of bullish crossovers detected by timeframe",
		}, []string{"timeframe"}),
		SummariesStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "summaries_stored_total",
			Help:      "Total number of timeframe summaries stored",
		}),
		AnalysisDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Per-timeframe analysis duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"timeframe"}),
		ReportsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "reports_generated_total",
			Help:      "Total number of reports generated",
		}),

		// Run metrics
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "total",
			Help:      "Total number of orchestrator runs by status",
		}, []string{"status"}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Full orchestrator run duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
		}),

		// Health metrics
		LastSuccessfulRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful run",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordFetch records a completed market data fetch.
func RecordFetch(timeframe string, bars int, seconds float64) {
	DefaultMetrics.BarsFetched.WithLabelValues(timeframe).Add(float64(bars))
	DefaultMetrics.FetchLatency.WithLabelValues(timeframe).Observe(seconds)
}

// RecordFetchError increments the fetch error counter.
func RecordFetchError(timeframe string) {
	DefaultMetrics.FetchErrors.WithLabelValues(timeframe).Inc()
}

// RecordTimeframeAnalyzed records a completed timeframe analysis.
func RecordTimeframeAnalyzed(timeframe, status string, crossovers int, seconds float64) {
	DefaultMetrics.TimeframesAnalyzed.WithLabelValues(timeframe, status).Inc()
	DefaultMetrics.CrossoversDetected.WithLabelValues(timeframe).Add(float64(crossovers))
	DefaultMetrics.AnalysisDuration.WithLabelValues(timeframe).Observe(seconds)
}

// RecordRun records a full orchestrator run.
func RecordRun(status string, durationSeconds float64) {
	DefaultMetrics.RunsTotal.WithLabelValues(status).Inc()
	DefaultMetrics.RunDuration.Observe(durationSeconds)
}
