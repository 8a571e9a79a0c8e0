package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Recommendation runs by trigger (scheduled/manual/startup) and outcome.
	// Watch for: outcome=error climbing, meaning runs are failing outright.
	RunsTotal *prometheus.CounterVec

	// End-to-end run latency. Watch for: upstream timeouts stretching runs.
	RunDuration prometheus.Histogram

	// Where each run's forecast input came from, per source (weather/aqi).
	// result is one of live, cache, stale, fallback. Watch for: fallback
	// dominating, meaning the upstream APIs are unreachable.
	SourceResultsTotal *prometheus.CounterVec

	// Telegram delivery attempts by status. Watch for: status=error meaning
	// recommendations are computed but never reach the chat.
	DeliveriesTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "runs_total",
			Help: "Total number of recommendation runs",
		},
		[]string{"trigger", "outcome"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "run_duration_seconds",
			Help:    "Recommendation run latency in seconds (per run)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)
	SourceResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_results_total",
			Help: "Forecast inputs by source and how they were obtained",
		},
		[]string{"source", "result"},
	)
	DeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deliveries_total",
			Help: "Total number of delivery attempts",
		},
		[]string{"status"},
	)

	registry.MustRegister(
		RunsTotal, RunDuration,
		SourceResultsTotal,
		DeliveriesTotal,
	)
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
