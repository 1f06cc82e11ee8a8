package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lexiscan_pipeline_runs_total",
		Help: "Total number of pipeline runs started.",
	})

	runErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lexiscan_pipeline_run_errors_total",
		Help: "Total number of pipeline runs that failed outright.",
	})

	analyzerFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lexiscan_analyzer_failures_total",
		Help: "Total number of analyzer errors or panics, by analyzer.",
	}, []string{"analyzer"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lexiscan_pipeline_run_duration_seconds",
		Help:    "Wall-clock duration of pipeline runs.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)
