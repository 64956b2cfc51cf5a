package lifecycle

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_engine_runs_total",
		Help: "Number of engine passes started.",
	})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lifecycle_engine_run_duration_seconds",
		Help:    "Duration of engine passes.",
		Buckets: prometheus.DefBuckets,
	})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_engine_transitions_total",
		Help: "Committed lifecycle transitions by action key.",
	}, []string{"action_key"})

	automationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_engine_automation_failures_total",
		Help: "Automation errors swallowed by the engine.",
	}, []string{"automation"})
)
