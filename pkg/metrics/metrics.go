// Package metrics exposes a small Prometheus registry for assignment runs:
// point counters and a run-duration histogram, populated by the CLI shell
// after each run. The core assignment algorithm never touches this package.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the counters and histogram for one process's lifetime of
// assignment runs.
type Registry struct {
	pointsProcessed *prometheus.CounterVec
	pointsExcluded  prometheus.Counter
	runDuration     prometheus.Histogram
	runsTotal       *prometheus.CounterVec
}

// NewRegistry builds a Registry and registers its collectors with reg. Pass
// prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to expose on the process-wide /metrics
// endpoint.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		pointsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chassign",
			Name:      "points_processed_total",
			Help:      "Points processed by the assigner, labeled by outcome.",
		}, []string{"outcome"}),
		pointsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chassign",
			Name:      "points_excluded_total",
			Help:      "Points excluded from assignment (communication or unrecognized).",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chassign",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of one end-to-end assignment run.",
			Buckets:   prometheus.DefBuckets,
		}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chassign",
			Name:      "runs_total",
			Help:      "Assignment runs, labeled by whether any point was left unassigned.",
		}, []string{"shortfall"}),
	}

	reg.MustRegister(r.pointsProcessed, r.pointsExcluded, r.runDuration, r.runsTotal)
	return r
}

// RunSummary is the tally the CLI shell hands to RecordRun after one
// assignment completes.
type RunSummary struct {
	Assigned int
	Failed   int
	Excluded int
	Duration time.Duration
}

// RecordRun updates every collector from one run's summary.
func (r *Registry) RecordRun(s RunSummary) {
	r.pointsProcessed.WithLabelValues("assigned").Add(float64(s.Assigned))
	r.pointsProcessed.WithLabelValues("failed").Add(float64(s.Failed))
	r.pointsExcluded.Add(float64(s.Excluded))
	r.runDuration.Observe(s.Duration.Seconds())

	shortfallLabel := "false"
	if s.Failed > 0 {
		shortfallLabel = "true"
	}
	r.runsTotal.WithLabelValues(shortfallLabel).Inc()
}
