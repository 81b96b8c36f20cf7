// Package metrics holds the Prometheus metrics for the sweep engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the sweep engine.
type Metrics struct {
	RunsTotal         prometheus.Counter
	RunsFailed        prometheus.Counter
	AccountsEvaluated prometheus.Counter
	ActionsTotal      *prometheus.CounterVec
	SkipsTotal        *prometheus.CounterVec
	ErrorsTotal       prometheus.Counter
	RunDuration       prometheus.Histogram
}

// New creates and registers all sweep metrics on the default registry.
// Call once per process.
func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "privsweep_runs_total",
			Help: "Total number of sweep runs started",
		}),
		RunsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "privsweep_runs_failed_total",
			Help: "Total number of sweep runs that ended with a fatal error",
		}),
		AccountsEvaluated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "privsweep_accounts_evaluated_total",
			Help: "Total number of accounts evaluated across all runs",
		}),
		ActionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privsweep_actions_total",
			Help: "Remediation actions completed, by action",
		}, []string{"action"}),
		SkipsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "privsweep_skips_total",
			Help: "Accounts skipped, by reason",
		}, []string{"reason"}),
		ErrorsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "privsweep_account_errors_total",
			Help: "Accounts that ended in a recoverable error",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "privsweep_run_duration_seconds",
			Help:    "Wall-clock duration of sweep runs",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
		}),
	}
}
