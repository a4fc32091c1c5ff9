package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus metrics.
type Metrics struct {
	// Statement metrics
	StatementsComputed  prometheus.Counter
	StatementDuration   prometheus.Histogram
	StatementEntries    prometheus.Histogram
	StatementFailures   *prometheus.CounterVec
	StatementStaleDrops prometheus.Counter
	InvariantViolations prometheus.Counter

	// Movement metrics
	MovementsCreated  *prometheus.CounterVec
	MovementsApproved prometheus.Counter
	MovementsRejected prometheus.Counter

	// Cheque metrics
	ChequesCleared prometheus.Counter
	ChequesBounced prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		StatementsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_statements_computed_total",
			Help: "Total number of statements computed",
		}),
		StatementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "backoffice_statement_duration_seconds",
			Help:    "Duration of statement computation",
			Buckets: prometheus.DefBuckets,
		}),
		StatementEntries: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "backoffice_statement_entries",
			Help:    "Number of ledger entries per computed statement",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		}),
		StatementFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_statement_failures_total",
				Help: "Total statement computation failures by reason",
			},
			[]string{"reason"},
		),
		StatementStaleDrops: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_statement_stale_results_dropped_total",
			Help: "Total statement results discarded because a newer request superseded them",
		}),
		InvariantViolations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_statement_invariant_violations_total",
			Help: "Total closing balance invariant violations detected",
		}),

		MovementsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_movements_created_total",
				Help: "Total movements created by kind",
			},
			[]string{"kind"},
		),
		MovementsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_movements_approved_total",
			Help: "Total movements approved",
		}),
		MovementsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_movements_rejected_total",
			Help: "Total movements rejected",
		}),

		ChequesCleared: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_cheques_cleared_total",
			Help: "Total cheques cleared",
		}),
		ChequesBounced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_cheques_bounced_total",
			Help: "Total cheques bounced",
		}),
	}
}
