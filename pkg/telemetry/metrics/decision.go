package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DecisionMetrics tracks metrics related to individual retention decisions.
//
// Metrics:
//   - mercator_saturn_item_decisions_total: Decisions by verdict
//   - mercator_saturn_category_accepts_total: Accepted items by claiming category
type DecisionMetrics struct {
	// Decisions by verdict ("accepted", "rejected")
	decisionsTotal *prometheus.CounterVec

	// Accepted items by the rule category that claimed them
	categoryAccepts *prometheus.CounterVec
}

// NewDecisionMetrics creates and registers decision metrics with the provided registry.
func NewDecisionMetrics(cfg *Config, registry *prometheus.Registry) *DecisionMetrics {
	dm := &DecisionMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "item_decisions_total",
				Help:      "Total number of item retention decisions",
			},
			[]string{"verdict"},
		),

		categoryAccepts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "category_accepts_total",
				Help:      "Accepted items by the rule category that claimed them",
			},
			[]string{"category"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		dm.decisionsTotal,
		dm.categoryAccepts,
	)

	return dm
}

// RecordDecisions records a batch of retention decisions with the same verdict.
//
// Parameters:
//   - verdict: "accepted" or "rejected"
//   - count: number of items that received the verdict
func (dm *DecisionMetrics) RecordDecisions(verdict string, count int) {
	if count > 0 {
		dm.decisionsTotal.WithLabelValues(verdict).Add(float64(count))
	}
}

// RecordAccepts records accepted items claimed by a rule category.
//
// Parameters:
//   - category: category name ("recent", "hours", "days", "weeks",
//     "months", "years")
//   - count: number of accepted items the category claimed
//
// Every accepted item is claimed by exactly one category, so summing
// this counter across categories matches the accepted verdict count.
func (dm *DecisionMetrics) RecordAccepts(category string, count int) {
	if count > 0 {
		dm.categoryAccepts.WithLabelValues(category).Add(float64(count))
	}
}
