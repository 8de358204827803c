// Package metrics provides Prometheus metrics for identity verification operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the facade's operation metrics.
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec   // Calls by operation and result code ("ok" on success)
	OperationDuration *prometheus.HistogramVec // Call latency by operation
	OutcomesTotal     *prometheus.CounterVec   // Verification results by operation and verified flag
}

// New registers the metrics with reg. A nil reg creates unregistered collectors,
// which is what tests use.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secureid_operations_total",
			Help: "Total identity verification client operations by operation and result code",
		}, []string{"operation", "code"}),

		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "secureid_operation_duration_seconds",
			Help:    "Duration of identity verification client operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		OutcomesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secureid_verification_outcomes_total",
			Help: "Verification attempts by operation and whether the identity ended up verified",
		}, []string{"operation", "verified"}),
	}
}

// ObserveOperation records one call. code is "ok" for success.
func (m *Metrics) ObserveOperation(operation, code string, durationSeconds float64) {
	m.OperationsTotal.WithLabelValues(operation, code).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(durationSeconds)
}

func (m *Metrics) RecordOutcome(operation string, verified bool) {
	label := "false"
	if verified {
		label = "true"
	}
	m.OutcomesTotal.WithLabelValues(operation, label).Inc()
}
