package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the simulator server.
type Metrics struct {
	OperationsTotal  *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec
	AuthFailures     prometheus.Counter
}

// New creates the server metrics and registers them with reg. A nil reg
// leaves them unregistered, which tests rely on.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secureid_simulator_operations_total",
			Help: "GraphQL operations served, by operation name and error type",
		}, []string{"operation", "error_type"}),
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "secureid_simulator_operation_duration_seconds",
			Help:    "Latency of GraphQL operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "secureid_simulator_auth_failures_total",
			Help: "Requests rejected for a missing or invalid token",
		}),
	}
}

// ObserveOperation records one served operation. errorType is empty on success.
func (m *Metrics) ObserveOperation(operation, errorType string, started time.Time) {
	if m == nil {
		return
	}
	if errorType == "" {
		errorType = "none"
	}
	m.OperationsTotal.WithLabelValues(operation, errorType).Inc()
	m.OperationLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) IncrementAuthFailures() {
	if m == nil {
		return
	}
	m.AuthFailures.Inc()
}
