package graphql

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds transport metrics. A nil *Metrics records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheHitsTotal  *prometheus.CounterVec
	CacheMissTotal  *prometheus.CounterVec
}

// NewMetrics registers transport metrics with reg. A nil reg creates unregistered
// collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secureid_graphql_requests_total",
			Help: "Total GraphQL requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "secureid_graphql_request_duration_seconds",
			Help:    "Duration of GraphQL requests by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		CacheHitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secureid_graphql_cache_hits_total",
			Help: "Total cache-only reads answered from the cache",
		}, []string{"operation"}),
		CacheMissTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secureid_graphql_cache_misses_total",
			Help: "Total cache-only reads with no cached entry",
		}, []string{"operation"}),
	}
}

func (m *Metrics) observeRequest(operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		var reqErr *RequestError
		if errors.As(err, &reqErr) && len(reqErr.GraphQLErrors) > 0 {
			outcome = "rejected"
		}
	}
	m.RequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) recordCache(operation string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(operation).Inc()
		return
	}
	m.CacheMissTotal.WithLabelValues(operation).Inc()
}
