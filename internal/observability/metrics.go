// Package observability provides Prometheus metrics for the NDA workflow.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	serviceName string

	// lifecycleTotal counts ledger/approval operations by outcome.
	lifecycleTotal *prometheus.CounterVec
	// decisionsTotal counts access evaluations by resulting status.
	decisionsTotal *prometheus.CounterVec
}

// New registers the workflow metrics on the default registry. The service
// name prefixes every metric.
func New(serviceName string) *Metrics {
	m := &Metrics{serviceName: serviceName}

	m.lifecycleTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_lifecycle_total", serviceName),
			Help: "NDA lifecycle transitions by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	m.decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_access_decisions_total", serviceName),
			Help: "Access evaluations by resulting status",
		},
		[]string{"status"},
	)

	prometheus.MustRegister(m.lifecycleTotal, m.decisionsTotal)
	return m
}

// Nil receivers are allowed so metrics stay optional in tests.

func (m *Metrics) RecordLifecycle(operation, outcome string) {
	if m == nil {
		return
	}
	m.lifecycleTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) RecordDecision(status string) {
	if m == nil {
		return
	}
	m.decisionsTotal.WithLabelValues(status).Inc()
}
