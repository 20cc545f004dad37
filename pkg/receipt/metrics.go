package receipt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operations tracks store operations by backend and operation
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chute_receipt_operations_total",
			Help: "Total number of receipt store operations",
		},
		[]string{"backend", "operation"}, // "get", "set", "remove"
	)

	// Errors tracks failed store operations by backend
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chute_receipt_errors_total",
			Help: "Total number of receipt store errors",
		},
		[]string{"backend"},
	)
)

func observe(backend, operation string, err error) {
	Operations.WithLabelValues(backend, operation).Inc()
	if err != nil {
		Errors.WithLabelValues(backend).Inc()
	}
}
