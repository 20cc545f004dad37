package asset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HeartsTotal tracks successful heart changes by action
	HeartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chute_hearts_total",
			Help: "Total number of hearts created or removed",
		},
		[]string{"action"}, // "heart", "unheart"
	)

	// HeartsRejected tracks heart changes refused by local receipt state
	HeartsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chute_hearts_rejected_total",
			Help: "Total number of heart changes rejected without a request",
		},
		[]string{"action"},
	)
)
