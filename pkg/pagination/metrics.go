package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectionFetches counts collection fetches by direction ("initial", "next",
	// "previous") and pagination mode.
	CollectionFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chute_collection_fetches_total",
			Help: "Total number of collection fetches by direction and mode",
		},
		[]string{"direction", "mode"},
	)

	// CollectionFetchErrors counts failed collection fetches by direction.
	CollectionFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chute_collection_fetch_errors_total",
			Help: "Total number of failed collection fetches by direction",
		},
		[]string{"direction"},
	)

	// CollectionItemsFetched counts items merged into collections.
	CollectionItemsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chute_collection_items_fetched_total",
			Help: "Total number of items merged into collections",
		},
	)
)
