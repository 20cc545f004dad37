// Package metrics is the reference for the Prometheus metrics of the chute
// client. Metrics are defined with promauto in the packages that update them
// (client, pagination, receipt, asset); this package exposes the registry and
// the HTTP handler the CLI serves them with.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Registry is the default Prometheus registry used by the chute client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Names of all chute metrics, for dashboards and tests.
var Names = []string{
	"chute_requests_total",
	"chute_request_duration_seconds",
	"chute_errors_total",
	"chute_collection_fetches_total",
	"chute_collection_fetch_errors_total",
	"chute_collection_items_fetched_total",
	"chute_receipt_operations_total",
	"chute_receipt_errors_total",
	"chute_hearts_total",
	"chute_hearts_rejected_total",
}

// Handler returns the /metrics handler for the default gatherer.
func Handler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - chute_requests_total{route, status} (Counter): Requests by route template and HTTP status
//   - chute_request_duration_seconds{route} (Histogram): Request duration by route template
//   - chute_errors_total{class} (Counter): Errors by class (client, server, network, decode)
//
// Collection Metrics (pkg/pagination):
//   - chute_collection_fetches_total{direction, mode} (Counter): Fetches by direction (initial, next, previous) and mode (cursor, page)
//   - chute_collection_fetch_errors_total{direction} (Counter): Failed fetches
//   - chute_collection_items_fetched_total (Counter): Items merged into collections
//
// Receipt Metrics (pkg/receipt):
//   - chute_receipt_operations_total{backend, operation} (Counter): Store operations
//   - chute_receipt_errors_total{backend} (Counter): Failed store operations
//
// Heart Metrics (pkg/asset):
//   - chute_hearts_total{action} (Counter): Hearts created and removed
//   - chute_hearts_rejected_total{action} (Counter): Heart changes refused by local state
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   sum(rate(chute_errors_total[5m])) by (class)
//
//   # P95 Request Latency per route
//   histogram_quantile(0.95, sum(rate(chute_request_duration_seconds_bucket[5m])) by (le, route))
//
//   # Share of page-number fetches
//   sum(rate(chute_collection_fetches_total{mode="page"}[5m])) / sum(rate(chute_collection_fetches_total[5m]))
