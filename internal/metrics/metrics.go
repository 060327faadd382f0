// Package metrics provides Prometheus metrics for the catalog service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomePersist  = "persist_error"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// lifecycleOpsTotal counts catalog operations.
	// Labels:
	//   - op: operation name (e.g., "approve", "save_category")
	//   - outcome: ok, persist_error, rejected, error
	lifecycleOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_lifecycle_operations_total",
			Help: "Total number of catalog lifecycle operations by outcome",
		},
		[]string{"op", "outcome"},
	)

	// storeWriteFailuresTotal counts failed store writes.
	storeWriteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_store_write_failures_total",
			Help: "Total number of failed catalog store writes",
		},
		[]string{"collection", "op"},
	)

	// cacheRefreshesTotal counts full refreshes from the store.
	cacheRefreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_cache_refreshes_total",
			Help: "Total number of catalog cache refreshes by outcome",
		},
		[]string{"outcome"},
	)

	// seedFallbacksTotal counts collections served from the bundled seed after a refresh.
	seedFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_seed_fallbacks_total",
			Help: "Total number of refreshes where a collection fell back to the bundled seed",
		},
		[]string{"collection"},
	)

	pendingSuggestions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vault_pending_suggestions",
			Help: "Number of suggestions awaiting review",
		},
	)

	rateLimitedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_rate_limited_requests_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"scope"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vault_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(lifecycleOpsTotal)
	prometheus.MustRegister(storeWriteFailuresTotal)
	prometheus.MustRegister(cacheRefreshesTotal)
	prometheus.MustRegister(seedFallbacksTotal)
	prometheus.MustRegister(pendingSuggestions)
	prometheus.MustRegister(rateLimitedTotal)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

// RecordOperation records the outcome of a catalog operation.
func RecordOperation(op, outcome string) {
	lifecycleOpsTotal.WithLabelValues(op, outcome).Inc()
}

// RecordWriteFailure records a failed store write.
func RecordWriteFailure(collection, op string) {
	storeWriteFailuresTotal.WithLabelValues(collection, op).Inc()
}

// RecordRefresh records a cache refresh.
func RecordRefresh(outcome string) {
	cacheRefreshesTotal.WithLabelValues(outcome).Inc()
}

// RecordSeedFallback records that a collection was served from the seed.
func RecordSeedFallback(collection string) {
	seedFallbacksTotal.WithLabelValues(collection).Inc()
}

// SetPendingSuggestions sets the review queue gauge.
func SetPendingSuggestions(n int) {
	pendingSuggestions.Set(float64(n))
}

// RecordRateLimited records a request rejected by the rate limiter.
func RecordRateLimited(scope string) {
	rateLimitedTotal.WithLabelValues(scope).Inc()
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(method string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
