package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/cache"
)

// storePinger checks the catalog store connection.
type storePinger interface {
	Ping(ctx context.Context) error
}

type cacheReporter interface {
	CacheStatus() cache.Status
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	store   storePinger
	catalog cacheReporter
	version string
}

// NewHealthHandler creates a HealthHandler. store may be nil for the
// in-memory driver.
func NewHealthHandler(store storePinger, catalog cacheReporter, version string) *HealthHandler {
	return &HealthHandler{store: store, catalog: catalog, version: version}
}

// HealthResponse is the JSON response for /health and /health/ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings the store: 200 if OK, 503 if not.
// The catalog is always readable from the cache, so a missing store is ready.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check with store latency, cache provenance and
// version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		err := h.store.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{
				Status:  "ok",
				Latency: latency.String(),
			}
		}
	}

	if h.catalog != nil {
		st := h.catalog.CacheStatus()
		comp := CompStatus{
			Status: "ok",
			Detail: "categories=" + string(st.Categories) + " prompts=" + string(st.Prompts),
		}
		if st.Categories == cache.SourceSeed || st.Prompts == cache.SourceSeed {
			comp.Status = "degraded"
		}
		components["catalog"] = comp
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
