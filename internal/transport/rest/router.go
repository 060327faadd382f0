package rest

import (
	"net/http"

	"github.com/heartmarshall/prompt-vault/internal/transport/middleware"
)

// Handlers groups the endpoint handlers mounted by NewMux.
type Handlers struct {
	Health      *HealthHandler
	Catalog     *CatalogHandler
	Suggestions *SuggestionHandler
	Session     *SessionHandler
	Admin       *AdminHandler
}

// Limits holds the throttles for the anonymous write routes. A nil entry
// leaves the route unthrottled.
type Limits struct {
	Submit middleware.Middleware
	Login  middleware.Middleware
}

func limit(m middleware.Middleware, fn http.HandlerFunc) http.Handler {
	if m == nil {
		return fn
	}
	return m(fn)
}

// NewMux registers every route. Admin routes are wrapped in
// middleware.AdminOnly.
func NewMux(h Handlers, limits Limits) *http.ServeMux {
	mux := http.NewServeMux()

	admin := func(fn http.HandlerFunc) http.Handler { return middleware.AdminOnly(fn) }

	// Health.
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	// Public catalog.
	mux.HandleFunc("GET /categories", h.Catalog.Menu)
	mux.HandleFunc("GET /prompts", h.Catalog.ListPrompts)
	mux.HandleFunc("GET /prompts/{id}", h.Catalog.GetPrompt)
	mux.HandleFunc("GET /prompts/{id}/content", h.Catalog.GetContent)
	mux.Handle("POST /suggestions", limit(limits.Submit, h.Suggestions.Submit))
	mux.Handle("POST /session/login", limit(limits.Login, h.Session.Login))

	// Review queue.
	mux.Handle("GET /suggestions", admin(h.Suggestions.List))
	mux.Handle("GET /suggestions/count", admin(h.Suggestions.Count))
	mux.Handle("POST /suggestions/{id}/approve", admin(h.Suggestions.Approve))
	mux.Handle("POST /suggestions/{id}/revise", admin(h.Suggestions.Revise))
	mux.Handle("DELETE /suggestions/{id}", admin(h.Suggestions.Reject))

	// Catalog administration.
	mux.Handle("PUT /categories", admin(h.Catalog.SaveCategory))
	mux.Handle("DELETE /categories/{id}", admin(h.Catalog.DeleteCategory))
	mux.Handle("PUT /prompts", admin(h.Catalog.SavePrompt))
	mux.Handle("DELETE /prompts/{id}", admin(h.Catalog.DeletePrompt))
	mux.Handle("POST /prompts/{id}/visibility", admin(h.Catalog.ToggleVisibility))

	// Maintenance.
	mux.Handle("POST /admin/refresh", admin(h.Admin.Refresh))
	mux.Handle("POST /admin/sync-seed", admin(h.Admin.SyncSeed))
	mux.Handle("GET /admin/backup", admin(h.Admin.ExportBackup))
	mux.Handle("POST /admin/backup", admin(h.Admin.ImportBackup))
	mux.Handle("POST /admin/backup/archive", admin(h.Admin.ArchiveBackup))

	return mux
}
