package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/cache"
	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/service/backup"
)

type maintenanceService interface {
	Refresh(ctx context.Context) (cache.Status, error)
	SyncSeed(ctx context.Context) (cache.Status, error)
}

type backupService interface {
	Export(ctx context.Context) (*domain.Backup, error)
	Import(ctx context.Context, data []byte) (*backup.ImportResult, error)
	Archive(ctx context.Context, sink backup.Sink) (string, error)
}

// AdminHandler serves maintenance and backup endpoints.
type AdminHandler struct {
	catalog maintenanceService
	backups backupService
	sink    backup.Sink
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler. sink may be nil, in which case
// server-side archiving is unavailable.
func NewAdminHandler(catalog maintenanceService, backups backupService, sink backup.Sink, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalog,
		backups: backups,
		sink:    sink,
		log:     logger.With("handler", "admin"),
	}
}

type cacheStatusResponse struct {
	Categories  string    `json:"categories"`
	Prompts     string    `json:"prompts"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

type importResponse struct {
	Categories int                 `json:"categories"`
	Prompts    int                 `json:"prompts"`
	Cache      cacheStatusResponse `json:"cache"`
	Warning    string              `json:"warning,omitempty"`
}

type archiveResponse struct {
	Name string `json:"name"`
}

func toCacheStatus(st cache.Status) cacheStatusResponse {
	return cacheStatusResponse{
		Categories:  string(st.Categories),
		Prompts:     string(st.Prompts),
		RefreshedAt: st.RefreshedAt,
	}
}

// Refresh handles POST /admin/refresh.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	st, err := h.catalog.Refresh(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCacheStatus(st))
}

// SyncSeed handles POST /admin/sync-seed.
func (h *AdminHandler) SyncSeed(w http.ResponseWriter, r *http.Request) {
	st, err := h.catalog.SyncSeed(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCacheStatus(st))
}

// ExportBackup handles GET /admin/backup. The document is served as an
// attachment named after the export time.
func (h *AdminHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	b, err := h.backups.Export(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	data, err := backup.Encode(b)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+backup.FileName(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// ImportBackup handles POST /admin/backup with a backup document as body.
func (h *AdminHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r, maxBackupBytes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.backups.Import(r.Context(), data)
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Categories: res.Categories,
		Prompts:    res.Prompts,
		Cache:      toCacheStatus(res.Status),
		Warning:    warning(err),
	})
}

// ArchiveBackup handles POST /admin/backup/archive. It writes a backup to
// the configured sink.
func (h *AdminHandler) ArchiveBackup(w http.ResponseWriter, r *http.Request) {
	if h.sink == nil {
		writeError(w, http.StatusNotImplemented, "no backup sink configured")
		return
	}

	name, err := h.backups.Archive(r.Context(), h.sink)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, archiveResponse{Name: name})
}
