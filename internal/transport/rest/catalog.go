package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/service/catalog"
)

type catalogService interface {
	Categories(ctx context.Context) []domain.Category
	MenuCategories(ctx context.Context) []domain.Category
	SaveCategory(ctx context.Context, cat domain.Category) (*catalog.CategoryResult, error)
	DeleteCategory(ctx context.Context, categoryID string, confirmed bool) (*catalog.CategoryResult, error)
	Prompts(ctx context.Context, filter domain.PromptFilter) []domain.Prompt
	Prompt(ctx context.Context, promptID string) (*domain.Prompt, error)
	Content(ctx context.Context, promptID string) (string, error)
	ToggleHidden(ctx context.Context, promptID string) (*domain.Prompt, error)
	SavePrompt(ctx context.Context, input catalog.SavePromptInput) (*domain.Prompt, error)
	DeletePrompt(ctx context.Context, promptID string) error
}

// CatalogHandler serves category and prompt endpoints.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type promptView struct {
	domain.Prompt
	DisplayCategory string `json:"displayCategory"`
	Accent          string `json:"accent"`
}

type promptResponse struct {
	Prompt  promptView `json:"prompt"`
	Warning string     `json:"warning,omitempty"`
}

type categoryResponse struct {
	Category   domain.Category `json:"category"`
	Reassigned []string        `json:"reassigned"`
	Warning    string          `json:"warning,omitempty"`
}

type contentResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Warning string `json:"warning,omitempty"`
}

type savePromptRequest struct {
	ID string `json:"id"`
	domain.PromptFields
	IsHidden bool `json:"isHidden"`
}

func toPromptView(categories []domain.Category, p domain.Prompt) promptView {
	return promptView{
		Prompt:          p,
		DisplayCategory: domain.DisplayCategory(categories, p),
		Accent:          domain.AccentColor(categories, p),
	}
}

func toCategoryResponse(res *catalog.CategoryResult, err error) categoryResponse {
	reassigned := res.Reassigned
	if reassigned == nil {
		reassigned = []string{}
	}
	return categoryResponse{Category: res.Category, Reassigned: reassigned, Warning: warning(err)}
}

// Menu handles GET /categories.
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.MenuCategories(r.Context()))
}

// ListPrompts handles GET /prompts?category=&q=.
func (h *CatalogHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	prompts := h.svc.Prompts(r.Context(), domain.PromptFilter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	})

	categories := h.svc.Categories(r.Context())
	views := make([]promptView, 0, len(prompts))
	for _, p := range prompts {
		views = append(views, toPromptView(categories, p))
	}
	writeJSON(w, http.StatusOK, views)
}

// GetPrompt handles GET /prompts/{id}.
func (h *CatalogHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Prompt(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPromptView(h.svc.Categories(r.Context()), *p))
}

// GetContent handles GET /prompts/{id}/content.
func (h *CatalogHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	content, err := h.svc.Content(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{ID: id, Content: content})
}

// SaveCategory handles PUT /categories.
func (h *CatalogHandler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	var req domain.Category
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.SaveCategory(r.Context(), req)
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(res, err))
}

// DeleteCategory handles DELETE /categories/{id}?confirm=true.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	res, err := h.svc.DeleteCategory(r.Context(), r.PathValue("id"), confirmed)
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(res, err))
}

// SavePrompt handles PUT /prompts. An empty id creates a new prompt.
func (h *CatalogHandler) SavePrompt(w http.ResponseWriter, r *http.Request) {
	var req savePromptRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.SavePrompt(r.Context(), catalog.SavePromptInput{
		ID:       req.ID,
		Fields:   req.PromptFields,
		IsHidden: req.IsHidden,
	})
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, promptResponse{
		Prompt:  toPromptView(h.svc.Categories(r.Context()), *p),
		Warning: warning(err),
	})
}

// ToggleVisibility handles POST /prompts/{id}/visibility.
func (h *CatalogHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ToggleHidden(r.Context(), r.PathValue("id"))
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, promptResponse{
		Prompt:  toPromptView(h.svc.Categories(r.Context()), *p),
		Warning: warning(err),
	})
}

// DeletePrompt handles DELETE /prompts/{id}.
func (h *CatalogHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeletePrompt(r.Context(), r.PathValue("id"))
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "deleted", Warning: warning(err)})
}
