package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/service/catalog"
)

type suggestionService interface {
	Submit(ctx context.Context, input catalog.SubmitInput) (*domain.Suggestion, error)
	Approve(ctx context.Context, suggestionID string) (*domain.Prompt, error)
	ReviseAndApprove(ctx context.Context, input catalog.ReviseInput) (*domain.Prompt, error)
	Reject(ctx context.Context, suggestionID string) error
	Suggestions(ctx context.Context) ([]domain.Suggestion, error)
	PendingCount(ctx context.Context) (int, error)
	Categories(ctx context.Context) []domain.Category
}

// SuggestionHandler serves the suggestion review queue.
type SuggestionHandler struct {
	svc suggestionService
	log *slog.Logger
}

// NewSuggestionHandler creates a SuggestionHandler.
func NewSuggestionHandler(svc suggestionService, logger *slog.Logger) *SuggestionHandler {
	return &SuggestionHandler{svc: svc, log: logger.With("handler", "suggestions")}
}

type countResponse struct {
	Count int `json:"count"`
}

// Submit handles POST /suggestions.
func (h *SuggestionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.PromptFields
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.Submit(r.Context(), catalog.SubmitInput{Fields: req})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// List handles GET /suggestions.
func (h *SuggestionHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Suggestions(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Count handles GET /suggestions/count.
func (h *SuggestionHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.PendingCount(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: n})
}

// Approve handles POST /suggestions/{id}/approve.
func (h *SuggestionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Approve(r.Context(), r.PathValue("id"))
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	h.writePrompt(w, r, p, err)
}

// Revise handles POST /suggestions/{id}/revise. The body holds the fields
// to override before promotion.
func (h *SuggestionHandler) Revise(w http.ResponseWriter, r *http.Request) {
	var edits domain.FieldEdits
	if err := decodeJSON(w, r, &edits); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.ReviseAndApprove(r.Context(), catalog.ReviseInput{
		SuggestionID: r.PathValue("id"),
		Edits:        edits,
	})
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	h.writePrompt(w, r, p, err)
}

// Reject handles DELETE /suggestions/{id}.
func (h *SuggestionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Reject(r.Context(), r.PathValue("id"))
	if failed(err) {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "rejected", Warning: warning(err)})
}

func (h *SuggestionHandler) writePrompt(w http.ResponseWriter, r *http.Request, p *domain.Prompt, err error) {
	writeJSON(w, http.StatusOK, promptResponse{
		Prompt:  toPromptView(h.svc.Categories(r.Context()), *p),
		Warning: warning(err),
	})
}
