package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// Submit records an anonymous suggestion. The cache is only updated once the
// store accepted the insert.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.Suggestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	t, err := s.mutate(ctx, "submit", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.Submit(st, input.Fields), nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit suggestion: %w", err)
	}

	s.log.InfoContext(ctx, "suggestion submitted",
		slog.String("suggestion_id", t.Suggestion.ID),
		slog.String("category", t.Suggestion.Category),
	)
	return t.Suggestion, nil
}

// Approve promotes a pending suggestion verbatim. A *domain.PersistError is
// returned together with the new prompt when a store write failed.
func (s *Service) Approve(ctx context.Context, suggestionID string) (*domain.Prompt, error) {
	caller := ctxutil.CallerFromCtx(ctx)

	t, err := s.mutate(ctx, "approve", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.Approve(st, caller, suggestionID)
	})
	if t.Prompt == nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "suggestion approved",
		slog.String("suggestion_id", suggestionID),
		slog.String("prompt_id", t.Prompt.ID),
	)
	return t.Prompt, err
}

// ReviseAndApprove promotes a pending suggestion after applying edits.
func (s *Service) ReviseAndApprove(ctx context.Context, input ReviseInput) (*domain.Prompt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	caller := ctxutil.CallerFromCtx(ctx)

	t, err := s.mutate(ctx, "revise", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.ReviseAndApprove(st, caller, input.SuggestionID, input.Edits)
	})
	if t.Prompt == nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "suggestion revised and approved",
		slog.String("suggestion_id", input.SuggestionID),
		slog.String("prompt_id", t.Prompt.ID),
	)
	return t.Prompt, err
}

// Reject deletes a suggestion. Rejecting an unknown id is not an error.
func (s *Service) Reject(ctx context.Context, suggestionID string) error {
	caller := ctxutil.CallerFromCtx(ctx)

	_, err := s.mutate(ctx, "reject", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.Reject(st, caller, suggestionID)
	})
	if err != nil && !isPersist(err) {
		return err
	}

	s.log.InfoContext(ctx, "suggestion rejected", slog.String("suggestion_id", suggestionID))
	return err
}

// Suggestions returns the pending suggestions, newest first.
func (s *Service) Suggestions(ctx context.Context) ([]domain.Suggestion, error) {
	if !ctxutil.IsAdmin(ctx) {
		return nil, domain.ErrForbidden
	}
	st := s.cache.Snapshot()
	if st.Suggestions == nil {
		return []domain.Suggestion{}, nil
	}
	return st.Suggestions, nil
}

// PendingCount returns the number of pending suggestions.
func (s *Service) PendingCount(ctx context.Context) (int, error) {
	list, err := s.Suggestions(ctx)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}
