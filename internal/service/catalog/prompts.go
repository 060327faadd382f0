package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// Prompts returns the prompts visible to the caller under the filter.
func (s *Service) Prompts(ctx context.Context, filter domain.PromptFilter) []domain.Prompt {
	return s.engine.Visible(s.cache.Snapshot(), ctxutil.CallerFromCtx(ctx), filter)
}

// Prompt returns a single prompt. Hidden prompts are reported as not found to
// non-admin callers.
func (s *Service) Prompt(ctx context.Context, promptID string) (*domain.Prompt, error) {
	caller := ctxutil.CallerFromCtx(ctx)
	for _, p := range s.cache.Snapshot().Prompts {
		if p.ID != promptID {
			continue
		}
		if p.IsHidden && !caller.IsAdmin {
			break
		}
		return &p, nil
	}
	return nil, fmt.Errorf("prompt %s: %w", promptID, domain.ErrNotFound)
}

// Content returns the prompt body, generating a placeholder when none is stored.
func (s *Service) Content(ctx context.Context, promptID string) (string, error) {
	p, err := s.Prompt(ctx, promptID)
	if err != nil {
		return "", err
	}
	return domain.EffectiveContent(*p), nil
}

// ToggleHidden flips the visibility of a prompt.
func (s *Service) ToggleHidden(ctx context.Context, promptID string) (*domain.Prompt, error) {
	caller := ctxutil.CallerFromCtx(ctx)

	t, err := s.mutate(ctx, "toggle_hidden", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.ToggleHidden(st, caller, promptID)
	})
	if t.Prompt == nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "prompt visibility changed",
		slog.String("prompt_id", promptID),
		slog.Bool("hidden", t.Prompt.IsHidden),
	)
	return t.Prompt, err
}

// SavePrompt creates or edits a prompt.
func (s *Service) SavePrompt(ctx context.Context, input SavePromptInput) (*domain.Prompt, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	caller := ctxutil.CallerFromCtx(ctx)

	t, err := s.mutate(ctx, "save_prompt", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.SavePrompt(st, caller, lifecycle.PromptInput{
			ID:       input.ID,
			Fields:   input.Fields,
			IsHidden: input.IsHidden,
		})
	})
	if t.Prompt == nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "prompt saved", slog.String("prompt_id", t.Prompt.ID))
	return t.Prompt, err
}

// DeletePrompt hard-deletes a prompt.
func (s *Service) DeletePrompt(ctx context.Context, promptID string) error {
	caller := ctxutil.CallerFromCtx(ctx)

	_, err := s.mutate(ctx, "delete_prompt", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.DeletePrompt(st, caller, promptID)
	})
	if err != nil && !isPersist(err) {
		return err
	}

	s.log.InfoContext(ctx, "prompt deleted", slog.String("prompt_id", promptID))
	return err
}

func isPersist(err error) bool {
	return errors.Is(err, domain.ErrPersist)
}
