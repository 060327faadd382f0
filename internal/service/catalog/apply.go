package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/internal/metrics"
)

// mutate computes a transition from the current cache state and applies it.
// Mutations are serialized; reads keep going against the cache.
func (s *Service) mutate(ctx context.Context, op string, fn func(lifecycle.State) (lifecycle.Transition, error)) (lifecycle.Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := fn(s.cache.Snapshot())
	if err != nil {
		metrics.RecordOperation(op, outcome(err))
		return lifecycle.Transition{}, err
	}

	err = s.apply(ctx, op, t)
	metrics.RecordOperation(op, outcome(err))
	return t, err
}

// apply issues every write of t, then commits t.Next. All writes are attempted
// even when an earlier one fails. Optimistic transitions are committed
// regardless and report failures as *domain.PersistError; other transitions
// are dropped on failure.
func (s *Service) apply(ctx context.Context, op string, t lifecycle.Transition) error {
	var failures []domain.WriteFailure
	for _, w := range t.Writes {
		if err := s.write(ctx, w); err != nil {
			failures = append(failures, domain.WriteFailure{Collection: w.Collection, Op: w.Op, ID: w.ID, Err: err})
			metrics.RecordWriteFailure(w.Collection.String(), w.Op.String())
			s.log.WarnContext(ctx, "store write failed",
				slog.String("op", op),
				slog.String("collection", w.Collection.String()),
				slog.String("write", w.Op.String()),
				slog.String("id", w.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	if len(failures) > 0 && !t.Optimistic {
		return fmt.Errorf("%s: %w", op, errors.Join(failureErrs(failures)...))
	}

	s.cache.Commit(t.Next)
	metrics.SetPendingSuggestions(len(t.Next.Suggestions))

	if len(failures) > 0 {
		return &domain.PersistError{Failures: failures}
	}
	return nil
}

func (s *Service) write(ctx context.Context, w lifecycle.Write) error {
	switch w.Collection {
	case domain.CollectionCategories:
		switch w.Op {
		case domain.WriteInsert:
			return s.categories.Insert(ctx, *w.Category)
		case domain.WriteUpsert:
			return s.categories.Upsert(ctx, *w.Category)
		case domain.WriteDelete:
			return s.categories.Delete(ctx, w.ID)
		}
	case domain.CollectionPrompts:
		switch w.Op {
		case domain.WriteInsert:
			return s.prompts.Insert(ctx, *w.Prompt)
		case domain.WriteUpsert:
			return s.prompts.Upsert(ctx, *w.Prompt)
		case domain.WriteUpdate:
			return s.prompts.Update(ctx, w.ID, w.Patch)
		case domain.WriteDelete:
			return s.prompts.Delete(ctx, w.ID)
		}
	case domain.CollectionSuggestions:
		switch w.Op {
		case domain.WriteInsert:
			return s.suggestions.Insert(ctx, *w.Suggestion)
		case domain.WriteDelete:
			return s.suggestions.Delete(ctx, w.ID)
		}
	}
	return fmt.Errorf("unsupported write %s on %s", w.Op, w.Collection)
}

func failureErrs(failures []domain.WriteFailure) []error {
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f.Err
	}
	return errs
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrPersist):
		return metrics.OutcomePersist
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
