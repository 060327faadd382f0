package catalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// CategoryResult is the outcome of a category mutation.
type CategoryResult struct {
	Category   domain.Category
	Reassigned []string
}

// Categories returns the stored categories.
func (s *Service) Categories(ctx context.Context) []domain.Category {
	return s.cache.Snapshot().Categories
}

// MenuCategories returns the categories with the synthetic "All" entry first.
func (s *Service) MenuCategories(ctx context.Context) []domain.Category {
	return domain.MenuCategories(s.Categories(ctx))
}

// SaveCategory creates or renames a category. Renames move every prompt of
// the old name to the new one.
func (s *Service) SaveCategory(ctx context.Context, cat domain.Category) (*CategoryResult, error) {
	caller := ctxutil.CallerFromCtx(ctx)

	t, err := s.mutate(ctx, "save_category", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.SaveCategory(st, caller, cat)
	})
	if t.Category == nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category saved",
		slog.String("category_id", t.Category.ID),
		slog.String("name", t.Category.Name),
		slog.Int("reassigned", len(t.Reassigned)),
	)
	return &CategoryResult{Category: *t.Category, Reassigned: t.Reassigned}, err
}

// DeleteCategory removes a category and moves its prompts to Uncategorized.
// confirmed must be true.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string, confirmed bool) (*CategoryResult, error) {
	caller := ctxutil.CallerFromCtx(ctx)

	t, err := s.mutate(ctx, "delete_category", func(st lifecycle.State) (lifecycle.Transition, error) {
		return s.engine.DeleteCategory(st, caller, categoryID, confirmed)
	})
	if t.Category == nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category deleted",
		slog.String("category_id", categoryID),
		slog.Int("reassigned", len(t.Reassigned)),
	)
	return &CategoryResult{Category: *t.Category, Reassigned: t.Reassigned}, err
}
