package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/prompt-vault/internal/cache"
	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/internal/metrics"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// Refresh reloads the three collections from the store. On any fetch error
// the cache is left untouched and the error is returned. Empty categories or
// prompts fall back to the bundled dataset.
func (s *Service) Refresh(ctx context.Context) (cache.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

func (s *Service) refresh(ctx context.Context) (cache.Status, error) {
	var fetched lifecycle.State

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.categories.List(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		fetched.Categories = cats
		return nil
	})
	g.Go(func() error {
		prompts, err := s.prompts.List(gctx)
		if err != nil {
			return fmt.Errorf("list prompts: %w", err)
		}
		fetched.Prompts = prompts
		return nil
	})
	g.Go(func() error {
		suggestions, err := s.suggestions.List(gctx, domain.SuggestionPending)
		if err != nil {
			return fmt.Errorf("list suggestions: %w", err)
		}
		fetched.Suggestions = suggestions
		return nil
	})

	if err := g.Wait(); err != nil {
		metrics.RecordRefresh(metrics.OutcomeError)
		s.log.WarnContext(ctx, "catalog refresh failed, keeping cached state",
			slog.String("error", err.Error()),
		)
		return s.cache.Status(), fmt.Errorf("refresh catalog: %w", err)
	}

	status := s.cache.Replace(fetched, s.seed, s.now().UTC())
	if status.Categories == cache.SourceSeed {
		metrics.RecordSeedFallback(domain.CollectionCategories.String())
	}
	if status.Prompts == cache.SourceSeed {
		metrics.RecordSeedFallback(domain.CollectionPrompts.String())
	}
	metrics.RecordRefresh(metrics.OutcomeOK)
	metrics.SetPendingSuggestions(len(fetched.Suggestions))

	s.log.InfoContext(ctx, "catalog refreshed",
		slog.String("categories", string(status.Categories)),
		slog.String("prompts", string(status.Prompts)),
		slog.Int("suggestions", len(fetched.Suggestions)),
	)
	return status, nil
}

// Restore upserts the given categories and prompts, each collection in its own
// transaction, then refreshes the cache. A failed collection does not stop
// the other one; failures are reported as *domain.PersistError.
func (s *Service) Restore(ctx context.Context, categories []domain.Category, prompts []domain.Prompt) (cache.Status, error) {
	if !ctxutil.IsAdmin(ctx) {
		return cache.Status{}, domain.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status, failures, refreshErr := s.restore(ctx, categories, prompts)

	var err error
	if len(failures) > 0 {
		err = &domain.PersistError{Failures: failures}
	}
	return status, errors.Join(err, refreshErr)
}

// restore performs the upserts and the refresh. Store failures and the
// refresh error are returned separately. The caller holds s.mu.
func (s *Service) restore(ctx context.Context, categories []domain.Category, prompts []domain.Prompt) (cache.Status, []domain.WriteFailure, error) {
	var failures []domain.WriteFailure
	if len(categories) > 0 {
		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			return s.categories.Upsert(ctx, categories...)
		})
		if err != nil {
			failures = append(failures, s.restoreFailure(ctx, domain.CollectionCategories, err))
		}
	}
	if len(prompts) > 0 {
		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			return s.prompts.Upsert(ctx, prompts...)
		})
		if err != nil {
			failures = append(failures, s.restoreFailure(ctx, domain.CollectionPrompts, err))
		}
	}

	status, refreshErr := s.refresh(ctx)

	s.log.InfoContext(ctx, "catalog restored",
		slog.Int("categories", len(categories)),
		slog.Int("prompts", len(prompts)),
		slog.Int("failed_collections", len(failures)),
	)
	return status, failures, refreshErr
}

// SyncSeed writes the bundled dataset to the store and refreshes the cache.
// Store failures are reported as errors, not as warnings.
func (s *Service) SyncSeed(ctx context.Context) (cache.Status, error) {
	if !ctxutil.IsAdmin(ctx) {
		return cache.Status{}, domain.ErrForbidden
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	status, failures, refreshErr := s.restore(ctx, s.seed.Categories, s.seed.Prompts)
	err := errors.Join(append(failureErrs(failures), refreshErr)...)
	if err != nil {
		return status, fmt.Errorf("sync seed: %w", err)
	}
	return status, nil
}

// RunRefresher refreshes the cache every interval until ctx is cancelled.
// A non-positive interval disables it.
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Errors are logged by refresh; the cache stays as it was.
			_, _ = s.Refresh(ctx)
		}
	}
}

func (s *Service) restoreFailure(ctx context.Context, c domain.Collection, err error) domain.WriteFailure {
	metrics.RecordWriteFailure(c.String(), domain.WriteUpsert.String())
	s.log.WarnContext(ctx, "restore upsert failed",
		slog.String("collection", c.String()),
		slog.String("error", err.Error()),
	)
	return domain.WriteFailure{Collection: c, Op: domain.WriteUpsert, Err: err}
}
