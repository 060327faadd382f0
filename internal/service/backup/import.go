package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// Import validates a backup document and upserts its categories and prompts.
// Nothing is written when the document is invalid. Store failures are
// returned as *domain.PersistError together with the result.
func (s *Service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	if !ctxutil.IsAdmin(ctx) {
		return nil, domain.ErrForbidden
	}

	b, err := Decode(data)
	if err != nil {
		s.log.WarnContext(ctx, "backup rejected", slog.String("error", err.Error()))
		return nil, err
	}

	status, err := s.catalog.Restore(ctx, b.Categories, b.Prompts)
	if err != nil && !errors.Is(err, domain.ErrPersist) {
		return nil, fmt.Errorf("restore backup: %w", err)
	}

	s.log.InfoContext(ctx, "backup imported",
		slog.String("timestamp", b.Timestamp),
		slog.Int("categories", len(b.Categories)),
		slog.Int("prompts", len(b.Prompts)),
	)

	return &ImportResult{
		Categories: len(b.Categories),
		Prompts:    len(b.Prompts),
		Status:     status,
	}, err
}

// Fetch reads the named document from sink and imports it.
func (s *Service) Fetch(ctx context.Context, sink Sink, name string) (*ImportResult, error) {
	if !ctxutil.IsAdmin(ctx) {
		return nil, domain.ErrForbidden
	}

	data, err := sink.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read backup %s: %w", name, err)
	}
	return s.Import(ctx, data)
}
