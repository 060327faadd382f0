package backup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// Export snapshots the cached categories and prompts, hidden ones included.
// Suggestions are not part of a backup.
func (s *Service) Export(ctx context.Context) (*domain.Backup, error) {
	if !ctxutil.IsAdmin(ctx) {
		return nil, domain.ErrForbidden
	}

	b := &domain.Backup{
		Timestamp:  s.now().UTC().Format(timestampLayout),
		Categories: s.catalog.Categories(ctx),
		Prompts:    s.catalog.Prompts(ctx, domain.PromptFilter{}),
	}
	if b.Categories == nil {
		b.Categories = []domain.Category{}
	}

	s.log.InfoContext(ctx, "backup exported",
		slog.Int("categories", len(b.Categories)),
		slog.Int("prompts", len(b.Prompts)),
	)
	return b, nil
}

// Archive exports the catalog and writes it to sink. It returns the name the
// document was stored under.
func (s *Service) Archive(ctx context.Context, sink Sink) (string, error) {
	b, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	data, err := Encode(b)
	if err != nil {
		return "", err
	}

	name := FileName(s.now())
	if err := sink.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("store backup %s: %w", name, err)
	}

	s.log.InfoContext(ctx, "backup archived", slog.String("name", name), slog.Int("bytes", len(data)))
	return name, nil
}
