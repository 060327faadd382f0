// Package backup exports the catalog to a JSON document and imports it back.
package backup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/cache"
	"github.com/heartmarshall/prompt-vault/internal/domain"
)

type catalogService interface {
	Categories(ctx context.Context) []domain.Category
	Prompts(ctx context.Context, filter domain.PromptFilter) []domain.Prompt
	Restore(ctx context.Context, categories []domain.Category, prompts []domain.Prompt) (cache.Status, error)
}

// Sink stores encoded backup documents under a name.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
}

// Service provides backup export and import.
type Service struct {
	catalog catalogService
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new Backup service.
func NewService(log *slog.Logger, catalog catalogService) *Service {
	return &Service{
		catalog: catalog,
		now:     time.Now,
		log:     log.With("service", "backup"),
	}
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Categories int
	Prompts    int
	Status     cache.Status
}
