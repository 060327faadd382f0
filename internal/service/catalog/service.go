// Package catalog orchestrates the catalog: it asks the lifecycle engine for
// a transition, issues the resulting store writes and commits the next state
// to the local cache.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/cache"
	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/internal/lifecycle"
	"github.com/heartmarshall/prompt-vault/internal/seed"
)

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	Insert(ctx context.Context, c domain.Category) error
	Upsert(ctx context.Context, cs ...domain.Category) error
	Delete(ctx context.Context, id string) error
}

type promptRepo interface {
	List(ctx context.Context) ([]domain.Prompt, error)
	Insert(ctx context.Context, p domain.Prompt) error
	Upsert(ctx context.Context, ps ...domain.Prompt) error
	Update(ctx context.Context, id string, patch domain.PromptPatch) error
	Delete(ctx context.Context, id string) error
}

type suggestionRepo interface {
	List(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error)
	Insert(ctx context.Context, s domain.Suggestion) error
	Delete(ctx context.Context, id string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repos groups the three store collections.
type Repos struct {
	Categories  categoryRepo
	Prompts     promptRepo
	Suggestions suggestionRepo
}

// Service provides catalog operations.
type Service struct {
	categories  categoryRepo
	prompts     promptRepo
	suggestions suggestionRepo
	tx          txManager
	engine      *lifecycle.Engine
	cache       *cache.Cache
	seed        seed.Dataset
	now         func() time.Time
	log         *slog.Logger

	// mu serializes mutations so each transition is computed from the state
	// the previous one committed.
	mu sync.Mutex
}

// NewService creates a new Catalog service. tx may be nil when the store has
// no transactions.
func NewService(
	log *slog.Logger,
	repos Repos,
	tx txManager,
	engine *lifecycle.Engine,
	c *cache.Cache,
	ds seed.Dataset,
) *Service {
	if tx == nil {
		tx = noTx{}
	}
	return &Service{
		categories:  repos.Categories,
		prompts:     repos.Prompts,
		suggestions: repos.Suggestions,
		tx:          tx,
		engine:      engine,
		cache:       c,
		seed:        ds,
		now:         time.Now,
		log:         log.With("service", "catalog"),
	}
}

// CacheStatus reports where the cached collections came from.
func (s *Service) CacheStatus() cache.Status {
	return s.cache.Status()
}

type noTx struct{}

func (noTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
