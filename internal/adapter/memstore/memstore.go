// Package memstore is an in-process catalog store. It backs the memory store
// driver and the end-to-end tests.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// FaultFunc decides whether a write should fail. A nil result lets it through.
type FaultFunc func(c domain.Collection, op domain.WriteOp, id string) error

// Store holds the three catalog collections.
type Store struct {
	mu    sync.Mutex
	fault FaultFunc

	categories  collection[domain.Category]
	prompts     collection[domain.Prompt]
	suggestions collection[domain.Suggestion]
}

// New creates an empty store.
func New() *Store {
	return &Store{
		categories:  collection[domain.Category]{name: domain.CollectionCategories, id: func(c domain.Category) string { return c.ID }},
		prompts:     collection[domain.Prompt]{name: domain.CollectionPrompts, id: func(p domain.Prompt) string { return p.ID }},
		suggestions: collection[domain.Suggestion]{name: domain.CollectionSuggestions, id: func(s domain.Suggestion) string { return s.ID }},
	}
}

// SetFault installs a write fault injector. Pass nil to clear it.
func (s *Store) SetFault(fn FaultFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = fn
}

func (s *Store) check(c domain.Collection, op domain.WriteOp, id string) error {
	if s.fault == nil {
		return nil
	}
	if err := s.fault(c, op, id); err != nil {
		return fmt.Errorf("%s %s %s: %w", op, c, id, err)
	}
	return nil
}

// Categories returns the category collection.
func (s *Store) Categories() *Categories { return &Categories{s: s} }

// Prompts returns the prompt collection.
func (s *Store) Prompts() *Prompts { return &Prompts{s: s} }

// Suggestions returns the suggestion collection.
func (s *Store) Suggestions() *Suggestions { return &Suggestions{s: s} }

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// Categories is the category collection view of a Store.
type Categories struct{ s *Store }

// List returns all categories ordered by name.
func (r *Categories) List(ctx context.Context) ([]domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.s.categories.list()
	slices.SortStableFunc(out, func(a, b domain.Category) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// Insert adds a category. Returns domain.ErrAlreadyExists on a duplicate ID.
func (r *Categories) Insert(ctx context.Context, c domain.Category) error {
	return write(r.s, &r.s.categories, domain.WriteInsert, c.ID, func(col *collection[domain.Category]) error {
		return col.insert(c)
	})
}

// Upsert inserts or replaces categories by ID.
func (r *Categories) Upsert(ctx context.Context, cs ...domain.Category) error {
	return upsertAll(r.s, &r.s.categories, cs)
}

// Delete removes a category. Deleting an absent ID is not an error.
func (r *Categories) Delete(ctx context.Context, id string) error {
	return write(r.s, &r.s.categories, domain.WriteDelete, id, func(col *collection[domain.Category]) error {
		col.delete(id)
		return nil
	})
}

// ---------------------------------------------------------------------------
// Prompts
// ---------------------------------------------------------------------------

// Prompts is the prompt collection view of a Store.
type Prompts struct{ s *Store }

// List returns all prompts in insertion order.
func (r *Prompts) List(ctx context.Context) ([]domain.Prompt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.prompts.list(), nil
}

// Insert adds a prompt. Returns domain.ErrAlreadyExists on a duplicate ID.
func (r *Prompts) Insert(ctx context.Context, p domain.Prompt) error {
	return write(r.s, &r.s.prompts, domain.WriteInsert, p.ID, func(col *collection[domain.Prompt]) error {
		return col.insert(p)
	})
}

// Upsert inserts or replaces prompts by ID.
func (r *Prompts) Upsert(ctx context.Context, ps ...domain.Prompt) error {
	return upsertAll(r.s, &r.s.prompts, ps)
}

// Update applies a partial update. Returns domain.ErrNotFound for an unknown ID.
func (r *Prompts) Update(ctx context.Context, id string, patch domain.PromptPatch) error {
	return write(r.s, &r.s.prompts, domain.WriteUpdate, id, func(col *collection[domain.Prompt]) error {
		i := col.index(id)
		if i < 0 {
			return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		col.rows[i] = patch.Apply(col.rows[i])
		return nil
	})
}

// Delete removes a prompt. Deleting an absent ID is not an error.
func (r *Prompts) Delete(ctx context.Context, id string) error {
	return write(r.s, &r.s.prompts, domain.WriteDelete, id, func(col *collection[domain.Prompt]) error {
		col.delete(id)
		return nil
	})
}

// ---------------------------------------------------------------------------
// Suggestions
// ---------------------------------------------------------------------------

// Suggestions is the suggestion collection view of a Store.
type Suggestions struct{ s *Store }

// List returns suggestions with the given status, newest first.
func (r *Suggestions) List(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Suggestion, 0, len(r.s.suggestions.rows))
	for _, s := range r.s.suggestions.rows {
		if s.Status == status {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Suggestion) int { return b.SuggestedAt.Compare(a.SuggestedAt) })
	return out, nil
}

// Insert adds a suggestion. Returns domain.ErrAlreadyExists on a duplicate ID.
func (r *Suggestions) Insert(ctx context.Context, sg domain.Suggestion) error {
	return write(r.s, &r.s.suggestions, domain.WriteInsert, sg.ID, func(col *collection[domain.Suggestion]) error {
		return col.insert(sg)
	})
}

// Delete removes a suggestion. Deleting an absent ID is not an error.
func (r *Suggestions) Delete(ctx context.Context, id string) error {
	return write(r.s, &r.s.suggestions, domain.WriteDelete, id, func(col *collection[domain.Suggestion]) error {
		col.delete(id)
		return nil
	})
}

// ---------------------------------------------------------------------------
// generic collection
// ---------------------------------------------------------------------------

type collection[T any] struct {
	name domain.Collection
	id   func(T) string
	rows []T
}

func (c *collection[T]) list() []T {
	out := make([]T, len(c.rows))
	copy(out, c.rows)
	return out
}

func (c *collection[T]) index(id string) int {
	return slices.IndexFunc(c.rows, func(v T) bool { return c.id(v) == id })
}

func (c *collection[T]) insert(v T) error {
	if c.index(c.id(v)) >= 0 {
		return fmt.Errorf("%s %s: %w", c.name, c.id(v), domain.ErrAlreadyExists)
	}
	c.rows = append(c.rows, v)
	return nil
}

func (c *collection[T]) upsert(v T) {
	if i := c.index(c.id(v)); i >= 0 {
		c.rows[i] = v
		return
	}
	c.rows = append(c.rows, v)
}

func (c *collection[T]) delete(id string) {
	if i := c.index(id); i >= 0 {
		c.rows = slices.Delete(c.rows, i, i+1)
	}
}

func write[T any](s *Store, col *collection[T], op domain.WriteOp, id string, fn func(*collection[T]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		return domain.NewValidationError("id", "required")
	}
	if err := s.check(col.name, op, id); err != nil {
		return err
	}
	return fn(col)
}

// upsertAll applies a batch atomically: either every row is written or none.
func upsertAll[T any](s *Store, col *collection[T], vs []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vs {
		id := col.id(v)
		if id == "" {
			return domain.NewValidationError("id", "required")
		}
		if err := s.check(col.name, domain.WriteUpsert, id); err != nil {
			return err
		}
	}
	for _, v := range vs {
		col.upsert(v)
	}
	return nil
}
