// Package lifecycle holds the pure decision logic of the catalog: suggestion
// promotion, category cascades and visibility toggling. Every operation takes
// a snapshot of the catalog and returns the next snapshot together with the
// store writes that persist it. The package performs no I/O.
package lifecycle

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// State is a full snapshot of the three catalog collections.
type State struct {
	Categories  []domain.Category
	Prompts     []domain.Prompt
	Suggestions []domain.Suggestion
}

// Clone returns a deep copy of the snapshot.
func (s State) Clone() State {
	return State{
		Categories:  slices.Clone(s.Categories),
		Prompts:     slices.Clone(s.Prompts),
		Suggestions: slices.Clone(s.Suggestions),
	}
}

// Write is one store write produced by a transition.
// Exactly one of Category, Prompt, Suggestion is set for insert and upsert.
type Write struct {
	Collection domain.Collection
	Op         domain.WriteOp
	ID         string
	Category   *domain.Category
	Prompt     *domain.Prompt
	Suggestion *domain.Suggestion
	Patch      domain.PromptPatch
}

// Transition is the outcome of a lifecycle operation.
type Transition struct {
	Next   State
	Writes []Write

	// Optimistic transitions are committed locally even when writes fail.
	Optimistic bool

	// Primary entities touched by the operation, when applicable.
	Prompt     *domain.Prompt
	Category   *domain.Category
	Suggestion *domain.Suggestion

	// Reassigned lists prompt IDs whose category was rewritten by a cascade.
	Reassigned []string
}

// Engine computes transitions. The zero value is not usable; use New.
type Engine struct {
	newID           func() string
	now             func() time.Time
	persistCascades bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the random token generator used for new IDs.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// WithCascadePersistence makes category rename/delete cascades emit prompt
// update writes. By default cascades are applied to the local state only.
func WithCascadePersistence(enabled bool) Option {
	return func(e *Engine) { e.persistCascades = enabled }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID prefixes of generated identifiers.
const (
	prefixApproved   = "approved"
	prefixRevised    = "revised"
	prefixCustom     = "custom"
	prefixSuggestion = "suggestion"
	prefixCategory   = "cat"

	maxIDAttempts = 3
)

// Visible returns the prompts the caller may see under the filter.
func (e *Engine) Visible(st State, caller domain.Caller, f domain.PromptFilter) []domain.Prompt {
	return domain.FilterPrompts(st.Prompts, f, caller)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func requireAdmin(caller domain.Caller) error {
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// newPromptIdentity returns a fresh prompt id and path that do not collide
// with any existing prompt.
func (e *Engine) newPromptIdentity(st State, prefix string) (id, path string, err error) {
	for range maxIDAttempts {
		token := e.newID()
		id = prefix + "-" + token
		if indexPrompt(st.Prompts, id) < 0 {
			return id, prefix + "/" + token + ".md", nil
		}
	}
	return "", "", fmt.Errorf("generate prompt id: %w", domain.ErrConflict)
}

func validateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError(field, "required")
	}
	return nil
}

func indexPrompt(prompts []domain.Prompt, id string) int {
	return slices.IndexFunc(prompts, func(p domain.Prompt) bool { return p.ID == id })
}

func indexCategory(categories []domain.Category, id string) int {
	return slices.IndexFunc(categories, func(c domain.Category) bool { return c.ID == id })
}

func indexSuggestion(suggestions []domain.Suggestion, id string) int {
	return slices.IndexFunc(suggestions, func(s domain.Suggestion) bool { return s.ID == id })
}

// prepend returns a new slice with v in front of xs.
func prepend[T any](v T, xs []T) []T {
	out := make([]T, 0, len(xs)+1)
	out = append(out, v)
	return append(out, xs...)
}

// without returns a copy of xs with the element at i removed.
func without[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs))
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}
