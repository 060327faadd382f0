// Package suggestion implements the suggestion collection of the catalog
// store using PostgreSQL.
package suggestion

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/prompt-vault/internal/adapter/postgres"
	"github.com/heartmarshall/prompt-vault/internal/domain"
)

const table = "suggestions"

var columns = []string{"id", "name", "description", "category", "content", "tag", "color", "status", "suggested_at"}

// Repo provides suggestion persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new suggestion repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns suggestions with the given status, newest first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context, status domain.SuggestionStatus) ([]domain.Suggestion, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"status": string(status)}).
		OrderBy("suggested_at DESC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list suggestions: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Suggestion, error) {
		var (
			s      domain.Suggestion
			status string
		)
		err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Category, &s.Content, &s.Tag, &s.Color, &status, &s.SuggestedAt)
		s.Status = domain.SuggestionStatus(status)
		s.SuggestedAt = s.SuggestedAt.UTC()
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	if out == nil {
		out = []domain.Suggestion{}
	}
	return out, nil
}

// Insert creates a suggestion.
// Returns domain.ErrAlreadyExists if the id is taken.
func (r *Repo) Insert(ctx context.Context, s domain.Suggestion) error {
	stmt := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(s.ID, s.Name, s.Description, s.Category, s.Content, s.Tag, s.Color, string(s.Status), s.SuggestedAt)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "suggestion", s.ID)
	}
	return nil
}

// Delete removes a suggestion. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	stmt := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id})

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "suggestion", id)
	}
	return nil
}
