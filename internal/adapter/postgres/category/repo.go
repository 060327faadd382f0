// Package category implements the category collection of the catalog store
// using PostgreSQL.
package category

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/prompt-vault/internal/adapter/postgres"
	"github.com/heartmarshall/prompt-vault/internal/domain"
)

const table = "categories"

var columns = []string{"id", "name", "icon", "color"}

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns all categories ordered by name.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list categories: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Category])
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if out == nil {
		out = []domain.Category{}
	}
	return out, nil
}

// Insert creates a category.
// Returns domain.ErrAlreadyExists if the id is taken.
func (r *Repo) Insert(ctx context.Context, c domain.Category) error {
	stmt := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(c.ID, c.Name, c.Icon, c.Color)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "category", c.ID)
	}
	return nil
}

// Upsert inserts or replaces categories by id in a single statement.
func (r *Repo) Upsert(ctx context.Context, cs ...domain.Category) error {
	if len(cs) == 0 {
		return nil
	}

	stmt := postgres.Builder().
		Insert(table).
		Columns(columns...)
	for _, c := range cs {
		stmt = stmt.Values(c.ID, c.Name, c.Icon, c.Color)
	}
	stmt = stmt.Suffix(`ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    icon = EXCLUDED.icon,
    color = EXCLUDED.color,
    updated_at = now()`)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "category", fmt.Sprintf("batch(%d)", len(cs)))
	}
	return nil
}

// Delete removes a category. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	stmt := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id})

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "category", id)
	}
	return nil
}
