// Package prompt implements the prompt collection of the catalog store using
// PostgreSQL.
package prompt

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/prompt-vault/internal/adapter/postgres"
	"github.com/heartmarshall/prompt-vault/internal/domain"
)

const table = "prompts"

// upsertChunk bounds rows per statement to stay under the bind parameter limit.
const upsertChunk = 1000

var columns = []string{"id", "name", "description", "category", "path", "tag", "content", "color", "is_hidden"}

// Repo provides prompt persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new prompt repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// List returns all prompts in insertion order.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) List(ctx context.Context) ([]domain.Prompt, error) {
	sql, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("list prompts: build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Prompt])
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	if out == nil {
		out = []domain.Prompt{}
	}
	return out, nil
}

// Insert creates a prompt.
// Returns domain.ErrAlreadyExists if the id is taken.
func (r *Repo) Insert(ctx context.Context, p domain.Prompt) error {
	stmt := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(values(p)...)

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "prompt", p.ID)
	}
	return nil
}

// Upsert inserts or replaces prompts by id. Large batches are split into
// several statements; run it inside TxManager.RunInTx for all-or-nothing.
func (r *Repo) Upsert(ctx context.Context, ps ...domain.Prompt) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	for start := 0; start < len(ps); start += upsertChunk {
		end := min(start+upsertChunk, len(ps))

		stmt := postgres.Builder().
			Insert(table).
			Columns(columns...)
		for _, p := range ps[start:end] {
			stmt = stmt.Values(values(p)...)
		}
		stmt = stmt.Suffix(`ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    path = EXCLUDED.path,
    tag = EXCLUDED.tag,
    content = EXCLUDED.content,
    color = EXCLUDED.color,
    is_hidden = EXCLUDED.is_hidden,
    updated_at = now()`)

		if _, err := postgres.Exec(ctx, q, stmt); err != nil {
			return postgres.MapError(err, "prompt", fmt.Sprintf("batch[%d:%d]", start, end))
		}
	}
	return nil
}

// Update applies a partial update.
// Returns domain.ErrNotFound if the prompt does not exist.
func (r *Repo) Update(ctx context.Context, id string, patch domain.PromptPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	stmt := postgres.Builder().
		Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})
	if patch.IsHidden != nil {
		stmt = stmt.Set("is_hidden", *patch.IsHidden)
	}
	if patch.Category != nil {
		stmt = stmt.Set("category", *patch.Category)
	}

	n, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt)
	if err != nil {
		return postgres.MapError(err, "prompt", id)
	}
	if n == 0 {
		return fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a prompt. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	stmt := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id})

	if _, err := postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.pool), stmt); err != nil {
		return postgres.MapError(err, "prompt", id)
	}
	return nil
}

func values(p domain.Prompt) []any {
	return []any{p.ID, p.Name, p.Description, p.Category, p.Path, p.Tag, p.Content, p.Color, p.IsHidden}
}
