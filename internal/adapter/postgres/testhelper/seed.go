package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedCategory inserts a category with a unique id and name.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()

	suffix := uniqueSuffix()
	c := domain.Category{
		ID:    "cat-" + suffix,
		Name:  "Category " + suffix,
		Icon:  "fas fa-book",
		Color: "#123456",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO categories (id, name, icon, color) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Icon, c.Color,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	return c
}

// SeedPrompt inserts a visible prompt in the given category.
func SeedPrompt(t *testing.T, pool *pgxpool.Pool, category string) domain.Prompt {
	t.Helper()

	suffix := uniqueSuffix()
	p := domain.Prompt{
		ID:          "custom-" + suffix,
		Name:        "Prompt " + suffix,
		Description: "seeded",
		Category:    category,
		Path:        "custom/" + suffix + ".md",
		Tag:         "Prompt",
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO prompts (id, name, description, category, path, tag) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Category, p.Path, p.Tag,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPrompt: %v", err)
	}
	return p
}

// SeedSuggestion inserts a pending suggestion.
func SeedSuggestion(t *testing.T, pool *pgxpool.Pool) domain.Suggestion {
	t.Helper()

	suffix := uniqueSuffix()
	s := domain.Suggestion{
		ID:          "suggestion-" + suffix,
		Name:        "Suggestion " + suffix,
		Category:    domain.CategoryUncategorized,
		Tag:         domain.DefaultSuggestionTag,
		Status:      domain.SuggestionPending,
		SuggestedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO suggestions (id, name, category, tag, status, suggested_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Category, s.Tag, string(s.Status), s.SuggestedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSuggestion: %v", err)
	}
	return s
}
