package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres/category"
	"github.com/heartmarshall/prompt-vault/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*category.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return category.New(pool), pool
}

func find(list []domain.Category, id string) (domain.Category, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

func TestRepo_Insert_AndList(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	c := domain.Category{ID: "cat-" + uuid.NewString(), Name: "Insert " + uuid.NewString(), Icon: "fas fa-star", Color: "#fbc02d"}
	if err := repo.Insert(ctx, c); err != nil {
		t.Fatalf("Insert: unexpected error: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	got, ok := find(list, c.ID)
	if !ok {
		t.Fatalf("inserted category %s not listed", c.ID)
	}
	if got != c {
		t.Errorf("round trip: got %+v, want %+v", got, c)
	}

	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Fatalf("list not ordered by name at %d: %q > %q", i, list[i-1].Name, list[i].Name)
		}
	}
}

func TestRepo_Insert_Duplicate(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	existing := testhelper.SeedCategory(t, pool)

	err := repo.Insert(ctx, domain.Category{ID: existing.ID, Name: "dup"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestRepo_Upsert(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	existing := testhelper.SeedCategory(t, pool)

	renamed := existing
	renamed.Name = "Renamed " + uuid.NewString()
	fresh := domain.Category{ID: "cat-" + uuid.NewString(), Name: "Fresh " + uuid.NewString()}

	if err := repo.Upsert(ctx, renamed, fresh); err != nil {
		t.Fatalf("Upsert: unexpected error: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if got, _ := find(list, existing.ID); got.Name != renamed.Name {
		t.Errorf("upsert did not replace: got %q, want %q", got.Name, renamed.Name)
	}
	if _, ok := find(list, fresh.ID); !ok {
		t.Error("upsert did not insert new category")
	}

	if err := repo.Upsert(ctx); err != nil {
		t.Errorf("empty upsert: unexpected error: %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	c := testhelper.SeedCategory(t, pool)

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if _, ok := find(list, c.ID); ok {
		t.Error("category still listed after delete")
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}
