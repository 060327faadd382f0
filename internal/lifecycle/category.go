package lifecycle

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// SaveCategory creates or renames a category. A category whose ID matches an
// existing one is updated in place; a rename rewrites every prompt that
// referenced the old name. Otherwise the category is appended.
func (e *Engine) SaveCategory(st State, caller domain.Caller, cat domain.Category) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}

	cat.Name = strings.TrimSpace(cat.Name)
	if err := validateCategory(st, cat); err != nil {
		return Transition{}, err
	}

	next := st.Clone()
	t := Transition{Optimistic: true}

	i := -1
	if cat.ID != "" {
		i = indexCategory(st.Categories, cat.ID)
	}

	if i < 0 {
		if cat.ID == "" {
			cat.ID = prefixCategory + "-" + e.newID()
		}
		next.Categories = append(next.Categories, cat)
	} else {
		oldName := st.Categories[i].Name
		next.Categories[i] = cat
		if oldName != cat.Name {
			t.Reassigned = reassign(next.Prompts, oldName, cat.Name)
		}
	}

	t.Next = next
	t.Category = &cat
	t.Writes = append(t.Writes, Write{
		Collection: domain.CollectionCategories,
		Op:         domain.WriteUpsert,
		ID:         cat.ID,
		Category:   &cat,
	})
	t.Writes = append(t.Writes, e.cascadeWrites(t.Reassigned, cat.Name)...)

	return t, nil
}

// DeleteCategory removes a category and moves its prompts to
// Uncategorized. The caller must have confirmed the deletion.
func (e *Engine) DeleteCategory(st State, caller domain.Caller, id string, confirmed bool) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}
	if !confirmed {
		return Transition{}, domain.NewValidationError("confirm", "required")
	}

	i := indexCategory(st.Categories, id)
	if i < 0 {
		return Transition{}, fmt.Errorf("category %s: %w", id, domain.ErrNotFound)
	}
	cat := st.Categories[i]

	next := st.Clone()
	next.Categories = without(st.Categories, i)
	reassigned := reassign(next.Prompts, cat.Name, domain.CategoryUncategorized)

	writes := []Write{{
		Collection: domain.CollectionCategories,
		Op:         domain.WriteDelete,
		ID:         cat.ID,
	}}
	writes = append(writes, e.cascadeWrites(reassigned, domain.CategoryUncategorized)...)

	return Transition{
		Next:       next,
		Writes:     writes,
		Optimistic: true,
		Category:   &cat,
		Reassigned: reassigned,
	}, nil
}

func validateCategory(st State, cat domain.Category) error {
	var errs []domain.FieldError

	switch {
	case cat.Name == "":
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	case strings.EqualFold(cat.Name, domain.CategoryAll):
		errs = append(errs, domain.FieldError{Field: "name", Message: "reserved"})
	default:
		for _, c := range st.Categories {
			if c.ID != cat.ID && c.Name == cat.Name {
				errs = append(errs, domain.FieldError{Field: "name", Message: "already used by another category"})
				break
			}
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// reassign rewrites prompts in place from one category name to another and
// returns the IDs it touched.
func reassign(prompts []domain.Prompt, from, to string) []string {
	var ids []string
	for i := range prompts {
		if prompts[i].Category == from {
			prompts[i].Category = to
			ids = append(ids, prompts[i].ID)
		}
	}
	return ids
}

func (e *Engine) cascadeWrites(ids []string, category string) []Write {
	if !e.persistCascades || len(ids) == 0 {
		return nil
	}
	writes := make([]Write, 0, len(ids))
	for _, id := range ids {
		name := category
		writes = append(writes, Write{
			Collection: domain.CollectionPrompts,
			Op:         domain.WriteUpdate,
			ID:         id,
			Patch:      domain.PromptPatch{Category: &name},
		})
	}
	return writes
}
