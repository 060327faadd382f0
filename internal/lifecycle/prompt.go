package lifecycle

import (
	"fmt"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// PromptInput is an admin create-or-edit of a prompt. An empty ID, or one
// that matches no prompt, creates a new custom prompt.
type PromptInput struct {
	ID       string
	Fields   domain.PromptFields
	IsHidden bool
}

// ToggleHidden flips the visibility of a prompt.
func (e *Engine) ToggleHidden(st State, caller domain.Caller, promptID string) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}

	i := indexPrompt(st.Prompts, promptID)
	if i < 0 {
		return Transition{}, fmt.Errorf("prompt %s: %w", promptID, domain.ErrNotFound)
	}

	hidden := !st.Prompts[i].IsHidden
	patch := domain.PromptPatch{IsHidden: &hidden}

	next := st.Clone()
	next.Prompts[i] = patch.Apply(next.Prompts[i])
	p := next.Prompts[i]

	return Transition{
		Next: next,
		Writes: []Write{{
			Collection: domain.CollectionPrompts,
			Op:         domain.WriteUpdate,
			ID:         p.ID,
			Patch:      patch,
		}},
		Optimistic: true,
		Prompt:     &p,
	}, nil
}

// SavePrompt upserts a prompt. Edits keep the existing ID and path; new
// prompts are prepended.
func (e *Engine) SavePrompt(st State, caller domain.Caller, in PromptInput) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}
	if err := validateName("name", in.Fields.Name); err != nil {
		return Transition{}, err
	}

	next := st.Clone()
	var p domain.Prompt

	i := -1
	if in.ID != "" {
		i = indexPrompt(st.Prompts, in.ID)
	}

	if i >= 0 {
		p = mergePrompt(st.Prompts[i], in)
		next.Prompts[i] = p
	} else {
		id, path, err := e.newPromptIdentity(st, prefixCustom)
		if err != nil {
			return Transition{}, err
		}
		p = mergePrompt(domain.Prompt{ID: id, Path: path}, in)
		next.Prompts = prepend(p, st.Prompts)
	}

	return Transition{
		Next: next,
		Writes: []Write{{
			Collection: domain.CollectionPrompts,
			Op:         domain.WriteUpsert,
			ID:         p.ID,
			Prompt:     &p,
		}},
		Optimistic: true,
		Prompt:     &p,
	}, nil
}

// DeletePrompt hard-deletes a prompt.
func (e *Engine) DeletePrompt(st State, caller domain.Caller, promptID string) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}

	i := indexPrompt(st.Prompts, promptID)
	if i < 0 {
		return Transition{}, fmt.Errorf("prompt %s: %w", promptID, domain.ErrNotFound)
	}
	p := st.Prompts[i]

	next := st.Clone()
	next.Prompts = without(st.Prompts, i)

	return Transition{
		Next: next,
		Writes: []Write{{
			Collection: domain.CollectionPrompts,
			Op:         domain.WriteDelete,
			ID:         p.ID,
		}},
		Optimistic: true,
		Prompt:     &p,
	}, nil
}

func mergePrompt(p domain.Prompt, in PromptInput) domain.Prompt {
	p.Name = in.Fields.Name
	p.Description = in.Fields.Description
	p.Category = in.Fields.Category
	p.Content = in.Fields.Content
	p.Tag = in.Fields.Tag
	p.Color = in.Fields.Color
	p.IsHidden = in.IsHidden
	return p
}
