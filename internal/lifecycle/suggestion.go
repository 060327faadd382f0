package lifecycle

import (
	"fmt"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// Submit records a new pending suggestion. No privilege is required.
// Missing fields are replaced by submission defaults. The transition is not
// optimistic: callers must commit Next only after the insert succeeded.
func (e *Engine) Submit(st State, fields domain.PromptFields) Transition {
	fields = fields.WithSubmissionDefaults()

	s := domain.Suggestion{
		ID:          prefixSuggestion + "-" + e.newID(),
		Name:        fields.Name,
		Description: fields.Description,
		Category:    fields.Category,
		Content:     fields.Content,
		Tag:         fields.Tag,
		Color:       fields.Color,
		Status:      domain.SuggestionPending,
		SuggestedAt: e.now().UTC(),
	}

	next := st.Clone()
	next.Suggestions = prepend(s, st.Suggestions)

	return Transition{
		Next: next,
		Writes: []Write{{
			Collection: domain.CollectionSuggestions,
			Op:         domain.WriteInsert,
			ID:         s.ID,
			Suggestion: &s,
		}},
		Optimistic: false,
		Suggestion: &s,
	}
}

// Approve promotes a pending suggestion verbatim into a new visible prompt
// and removes the suggestion.
func (e *Engine) Approve(st State, caller domain.Caller, suggestionID string) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}

	s, err := pendingSuggestion(st, suggestionID)
	if err != nil {
		return Transition{}, err
	}

	return e.promote(st, s, s.Fields(), prefixApproved)
}

// ReviseAndApprove promotes a pending suggestion after applying edits.
// Unedited fields pass through from the suggestion. IsHidden is always false.
func (e *Engine) ReviseAndApprove(st State, caller domain.Caller, suggestionID string, edits domain.FieldEdits) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}

	s, err := pendingSuggestion(st, suggestionID)
	if err != nil {
		return Transition{}, err
	}

	return e.promote(st, s, s.Fields().Apply(edits), prefixRevised)
}

// Reject removes a suggestion without creating a prompt. Rejecting an absent
// suggestion leaves the state unchanged; the store delete is still issued.
func (e *Engine) Reject(st State, caller domain.Caller, suggestionID string) (Transition, error) {
	if err := requireAdmin(caller); err != nil {
		return Transition{}, err
	}
	if suggestionID == "" {
		return Transition{}, domain.NewValidationError("id", "required")
	}

	next := st.Clone()
	if i := indexSuggestion(st.Suggestions, suggestionID); i >= 0 {
		next.Suggestions = without(st.Suggestions, i)
	}

	return Transition{
		Next: next,
		Writes: []Write{{
			Collection: domain.CollectionSuggestions,
			Op:         domain.WriteDelete,
			ID:         suggestionID,
		}},
		Optimistic: true,
	}, nil
}

func pendingSuggestion(st State, id string) (domain.Suggestion, error) {
	i := indexSuggestion(st.Suggestions, id)
	if i < 0 {
		return domain.Suggestion{}, fmt.Errorf("suggestion %s: %w", id, domain.ErrNotFound)
	}
	s := st.Suggestions[i]
	if s.Status != domain.SuggestionPending {
		return domain.Suggestion{}, domain.NewValidationError("status", "suggestion is not pending")
	}
	return s, nil
}

// promote builds the prompt, prepends it and drops the suggestion. The insert
// and the delete are independent writes.
func (e *Engine) promote(st State, s domain.Suggestion, fields domain.PromptFields, prefix string) (Transition, error) {
	if err := validateName("name", fields.Name); err != nil {
		return Transition{}, err
	}

	id, path, err := e.newPromptIdentity(st, prefix)
	if err != nil {
		return Transition{}, err
	}

	p := domain.Prompt{
		ID:          id,
		Name:        fields.Name,
		Description: fields.Description,
		Category:    fields.Category,
		Path:        path,
		Tag:         fields.Tag,
		Content:     fields.Content,
		Color:       fields.Color,
		IsHidden:    false,
	}

	next := st.Clone()
	next.Prompts = prepend(p, st.Prompts)
	next.Suggestions = without(st.Suggestions, indexSuggestion(st.Suggestions, s.ID))

	return Transition{
		Next: next,
		Writes: []Write{
			{Collection: domain.CollectionPrompts, Op: domain.WriteInsert, ID: p.ID, Prompt: &p},
			{Collection: domain.CollectionSuggestions, Op: domain.WriteDelete, ID: s.ID},
		},
		Optimistic: true,
		Prompt:     &p,
		Suggestion: &s,
	}, nil
}
