package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

const (
	maxNameLen        = 200
	maxDescriptionLen = 2000
	maxCategoryLen    = 100
	maxTagLen         = 50
	maxColorLen       = 32
	maxContentLen     = 100_000
)

// SubmitInput holds the fields of an anonymous suggestion.
type SubmitInput struct {
	Fields domain.PromptFields
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	errs := checkLengths(i.Fields)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SavePromptInput holds an admin create-or-edit of a prompt.
type SavePromptInput struct {
	ID       string
	Fields   domain.PromptFields
	IsHidden bool
}

// Validate checks all fields and collects all errors.
func (i SavePromptInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Fields.Name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	errs = append(errs, checkLengths(i.Fields)...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReviseInput holds the edits applied before promoting a suggestion.
type ReviseInput struct {
	SuggestionID string
	Edits        domain.FieldEdits
}

// Validate checks all fields and collects all errors.
func (i ReviseInput) Validate() error {
	var errs []domain.FieldError
	if i.SuggestionID == "" {
		errs = append(errs, domain.FieldError{Field: "suggestion_id", Message: "required"})
	}
	errs = append(errs, checkLengths(domain.PromptFields{}.Apply(i.Edits))...)
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func checkLengths(f domain.PromptFields) []domain.FieldError {
	var errs []domain.FieldError
	check := func(field, value string, max int) {
		if utf8.RuneCountInString(value) > max {
			errs = append(errs, domain.FieldError{Field: field, Message: "too long"})
		}
	}
	check("name", f.Name, maxNameLen)
	check("description", f.Description, maxDescriptionLen)
	check("category", f.Category, maxCategoryLen)
	check("tag", f.Tag, maxTagLen)
	check("color", f.Color, maxColorLen)
	check("content", f.Content, maxContentLen)
	return errs
}
