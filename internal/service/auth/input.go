package auth

import "github.com/heartmarshall/prompt-vault/internal/domain"

// LoginInput holds the admin passphrase.
type LoginInput struct {
	Passphrase string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Passphrase == "" {
		errs = append(errs, domain.FieldError{Field: "passphrase", Message: "required"})
	} else if len(i.Passphrase) > 512 {
		errs = append(errs, domain.FieldError{Field: "passphrase", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
