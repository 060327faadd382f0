package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/auth"
	"github.com/heartmarshall/prompt-vault/internal/domain"
)

// Login exchanges the admin passphrase for a session token.
// Returns ErrUnauthorized if the passphrase is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !s.passphrase.Check(input.Passphrase) {
		s.log.WarnContext(ctx, "admin login rejected")
		return nil, domain.ErrUnauthorized
	}

	token, sess, err := s.jwt.GenerateToken(auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("auth.Login generate token: %w", err)
	}

	result := &LoginResult{Token: token}
	if !sess.ExpiresAt.IsZero() {
		exp := sess.ExpiresAt
		result.ExpiresAt = &exp
	}

	s.log.InfoContext(ctx, "admin logged in", slog.String("session_id", sess.ID))
	return result, nil
}

// ValidateToken checks a session token and returns the caller it grants.
// Any invalid token yields ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (domain.Caller, error) {
	sess, err := s.jwt.ValidateToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "session token rejected", slog.String("error", err.Error()))
		return domain.Anonymous, domain.ErrUnauthorized
	}
	if sess.Role != auth.RoleAdmin {
		return domain.Anonymous, domain.ErrUnauthorized
	}
	return domain.Admin, nil
}
