package auth

import (
	"log/slog"

	"github.com/heartmarshall/prompt-vault/internal/auth"
)

// jwtManager defines the session token interface needed by auth service.
type jwtManager interface {
	GenerateToken(role string) (string, auth.Session, error)
	ValidateToken(token string) (auth.Session, error)
}

// passphraseChecker verifies the admin passphrase.
type passphraseChecker interface {
	Check(passphrase string) bool
}

// Service implements admin session operations.
type Service struct {
	log        *slog.Logger
	jwt        jwtManager
	passphrase passphraseChecker
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, jwt jwtManager, passphrase passphraseChecker) *Service {
	return &Service{
		log:        logger.With("service", "auth"),
		jwt:        jwt,
		passphrase: passphrase,
	}
}
