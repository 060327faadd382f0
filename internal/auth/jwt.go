package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RoleAdmin is the only role a session token can carry.
const RoleAdmin = "admin"

// Session describes a validated token.
type Session struct {
	ID        string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the session never expires
}

// JWTManager issues and validates admin session tokens.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
// A ttl of zero issues tokens without an expiry.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// sessionClaims extends standard JWT claims with the session role.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateToken creates a signed HS256 JWT with a random session ID as subject.
func (m *JWTManager) GenerateToken(role string) (string, Session, error) {
	now := m.now()
	sess := Session{ID: uuid.NewString(), Role: role, IssuedAt: now}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sess.ID,
			Subject:  sess.ID,
			Issuer:   m.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Role: role,
	}
	if m.ttl > 0 {
		sess.ExpiresAt = now.Add(m.ttl)
		claims.ExpiresAt = jwt.NewNumericDate(sess.ExpiresAt)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, sess, nil
}

// ValidateToken parses and validates a session token.
func (m *JWTManager) ValidateToken(tokenString string) (Session, error) {
	if tokenString == "" {
		return Session{}, fmt.Errorf("token is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuedAt())

	if err != nil {
		return Session{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("invalid token claims")
	}

	if claims.Issuer != m.issuer {
		return Session{}, fmt.Errorf("invalid issuer: expected %s, got %s", m.issuer, claims.Issuer)
	}

	sess := Session{ID: claims.Subject, Role: claims.Role}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// PassphraseChecker verifies the admin passphrase against a plain secret or
// a bcrypt hash. The hash takes precedence when both are configured.
type PassphraseChecker struct {
	plain []byte
	hash  []byte
}

// NewPassphraseChecker creates a checker. Empty values are ignored.
func NewPassphraseChecker(plain, hash string) *PassphraseChecker {
	c := &PassphraseChecker{}
	if plain != "" {
		c.plain = []byte(plain)
	}
	if hash != "" {
		c.hash = []byte(hash)
	}
	return c
}

// Check reports whether passphrase matches.
func (c *PassphraseChecker) Check(passphrase string) bool {
	if passphrase == "" {
		return false
	}
	if c.hash != nil {
		return bcrypt.CompareHashAndPassword(c.hash, []byte(passphrase)) == nil
	}
	if c.plain == nil {
		return false
	}
	return subtle.ConstantTimeCompare(c.plain, []byte(passphrase)) == 1
}
