package auth

import "time"

// LoginResult is returned by Login.
type LoginResult struct {
	Token     string
	ExpiresAt *time.Time // nil when the session never expires
}
