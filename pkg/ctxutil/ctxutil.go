package ctxutil

import (
	"context"

	"github.com/heartmarshall/prompt-vault/internal/domain"
)

type ctxKey string

const (
	callerKey    ctxKey = "caller"
	requestIDKey ctxKey = "request_id"
)

// WithCaller stores the caller capabilities in the context.
func WithCaller(ctx context.Context, c domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFromCtx extracts the caller from the context.
// Returns domain.Anonymous when the value is missing or of the wrong type.
func CallerFromCtx(ctx context.Context) domain.Caller {
	c, ok := ctx.Value(callerKey).(domain.Caller)
	if !ok {
		return domain.Anonymous
	}
	return c
}

// IsAdmin reports whether the context carries an admin caller.
func IsAdmin(ctx context.Context) bool {
	return CallerFromCtx(ctx).IsAdmin
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
