package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/prompt-vault/internal/domain"
	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

// RequireAdmin returns domain.ErrForbidden if the context caller is not admin.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdmin(ctx) {
		return domain.ErrForbidden
	}
	return nil
}

// AdminOnly rejects non-admin callers with 403 before the handler runs.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := RequireAdmin(r.Context()); err != nil {
			writeJSONError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
