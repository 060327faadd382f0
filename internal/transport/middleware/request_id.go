package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/prompt-vault/pkg/ctxutil"
)

const maxRequestIDLen = 128

// RequestID propagates X-Request-Id or generates one. Oversized incoming ids
// are replaced.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		ctx := ctxutil.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
