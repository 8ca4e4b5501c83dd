package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/pep299/video-summarizer/internal/transport/response"
)

// Auth creates a bearer token middleware. An empty token disables the check.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check Bearer token
			authHeader := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				response.WriteUnauthorized(w, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
