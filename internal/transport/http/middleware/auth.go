package middleware

import (
	"net/http"
	"strings"

	"worklog/internal/domain/auth"
	"worklog/internal/transport/http/api"
)

// RequireAuth rejects requests without a valid bearer token. The service has
// a single owner, so there is no per-user context to attach beyond the
// validated subject.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", GetRequestID(r.Context()))
				return
			}
			if _, err := auth.ParseToken(secret, parts[1]); err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
