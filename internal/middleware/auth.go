package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anne-niyokwizerwa/ecommerce/internal/repository"
)

// RoleResolver maps an access token to a profile role. The catalog
// store's profile data is the enforcement boundary; any check done in
// a client is UI convenience only.
type RoleResolver interface {
	RoleForToken(ctx context.Context, token string) (string, error)
}

// RequireRole middleware authenticates the request's bearer token and
// rejects requests whose resolved role does not match.
func RequireRole(resolver RoleResolver, role string, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "Unauthorized: access token required", http.StatusUnauthorized)
				return
			}

			got, err := resolver.RoleForToken(r.Context(), token)
			if errors.Is(err, repository.ErrNotFound) {
				http.Error(w, "Forbidden: invalid access token", http.StatusForbidden)
				return
			}
			if err != nil {
				logger.Error("failed to resolve token role", "error", err)
				http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
				return
			}

			if got != role {
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
