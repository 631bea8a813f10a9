package middleware

import (
	"net/http"
	"strings"

	"github.com/skillgateway/backend/internal/auth/service"
)

// AdminMiddleware requires a verifiable admin credential. The transport is an
// adapter detail: JSON admin APIs send "Authorization: Bearer <token>" while
// PDF download links carry the same token in the "token" query parameter.
func AdminMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractAdminToken(r)
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			if _, err := tokenGenerator.ValidateAdminToken(token); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"invalid or expired token"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractAdminToken reads the credential from the Authorization header or,
// failing that, from the token query parameter
func extractAdminToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	return r.URL.Query().Get("token")
}
