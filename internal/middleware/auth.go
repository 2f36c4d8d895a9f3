package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/kenyagreatparty/kgp-backend/internal/services/actors"
)

func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			m.apiError(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		claims, err := m.TokenSvc.ValidateToken(tokenString)
		if err != nil {
			m.apiError(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		actor := actors.Actor{
			ID:    claims.ID,
			Email: claims.Email,
			Roles: claims.Roles,
		}

		next.ServeHTTP(w, r.WithContext(actors.NewContextWithActor(r.Context(), &actor)))
	})
}

func (m *Middleware) RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			actor, ok := actors.FromContext(r.Context())
			if !ok {
				m.apiError(w, "Unauthorized: No user found", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(actor.Roles, requiredRole) {
				m.apiError(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
