package middleware

import (
	"net/http"
	"strings"

	"github.com/kwadwoankamah/duesflow/internal/services/users"
)

// RequireAuth authenticates the Bearer token and stashes the caller in the
// request context. Unauthenticated requests get a 401 pointing back at the
// login view with the originally requested path preserved.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			m.apiError(w, "Unauthorized: No token provided", http.StatusUnauthorized, "/login", r.URL.Path)
			return
		}

		claims, err := m.TokenSvc.ValidateToken(tokenString)
		if err != nil {
			m.apiError(w, "Unauthorized: Invalid token", http.StatusUnauthorized, "/login", r.URL.Path)
			return
		}

		userCtx := users.UserContextValue{
			ID:       claims.ID,
			Email:    claims.Email,
			Role:     claims.Role,
			MemberID: claims.MemberID,
		}

		next.ServeHTTP(w, r.WithContext(users.NewContextWithUser(r.Context(), &userCtx)))
	})
}

// RequireRole gates a route to a single role. Authenticated callers with the
// wrong role get a 403 pointing at the unauthorized view.
func (m *Middleware) RequireRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := users.FromContext(r.Context())
			if !ok {
				m.apiError(w, "Unauthorized: No user found", http.StatusUnauthorized, "/login", r.URL.Path)
				return
			}

			if user.Role != requiredRole {
				m.apiError(w, "Forbidden: Insufficient permissions", http.StatusForbidden, "/unauthorized", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
