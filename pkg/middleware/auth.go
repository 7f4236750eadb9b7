package middleware

import (
	"net/http"
	"strings"

	"salon-booking/internal/data/repository"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession resolves the bearer token to a staff session and puts the
// tenant, staff and role into the request context. Every staff route
// sits behind it; tenant scoping downstream relies on it.
func AuthSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetStaffContext(r.Context(), session.TenantID, session.StaffID, session.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Owner gates routes on the owner role set by AuthSession.
func Owner(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "owner" {
				logger.Warn("Owner check: non-owner access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Owner access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
