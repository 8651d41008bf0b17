package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service/auth"
)

// UserResolver turns an Authorization header value into a user.
type UserResolver interface {
	CurrentUser(ctx context.Context, header string) (*domain.User, error)
}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	users UserResolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
	}
}

// Authenticate resolves the user from the Authorization header and adds it
// to the request context. Requests without a resolvable user are answered
// with 401 and never reach next.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.users.CurrentUser(r.Context(), r.Header.Get("Authorization"))
		if err != nil || user == nil {
			if err != nil && !auth.IsTokenError(err) {
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to resolve current user", "error", redact.Error(err))
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, unauthorizedMessage(err), shared.CodeUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.WithUser(r.Context(), user)))
	})
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return "Unauthorized: Missing authorization header"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Unauthorized: Token expired"
	default:
		return "Unauthorized: Invalid token"
	}
}
