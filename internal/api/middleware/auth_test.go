package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(ctx context.Context, header string) (*domain.User, error)

func (f resolverFunc) CurrentUser(ctx context.Context, header string) (*domain.User, error) {
	return f(ctx, header)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	admin := &domain.User{Email: "admin@example.com", Username: "admin"}

	tests := []struct {
		name           string
		authHeader     string
		user           *domain.User
		resolveErr     error
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer valid-token",
			user:           admin,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing auth header",
			resolveErr:     auth.ErrMissingToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Unauthorized: Missing authorization header",
		},
		{
			name:           "expired token",
			authHeader:     "Bearer expired-token",
			resolveErr:     auth.ErrExpiredToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Unauthorized: Token expired",
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer invalid-token",
			resolveErr:     auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Unauthorized: Invalid token",
		},
		{
			name:           "unexpected error still yields no user",
			authHeader:     "Bearer whatever",
			resolveErr:     errors.New("boom"),
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Unauthorized: Invalid token",
		},
		{
			name:           "nil user without error",
			authHeader:     "Bearer whatever",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Unauthorized: Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotHeader string
			resolver := resolverFunc(func(_ context.Context, header string) (*domain.User, error) {
				gotHeader = header
				return tt.user, tt.resolveErr
			})

			nextCalled := false
			var ctxUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				ctxUser, _ = shared.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			NewAuthMiddleware(resolver).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.authHeader, gotHeader)
			if tt.expectedStatus == http.StatusOK {
				assert.True(t, nextCalled)
				assert.Same(t, tt.user, ctxUser)
				return
			}

			assert.False(t, nextCalled, "next handler must not run without a user")
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMsg, body.Error.Message)
			assert.Equal(t, shared.CodeUnauthorized, body.Error.Code)
		})
	}
}
