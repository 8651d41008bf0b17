package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

// LoginService authenticates credentials and issues tokens.
type LoginService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	login  LoginService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(login LoginService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		login:  login,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, badRequest(err), "")
		return
	}

	// Missing credentials are a malformed request, not a validation failure.
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and password are required", shared.CodeBadRequest)
		return
	}

	user, err := h.login.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Error during login")
		return
	}
	if user == nil {
		HandleAPIError(w, r, errors.New("authenticator returned no user"), "Error during login")
		return
	}

	token, expiresAt, err := h.login.IssueToken(r.Context(), user)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	log.Info("user logged in", "user_id", user.ID.Hex())
	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:     token,
		User:      userToResponse(user.Sanitized()),
		ExpiresAt: formatTime(expiresAt),
	})
}
