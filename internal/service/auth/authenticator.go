package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// BearerPrefix is the literal prefix required on the Authorization header.
const BearerPrefix = "Bearer "

// Authenticator resolves users from credentials and from bearer tokens.
type Authenticator struct {
	users    store.UserStore
	tokens   JWTService
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(
	users store.UserStore,
	tokens JWTService,
	verifier PasswordVerifier,
	logger *slog.Logger,
) (*Authenticator, error) {
	if users == nil {
		return nil, fmt.Errorf("users cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("tokens cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		logger:   logger.With(slog.String("component", "authenticator")),
	}, nil
}

// Authenticate checks email and password against the user store and returns
// the user without its stored credential. An unknown email and a password
// mismatch both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.verifier.Compare(user.Password, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}

	return user.Sanitized(), nil
}

// IssueToken creates an access token whose subject is user's email and
// returns it with its expiry.
func (a *Authenticator) IssueToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	if user == nil || user.Email == "" {
		return "", time.Time{}, fmt.Errorf("cannot issue a token without a subject")
	}
	return a.tokens.GenerateToken(ctx, user.Email)
}

// CurrentUser resolves the user named by an Authorization header value.
// The value must start with "Bearer ". Token failures are returned as
// ErrMissingToken, ErrInvalidToken or ErrExpiredToken. A subject that cannot be
// resolved to a user, for any reason, is reported as ErrInvalidToken.
func (a *Authenticator) CurrentUser(ctx context.Context, header string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if header == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(header, BearerPrefix) {
		log.Debug("authorization header without bearer prefix")
		return nil, ErrInvalidToken
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := a.tokens.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if claims == nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := a.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("token subject no longer resolves to a user")
		} else {
			log.Error("failed to resolve token subject", "error", redact.Error(err))
		}
		return nil, ErrInvalidToken
	}

	return user.Sanitized(), nil
}
