package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "authenticator-test-secret-long-enough"

func newAuthenticator(t *testing.T, users *mocks.MockUserStore, now time.Time) *auth.Authenticator {
	t.Helper()
	tokens := auth.NewJWTServiceWithClock(secret, 24*time.Hour, func() time.Time { return now })
	a, err := auth.NewAuthenticator(users, tokens, auth.NewBcryptVerifier(), nil)
	require.NoError(t, err)
	return a
}

func seededUsers(t *testing.T) *mocks.MockUserStore {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	return mocks.NewMockUserStore(&domain.User{
		Email:    "admin@example.com",
		Username: "admin",
		Password: hash,
	})
}

func TestNewAuthenticator_RequiresDependencies(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	tokens := &mocks.MockJWTService{}
	verifier := &mocks.MockPasswordVerifier{}

	_, err := auth.NewAuthenticator(nil, tokens, verifier, nil)
	assert.Error(t, err)
	_, err = auth.NewAuthenticator(users, nil, verifier, nil)
	assert.Error(t, err)
	_, err = auth.NewAuthenticator(users, tokens, nil, nil)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return sanitized user", func(t *testing.T) {
		t.Parallel()
		a := newAuthenticator(t, seededUsers(t), time.Now())

		user, err := a.Authenticate(context.Background(), "admin@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "admin@example.com", user.Email)
		assert.Equal(t, "admin", user.Username)
		assert.Empty(t, user.Password)
	})

	// The real verification path is authoritative: there is no credential bypass.
	t.Run("unknown email is rejected", func(t *testing.T) {
		t.Parallel()
		a := newAuthenticator(t, seededUsers(t), time.Now())

		user, err := a.Authenticate(context.Background(), "anyone@backend", "password123")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		t.Parallel()
		a := newAuthenticator(t, seededUsers(t), time.Now())

		user, err := a.Authenticate(context.Background(), "admin@example.com", "letmein")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		t.Parallel()
		users := mocks.NewMockUserStore()
		boom := errors.New("connection reset")
		users.GetByEmailFn = func(context.Context, string) (*domain.User, error) {
			return nil, boom
		}
		a := newAuthenticator(t, users, time.Now())

		_, err := a.Authenticate(context.Background(), "admin@example.com", "password123")

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestIssueToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	a := newAuthenticator(t, seededUsers(t), now)

	token, expiresAt, err := a.IssueToken(context.Background(), &domain.User{Email: "admin@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, now.Add(24*time.Hour), expiresAt.UTC())

	_, _, err = a.IssueToken(context.Background(), &domain.User{})
	assert.Error(t, err)
}

func TestCurrentUser(t *testing.T) {
	t.Parallel()

	now := time.Now()
	users := seededUsers(t)
	a := newAuthenticator(t, users, now)

	token, _, err := a.IssueToken(context.Background(), &domain.User{Email: "admin@example.com"})
	require.NoError(t, err)
	ghostToken, _, err := a.IssueToken(context.Background(), &domain.User{Email: "ghost@example.com"})
	require.NoError(t, err)
	expired := newAuthenticator(t, users, now.Add(-48*time.Hour))
	expiredToken, _, err := expired.IssueToken(context.Background(), &domain.User{Email: "admin@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "valid bearer token", header: "Bearer " + token},
		{name: "missing header", header: "", wantErr: auth.ErrMissingToken},
		{name: "empty bearer value", header: "Bearer ", wantErr: auth.ErrMissingToken},
		{name: "wrong scheme", header: "Basic " + token, wantErr: auth.ErrInvalidToken},
		{name: "lowercase scheme", header: "bearer " + token, wantErr: auth.ErrInvalidToken},
		{name: "token without scheme", header: token, wantErr: auth.ErrInvalidToken},
		{name: "garbage token", header: "Bearer valid.jwt.token", wantErr: auth.ErrInvalidToken},
		{name: "expired token", header: "Bearer " + expiredToken, wantErr: auth.ErrExpiredToken},
		{name: "subject no longer exists", header: "Bearer " + ghostToken, wantErr: auth.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			user, err := a.CurrentUser(context.Background(), tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.True(t, auth.IsTokenError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin@example.com", user.Email)
			assert.Empty(t, user.Password)
		})
	}
}

func TestCurrentUser_StoreFailureYieldsNoUser(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	users.GetByEmailFn = func(context.Context, string) (*domain.User, error) {
		return nil, errors.New("server selection timeout")
	}
	tokens := &mocks.MockJWTService{Claims: &auth.Claims{Subject: "admin@example.com"}}
	a, err := auth.NewAuthenticator(users, tokens, &mocks.MockPasswordVerifier{}, nil)
	require.NoError(t, err)

	user, err := a.CurrentUser(context.Background(), "Bearer anything")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
