package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user includes the stored credential; callers are
	// responsible for stripping it before it leaves the service layer.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create saves a new user, setting its ID and CreatedAt.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
