package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	CountFn      func(ctx context.Context) (int64, error)

	mu    sync.Mutex
	users map[string]*domain.User
	calls map[string]int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store holding users, keyed by email.
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{
		users: make(map[string]*domain.User),
		calls: make(map[string]int),
	}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		clone := *u
		m.users[u.Email] = &clone
	}
	return m
}

// Calls returns how many times method was invoked.
func (m *MockUserStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockUserStore) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return store.ErrEmailExists
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	clone := *user
	m.users[user.Email] = &clone
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.record("GetByEmail")
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// Count implements the UserStore interface
func (m *MockUserStore) Count(ctx context.Context) (int64, error) {
	m.record("Count")
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}
