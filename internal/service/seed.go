package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// Default account created when the user collection is empty.
const (
	DefaultUserEmail    = "admin@example.com"
	DefaultUserName     = "admin"
	DefaultUserPassword = "password123"
)

// DefaultTasks returns the tasks inserted when the task collection is empty,
// one per status.
func DefaultTasks() []*domain.Task {
	return []*domain.Task{
		{
			Title:       "Implement authentication",
			Description: "Build login and registration for users",
			Status:      domain.TaskStatusCompleted,
		},
		{
			Title:       "Design user interface",
			Description: "Create UI/UX designs for the task management app",
			Status:      domain.TaskStatusInProgress,
		},
		{
			Title:       "Configure database",
			Description: "Set up MongoDB and the collections the app needs",
			Status:      domain.TaskStatusTodo,
		},
	}
}

// Seeder fills empty collections with bootstrap data.
type Seeder struct {
	users  store.UserStore
	tasks  store.TaskStore
	hash   func(string) (string, error)
	logger *slog.Logger
}

// NewSeeder creates a Seeder. Passwords are stored as bcrypt hashes.
func NewSeeder(users store.UserStore, tasks store.TaskStore, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		users:  users,
		tasks:  tasks,
		hash:   auth.HashPassword,
		logger: logger.With("component", "seeder"),
	}
}

// Seed creates the default user if there are no users and the default tasks
// if there are no tasks. Non-empty collections are left alone.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	return s.seedTasks(ctx)
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		s.logger.Debug("users present, skipping user seed", "count", n)
		return nil
	}

	hash, err := s.hash(DefaultUserPassword)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	user := &domain.User{
		Email:    DefaultUserEmail,
		Username: DefaultUserName,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}

	s.logger.Info("seeded default user", "user_id", user.ID.Hex())
	return nil
}

func (s *Seeder) seedTasks(ctx context.Context) error {
	n, err := s.tasks.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if n > 0 {
		s.logger.Debug("tasks present, skipping task seed", "count", n)
		return nil
	}

	tasks := DefaultTasks()
	if err := s.tasks.InsertMany(ctx, tasks); err != nil {
		return fmt.Errorf("failed to insert default tasks: %w", err)
	}

	s.logger.Info("seeded default tasks", "count", len(tasks))
	return nil
}
