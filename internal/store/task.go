package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Task ids are the opaque string form of the document key; an id that the
// backing store cannot interpret behaves like an id that does not exist.
type TaskStore interface {
	// List returns every task. An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Task, error)

	// GetByID retrieves a task by id.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// Create inserts a task, setting its ID and CreatedAt and clearing UpdatedAt.
	// The task is modified in place.
	Create(ctx context.Context, task *domain.Task) error

	// Update applies the present fields of update atomically and refreshes
	// UpdatedAt. Returns the task as stored after the update.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task by id.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error

	// CountByStatus returns how many tasks currently have status.
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)

	// Count returns the total number of tasks.
	Count(ctx context.Context) (int64, error)

	// InsertMany stores tasks as-is, keeping the timestamps they carry.
	// Used for bootstrap data.
	InsertMany(ctx context.Context, tasks []*domain.Task) error
}
