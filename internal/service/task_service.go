package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// ListTasks returns every task.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// CreateTask validates and stores a new task. An empty status defaults to todo.
	// Invalid input never reaches the store.
	CreateTask(ctx context.Context, title, description string, status domain.TaskStatus) (*domain.Task, error)

	// UpdateTask applies the present fields of update to task id.
	UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes task id.
	DeleteTask(ctx context.Context, id string) error

	// Statistics counts tasks per status. Store failures yield all-zero
	// counts instead of an error.
	Statistics(ctx context.Context) domain.TaskStatistics
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (*TaskServiceImpl, error) {
	if tasks == nil {
		return nil, fmt.Errorf("tasks cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:  tasks,
		logger: logger.With("component", "task_service"),
	}, nil
}

// ListTasks implements TaskService
func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask implements TaskService
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	title, description string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description, status)
	if err != nil {
		log.Debug("rejected task creation", "error", err)
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		"task_id", task.ID.Hex(),
		"status", task.Status)
	return task, nil
}

// UpdateTask implements TaskService
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		log.Debug("rejected task update", "task_id", id, "error", err)
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated", "task_id", task.ID.Hex())
	return task, nil
}

// DeleteTask implements TaskService
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", "task_id", id)
	return nil
}

// Statistics implements TaskService
func (s *TaskServiceImpl) Statistics(ctx context.Context) domain.TaskStatistics {
	log := logger.FromContextOrDefault(ctx, s.logger)

	counts := make(map[domain.TaskStatus]int64, len(domain.TaskStatuses))
	for _, status := range domain.TaskStatuses {
		n, err := s.tasks.CountByStatus(ctx, status)
		if err != nil {
			log.Error("task statistics unavailable, reporting zeros",
				"status", status,
				"error", redact.Error(err))
			return domain.TaskStatistics{}
		}
		counts[status] = n
	}

	return domain.TaskStatistics{
		Todo:       counts[domain.TaskStatusTodo],
		InProgress: counts[domain.TaskStatusInProgress],
		Completed:  counts[domain.TaskStatusCompleted],
	}
}
