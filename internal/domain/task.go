package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus represents where a task is in its lifecycle.
type TaskStatus string

// Possible task status values
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts raw input to a TaskStatus. Only the three known
// values are accepted; an empty string is invalid. Callers decide the default
// for an absent status.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(raw)
	if !status.Valid() {
		return "", NewValidationError(
			"status",
			fmt.Sprintf("must be one of %s", strings.Join(statusNames(), ", ")),
			ErrInvalidTaskStatus,
		)
	}
	return status, nil
}

func statusNames() []string {
	names := make([]string, len(TaskStatuses))
	for i, s := range TaskStatuses {
		names[i] = string(s)
	}
	return names
}

// Task is a unit of work tracked by the team.
// UpdatedAt stays nil until the first update.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      TaskStatus         `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   *time.Time         `bson:"updated_at"`
}

// NewTask builds an unsaved task. An empty status defaults to todo.
// CreatedAt is left for the store to set at insertion time.
func NewTask(title, description string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusTodo
	}

	task := &Task{
		Title:       title,
		Description: description,
		Status:      status,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the fields a caller controls.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", nil)
	}
	if strings.TrimSpace(t.Description) == "" {
		return NewValidationError("description", "is required", nil)
	}
	if !t.Status.Valid() {
		_, err := ParseTaskStatus(string(t.Status))
		return err
	}
	return nil
}

// TaskUpdate is a partial modification. Nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// Validate checks every field that is present.
func (u TaskUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewValidationError("title", "cannot be empty", nil)
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return NewValidationError("description", "cannot be empty", nil)
	}
	if u.Status != nil {
		if _, err := ParseTaskStatus(string(*u.Status)); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the present fields onto t and stamps UpdatedAt with now.
func (u TaskUpdate) Apply(t *Task, now time.Time) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	t.UpdatedAt = &now
}

// TaskStatistics counts tasks per status.
type TaskStatistics struct {
	Todo       int64
	InProgress int64
	Completed  int64
}
