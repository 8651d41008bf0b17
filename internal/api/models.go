package api

import (
	"encoding/json"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
)

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      OptionalString `json:"status"`
}

// TaskStatus resolves the requested status. An absent field defaults to
// todo; a present one, including "" and null, must be a known status.
func (r CreateTaskRequest) TaskStatus() (domain.TaskStatus, error) {
	if !r.Status.Set {
		return domain.TaskStatusTodo, nil
	}
	raw := ""
	if r.Status.Value != nil {
		raw = *r.Status.Value
	}
	return domain.ParseTaskStatus(raw)
}

// OptionalString is a JSON string field that remembers whether it appeared
// in the body, so an explicit null can be told apart from an absent key.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// present in the body.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent (or null) fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// ToUpdate converts the request into a domain update.
func (r UpdateTaskRequest) ToUpdate() domain.TaskUpdate {
	update := domain.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		update.Status = &status
	}
	return update
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// UserResponse is the wire form of a user. It never carries the credential.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
	// ExpiresAt is the ISO 8601 timestamp when the token expires
	ExpiresAt string `json:"expires_at"`
}

// StatisticsResponse counts tasks per status.
type StatisticsResponse struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func taskToResponse(task *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.Hex(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   formatTime(task.CreatedAt),
	}
	if task.UpdatedAt != nil {
		updated := formatTime(*task.UpdatedAt)
		resp.UpdatedAt = &updated
	}
	return resp
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = taskToResponse(task)
	}
	return out
}

func userToResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID.Hex(),
		Email:    user.Email,
		Username: user.Username,
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = formatTime(user.CreatedAt)
	}
	return resp
}

func statisticsToResponse(stats domain.TaskStatistics) StatisticsResponse {
	return StatisticsResponse{
		Todo:       stats.Todo,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
	}
}
