package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// requestLogger returns the request-scoped logger tagged with the caller.
func (h *TaskHandler) requestLogger(ctx context.Context) *slog.Logger {
	log := logger.FromContextOrDefault(ctx, h.logger)
	if user, ok := shared.UserFromContext(ctx); ok {
		log = log.With(slog.String("user_id", user.ID.Hex()))
	}
	return log
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Error retrieving tasks")
		return
	}

	h.requestLogger(r.Context()).Debug("listed tasks", "count", len(tasks))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, badRequest(err), "")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	status, err := req.TaskStatus()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.Title, req.Description, status)
	if err != nil {
		HandleAPIError(w, r, err, "Error creating task")
		return
	}

	h.requestLogger(r.Context()).Info("task created via API", "task_id", task.ID.Hex())
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, badRequest(err), "")
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), id, req.ToUpdate())
	if err != nil {
		HandleAPIError(w, r, err, "Error updating task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Error deleting task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// Statistics handles GET /tasks/statistics. It always answers 200; store
// failures are reported as zero counts by the service.
func (h *TaskHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats := h.tasks.Statistics(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, statisticsToResponse(stats))
}
