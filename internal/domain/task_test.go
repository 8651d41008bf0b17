package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, s := range TaskStatuses {
		got, err := ParseTaskStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	for _, raw := range []string{"", "done", "TODO", "in-progress", " todo"} {
		_, err := ParseTaskStatus(raw)
		assert.ErrorIs(t, err, ErrValidation, raw)
		assert.ErrorIs(t, err, ErrInvalidTaskStatus, raw)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "status", vErr.Field)
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
		status      TaskStatus
		wantStatus  TaskStatus
		wantField   string
	}{
		{name: "defaults to todo", title: "Write docs", description: "API reference", wantStatus: TaskStatusTodo},
		{name: "keeps declared status", title: "Ship", description: "v1", status: TaskStatusCompleted, wantStatus: TaskStatusCompleted},
		{name: "missing title", title: "  ", description: "x", wantField: "title"},
		{name: "missing description", title: "x", description: "", wantField: "description"},
		{name: "unknown status", title: "x", description: "y", status: "blocked", wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tt.title, tt.description, tt.status)
			if tt.wantField != "" {
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, task.Status)
			assert.True(t, task.ID.IsZero())
			assert.Nil(t, task.UpdatedAt)
		})
	}
}

func TestTaskUpdateValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, TaskUpdate{}.Validate())
	assert.NoError(t, TaskUpdate{Status: ptr(TaskStatusInProgress)}.Validate())
	assert.NoError(t, TaskUpdate{Title: ptr("new"), Description: ptr("desc")}.Validate())

	assert.ErrorIs(t, TaskUpdate{Status: ptr(TaskStatus("archived"))}.Validate(), ErrInvalidTaskStatus)
	assert.ErrorIs(t, TaskUpdate{Status: ptr(TaskStatus(""))}.Validate(), ErrInvalidTaskStatus)
	assert.ErrorIs(t, TaskUpdate{Title: ptr("")}.Validate(), ErrValidation)
	assert.ErrorIs(t, TaskUpdate{Description: ptr(" ")}.Validate(), ErrValidation)
}

func TestTaskUpdateApply(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := Task{Title: "old", Description: "keep me", Status: TaskStatusTodo, CreatedAt: created}
	now := created.Add(time.Hour)

	TaskUpdate{Title: ptr("new")}.Apply(&task, now)

	assert.Equal(t, "new", task.Title)
	assert.Equal(t, "keep me", task.Description, "absent fields stay untouched")
	assert.Equal(t, TaskStatusTodo, task.Status)
	assert.Equal(t, created, task.CreatedAt)
	require.NotNil(t, task.UpdatedAt)
	assert.Equal(t, now, *task.UpdatedAt)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("title", "is required", nil)
	assert.Equal(t, "title is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	bare := NewValidationError("", "bad input", nil)
	assert.Equal(t, "bad input", bare.Error())
}
