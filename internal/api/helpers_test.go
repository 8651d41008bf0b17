package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-api/internal/api/middleware"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/mocks"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "api-test-secret-long-enough-for-hs256"

type testEnv struct {
	router http.Handler
	tasks  *mocks.MockTaskStore
	users  *mocks.MockUserStore
	authn  *auth.Authenticator
	token  string
}

// newTestEnv wires the handlers the way the server does, over in-memory stores
// holding one user (admin@example.com / password123).
func newTestEnv(t *testing.T, seed ...*domain.Task) *testEnv {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	users := mocks.NewMockUserStore(&domain.User{
		Email:     "admin@example.com",
		Username:  "admin",
		Password:  hash,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	tasks := mocks.NewMockTaskStore(seed...)

	tokens := auth.NewJWTServiceWithClock(testSecret, 24*time.Hour, time.Now)
	authn, err := auth.NewAuthenticator(users, tokens, auth.NewBcryptVerifier(), nil)
	require.NoError(t, err)
	taskService, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)

	taskHandler := NewTaskHandler(taskService, nil)
	authHandler := NewAuthHandler(authn, nil)
	authMiddleware := middleware.NewAuthMiddleware(authn)

	r := chi.NewRouter()
	r.Get("/health", NewHealthHandler("test").Health)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/tasks/statistics", taskHandler.Statistics)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/tasks", taskHandler.ListTasks)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Put("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)
	})

	token, _, err := tokens.GenerateToken(context.Background(), "admin@example.com")
	require.NoError(t, err)

	return &testEnv{router: r, tasks: tasks, users: users, authn: authn, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	header := ""
	if authorized {
		header = "Bearer " + e.token
	}
	return e.doWithHeader(t, method, path, body, header)
}

func (e *testEnv) doWithHeader(
	t *testing.T,
	method, path string,
	body interface{},
	authorization string,
) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorDetail {
	t.Helper()
	return decode[shared.ErrorResponse](t, rec).Error
}

// serve sends a single request straight to h.
func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
