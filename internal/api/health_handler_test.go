package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("production")
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 30, 0, 0, time.FixedZone("CET", 3600)) }

	rec := serve(t, http.HandlerFunc(h.Health), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "production", resp.Environment)
	assert.Equal(t, "2025-06-01T11:30:00Z", resp.Timestamp)
}

func TestHealth_NoTokenNeeded(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", decode[HealthResponse](t, rec).Environment)
}
