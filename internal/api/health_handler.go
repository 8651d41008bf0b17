package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/task-api/internal/api/shared"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	environment string
	now         func() time.Time
}

// NewHealthHandler creates a HealthHandler reporting environment.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment, now: time.Now}
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Environment: h.environment,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
	})
}
