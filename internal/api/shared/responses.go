package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/task-api/internal/platform/logger"
)

// Machine-readable error codes carried in ErrorDetail.Code
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
)

// Envelope is the uniform response wrapper: a status code, headers and a
// JSON body. It is the only place the wire representation is written.
type Envelope struct {
	Status  int
	Headers http.Header
	Body    interface{}
}

// ErrorDetail is the content of an error body.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// DefaultHeaders returns the headers every response carries: a JSON content
// type and permissive cross-origin headers.
func DefaultHeaders() http.Header {
	h := make(http.Header, 3)
	h.Set("Content-Type", "application/json")
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Credentials", "true")
	return h
}

// NewEnvelope creates an envelope with the default headers.
func NewEnvelope(status int, body interface{}) *Envelope {
	return &Envelope{
		Status:  status,
		Headers: DefaultHeaders(),
		Body:    body,
	}
}

// NewErrorEnvelope creates an envelope whose body is an ErrorResponse.
func NewErrorEnvelope(status int, message, code, traceID string) *Envelope {
	return NewEnvelope(status, ErrorResponse{
		Error: ErrorDetail{
			Message: message,
			Code:    code,
			TraceID: traceID,
		},
	})
}

// Write sends the envelope. The content type is always JSON; other envelope
// headers only fill in values the middleware chain has not already set. When
// the request carries an explicit origin list (see WithExplicitOrigins) the
// Access-Control-* headers are left entirely to the CORS middleware.
func (e *Envelope) Write(w http.ResponseWriter, r *http.Request) {
	explicitOrigins := r != nil && HasExplicitOrigins(r.Context())
	dst := w.Header()
	for key, values := range e.Headers {
		if explicitOrigins && strings.HasPrefix(key, "Access-Control-") {
			continue
		}
		if key == "Content-Type" || dst.Get(key) == "" {
			dst[key] = append([]string(nil), values...)
		}
	}
	w.WriteHeader(e.Status)

	if e.Body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(e.Body); err != nil {
		ctx := r.Context()
		logger.FromContextOrDefault(ctx, slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	NewEnvelope(status, data).Write(w, r)
}

// RespondWithError writes a JSON error response with the given status code,
// message and machine-readable code. The trace ID from the request context is
// included when present.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message, code string) {
	traceID := GetTraceID(r.Context())

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending error response",
		"status_code", status,
		"message", message,
		"code", code,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	NewErrorEnvelope(status, message, code, traceID).Write(w, r)
}
