package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/phrazzld/task-api/internal/store"
)

// ErrBadRequest marks a request that could not be read at all (malformed or
// missing body, missing required login fields).
var ErrBadRequest = errors.New("bad request")

// badRequest wraps a body decoding failure so it maps to 400. Field-level
// validation failures (a value of the wrong JSON type) pass through as 422.
func badRequest(cause error) error {
	if errors.Is(cause, domain.ErrValidation) {
		return cause
	}
	return fmt.Errorf("%w: %v", ErrBadRequest, cause)
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &validationErrs):
		return http.StatusUnprocessableEntity

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		auth.IsTokenError(err):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code for a status produced by
// MapErrorToStatusCode.
func ErrorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return shared.CodeBadRequest
	case http.StatusUnprocessableEntity:
		return shared.CodeValidation
	case http.StatusUnauthorized:
		return shared.CodeUnauthorized
	case http.StatusNotFound:
		return shared.CodeNotFound
	default:
		return shared.CodeInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(validationErrs)

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, ErrBadRequest):
		return "Invalid request format"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Unauthorized: Token expired"

	case errors.Is(err, auth.ErrMissingToken):
		return "Unauthorized: Missing authorization header"

	case auth.IsTokenError(err):
		return "Unauthorized: Invalid token"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator failures into a message naming
// the first offending field by its JSON name.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("%s %s", fe.Field(), getValidationTagMessage(fe.Tag(), fe.Param()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + param
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message for internal errors so clients get a hint of which
// operation failed. 5xx errors are logged at ERROR with the redacted cause.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	log := logger.FromContextOrDefault(r.Context(), slog.Default())
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	log.Log(r.Context(), level, "API error response",
		"status_code", status,
		"user_message", message,
		"error", redact.Error(err),
		"error_type", fmt.Sprintf("%T", err))

	shared.RespondWithError(w, r, status, message, ErrorCode(status))
}
