package shared

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
)

// ContextKey is the type of keys this package stores in a request context.
type ContextKey string

// Context keys for request-scoped values
const (
	// UserContextKey holds the authenticated *domain.User
	UserContextKey ContextKey = "user"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID stores a trace ID in ctx. The chi request id is reused when
// present, so logs and the X-Request-Id response header set by the trace
// middleware agree; otherwise a uuid is used.
func SetTraceID(ctx context.Context) context.Context {
	traceID := middleware.GetReqID(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext returns the authenticated user stored by the auth middleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// originPolicyKey marks requests whose CORS headers are owned by the CORS
// middleware because an explicit origin list is configured.
const originPolicyKey ContextKey = "explicitOrigins"

// WithExplicitOrigins marks ctx so envelopes do not add the permissive
// cross-origin defaults.
func WithExplicitOrigins(ctx context.Context) context.Context {
	return context.WithValue(ctx, originPolicyKey, true)
}

// HasExplicitOrigins reports whether ctx was marked by WithExplicitOrigins.
func HasExplicitOrigins(ctx context.Context) bool {
	explicit, _ := ctx.Value(originPolicyKey).(bool)
	return explicit
}
