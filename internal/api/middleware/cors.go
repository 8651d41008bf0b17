package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/phrazzld/task-api/internal/api/shared"
)

// NewCORSMiddleware applies the allowed-origin list. A list containing "*"
// keeps the permissive envelope defaults; any other list makes go-chi/cors
// the only source of Access-Control-* headers, so a disallowed origin gets
// none.
func NewCORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	handler := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})

	if allowsAnyOrigin(allowedOrigins) {
		return handler
	}

	return func(next http.Handler) http.Handler {
		mark := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(shared.WithExplicitOrigins(r.Context())))
		})
		return handler(mark)
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
