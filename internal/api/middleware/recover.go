package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
)

// Recover turns a handler panic into a 500 error envelope and logs the panic
// value with its stack. http.ErrAbortHandler is re-raised so net/http can
// abort the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.FromContextOrDefault(r.Context(), slog.Default()).Error("panic recovered",
				"panic", redact.String(fmt.Sprint(rvr)),
				"stack", string(debug.Stack()))

			if r.Header.Get("Connection") != "Upgrade" {
				shared.RespondWithError(w, r, http.StatusInternalServerError,
					"An unexpected error occurred", shared.CodeInternal)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
