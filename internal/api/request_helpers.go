package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// getPathID extracts a task id from the URL path parameters. The value is
// opaque here; an id the store cannot interpret resolves to "not found".
func getPathID(r *http.Request, paramName string) (string, error) {
	id := chi.URLParam(r, paramName)
	if id == "" {
		return "", fmt.Errorf("%w: missing path parameter %q", ErrBadRequest, paramName)
	}
	return id, nil
}
