package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/ignite/message-relay/internal/pkg/logger"
)

// Text writes a plain-text response with the given status code.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if body != "" {
		w.Write([]byte(body))
	}
}

// JSON serializes data as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("response encoding failed", "error", err)
	}
}

// Raw writes a pre-encoded response body with the given content type.
func Raw(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	if len(body) > 0 {
		w.Write(body)
	}
}

// NoContent writes a bare 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// InternalError logs the real error and writes a generic 500 body, never
// leaking internal detail to the client.
func InternalError(w http.ResponseWriter, err error) {
	logger.Error("internal error", "error", err)
	Text(w, http.StatusInternalServerError, "Internal server error")
}
