package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"loan-quote/domain"
)

const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps service errors onto status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: invalid.Error(), Field: invalid.Field})
	case errors.Is(err, domain.ErrNoAffordablePeriod):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// writeJSON encodes into a buffer first so a failed encode does not leave a
// half-written 200.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		slog.ErrorContext(r.Context(), "error encoding response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.WarnContext(r.Context(), "error writing response", "error", err)
	}
}

// decodeJSON reads a JSON request body into dst. It writes the error response
// itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.DebugContext(r.Context(), "error decoding request body", "error", err)

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return false
		}
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
