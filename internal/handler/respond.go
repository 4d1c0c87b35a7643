package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ordertrack/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps the store error taxonomy onto HTTP statuses: validation
// errors are the caller's fault, unknown ids are 404, everything else
// (adapter failures included) is a 500. Per the persistence model a 500 on a
// mutating call does not mean the in-memory change was rolled back.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
