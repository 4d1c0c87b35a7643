package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ordertrack/internal/model"
	"ordertrack/internal/service"
)

func GetMastersHandler(masters *service.MasterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, masters.All())
	}
}

// ReplaceMastersHandler swaps in a whole new masters document.
func ReplaceMastersHandler(masters *service.MasterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m model.Masters
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			http.Error(w, "invalid masters payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := masters.Replace(r.Context(), m); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

type masterValueRequest struct {
	Value string `json:"value"`
}

// AddMasterHandler appends one value to the list named in the URL.
func AddMasterHandler(masters *service.MasterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req masterValueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := masters.Add(r.Context(), chi.URLParam(r, "list"), req.Value); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, masters.All())
	}
}

type masterMoveRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

// MoveMasterHandler swaps an entry with its neighbor. Boundary moves are
// accepted and change nothing.
func MoveMasterHandler(masters *service.MasterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req masterMoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Direction != "up" && req.Direction != "down" {
			http.Error(w, "direction must be \"up\" or \"down\"", http.StatusBadRequest)
			return
		}
		err := masters.Move(r.Context(), chi.URLParam(r, "list"), req.Index, req.Direction == "up")
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, masters.All())
	}
}

// RemoveMasterHandler drops one value from the named list. The value rides
// in the body because master entries are free text.
func RemoveMasterHandler(masters *service.MasterStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req masterValueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := masters.Remove(r.Context(), chi.URLParam(r, "list"), req.Value); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, masters.All())
	}
}
