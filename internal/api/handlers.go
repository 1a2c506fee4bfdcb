// Package api is the HTTP surface of the local development server. It mirrors
// the hosted HackTracker API closely enough for the sync client to run against
// it during development.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hacktracker/dugout/internal/store"
)

// Handler implements the API handlers
type Handler struct {
	store   *store.SQLiteStore
	apiKey  string
	version string
}

// NewHandler creates a new Handler backed by the given store.
func NewHandler(s *store.SQLiteStore, apiKey, version string) *Handler {
	return &Handler{
		store:   s,
		apiKey:  apiKey,
		version: version,
	}
}

// HealthResponse is the payload returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into dst, writing a 400 problem
// response on failure. Returns false if decoding failed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid JSON: %s", err.Error()))
		return false
	}
	return true
}
