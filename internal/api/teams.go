package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/internal/validation"
)

// ListTeams handles GET /api/v1/teams
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context())
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// GetTeam handles GET /api/v1/teams/{teamID}
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// CreateTeam handles POST /api/v1/teams
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req types.NewTeam
	if !decodeJSON(w, r, &req) {
		return
	}

	var c validation.Collector
	name, verr := validation.TeamName(req.Name)
	c.Add(verr)
	desc, verr := validation.Description(req.Description)
	c.Add(verr)
	teamType, verr := validation.TeamType(string(req.Type))
	c.Add(verr)
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid team", c.Errors())
		return
	}
	req.Name, req.Description, req.Type = name, desc, teamType

	team, err := h.store.CreateTeam(r.Context(), req)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, team)
}

// UpdateTeam handles PATCH /api/v1/teams/{teamID}
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var patch types.TeamPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	var c validation.Collector
	if patch.Name != nil {
		name, verr := validation.TeamName(*patch.Name)
		c.Add(verr)
		patch.Name = &name
	}
	if patch.Description != nil {
		desc, verr := validation.Description(*patch.Description)
		c.Add(verr)
		patch.Description = &desc
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid team update", c.Errors())
		return
	}

	team, err := h.store.UpdateTeam(r.Context(), chi.URLParam(r, "teamID"), patch)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// DeleteTeam handles DELETE /api/v1/teams/{teamID}
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
		MapStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
