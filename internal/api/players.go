package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/internal/validation"
)

// rosterTeam loads the team for roster routes and rejects personal teams,
// which have no managed roster. Returns false if a response was written.
func (h *Handler) rosterTeam(w http.ResponseWriter, r *http.Request) (types.Team, bool) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		MapStoreError(w, r, err)
		return types.Team{}, false
	}
	if team.Type == types.TeamPersonal {
		WriteProblem(w, r, http.StatusForbidden, "Personal teams do not have a roster")
		return types.Team{}, false
	}
	return team, true
}

// ListPlayers handles GET /api/v1/teams/{teamID}/players
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	team, ok := h.rosterTeam(w, r)
	if !ok {
		return
	}
	players, err := h.store.ListPlayers(r.Context(), team.ID.String())
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, players)
}

// GetPlayer handles GET /api/v1/teams/{teamID}/players/{playerID}
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	team, ok := h.rosterTeam(w, r)
	if !ok {
		return
	}
	player, err := h.store.GetPlayer(r.Context(), team.ID.String(), chi.URLParam(r, "playerID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// CreatePlayer handles POST /api/v1/teams/{teamID}/players
func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	team, ok := h.rosterTeam(w, r)
	if !ok {
		return
	}

	var req types.NewPlayer
	if !decodeJSON(w, r, &req) {
		return
	}

	var c validation.Collector
	first, verr := validation.PlayerName("firstName", req.FirstName)
	c.Add(verr)
	req.FirstName = first
	if req.Number != nil {
		c.Add(validation.PlayerNumber(*req.Number))
	}
	status, verr := validation.PlayerStatus(req.Status)
	c.Add(verr)
	req.Status = string(status)
	positions, verr := validation.Positions(req.Positions)
	c.Add(verr)
	req.Positions = positions
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid player", c.Errors())
		return
	}

	player, err := h.store.CreatePlayer(r.Context(), team.ID.String(), req)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, player)
}

// UpdatePlayer handles PATCH /api/v1/teams/{teamID}/players/{playerID}
func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	team, ok := h.rosterTeam(w, r)
	if !ok {
		return
	}

	var patch types.PlayerPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	var c validation.Collector
	if patch.FirstName != nil {
		first, verr := validation.PlayerName("firstName", *patch.FirstName)
		c.Add(verr)
		patch.FirstName = &first
	}
	if patch.Number != nil {
		c.Add(validation.PlayerNumber(*patch.Number))
	}
	if patch.Status != nil {
		status, verr := validation.PlayerStatus(*patch.Status)
		c.Add(verr)
		s := string(status)
		patch.Status = &s
	}
	if patch.Positions != nil {
		positions, verr := validation.Positions(*patch.Positions)
		c.Add(verr)
		patch.Positions = &positions
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid player update", c.Errors())
		return
	}

	player, err := h.store.UpdatePlayer(r.Context(), team.ID.String(), chi.URLParam(r, "playerID"), patch)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, player)
}

// DeletePlayer handles DELETE /api/v1/teams/{teamID}/players/{playerID}
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	team, ok := h.rosterTeam(w, r)
	if !ok {
		return
	}
	if err := h.store.DeletePlayer(r.Context(), team.ID.String(), chi.URLParam(r, "playerID")); err != nil {
		MapStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
