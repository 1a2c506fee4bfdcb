package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/internal/validation"
)

// ListGames handles GET /api/v1/teams/{teamID}/games
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	games, err := h.store.ListGames(r.Context(), team.ID.String())
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, games)
}

// CreateGame handles POST /api/v1/teams/{teamID}/games
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}

	var req types.NewGame
	if !decodeJSON(w, r, &req) {
		return
	}

	var c validation.Collector
	title, verr := validation.GameTitle(req.Title)
	c.Add(verr)
	req.Title = title
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid game", c.Errors())
		return
	}

	game, err := h.store.CreateGame(r.Context(), team.ID.String(), req)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, game)
}

// GetGame handles GET /api/v1/teams/{teamID}/games/{gameID}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	game, err := h.store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	if game.TeamID != team.ID.String() {
		WriteProblem(w, r, http.StatusNotFound, "Resource not found")
		return
	}
	respondJSON(w, http.StatusOK, game)
}

// UpdateGame handles PATCH /api/v1/teams/{teamID}/games/{gameID}
func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	game, err := h.store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	if game.TeamID != team.ID.String() {
		WriteProblem(w, r, http.StatusNotFound, "Resource not found")
		return
	}

	var patch types.GamePatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	var c validation.Collector
	if patch.Title != nil {
		title, verr := validation.GameTitle(*patch.Title)
		c.Add(verr)
		patch.Title = &title
	}
	if patch.Status != nil {
		status, verr := validation.GameStatus(string(*patch.Status))
		c.Add(verr)
		patch.Status = &status
	}
	if patch.TeamScore != nil {
		c.Add(validation.Score("teamScore", *patch.TeamScore))
	}
	if patch.OpponentScore != nil {
		c.Add(validation.Score("opponentScore", *patch.OpponentScore))
	}
	if patch.Lineup != nil {
		c.Add(validation.Lineup(*patch.Lineup))
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid game update", c.Errors())
		return
	}

	if verr := h.checkGameTransition(r, team, game, patch); verr != nil {
		WriteProblem(w, r, verr.status, verr.detail)
		return
	}

	updated, err := h.store.UpdateGame(r.Context(), team.ID.String(), game.ID.String(), patch)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

type transitionError struct {
	status int
	detail string
}

// checkGameTransition enforces the lifecycle rules around starting a game:
// a managed team's game needs a lineup before going in progress, and every
// lineup slot must reference a player on the roster.
func (h *Handler) checkGameTransition(r *http.Request, team types.Team, game types.Game, patch types.GamePatch) *transitionError {
	lineup := game.Lineup
	if patch.Lineup != nil {
		lineup = *patch.Lineup
	}

	if len(lineup) > 0 && team.Type == types.TeamManaged {
		players, err := h.store.ListPlayers(r.Context(), team.ID.String())
		if err != nil {
			return &transitionError{http.StatusInternalServerError, "Internal Server Error"}
		}
		onRoster := make(map[string]bool, len(players))
		for _, p := range players {
			onRoster[p.ID.String()] = true
		}
		for _, slot := range lineup {
			if !onRoster[slot.PlayerID] {
				return &transitionError{http.StatusUnprocessableEntity, "Lineup references a player not on the roster"}
			}
		}
	}

	starting := patch.Status != nil && *patch.Status == types.GameInProgress
	if starting && team.Type == types.TeamManaged && len(lineup) == 0 {
		return &transitionError{http.StatusConflict, "A lineup is required before the game can start"}
	}
	return nil
}

// DeleteGame handles DELETE /api/v1/teams/{teamID}/games/{gameID}
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteGame(r.Context(), chi.URLParam(r, "teamID"), chi.URLParam(r, "gameID")); err != nil {
		MapStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
