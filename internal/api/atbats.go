package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/internal/validation"
)

// ListAtBats handles GET /api/v1/games/{gameID}/at-bats
func (h *Handler) ListAtBats(w http.ResponseWriter, r *http.Request) {
	game, err := h.store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	atBats, err := h.store.ListAtBats(r.Context(), game.ID.String())
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, atBats)
}

// GetAtBat handles GET /api/v1/games/{gameID}/at-bats/{atBatID}
func (h *Handler) GetAtBat(w http.ResponseWriter, r *http.Request) {
	atBat, err := h.store.GetAtBat(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "atBatID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, atBat)
}

// CreateAtBat handles POST /api/v1/games/{gameID}/at-bats
func (h *Handler) CreateAtBat(w http.ResponseWriter, r *http.Request) {
	game, err := h.store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	// At-bats may only be recorded while the game is live
	if game.Status != types.GameInProgress {
		WriteProblem(w, r, http.StatusConflict, "At-bats can only be recorded while the game is in progress")
		return
	}

	var req types.NewAtBat
	if !decodeJSON(w, r, &req) {
		return
	}

	var c validation.Collector
	if req.PlayerID == "" {
		c.Add(&validation.ValidationError{Field: "playerId", Message: "playerId is required"})
	}
	c.Add(validation.AtBatResult(req.Result))
	c.Add(validation.Inning(req.Inning))
	c.Add(validation.Outs(req.Outs))
	c.Add(validation.BattingOrder(req.BattingOrder))
	if req.RBIs != nil {
		c.Add(validation.RBIs(*req.RBIs))
	}
	hitType, verr := validation.HitType(req.HitType)
	c.Add(verr)
	req.HitType = hitType
	if req.PlayerID != "" && len(game.Lineup) > 0 && !lineupContains(game.Lineup, req.PlayerID) {
		c.Add(&validation.ValidationError{Field: "playerId", Message: "player is not in the game lineup"})
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid at-bat", c.Errors())
		return
	}

	atBat, err := h.store.CreateAtBat(r.Context(), game.ID.String(), game.TeamID, req)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, atBat)
}

func lineupContains(lineup []types.LineupSlot, playerID string) bool {
	for _, slot := range lineup {
		if slot.PlayerID == playerID {
			return true
		}
	}
	return false
}

// UpdateAtBat handles PATCH /api/v1/games/{gameID}/at-bats/{atBatID}
func (h *Handler) UpdateAtBat(w http.ResponseWriter, r *http.Request) {
	var patch types.AtBatPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	var c validation.Collector
	if patch.Result != nil {
		c.Add(validation.AtBatResult(*patch.Result))
	}
	if patch.Inning != nil {
		c.Add(validation.Inning(*patch.Inning))
	}
	if patch.Outs != nil {
		c.Add(validation.Outs(*patch.Outs))
	}
	if patch.RBIs != nil {
		c.Add(validation.RBIs(*patch.RBIs))
	}
	if patch.HitType != nil {
		hitType, verr := validation.HitType(*patch.HitType)
		c.Add(verr)
		patch.HitType = &hitType
	}
	if c.HasErrors() {
		WriteProblemWithErrors(w, r, "Invalid at-bat update", c.Errors())
		return
	}

	atBat, err := h.store.UpdateAtBat(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "atBatID"), patch)
	if err != nil {
		MapStoreError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, atBat)
}

// DeleteAtBat handles DELETE /api/v1/games/{gameID}/at-bats/{atBatID}
func (h *Handler) DeleteAtBat(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAtBat(r.Context(), chi.URLParam(r, "gameID"), chi.URLParam(r, "atBatID")); err != nil {
		MapStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
