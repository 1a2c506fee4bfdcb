package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/pkg/offline"
)

// The plan builders below all follow the same identity-matching convention:
// adds append a synthetic-id placeholder that reconciliation swaps for the
// canonical server item; updates and removes capture the prior item inside
// Apply (which runs under the state lock, atomically with the optimistic
// write) so rollback can restore it verbatim. Settlement helpers are no-ops
// when the target id has meanwhile been removed by another mutation.

// CreateTeam optimistically adds a team and submits it to the server.
func (t *Tracker) CreateTeam(ctx context.Context, req types.NewTeam) (types.Team, bool) {
	if req.Type == "" {
		req.Type = types.TeamManaged
	}
	now := time.Now().UTC()
	placeholder := types.Team{
		ID:          offline.NewSyntheticID(),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return offline.Mutate(ctx, t.Teams(), offline.Plan[types.Team, types.Team]{
		Apply: func(items []types.Team) []types.Team {
			return append(items, placeholder)
		},
		Call: func(ctx context.Context) (types.Team, error) {
			return t.client.Teams().Create(ctx, req)
		},
		Reconcile: func(items []types.Team, created types.Team) []types.Team {
			return offline.Replace(items, placeholder.ID, created)
		},
		Rollback: func(items []types.Team) []types.Team {
			return offline.Remove(items, placeholder.ID)
		},
		Success: fmt.Sprintf("Team %q created", req.Name),
		Failure: fmt.Sprintf("Could not create team %q", req.Name),
	})
}

// UpdateTeam optimistically applies a partial team update.
func (t *Tracker) UpdateTeam(ctx context.Context, id string, patch types.TeamPatch) (types.Team, bool) {
	target := offline.CanonicalID(id)
	var prior types.Team
	var had bool

	return offline.Mutate(ctx, t.Teams(), offline.Plan[types.Team, types.Team]{
		Apply: func(items []types.Team) []types.Team {
			prior, had = offline.Find(items, target)
			if !had {
				return items
			}
			return offline.Replace(items, target, patchTeam(prior, patch))
		},
		Call: func(ctx context.Context) (types.Team, error) {
			return t.client.Teams().Update(ctx, id, patch)
		},
		Reconcile: func(items []types.Team, updated types.Team) []types.Team {
			return offline.Replace(items, target, updated)
		},
		Rollback: func(items []types.Team) []types.Team {
			if !had {
				return items
			}
			return offline.Replace(items, target, prior)
		},
		Success: "Team updated",
		Failure: "Could not update team",
	})
}

// DeleteTeam optimistically removes a team. On success the team's dependent
// cached collections are dropped as well.
func (t *Tracker) DeleteTeam(ctx context.Context, id string) bool {
	target := offline.CanonicalID(id)
	var prior types.Team
	var had bool

	_, ok := offline.Mutate(ctx, t.Teams(), offline.Plan[types.Team, struct{}]{
		Apply: func(items []types.Team) []types.Team {
			prior, had = offline.Find(items, target)
			return offline.Remove(items, target)
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, t.client.Teams().Delete(ctx, id)
		},
		Rollback: func(items []types.Team) []types.Team {
			if !had {
				return items
			}
			return append(items, prior)
		},
		Success: "Team deleted",
		Failure: "Could not delete team",
	})
	if ok && t.cache != nil {
		t.cache.Clear(rosterPrefix + id)
		t.cache.Clear(gamesPrefix + id)
	}
	return ok
}

// AddPlayer optimistically adds a player to a team's roster.
func (t *Tracker) AddPlayer(ctx context.Context, teamID string, req types.NewPlayer) (types.Player, bool) {
	status := types.PlayerStatus(req.Status)
	if status == "" {
		status = types.PlayerActive
	}
	now := time.Now().UTC()
	placeholder := types.Player{
		ID:        offline.NewSyntheticID(),
		TeamID:    teamID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Number:    req.Number,
		Status:    status,
		Positions: req.Positions,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return offline.Mutate(ctx, t.Roster(teamID), offline.Plan[types.Player, types.Player]{
		Apply: func(items []types.Player) []types.Player {
			return append(items, placeholder)
		},
		Call: func(ctx context.Context) (types.Player, error) {
			return t.client.Players(teamID).Add(ctx, req)
		},
		Reconcile: func(items []types.Player, created types.Player) []types.Player {
			return offline.Replace(items, placeholder.ID, created)
		},
		Rollback: func(items []types.Player) []types.Player {
			return offline.Remove(items, placeholder.ID)
		},
		Success: fmt.Sprintf("%s added to roster", placeholder.DisplayName()),
		Failure: fmt.Sprintf("Could not add %s", placeholder.DisplayName()),
	})
}

// UpdatePlayer optimistically applies a partial player update.
func (t *Tracker) UpdatePlayer(ctx context.Context, teamID, id string, patch types.PlayerPatch) (types.Player, bool) {
	target := offline.CanonicalID(id)
	var prior types.Player
	var had bool

	return offline.Mutate(ctx, t.Roster(teamID), offline.Plan[types.Player, types.Player]{
		Apply: func(items []types.Player) []types.Player {
			prior, had = offline.Find(items, target)
			if !had {
				return items
			}
			return offline.Replace(items, target, patchPlayer(prior, patch))
		},
		Call: func(ctx context.Context) (types.Player, error) {
			return t.client.Players(teamID).Update(ctx, id, patch)
		},
		Reconcile: func(items []types.Player, updated types.Player) []types.Player {
			return offline.Replace(items, target, updated)
		},
		Rollback: func(items []types.Player) []types.Player {
			if !had {
				return items
			}
			return offline.Replace(items, target, prior)
		},
		Success: "Player updated",
		Failure: "Could not update player",
	})
}

// RemovePlayer optimistically removes a player from the roster.
func (t *Tracker) RemovePlayer(ctx context.Context, teamID, id string) bool {
	target := offline.CanonicalID(id)
	var prior types.Player
	var had bool

	_, ok := offline.Mutate(ctx, t.Roster(teamID), offline.Plan[types.Player, struct{}]{
		Apply: func(items []types.Player) []types.Player {
			prior, had = offline.Find(items, target)
			return offline.Remove(items, target)
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, t.client.Players(teamID).Remove(ctx, id)
		},
		Rollback: func(items []types.Player) []types.Player {
			if !had {
				return items
			}
			return append(items, prior)
		},
		Success: "Player removed",
		Failure: "Could not remove player",
	})
	return ok
}

// ScheduleGame optimistically adds a game to a team's schedule.
func (t *Tracker) ScheduleGame(ctx context.Context, teamID string, req types.NewGame) (types.Game, bool) {
	now := time.Now().UTC()
	placeholder := types.Game{
		ID:             offline.NewSyntheticID(),
		TeamID:         teamID,
		Title:          req.Title,
		Status:         types.GameScheduled,
		OpponentName:   req.OpponentName,
		ScheduledStart: req.ScheduledStart,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return offline.Mutate(ctx, t.Games(teamID), offline.Plan[types.Game, types.Game]{
		Apply: func(items []types.Game) []types.Game {
			return append(items, placeholder)
		},
		Call: func(ctx context.Context) (types.Game, error) {
			return t.client.Games(teamID).Create(ctx, req)
		},
		Reconcile: func(items []types.Game, created types.Game) []types.Game {
			return offline.Replace(items, placeholder.ID, created)
		},
		Rollback: func(items []types.Game) []types.Game {
			return offline.Remove(items, placeholder.ID)
		},
		Success: fmt.Sprintf("Game %q scheduled", req.Title),
		Failure: fmt.Sprintf("Could not schedule %q", req.Title),
	})
}

// UpdateGame optimistically applies a partial game update (status changes,
// score updates, lineup assignment).
func (t *Tracker) UpdateGame(ctx context.Context, teamID, id string, patch types.GamePatch) (types.Game, bool) {
	target := offline.CanonicalID(id)
	var prior types.Game
	var had bool

	return offline.Mutate(ctx, t.Games(teamID), offline.Plan[types.Game, types.Game]{
		Apply: func(items []types.Game) []types.Game {
			prior, had = offline.Find(items, target)
			if !had {
				return items
			}
			return offline.Replace(items, target, patchGame(prior, patch))
		},
		Call: func(ctx context.Context) (types.Game, error) {
			return t.client.Games(teamID).Update(ctx, id, patch)
		},
		Reconcile: func(items []types.Game, updated types.Game) []types.Game {
			return offline.Replace(items, target, updated)
		},
		Rollback: func(items []types.Game) []types.Game {
			if !had {
				return items
			}
			return offline.Replace(items, target, prior)
		},
		Success: "Game updated",
		Failure: "Could not update game",
	})
}

// DeleteGame optimistically removes a game. On success the game's cached
// at-bats are dropped as well.
func (t *Tracker) DeleteGame(ctx context.Context, teamID, id string) bool {
	target := offline.CanonicalID(id)
	var prior types.Game
	var had bool

	_, ok := offline.Mutate(ctx, t.Games(teamID), offline.Plan[types.Game, struct{}]{
		Apply: func(items []types.Game) []types.Game {
			prior, had = offline.Find(items, target)
			return offline.Remove(items, target)
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, t.client.Games(teamID).Delete(ctx, id)
		},
		Rollback: func(items []types.Game) []types.Game {
			if !had {
				return items
			}
			return append(items, prior)
		},
		Success: "Game deleted",
		Failure: "Could not delete game",
	})
	if ok && t.cache != nil {
		t.cache.Clear(atBatsPrefix + id)
	}
	return ok
}

// RecordAtBat optimistically records a plate appearance.
func (t *Tracker) RecordAtBat(ctx context.Context, gameID string, req types.NewAtBat) (types.AtBat, bool) {
	now := time.Now().UTC()
	placeholder := types.AtBat{
		ID:           offline.NewSyntheticID(),
		GameID:       gameID,
		PlayerID:     req.PlayerID,
		Result:       req.Result,
		Inning:       req.Inning,
		Outs:         req.Outs,
		BattingOrder: req.BattingOrder,
		RBIs:         req.RBIs,
		HitLocation:  req.HitLocation,
		HitType:      req.HitType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return offline.Mutate(ctx, t.AtBats(gameID), offline.Plan[types.AtBat, types.AtBat]{
		Apply: func(items []types.AtBat) []types.AtBat {
			return append(items, placeholder)
		},
		Call: func(ctx context.Context) (types.AtBat, error) {
			return t.client.AtBats(gameID).Create(ctx, req)
		},
		Reconcile: func(items []types.AtBat, created types.AtBat) []types.AtBat {
			return offline.Replace(items, placeholder.ID, created)
		},
		Rollback: func(items []types.AtBat) []types.AtBat {
			return offline.Remove(items, placeholder.ID)
		},
		Success: fmt.Sprintf("At-bat recorded: %s", req.Result),
		Failure: "Could not record at-bat",
	})
}

// UpdateAtBat optimistically corrects a recorded plate appearance.
func (t *Tracker) UpdateAtBat(ctx context.Context, gameID, id string, patch types.AtBatPatch) (types.AtBat, bool) {
	target := offline.CanonicalID(id)
	var prior types.AtBat
	var had bool

	return offline.Mutate(ctx, t.AtBats(gameID), offline.Plan[types.AtBat, types.AtBat]{
		Apply: func(items []types.AtBat) []types.AtBat {
			prior, had = offline.Find(items, target)
			if !had {
				return items
			}
			return offline.Replace(items, target, patchAtBat(prior, patch))
		},
		Call: func(ctx context.Context) (types.AtBat, error) {
			return t.client.AtBats(gameID).Update(ctx, id, patch)
		},
		Reconcile: func(items []types.AtBat, updated types.AtBat) []types.AtBat {
			return offline.Replace(items, target, updated)
		},
		Rollback: func(items []types.AtBat) []types.AtBat {
			if !had {
				return items
			}
			return offline.Replace(items, target, prior)
		},
		Success: "At-bat updated",
		Failure: "Could not update at-bat",
	})
}

// DeleteAtBat optimistically removes a recorded plate appearance.
func (t *Tracker) DeleteAtBat(ctx context.Context, gameID, id string) bool {
	target := offline.CanonicalID(id)
	var prior types.AtBat
	var had bool

	_, ok := offline.Mutate(ctx, t.AtBats(gameID), offline.Plan[types.AtBat, struct{}]{
		Apply: func(items []types.AtBat) []types.AtBat {
			prior, had = offline.Find(items, target)
			return offline.Remove(items, target)
		},
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, t.client.AtBats(gameID).Delete(ctx, id)
		},
		Rollback: func(items []types.AtBat) []types.AtBat {
			if !had {
				return items
			}
			return append(items, prior)
		},
		Success: "At-bat deleted",
		Failure: "Could not delete at-bat",
	})
	return ok
}

func patchTeam(team types.Team, patch types.TeamPatch) types.Team {
	if patch.Name != nil {
		team.Name = *patch.Name
	}
	if patch.Description != nil {
		team.Description = *patch.Description
	}
	team.UpdatedAt = time.Now().UTC()
	return team
}

func patchPlayer(player types.Player, patch types.PlayerPatch) types.Player {
	if patch.FirstName != nil {
		player.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		player.LastName = *patch.LastName
	}
	if patch.Number != nil {
		player.Number = patch.Number
	}
	if patch.Status != nil {
		player.Status = types.PlayerStatus(*patch.Status)
	}
	if patch.Positions != nil {
		player.Positions = *patch.Positions
	}
	player.UpdatedAt = time.Now().UTC()
	return player
}

func patchGame(game types.Game, patch types.GamePatch) types.Game {
	if patch.Title != nil {
		game.Title = *patch.Title
	}
	if patch.Status != nil {
		game.Status = *patch.Status
	}
	if patch.TeamScore != nil {
		game.TeamScore = *patch.TeamScore
	}
	if patch.OpponentScore != nil {
		game.OpponentScore = *patch.OpponentScore
	}
	if patch.OpponentName != nil {
		game.OpponentName = *patch.OpponentName
	}
	if patch.ScheduledStart != nil {
		game.ScheduledStart = patch.ScheduledStart
	}
	if patch.Lineup != nil {
		game.Lineup = *patch.Lineup
	}
	game.UpdatedAt = time.Now().UTC()
	return game
}

func patchAtBat(atBat types.AtBat, patch types.AtBatPatch) types.AtBat {
	if patch.Result != nil {
		atBat.Result = *patch.Result
	}
	if patch.Inning != nil {
		atBat.Inning = *patch.Inning
	}
	if patch.Outs != nil {
		atBat.Outs = *patch.Outs
	}
	if patch.RBIs != nil {
		atBat.RBIs = patch.RBIs
	}
	if patch.HitLocation != nil {
		atBat.HitLocation = *patch.HitLocation
	}
	if patch.HitType != nil {
		atBat.HitType = *patch.HitType
	}
	atBat.UpdatedAt = time.Now().UTC()
	return atBat
}
