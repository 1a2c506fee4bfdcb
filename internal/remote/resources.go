package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hacktracker/dugout/internal/types"
)

// Teams returns the team resource client.
func (c *Client) Teams() *TeamsAPI {
	return &TeamsAPI{c: c}
}

// Players returns the roster resource client for one team.
func (c *Client) Players(teamID string) *PlayersAPI {
	return &PlayersAPI{c: c, teamID: teamID}
}

// Games returns the game resource client for one team.
func (c *Client) Games(teamID string) *GamesAPI {
	return &GamesAPI{c: c, teamID: teamID}
}

// AtBats returns the at-bat resource client for one game.
func (c *Client) AtBats(gameID string) *AtBatsAPI {
	return &AtBatsAPI{c: c, gameID: gameID}
}

// TeamsAPI covers /api/v1/teams.
type TeamsAPI struct {
	c *Client
}

func (a *TeamsAPI) List(ctx context.Context) ([]types.Team, error) {
	var teams []types.Team
	if err := a.c.do(ctx, http.MethodGet, "/api/v1/teams", nil, &teams); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (a *TeamsAPI) Get(ctx context.Context, id string) (types.Team, error) {
	var team types.Team
	if err := a.c.do(ctx, http.MethodGet, "/api/v1/teams/"+id, nil, &team); err != nil {
		return types.Team{}, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

func (a *TeamsAPI) Create(ctx context.Context, req types.NewTeam) (types.Team, error) {
	var team types.Team
	if err := a.c.do(ctx, http.MethodPost, "/api/v1/teams", req, &team); err != nil {
		return types.Team{}, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (a *TeamsAPI) Update(ctx context.Context, id string, patch types.TeamPatch) (types.Team, error) {
	var team types.Team
	if err := a.c.do(ctx, http.MethodPatch, "/api/v1/teams/"+id, patch, &team); err != nil {
		return types.Team{}, fmt.Errorf("update team: %w", err)
	}
	return team, nil
}

func (a *TeamsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/api/v1/teams/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// PlayersAPI covers /api/v1/teams/{teamID}/players.
type PlayersAPI struct {
	c      *Client
	teamID string
}

func (a *PlayersAPI) base() string {
	return "/api/v1/teams/" + a.teamID + "/players"
}

func (a *PlayersAPI) List(ctx context.Context) ([]types.Player, error) {
	var players []types.Player
	if err := a.c.do(ctx, http.MethodGet, a.base(), nil, &players); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (a *PlayersAPI) Get(ctx context.Context, id string) (types.Player, error) {
	var player types.Player
	if err := a.c.do(ctx, http.MethodGet, a.base()+"/"+id, nil, &player); err != nil {
		return types.Player{}, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

func (a *PlayersAPI) Add(ctx context.Context, req types.NewPlayer) (types.Player, error) {
	var player types.Player
	if err := a.c.do(ctx, http.MethodPost, a.base(), req, &player); err != nil {
		return types.Player{}, fmt.Errorf("add player: %w", err)
	}
	return player, nil
}

func (a *PlayersAPI) Update(ctx context.Context, id string, patch types.PlayerPatch) (types.Player, error) {
	var player types.Player
	if err := a.c.do(ctx, http.MethodPatch, a.base()+"/"+id, patch, &player); err != nil {
		return types.Player{}, fmt.Errorf("update player: %w", err)
	}
	return player, nil
}

func (a *PlayersAPI) Remove(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, a.base()+"/"+id, nil, nil); err != nil {
		return fmt.Errorf("remove player: %w", err)
	}
	return nil
}

// GamesAPI covers /api/v1/teams/{teamID}/games.
type GamesAPI struct {
	c      *Client
	teamID string
}

func (a *GamesAPI) base() string {
	return "/api/v1/teams/" + a.teamID + "/games"
}

func (a *GamesAPI) List(ctx context.Context) ([]types.Game, error) {
	var games []types.Game
	if err := a.c.do(ctx, http.MethodGet, a.base(), nil, &games); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (a *GamesAPI) Get(ctx context.Context, id string) (types.Game, error) {
	var game types.Game
	if err := a.c.do(ctx, http.MethodGet, a.base()+"/"+id, nil, &game); err != nil {
		return types.Game{}, fmt.Errorf("get game: %w", err)
	}
	return game, nil
}

func (a *GamesAPI) Create(ctx context.Context, req types.NewGame) (types.Game, error) {
	var game types.Game
	if err := a.c.do(ctx, http.MethodPost, a.base(), req, &game); err != nil {
		return types.Game{}, fmt.Errorf("create game: %w", err)
	}
	return game, nil
}

func (a *GamesAPI) Update(ctx context.Context, id string, patch types.GamePatch) (types.Game, error) {
	var game types.Game
	if err := a.c.do(ctx, http.MethodPatch, a.base()+"/"+id, patch, &game); err != nil {
		return types.Game{}, fmt.Errorf("update game: %w", err)
	}
	return game, nil
}

func (a *GamesAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, a.base()+"/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// AtBatsAPI covers /api/v1/games/{gameID}/at-bats.
type AtBatsAPI struct {
	c      *Client
	gameID string
}

func (a *AtBatsAPI) base() string {
	return "/api/v1/games/" + a.gameID + "/at-bats"
}

func (a *AtBatsAPI) List(ctx context.Context) ([]types.AtBat, error) {
	var atBats []types.AtBat
	if err := a.c.do(ctx, http.MethodGet, a.base(), nil, &atBats); err != nil {
		return nil, fmt.Errorf("list at-bats: %w", err)
	}
	return atBats, nil
}

func (a *AtBatsAPI) Get(ctx context.Context, id string) (types.AtBat, error) {
	var atBat types.AtBat
	if err := a.c.do(ctx, http.MethodGet, a.base()+"/"+id, nil, &atBat); err != nil {
		return types.AtBat{}, fmt.Errorf("get at-bat: %w", err)
	}
	return atBat, nil
}

func (a *AtBatsAPI) Create(ctx context.Context, req types.NewAtBat) (types.AtBat, error) {
	var atBat types.AtBat
	if err := a.c.do(ctx, http.MethodPost, a.base(), req, &atBat); err != nil {
		return types.AtBat{}, fmt.Errorf("record at-bat: %w", err)
	}
	return atBat, nil
}

func (a *AtBatsAPI) Update(ctx context.Context, id string, patch types.AtBatPatch) (types.AtBat, error) {
	var atBat types.AtBat
	if err := a.c.do(ctx, http.MethodPatch, a.base()+"/"+id, patch, &atBat); err != nil {
		return types.AtBat{}, fmt.Errorf("update at-bat: %w", err)
	}
	return atBat, nil
}

func (a *AtBatsAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, a.base()+"/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete at-bat: %w", err)
	}
	return nil
}
