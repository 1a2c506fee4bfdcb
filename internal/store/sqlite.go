// Package store is the SQLite persistence layer for the development server.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/pkg/offline"
)

// SQLiteStore holds all tracker entities in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath,
// applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ListTeams returns all teams ordered by name.
func (s *SQLiteStore) ListTeams(ctx context.Context) ([]types.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, team_type, created_at, updated_at
		 FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []types.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetTeam returns one team by id.
func (s *SQLiteStore) GetTeam(ctx context.Context, id string) (types.Team, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, team_type, created_at, updated_at
		 FROM teams WHERE id = ?`, id)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Team{}, ErrNotFound
	}
	return t, err
}

// CreateTeam inserts a team and returns it with a server-assigned id.
func (s *SQLiteStore) CreateTeam(ctx context.Context, req types.NewTeam) (types.Team, error) {
	if req.Type == "" {
		req.Type = types.TeamManaged
	}
	t := types.Team{
		ID:          offline.CanonicalID(uuid.NewString()),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO teams (id, name, description, team_type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID.String(), t.Name, t.Description, string(t.Type),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return types.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

// UpdateTeam applies a partial update and returns the updated team.
func (s *SQLiteStore) UpdateTeam(ctx context.Context, id string, patch types.TeamPatch) (types.Team, error) {
	t, err := s.GetTeam(ctx, id)
	if err != nil {
		return types.Team{}, err
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	t.UpdatedAt = now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE teams SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Description, formatTime(t.UpdatedAt), id)
	if err != nil {
		return types.Team{}, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

// DeleteTeam removes a team. Players and games cascade.
func (s *SQLiteStore) DeleteTeam(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return requireAffected(res)
}

// ListPlayers returns a team's roster ordered by jersey number.
func (s *SQLiteStore) ListPlayers(ctx context.Context, teamID string) ([]types.Player, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, first_name, last_name, player_number, status, positions, created_at, updated_at
		 FROM players WHERE team_id = ?
		 ORDER BY player_number IS NULL, player_number, first_name, last_name`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []types.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayer returns one player on a team.
func (s *SQLiteStore) GetPlayer(ctx context.Context, teamID, id string) (types.Player, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, team_id, first_name, last_name, player_number, status, positions, created_at, updated_at
		 FROM players WHERE team_id = ? AND id = ?`, teamID, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Player{}, ErrNotFound
	}
	return p, err
}

// CreatePlayer inserts a roster player and returns it with a server-assigned id.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, teamID string, req types.NewPlayer) (types.Player, error) {
	status := types.PlayerStatus(req.Status)
	if status == "" {
		status = types.PlayerActive
	}
	positions := req.Positions
	if positions == nil {
		positions = []string{}
	}
	p := types.Player{
		ID:        offline.CanonicalID(uuid.NewString()),
		TeamID:    teamID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Number:    req.Number,
		Status:    status,
		Positions: positions,
		CreatedAt: now(),
		UpdatedAt: now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, team_id, first_name, last_name, player_number, status, positions, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.TeamID, p.FirstName, p.LastName, p.Number, string(p.Status),
		marshalJSON(p.Positions), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return types.Player{}, fmt.Errorf("create player: %w", err)
	}
	return p, nil
}

// UpdatePlayer applies a partial update and returns the updated player.
func (s *SQLiteStore) UpdatePlayer(ctx context.Context, teamID, id string, patch types.PlayerPatch) (types.Player, error) {
	p, err := s.GetPlayer(ctx, teamID, id)
	if err != nil {
		return types.Player{}, err
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.Number != nil {
		p.Number = patch.Number
	}
	if patch.Status != nil {
		p.Status = types.PlayerStatus(*patch.Status)
	}
	if patch.Positions != nil {
		p.Positions = *patch.Positions
	}
	p.UpdatedAt = now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE players SET first_name = ?, last_name = ?, player_number = ?, status = ?, positions = ?, updated_at = ?
		 WHERE team_id = ? AND id = ?`,
		p.FirstName, p.LastName, p.Number, string(p.Status), marshalJSON(p.Positions),
		formatTime(p.UpdatedAt), teamID, id)
	if err != nil {
		return types.Player{}, fmt.Errorf("update player: %w", err)
	}
	return p, nil
}

// DeletePlayer removes a player from a team's roster.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, teamID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM players WHERE team_id = ? AND id = ?`, teamID, id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return requireAffected(res)
}

// ListGames returns a team's games in schedule order.
func (s *SQLiteStore) ListGames(ctx context.Context, teamID string) ([]types.Game, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, title, status, team_score, opponent_score, opponent_name, scheduled_start, lineup, created_at, updated_at
		 FROM games WHERE team_id = ?
		 ORDER BY scheduled_start IS NULL, scheduled_start, created_at`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []types.Game{}
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetGame returns one game by id, regardless of team.
func (s *SQLiteStore) GetGame(ctx context.Context, id string) (types.Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, team_id, title, status, team_score, opponent_score, opponent_name, scheduled_start, lineup, created_at, updated_at
		 FROM games WHERE id = ?`, id)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Game{}, ErrNotFound
	}
	return g, err
}

// CreateGame inserts a game for a team and returns it with a server-assigned id.
func (s *SQLiteStore) CreateGame(ctx context.Context, teamID string, req types.NewGame) (types.Game, error) {
	g := types.Game{
		ID:             offline.CanonicalID(uuid.NewString()),
		TeamID:         teamID,
		Title:          req.Title,
		Status:         types.GameScheduled,
		OpponentName:   req.OpponentName,
		ScheduledStart: req.ScheduledStart,
		Lineup:         []types.LineupSlot{},
		CreatedAt:      now(),
		UpdatedAt:      now(),
	}
	var scheduled any
	if g.ScheduledStart != nil {
		scheduled = formatTime(*g.ScheduledStart)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, team_id, title, status, team_score, opponent_score, opponent_name, scheduled_start, lineup, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID.String(), g.TeamID, g.Title, string(g.Status), g.TeamScore, g.OpponentScore,
		g.OpponentName, scheduled, marshalJSON(g.Lineup),
		formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
	if err != nil {
		return types.Game{}, fmt.Errorf("create game: %w", err)
	}
	return g, nil
}

// UpdateGame applies a partial update and returns the updated game.
func (s *SQLiteStore) UpdateGame(ctx context.Context, teamID, id string, patch types.GamePatch) (types.Game, error) {
	g, err := s.GetGame(ctx, id)
	if err != nil {
		return types.Game{}, err
	}
	if g.TeamID != teamID {
		return types.Game{}, ErrNotFound
	}
	if patch.Title != nil {
		g.Title = *patch.Title
	}
	if patch.Status != nil {
		g.Status = *patch.Status
	}
	if patch.TeamScore != nil {
		g.TeamScore = *patch.TeamScore
	}
	if patch.OpponentScore != nil {
		g.OpponentScore = *patch.OpponentScore
	}
	if patch.OpponentName != nil {
		g.OpponentName = *patch.OpponentName
	}
	if patch.ScheduledStart != nil {
		g.ScheduledStart = patch.ScheduledStart
	}
	if patch.Lineup != nil {
		g.Lineup = *patch.Lineup
	}
	g.UpdatedAt = now()

	var scheduled any
	if g.ScheduledStart != nil {
		scheduled = formatTime(*g.ScheduledStart)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE games SET title = ?, status = ?, team_score = ?, opponent_score = ?, opponent_name = ?, scheduled_start = ?, lineup = ?, updated_at = ?
		 WHERE id = ?`,
		g.Title, string(g.Status), g.TeamScore, g.OpponentScore, g.OpponentName,
		scheduled, marshalJSON(g.Lineup), formatTime(g.UpdatedAt), id)
	if err != nil {
		return types.Game{}, fmt.Errorf("update game: %w", err)
	}
	return g, nil
}

// DeleteGame removes a game. At-bats cascade.
func (s *SQLiteStore) DeleteGame(ctx context.Context, teamID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM games WHERE team_id = ? AND id = ?`, teamID, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return requireAffected(res)
}

// ListAtBats returns a game's plate appearances in inning order.
func (s *SQLiteStore) ListAtBats(ctx context.Context, gameID string) ([]types.AtBat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, player_id, team_id, result, inning, outs, batting_order, rbis, hit_location, hit_type, created_at, updated_at
		 FROM at_bats WHERE game_id = ? ORDER BY inning, created_at`, gameID)
	if err != nil {
		return nil, fmt.Errorf("list at-bats: %w", err)
	}
	defer rows.Close()

	atBats := []types.AtBat{}
	for rows.Next() {
		ab, err := scanAtBat(rows)
		if err != nil {
			return nil, err
		}
		atBats = append(atBats, ab)
	}
	return atBats, rows.Err()
}

// GetAtBat returns one plate appearance within a game.
func (s *SQLiteStore) GetAtBat(ctx context.Context, gameID, id string) (types.AtBat, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, game_id, player_id, team_id, result, inning, outs, batting_order, rbis, hit_location, hit_type, created_at, updated_at
		 FROM at_bats WHERE game_id = ? AND id = ?`, gameID, id)
	ab, err := scanAtBat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.AtBat{}, ErrNotFound
	}
	return ab, err
}

// CreateAtBat records a plate appearance and returns it with a server-assigned id.
func (s *SQLiteStore) CreateAtBat(ctx context.Context, gameID, teamID string, req types.NewAtBat) (types.AtBat, error) {
	ab := types.AtBat{
		ID:           offline.CanonicalID(uuid.NewString()),
		GameID:       gameID,
		PlayerID:     req.PlayerID,
		TeamID:       teamID,
		Result:       req.Result,
		Inning:       req.Inning,
		Outs:         req.Outs,
		BattingOrder: req.BattingOrder,
		RBIs:         req.RBIs,
		HitLocation:  req.HitLocation,
		HitType:      req.HitType,
		CreatedAt:    now(),
		UpdatedAt:    now(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO at_bats (id, game_id, player_id, team_id, result, inning, outs, batting_order, rbis, hit_location, hit_type, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ab.ID.String(), ab.GameID, ab.PlayerID, ab.TeamID, string(ab.Result), ab.Inning, ab.Outs,
		ab.BattingOrder, ab.RBIs, ab.HitLocation, ab.HitType,
		formatTime(ab.CreatedAt), formatTime(ab.UpdatedAt))
	if err != nil {
		return types.AtBat{}, fmt.Errorf("create at-bat: %w", err)
	}
	return ab, nil
}

// UpdateAtBat applies a partial correction and returns the updated record.
func (s *SQLiteStore) UpdateAtBat(ctx context.Context, gameID, id string, patch types.AtBatPatch) (types.AtBat, error) {
	ab, err := s.GetAtBat(ctx, gameID, id)
	if err != nil {
		return types.AtBat{}, err
	}
	if patch.Result != nil {
		ab.Result = *patch.Result
	}
	if patch.Inning != nil {
		ab.Inning = *patch.Inning
	}
	if patch.Outs != nil {
		ab.Outs = *patch.Outs
	}
	if patch.RBIs != nil {
		ab.RBIs = patch.RBIs
	}
	if patch.HitLocation != nil {
		ab.HitLocation = *patch.HitLocation
	}
	if patch.HitType != nil {
		ab.HitType = *patch.HitType
	}
	ab.UpdatedAt = now()

	_, err = s.db.ExecContext(ctx,
		`UPDATE at_bats SET result = ?, inning = ?, outs = ?, rbis = ?, hit_location = ?, hit_type = ?, updated_at = ?
		 WHERE game_id = ? AND id = ?`,
		string(ab.Result), ab.Inning, ab.Outs, ab.RBIs, ab.HitLocation, ab.HitType,
		formatTime(ab.UpdatedAt), gameID, id)
	if err != nil {
		return types.AtBat{}, fmt.Errorf("update at-bat: %w", err)
	}
	return ab, nil
}

// DeleteAtBat removes a plate appearance.
func (s *SQLiteStore) DeleteAtBat(ctx context.Context, gameID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM at_bats WHERE game_id = ? AND id = ?`, gameID, id)
	if err != nil {
		return fmt.Errorf("delete at-bat: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dst ...any) error
}

func scanTeam(row rowScanner) (types.Team, error) {
	var t types.Team
	var id, teamType, createdAt, updatedAt string
	if err := row.Scan(&id, &t.Name, &t.Description, &teamType, &createdAt, &updatedAt); err != nil {
		return types.Team{}, err
	}
	t.ID = offline.CanonicalID(id)
	t.Type = types.TeamType(teamType)
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return t, nil
}

func scanPlayer(row rowScanner) (types.Player, error) {
	var p types.Player
	var id, status, positions, createdAt, updatedAt string
	var number sql.NullInt64
	if err := row.Scan(&id, &p.TeamID, &p.FirstName, &p.LastName, &number, &status, &positions, &createdAt, &updatedAt); err != nil {
		return types.Player{}, err
	}
	p.ID = offline.CanonicalID(id)
	if number.Valid {
		n := int(number.Int64)
		p.Number = &n
	}
	p.Status = types.PlayerStatus(status)
	if err := json.Unmarshal([]byte(positions), &p.Positions); err != nil {
		p.Positions = nil
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

func scanGame(row rowScanner) (types.Game, error) {
	var g types.Game
	var id, status, lineup, createdAt, updatedAt string
	var scheduled sql.NullString
	if err := row.Scan(&id, &g.TeamID, &g.Title, &status, &g.TeamScore, &g.OpponentScore,
		&g.OpponentName, &scheduled, &lineup, &createdAt, &updatedAt); err != nil {
		return types.Game{}, err
	}
	g.ID = offline.CanonicalID(id)
	g.Status = types.GameStatus(status)
	if scheduled.Valid {
		t := parseTime(scheduled.String)
		g.ScheduledStart = &t
	}
	if err := json.Unmarshal([]byte(lineup), &g.Lineup); err != nil {
		g.Lineup = nil
	}
	g.CreatedAt = parseTime(createdAt)
	g.UpdatedAt = parseTime(updatedAt)
	return g, nil
}

func scanAtBat(row rowScanner) (types.AtBat, error) {
	var ab types.AtBat
	var id, result, createdAt, updatedAt string
	var rbis sql.NullInt64
	if err := row.Scan(&id, &ab.GameID, &ab.PlayerID, &ab.TeamID, &result, &ab.Inning, &ab.Outs,
		&ab.BattingOrder, &rbis, &ab.HitLocation, &ab.HitType, &createdAt, &updatedAt); err != nil {
		return types.AtBat{}, err
	}
	ab.ID = offline.CanonicalID(id)
	ab.Result = types.ABResult(result)
	if rbis.Valid {
		n := int(rbis.Int64)
		ab.RBIs = &n
	}
	ab.CreatedAt = parseTime(createdAt)
	ab.UpdatedAt = parseTime(updatedAt)
	return ab, nil
}
