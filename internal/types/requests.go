package types

import "time"

// NewTeam is the payload for creating a team.
type NewTeam struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        TeamType `json:"teamType,omitempty"`
}

// TeamPatch is a partial team update. Nil fields are left unchanged.
type TeamPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NewPlayer is the payload for adding a roster player.
type NewPlayer struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName,omitempty"`
	Number    *int     `json:"playerNumber,omitempty"`
	Status    string   `json:"status,omitempty"`
	Positions []string `json:"positions,omitempty"`
}

// PlayerPatch is a partial player update. Nil fields are left unchanged.
type PlayerPatch struct {
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Number    *int      `json:"playerNumber,omitempty"`
	Status    *string   `json:"status,omitempty"`
	Positions *[]string `json:"positions,omitempty"`
}

// NewGame is the payload for scheduling a game.
type NewGame struct {
	Title          string     `json:"title"`
	OpponentName   string     `json:"opponentName,omitempty"`
	ScheduledStart *time.Time `json:"scheduledStart,omitempty"`
}

// GamePatch is a partial game update. Nil fields are left unchanged.
type GamePatch struct {
	Title          *string      `json:"title,omitempty"`
	Status         *GameStatus  `json:"status,omitempty"`
	TeamScore      *int         `json:"teamScore,omitempty"`
	OpponentScore  *int         `json:"opponentScore,omitempty"`
	OpponentName   *string      `json:"opponentName,omitempty"`
	ScheduledStart *time.Time   `json:"scheduledStart,omitempty"`
	Lineup         *[]LineupSlot `json:"lineup,omitempty"`
}

// NewAtBat is the payload for recording a plate appearance.
type NewAtBat struct {
	PlayerID     string   `json:"playerId"`
	Result       ABResult `json:"result"`
	Inning       int      `json:"inning"`
	Outs         int      `json:"outs"`
	BattingOrder int      `json:"battingOrder"`
	RBIs         *int     `json:"rbis,omitempty"`
	HitLocation  string   `json:"hitLocation,omitempty"`
	HitType      string   `json:"hitType,omitempty"`
}

// AtBatPatch is a partial at-bat correction. Nil fields are left unchanged.
type AtBatPatch struct {
	Result      *ABResult `json:"result,omitempty"`
	Inning      *int      `json:"inning,omitempty"`
	Outs        *int      `json:"outs,omitempty"`
	RBIs        *int      `json:"rbis,omitempty"`
	HitLocation *string   `json:"hitLocation,omitempty"`
	HitType     *string   `json:"hitType,omitempty"`
}
