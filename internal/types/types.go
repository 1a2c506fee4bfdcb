package types

import (
	"time"

	"github.com/hacktracker/dugout/pkg/offline"
)

// TeamType distinguishes managed rosters from single-player personal teams.
type TeamType string

const (
	TeamManaged  TeamType = "MANAGED"
	TeamPersonal TeamType = "PERSONAL"
)

// Team is a roster container owned by a user.
type Team struct {
	ID          offline.ID `json:"teamId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        TeamType   `json:"teamType"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t Team) ItemID() offline.ID { return t.ID }

// PlayerStatus marks whether a player currently appears on lineup pickers.
type PlayerStatus string

const (
	PlayerActive   PlayerStatus = "active"
	PlayerInactive PlayerStatus = "inactive"
)

// Player is a roster entry on a team.
type Player struct {
	ID        offline.ID   `json:"playerId"`
	TeamID    string       `json:"teamId"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName,omitempty"`
	Number    *int         `json:"playerNumber,omitempty"`
	Status    PlayerStatus `json:"status"`
	Positions []string     `json:"positions,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (p Player) ItemID() offline.ID { return p.ID }

// DisplayName joins the player's names for presentation.
func (p Player) DisplayName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// GameStatus is the lifecycle of a game.
type GameStatus string

const (
	GameScheduled  GameStatus = "SCHEDULED"
	GameInProgress GameStatus = "IN_PROGRESS"
	GameFinal      GameStatus = "FINAL"
	GamePostponed  GameStatus = "POSTPONED"
)

// LineupSlot assigns a roster player to a batting-order position.
type LineupSlot struct {
	PlayerID     string `json:"playerId"`
	BattingOrder int    `json:"battingOrder"`
	Position     string `json:"position,omitempty"`
}

// Game is a scheduled or played game for a team.
type Game struct {
	ID             offline.ID   `json:"gameId"`
	TeamID         string       `json:"teamId"`
	Title          string       `json:"title"`
	Status         GameStatus   `json:"status"`
	TeamScore      int          `json:"teamScore"`
	OpponentScore  int          `json:"opponentScore"`
	OpponentName   string       `json:"opponentName,omitempty"`
	ScheduledStart *time.Time   `json:"scheduledStart,omitempty"`
	Lineup         []LineupSlot `json:"lineup,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (g Game) ItemID() offline.ID { return g.ID }

// ABResult is the outcome of a plate appearance.
type ABResult string

const (
	ResultSingle         ABResult = "1B"
	ResultDouble         ABResult = "2B"
	ResultTriple         ABResult = "3B"
	ResultHomeRun        ABResult = "HR"
	ResultWalk           ABResult = "BB"
	ResultHitByPitch     ABResult = "HBP"
	ResultStrikeout      ABResult = "K"
	ResultGroundOut      ABResult = "GO"
	ResultFlyOut         ABResult = "FO"
	ResultSacFly         ABResult = "SF"
	ResultFieldersChoice ABResult = "FC"
	ResultError          ABResult = "E"
)

// AtBat records one plate appearance within a game.
type AtBat struct {
	ID           offline.ID `json:"atBatId"`
	GameID       string     `json:"gameId"`
	PlayerID     string     `json:"playerId"`
	TeamID       string     `json:"teamId"`
	Result       ABResult   `json:"result"`
	Inning       int        `json:"inning"`
	Outs         int        `json:"outs"`
	BattingOrder int        `json:"battingOrder"`
	RBIs         *int       `json:"rbis,omitempty"`
	HitLocation  string     `json:"hitLocation,omitempty"`
	HitType      string     `json:"hitType,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (a AtBat) ItemID() offline.ID { return a.ID }

// TeamsByName orders teams alphabetically.
func TeamsByName(a, b Team) bool {
	return a.Name < b.Name
}

// PlayersByNumber orders a roster by jersey number with unnumbered players
// last, breaking ties by name.
func PlayersByNumber(a, b Player) bool {
	switch {
	case a.Number == nil && b.Number == nil:
		return a.DisplayName() < b.DisplayName()
	case a.Number == nil:
		return false
	case b.Number == nil:
		return true
	case *a.Number != *b.Number:
		return *a.Number < *b.Number
	}
	return a.DisplayName() < b.DisplayName()
}

// GamesBySchedule orders games chronologically by scheduled start with
// unscheduled games last, breaking ties by creation time.
func GamesBySchedule(a, b Game) bool {
	switch {
	case a.ScheduledStart == nil && b.ScheduledStart == nil:
		return a.CreatedAt.Before(b.CreatedAt)
	case a.ScheduledStart == nil:
		return false
	case b.ScheduledStart == nil:
		return true
	case !a.ScheduledStart.Equal(*b.ScheduledStart):
		return a.ScheduledStart.Before(*b.ScheduledStart)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// AtBatsByInning orders plate appearances by inning, then by recording time.
func AtBatsByInning(a, b AtBat) bool {
	if a.Inning != b.Inning {
		return a.Inning < b.Inning
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
