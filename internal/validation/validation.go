package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hacktracker/dugout/internal/types"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// First returns the first accumulated error, or nil.
func (c *Collector) First() error {
	if len(c.errors) == 0 {
		return nil
	}
	return &c.errors[0]
}

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	teamNameRe   = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	playerNameRe = regexp.MustCompile(`^[a-zA-Z' -]+$`)
)

// fieldPositions are the fielding positions a player or lineup slot may carry.
var fieldPositions = map[string]bool{
	"P": true, "C": true, "1B": true, "2B": true, "3B": true,
	"SS": true, "LF": true, "CF": true, "RF": true, "DH": true, "EH": true,
}

// atBatResults are the accepted plate-appearance outcomes.
var atBatResults = map[types.ABResult]bool{
	types.ResultSingle: true, types.ResultDouble: true, types.ResultTriple: true,
	types.ResultHomeRun: true, types.ResultWalk: true, types.ResultHitByPitch: true,
	types.ResultStrikeout: true, types.ResultGroundOut: true, types.ResultFlyOut: true,
	types.ResultSacFly: true, types.ResultFieldersChoice: true, types.ResultError: true,
}

// hitTypes classify how a batted ball left the bat.
var hitTypes = map[string]bool{
	"GROUND_BALL": true, "FLY_BALL": true, "LINE_DRIVE": true, "POPUP": true, "BUNT": true,
}

// TeamName trims and collapses whitespace, then checks length and charset
// (3-50 characters, letters, numbers and spaces only). Returns the cleaned
// name.
func TeamName(name string) (string, *ValidationError) {
	name = spaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
	if len(name) < 3 {
		return "", &ValidationError{Field: "name", Message: "must be at least 3 characters"}
	}
	if len(name) > 50 {
		return "", &ValidationError{Field: "name", Message: "must not exceed 50 characters"}
	}
	if !teamNameRe.MatchString(name) {
		return "", &ValidationError{Field: "name", Message: "can only contain letters, numbers, and spaces"}
	}
	return name, nil
}

// Description trims an optional description; an empty result is valid and
// normalizes to the empty string. Max 500 characters.
func Description(desc string) (string, *ValidationError) {
	desc = strings.TrimSpace(desc)
	if len(desc) > 500 {
		return "", &ValidationError{Field: "description", Message: "must not exceed 500 characters"}
	}
	return desc, nil
}

// TeamType normalizes and checks the team type. Empty defaults to MANAGED.
func TeamType(raw string) (types.TeamType, *ValidationError) {
	if raw == "" {
		return types.TeamManaged, nil
	}
	tt := types.TeamType(strings.ToUpper(strings.TrimSpace(raw)))
	if tt != types.TeamManaged && tt != types.TeamPersonal {
		return "", &ValidationError{Field: "teamType", Message: "must be one of MANAGED, PERSONAL"}
	}
	return tt, nil
}

// PlayerName validates a first or last name: 1-50 characters, letters plus
// spaces, hyphens and apostrophes.
func PlayerName(field, name string) (string, *ValidationError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: field, Message: "is required"}
	}
	if len(name) > 50 {
		return "", &ValidationError{Field: field, Message: "must not exceed 50 characters"}
	}
	if !playerNameRe.MatchString(name) {
		return "", &ValidationError{Field: field, Message: "contains invalid characters"}
	}
	return name, nil
}

// PlayerNumber checks a jersey number is within 0-99.
func PlayerNumber(n int) *ValidationError {
	if n < 0 || n > 99 {
		return &ValidationError{Field: "playerNumber", Message: "must be between 0 and 99"}
	}
	return nil
}

// PlayerStatus normalizes the status. Empty defaults to active.
func PlayerStatus(raw string) (types.PlayerStatus, *ValidationError) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return types.PlayerActive, nil
	}
	st := types.PlayerStatus(s)
	if st != types.PlayerActive && st != types.PlayerInactive {
		return "", &ValidationError{Field: "status", Message: "must be one of active, inactive"}
	}
	return st, nil
}

// Positions uppercases, deduplicates and checks fielding positions; a player
// may list at most 2.
func Positions(raw []string) ([]string, *ValidationError) {
	var out []string
	seen := make(map[string]bool)
	for _, p := range raw {
		p = strings.ToUpper(strings.TrimSpace(p))
		if seen[p] {
			continue
		}
		if !fieldPositions[p] {
			return nil, &ValidationError{Field: "positions", Message: fmt.Sprintf("invalid position %q", p)}
		}
		seen[p] = true
		out = append(out, p)
	}
	if len(out) > 2 {
		return nil, &ValidationError{Field: "positions", Message: "a player may list a maximum of 2 positions"}
	}
	return out, nil
}

// GameTitle trims and checks length (3-100 characters).
func GameTitle(title string) (string, *ValidationError) {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return "", &ValidationError{Field: "title", Message: "must be at least 3 characters"}
	}
	if len(title) > 100 {
		return "", &ValidationError{Field: "title", Message: "must not exceed 100 characters"}
	}
	return title, nil
}

// GameStatus normalizes the status. Empty defaults to SCHEDULED.
func GameStatus(raw string) (types.GameStatus, *ValidationError) {
	if strings.TrimSpace(raw) == "" {
		return types.GameScheduled, nil
	}
	st := types.GameStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch st {
	case types.GameScheduled, types.GameInProgress, types.GameFinal, types.GamePostponed:
		return st, nil
	}
	return "", &ValidationError{Field: "status", Message: "must be one of SCHEDULED, IN_PROGRESS, FINAL, POSTPONED"}
}

// Score checks a run total is non-negative.
func Score(field string, n int) *ValidationError {
	if n < 0 {
		return &ValidationError{Field: field, Message: "must be 0 or greater"}
	}
	return nil
}

// Lineup checks each slot has a player, a valid position if present, and a
// unique batting order of 1 or greater.
func Lineup(slots []types.LineupSlot) *ValidationError {
	orders := make(map[int]bool)
	for i, slot := range slots {
		if slot.PlayerID == "" {
			return &ValidationError{Field: "lineup", Message: fmt.Sprintf("entry %d missing playerId", i)}
		}
		if slot.BattingOrder < 1 {
			return &ValidationError{Field: "lineup", Message: "battingOrder must be 1 or greater"}
		}
		if orders[slot.BattingOrder] {
			return &ValidationError{Field: "lineup", Message: fmt.Sprintf("duplicate batting order %d", slot.BattingOrder)}
		}
		orders[slot.BattingOrder] = true
		if slot.Position != "" && !fieldPositions[strings.ToUpper(slot.Position)] {
			return &ValidationError{Field: "lineup", Message: fmt.Sprintf("invalid position %q", slot.Position)}
		}
	}
	return nil
}

// AtBatResult checks the plate-appearance outcome.
func AtBatResult(r types.ABResult) *ValidationError {
	if !atBatResults[r] {
		return &ValidationError{Field: "result", Message: fmt.Sprintf("invalid result %q", r)}
	}
	return nil
}

// Inning checks the inning number is 1 or greater.
func Inning(n int) *ValidationError {
	if n < 1 {
		return &ValidationError{Field: "inning", Message: "must be 1 or greater"}
	}
	return nil
}

// Outs checks the out count before the at-bat is 0-2.
func Outs(n int) *ValidationError {
	if n < 0 || n > 2 {
		return &ValidationError{Field: "outs", Message: "must be between 0 and 2"}
	}
	return nil
}

// BattingOrder checks the batter's lineup position is 1 or greater.
func BattingOrder(n int) *ValidationError {
	if n < 1 {
		return &ValidationError{Field: "battingOrder", Message: "must be 1 or greater"}
	}
	return nil
}

// RBIs checks runs batted in are 0-4.
func RBIs(n int) *ValidationError {
	if n < 0 || n > 4 {
		return &ValidationError{Field: "rbis", Message: "must be between 0 and 4"}
	}
	return nil
}

// HitType normalizes and checks an optional batted-ball classification.
func HitType(raw string) (string, *ValidationError) {
	if raw == "" {
		return "", nil
	}
	ht := strings.ToUpper(strings.TrimSpace(raw))
	if !hitTypes[ht] {
		return "", &ValidationError{Field: "hitType", Message: fmt.Sprintf("invalid hit type %q", raw)}
	}
	return ht, nil
}
