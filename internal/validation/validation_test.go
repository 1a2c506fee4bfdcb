package validation

import (
	"strings"
	"testing"

	"github.com/hacktracker/dugout/internal/types"
)

func TestTeamName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"valid", "Warriors", "Warriors", false},
		{"with numbers", "Team 123", "Team 123", false},
		{"trims whitespace", "  Warriors  ", "Warriors", false},
		{"collapses spaces", "The    Best    Team", "The Best Team", false},
		{"too short", "AB", "", true},
		{"too long", strings.Repeat("A", 51), "", true},
		{"bad characters", "Team!", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TeamName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TeamName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TeamName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	if got, err := Description("  notes  "); err != nil || got != "notes" {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := Description(strings.Repeat("a", 501)); err == nil {
		t.Error("expected length error")
	}
	if got, err := Description("   "); err != nil || got != "" {
		t.Errorf("whitespace-only must normalize to empty, got %q, %v", got, err)
	}
}

func TestTeamType(t *testing.T) {
	if tt, err := TeamType(""); err != nil || tt != types.TeamManaged {
		t.Errorf("empty must default to MANAGED, got %v, %v", tt, err)
	}
	if tt, err := TeamType("personal"); err != nil || tt != types.TeamPersonal {
		t.Errorf("case insensitive, got %v, %v", tt, err)
	}
	if _, err := TeamType("SQUAD"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestPlayerNumber(t *testing.T) {
	for _, n := range []int{0, 23, 99} {
		if err := PlayerNumber(n); err != nil {
			t.Errorf("PlayerNumber(%d) = %v", n, err)
		}
	}
	for _, n := range []int{-1, 100} {
		if err := PlayerNumber(n); err == nil {
			t.Errorf("PlayerNumber(%d) expected error", n)
		}
	}
}

func TestPlayerStatus(t *testing.T) {
	if st, err := PlayerStatus(""); err != nil || st != types.PlayerActive {
		t.Errorf("empty must default to active, got %v, %v", st, err)
	}
	if st, err := PlayerStatus("  INACTIVE "); err != nil || st != types.PlayerInactive {
		t.Errorf("got %v, %v", st, err)
	}
	if _, err := PlayerStatus("benched"); err == nil {
		t.Error("expected error")
	}
}

func TestPositions(t *testing.T) {
	got, err := Positions([]string{"1b", "ss"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "1B" || got[1] != "SS" {
		t.Errorf("got %v", got)
	}

	got, err = Positions([]string{"ss", "SS"})
	if err != nil || len(got) != 1 {
		t.Errorf("duplicates must collapse, got %v, %v", got, err)
	}

	if _, err := Positions([]string{"1B", "2B", "3B"}); err == nil {
		t.Error("expected error for more than 2 positions")
	}
	if _, err := Positions([]string{"QB"}); err == nil {
		t.Error("expected error for invalid position")
	}
}

func TestGameStatus(t *testing.T) {
	if st, err := GameStatus(""); err != nil || st != types.GameScheduled {
		t.Errorf("empty must default to SCHEDULED, got %v, %v", st, err)
	}
	if st, err := GameStatus("in_progress"); err != nil || st != types.GameInProgress {
		t.Errorf("got %v, %v", st, err)
	}
	if _, err := GameStatus("RAINED_OUT"); err == nil {
		t.Error("expected error")
	}
}

func TestLineup(t *testing.T) {
	valid := []types.LineupSlot{
		{PlayerID: "p1", BattingOrder: 1, Position: "1B"},
		{PlayerID: "p2", BattingOrder: 2, Position: "SS"},
	}
	if err := Lineup(valid); err != nil {
		t.Errorf("valid lineup rejected: %v", err)
	}
	if err := Lineup(nil); err != nil {
		t.Errorf("empty lineup rejected: %v", err)
	}
	if err := Lineup([]types.LineupSlot{{BattingOrder: 1}}); err == nil {
		t.Error("expected error for missing playerId")
	}
	if err := Lineup([]types.LineupSlot{
		{PlayerID: "p1", BattingOrder: 1},
		{PlayerID: "p2", BattingOrder: 1},
	}); err == nil {
		t.Error("expected error for duplicate batting order")
	}
	if err := Lineup([]types.LineupSlot{{PlayerID: "p1", BattingOrder: 0}}); err == nil {
		t.Error("expected error for zero batting order")
	}
}

func TestAtBatFields(t *testing.T) {
	if err := AtBatResult(types.ResultHomeRun); err != nil {
		t.Errorf("HR rejected: %v", err)
	}
	if err := AtBatResult("XX"); err == nil {
		t.Error("expected error for unknown result")
	}
	if err := Inning(0); err == nil {
		t.Error("expected error for inning 0")
	}
	if err := Outs(3); err == nil {
		t.Error("expected error for 3 outs")
	}
	if err := RBIs(5); err == nil {
		t.Error("expected error for 5 rbis")
	}
	if err := BattingOrder(0); err == nil {
		t.Error("expected error for batting order 0")
	}
	if ht, err := HitType("line_drive"); err != nil || ht != "LINE_DRIVE" {
		t.Errorf("got %q, %v", ht, err)
	}
	if _, err := HitType("CHOPPER"); err == nil {
		t.Error("expected error for unknown hit type")
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	if c.HasErrors() {
		t.Error("new collector must be empty")
	}
	c.Add(nil)
	if c.HasErrors() {
		t.Error("nil adds must be ignored")
	}
	c.Add(&ValidationError{Field: "name", Message: "bad"})
	c.Add(&ValidationError{Field: "status", Message: "worse"})
	if len(c.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(c.Errors()))
	}
	if c.First() == nil || c.First().Error() != "name: bad" {
		t.Errorf("First = %v", c.First())
	}
}
