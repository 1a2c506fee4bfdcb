package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hacktracker/dugout/internal/types"
)

var gamesTeamID string

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage a team's games",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the team's games",
	Args:  cobra.NoArgs,
	RunE:  runGamesList,
}

var (
	gameOpponent string
	gameStart    string
)

var gamesScheduleCmd = &cobra.Command{
	Use:   "schedule <title>",
	Short: "Schedule a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesSchedule,
}

var gamesStatusCmd = &cobra.Command{
	Use:   "status <game-id> <status>",
	Short: "Change a game's status (SCHEDULED, IN_PROGRESS, FINAL, POSTPONED)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGamesStatus,
}

var gamesScoreCmd = &cobra.Command{
	Use:   "score <game-id> <team-score> <opponent-score>",
	Short: "Update a game's score",
	Args:  cobra.ExactArgs(3),
	RunE:  runGamesScore,
}

var gamesDeleteCmd = &cobra.Command{
	Use:   "delete <game-id>",
	Short: "Delete a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesDelete,
}

func init() {
	gamesCmd.PersistentFlags().StringVar(&gamesTeamID, "team", "", "Team ID (required)")
	gamesCmd.MarkPersistentFlagRequired("team")

	gamesScheduleCmd.Flags().StringVar(&gameOpponent, "opponent", "", "Opponent name")
	gamesScheduleCmd.Flags().StringVar(&gameStart, "start", "", "Scheduled start (RFC 3339)")

	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesScheduleCmd)
	gamesCmd.AddCommand(gamesStatusCmd)
	gamesCmd.AddCommand(gamesScoreCmd)
	gamesCmd.AddCommand(gamesDeleteCmd)
}

func runGamesList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	games, err := tr.Games(gamesTeamID).Initialize(context.Background())
	if err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), games)
	}

	if len(games) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games scheduled.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tSCORE\tSTART")
	for _, g := range games {
		start := "-"
		if g.ScheduledStart != nil {
			start = g.ScheduledStart.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\t%s\n",
			g.ID, g.Title, g.Status, g.TeamScore, g.OpponentScore, start)
	}
	return w.Flush()
}

func runGamesSchedule(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Games(gamesTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	req := types.NewGame{Title: args[0], OpponentName: gameOpponent}
	if gameStart != "" {
		start, err := time.Parse(time.RFC3339, gameStart)
		if err != nil {
			return fmt.Errorf("invalid start time %q: %w", gameStart, err)
		}
		req.ScheduledStart = &start
	}

	game, ok := tr.ScheduleGame(context.Background(), gamesTeamID, req)
	if !ok {
		return errors.New("game was not scheduled")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), game)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s (%s)\n", game.Title, game.ID)
	return nil
}

func runGamesStatus(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Games(gamesTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	status := types.GameStatus(args[1])
	game, ok := tr.UpdateGame(context.Background(), gamesTeamID, args[0],
		types.GamePatch{Status: &status})
	if !ok {
		return errors.New("game was not updated")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), game)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", game.Title, game.Status)
	return nil
}

func runGamesScore(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Games(gamesTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	var teamScore, opponentScore int
	if _, err := fmt.Sscanf(args[1], "%d", &teamScore); err != nil {
		return fmt.Errorf("invalid team score %q", args[1])
	}
	if _, err := fmt.Sscanf(args[2], "%d", &opponentScore); err != nil {
		return fmt.Errorf("invalid opponent score %q", args[2])
	}

	game, ok := tr.UpdateGame(context.Background(), gamesTeamID, args[0],
		types.GamePatch{TeamScore: &teamScore, OpponentScore: &opponentScore})
	if !ok {
		return errors.New("game was not updated")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), game)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d-%d\n", game.Title, game.TeamScore, game.OpponentScore)
	return nil
}

func runGamesDelete(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Games(gamesTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load games: %w", err)
	}

	if ok := tr.DeleteGame(context.Background(), gamesTeamID, args[0]); !ok {
		return errors.New("game was not deleted")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Game deleted")
	return nil
}
