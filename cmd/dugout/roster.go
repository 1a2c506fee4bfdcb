package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hacktracker/dugout/internal/types"
)

var rosterTeamID string

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage a team's roster",
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roster",
	Args:  cobra.NoArgs,
	RunE:  runRosterList,
}

var (
	playerLastName  string
	playerNumber    int
	playerPositions []string
)

var rosterAddCmd = &cobra.Command{
	Use:   "add <first-name>",
	Short: "Add a player to the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runRosterAdd,
}

var rosterNumberCmd = &cobra.Command{
	Use:   "number <player-id> <number>",
	Short: "Change a player's jersey number",
	Args:  cobra.ExactArgs(2),
	RunE:  runRosterNumber,
}

var rosterRemoveCmd = &cobra.Command{
	Use:   "remove <player-id>",
	Short: "Remove a player from the roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runRosterRemove,
}

func init() {
	rosterCmd.PersistentFlags().StringVar(&rosterTeamID, "team", "", "Team ID (required)")
	rosterCmd.MarkPersistentFlagRequired("team")

	rosterAddCmd.Flags().StringVar(&playerLastName, "last-name", "", "Player last name")
	rosterAddCmd.Flags().IntVar(&playerNumber, "number", -1, "Jersey number (0-99)")
	rosterAddCmd.Flags().StringSliceVar(&playerPositions, "positions", nil, "Field positions (e.g. SS,2B)")

	rosterCmd.AddCommand(rosterListCmd)
	rosterCmd.AddCommand(rosterAddCmd)
	rosterCmd.AddCommand(rosterNumberCmd)
	rosterCmd.AddCommand(rosterRemoveCmd)
}

func runRosterList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	players, err := tr.Roster(rosterTeamID).Initialize(context.Background())
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), players)
	}

	if len(players) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No players on the roster.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNUMBER\tNAME\tSTATUS\tPOSITIONS")
	for _, p := range players {
		number := "-"
		if p.Number != nil {
			number = fmt.Sprintf("%d", *p.Number)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, number, p.DisplayName(), p.Status, strings.Join(p.Positions, ","))
	}
	return w.Flush()
}

func runRosterAdd(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Roster(rosterTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	req := types.NewPlayer{
		FirstName: args[0],
		LastName:  playerLastName,
		Positions: playerPositions,
	}
	if playerNumber >= 0 {
		req.Number = &playerNumber
	}

	player, ok := tr.AddPlayer(context.Background(), rosterTeamID, req)
	if !ok {
		return errors.New("player was not added")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), player)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", player.DisplayName(), player.ID)
	return nil
}

func runRosterNumber(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Roster(rosterTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	var number int
	if _, err := fmt.Sscanf(args[1], "%d", &number); err != nil {
		return fmt.Errorf("invalid number %q", args[1])
	}

	player, ok := tr.UpdatePlayer(context.Background(), rosterTeamID, args[0],
		types.PlayerPatch{Number: &number})
	if !ok {
		return errors.New("player was not updated")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), player)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s now wears #%d\n", player.DisplayName(), number)
	return nil
}

func runRosterRemove(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Roster(rosterTeamID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load roster: %w", err)
	}

	if ok := tr.RemovePlayer(context.Background(), rosterTeamID, args[0]); !ok {
		return errors.New("player was not removed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Player removed")
	return nil
}
