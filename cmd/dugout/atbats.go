package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hacktracker/dugout/internal/types"
)

var atBatsGameID string

var atBatsCmd = &cobra.Command{
	Use:   "atbats",
	Short: "Record and review at-bats for a game",
}

var atBatsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game's at-bats",
	Args:  cobra.NoArgs,
	RunE:  runAtBatsList,
}

var (
	atBatInning int
	atBatOuts   int
	atBatOrder  int
	atBatRBIs   int
)

var atBatsRecordCmd = &cobra.Command{
	Use:   "record <player-id> <result>",
	Short: "Record an at-bat (result: 1B, 2B, 3B, HR, BB, HBP, K, GO, FO, SF, FC, E)",
	Args:  cobra.ExactArgs(2),
	RunE:  runAtBatsRecord,
}

var atBatsCorrectCmd = &cobra.Command{
	Use:   "correct <at-bat-id> <result>",
	Short: "Correct a recorded at-bat's result",
	Args:  cobra.ExactArgs(2),
	RunE:  runAtBatsCorrect,
}

var atBatsDeleteCmd = &cobra.Command{
	Use:   "delete <at-bat-id>",
	Short: "Delete a recorded at-bat",
	Args:  cobra.ExactArgs(1),
	RunE:  runAtBatsDelete,
}

func init() {
	atBatsCmd.PersistentFlags().StringVar(&atBatsGameID, "game", "", "Game ID (required)")
	atBatsCmd.MarkPersistentFlagRequired("game")

	atBatsRecordCmd.Flags().IntVar(&atBatInning, "inning", 1, "Inning (1+)")
	atBatsRecordCmd.Flags().IntVar(&atBatOuts, "outs", 0, "Outs before the at-bat (0-2)")
	atBatsRecordCmd.Flags().IntVar(&atBatOrder, "order", 1, "Batting order position")
	atBatsRecordCmd.Flags().IntVar(&atBatRBIs, "rbis", -1, "Runs batted in (0-4)")

	atBatsCmd.AddCommand(atBatsListCmd)
	atBatsCmd.AddCommand(atBatsRecordCmd)
	atBatsCmd.AddCommand(atBatsCorrectCmd)
	atBatsCmd.AddCommand(atBatsDeleteCmd)
}

func runAtBatsList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	atBats, err := tr.AtBats(atBatsGameID).Initialize(context.Background())
	if err != nil {
		return fmt.Errorf("load at-bats: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), atBats)
	}

	if len(atBats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No at-bats recorded.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tINNING\tPLAYER\tRESULT\tRBIS")
	for _, ab := range atBats {
		rbis := "-"
		if ab.RBIs != nil {
			rbis = fmt.Sprintf("%d", *ab.RBIs)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", ab.ID, ab.Inning, ab.PlayerID, ab.Result, rbis)
	}
	return w.Flush()
}

func runAtBatsRecord(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.AtBats(atBatsGameID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load at-bats: %w", err)
	}

	req := types.NewAtBat{
		PlayerID:     args[0],
		Result:       types.ABResult(args[1]),
		Inning:       atBatInning,
		Outs:         atBatOuts,
		BattingOrder: atBatOrder,
	}
	if atBatRBIs >= 0 {
		req.RBIs = &atBatRBIs
	}

	atBat, ok := tr.RecordAtBat(context.Background(), atBatsGameID, req)
	if !ok {
		return errors.New("at-bat was not recorded")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), atBat)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s in inning %d (%s)\n", atBat.Result, atBat.Inning, atBat.ID)
	return nil
}

func runAtBatsCorrect(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.AtBats(atBatsGameID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load at-bats: %w", err)
	}

	result := types.ABResult(args[1])
	atBat, ok := tr.UpdateAtBat(context.Background(), atBatsGameID, args[0],
		types.AtBatPatch{Result: &result})
	if !ok {
		return errors.New("at-bat was not corrected")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), atBat)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "At-bat %s corrected to %s\n", atBat.ID, atBat.Result)
	return nil
}

func runAtBatsDelete(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.AtBats(atBatsGameID).Initialize(context.Background()); err != nil {
		return fmt.Errorf("load at-bats: %w", err)
	}

	if ok := tr.DeleteAtBat(context.Background(), atBatsGameID, args[0]); !ok {
		return errors.New("at-bat was not deleted")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "At-bat deleted")
	return nil
}
