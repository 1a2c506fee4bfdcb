package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchTeamIDs []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the local cache fresh until interrupted",
	Long:  "Initializes the team list (and any rosters or schedules named with --team)\nand refreshes them on the configured interval until interrupted.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchTeamIDs, "team", nil,
		"Also watch this team's roster and games (repeatable)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Teams().Initialize(ctx); err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	for _, id := range watchTeamIDs {
		if _, err := tr.Roster(id).Initialize(ctx); err != nil {
			return fmt.Errorf("load roster %s: %w", id, err)
		}
		if _, err := tr.Games(id).Initialize(ctx); err != nil {
			return fmt.Errorf("load games %s: %w", id, err)
		}
	}

	interval := time.Duration(cfg.Cache.RefreshInterval)
	fmt.Fprintf(cmd.OutOrStdout(), "Watching (refresh every %s). Ctrl-C to stop.\n", interval)
	tr.Run(ctx, interval)
	return nil
}
