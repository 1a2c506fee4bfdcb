package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hacktracker/dugout/internal/types"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Manage teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all teams",
	Args:  cobra.NoArgs,
	RunE:  runTeamsList,
}

var (
	teamDescription string
	teamTypeFlag    string
)

var teamsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsCreate,
}

var teamsRenameCmd = &cobra.Command{
	Use:   "rename <team-id> <name>",
	Short: "Rename a team",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamsRename,
}

var teamsDeleteCmd = &cobra.Command{
	Use:   "delete <team-id>",
	Short: "Delete a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsDelete,
}

func init() {
	teamsCreateCmd.Flags().StringVar(&teamDescription, "description", "", "Team description")
	teamsCreateCmd.Flags().StringVar(&teamTypeFlag, "type", "MANAGED", "Team type (MANAGED or PERSONAL)")

	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsCreateCmd)
	teamsCmd.AddCommand(teamsRenameCmd)
	teamsCmd.AddCommand(teamsDeleteCmd)
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	teams, err := tr.Teams().Initialize(context.Background())
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), teams)
	}

	if len(teams) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No teams found.")
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tDESCRIPTION")
	for _, t := range teams {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Type, t.Description)
	}
	return w.Flush()
}

func runTeamsCreate(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		return fmt.Errorf("load teams: %w", err)
	}

	team, ok := tr.CreateTeam(context.Background(), types.NewTeam{
		Name:        args[0],
		Description: teamDescription,
		Type:        types.TeamType(teamTypeFlag),
	})
	if !ok {
		return errors.New("team was not created")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), team)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created team %s (%s)\n", team.Name, team.ID)
	return nil
}

func runTeamsRename(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		return fmt.Errorf("load teams: %w", err)
	}

	name := args[1]
	team, ok := tr.UpdateTeam(context.Background(), args[0], types.TeamPatch{Name: &name})
	if !ok {
		return errors.New("team was not renamed")
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), team)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed team %s to %s\n", team.ID, team.Name)
	return nil
}

func runTeamsDelete(cmd *cobra.Command, args []string) error {
	tr, cleanup, err := resolveTracker()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := tr.Teams().Initialize(context.Background()); err != nil {
		return fmt.Errorf("load teams: %w", err)
	}

	if ok := tr.DeleteTeam(context.Background(), args[0]); !ok {
		return errors.New("team was not deleted")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Team deleted")
	return nil
}
