package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hacktracker/dugout/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached collection",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	store.ClearAll()
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}
