package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hacktracker/dugout/internal/cache"
	"github.com/hacktracker/dugout/internal/config"
	"github.com/hacktracker/dugout/internal/notify"
	"github.com/hacktracker/dugout/internal/remote"
	"github.com/hacktracker/dugout/internal/tracker"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	configPath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:           "dugout",
	Short:         "Dugout - offline-first HackTracker client",
	Long:          "Track teams, rosters, games, and at-bats against a HackTracker server,\nserving cached data instantly and syncing in the background.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		initLogger(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (overrides DUGOUT_CONFIG_PATH)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Output in JSON format")

	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(atBatsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func initLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}
	var handler slog.Handler
	if cfg.Log.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveTracker wires the remote client, persistent cache, and console
// notifications into a Tracker. The returned cleanup closes the cache.
func resolveTracker() (*tracker.Tracker, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	client := remote.New(cfg.Server.URL, cfg.Server.APIKey)
	sink := &notify.Console{Out: os.Stdout, Err: os.Stderr}

	tr := tracker.New(client, store, sink)
	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Error("cache close error", "error", err)
		}
	}
	return tr, cleanup, nil
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
