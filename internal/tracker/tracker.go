// Package tracker wires the offline controllers for every HackTracker
// resource. It is the explicit dependency-injection seam: everything the
// controllers need (remote client, cache store, notification sink) is passed
// in, so tests can substitute fakes without global state.
package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hacktracker/dugout/internal/remote"
	"github.com/hacktracker/dugout/internal/types"
	"github.com/hacktracker/dugout/pkg/offline"
)

// Cache key layout: one key per resource type plus disambiguating parameter.
const (
	teamsKey     = "teams"
	rosterPrefix = "roster:"
	gamesPrefix  = "games:"
	atBatsPrefix = "atbats:"
)

// Tracker lazily builds and memoizes one controller per resource+parameter.
type Tracker struct {
	client *remote.Client
	cache  offline.CacheStore
	notify offline.Sink

	mu      sync.Mutex
	teams   *offline.Controller[types.Team]
	rosters map[string]*offline.Controller[types.Player]
	games   map[string]*offline.Controller[types.Game]
	atBats  map[string]*offline.Controller[types.AtBat]
}

// New creates a Tracker. cache may be nil to run without persistence; sink
// may be nil to discard notifications.
func New(client *remote.Client, cache offline.CacheStore, sink offline.Sink) *Tracker {
	if sink == nil {
		sink = offline.NopSink{}
	}
	return &Tracker{
		client:  client,
		cache:   cache,
		notify:  sink,
		rosters: make(map[string]*offline.Controller[types.Player]),
		games:   make(map[string]*offline.Controller[types.Game]),
		atBats:  make(map[string]*offline.Controller[types.AtBat]),
	}
}

// Teams returns the controller for the user's team list.
func (t *Tracker) Teams() *offline.Controller[types.Team] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.teams == nil {
		t.teams = offline.NewController(offline.Config[types.Team]{
			Key: teamsKey,
			Fetch: func(ctx context.Context) ([]types.Team, error) {
				return t.client.Teams().List(ctx)
			},
			Cache:  t.cache,
			Notify: t.notify,
			Less:   types.TeamsByName,
		})
	}
	return t.teams
}

// Roster returns the controller for one team's players.
func (t *Tracker) Roster(teamID string) *offline.Controller[types.Player] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.rosters[teamID]; ok {
		return c
	}
	c := offline.NewController(offline.Config[types.Player]{
		Key: rosterPrefix + teamID,
		Fetch: func(ctx context.Context) ([]types.Player, error) {
			return t.client.Players(teamID).List(ctx)
		},
		Cache:  t.cache,
		Notify: t.notify,
		Less:   types.PlayersByNumber,
	})
	t.rosters[teamID] = c
	return c
}

// Games returns the controller for one team's games.
func (t *Tracker) Games(teamID string) *offline.Controller[types.Game] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.games[teamID]; ok {
		return c
	}
	c := offline.NewController(offline.Config[types.Game]{
		Key: gamesPrefix + teamID,
		Fetch: func(ctx context.Context) ([]types.Game, error) {
			return t.client.Games(teamID).List(ctx)
		},
		Cache:  t.cache,
		Notify: t.notify,
		Less:   types.GamesBySchedule,
	})
	t.games[teamID] = c
	return c
}

// AtBats returns the controller for one game's plate appearances.
func (t *Tracker) AtBats(gameID string) *offline.Controller[types.AtBat] {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.atBats[gameID]; ok {
		return c
	}
	c := offline.NewController(offline.Config[types.AtBat]{
		Key: atBatsPrefix + gameID,
		Fetch: func(ctx context.Context) ([]types.AtBat, error) {
			return t.client.AtBats(gameID).List(ctx)
		},
		Cache:  t.cache,
		Notify: t.notify,
		Less:   types.AtBatsByInning,
	})
	t.atBats[gameID] = c
	return c
}

// ClearCache drops every cached collection.
func (t *Tracker) ClearCache() {
	if t.cache != nil {
		t.cache.ClearAll()
	}
}

// Run refreshes every built controller on the given interval until ctx is
// cancelled. Refresh failures are logged and retried next tick.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.refreshAll(ctx)
		}
	}
}

func (t *Tracker) refreshAll(ctx context.Context) {
	t.mu.Lock()
	var keys []string
	var refresh []func(context.Context) error
	if t.teams != nil {
		keys = append(keys, t.teams.Key())
		refresh = append(refresh, t.teams.Refresh)
	}
	for _, c := range t.rosters {
		keys = append(keys, c.Key())
		refresh = append(refresh, c.Refresh)
	}
	for _, c := range t.games {
		keys = append(keys, c.Key())
		refresh = append(refresh, c.Refresh)
	}
	for _, c := range t.atBats {
		keys = append(keys, c.Key())
		refresh = append(refresh, c.Refresh)
	}
	t.mu.Unlock()

	for i, fn := range refresh {
		if err := fn(ctx); err != nil {
			slog.Debug("periodic refresh failed", "key", keys[i], "error", err)
		}
	}
}
