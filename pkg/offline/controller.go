package offline

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FetchFunc loads the full collection from the remote API.
type FetchFunc[T Item] func(ctx context.Context) ([]T, error)

// Config assembles a Controller.
type Config[T Item] struct {
	// Key is the cache key for this collection, unique per resource type
	// plus disambiguating parameter (e.g. "games:team-123").
	Key string
	// Fetch loads the canonical collection from the server.
	Fetch FetchFunc[T]
	// Cache persists collections across restarts. Nil disables caching.
	Cache CacheStore
	// Notify receives mutation outcomes. Nil means NopSink.
	Notify Sink
	// Less defines the collection's presentation order. It is re-applied
	// after every state replacement, so order is never a function of server
	// or insertion order. Nil preserves incoming order.
	Less func(a, b T) bool
}

// Controller owns the observable state of one server-backed collection. It
// serves cached data instantly while refreshing in the background, and applies
// mutations optimistically via Mutate.
//
// All state transitions happen under a single mutex; remote calls and cache
// I/O run outside it. The controller is the collection's only mutator.
type Controller[T Item] struct {
	key    string
	fetch  FetchFunc[T]
	cache  CacheStore
	notify Sink
	less   func(a, b T) bool

	mu          sync.Mutex
	state       State[T]
	initialized bool
}

// NewController creates a controller in the Uninitialized state.
func NewController[T Item](cfg Config[T]) *Controller[T] {
	notify := cfg.Notify
	if notify == nil {
		notify = NopSink{}
	}
	return &Controller[T]{
		key:    cfg.Key,
		fetch:  cfg.Fetch,
		cache:  cfg.Cache,
		notify: notify,
		less:   cfg.Less,
	}
}

// State returns a snapshot of the current state. The returned Items slice is a
// copy; callers may modify it.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// Key returns the controller's cache key.
func (c *Controller[T]) Key() string {
	return c.key
}

// Initialize performs the first load. On a cache hit it returns the cached
// collection immediately and refreshes from the server in the background; a
// failed background refresh leaves the served data untouched. On a cache miss
// it fetches synchronously, persisting the result.
//
// Subsequent calls return the current collection without reloading.
func (c *Controller[T]) Initialize(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	if c.initialized {
		defer c.mu.Unlock()
		if c.state.Status == StatusFailed && c.state.Items == nil {
			return nil, c.state.Err
		}
		return cloneItems(c.state.Items), nil
	}
	c.initialized = true

	var cached []T
	if c.cache != nil && c.cache.Load(c.key, &cached) {
		sortItems(cached, c.less)
		c.state = State[T]{Status: StatusReady, Items: cached, AsOf: time.Now().UTC()}
		c.mu.Unlock()

		// Stale-while-revalidate: the caller gets the cached collection now;
		// the refresh replaces it when (and if) the fetch succeeds. Issued
		// remote calls are never cancelled, so the background context is
		// deliberately detached from the caller's.
		go c.backgroundRefresh(context.Background())
		return cloneItems(cached), nil
	}

	c.state.Status = StatusLoading
	c.mu.Unlock()

	items, err := c.fetch(ctx)
	c.mu.Lock()
	if err != nil {
		c.state = State[T]{Status: StatusFailed, Err: err}
		c.mu.Unlock()
		return nil, err
	}
	sortItems(items, c.less)
	c.state = State[T]{Status: StatusReady, Items: items, AsOf: time.Now().UTC()}
	snapshot := cloneItems(items)
	c.mu.Unlock()

	c.persist(snapshot)
	return snapshot, nil
}

// Refresh reloads the collection from the server. On success the new
// collection replaces state and cache; on failure the state moves to Failed
// but keeps the previous collection as last-known data.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.initialized = true
	prev := c.state.Items
	c.state = State[T]{Status: StatusLoading, Items: prev, AsOf: c.state.AsOf}
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	if err != nil {
		c.state = State[T]{Status: StatusFailed, Items: prev, AsOf: c.state.AsOf, Err: err}
		c.mu.Unlock()
		return err
	}
	sortItems(items, c.less)
	c.state = State[T]{Status: StatusReady, Items: items, AsOf: time.Now().UTC()}
	snapshot := cloneItems(items)
	c.mu.Unlock()

	c.persist(snapshot)
	return nil
}

// backgroundRefresh is the silent half of stale-while-revalidate. Failures are
// logged and swallowed: stale data beats an error toast the user never asked
// for. A success performs a full replace, which supersedes any optimistic
// change that has not settled yet; settling mutations then reconcile against
// the refreshed collection.
func (c *Controller[T]) backgroundRefresh(ctx context.Context) {
	items, err := c.fetch(ctx)
	if err != nil {
		slog.Debug("background refresh failed", "key", c.key, "error", err)
		return
	}

	c.mu.Lock()
	sortItems(items, c.less)
	c.state = State[T]{Status: StatusReady, Items: items, AsOf: time.Now().UTC()}
	snapshot := cloneItems(items)
	c.mu.Unlock()

	c.persist(snapshot)
}

// replace installs a new collection under the lock, re-sorting first.
// Returns a copy for persistence.
func (c *Controller[T]) replace(items []T) []T {
	sortItems(items, c.less)
	c.state = State[T]{Status: StatusReady, Items: items, AsOf: time.Now().UTC()}
	return cloneItems(items)
}

// persist writes the collection to the cache store. Cache write failures are
// the store's problem; it logs and absorbs them.
func (c *Controller[T]) persist(items []T) {
	if c.cache == nil {
		return
	}
	c.cache.Store(c.key, items)
}
