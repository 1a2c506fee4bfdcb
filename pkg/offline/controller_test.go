package offline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func readyController(t *testing.T, items []entry, opts ...func(*Config[entry])) *Controller[entry] {
	t.Helper()
	cfg := Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			return cloneItems(items), nil
		},
		Cache: NewMemoryCache(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := NewController(cfg)
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestController_InitializeCacheMiss_BlockingFetch(t *testing.T) {
	cache := NewMemoryCache()
	fetched := []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}}
	c := NewController(Config[entry]{
		Key:   "entries",
		Fetch: func(ctx context.Context) ([]entry, error) { return fetched, nil },
		Cache: cache,
	})

	items, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !sameNames(names(items), "A") {
		t.Errorf("expected [A], got %v", names(items))
	}

	st := c.State()
	if st.Status != StatusReady {
		t.Errorf("expected ready, got %v", st.Status)
	}

	var persisted []entry
	if !cache.Load("entries", &persisted) {
		t.Fatal("fetch result not written to cache")
	}
	if !sameNames(names(persisted), "A") {
		t.Errorf("cache holds %v", names(persisted))
	}
}

func TestController_InitializeCacheHit_ServesCachedBeforeNetwork(t *testing.T) {
	cache := NewMemoryCache()
	cache.Store("entries", []entry{{ID: CanonicalID("a"), Name: "stale", Rank: 1}})

	release := make(chan struct{})
	c := NewController(Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			<-release
			return []entry{{ID: CanonicalID("a"), Name: "fresh", Rank: 1}}, nil
		},
		Cache: cache,
	})

	// The network is still blocked; the cached collection must come back now.
	items, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !sameNames(names(items), "stale") {
		t.Fatalf("expected cached data, got %v", names(items))
	}
	if st := c.State(); st.Status != StatusReady {
		t.Errorf("expected ready while refresh pending, got %v", st.Status)
	}

	close(release)
	waitFor(t, func() bool {
		st := c.State()
		return len(st.Items) == 1 && st.Items[0].Name == "fresh"
	})

	var persisted []entry
	if !cache.Load("entries", &persisted) || persisted[0].Name != "fresh" {
		t.Error("refreshed collection not persisted")
	}
}

func TestController_InitializeCacheHit_BackgroundFailureKeepsCached(t *testing.T) {
	cache := NewMemoryCache()
	cache.Store("entries", []entry{{ID: CanonicalID("a"), Name: "stale"}})

	var calls atomic.Int32
	done := make(chan struct{})
	c := NewController(Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			calls.Add(1)
			close(done)
			return nil, errors.New("network down")
		},
		Cache: cache,
	})

	items, err := c.Initialize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !sameNames(names(items), "stale") {
		t.Fatalf("expected cached data, got %v", names(items))
	}

	<-done
	waitFor(t, func() bool { return calls.Load() == 1 })

	st := c.State()
	if st.Status != StatusReady {
		t.Errorf("silent refresh failure must not surface: %v", st.Status)
	}
	if !sameNames(names(st.Items), "stale") {
		t.Errorf("cached collection lost: %v", names(st.Items))
	}
}

func TestController_InitializeFetchError(t *testing.T) {
	wantErr := errors.New("boom")
	c := NewController(Config[entry]{
		Key:   "entries",
		Fetch: func(ctx context.Context) ([]entry, error) { return nil, wantErr },
		Cache: NewMemoryCache(),
	})

	if _, err := c.Initialize(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	st := c.State()
	if st.Status != StatusFailed {
		t.Errorf("expected failed, got %v", st.Status)
	}
	if !errors.Is(st.Err, wantErr) {
		t.Errorf("state error = %v", st.Err)
	}
}

func TestController_InitializeOnlyLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	c := NewController(Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			calls.Add(1)
			return []entry{{ID: CanonicalID("a"), Name: "A"}}, nil
		},
	})

	for i := 0; i < 3; i++ {
		if _, err := c.Initialize(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 fetch, got %d", calls.Load())
	}
}

func TestController_RefreshFailureKeepsLastKnown(t *testing.T) {
	fail := false
	c := NewController(Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			if fail {
				return nil, errors.New("503")
			}
			return []entry{{ID: CanonicalID("a"), Name: "A"}}, nil
		},
	})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	fail = true
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	st := c.State()
	if st.Status != StatusFailed {
		t.Errorf("expected failed, got %v", st.Status)
	}
	if !sameNames(names(st.Items), "A") {
		t.Errorf("last-known collection lost: %v", names(st.Items))
	}
}

func TestController_RefreshReappliesOrdering(t *testing.T) {
	c := NewController(Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			// Server order is deliberately wrong.
			return []entry{
				{ID: CanonicalID("c"), Name: "C", Rank: 3},
				{ID: CanonicalID("a"), Name: "A", Rank: 1},
				{ID: CanonicalID("b"), Name: "B", Rank: 2},
			}, nil
		},
		Less: byRank,
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := names(c.State().Items); !sameNames(got, "A", "B", "C") {
		t.Errorf("expected sorted collection, got %v", got)
	}
}

func TestController_BackgroundRefreshSupersedesUnsettledMutation(t *testing.T) {
	// Documented race: a refresh that completes while a mutation is in
	// flight replaces the whole collection; the mutation's optimistic entry
	// disappears and its settlement degrades to a no-op.
	cache := NewMemoryCache()
	cache.Store("entries", []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}})

	refreshRelease := make(chan struct{})
	c := NewController(Config[entry]{
		Key: "entries",
		Fetch: func(ctx context.Context) ([]entry, error) {
			<-refreshRelease
			return []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}}, nil
		},
		Cache: cache,
		Less:  byRank,
	})
	if _, err := c.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	syn := NewSyntheticID()
	callRelease := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		Mutate(context.Background(), c, Plan[entry, entry]{
			Apply: func(items []entry) []entry {
				return append(items, entry{ID: syn, Name: "B", Rank: 2})
			},
			Call: func(ctx context.Context) (entry, error) {
				<-callRelease
				return entry{ID: CanonicalID("b"), Name: "B", Rank: 2}, nil
			},
			Reconcile: func(items []entry, created entry) []entry {
				return Replace(items, syn, created)
			},
			Rollback: func(items []entry) []entry {
				return Remove(items, syn)
			},
		})
	}()

	waitFor(t, func() bool { return len(c.State().Items) == 2 })

	// Background refresh resolves first and wipes the optimistic entry.
	close(refreshRelease)
	waitFor(t, func() bool { return len(c.State().Items) == 1 })

	// The mutation settles against the refreshed collection: its
	// placeholder is gone, so reconciliation is a no-op.
	close(callRelease)
	<-done
	if got := names(c.State().Items); !sameNames(got, "A") {
		t.Errorf("expected [A], got %v", got)
	}
}
