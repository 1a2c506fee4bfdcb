package offline

import (
	"context"
	"errors"
	"testing"
)

func addPlan(syn ID, draft entry, call func(ctx context.Context) (entry, error)) Plan[entry, entry] {
	draft.ID = syn
	return Plan[entry, entry]{
		Apply: func(items []entry) []entry {
			return append(items, draft)
		},
		Call: call,
		Reconcile: func(items []entry, created entry) []entry {
			return Replace(items, syn, created)
		},
		Rollback: func(items []entry) []entry {
			return Remove(items, syn)
		},
		Success: "added " + draft.Name,
		Failure: "could not add " + draft.Name,
	}
}

func TestMutate_PreconditionNotReady(t *testing.T) {
	sink := &testSink{}
	c := NewController(Config[entry]{
		Key:    "entries",
		Fetch:  func(ctx context.Context) ([]entry, error) { return nil, errors.New("down") },
		Notify: sink,
	})

	called := false
	_, ok := Mutate(context.Background(), c, Plan[entry, struct{}]{
		Apply: func(items []entry) []entry { return items },
		Call: func(ctx context.Context) (struct{}, error) {
			called = true
			return struct{}{}, nil
		},
	})
	if ok {
		t.Error("mutation against uninitialized state must be a no-op")
	}
	if called {
		t.Error("remote call must not run when precondition fails")
	}
	if s, f := sink.counts(); s != 0 || f != 0 {
		t.Error("precondition no-op must not notify")
	}
}

func TestMutate_OptimisticApplyIsSynchronous(t *testing.T) {
	c := readyController(t, []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}})

	release := make(chan struct{})
	done := make(chan struct{})
	syn := NewSyntheticID()
	go func() {
		defer close(done)
		Mutate(context.Background(), c, addPlan(syn, entry{Name: "B", Rank: 2},
			func(ctx context.Context) (entry, error) {
				<-release
				return entry{ID: CanonicalID("b"), Name: "B", Rank: 2}, nil
			}))
	}()

	// The optimistic entry must appear without waiting on the network.
	waitFor(t, func() bool { return len(c.State().Items) == 2 })
	st := c.State()
	if !st.Items[1].ItemID().IsSynthetic() {
		t.Error("optimistic entry must carry a synthetic id")
	}

	close(release)
	<-done
}

func TestMutate_ReconcileReplacesPlaceholder(t *testing.T) {
	sink := &testSink{}
	cache := NewMemoryCache()
	c := readyController(t, []entry{{ID: CanonicalID("t1"), Name: "Rockets", Rank: 1}},
		func(cfg *Config[entry]) {
			cfg.Notify = sink
			cfg.Cache = cache
		})

	syn := NewSyntheticID()
	created, ok := Mutate(context.Background(), c, addPlan(syn, entry{Name: "Thunder", Rank: 2},
		func(ctx context.Context) (entry, error) {
			return entry{ID: CanonicalID("t2"), Name: "Thunder", Rank: 2}, nil
		}))
	if !ok {
		t.Fatal("mutation failed")
	}
	if created.ID != CanonicalID("t2") {
		t.Errorf("expected canonical server item, got %v", created)
	}

	st := c.State()
	if len(st.Items) != 2 {
		t.Fatalf("placeholder duplicated: %v", names(st.Items))
	}
	canonical := 0
	for _, it := range st.Items {
		if it.ItemID().IsSynthetic() {
			t.Errorf("synthetic id survived reconciliation: %v", it)
		}
		if it.ItemID() == CanonicalID("t2") {
			canonical++
		}
	}
	if canonical != 1 {
		t.Errorf("expected exactly one item with the canonical id, got %d", canonical)
	}

	var persisted []entry
	if !cache.Load("entries", &persisted) || len(persisted) != 2 {
		t.Error("settled collection not persisted")
	}
	if s, _ := sink.counts(); s != 1 {
		t.Error("success not reported")
	}
}

func TestMutate_RollbackAgainstCurrentStateNotSnapshot(t *testing.T) {
	sink := &testSink{}
	c := readyController(t, []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}},
		func(cfg *Config[entry]) { cfg.Notify = sink })

	// M1: add B, network call gated so it stays in flight.
	m1Release := make(chan struct{})
	m1Done := make(chan struct{})
	go func() {
		defer close(m1Done)
		Mutate(context.Background(), c, addPlan(NewSyntheticID(), entry{Name: "B", Rank: 2},
			func(ctx context.Context) (entry, error) {
				<-m1Release
				return entry{}, errors.New("create rejected")
			}))
	}()
	waitFor(t, func() bool { return len(c.State().Items) == 2 })

	// M2: add C, settles completely while M1 is still in flight.
	_, ok := Mutate(context.Background(), c, addPlan(NewSyntheticID(), entry{Name: "C", Rank: 3},
		func(ctx context.Context) (entry, error) {
			return entry{ID: CanonicalID("c"), Name: "C", Rank: 3}, nil
		}))
	if !ok {
		t.Fatal("M2 failed")
	}

	// M1 fails: only B's optimistic addition may be undone.
	close(m1Release)
	<-m1Done

	if got := names(c.State().Items); !sameNames(got, "A", "C") {
		t.Errorf("rollback must preserve concurrent mutation: got %v, want [A C]", got)
	}
	if _, f := sink.counts(); f != 1 {
		t.Error("failure not reported")
	}
}

func TestMutate_FailureReturnsNotOKWithoutError(t *testing.T) {
	sink := &testSink{}
	c := readyController(t, []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}},
		func(cfg *Config[entry]) { cfg.Notify = sink })

	_, ok := Mutate(context.Background(), c, addPlan(NewSyntheticID(), entry{Name: "B", Rank: 2},
		func(ctx context.Context) (entry, error) {
			return entry{}, errors.New("network down")
		}))
	if ok {
		t.Error("failed mutation must report ok=false")
	}
	if st := c.State(); st.Status != StatusReady || !sameNames(names(st.Items), "A") {
		t.Errorf("rollback left state %v %v", st.Status, names(st.Items))
	}
}

func TestMutate_SupersededUpdateRollsBackAsNoop(t *testing.T) {
	target := entry{ID: CanonicalID("b"), Name: "B", Rank: 2}
	c := readyController(t, []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}, target})

	// Update plan in the capture-prior-inside-Apply convention.
	var prior entry
	var had bool
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		Mutate(context.Background(), c, Plan[entry, entry]{
			Apply: func(items []entry) []entry {
				prior, had = Find(items, target.ID)
				renamed := target
				renamed.Name = "B!"
				return Replace(items, target.ID, renamed)
			},
			Call: func(ctx context.Context) (entry, error) {
				<-release
				return entry{}, errors.New("update rejected")
			},
			Rollback: func(items []entry) []entry {
				if !had {
					return items
				}
				return Replace(items, target.ID, prior)
			},
		})
	}()
	waitFor(t, func() bool {
		it, okFind := Find(c.State().Items, target.ID)
		return okFind && it.Name == "B!"
	})

	// A concurrent remove settles first and deletes the target entirely.
	_, ok := Mutate(context.Background(), c, Plan[entry, struct{}]{
		Apply: func(items []entry) []entry { return Remove(items, target.ID) },
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		},
	})
	if !ok {
		t.Fatal("remove failed")
	}

	// The update's rollback finds no target; it must not panic and must
	// leave the collection unchanged for that id.
	close(release)
	<-done

	if got := names(c.State().Items); !sameNames(got, "A") {
		t.Errorf("expected [A], got %v", got)
	}
}

func TestMutate_NilReconcileAndRollbackAreIdentity(t *testing.T) {
	c := readyController(t, []entry{{ID: CanonicalID("a"), Name: "A", Rank: 1}})

	_, ok := Mutate(context.Background(), c, Plan[entry, struct{}]{
		Apply: func(items []entry) []entry { return items },
		Call:  func(ctx context.Context) (struct{}, error) { return struct{}{}, nil },
	})
	if !ok {
		t.Fatal("mutation failed")
	}
	if got := names(c.State().Items); !sameNames(got, "A") {
		t.Errorf("expected [A], got %v", got)
	}

	_, ok = Mutate(context.Background(), c, Plan[entry, struct{}]{
		Apply: func(items []entry) []entry { return items },
		Call: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, errors.New("boom")
		},
	})
	if ok {
		t.Error("expected failure")
	}
	if got := names(c.State().Items); !sameNames(got, "A") {
		t.Errorf("expected [A], got %v", got)
	}
}
