package offline

import "time"

// Status is the lifecycle phase of a managed collection.
type Status int

const (
	// StatusUninitialized means Initialize has not run yet.
	StatusUninitialized Status = iota
	// StatusLoading means a blocking fetch is in flight and no usable
	// collection exists yet for this load cycle.
	StatusLoading
	// StatusReady means Items holds the current collection.
	StatusReady
	// StatusFailed means the last fetch failed; Items still holds the
	// last-known collection, if any ever loaded.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// State is a snapshot of a controller's collection. Items is always a copy;
// callers may modify it freely. Once any load has succeeded, Items stays
// populated through later failures so the UI never regresses to empty.
type State[T Item] struct {
	Status Status
	Items  []T
	AsOf   time.Time
	Err    error
}

// Ready reports whether the collection is usable for mutation.
func (s State[T]) Ready() bool {
	return s.Status == StatusReady
}

// snapshot returns a copy safe to hand across the controller boundary.
func (s State[T]) snapshot() State[T] {
	cp := s
	cp.Items = cloneItems(s.Items)
	return cp
}

func cloneItems[T Item](items []T) []T {
	if items == nil {
		return nil
	}
	cp := make([]T, len(items))
	copy(cp, items)
	return cp
}
