package offline

import "context"

// Plan describes one optimistic mutation against a collection of T with a
// remote result of type R. A plan is built fresh per call and fully consumed
// by a single Mutate invocation.
//
// Apply, Reconcile and Rollback all receive the collection as it is at the
// moment they run, never a snapshot captured earlier: other mutations may have
// settled between the optimistic apply and this plan's settlement, and their
// effects must be preserved. Each receives a private copy and may modify it in
// place or return a new slice.
type Plan[T Item, R any] struct {
	// Apply computes the optimistic collection. It runs synchronously under
	// the controller's state lock, so it is also the place to capture any
	// pre-mutation item needed by Rollback.
	Apply func(items []T) []T

	// Call performs the remote operation. The only suspension point.
	Call func(ctx context.Context) (R, error)

	// Reconcile folds the server result into the live collection after a
	// successful call. Nil means the optimistic shape is already final.
	Reconcile func(items []T, result R) []T

	// Rollback undoes this plan's optimistic change against the live
	// collection after a failed call. Nil means nothing to undo.
	Rollback func(items []T) []T

	// Success and Failure are the notification messages for settlement.
	Success string
	Failure string
}
