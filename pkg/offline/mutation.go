package offline

import "context"

// Mutate runs one optimistic mutation plan against a controller's collection.
//
// The sequence:
//
//  1. If the state is not Ready the call is a silent no-op: mutating before
//     the first successful load would start from an undefined baseline.
//  2. The optimistic collection is computed and installed synchronously, so
//     the caller's UI reflects the action before any network traffic.
//  3. The remote call runs with no lock held. Several mutations may be in
//     flight against the same controller, and they settle in whatever order
//     the network resolves them, not submission order.
//  4. Settlement always recomputes against the collection as it is *now*,
//     never the snapshot from step 2: a success reconciles the server result
//     into the live collection, a failure rolls back only this plan's
//     optimistic change, preserving whatever other mutations did meanwhile.
//
// Failures are reported through the controller's Sink and converted to
// ok=false; the error never crosses this boundary. A Mutate that was a
// precondition no-op also returns ok=false, without notifying.
func Mutate[T Item, R any](ctx context.Context, c *Controller[T], plan Plan[T, R]) (R, bool) {
	var zero R

	c.mu.Lock()
	if !c.state.Ready() {
		c.mu.Unlock()
		return zero, false
	}
	optimistic := plan.Apply(cloneItems(c.state.Items))
	c.replace(optimistic)
	c.mu.Unlock()

	result, err := plan.Call(ctx)

	if err != nil {
		c.mu.Lock()
		live := cloneItems(c.state.Items)
		if plan.Rollback != nil {
			live = plan.Rollback(live)
		}
		c.replace(live)
		c.mu.Unlock()

		c.notify.Failure(plan.Failure, err)
		return zero, false
	}

	c.mu.Lock()
	live := cloneItems(c.state.Items)
	if plan.Reconcile != nil {
		live = plan.Reconcile(live, result)
	}
	snapshot := c.replace(live)
	c.mu.Unlock()

	c.persist(snapshot)
	c.notify.Success(plan.Success)
	return result, true
}
