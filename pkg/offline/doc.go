// Package offline implements cached, optimistically-mutated views of
// server-owned collections: each Controller persists its collection locally,
// serves the cached copy instantly while revalidating in the background, and
// applies writes through mutation plans that reconcile or roll back against
// the live collection at settlement time.
package offline
