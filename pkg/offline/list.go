package offline

import "sort"

// Find returns the item with the given id, if present.
func Find[T Item](items []T, id ID) (T, bool) {
	for _, it := range items {
		if it.ItemID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Replace swaps the item with the given id for repl. If no item matches the
// operation was superseded by another mutation; the list is returned unchanged.
func Replace[T Item](items []T, id ID, repl T) []T {
	for i, it := range items {
		if it.ItemID() == id {
			out := cloneItems(items)
			out[i] = repl
			return out
		}
	}
	return items
}

// Remove deletes the item with the given id. Missing ids are a no-op.
func Remove[T Item](items []T, id ID) []T {
	for i, it := range items {
		if it.ItemID() == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}

// sortItems re-applies the collection's deterministic order. Stable, so items
// equal under less keep their relative order.
func sortItems[T Item](items []T, less func(a, b T) bool) {
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
