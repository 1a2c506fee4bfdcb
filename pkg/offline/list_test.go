package offline

import "testing"

func TestFind(t *testing.T) {
	items := []entry{
		{ID: CanonicalID("a"), Name: "A"},
		{ID: CanonicalID("b"), Name: "B"},
	}

	got, ok := Find(items, CanonicalID("b"))
	if !ok || got.Name != "B" {
		t.Errorf("expected B, got %v (ok=%v)", got, ok)
	}

	if _, ok := Find(items, CanonicalID("missing")); ok {
		t.Error("found item for missing id")
	}
}

func TestReplace(t *testing.T) {
	syn := NewSyntheticID()
	items := []entry{
		{ID: CanonicalID("a"), Name: "A"},
		{ID: syn, Name: "draft"},
	}

	out := Replace(items, syn, entry{ID: CanonicalID("b"), Name: "B"})
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[1].Name != "B" || out[1].ID != CanonicalID("b") {
		t.Errorf("placeholder not replaced: %v", out[1])
	}
	if items[1].Name != "draft" {
		t.Error("Replace mutated its input")
	}
}

func TestReplace_MissingIDIsNoop(t *testing.T) {
	items := []entry{{ID: CanonicalID("a"), Name: "A"}}
	out := Replace(items, CanonicalID("gone"), entry{ID: CanonicalID("b")})
	if len(out) != 1 || out[0].Name != "A" {
		t.Errorf("expected unchanged collection, got %v", out)
	}
}

func TestRemove(t *testing.T) {
	items := []entry{
		{ID: CanonicalID("a"), Name: "A"},
		{ID: CanonicalID("b"), Name: "B"},
		{ID: CanonicalID("c"), Name: "C"},
	}

	out := Remove(items, CanonicalID("b"))
	if !sameNames(names(out), "A", "C") {
		t.Errorf("expected [A C], got %v", names(out))
	}
	if len(items) != 3 {
		t.Error("Remove mutated its input")
	}
}

func TestRemove_MissingIDIsNoop(t *testing.T) {
	items := []entry{{ID: CanonicalID("a"), Name: "A"}}
	out := Remove(items, CanonicalID("gone"))
	if !sameNames(names(out), "A") {
		t.Errorf("expected unchanged collection, got %v", names(out))
	}
}

func TestSortItems_StableAndNilLess(t *testing.T) {
	items := []entry{
		{ID: CanonicalID("b"), Name: "B", Rank: 2},
		{ID: CanonicalID("a"), Name: "A", Rank: 1},
		{ID: CanonicalID("b2"), Name: "B2", Rank: 2},
	}

	sortItems(items, byRank)
	if !sameNames(names(items), "A", "B", "B2") {
		t.Errorf("unexpected order %v", names(items))
	}

	shuffled := []entry{{Name: "y"}, {Name: "x"}}
	sortItems(shuffled, nil)
	if !sameNames(names(shuffled), "y", "x") {
		t.Error("nil less must preserve order")
	}
}
