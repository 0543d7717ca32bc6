package t2048

import "testing"

func TestRegistryCreateAssignsIncreasingIDs(t *testing.T) {
	r := NewRegistry()

	a := r.Create(2, 0)
	b := r.Create(4, 5)

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}
	if a.MergedFrom != nil {
		t.Error("new tile should not carry merge info")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryRemoveNeverReusesIDs(t *testing.T) {
	r := NewRegistry()
	r.Create(2, 0)
	second := r.Create(2, 1)

	r.Remove(second.ID)
	r.Remove(99) // absent, no-op

	if _, ok := r.Get(second.ID); ok {
		t.Error("removed tile should not be live")
	}

	third := r.Create(2, 2)
	if third.ID != 3 {
		t.Errorf("id after removal = %d, want 3", third.ID)
	}
}

func TestRegistryReset(t *testing.T) {
	r := NewRegistry()
	r.Create(2, 0)
	r.Create(2, 1)

	r.Reset()

	if r.Len() != 0 {
		t.Errorf("Len() after reset = %d, want 0", r.Len())
	}
	if got := r.Create(2, 0).ID; got != 1 {
		t.Errorf("first id after reset = %d, want 1", got)
	}
}

func TestRegistryRestoreContinuesAboveMaxID(t *testing.T) {
	r := NewRegistry()
	r.Restore([]Tile{
		{ID: 7, Value: 2, Pos: 3},
		{ID: 4, Value: 8, Pos: 0},
	})

	if r.NextID() != 8 {
		t.Errorf("NextID() = %d, want 8", r.NextID())
	}

	tiles := r.Tiles()
	if len(tiles) != 2 || tiles[0].ID != 4 || tiles[1].ID != 7 {
		t.Errorf("Tiles() = %v, want ids ordered by position [4 7]", tiles)
	}

	// Restoring older tiles never rewinds allocation.
	r.Restore([]Tile{{ID: 1, Value: 2, Pos: 0}})
	if r.NextID() != 8 {
		t.Errorf("NextID() after older restore = %d, want 8", r.NextID())
	}
}
