package t2048

import "sort"

// Tile is a single numbered tile with a stable identity.
type Tile struct {
	ID    int
	Value int
	Pos   int // Index into the flattened size*size grid

	// MergedFrom holds [keptID, consumedID] for a tile produced by a merge.
	// Only set on the result of the move that created it.
	MergedFrom *[2]int
}

// Registry owns the set of live tiles and allocates their identities.
// IDs are handed out in strictly increasing order and never reused.
type Registry struct {
	tiles  map[int]Tile
	nextID int
}

// NewRegistry creates an empty tile registry.
func NewRegistry() *Registry {
	return &Registry{
		tiles:  make(map[int]Tile),
		nextID: 1,
	}
}

// Create allocates a fresh id and registers a new live tile.
func (r *Registry) Create(value, pos int) Tile {
	t := Tile{ID: r.nextID, Value: value, Pos: pos}
	r.nextID++
	r.tiles[t.ID] = t
	return t
}

// Remove retires a tile. Unknown ids are ignored.
func (r *Registry) Remove(id int) {
	delete(r.tiles, id)
}

// Reset retires every tile and restarts id allocation.
func (r *Registry) Reset() {
	r.tiles = make(map[int]Tile)
	r.nextID = 1
}

// Restore replaces the live set with the given tiles, keeping their ids.
// Allocation continues above the highest id seen so far.
func (r *Registry) Restore(tiles []Tile) {
	r.tiles = make(map[int]Tile, len(tiles))
	for _, t := range tiles {
		t.MergedFrom = nil
		r.tiles[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
}

// Get returns the live tile with the given id.
func (r *Registry) Get(id int) (Tile, bool) {
	t, ok := r.tiles[id]
	return t, ok
}

// Len returns the number of live tiles.
func (r *Registry) Len() int {
	return len(r.tiles)
}

// NextID returns the id the next Create call will assign.
func (r *Registry) NextID() int {
	return r.nextID
}

// Tiles returns a copy of the live tiles ordered by grid position.
func (r *Registry) Tiles() []Tile {
	out := make([]Tile, 0, len(r.tiles))
	for _, t := range r.tiles {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pos < out[j].Pos
	})
	return out
}

// set stores t as a live tile, dropping any transient merge info.
func (r *Registry) set(t Tile) {
	t.MergedFrom = nil
	r.tiles[t.ID] = t
	if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
}
