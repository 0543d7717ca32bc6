package t2048

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a persisted game fails validation.
var ErrInvalidRecord = errors.New("t2048: invalid game record")

// TileRecord is the persisted form of a tile.
type TileRecord struct {
	ID    int `json:"id"`
	Value int `json:"value"`
	Pos   int `json:"pos"`
}

// Record is the persisted form of a session.
// A nil Tiles slice marks an older record that only stored the grid.
type Record struct {
	Grid  []int        `json:"grid"`
	Score int          `json:"score"`
	Over  bool         `json:"over"`
	Tiles []TileRecord `json:"tiles"`
}

// Record returns the persistent form of the current session.
func (g *Game) Record() Record {
	grid := make([]int, len(g.grid))
	copy(grid, g.grid)

	tiles := g.registry.Tiles()
	recs := make([]TileRecord, len(tiles))
	for i, t := range tiles {
		recs[i] = TileRecord{ID: t.ID, Value: t.Value, Pos: t.Pos}
	}

	return Record{
		Grid:  grid,
		Score: g.score,
		Over:  g.over,
		Tiles: recs,
	}
}

// Validate checks a record against a size x size board.
func (r Record) Validate(size int) error {
	cells := size * size
	if len(r.Grid) != cells {
		return fmt.Errorf("%w: grid has %d cells, want %d", ErrInvalidRecord, len(r.Grid), cells)
	}
	if r.Score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidRecord, r.Score)
	}
	for i, v := range r.Grid {
		if v != 0 && !isPowerOfTwo(v) {
			return fmt.Errorf("%w: cell %d holds %d", ErrInvalidRecord, i, v)
		}
	}

	if r.Tiles == nil {
		return nil
	}

	seenID := make(map[int]bool, len(r.Tiles))
	seenPos := make(map[int]bool, len(r.Tiles))
	for _, t := range r.Tiles {
		switch {
		case t.ID <= 0:
			return fmt.Errorf("%w: tile id %d", ErrInvalidRecord, t.ID)
		case seenID[t.ID]:
			return fmt.Errorf("%w: duplicate tile id %d", ErrInvalidRecord, t.ID)
		case t.Pos < 0 || t.Pos >= cells:
			return fmt.Errorf("%w: tile %d at position %d", ErrInvalidRecord, t.ID, t.Pos)
		case seenPos[t.Pos]:
			return fmt.Errorf("%w: two tiles at position %d", ErrInvalidRecord, t.Pos)
		case !isPowerOfTwo(t.Value):
			return fmt.Errorf("%w: tile %d has value %d", ErrInvalidRecord, t.ID, t.Value)
		case r.Grid[t.Pos] != t.Value:
			return fmt.Errorf("%w: tile %d disagrees with grid at %d", ErrInvalidRecord, t.ID, t.Pos)
		}
		seenID[t.ID] = true
		seenPos[t.Pos] = true
	}

	for i, v := range r.Grid {
		if v != 0 && !seenPos[i] {
			return fmt.Errorf("%w: cell %d has no tile", ErrInvalidRecord, i)
		}
	}
	return nil
}

// LoadRecord replaces the session with a validated record.
// Tile ids are kept as stored; new ids continue above the highest one.
// On error the session is left untouched.
func (g *Game) LoadRecord(r Record) error {
	if err := r.Validate(g.size); err != nil {
		return err
	}

	g.registry.Reset()
	if r.Tiles != nil {
		tiles := make([]Tile, len(r.Tiles))
		for i, t := range r.Tiles {
			tiles[i] = Tile{ID: t.ID, Value: t.Value, Pos: t.Pos}
		}
		g.registry.Restore(tiles)
	} else {
		for pos, v := range r.Grid {
			if v != 0 {
				g.registry.Create(v, pos)
			}
		}
	}

	g.grid = make([]int, len(r.Grid))
	copy(g.grid, r.Grid)
	g.score = r.Score
	g.over = r.Over || !g.CanMove()
	g.moves = 0
	g.pending = nil
	g.events = nil
	return nil
}

// MarshalRecord encodes the session record as JSON.
func (g *Game) MarshalRecord() ([]byte, error) {
	return json.Marshal(g.Record())
}

// UnmarshalRecord decodes and loads a JSON session record.
func (g *Game) UnmarshalRecord(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return g.LoadRecord(r)
}
