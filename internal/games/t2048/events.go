package t2048

// EventKind classifies a tile event.
type EventKind string

const (
	EventMoved   EventKind = "moved"   // Tile slid to a new cell
	EventMerged  EventKind = "merged"  // Tile absorbed another and doubled
	EventRemoved EventKind = "removed" // Tile was absorbed and retired
	EventSpawned EventKind = "spawned" // New random tile
)

// TileEvent describes what happened to one tile during the last transition.
// Presentation layers key their own handles by ID.
type TileEvent struct {
	Kind  EventKind
	ID    int
	From  int // Position before the move (-1 for spawns)
	To    int // Final position; for removed tiles, where it was absorbed
	Value int // Value after the transition

	MergedInto int // Survivor id for removed tiles
}

// moveEvents derives tile events from a resolved move.
// before maps ids to the tiles as they were prior to the move.
func moveEvents(before map[int]Tile, res MoveResult) []TileEvent {
	var events []TileEvent
	for _, t := range res.Tiles {
		old := before[t.ID]
		switch {
		case t.MergedFrom != nil:
			events = append(events, TileEvent{
				Kind:  EventMerged,
				ID:    t.ID,
				From:  old.Pos,
				To:    t.Pos,
				Value: t.Value,
			})
		case old.Pos != t.Pos:
			events = append(events, TileEvent{
				Kind:  EventMoved,
				ID:    t.ID,
				From:  old.Pos,
				To:    t.Pos,
				Value: t.Value,
			})
		}
	}
	for _, m := range res.Merges {
		consumed := before[m.Consumed]
		events = append(events, TileEvent{
			Kind:       EventRemoved,
			ID:         m.Consumed,
			From:       consumed.Pos,
			To:         m.Pos,
			Value:      consumed.Value,
			MergedInto: m.Kept,
		})
	}
	return events
}

// positionsOf returns the destination cells of events of the given kind.
func positionsOf(events []TileEvent, kind EventKind) []int {
	var cells []int
	for _, e := range events {
		if e.Kind == kind {
			cells = append(cells, e.To)
		}
	}
	return cells
}
