package t2048

// GameStatus represents the current game status.
type GameStatus string

const (
	StatusPlaying  GameStatus = "playing"
	StatusGameOver GameStatus = "game_over"
)

// Snapshot is a deep copy of the session taken right before a move.
// It backs the single level of undo.
type Snapshot struct {
	Grid  []int
	Score int
	Over  bool
	Tiles []Tile
}

// State is a read-only view of the session for rendering.
type State struct {
	Size    int
	Grid    []int
	Score   int
	Over    bool
	Status  GameStatus
	Tiles   []Tile
	CanUndo bool
	MaxTile int
	Moves   int
}

// takeSnapshot copies the current session.
func (g *Game) takeSnapshot() *Snapshot {
	grid := make([]int, len(g.grid))
	copy(grid, g.grid)
	return &Snapshot{
		Grid:  grid,
		Score: g.score,
		Over:  g.over,
		Tiles: g.registry.Tiles(),
	}
}

// restoreSnapshot puts the session back to the snapshot's contents.
// Id allocation is not rewound, so ids handed out after the snapshot stay retired.
func (g *Game) restoreSnapshot(s *Snapshot) {
	g.grid = make([]int, len(s.Grid))
	copy(g.grid, s.Grid)
	g.score = s.Score
	g.over = s.Over
	g.registry.Restore(s.Tiles)
}

// Details returns the full typed view of the session.
func (g *Game) Details() State {
	grid := make([]int, len(g.grid))
	copy(grid, g.grid)

	status := StatusPlaying
	if g.over {
		status = StatusGameOver
	}

	return State{
		Size:    g.size,
		Grid:    grid,
		Score:   g.score,
		Over:    g.over,
		Status:  status,
		Tiles:   g.registry.Tiles(),
		CanUndo: g.pending != nil && !g.over,
		MaxTile: MaxTile(g.grid),
		Moves:   g.moves,
	}
}
