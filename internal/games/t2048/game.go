package t2048

import (
	"math/rand"

	"github.com/vovakirdan/lab2048/internal/core"
	"github.com/vovakirdan/lab2048/internal/registry"
)

// Game is the session controller for one puzzle instance.
// It is not safe for concurrent use; callers serialize access.
type Game struct {
	variant Variant
	size    int
	rng     *rand.Rand

	spawn4Prob float64
	initialMin int
	initialMax int

	registry *Registry
	grid     []int
	score    int
	over     bool
	moves    int

	pending *Snapshot   // Single level of undo
	events  []TileEvent // Events from the last transition
}

// New creates a classic 4x4 game.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewSized creates a game on a size x size board.
func NewSized(size int) *Game {
	for _, v := range Variants {
		if v.Size == size {
			return NewVariant(v)
		}
	}
	return NewVariant(Variant{ID: "2048_custom", Name: "Custom", Size: size, Title: "2048 (custom)"})
}

// NewVariant creates a game for the given board variant.
// The board starts empty until Reset or NewGame is called.
func NewVariant(v Variant) *Game {
	if v.Size < 2 {
		v.Size = BoardSize
	}
	def := core.DefaultConfig()
	return &Game{
		variant:    v,
		size:       v.Size,
		rng:        rand.New(rand.NewSource(1)),
		spawn4Prob: def.Spawn4Prob,
		initialMin: def.InitialMin,
		initialMax: def.InitialMax,
		registry:   NewRegistry(),
		grid:       make([]int, v.Size*v.Size),
	}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Size returns the board dimension.
func (g *Game) Size() int {
	return g.size
}

// Reset applies the runtime config, reseeds the RNG and starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	cfg = cfg.Normalize()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.spawn4Prob = cfg.Spawn4Prob
	g.initialMin = cfg.InitialMin
	g.initialMax = cfg.InitialMax
	g.NewGame()
}

// SetRand replaces the random source used for spawns.
func (g *Game) SetRand(rng *rand.Rand) {
	g.rng = rng
}

// NewGame clears the board and places between initialMin and initialMax tiles.
func (g *Game) NewGame() {
	g.registry.Reset()
	g.grid = make([]int, g.size*g.size)
	g.score = 0
	g.over = false
	g.moves = 0
	g.pending = nil
	g.events = nil

	count := g.initialMin
	if span := g.initialMax - g.initialMin; span > 0 {
		count += g.rng.Intn(span + 1)
	}
	for range count {
		g.spawnTile()
	}
}

// spawnTile places a 2 or a 4 in a uniformly chosen empty cell.
// Returns false if the board is full.
func (g *Game) spawnTile() bool {
	emptyCells := EmptyCells(g.grid)
	if len(emptyCells) == 0 {
		return false
	}

	// Pick random empty cell
	cell := emptyCells[g.rng.Intn(len(emptyCells))]

	// Determine value (90% 2, 10% 4 by default)
	value := 2
	if g.rng.Float64() < g.spawn4Prob {
		value = 4
	}

	t := g.registry.Create(value, cell)
	g.grid[cell] = value
	g.events = append(g.events, TileEvent{
		Kind:  EventSpawned,
		ID:    t.ID,
		From:  -1,
		To:    cell,
		Value: value,
	})
	return true
}

// Move resolves a move in the given direction.
// Returns false, leaving the session untouched, if the game is over or
// nothing would slide or merge.
func (g *Game) Move(dir Direction) bool {
	if g.over {
		return false
	}

	snap := g.takeSnapshot()
	res := Resolve(snap.Tiles, dir, g.size)
	if !res.Moved {
		return false
	}

	before := make(map[int]Tile, len(snap.Tiles))
	for _, t := range snap.Tiles {
		before[t.ID] = t
	}

	g.pending = snap
	g.events = moveEvents(before, res)

	for _, m := range res.Merges {
		g.registry.Remove(m.Consumed)
	}
	for _, t := range res.Tiles {
		g.registry.set(t)
	}
	g.grid = GridFromTiles(res.Tiles, g.size)
	g.score += res.ScoreGain
	g.moves++

	g.spawnTile()

	if !g.CanMove() {
		g.over = true
	}

	return true
}

// Undo restores the session to how it was before the last move.
// Only one level is kept; returns false if there is nothing to undo or the
// game is over.
func (g *Game) Undo() bool {
	if g.pending == nil || g.over {
		return false
	}
	g.restoreSnapshot(g.pending)
	g.pending = nil
	g.events = nil
	if g.moves > 0 {
		g.moves--
	}
	return true
}

// CanMove returns true if an empty cell or an adjacent equal pair exists.
func (g *Game) CanMove() bool {
	return CanMove(g.grid, g.size)
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.over
}

// Events returns the tile events of the last successful move or new game.
func (g *Game) Events() []TileEvent {
	out := make([]TileEvent, len(g.events))
	copy(out, g.events)
	return out
}

// Apply executes a platform action.
func (g *Game) Apply(a core.Action) bool {
	switch a {
	case core.ActionUp:
		return g.Move(DirUp)
	case core.ActionDown:
		return g.Move(DirDown)
	case core.ActionLeft:
		return g.Move(DirLeft)
	case core.ActionRight:
		return g.Move(DirRight)
	case core.ActionUndo:
		return g.Undo()
	case core.ActionNewGame:
		g.NewGame()
		return true
	}
	return false
}

// Action returns the platform action for a direction.
func (d Direction) Action() core.Action {
	switch d {
	case DirUp:
		return core.ActionUp
	case DirDown:
		return core.ActionDown
	case DirLeft:
		return core.ActionLeft
	case DirRight:
		return core.ActionRight
	}
	return core.ActionNone
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	d := g.Details()
	return core.GameState{
		Size:         d.Size,
		Grid:         d.Grid,
		Score:        d.Score,
		Over:         d.Over,
		CanUndo:      d.CanUndo,
		MaxTile:      d.MaxTile,
		Moves:        d.Moves,
		MergedCells:  positionsOf(g.events, EventMerged),
		SpawnedCells: positionsOf(g.events, EventSpawned),
	}
}
