// Package core provides fundamental types shared by puzzle variants and the
// platform layer. It contains no external dependencies (especially no Bubble
// Tea) to keep game logic pure and testable.
package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	Seed       int64   // RNG seed for deterministic spawns
	Spawn4Prob float64 // Probability that a spawned tile is a 4 instead of a 2
	InitialMin int     // Minimum number of tiles placed by a new game
	InitialMax int     // Maximum number of tiles placed by a new game
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Seed:       0, // 0 means use current time in platform layer
		Spawn4Prob: 0.10,
		InitialMin: 1,
		InitialMax: 3,
	}
}

// Normalize fills zero or out-of-range fields with defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	def := DefaultConfig()
	if c.Spawn4Prob < 0 || c.Spawn4Prob > 1 {
		c.Spawn4Prob = def.Spawn4Prob
	}
	if c.InitialMin <= 0 {
		c.InitialMin = def.InitialMin
	}
	if c.InitialMax < c.InitialMin {
		c.InitialMax = c.InitialMin
	}
	return c
}

// GameState represents the current state of a puzzle.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Size    int   // Board dimension (Size x Size)
	Grid    []int // Flattened cell values, 0 = empty
	Score   int   // Current score
	Over    bool  // Whether the game has ended
	CanUndo bool  // Whether a single-step undo is pending
	MaxTile int   // Highest tile on the board
	Moves   int   // Successful moves since the game started

	// Cells touched by the last move, for highlighting.
	MergedCells  []int
	SpawnedCells []int
}
