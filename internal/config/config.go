// Package config provides YAML-based configuration loading for lab2048.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/lab2048/internal/core"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config contains all configuration for the application.
type Config struct {
	Game        GameConfig        `yaml:"game"`
	Storage     StorageConfig     `yaml:"storage"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Log         LogConfig         `yaml:"log"`
}

// GameConfig defines puzzle parameters.
type GameConfig struct {
	Variant    string  `yaml:"variant"`     // Registry ID of the default board
	Spawn4Prob float64 `yaml:"spawn4_prob"` // Chance of spawning a 4 (0.0-1.0)
	InitialMin int     `yaml:"initial_min"` // Fewest tiles on a new board
	InitialMax int     `yaml:"initial_max"` // Most tiles on a new board
}

// StorageConfig defines where games and scores are persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LeaderboardConfig defines the leaderboard shape.
type LeaderboardConfig struct {
	Size        int    `yaml:"size"`         // Entries kept per variant
	DefaultName string `yaml:"default_name"` // Used when a player leaves the name blank
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file used by the interactive UI
}

// Validate checks that all values are usable.
func (c Config) Validate() error {
	if c.Game.Variant == "" {
		return fmt.Errorf("%w: game.variant is empty", ErrInvalidConfig)
	}
	if c.Game.Spawn4Prob < 0 || c.Game.Spawn4Prob > 1 {
		return fmt.Errorf("%w: game.spawn4_prob %v not in [0,1]", ErrInvalidConfig, c.Game.Spawn4Prob)
	}
	if c.Game.InitialMin < 1 || c.Game.InitialMax < c.Game.InitialMin {
		return fmt.Errorf("%w: game.initial_min/initial_max %d/%d", ErrInvalidConfig, c.Game.InitialMin, c.Game.InitialMax)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.db_path is empty", ErrInvalidConfig)
	}
	if c.Leaderboard.Size < 1 {
		return fmt.Errorf("%w: leaderboard.size %d", ErrInvalidConfig, c.Leaderboard.Size)
	}
	return nil
}

// Runtime converts the game section into a core.RuntimeConfig.
func (c Config) Runtime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:       seed,
		Spawn4Prob: c.Game.Spawn4Prob,
		InitialMin: c.Game.InitialMin,
		InitialMax: c.Game.InitialMax,
	}
}
