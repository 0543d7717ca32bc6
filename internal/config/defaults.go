package config

import (
	_ "embed"
)

//go:embed defaults/lab2048.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			Variant:    "2048",
			Spawn4Prob: 0.10,
			InitialMin: 1,
			InitialMax: 3,
		},
		Storage: StorageConfig{
			DBPath: "~/.lab2048/lab2048.db",
		},
		Leaderboard: LeaderboardConfig{
			Size:        10,
			DefaultName: "Anonymous",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.lab2048/lab2048.log",
		},
	}
}
