package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lab2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start the interactive board for the selected variant.
The saved game is resumed when there is one.

Controls:
  Arrows/WASD  - Slide the tiles
  U            - Undo the last move
  N            - New game
  L            - Leaderboard
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit (the game is saved)

Examples:
  lab2048 play
  lab2048 play --variant 2048_3x3
  lab2048 play --seed 42 --db ./lab.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal, use 'lab2048 move' for scripted play")
	}

	game, err := newGame()
	if err != nil {
		return err
	}

	// Log to file while the alternate screen is active
	tuiLogger := logger
	if f, err := openLogFile(appCfg.Log.File); err != nil {
		logger.Warn("could not open log file, logging disabled", "error", err)
		tuiLogger = nil
	} else {
		defer f.Close()
		if tuiLogger, err = newLogger(f, appCfg.Log.Level); err != nil {
			return err
		}
	}

	// Open storage
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer closeStore(store)
	}

	return tui.Run(game, store, tuiLogger, tui.Options{
		Runtime:         runtimeConfig(),
		LeaderboardSize: appCfg.Leaderboard.Size,
		DefaultName:     appCfg.Leaderboard.DefaultName,
	})
}

