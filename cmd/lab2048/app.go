package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/lab2048/internal/config"
	"github.com/vovakirdan/lab2048/internal/core"
	"github.com/vovakirdan/lab2048/internal/platform/tui"
	"github.com/vovakirdan/lab2048/internal/registry"
	"github.com/vovakirdan/lab2048/internal/storage"
)

// newLogger creates a structured logger writing to w at the given level.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "lab2048",
		Level:           lvl,
	})
	return l, nil
}

// openLogFile opens the configured log file for appending.
// The interactive UI owns the terminal, so it logs there instead of stderr.
func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// runtimeConfig returns the game config with the seed resolved.
func runtimeConfig() core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return appCfg.Runtime(seed)
}

// newGame creates the configured variant and starts a fresh board.
func newGame() (registry.Game, error) {
	variant := appCfg.Game.Variant
	if !registry.Exists(variant) {
		return nil, fmt.Errorf("unknown variant %q, run 'lab2048 variants' to see available boards", variant)
	}
	game, err := registry.Create(variant)
	if err != nil {
		return nil, err
	}
	game.Reset(runtimeConfig())
	return game, nil
}

// loadGame restores the saved game for the configured variant.
// Returns storage.ErrNoSavedGame when nothing usable is stored.
func loadGame(store *storage.Store) (registry.Game, error) {
	game, err := newGame()
	if err != nil {
		return nil, err
	}

	data, err := store.LoadGame(game.ID())
	if err != nil {
		if !errors.Is(err, storage.ErrNoSavedGame) {
			logger.Warn("could not load saved game", "variant", game.ID(), "error", err)
		}
		return nil, storage.ErrNoSavedGame
	}
	if err := game.UnmarshalRecord(data); err != nil {
		logger.Warn("discarding invalid saved game", "variant", game.ID(), "error", err)
		return nil, storage.ErrNoSavedGame
	}
	return game, nil
}

// saveGame stores the game and raises the best score.
func saveGame(store *storage.Store, game registry.Game) (best int, err error) {
	data, err := game.MarshalRecord()
	if err != nil {
		return 0, fmt.Errorf("cannot encode game: %w", err)
	}
	if err := store.SaveGame(game.ID(), data); err != nil {
		return 0, err
	}
	return store.UpdateBest(game.ID(), game.State().Score)
}

// openStore opens the configured database.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", appCfg.Storage.DBPath)
	return store, nil
}

// closeStore closes the database, logging failures.
func closeStore(store *storage.Store) {
	if err := store.Close(); err != nil {
		logger.Warn("could not close database", "error", err)
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printBoard writes the header and board, styled only on a terminal.
func printBoard(w io.Writer, game registry.Game, best int) {
	st := game.State()
	if isTerminal(w) {
		fmt.Fprintln(w, tui.RenderHeader(game.Title(), st, best))
		fmt.Fprintln(w, tui.RenderBoard(st))
		if status := tui.RenderStatus(st); status != "" {
			fmt.Fprintln(w, status)
		}
		return
	}

	if st.Score > best {
		best = st.Score
	}
	fmt.Fprintf(w, "%s  score %d  best %d  moves %d\n", game.Title(), st.Score, best, st.Moves)
	fmt.Fprintln(w, tui.PlainBoard(st))
	if st.Over {
		fmt.Fprintln(w, "Game over")
	}
}
