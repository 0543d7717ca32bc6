package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lab2048/internal/games/t2048"
	"github.com/vovakirdan/lab2048/internal/storage"
)

var flagLeaderName string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start and save a new game",
	Long: `Start a new game for the selected variant, replacing the saved one,
and print the board.

Examples:
  lab2048 new
  lab2048 new --seed 42 --variant 2048_3x3`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

var moveCmd = &cobra.Command{
	Use:   "move <up|down|left|right>",
	Short: "Apply one move to the saved game",
	Long: `Slide the saved board in one direction, save it and print it.
A move that changes nothing is reported and not saved.
When the move ends the game, --name records a leaderboard entry.

Examples:
  lab2048 move left
  lab2048 move u
  lab2048 move down --name Ada`,
	Args: cobra.ExactArgs(1),
	RunE: runMove,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved game",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	moveCmd.Flags().StringVar(&flagLeaderName, "name", "", "Leaderboard name used if this move ends the game")
}

func runNew(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	game, err := newGame()
	if err != nil {
		return err
	}
	best, err := saveGame(store, game)
	if err != nil {
		return err
	}
	logger.Debug("new game saved", "variant", game.ID())

	printBoard(cmd.OutOrStdout(), game, best)
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	dir, err := t2048.ParseDirection(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	game, err := loadGame(store)
	if errors.Is(err, storage.ErrNoSavedGame) {
		return errors.New("no saved game, run 'lab2048 new' first")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	wasOver := game.State().Over
	if !game.Apply(dir.Action()) {
		best, _ := store.BestScore(game.ID())
		if wasOver {
			fmt.Fprintln(out, "The game is over, run 'lab2048 new' to start again.")
		} else {
			fmt.Fprintf(out, "Nothing moves %s.\n", dir)
		}
		printBoard(out, game, best)
		return nil
	}

	best, err := saveGame(store, game)
	if err != nil {
		return err
	}
	logger.Debug("move applied", "variant", game.ID(), "direction", dir.String(), "score", game.State().Score)

	printBoard(out, game, best)

	st := game.State()
	if st.Over && st.Score > 0 && cmd.Flags().Changed("name") {
		rank, err := store.SaveLeader(game.ID(), flagLeaderName, st.Score,
			appCfg.Leaderboard.Size, appCfg.Leaderboard.DefaultName)
		if err != nil {
			return err
		}
		if rank > 0 {
			fmt.Fprintf(out, "Leaderboard rank #%d\n", rank)
		}
	}
	return nil
}

func runShow(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(store)

	game, err := loadGame(store)
	if errors.Is(err, storage.ErrNoSavedGame) {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved game. Run 'lab2048 new' or 'lab2048 play' to start one.")
		return nil
	}
	if err != nil {
		return err
	}

	best, err := store.BestScore(game.ID())
	if err != nil {
		return err
	}
	printBoard(cmd.OutOrStdout(), game, best)
	return nil
}
