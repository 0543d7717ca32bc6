// lab2048 is a sliding-tile number puzzle for the terminal.
//
// Usage:
//
//	lab2048 play              - Play interactively
//	lab2048 new               - Start and save a new game
//	lab2048 move <direction>  - Apply one move to the saved game
//	lab2048 show              - Print the saved game
//	lab2048 scores            - Show the leaderboard
//	lab2048 variants          - List available boards
//
// Global flags:
//
//	--variant <id>     - Board to use (default from config: 2048)
//	--seed <value>     - Set RNG seed for reproducible spawns
//	--db <path>        - Set database path (default: ~/.lab2048/lab2048.db)
//	--config <path>    - Custom config YAML
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lab2048/internal/config"

	// Import variants to register them
	_ "github.com/vovakirdan/lab2048/internal/games/t2048"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagVariant  string
	flagLogLevel string

	// Resolved in PersistentPreRunE
	appCfg config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lab2048",
	Short: "lab2048 - slide and merge numbered tiles in your terminal",
	Long: `lab2048 is a terminal take on the sliding-tile number puzzle.
Slide the board in one of four directions; equal tiles that meet merge
into their sum. The game ends when no move changes the board.

Available commands:
  play      - Play interactively
  new       - Start and save a new game
  move      - Apply one move to the saved game
  show      - Print the saved game
  scores    - View the leaderboard
  variants  - Show all available boards

Examples:
  lab2048 play
  lab2048 play --variant 2048_5x5
  lab2048 new --seed 42
  lab2048 move left
  lab2048 scores`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to game database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Board variant ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(variantsCmd)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagVariant != "" {
		cfg.Game.Variant = flagVariant
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	l, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}

	appCfg = cfg
	logger = l
	return nil
}
