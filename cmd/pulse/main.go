// pulse is a terminal snake game with labyrinth levels, a streak multiplier,
// persistent progression and power-ups.
//
// Usage:
//
//	pulse play               - Play in the terminal
//	pulse maps list          - List labyrinth levels
//	pulse maps show <id>     - Print a level fitted to the board
//	pulse scores [mode]      - Show high scores
//	pulse progress           - Show or reset level, XP and skins
//	pulse serve              - Host games over SSH
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Database path (default: ~/.pulse/pulse.db)
//	--config <path>       - Custom snake.yaml
//	--maps-dir <dir>      - Extra labyrinth levels
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-pulse/internal/config"
	"github.com/vovakirdan/arcade-pulse/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagMapsDir    string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Pulse - snake with labyrinths, streaks and power-ups",
	Long: `Pulse is a terminal snake game. Eat apples quickly to build the
streak multiplier, level up for a faster snake, collect power-ups and
unlock new skins.

Available commands:
  play      - Play in this terminal
  maps      - Inspect labyrinth levels
  scores    - View high scores
  progress  - Show or reset saved progression
  serve     - Host games over SSH

Examples:
  pulse play
  pulse play --mode labyrinth --map lab-02
  pulse maps list
  pulse scores classic
  pulse serve --ssh :2222 --spectate :8080`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pulse/pulse.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom snake config YAML")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps-dir", "", "Directory with extra labyrinth levels")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the snake config from the global flags.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplySnakePreset(&cfg, preset)

	if flagMapsDir != "" {
		cfg.Labyrinth.MapsDir = flagMapsDir
	}
	return cfg, cfg.Validate()
}

// newLogger creates a logger at the --log-level threshold.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// runSeed returns --seed, or a time based seed when it is zero.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// localPlayer names the player of a terminal session.
func localPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.DefaultNamespace
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
