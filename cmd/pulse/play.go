package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-pulse/internal/config"
	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
	"github.com/vovakirdan/arcade-pulse/internal/platform/tui"
	"github.com/vovakirdan/arcade-pulse/internal/skins"
	"github.com/vovakirdan/arcade-pulse/internal/storage"
)

var (
	flagMode    string
	flagMap     string
	flagFit     bool
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Arrows/WASD  - Steer
  Enter/Space  - Start, pause and resume
  M, [ and ]   - Switch mode and labyrinth level (start screen or paused)
  E, Tab       - Use and select power-ups
  + and -      - Change speed
  C            - Next unlocked skin
  T            - High scores
  ?            - All keys
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slowest start, speeds up every 8 apples
  normal - Defaults from the config
  hard   - Faster start, speeds up every 3 apples, fewer bonuses
  fixed  - Speed never changes during a run

Examples:
  pulse play
  pulse play --mode labyrinth
  pulse play --map lab-03
  pulse play --difficulty hard --seed 42
  pulse play --fit`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Starting mode: classic or labyrinth")
	playCmd.Flags().StringVar(&flagMap, "map", "", "Labyrinth level id (implies --mode labyrinth)")
	playCmd.Flags().BoolVar(&flagFit, "fit", false, "Shrink the board to fit the terminal")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}

func parseMode(s string) (snake.Mode, error) {
	switch m := snake.Mode(s); m {
	case snake.ModeClassic, snake.ModeLabyrinth:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want classic or labyrinth)", s)
}

// fitBoard shrinks the board so the whole screen fits a w x h terminal.
// The help line below the screen needs one more row.
func fitBoard(cfg *config.SnakeConfig, w, h int) bool {
	sw, sh := tui.ScreenSize(cfg.Playfield())
	if sw <= w && sh+1 <= h {
		return false
	}
	extraW := sw - cfg.Board.Cols*2
	extraH := sh + 1 - cfg.Board.Rows
	cfg.Board.Cols = max(4, min(cfg.Board.Cols, (w-extraW)/2))
	cfg.Board.Rows = max(4, min(cfg.Board.Rows, h-extraH))
	return true
}

func playLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(f, "pulse")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	mode, err := parseMode(flagMode)
	if err != nil {
		fatal("%v", err)
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		sw, sh := tui.ScreenSize(cfg.Playfield())
		switch {
		case flagFit && fitBoard(&cfg, w, h):
			// Layouts authored for the default size no longer match
			cfg.Labyrinth.StrictSize = false
		case sw > w || sh+1 > h:
			fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the board needs %dx%d (try --fit)\n", w, h, sw, sh+1)
		}
	}

	logger, closeLog, err := playLogger()
	if err != nil {
		fatal("cannot open log file: %v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		store = nil
	}

	opts := []snake.Option{
		snake.WithSeed(runSeed()),
		snake.WithLogger(logger),
		snake.WithMode(mode),
	}
	var skinStore skins.Store
	if store != nil {
		prefs := store.Prefs(storage.DefaultNamespace)
		opts = append(opts, snake.WithPrefs(prefs))
		skinStore = prefs
	}
	game := snake.New(cfg, opts...)

	if flagMap != "" {
		if err := game.SelectMap(flagMap); err != nil {
			if store != nil {
				store.Close()
			}
			fatal("%v (run 'pulse maps list')", err)
		}
	}

	runErr := tui.Run(tui.Session{
		Game:   game,
		Skins:  skins.NewManager(skins.DefaultTable(), skinStore, logger),
		Store:  store,
		Player: localPlayer(),
		Logger: logger,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
