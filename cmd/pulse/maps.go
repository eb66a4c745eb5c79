package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-pulse/internal/config"
	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/maps"
)

var flagRaw bool

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Inspect labyrinth levels",
	Long: `List and print the labyrinth levels available to the game: the
embedded set plus any *.txt files in --maps-dir.`,
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List labyrinth levels",
	Args:  cobra.NoArgs,
	Run:   runMapsList,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a labyrinth level",
	Long: `Print a level as it will be played on the configured board, or as
authored with --raw.

Legend: # wall, . pellet, S spawn, F food hint`,
	Args: cobra.ExactArgs(1),
	Run:  runMapsShow,
}

func init() {
	mapsShowCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print the level at its authored size")
	mapsCmd.AddCommand(mapsListCmd)
	mapsCmd.AddCommand(mapsShowCmd)
}

func newRegistry() (*maps.Registry, config.SnakeConfig) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	logger, err := newLogger(os.Stderr, "maps")
	if err != nil {
		fatal("%v", err)
	}

	reg := maps.NewRegistry(cfg.Playfield(),
		maps.WithDir(cfg.Labyrinth.MapsDir),
		maps.WithDefault(cfg.Labyrinth.DefaultMap),
		maps.WithLogger(logger),
		maps.WithSeed(runSeed()),
	)
	if err := reg.Load(); err != nil {
		// Partial failures still leave the readable levels
		logger.Warn("some levels could not be loaded", "err", err)
	}
	return reg, cfg
}

func runMapsList(_ *cobra.Command, _ []string) {
	reg, cfg := newRegistry()
	board := cfg.Playfield()

	ids := reg.IDs()
	if len(ids) == 0 {
		fmt.Println("No labyrinth levels available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Printf("Labyrinth levels for a %dx%d board:\n\n", board.W, board.H)
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Fits", "Title")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "----", "-----")
	for _, id := range ids {
		l, _ := reg.Get(id)
		fits := "yes"
		if l.W != board.W || l.H != board.H {
			fits = "no"
		}
		if id == cfg.Labyrinth.DefaultMap {
			id += "*"
		}
		fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, id, fmt.Sprintf("%dx%d", l.W, l.H), fits, l.Title)
	}

	fmt.Println()
	fmt.Println("* default level. Run 'pulse play --map <id>' to play one.")
}

func runMapsShow(_ *cobra.Command, args []string) {
	reg, cfg := newRegistry()
	id := args[0]

	if flagRaw {
		l, ok := reg.Get(id)
		if !ok {
			fatal("unknown level %q (run 'pulse maps list')", id)
		}
		fmt.Printf("%s (%dx%d) %s\n", l.ID, l.W, l.H, l.Title)
		fmt.Println(drawLevel(l.W, l.H, l.Walls(), l.Spawn, l.Foods, l.Pellet))
		return
	}

	f, err := reg.Activate(id)
	if err != nil {
		fatal("%v (run 'pulse maps list')", err)
	}
	board := cfg.Playfield()
	fmt.Printf("%s fitted to %dx%d (authored %dx%d) %s\n", f.ID, board.W, board.H, f.SourceW, f.SourceH, f.Title)
	fmt.Println(drawLevel(board.W, board.H, f.Walls, f.Spawn, f.Foods, f.Pellet))
}

// drawLevel prints a level in its file notation.
func drawLevel(w, h int, walls *core.Grid, spawn core.Point, foods, pellets []core.Point) string {
	rows := make([][]byte, h)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(" ", w))
		for x := range w {
			if walls.At(core.Point{X: x, Y: y}) {
				rows[y][x] = '#'
			}
		}
	}
	mark := func(p core.Point, c byte) {
		if p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h {
			rows[p.Y][p.X] = c
		}
	}
	for _, p := range pellets {
		mark(p, '.')
	}
	for _, p := range foods {
		mark(p, 'F')
	}
	mark(spawn, 'S')

	lines := make([]string, h)
	for y, r := range rows {
		lines[y] = strings.TrimRight(string(r), " ")
	}
	return strings.Join(lines, "\n")
}
