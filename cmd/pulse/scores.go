package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
	"github.com/vovakirdan/arcade-pulse/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the best runs, optionally for one mode only.

Examples:
  pulse scores
  pulse scores labyrinth --limit 20
  pulse scores classic --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(snake.ModeClassic), string(snake.ModeLabyrinth)},
	Run:       runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs instead")
}

func runScores(_ *cobra.Command, args []string) {
	mode := ""
	title := "all modes"
	if len(args) == 1 {
		m, err := parseMode(args[0])
		if err != nil {
			fatal("%v", err)
		}
		mode, title = string(m), string(m)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(mode); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return
	}

	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pulse play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-8s  %-3s  %-10s  %s\n", "Rank", "Player", "Mode", "Score", "Lv", "Map", "Date")
	fmt.Printf("  %-4s  %-12s  %-9s  %-8s  %-3s  %-10s  %s\n", "----", "------", "----", "-----", "--", "---", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-9s  %-8d  %-3d  %-10s  %s\n",
			i+1, e.Player, e.Mode, e.Score, e.Level, e.MapID, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if mode == "" {
		return
	}
	stats, err := store.Stats(mode)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Best: %d  Runs: %d  Average: %.0f\n", stats.HighScore, stats.Runs, stats.AvgScore)
}
