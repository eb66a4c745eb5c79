package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
	"github.com/vovakirdan/arcade-pulse/internal/skins"
	"github.com/vovakirdan/arcade-pulse/internal/storage"
)

var (
	flagPlayer string
	flagReset  bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progression",
	Long: `Show the saved level, XP, high score and skins of a player.

Local games use the "local" profile; SSH players are stored under their
user name.

Examples:
  pulse progress
  pulse progress --player alice
  pulse progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().StringVar(&flagPlayer, "player", storage.DefaultNamespace, "Profile to inspect")
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset level, XP and unlocked skins")
}

func runProgress(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	logger, err := newLogger(os.Stderr, "progress")
	if err != nil {
		fatal("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening database: %v", err)
	}
	defer store.Close()

	prefs := store.Prefs(flagPlayer)
	game := snake.New(cfg, snake.WithPrefs(prefs), snake.WithLogger(logger))
	sk := skins.NewManager(skins.DefaultTable(), prefs, logger)

	if flagReset {
		game.ResetProgress()
		sk.Reset()
		fmt.Printf("Progress of %s reset.\n", prefs.Namespace())
	}

	snap := game.Latest()
	fmt.Printf("Profile:    %s\n", prefs.Namespace())
	fmt.Printf("Level:      %d\n", snap.Level)
	fmt.Printf("XP:         %d/%d\n", snap.XP, snap.XPNeeded)
	fmt.Printf("High score: %d\n", snap.HighScore)
	fmt.Printf("Skin:       %s\n", sk.Current().Label)

	labels := make([]string, 0, len(sk.Unlocked()))
	for _, id := range sk.Unlocked() {
		labels = append(labels, sk.Label(id))
	}
	fmt.Printf("Skins:      %s\n", strings.Join(labels, ", "))
}
