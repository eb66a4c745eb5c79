package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-pulse/internal/platform/spectate"
	"github.com/vovakirdan/arcade-pulse/internal/platform/tui"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagSpectateAddr string
	flagServeMode    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host games over SSH",
	Long: `Start an SSH server where every connection plays its own game.

Progress, high score and skins are kept per SSH user name; the score
table is shared by everyone on the server.

With --spectate, live games are also streamed as JSON over websockets:
  GET /games           list of live games
  GET /ws?game=<id>    snapshots of one game (latest game without id)

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pulse/host_key

Examples:
  pulse serve                        # Listen on :23234
  pulse serve --ssh :2222            # Listen on port 2222
  pulse serve --spectate :8080       # Also stream games to spectators
  pulse serve --mode labyrinth

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagSpectateAddr, "spectate", "", "Websocket spectator address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", "classic", "Mode new sessions start in")
}

func runServe(_ *cobra.Command, _ []string) {
	snakeCfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	mode, err := parseMode(flagServeMode)
	if err != nil {
		fatal("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Snake:       snakeCfg,
		Mode:        mode,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var spectators tui.Spectators
	if flagSpectateAddr != "" {
		logger, logErr := newLogger(os.Stderr, "pulse-spectate")
		if logErr != nil {
			fatal("%v", logErr)
		}
		hub := spectate.NewHub(spectate.WithLogger(logger))
		spectators = hub
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectateAddr); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
	}

	server, err := tui.NewSSHServer(cfg, spectators)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting pulse SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	if flagSpectateAddr != "" {
		fmt.Printf("Spectators: ws://localhost%s/ws\n", flagSpectateAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fatal("server: %v", err)
	}
}

// portOf returns the port of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
