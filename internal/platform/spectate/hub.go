package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
)

const (
	defaultInterval = 50 * time.Millisecond
	writeWait       = 5 * time.Second
)

// ErrUnknownGame is returned when a spectator asks for a game that is not
// being played.
var ErrUnknownGame = errors.New("spectate: unknown game")

// Source publishes snapshots. *snake.Game satisfies it.
type Source interface {
	Latest() *snake.Snapshot
}

// GameInfo describes a game that can be watched.
type GameInfo struct {
	ID      string    `json:"id"`
	Player  string    `json:"player"`
	Started time.Time `json:"started"`
}

type entry struct {
	info GameInfo
	src  Source
	done chan struct{}
}

// Hub tracks live games and streams them to spectators. Every client polls
// its game's latest snapshot and only writes when a new one was published.
type Hub struct {
	mu    sync.RWMutex
	games map[string]*entry

	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// Option configures a Hub.
type Option func(*Hub)

// WithInterval sets how often clients look for new snapshots.
func WithInterval(d time.Duration) Option {
	return func(h *Hub) {
		if d > 0 {
			h.interval = d
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Hub) { h.logger = l }
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		games:    make(map[string]*entry),
		interval: defaultInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	return h
}

// Add registers a game and returns its id.
func (h *Hub) Add(player string, src Source) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.games[id] = &entry{
		info: GameInfo{ID: id, Player: player, Started: time.Now()},
		src:  src,
		done: make(chan struct{}),
	}
	h.mu.Unlock()
	h.logger.Debug("game added", "id", id, "player", player)
	return id
}

// Remove unregisters a game. Its spectators receive a closed message.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	e, ok := h.games[id]
	delete(h.games, id)
	h.mu.Unlock()
	if ok {
		close(e.done)
		h.logger.Debug("game removed", "id", id)
	}
}

// List returns the live games, oldest first.
func (h *Hub) List() []GameInfo {
	h.mu.RLock()
	out := make([]GameInfo, 0, len(h.games))
	for _, e := range h.games {
		out = append(out, e.info)
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}

// lookup finds a game. An empty id picks the most recent one.
func (h *Hub) lookup(id string) (*entry, error) {
	if id == "" {
		list := h.List()
		if len(list) == 0 {
			return nil, ErrUnknownGame
		}
		id = list[len(list)-1].ID
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return e, nil
}

// Handler serves GET /games (JSON list) and /ws?game=<id> (websocket).
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/games", h.serveList)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *Hub) serveList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.List()); err != nil {
		h.logger.Warn("list encode failed", "err", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	client := uuid.NewString()
	logger := h.logger.With("client", client)
	logger.Info("spectator connected", "remote", r.RemoteAddr)
	defer logger.Info("spectator disconnected")

	e, err := h.lookup(r.URL.Query().Get("game"))
	if err != nil {
		h.write(conn, ServerMessage{Type: TypeError, Error: err.Error(), Games: h.List()})
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain the socket so close frames are noticed
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.stream(ctx, conn, e); err != nil {
		logger.Debug("stream ended", "err", err)
	}
}

// stream writes every new snapshot of e until the game ends or ctx is done.
func (h *Hub) stream(ctx context.Context, conn *websocket.Conn, e *entry) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last *snake.Snapshot
	for {
		if snap := e.src.Latest(); snap != nil && snap != last {
			last = snap
			if err := h.write(conn, ServerMessage{Type: TypeState, State: NewState(snap)}); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			h.write(conn, ServerMessage{Type: TypeClosed})
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
			return nil
		case <-ticker.C:
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, msg ServerMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("spectator feed listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectate: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
