package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
	"github.com/vovakirdan/arcade-pulse/internal/skins"
	"github.com/vovakirdan/arcade-pulse/internal/storage"
)

// toastTicks is how many steps a notice stays on screen.
const toastTicks = 25

// Session groups what one player needs: a game, their skins and the shared
// score store. Store and Skins may be nil.
type Session struct {
	Game     *snake.Game
	Skins    *skins.Manager
	Store    *storage.Store
	Player   string
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
}

// Model is the Bubble Tea model that drives one snake game.
type Model struct {
	game    *snake.Game
	skins   *skins.Manager
	store   *storage.Store
	player  string
	logger  *log.Logger
	painter *Painter

	keys KeyMap
	help help.Model

	board      Scoreboard
	showScores bool

	lastTick   time.Time
	frame      int
	toast      string
	toastLeft  int
	width      int
	height     int
	quitting   bool
	scoreSaved bool
}

// NewModel creates a model for s.
func NewModel(s Session) Model {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sk := s.Skins
	if sk == nil {
		sk = skins.NewManager(skins.DefaultTable(), nil, logger)
	}
	return Model{
		game:    s.Game,
		skins:   sk,
		store:   s.Store,
		player:  s.Player,
		logger:  logger,
		painter: NewPainter(s.Renderer),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.game.TickDelay())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if m.showScores {
			var cmd tea.Cmd
			var done bool
			m.board, cmd, done = m.board.Update(msg)
			m.showScores = !done
			return m, cmd
		}
		return m.handleKey(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	if m.showScores {
		m.board, _, _ = m.board.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	intent, action := m.keys.Resolve(msg)

	switch action {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case ActionSkinNext:
		m.notify("Skin: " + m.skins.Cycle(1).Label)
		return m, nil
	case ActionSkinPrev:
		m.notify("Skin: " + m.skins.Cycle(-1).Label)
		return m, nil
	case ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case ActionScores:
		if m.game.State() != snake.StatePlaying {
			m.board = NewScoreboard(m.store, m.game.Mode(), m.width, m.height)
			m.showScores = true
		}
		return m, nil
	case ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	wasPlaying := m.game.State() == snake.StatePlaying
	res, err := m.game.Apply(intent)
	if err != nil {
		m.logger.Warn("intent failed", "intent", intent, "err", err)
		m.notify(err.Error())
		return m, nil
	}
	if res.State == snake.StatePlaying && !wasPlaying {
		m.lastTick = time.Time{}
		m.scoreSaved = false
	}
	if intent == core.IntentResetProgress && !wasPlaying {
		m.skins.Reset()
		m.notify("Progress reset")
	}
	m.handleEvents(res)
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := elapsedMs(m.lastTick, now, m.game.TickDelay())
	m.lastTick = now
	// Time spent paused or on a menu is not charged to the multiplier
	if m.game.State() != snake.StatePlaying {
		m.lastTick = time.Time{}
	}

	res := m.game.Tick(dt)
	m.handleEvents(res)

	m.frame++
	if m.toastLeft > 0 {
		m.toastLeft--
		if m.toastLeft == 0 {
			m.toast = ""
		}
	}
	return m, tickCmd(m.game.TickDelay())
}

// handleEvents reacts to engine cues: unlocks, notices and saved scores.
func (m *Model) handleEvents(res snake.StepResult) {
	check := false
	for _, ev := range res.Events {
		switch ev.Kind {
		case snake.EventAppleEaten, snake.EventBonusEaten:
			check = true
		case snake.EventLevelUp:
			check = true
			m.notify(fmt.Sprintf("Level %d!", ev.Value))
		case snake.EventPowerUp:
			m.notify("Got " + snake.PowerUp(ev.Value).String())
		case snake.EventOverflow:
			m.notify(fmt.Sprintf("Inventory full: +%d", ev.Value))
		case snake.EventMulligan:
			m.notify("Mulligan!")
		case snake.EventPhase:
			m.notify(fmt.Sprintf("Phasing for %d moves", ev.Value))
		case snake.EventNewHighScore:
			m.notify("New high score!")
		case snake.EventGameOver:
			check = true
			m.saveScore()
		}
	}
	if !check {
		return
	}

	snap := m.game.Latest()
	for _, id := range m.skins.CheckUnlocks(snap.Score, snap.Level) {
		m.notify("Unlocked skin: " + m.skins.Label(id))
	}
}

func (m *Model) saveScore() {
	snap := m.game.Latest()
	if m.store == nil || m.scoreSaved || snap.Score <= 0 {
		return
	}
	m.scoreSaved = true

	entry := storage.ScoreEntry{
		Player: m.player,
		Mode:   string(snap.Mode),
		Score:  snap.Score,
		Level:  snap.Level,
	}
	if snap.Mode == snake.ModeLabyrinth {
		entry.MapID = snap.MapID
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Error("failed to save score", "err", err)
	}
}

func (m *Model) notify(text string) {
	m.toast = text
	m.toastLeft = toastTicks
}

// frameData assembles what Draw needs for the current state.
func (m Model) frameData() Frame {
	return Frame{
		Snap:    m.game.Latest(),
		Palette: m.skins.Current(),
		Count:   m.frame,
		Toast:   m.toast,
	}
}

// saveScreenshot writes the current board as plain text to
// ~/.pulse/screenshots.
func (m *Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".pulse", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	name := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(Draw(m.frameData()).String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.notify("Saved " + name)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.board.View()
	}

	helpStyle := m.painter.style("241")
	return m.painter.Render(Draw(m.frameData())) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a local Bubble Tea program for s.
func Run(s Session) error {
	p := tea.NewProgram(
		NewModel(s),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
