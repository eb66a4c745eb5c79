package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-pulse/internal/config"
	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
	"github.com/vovakirdan/arcade-pulse/internal/skins"
	"github.com/vovakirdan/arcade-pulse/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapResolve(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		intent core.Intent
		action Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.IntentTurnUp, ActionNone},
		{"wasd left", runes("a"), core.IntentTurnLeft, ActionNone},
		{"vim down", runes("j"), core.IntentTurnDown, ActionNone},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.IntentStartOrPause, ActionNone},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.IntentStartOrPause, ActionNone},
		{"pause", runes("p"), core.IntentPause, ActionNone},
		{"restart", runes("r"), core.IntentRestart, ActionNone},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, core.IntentBackToStart, ActionNone},
		{"mode", runes("m"), core.IntentModeToggle, ActionNone},
		{"next map", runes("]"), core.IntentMapNext, ActionNone},
		{"prev map", runes("["), core.IntentMapPrev, ActionNone},
		{"faster", runes("+"), core.IntentSpeedUp, ActionNone},
		{"slower", runes("-"), core.IntentSpeedDown, ActionNone},
		{"use", runes("e"), core.IntentUsePowerUp, ActionNone},
		{"cycle", tea.KeyMsg{Type: tea.KeyTab}, core.IntentPowerUpNext, ActionNone},
		{"cycle back", tea.KeyMsg{Type: tea.KeyShiftTab}, core.IntentPowerUpPrev, ActionNone},
		{"reset", runes("X"), core.IntentResetProgress, ActionNone},
		{"skin", runes("c"), core.IntentNone, ActionSkinNext},
		{"skin back", runes("C"), core.IntentNone, ActionSkinPrev},
		{"scores", runes("t"), core.IntentNone, ActionScores},
		{"help", runes("?"), core.IntentNone, ActionHelp},
		{"screenshot", tea.KeyMsg{Type: tea.KeyCtrlS}, core.IntentNone, ActionScreenshot},
		{"quit", runes("q"), core.IntentNone, ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.IntentNone, ActionQuit},
		{"unbound", runes("z"), core.IntentNone, ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			intent, action := km.Resolve(tc.msg)
			if intent != tc.intent || action != tc.action {
				t.Errorf("Resolve(%q) = %v, %v; expected %v, %v", tc.msg.String(), intent, action, tc.intent, tc.action)
			}
		})
	}
}

func TestElapsedMs(t *testing.T) {
	now := time.Now()
	if got := elapsedMs(time.Time{}, now, 80*time.Millisecond); got != 80 {
		t.Errorf("first tick = %d, expected fallback 80", got)
	}
	if got := elapsedMs(now, now.Add(130*time.Millisecond), time.Second); got != 130 {
		t.Errorf("elapsed = %d, expected 130", got)
	}
	if got := elapsedMs(now, now.Add(-time.Second), 50*time.Millisecond); got != 50 {
		t.Errorf("clock going backwards = %d, expected fallback", got)
	}
}

var testPalette = skins.Palette{
	ID:     "test",
	Accent: "1",
	Head:   "2",
	Body:   []core.Color{"3", "4"},
	Apple:  []core.Color{"5"},
}

func TestDrawBoard(t *testing.T) {
	walls := core.NewGrid(3, 2)
	walls.Set(core.Point{X: 0, Y: 1}, true)
	snap := &snake.Snapshot{
		State:    snake.StatePlaying,
		Board:    core.Board{W: 3, H: 2},
		Snake:    []core.Point{{X: 1, Y: 0}, {X: 0, Y: 0}},
		Walls:    walls,
		HasApple: true,
		Apple:    core.Point{X: 2, Y: 0},
		Score:    40,
		Tier:     2,
		Meter:    0.5,
	}

	s := Draw(Frame{Snap: snap, Palette: testPalette})
	w, h := ScreenSize(snap.Board)
	if s.Width() != w || s.Height() != h || w != 8 || h != 8 {
		t.Fatalf("screen is %dx%d, expected 8x8", s.Width(), s.Height())
	}

	if got := s.Row(0); got != "┌──────┐" {
		t.Errorf("top border = %q", got)
	}
	if got := s.Row(1); got != "│████()│" {
		t.Errorf("row 1 = %q", got)
	}
	if got := s.Row(2); got != "│██    │" {
		t.Errorf("row 2 = %q", got)
	}
	if c := s.GetCell(3, 1); c.Color != testPalette.Head {
		t.Errorf("head color = %q", c.Color)
	}
	if c := s.GetCell(1, 1); c.Color != "3" {
		t.Errorf("body color = %q", c.Color)
	}
	if c := s.GetCell(5, 1); c.Color != "5" {
		t.Errorf("apple color = %q", c.Color)
	}
	if c := s.GetCell(1, 2); c.Color != core.ColorWall {
		t.Errorf("wall color = %q", c.Color)
	}
	if !strings.HasPrefix(s.Row(4), " Score ") {
		t.Errorf("HUD row = %q", s.Row(4))
	}
}

func TestDrawOverlays(t *testing.T) {
	base := snake.Snapshot{
		Board: core.Board{W: 16, H: 8},
		Snake: []core.Point{{X: 1, Y: 1}},
		Mode:  snake.ModeLabyrinth,
		MapID: "lab-02",
	}
	tests := []struct {
		state snake.RunState
		cause snake.Cause
		want  []string
	}{
		{snake.StateStart, snake.CauseNone, []string{"P U L S E", "Labyrinth: lab-02", "enter to start"}},
		{snake.StatePaused, snake.CauseNone, []string{"PAUSED"}},
		{snake.StateOver, snake.CauseWall, []string{"GAME OVER", "hit a wall"}},
		{snake.StatePlaying, snake.CauseNone, nil},
	}

	for _, tc := range tests {
		t.Run(string(tc.state), func(t *testing.T) {
			snap := base
			snap.State = tc.state
			snap.Cause = tc.cause
			out := Draw(Frame{Snap: &snap, Palette: testPalette, Toast: "hello"}).String()
			for _, w := range tc.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q in\n%s", w, out)
				}
			}
			if tc.want == nil && strings.Contains(out, "GAME OVER") {
				t.Error("overlay drawn while playing")
			}
			if !strings.Contains(out, "hello") {
				t.Error("toast not drawn")
			}
		})
	}
}

func TestInventoryAndMeterLabels(t *testing.T) {
	items := []snake.PowerUp{snake.PowerUpMulligan, snake.PowerUpPhaseWalls, snake.PowerUpMulligan}
	if got := inventoryLabel(items, 1); got != " M [P] M" {
		t.Errorf("inventoryLabel = %q", got)
	}
	if got := inventoryLabel(nil, 0); got != "" {
		t.Errorf("empty inventory = %q", got)
	}
	if got := meterBar(0.5, 4); got != "[##--]" {
		t.Errorf("meterBar(0.5) = %q", got)
	}
	if got := meterBar(2, 4); got != "[####]" {
		t.Errorf("meterBar(2) = %q", got)
	}
}

// corridorConfig is a 3x1 board where the only free cell holds the first
// apple and the second step leaves the board.
func corridorConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Cols: 3, Rows: 1, Wrap: false}
	cfg.Snake.InitialLength = 2
	cfg.Scoring.BonusSpawnChance = 0
	cfg.PowerUps.DropChance = 0
	cfg.Labyrinth.MapsDir = ""
	return cfg
}

func TestModelPlaysAndSavesScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "pulse.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	prefs := store.Prefs("ann")
	game := snake.New(corridorConfig(), snake.WithPrefs(prefs))
	var model tea.Model = NewModel(Session{
		Game:   game,
		Skins:  skins.NewManager(skins.DefaultTable(), prefs, nil),
		Store:  store,
		Player: "ann",
	})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if game.State() != snake.StatePlaying {
		t.Fatalf("state after enter = %s", game.State())
	}

	now := time.Now()
	for i := range 3 {
		var cmd tea.Cmd
		model, cmd = model.Update(TickMsg(now.Add(time.Duration(i) * 100 * time.Millisecond)))
		if cmd == nil {
			t.Fatal("tick did not schedule the next tick")
		}
	}
	if game.State() != snake.StateOver {
		t.Fatalf("state after ticks = %s", game.State())
	}

	scores, err := store.TopScores(string(snake.ModeClassic), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].Player != "ann" || scores[0].Score != 10 {
		t.Fatalf("saved scores = %+v", scores)
	}
	if high, _ := prefs.Int(snake.KeyHigh, 0); high != 10 {
		t.Errorf("high score pref = %d", high)
	}

	// The scoreboard opens off the start of a run and closes again
	model, _ = model.Update(runes("t"))
	if view := model.View(); !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "ann") {
		t.Errorf("scoreboard view:\n%s", view)
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(model.View(), "HIGH SCORES") {
		t.Error("scoreboard did not close")
	}

	_, cmd := model.Update(runes("q"))
	if cmd == nil {
		t.Error("quit returned no command")
	}
}

func TestModelSkinCycleAndReset(t *testing.T) {
	game := snake.New(corridorConfig())
	sk := skins.NewManager(skins.DefaultTable(), nil, nil)
	sk.Unlock("gold")
	var model tea.Model = NewModel(Session{Game: game, Skins: sk})

	model, _ = model.Update(runes("c"))
	if sk.Current().ID == skins.DefaultID {
		t.Error("skin did not change")
	}
	if !strings.Contains(Draw(model.(Model).frameData()).String(), "Skin: ") {
		t.Error("skin change not announced")
	}

	model, _ = model.Update(runes("X"))
	if sk.IsUnlocked("gold") || sk.Current().ID != skins.DefaultID {
		t.Error("progress reset kept unlocked skins")
	}
}
