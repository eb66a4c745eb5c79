package snake

import (
	"errors"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/arcade-pulse/internal/config"
	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/maps"
)

type memPrefs map[string]int

func (m memPrefs) Int(key string, def int) (int, error) {
	if v, ok := m[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m memPrefs) SetInt(key string, v int) error {
	m[key] = v
	return nil
}

// testConfig returns a config without random bonus or token drops.
func testConfig(w, h int, wrap bool) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Cols: w, Rows: h, Wrap: wrap}
	cfg.Snake.InitialLength = 3
	cfg.Scoring.BonusSpawnChance = 0
	cfg.PowerUps.DropChance = 0
	return cfg
}

func startGame(t *testing.T, cfg config.SnakeConfig, opts ...Option) *Game {
	t.Helper()
	g := New(cfg, opts...)
	if err := g.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	g.hasApple = false
	return g
}

func pts(xy ...int) []core.Point {
	out := make([]core.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, core.Point{X: xy[i], Y: xy[i+1]})
	}
	return out
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestStartLayout(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))

	want := pts(5, 5, 4, 5, 3, 5)
	if !reflect.DeepEqual(g.snake, want) {
		t.Errorf("snake = %v, expected %v", g.snake, want)
	}
	if g.dir != core.DirRight {
		t.Errorf("heading = %v, expected right", g.dir)
	}
	if g.State() != StatePlaying {
		t.Errorf("state = %s, expected playing", g.State())
	}
}

func TestEatAppleExample(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true

	res := g.Tick(16)

	if head := g.snake[0]; head != (core.Point{X: 6, Y: 5}) {
		t.Errorf("head = %v, expected (6,5)", head)
	}
	if len(g.snake) != 4 {
		t.Errorf("length = %d, expected 4", len(g.snake))
	}
	if !g.hasApple {
		t.Fatal("apple was not relocated")
	}
	for _, p := range g.snake {
		if p == g.apple {
			t.Errorf("apple relocated onto the snake at %v", p)
		}
	}
	if res.Score != g.cfg.Scoring.ApplePoints {
		t.Errorf("score = %d, expected %d", res.Score, g.cfg.Scoring.ApplePoints)
	}
	if g.ledger.XP() != g.cfg.XP.Apple {
		t.Errorf("xp = %d, expected %d", g.ledger.XP(), g.cfg.XP.Apple)
	}
	if !hasEvent(res.Events, EventAppleEaten) {
		t.Error("missing apple event")
	}
}

func TestWrapAround(t *testing.T) {
	tests := []struct {
		name  string
		turn  core.Direction
		ticks int
		want  core.Point
	}{
		{name: "right edge", turn: core.DirRight, ticks: 5, want: core.Point{X: 0, Y: 5}},
		{name: "top edge", turn: core.DirUp, ticks: 6, want: core.Point{X: 5, Y: 9}},
		{name: "bottom edge", turn: core.DirDown, ticks: 5, want: core.Point{X: 5, Y: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := startGame(t, testConfig(10, 10, true))
			g.Turn(tc.turn)
			for i := 0; i < tc.ticks; i++ {
				g.Tick(16)
			}
			if g.State() != StatePlaying {
				t.Fatalf("state = %s after wrapping", g.State())
			}
			if g.snake[0] != tc.want {
				t.Errorf("head = %v, expected %v", g.snake[0], tc.want)
			}
		})
	}
}

func TestBoundaryEndsRun(t *testing.T) {
	g := startGame(t, testConfig(10, 10, false))
	for i := 0; i < 4; i++ {
		g.Tick(16)
	}
	if g.State() != StatePlaying || g.snake[0].X != 9 {
		t.Fatalf("expected to reach the edge alive, head %v state %s", g.snake[0], g.State())
	}

	res := g.Tick(16)
	if res.State != StateOver {
		t.Fatalf("state = %s, expected over", res.State)
	}
	if g.cause != CauseBoundary {
		t.Errorf("cause = %q, expected boundary", g.cause)
	}
	if !hasEvent(res.Events, EventGameOver) {
		t.Error("missing game over event")
	}

	tick := g.Latest().Tick
	g.Tick(16)
	g.Tick(16)
	if g.Latest().Tick != tick {
		t.Error("ticks advanced after game over")
	}
}

func TestSelfCollisionOnExactTick(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.snake = pts(5, 5, 4, 5, 3, 5, 2, 5, 1, 5)

	turns := []core.Direction{core.DirDown, core.DirLeft, core.DirUp}
	for i, d := range turns {
		g.Turn(d)
		g.Tick(16)
		last := i == len(turns)-1
		if last && g.State() != StateOver {
			t.Fatalf("tick %d: expected over, head %v", i+1, g.snake[0])
		}
		if !last && g.State() != StatePlaying {
			t.Fatalf("tick %d: ended early, head %v", i+1, g.snake[0])
		}
	}
	if g.cause != CauseSelf {
		t.Errorf("cause = %q, expected self", g.cause)
	}
}

func TestMovingIntoVacatedTailIsSafe(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.snake = pts(5, 5, 4, 5, 4, 6, 5, 6)

	g.Turn(core.DirDown)
	g.Tick(16)
	if g.State() != StatePlaying {
		t.Fatalf("state = %s, chasing the tail should be safe", g.State())
	}
}

func TestReversalIsIgnored(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))

	g.Turn(core.DirLeft)
	g.Tick(16)
	if g.dir != core.DirRight || g.snake[0] != (core.Point{X: 6, Y: 5}) {
		t.Errorf("reversal applied: dir %v head %v", g.dir, g.snake[0])
	}

	// Down is only judged against the last applied step
	g.Turn(core.DirUp)
	g.Turn(core.DirDown)
	g.Tick(16)
	if g.dir != core.DirDown {
		t.Errorf("dir = %v, expected latest accepted turn", g.dir)
	}
}

func TestTurnIgnoredOutsidePlaying(t *testing.T) {
	g := New(testConfig(10, 10, true))
	g.Turn(core.DirUp)
	if g.nextDir != core.DirRight {
		t.Errorf("turn accepted on the start screen")
	}
}

func TestTickOutsidePlayingIsNoop(t *testing.T) {
	g := New(testConfig(10, 10, true))
	before := g.Snapshot()
	g.Tick(16)
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("tick changed a game on the start screen")
	}

	g = startGame(t, testConfig(10, 10, true))
	if _, err := g.Apply(core.IntentPause); err != nil {
		t.Fatal(err)
	}
	head := g.snake[0]
	g.Tick(16)
	if g.snake[0] != head {
		t.Error("snake moved while paused")
	}
}

func TestAppleGrantsBaseScore(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.multiplier.tier = 2
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true

	res := g.Tick(0)
	if g.score != g.cfg.Scoring.ApplePoints {
		t.Errorf("score = %d, expected base %d at tier 2", g.score, g.cfg.Scoring.ApplePoints)
	}
	want := Event{Kind: EventAppleEaten, Value: g.cfg.Scoring.ApplePoints}
	found := false
	for _, e := range res.Events {
		found = found || e == want
	}
	if !found {
		t.Errorf("events = %v, expected %v", res.Events, want)
	}
	if g.multiplier.Tier() < 2 {
		t.Errorf("tier = %d, the streak should still advance", g.multiplier.Tier())
	}
}

func TestLevelUpShortensDelay(t *testing.T) {
	cfg := testConfig(10, 10, true)
	cfg.XP.Base = cfg.XP.Apple
	cfg.XP.Step = 0
	g := startGame(t, cfg)
	before := g.delayMs
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true

	res := g.Tick(16)
	if !hasEvent(res.Events, EventLevelUp) {
		t.Fatal("missing level up event")
	}
	if want := max(cfg.Speed.TickFloorMs, before-cfg.Speed.TickStepMs); g.delayMs != want {
		t.Errorf("delay = %d, expected %d", g.delayMs, want)
	}
	if g.ledger.Level() != 2 {
		t.Errorf("level = %d, expected 2", g.ledger.Level())
	}
}

func TestSpeedStepsEveryNApples(t *testing.T) {
	cfg := testConfig(10, 10, true)
	cfg.Speed.ApplesPerStep = 1
	g := startGame(t, cfg)
	idx := g.speedIdx
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true

	res := g.Tick(16)
	if g.speedIdx != idx+1 {
		t.Errorf("speed index = %d, expected %d", g.speedIdx, idx+1)
	}
	if !hasEvent(res.Events, EventSpeedUp) {
		t.Error("missing speed up event")
	}
	if g.TickDelay().Milliseconds() != int64(cfg.Speed.TableMs[idx+1]) {
		t.Errorf("delay = %v", g.TickDelay())
	}
}

func TestManualSpeedChange(t *testing.T) {
	g := New(testConfig(10, 10, true))
	table := g.cfg.Speed.TableMs

	for i := 0; i < len(table)+2; i++ {
		g.Apply(core.IntentSpeedDown) //nolint:errcheck // never fails
	}
	if g.delayMs != table[0] {
		t.Errorf("delay = %d, expected slowest %d", g.delayMs, table[0])
	}
	for i := 0; i < len(table)+2; i++ {
		g.Apply(core.IntentSpeedUp) //nolint:errcheck // never fails
	}
	if g.delayMs != table[len(table)-1] {
		t.Errorf("delay = %d, expected fastest %d", g.delayMs, table[len(table)-1])
	}
}

func TestBonusLifecycle(t *testing.T) {
	cfg := testConfig(10, 10, true)
	cfg.Scoring.BonusSpawnChance = 1
	cfg.Scoring.BonusLifeTicks = 2
	g := startGame(t, cfg)
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true

	res := g.Tick(16)
	if !hasEvent(res.Events, EventBonusSpawned) || g.bonusTicks != 2 {
		t.Fatalf("bonus not spawned, ticks %d", g.bonusTicks)
	}
	if g.bonus == g.apple {
		t.Error("bonus spawned on the apple")
	}

	// Put the bonus in the path and eat it
	g.bonus = core.Point{X: 7, Y: 5}
	g.hasApple = false
	length, score := len(g.snake), g.score
	res = g.Tick(16)
	if !hasEvent(res.Events, EventBonusEaten) {
		t.Fatal("bonus not eaten")
	}
	if len(g.snake) != length+2 {
		t.Errorf("length = %d, expected %d", len(g.snake), length+2)
	}
	if g.score != score+cfg.Scoring.BonusPoints {
		t.Errorf("score = %d, expected %d", g.score, score+cfg.Scoring.BonusPoints)
	}
	if g.bonusTicks != 0 {
		t.Error("bonus still active")
	}
}

func TestBonusExpires(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.bonus = core.Point{X: 0, Y: 0}
	g.bonusTicks = 2

	g.Tick(16)
	res := g.Tick(16)
	if g.bonusTicks != 0 || !hasEvent(res.Events, EventBonusExpired) {
		t.Errorf("bonus ticks = %d, expected expiry", g.bonusTicks)
	}
}

func TestAppleAndBonusSameCellStack(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true
	g.bonus = g.apple
	g.bonusTicks = 5
	length := len(g.snake)

	res := g.Tick(16)
	if len(g.snake) != length+3 {
		t.Errorf("length = %d, expected %d", len(g.snake), length+3)
	}
	if want := g.cfg.Scoring.ApplePoints + g.cfg.Scoring.BonusPoints; g.score != want {
		t.Errorf("score = %d, expected %d", g.score, want)
	}
	var kinds []EventKind
	for _, e := range res.Events {
		if e.Kind == EventAppleEaten || e.Kind == EventBonusEaten {
			kinds = append(kinds, e.Kind)
		}
	}
	if !reflect.DeepEqual(kinds, []EventKind{EventAppleEaten, EventBonusEaten}) {
		t.Errorf("pickup events = %v, expected apple then bonus", kinds)
	}
}

func TestMulliganTeleports(t *testing.T) {
	g := startGame(t, testConfig(10, 10, false))
	g.snake = pts(9, 5, 8, 5, 7, 5)
	g.inventory.Add(PowerUpMulligan)

	res := g.Tick(16)
	if res.State != StatePlaying {
		t.Fatalf("state = %s, mulligan should have saved the run", res.State)
	}
	if !hasEvent(res.Events, EventMulligan) {
		t.Error("missing mulligan event")
	}
	if g.inventory.Count(PowerUpMulligan) != 0 {
		t.Error("mulligan not consumed")
	}
	if head := g.snake[0]; head != (core.Point{X: 8, Y: 4}) {
		t.Errorf("head = %v, expected nearest ring cell (8,4)", head)
	}
	if len(g.snake) != 3 {
		t.Errorf("length = %d, teleport must not grow", len(g.snake))
	}
}

func TestMulliganLandingOnAppleDoesNotGrow(t *testing.T) {
	g := startGame(t, testConfig(10, 10, false))
	g.snake = pts(9, 5, 8, 5, 7, 5)
	g.inventory.Add(PowerUpMulligan)
	landing := core.Point{X: 8, Y: 4}
	g.apple = landing
	g.hasApple = true

	res := g.Tick(16)
	if res.State != StatePlaying || g.snake[0] != landing {
		t.Fatalf("state = %s head = %v, expected a teleport to %v", res.State, g.snake[0], landing)
	}
	if len(g.snake) != 3 || g.score != 0 {
		t.Errorf("length %d score %d, teleport must not eat", len(g.snake), g.score)
	}
	if hasEvent(res.Events, EventAppleEaten) {
		t.Error("apple eaten on the teleport tick")
	}
	if !g.hasApple || g.apple == landing {
		t.Errorf("apple = %v, expected it moved off the head", g.apple)
	}
}

func TestFailedMulliganKeepsToken(t *testing.T) {
	g := startGame(t, testConfig(1, 1, false))
	g.inventory.Add(PowerUpMulligan)

	res := g.Tick(16)
	if res.State != StateOver {
		t.Fatalf("state = %s, expected over", res.State)
	}
	if g.inventory.Count(PowerUpMulligan) != 1 {
		t.Error("failed mulligan consumed the token")
	}
}

func TestManualMulliganStaysSelected(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	g.inventory.Add(PowerUpMulligan)
	g.Apply(core.IntentUsePowerUp) //nolint:errcheck // never fails
	if g.inventory.Len() != 1 {
		t.Error("manual use removed the mulligan")
	}
}

func wallRegistry(board core.Board) *maps.Registry {
	fsys := fstest.MapFS{
		"index.txt": {Data: []byte("box.txt\n")},
		"box.txt":   {Data: []byte("6x3 box - Box\n######\n#S#  #\n######\n")},
	}
	return maps.NewRegistry(board, maps.WithFS(fsys))
}

func labyrinthGame(t *testing.T, cfg config.SnakeConfig) *Game {
	t.Helper()
	cfg.Snake.InitialLength = 1
	reg := wallRegistry(cfg.Playfield())
	return startGame(t, cfg, WithRegistry(reg), WithMode(ModeLabyrinth))
}

func TestWallCollision(t *testing.T) {
	g := labyrinthGame(t, testConfig(6, 3, false))
	if g.mapID != "box" || g.mapTitle != "Box" {
		t.Errorf("map = %s %q", g.mapID, g.mapTitle)
	}
	res := g.Tick(16)
	if res.State != StateOver || g.cause != CauseWall {
		t.Errorf("state = %s cause %q, expected wall death", res.State, g.cause)
	}
}

func TestPhaseWallsPassThrough(t *testing.T) {
	cfg := testConfig(6, 3, false)
	cfg.PowerUps.PhaseMoves = 3
	g := labyrinthGame(t, cfg)
	g.inventory.Add(PowerUpPhaseWalls)

	res, err := g.Apply(core.IntentUsePowerUp)
	if err != nil {
		t.Fatal(err)
	}
	if !hasEvent(res.Events, EventPhase) || !g.effects.PhaseActive() {
		t.Fatal("phase not active")
	}
	if g.inventory.Len() != 0 {
		t.Error("phase token not consumed")
	}

	g.Tick(16)
	if g.State() != StatePlaying {
		t.Fatalf("died on a wall while phasing")
	}
	if g.effects.PhaseMoves() != 2 {
		t.Errorf("phase moves = %d, expected 2", g.effects.PhaseMoves())
	}
}

func TestInvincibleIgnoresWalls(t *testing.T) {
	cfg := testConfig(6, 3, false)
	cfg.Debug.Invincible = true
	g := labyrinthGame(t, cfg)
	g.Tick(16)
	if g.State() != StatePlaying {
		t.Errorf("state = %s, invincible snake died", g.State())
	}
}

func TestStrictSizeMismatchKeepsState(t *testing.T) {
	cfg := testConfig(10, 10, true)
	cfg.Labyrinth.StrictSize = true
	g := New(cfg, WithRegistry(wallRegistry(cfg.Playfield())), WithMode(ModeLabyrinth))
	before := g.Latest()

	_, err := g.Apply(core.IntentStartOrPause)
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("error = %v, expected ErrSizeMismatch", err)
	}
	if g.State() != StateStart {
		t.Errorf("state = %s, expected start", g.State())
	}
	if !reflect.DeepEqual(before, g.Latest()) {
		t.Error("failed start changed the published snapshot")
	}
}

func TestModeAndMapChangesOnStartScreen(t *testing.T) {
	g := New(testConfig(30, 25, true))
	if g.Latest().Walls.Count() != 0 {
		t.Fatal("classic preview has walls")
	}

	g.Apply(core.IntentModeToggle) //nolint:errcheck // never fails
	snap := g.Latest()
	if snap.Mode != ModeLabyrinth || snap.MapID != "lab-01" || snap.Walls.Count() == 0 {
		t.Fatalf("labyrinth preview = %s %s with %d walls", snap.Mode, snap.MapID, snap.Walls.Count())
	}

	if _, err := g.Apply(core.IntentMapNext); err != nil {
		t.Fatal(err)
	}
	if g.Latest().MapID != "lab-02" {
		t.Errorf("map = %s, expected lab-02", g.Latest().MapID)
	}

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	g.Apply(core.IntentModeToggle) //nolint:errcheck // never fails
	if g.Mode() != ModeLabyrinth {
		t.Error("mode changed while playing")
	}
}

func TestPausedModeToggleKeepsWalls(t *testing.T) {
	g := New(testConfig(30, 25, true), WithMode(ModeLabyrinth))
	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	walls := g.walls
	g.Apply(core.IntentPause)      //nolint:errcheck // never fails
	g.Apply(core.IntentModeToggle) //nolint:errcheck // never fails
	if g.Mode() != ModeClassic || g.walls != walls {
		t.Errorf("mode %s, walls replaced: %v", g.Mode(), g.walls != walls)
	}
}

func TestStateTransitions(t *testing.T) {
	g := New(testConfig(10, 10, false))
	steps := []struct {
		in   core.Intent
		want RunState
	}{
		{core.IntentStartOrPause, StatePlaying},
		{core.IntentStartOrPause, StatePaused},
		{core.IntentPause, StatePlaying},
		{core.IntentPause, StatePaused},
		{core.IntentBackToStart, StateStart},
		{core.IntentRestart, StatePlaying},
	}
	for i, s := range steps {
		res, err := g.Apply(s.in)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if res.State != s.want {
			t.Fatalf("step %d (%s): state = %s, expected %s", i, s.in, res.State, s.want)
		}
	}

	for g.State() == StatePlaying {
		g.Tick(16)
	}
	if res, _ := g.Apply(core.IntentStartOrPause); res.State != StatePlaying {
		t.Errorf("start from over = %s", res.State)
	}
}

func TestProgressPersistence(t *testing.T) {
	prefs := memPrefs{KeyLevel: 3, KeyXP: 5, KeyHigh: 7}
	g := New(testConfig(10, 10, false), WithPrefs(prefs))
	if g.ledger.Level() != 3 || g.ledger.XP() != 5 {
		t.Fatalf("restored %d/%d", g.ledger.Level(), g.ledger.XP())
	}

	if err := g.Start(); err != nil {
		t.Fatal(err)
	}
	g.apple = core.Point{X: 6, Y: 5}
	g.hasApple = true
	g.Tick(16)
	if prefs[KeyXP] != 5+g.cfg.XP.Apple {
		t.Errorf("saved xp = %d", prefs[KeyXP])
	}
	g.hasApple = false

	var events []Event
	for g.State() == StatePlaying {
		events = append(events, g.Tick(16).Events...)
	}
	if prefs[KeyHigh] != g.cfg.Scoring.ApplePoints {
		t.Errorf("saved high = %d", prefs[KeyHigh])
	}
	if !hasEvent(events, EventNewHighScore) {
		t.Error("missing high score event")
	}

	g.Apply(core.IntentResetProgress) //nolint:errcheck // never fails
	if prefs[KeyLevel] != 1 || prefs[KeyXP] != 0 {
		t.Errorf("reset saved %d/%d", prefs[KeyLevel], prefs[KeyXP])
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig(12, 12, true)
	cfg.Scoring.BonusSpawnChance = 0.5
	cfg.PowerUps.DropChance = 0.5

	run := func() *Snapshot {
		g := New(cfg, WithSeed(12345))
		if err := g.Start(); err != nil {
			t.Fatal(err)
		}
		turns := []core.Direction{core.DirDown, core.DirLeft, core.DirUp, core.DirRight}
		for i := 0; i < 200 && g.State() == StatePlaying; i++ {
			if i%7 == 0 {
				g.Turn(turns[(i/7)%len(turns)])
			}
			g.Tick(16)
		}
		return g.Latest()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
}

func TestLatestIsImmutable(t *testing.T) {
	g := startGame(t, testConfig(10, 10, true))
	snap := g.Latest()
	head := snap.Head()
	g.Tick(16)
	if snap.Head() != head {
		t.Error("published snapshot changed after a tick")
	}
	if g.Latest() == snap {
		t.Error("tick did not publish a new snapshot")
	}
}
