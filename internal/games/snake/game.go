// Package snake implements the snake simulation: the run state machine,
// movement and collisions, scoring, the streak multiplier, progression and
// power-ups. It never renders and never owns a timer; a driver feeds it
// intents and elapsed time.
package snake

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-pulse/internal/config"
	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/maps"
)

// RunState is the phase of the current run.
type RunState string

const (
	StateStart   RunState = "start"
	StatePlaying RunState = "playing"
	StatePaused  RunState = "paused"
	StateOver    RunState = "over"
)

// Mode selects the playfield source.
type Mode string

const (
	ModeClassic   Mode = "classic"   // Empty board
	ModeLabyrinth Mode = "labyrinth" // Walls from the active layout
)

// ErrSizeMismatch is returned by Start when strict sizing is on and the
// active layout was authored for a different board.
var ErrSizeMismatch = errors.New("layout size does not match board")

// StepResult reports the outcome of a tick or intent.
type StepResult struct {
	State  RunState
	Score  int
	Events []Event
}

// Game is the root of the simulation. All mutating methods must be called
// from a single goroutine; readers on other goroutines use Latest.
type Game struct {
	cfg      config.SnakeConfig
	board    core.Board
	rng      *rand.Rand
	logger   *log.Logger
	registry *maps.Registry
	prefs    Prefs

	state RunState
	mode  Mode
	tick  uint64
	cause Cause

	// Snake state, head at index 0
	snake   []core.Point
	dir     core.Direction // Direction of the last applied step
	nextDir core.Direction // Accepted turn for the next step

	// Playfield
	walls    *core.Grid
	pellets  []core.Point
	mapID    string
	mapTitle string

	// Pickups
	apple      core.Point
	hasApple   bool
	bonus      core.Point
	bonusTicks int // Remaining lifetime; 0 means no bonus

	score       int
	high        int
	applesEaten int
	speedIdx    int
	delayMs     int

	multiplier *Multiplier
	ledger     *Ledger
	inventory  *Inventory
	effects    *Effects

	events []Event
	latest atomic.Pointer[Snapshot]
}

// Option configures a Game.
type Option func(*Game)

// WithRegistry supplies the layout registry used in labyrinth mode.
func WithRegistry(r *maps.Registry) Option {
	return func(g *Game) { g.registry = r }
}

// WithPrefs attaches a preference store for progress and high score.
func WithPrefs(p Prefs) Option {
	return func(g *Game) { g.prefs = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithSeed seeds pickup placement and drops.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.rng = rand.New(rand.NewSource(seed)) }
}

// WithMode selects the initial mode.
func WithMode(m Mode) Option {
	return func(g *Game) { g.mode = m }
}

// New creates a game on the start screen.
func New(cfg config.SnakeConfig, opts ...Option) *Game {
	g := &Game{
		cfg:   cfg,
		board: cfg.Playfield(),
		state: StateStart,
		mode:  ModeClassic,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.registry == nil {
		g.registry = maps.NewRegistry(g.board,
			maps.WithDir(cfg.Labyrinth.MapsDir),
			maps.WithDefault(cfg.Labyrinth.DefaultMap),
			maps.WithLogger(g.logger),
		)
	}

	g.multiplier = NewMultiplier(cfg.Multiplier)
	g.ledger = NewLedger(cfg.XP)
	g.ledger.OnLevelUp = g.onLevelUp
	g.inventory = NewInventory(cfg.PowerUps.Capacity)
	g.effects = NewEffects(cfg.PowerUps.PhaseMoves)

	g.loadProgress()
	g.resetSpeed()
	g.preview()
	g.publish()
	return g
}

// Board returns the playfield dimensions.
func (g *Game) Board() core.Board {
	return g.board
}

// State returns the run state.
func (g *Game) State() RunState {
	return g.state
}

// Mode returns the current mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Registry returns the layout registry.
func (g *Game) Registry() *maps.Registry {
	return g.registry
}

// TickDelay returns how long the driver should wait between ticks.
func (g *Game) TickDelay() time.Duration {
	return time.Duration(g.delayMs) * time.Millisecond
}

// Start begins a new run from any state. On error the game is unchanged.
func (g *Game) Start() error {
	r, err := g.buildRun(g.cfg.Labyrinth.StrictSize)
	if err != nil {
		return err
	}
	g.commitRun(r)

	g.score = 0
	g.applesEaten = 0
	g.tick = 0
	g.cause = CauseNone
	g.bonusTicks = 0
	g.resetSpeed()
	g.multiplier.Reset()
	g.effects.Reset()
	g.placeApple(r.foods)

	g.state = StatePlaying
	g.logger.Debug("run started", "mode", g.mode, "map", g.mapID)
	g.publish()
	return nil
}

// Turn queues a direction change for the next step. It is ignored outside
// Playing and when d reverses the last applied step.
func (g *Game) Turn(d core.Direction) {
	if g.state != StatePlaying || d.IsOpposite(g.dir) {
		return
	}
	g.nextDir = d
}

// Apply handles one player intent.
func (g *Game) Apply(in core.Intent) (StepResult, error) {
	g.events = g.events[:0]
	var err error

	if d, ok := in.TurnDirection(); ok {
		g.Turn(d)
		return g.result(), nil
	}

	switch in {
	case core.IntentStartOrPause:
		switch g.state {
		case StateStart, StateOver:
			err = g.Start()
		case StatePlaying:
			g.state = StatePaused
		case StatePaused:
			g.state = StatePlaying
		}
	case core.IntentPause:
		g.togglePause()
	case core.IntentRestart:
		err = g.Start()
	case core.IntentModeToggle:
		g.ToggleMode()
	case core.IntentMapNext:
		err = g.CycleMap(1)
	case core.IntentMapPrev:
		err = g.CycleMap(-1)
	case core.IntentUsePowerUp:
		g.UsePowerUp()
	case core.IntentPowerUpNext:
		g.inventory.CycleNext()
	case core.IntentPowerUpPrev:
		g.inventory.CyclePrev()
	case core.IntentSpeedUp:
		g.changeSpeed(1)
	case core.IntentSpeedDown:
		g.changeSpeed(-1)
	case core.IntentResetProgress:
		g.ResetProgress()
	case core.IntentBackToStart:
		g.BackToStart()
	}

	g.publish()
	return g.result(), err
}

func (g *Game) togglePause() {
	switch g.state {
	case StatePlaying:
		g.state = StatePaused
	case StatePaused:
		g.state = StatePlaying
	}
}

// ToggleMode switches between classic and labyrinth on the start screen or
// while paused. A paused run keeps its walls until the next start.
func (g *Game) ToggleMode() {
	if g.state != StateStart && g.state != StatePaused {
		return
	}
	if g.mode == ModeClassic {
		g.mode = ModeLabyrinth
	} else {
		g.mode = ModeClassic
	}
	if g.state == StateStart {
		g.preview()
	}
	g.publish()
}

// CycleMap activates the next (step > 0) or previous layout and switches to
// labyrinth mode.
func (g *Game) CycleMap(step int) error {
	if g.state != StateStart && g.state != StatePaused {
		return nil
	}
	var err error
	if step >= 0 {
		_, err = g.registry.Next()
	} else {
		_, err = g.registry.Previous()
	}
	if err != nil {
		return fmt.Errorf("snake: cycle map: %w", err)
	}
	g.mode = ModeLabyrinth
	if g.state == StateStart {
		g.preview()
	}
	g.publish()
	return nil
}

// SelectMap activates the layout with the given id and switches to
// labyrinth mode.
func (g *Game) SelectMap(id string) error {
	if _, err := g.registry.Activate(id); err != nil {
		return fmt.Errorf("snake: select map: %w", err)
	}
	g.mode = ModeLabyrinth
	if g.state == StateStart {
		g.preview()
	}
	g.publish()
	return nil
}

// UsePowerUp applies the selected token. A selected Mulligan stays in the
// inventory; mulligans only trigger on a fatal collision.
func (g *Game) UsePowerUp() {
	if g.state != StatePlaying {
		return
	}
	kind, ok := g.inventory.Selected()
	if !ok || kind == PowerUpMulligan {
		return
	}
	g.inventory.UseSelected()
	switch kind {
	case PowerUpPhaseWalls:
		g.effects.ActivatePhase()
		g.emit(EventPhase, g.effects.PhaseMoves())
	}
	g.publish()
}

// ResetProgress clears level and xp and restores the speed table delay.
func (g *Game) ResetProgress() {
	if g.state == StatePlaying {
		return
	}
	g.ledger.Reset()
	g.saveProgress()
	g.delayMs = g.tableDelay(g.speedIdx)
	g.publish()
}

// BackToStart leaves a paused or finished run for the start screen.
func (g *Game) BackToStart() {
	if g.state != StatePaused && g.state != StateOver {
		return
	}
	g.state = StateStart
	g.preview()
	g.publish()
}

func (g *Game) tableDelay(idx int) int {
	table := g.cfg.Speed.TableMs
	if len(table) == 0 {
		return 100
	}
	return table[core.Clamp(idx, 0, len(table)-1)]
}

func (g *Game) resetSpeed() {
	g.speedIdx = core.Clamp(g.cfg.Speed.StartIndex, 0, max(0, len(g.cfg.Speed.TableMs)-1))
	g.delayMs = g.tableDelay(g.speedIdx)
}

// changeSpeed moves along the speed table. Speeding up keeps any faster delay
// earned from level-ups; slowing down takes the table value.
func (g *Game) changeSpeed(step int) bool {
	idx := core.Clamp(g.speedIdx+step, 0, max(0, len(g.cfg.Speed.TableMs)-1))
	if idx == g.speedIdx {
		return false
	}
	g.speedIdx = idx
	if step > 0 {
		g.delayMs = min(g.delayMs, g.tableDelay(idx))
	} else {
		g.delayMs = g.tableDelay(idx)
	}
	return true
}

func (g *Game) onLevelUp(level int) {
	if g.cfg.Speed.TickStepMs > 0 {
		g.delayMs = max(g.cfg.Speed.TickFloorMs, g.delayMs-g.cfg.Speed.TickStepMs)
	}
	g.emit(EventLevelUp, level)
	g.logger.Debug("level up", "level", level, "delay_ms", g.delayMs)
}

func (g *Game) awardXP(amount int) {
	if amount <= 0 {
		return
	}
	g.ledger.AddXP(amount)
	g.saveProgress()
}

func (g *Game) loadProgress() {
	if g.prefs == nil {
		return
	}
	level, errLevel := g.prefs.Int(KeyLevel, 1)
	xp, errXP := g.prefs.Int(KeyXP, 0)
	high, errHigh := g.prefs.Int(KeyHigh, 0)
	if err := errors.Join(errLevel, errXP, errHigh); err != nil {
		g.logger.Warn("failed to load progress", "err", err)
	}
	if !g.ledger.Restore(level, xp) {
		g.logger.Warn("progress normalization stopped early", "level", g.ledger.Level(), "xp", g.ledger.XP())
	}
	g.high = max(0, high)
}

func (g *Game) saveProgress() {
	if g.prefs == nil {
		return
	}
	err := errors.Join(
		g.prefs.SetInt(KeyLevel, g.ledger.Level()),
		g.prefs.SetInt(KeyXP, g.ledger.XP()),
	)
	if err != nil {
		g.logger.Warn("failed to save progress", "err", err)
	}
}

func (g *Game) endRun(cause Cause) {
	g.state = StateOver
	g.cause = cause
	g.emit(EventGameOver, g.score)
	g.logger.Debug("run over", "cause", cause, "score", g.score)

	if g.score <= g.high {
		return
	}
	g.high = g.score
	g.emit(EventNewHighScore, g.score)
	if g.prefs != nil {
		if err := g.prefs.SetInt(KeyHigh, g.high); err != nil {
			g.logger.Warn("failed to save high score", "err", err)
		}
	}
}

func (g *Game) emit(kind EventKind, value int) {
	g.events = append(g.events, Event{Kind: kind, Value: value})
}

func (g *Game) result() StepResult {
	var events []Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return StepResult{State: g.state, Score: g.score, Events: events}
}
