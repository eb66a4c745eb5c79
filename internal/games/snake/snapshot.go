package snake

import "github.com/vovakirdan/arcade-pulse/internal/core"

// Snapshot is an immutable copy of everything a renderer or spectator needs.
// Walls is shared between snapshots and never modified.
type Snapshot struct {
	Tick  uint64
	State RunState
	Mode  Mode
	Cause Cause
	Board core.Board

	Snake []core.Point // Head first
	Dir   core.Direction

	Walls    *core.Grid
	Pellets  []core.Point
	MapID    string
	MapTitle string

	Apple       core.Point
	HasApple    bool
	Bonus       core.Point
	BonusActive bool
	BonusTicks  int

	Score       int
	HighScore   int
	ApplesEaten int
	DelayMs     int
	SpeedIndex  int

	Level    int
	XP       int
	XPNeeded int

	Tier  int
	Meter float64 // Multiplier meter in [0, 1]

	Inventory  []PowerUp
	Selected   int
	PhaseMoves int
}

// Head returns the head cell.
func (s *Snapshot) Head() core.Point {
	if len(s.Snake) == 0 {
		return core.Point{}
	}
	return s.Snake[0]
}

// Snapshot builds a fresh copy of the current state.
func (g *Game) Snapshot() *Snapshot {
	return &Snapshot{
		Tick:  g.tick,
		State: g.state,
		Mode:  g.mode,
		Cause: g.cause,
		Board: g.board,

		Snake: append([]core.Point(nil), g.snake...),
		Dir:   g.dir,

		Walls:    g.walls,
		Pellets:  append([]core.Point(nil), g.pellets...),
		MapID:    g.mapID,
		MapTitle: g.mapTitle,

		Apple:       g.apple,
		HasApple:    g.hasApple,
		Bonus:       g.bonus,
		BonusActive: g.bonusTicks > 0,
		BonusTicks:  g.bonusTicks,

		Score:       g.score,
		HighScore:   max(g.high, g.score),
		ApplesEaten: g.applesEaten,
		DelayMs:     g.delayMs,
		SpeedIndex:  g.speedIdx,

		Level:    g.ledger.Level(),
		XP:       g.ledger.XP(),
		XPNeeded: g.ledger.Required(),

		Tier:  g.multiplier.Tier(),
		Meter: g.multiplier.Fraction(),

		Inventory:  g.inventory.Items(),
		Selected:   g.inventory.SelectedIndex(),
		PhaseMoves: g.effects.PhaseMoves(),
	}
}

// Latest returns the most recently published snapshot. It is safe to call
// from any goroutine.
func (g *Game) Latest() *Snapshot {
	return g.latest.Load()
}

func (g *Game) publish() {
	g.latest.Store(g.Snapshot())
}
