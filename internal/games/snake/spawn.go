package snake

import (
	"fmt"

	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/maps"
)

// run is a fully built playfield, committed to the game in one step.
type run struct {
	snake   []core.Point
	dir     core.Direction
	walls   *core.Grid
	pellets []core.Point
	foods   []core.Point
	mapID   string
	title   string
}

// buildRun prepares walls and the starting snake for the current mode
// without touching game state.
func (g *Game) buildRun(strict bool) (*run, error) {
	r := &run{dir: core.DirRight}
	spawn := g.board.Center()

	if g.mode == ModeLabyrinth {
		f := g.registry.Active()
		if f == nil {
			f = g.registry.EnsureActive()
		}
		if strict && !f.Exact(g.board) {
			return nil, fmt.Errorf("snake: layout %s is %dx%d on a %dx%d board: %w",
				f.ID, f.SourceW, f.SourceH, g.board.W, g.board.H, ErrSizeMismatch)
		}
		r.walls = f.Walls
		r.pellets = f.Pellet
		r.foods = f.Foods
		r.mapID = f.ID
		r.title = f.Title
		spawn = f.Spawn
		r.dir = maps.SafeHeading(f.Walls, g.board, spawn)
	} else {
		r.walls = core.NewGrid(g.board.W, g.board.H)
	}

	length := core.Clamp(g.cfg.Snake.InitialLength, 1, max(1, g.board.Cells()))
	back := r.dir.Opposite().Delta()
	p := spawn
	for i := 0; i < length; i++ {
		r.snake = append(r.snake, p)
		p = g.board.WrapPoint(p.Add(back))
	}
	return r, nil
}

func (g *Game) commitRun(r *run) {
	g.snake = r.snake
	g.dir = r.dir
	g.nextDir = r.dir
	g.walls = r.walls
	g.pellets = r.pellets
	g.mapID = r.mapID
	g.mapTitle = r.title
}

// preview lays out the start screen for the current mode.
func (g *Game) preview() {
	r, err := g.buildRun(false)
	if err != nil {
		g.logger.Warn("failed to build preview", "err", err)
		return
	}
	g.commitRun(r)
	g.hasApple = false
	g.bonusTicks = 0
	g.cause = CauseNone
}

// occupancy marks cells covered by the snake, skipping the first skip
// segments.
func (g *Game) occupancy(skip int) *core.Grid {
	occ := core.NewGrid(g.board.W, g.board.H)
	for i := skip; i < len(g.snake); i++ {
		occ.Set(g.snake[i], true)
	}
	return occ
}

func (g *Game) isFree(p core.Point, occ *core.Grid) bool {
	if !g.board.Contains(p) || g.walls.At(p) || occ.At(p) {
		return false
	}
	if g.hasApple && p == g.apple {
		return false
	}
	return g.bonusTicks == 0 || p != g.bonus
}

func (g *Game) freeCells(occ *core.Grid) []core.Point {
	var cells []core.Point
	for y := 0; y < g.board.H; y++ {
		for x := 0; x < g.board.W; x++ {
			p := core.Point{X: x, Y: y}
			if g.isFree(p, occ) {
				cells = append(cells, p)
			}
		}
	}
	return cells
}

// placeApple moves the apple to a free cell, preferring free hints.
// A full board leaves no apple.
func (g *Game) placeApple(hints []core.Point) {
	g.hasApple = false
	occ := g.occupancy(0)

	var free []core.Point
	for _, h := range hints {
		if g.isFree(h, occ) {
			free = append(free, h)
		}
	}
	if len(free) == 0 {
		free = g.freeCells(occ)
	}
	if len(free) == 0 {
		return
	}
	g.apple = free[g.rng.Intn(len(free))]
	g.hasApple = true
}

func (g *Game) maybeSpawnBonus() {
	if g.bonusTicks > 0 || g.rng.Float64() >= g.cfg.Scoring.BonusSpawnChance {
		return
	}
	free := g.freeCells(g.occupancy(0))
	if len(free) == 0 || g.cfg.Scoring.BonusLifeTicks <= 0 {
		return
	}
	g.bonus = free[g.rng.Intn(len(free))]
	g.bonusTicks = g.cfg.Scoring.BonusLifeTicks
	g.emit(EventBonusSpawned, g.cfg.Scoring.BonusPoints)
}

func (g *Game) maybeDropPowerUp() {
	if g.rng.Float64() >= g.cfg.PowerUps.DropChance {
		return
	}
	kind := PowerUp(g.rng.Intn(int(powerUpCount)))
	if g.inventory.Add(kind) {
		g.emit(EventPowerUp, int(kind))
		return
	}
	g.score += g.cfg.Scoring.OverflowPoints
	g.emit(EventOverflow, g.cfg.Scoring.OverflowPoints)
}

// nearestSafe scans square rings around origin, closest ring first, for an
// in-bounds cell that is neither wall nor body.
func (g *Game) nearestSafe(origin core.Point) (core.Point, bool) {
	occ := g.occupancy(1)
	maxR := max(g.board.W, g.board.H)
	for r := 1; r <= maxR; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if core.Abs(dx) != r && core.Abs(dy) != r {
					continue
				}
				p := core.Point{X: origin.X + dx, Y: origin.Y + dy}
				if !g.board.Contains(p) || g.walls.At(p) || occ.At(p) {
					continue
				}
				return p, true
			}
		}
	}
	return core.Point{}, false
}
