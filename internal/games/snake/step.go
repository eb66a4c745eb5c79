package snake

import "github.com/vovakirdan/arcade-pulse/internal/core"

// Tick advances the run by one movement step. dtMs is the real time since
// the previous tick and only drives the multiplier decay. Outside Playing it
// does nothing.
func (g *Game) Tick(dtMs int) StepResult {
	g.events = g.events[:0]
	if g.state != StatePlaying || len(g.snake) == 0 {
		return g.result()
	}

	g.tick++
	g.multiplier.Elapsed(dtMs)
	g.step()
	g.publish()
	return g.result()
}

func (g *Game) step() {
	prev := g.snake[0]
	vacated := g.snake[len(g.snake)-1]

	g.dir = g.nextDir
	copy(g.snake[1:], g.snake[:len(g.snake)-1])
	head := prev.Add(g.dir.Delta())
	if g.board.Wrap {
		head = g.board.WrapPoint(head)
	}
	g.snake[0] = head

	if cause := g.collision(head); cause != CauseNone {
		if !g.tryMulligan(prev) {
			g.endRun(cause)
			return
		}
		g.displacePickups()
	} else {
		g.pickups(vacated)
	}

	// Second pass after growth and teleports
	if cause := g.collision(g.snake[0]); cause != CauseNone {
		g.endRun(cause)
		return
	}
	g.effects.OnSuccessfulMove()
}

// collision classifies what the head hit, if anything.
func (g *Game) collision(head core.Point) Cause {
	if !g.board.Contains(head) {
		return CauseBoundary
	}
	if g.cfg.Debug.Invincible {
		return CauseNone
	}
	if g.walls.At(head) && !g.effects.PhaseActive() {
		return CauseWall
	}
	for _, p := range g.snake[1:] {
		if p == head {
			return CauseSelf
		}
	}
	return CauseNone
}

// tryMulligan spends a Mulligan to move the head to the nearest safe cell
// around prev. The token is only removed when a cell is found.
func (g *Game) tryMulligan(prev core.Point) bool {
	if g.inventory.Count(PowerUpMulligan) == 0 {
		return false
	}
	safe, ok := g.nearestSafe(prev)
	if !ok {
		return false
	}
	g.inventory.ConsumeFirst(PowerUpMulligan)
	g.snake[0] = safe
	g.emit(EventMulligan, 0)
	g.logger.Debug("mulligan used", "from", prev, "to", safe)
	return true
}

// pickups resolves the apple then the bonus at the head. Growth appends the
// cell the tail just left.
func (g *Game) pickups(vacated core.Point) {
	head := g.snake[0]

	ateApple := g.hasApple && head == g.apple
	if ateApple {
		g.eatApple(vacated)
	}

	if g.bonusTicks > 0 {
		if head == g.bonus {
			g.bonusTicks = 0
			g.score += g.cfg.Scoring.BonusPoints
			g.awardXP(g.cfg.XP.Bonus)
			g.grow(2, vacated)
			g.emit(EventBonusEaten, g.cfg.Scoring.BonusPoints)
		} else {
			g.ageBonus()
		}
	}

	if ateApple {
		g.maybeSpawnBonus()
		g.maybeDropPowerUp()
	}
}

// displacePickups runs instead of pickups after a mulligan teleport, which
// never grows the snake. A pickup under the new head is moved or dropped.
func (g *Game) displacePickups() {
	head := g.snake[0]
	if g.hasApple && head == g.apple {
		g.placeApple(nil)
	}
	if g.bonusTicks > 0 {
		if head == g.bonus {
			g.bonusTicks = 0
			g.emit(EventBonusExpired, 0)
		} else {
			g.ageBonus()
		}
	}
}

func (g *Game) ageBonus() {
	g.bonusTicks--
	if g.bonusTicks == 0 {
		g.emit(EventBonusExpired, 0)
	}
}

// eatApple grants the base apple score. The multiplier tier is a streak
// display and does not scale points.
func (g *Game) eatApple(vacated core.Point) {
	points := g.cfg.Scoring.ApplePoints
	g.score += points
	g.awardXP(g.cfg.XP.Apple)
	g.multiplier.OnApple()
	g.grow(1, vacated)
	g.applesEaten++
	g.emit(EventAppleEaten, points)
	g.placeApple(nil)

	every := g.cfg.Speed.ApplesPerStep
	if every > 0 && g.applesEaten%every == 0 && g.changeSpeed(1) {
		g.emit(EventSpeedUp, g.speedIdx)
	}
}

func (g *Game) grow(n int, tail core.Point) {
	for i := 0; i < n && len(g.snake) < g.board.Cells(); i++ {
		g.snake = append(g.snake, tail)
	}
}
