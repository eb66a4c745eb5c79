package snake

import "github.com/vovakirdan/arcade-pulse/internal/config"

// maxNormalizeIterations bounds the carry loop run on persisted progress.
const maxNormalizeIterations = 10000

// Ledger tracks experience and level. Level starts at 1 and xp always stays
// below the requirement of the current level.
type Ledger struct {
	base, step int
	level      int
	xp         int

	// OnLevelUp is called once per level gained, with the new level.
	OnLevelUp func(level int)
}

// NewLedger creates a ledger at level 1 with no xp.
func NewLedger(cfg config.XPConfig) *Ledger {
	return &Ledger{base: cfg.Base, step: cfg.Step, level: 1}
}

// Level returns the current level.
func (l *Ledger) Level() int {
	return l.level
}

// XP returns xp earned toward the next level.
func (l *Ledger) XP() int {
	return l.xp
}

// Required returns the xp needed to finish the current level.
func (l *Ledger) Required() int {
	return l.XPRequired(l.level)
}

// XPRequired returns BASE + max(0, level-1) * STEP.
func (l *Ledger) XPRequired(level int) int {
	return l.base + max(0, level-1)*l.step
}

// AddXP awards xp and carries any overflow into as many levels as it covers.
// Non-positive amounts are ignored. It returns the number of levels gained.
func (l *Ledger) AddXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	l.xp += amount

	gained := 0
	for {
		need := l.Required()
		if need <= 0 || l.xp < need {
			break
		}
		l.xp -= need
		l.level++
		gained++
		if l.OnLevelUp != nil {
			l.OnLevelUp(l.level)
		}
	}
	return gained
}

// Restore loads persisted values and normalizes them.
// It reports false if the carry loop hit its iteration bound.
func (l *Ledger) Restore(level, xp int) bool {
	l.level = max(1, level)
	l.xp = max(0, xp)
	return l.Normalize()
}

// Normalize carries stored xp into levels until xp is below the current
// requirement, without firing OnLevelUp. It gives up after
// maxNormalizeIterations passes and reports whether it converged.
func (l *Ledger) Normalize() bool {
	for i := 0; i < maxNormalizeIterations; i++ {
		need := l.Required()
		if need <= 0 || l.xp < need {
			return true
		}
		l.xp -= need
		l.level++
	}
	return l.xp < l.Required()
}

// Reset returns to level 1 with no xp.
func (l *Ledger) Reset() {
	l.level = 1
	l.xp = 0
}
