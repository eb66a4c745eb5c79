package snake

import (
	"testing"

	"github.com/vovakirdan/arcade-pulse/internal/config"
)

func TestXPRequired(t *testing.T) {
	l := NewLedger(config.XPConfig{Base: 100, Step: 20})
	tests := []struct {
		level, want int
	}{
		{0, 100},
		{1, 100},
		{2, 120},
		{5, 180},
	}
	for _, tc := range tests {
		if got := l.XPRequired(tc.level); got != tc.want {
			t.Errorf("XPRequired(%d) = %d, expected %d", tc.level, got, tc.want)
		}
	}
}

func TestAddXPCarriesSeveralLevels(t *testing.T) {
	l := NewLedger(config.XPConfig{Base: 100, Step: 20})
	var seen []int
	l.OnLevelUp = func(level int) { seen = append(seen, level) }

	gained := l.AddXP(100 + 120 + 140 + 5)
	if gained != 3 || l.Level() != 4 {
		t.Fatalf("gained %d, level %d; expected 3 and 4", gained, l.Level())
	}
	if l.XP() != 5 {
		t.Errorf("xp = %d, expected 5", l.XP())
	}
	if l.XP() >= l.Required() {
		t.Error("xp not below the requirement")
	}
	if len(seen) != 3 || seen[0] != 2 || seen[2] != 4 {
		t.Errorf("hook calls = %v", seen)
	}
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	l := NewLedger(config.XPConfig{Base: 100, Step: 20})
	l.AddXP(0)
	l.AddXP(-50)
	if l.Level() != 1 || l.XP() != 0 {
		t.Errorf("level %d xp %d after non-positive awards", l.Level(), l.XP())
	}
}

func TestRestoreNormalizes(t *testing.T) {
	l := NewLedger(config.XPConfig{Base: 100, Step: 20})
	called := false
	l.OnLevelUp = func(int) { called = true }

	if !l.Restore(1, 230) {
		t.Fatal("normalization did not converge")
	}
	if l.Level() != 3 || l.XP() != 10 {
		t.Errorf("restored level %d xp %d, expected 3 and 10", l.Level(), l.XP())
	}
	if called {
		t.Error("normalization fired the level up hook")
	}

	l.Restore(-4, -1)
	if l.Level() != 1 || l.XP() != 0 {
		t.Errorf("invalid values restored as %d/%d", l.Level(), l.XP())
	}
}

func TestNormalizeIsBounded(t *testing.T) {
	l := NewLedger(config.XPConfig{Base: 1, Step: 0})
	if l.Restore(1, maxNormalizeIterations*10) {
		t.Error("expected normalization to stop at its bound")
	}
	if l.Level() != 1+maxNormalizeIterations {
		t.Errorf("level = %d, expected %d", l.Level(), 1+maxNormalizeIterations)
	}
}
