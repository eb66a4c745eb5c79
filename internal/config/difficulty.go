package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplySnakePreset modifies the speed progression based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	last := len(cfg.Speed.TableMs) - 1
	if last < 0 {
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Speed.StartIndex = 0
		cfg.Speed.ApplesPerStep = 8
	case DifficultyHard:
		cfg.Speed.StartIndex = min(last, cfg.Speed.StartIndex+1)
		cfg.Speed.ApplesPerStep = 3
		cfg.Scoring.BonusSpawnChance /= 2
	case DifficultyFixed:
		// Cadence never changes during a run
		cfg.Speed.ApplesPerStep = 0
		cfg.Speed.TickStepMs = 0
	}
}
