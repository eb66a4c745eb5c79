package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Cols: 30,
			Rows: 25,
			Wrap: true,
		},
		Speed: SpeedConfig{
			TableMs:       []int{130, 100, 75, 55},
			StartIndex:    1,
			TickFloorMs:   55,
			TickStepMs:    4,
			ApplesPerStep: 5,
		},
		Snake: BodyConfig{
			InitialLength: 4,
		},
		Scoring: ScoringConfig{
			ApplePoints:      10,
			BonusPoints:      40,
			BonusLifeTicks:   120,
			BonusSpawnChance: 0.35,
			OverflowPoints:   100,
		},
		XP: XPConfig{
			Apple: 10,
			Bonus: 30,
			Base:  100,
			Step:  20,
		},
		Multiplier: MultiplierConfig{
			MaxTier:       5,
			MeterFullMs:   4000,
			GainOnAppleMs: 1400,
			DecayPerSecMs: 1000,
			MaxElapsedMs:  250,
		},
		PowerUps: PowerUpConfig{
			Capacity:   5,
			PhaseMoves: 3,
			DropChance: 0.08,
		},
		Labyrinth: LabyrinthConfig{
			DefaultMap: "lab-01",
			StrictSize: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
