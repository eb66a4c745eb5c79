// Package config provides YAML-based configuration loading for the snake
// engine and its front ends.
package config

// SnakeConfig contains every tunable of the simulation.
type SnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Speed      SpeedConfig      `yaml:"speed"`
	Snake      BodyConfig       `yaml:"snake"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	XP         XPConfig         `yaml:"xp"`
	Multiplier MultiplierConfig `yaml:"multiplier"`
	PowerUps   PowerUpConfig    `yaml:"powerups"`
	Labyrinth  LabyrinthConfig  `yaml:"labyrinth"`
	Debug      DebugConfig      `yaml:"debug"`
}

// BoardConfig defines the live playfield.
type BoardConfig struct {
	Cols int  `yaml:"cols"`
	Rows int  `yaml:"rows"`
	Wrap bool `yaml:"wrap"` // Edges wrap around instead of killing
}

// SpeedConfig defines the movement cadence.
type SpeedConfig struct {
	TableMs       []int `yaml:"table_ms"`        // Step delays, slowest first
	StartIndex    int   `yaml:"start_index"`     // Initial entry of TableMs
	TickFloorMs   int   `yaml:"tick_floor_ms"`   // Level-ups never go below this delay
	TickStepMs    int   `yaml:"tick_step_ms"`    // Delay removed per level-up
	ApplesPerStep int   `yaml:"apples_per_step"` // Apples between speed table steps; 0 disables
}

// BodyConfig defines the starting snake.
type BodyConfig struct {
	InitialLength int `yaml:"initial_length"`
}

// ScoringConfig defines pickup rewards.
type ScoringConfig struct {
	ApplePoints      int     `yaml:"apple_points"`
	BonusPoints      int     `yaml:"bonus_points"`
	BonusLifeTicks   int     `yaml:"bonus_life_ticks"`
	BonusSpawnChance float64 `yaml:"bonus_spawn_chance"`
	OverflowPoints   int     `yaml:"overflow_points"` // Paid when a power-up does not fit the inventory
}

// XPConfig defines experience awards and the level curve.
type XPConfig struct {
	Apple int `yaml:"apple"`
	Bonus int `yaml:"bonus"`
	Base  int `yaml:"base"` // Requirement for level 1
	Step  int `yaml:"step"` // Added per level after the first
}

// MultiplierConfig defines the streak meter.
type MultiplierConfig struct {
	MaxTier       int `yaml:"max_tier"`
	MeterFullMs   int `yaml:"meter_full_ms"`
	GainOnAppleMs int `yaml:"gain_on_apple_ms"`
	DecayPerSecMs int `yaml:"decay_per_sec_ms"` // Meter drained per real second
	MaxElapsedMs  int `yaml:"max_elapsed_ms"`   // Cap on a single decay step
}

// PowerUpConfig defines the inventory and timed effects.
type PowerUpConfig struct {
	Capacity   int     `yaml:"capacity"`
	PhaseMoves int     `yaml:"phase_moves"`
	DropChance float64 `yaml:"drop_chance"` // Chance per apple to receive a token
}

// LabyrinthConfig defines how maze levels are found and applied.
type LabyrinthConfig struct {
	DefaultMap string `yaml:"default_map"`
	StrictSize bool   `yaml:"strict_size"` // Refuse layouts whose size differs from the board
	MapsDir    string `yaml:"maps_dir"`    // Extra *.txt levels on disk
}

// DebugConfig holds developer switches.
type DebugConfig struct {
	Invincible bool `yaml:"invincible"` // Ignore wall and self collisions
}
