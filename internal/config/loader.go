package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-pulse/internal/core"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.pulse/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Files only need to name the keys they override.
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("snake.yaml"), filepath.Join("configs", "snake.yaml")} {
		if path == "" {
			continue
		}
		if parsed, ok := tryLoad(path); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file; unreadable or invalid files are skipped.
func tryLoad(path string) (SnakeConfig, bool) {
	cfg := DefaultSnakeConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pulse", "configs", filename)
}

// Validate rejects settings the engine cannot run with.
func (c SnakeConfig) Validate() error {
	var errs []error
	if c.Board.Cols <= 0 || c.Board.Rows <= 0 {
		errs = append(errs, fmt.Errorf("board must be positive, got %dx%d", c.Board.Cols, c.Board.Rows))
	}
	if len(c.Speed.TableMs) == 0 {
		errs = append(errs, errors.New("speed.table_ms is empty"))
	} else if c.Speed.StartIndex < 0 || c.Speed.StartIndex >= len(c.Speed.TableMs) {
		errs = append(errs, fmt.Errorf("speed.start_index %d out of range", c.Speed.StartIndex))
	}
	for _, ms := range c.Speed.TableMs {
		if ms <= 0 {
			errs = append(errs, fmt.Errorf("speed.table_ms has non-positive delay %d", ms))
			break
		}
	}
	if c.Snake.InitialLength < 1 {
		errs = append(errs, errors.New("snake.initial_length must be at least 1"))
	}
	if c.Snake.InitialLength > c.Board.Cols*c.Board.Rows {
		errs = append(errs, errors.New("snake.initial_length exceeds board area"))
	}
	if c.XP.Base <= 0 || c.XP.Step < 0 {
		errs = append(errs, errors.New("xp.base must be positive and xp.step non-negative"))
	}
	if c.Multiplier.MaxTier < 1 || c.Multiplier.MeterFullMs <= 0 {
		errs = append(errs, errors.New("multiplier.max_tier and meter_full_ms must be positive"))
	}
	if c.PowerUps.Capacity < 0 {
		errs = append(errs, errors.New("powerups.capacity must not be negative"))
	}
	if !validChance(c.Scoring.BonusSpawnChance) || !validChance(c.PowerUps.DropChance) {
		errs = append(errs, errors.New("chances must be within [0, 1]"))
	}
	return errors.Join(errs...)
}

func validChance(p float64) bool {
	return p >= 0 && p <= 1
}

// Playfield returns the configured board.
func (c SnakeConfig) Playfield() core.Board {
	return core.Board{W: c.Board.Cols, H: c.Board.Rows, Wrap: c.Board.Wrap}
}
