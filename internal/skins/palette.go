// Package skins provides the snake color palettes and tracks which of them
// the player has unlocked. The simulation never sees any of this.
package skins

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/arcade-pulse/internal/core"
)

// DefaultID is the skin that is always unlocked and selected after a reset.
const DefaultID = "main"

//go:embed data/palettes.yaml
var embeddedPalettes []byte

// Threshold unlocks a palette once score or level reaches its value.
// Zero fields never trigger.
type Threshold struct {
	Score int `yaml:"score"`
	Level int `yaml:"level"`
}

// Reached reports whether either threshold is met.
func (t Threshold) Reached(score, level int) bool {
	return (t.Score > 0 && score >= t.Score) || (t.Level > 0 && level >= t.Level)
}

// Palette is one skin: an accent, a head color and cycling body and apple
// bands.
type Palette struct {
	ID     string       `yaml:"id"`
	Label  string       `yaml:"label"`
	Accent core.Color   `yaml:"accent"`
	Head   core.Color   `yaml:"head"`
	Body   []core.Color `yaml:"body"`
	Apple  []core.Color `yaml:"apple"`
	Unlock *Threshold   `yaml:"unlock"`
}

// Gated reports whether the palette must be unlocked before use.
func (p Palette) Gated() bool {
	return p.Unlock != nil
}

// BodyColor returns the band for body segment idx.
func (p Palette) BodyColor(idx int) core.Color {
	if len(p.Body) == 0 {
		return p.Accent
	}
	return p.Body[core.Mod(idx, len(p.Body))]
}

// AppleColor returns the apple color for an animation frame.
func (p Palette) AppleColor(frame int) core.Color {
	if len(p.Apple) == 0 {
		return p.Accent
	}
	return p.Apple[core.Mod(frame, len(p.Apple))]
}

// Table is an ordered, read-only set of palettes.
type Table struct {
	order []string
	byID  map[string]Palette
}

type paletteFile struct {
	Palettes []Palette `yaml:"palettes"`
}

// ParseTable builds a table from YAML. The default palette must be present
// and ungated.
func ParseTable(data []byte) (*Table, error) {
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("skins: parse palettes: %w", err)
	}

	t := &Table{byID: make(map[string]Palette, len(f.Palettes))}
	var errs []error
	for _, p := range f.Palettes {
		switch {
		case p.ID == "":
			errs = append(errs, errors.New("skins: palette without id"))
			continue
		case len(p.Body) == 0:
			errs = append(errs, fmt.Errorf("skins: palette %s has no body colors", p.ID))
			continue
		}
		if _, dup := t.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("skins: duplicate palette %s", p.ID))
			continue
		}
		if p.Label == "" {
			p.Label = p.ID
		}
		t.order = append(t.order, p.ID)
		t.byID[p.ID] = p
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	def, ok := t.byID[DefaultID]
	if !ok || def.Gated() {
		return nil, fmt.Errorf("skins: palette %q missing or gated", DefaultID)
	}
	return t, nil
}

// DefaultTable returns the embedded palettes.
func DefaultTable() *Table {
	t, err := ParseTable(embeddedPalettes)
	if err != nil {
		panic(err)
	}
	return t
}

// IDs returns palette ids in table order.
func (t *Table) IDs() []string {
	return append([]string(nil), t.order...)
}

// Get returns the palette with the given id.
func (t *Table) Get(id string) (Palette, bool) {
	p, ok := t.byID[id]
	return p, ok
}

// Len returns the number of palettes.
func (t *Table) Len() int {
	return len(t.order)
}
