package skins

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-pulse/internal/core"
)

// Preference keys.
const (
	KeySelected     = "pulse.skin"
	keyUnlockPrefix = "pulse.skin."
)

// UnlockKey returns the preference key holding the unlock flag of id.
func UnlockKey(id string) string {
	return keyUnlockPrefix + id
}

// Store persists the selection and unlock flags.
type Store interface {
	Bool(key string, def bool) (bool, error)
	SetBool(key string, v bool) error
	String(key string, def string) (string, error)
	SetString(key string, v string) error
}

// Manager holds the selected skin and the unlocked set. A nil store keeps
// everything in memory.
type Manager struct {
	table    *Table
	store    Store
	logger   *log.Logger
	current  string
	unlocked map[string]bool
}

// NewManager loads selection and unlock flags from store.
func NewManager(table *Table, store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		table:    table,
		store:    store,
		logger:   logger,
		current:  DefaultID,
		unlocked: make(map[string]bool),
	}
	m.load()
	return m
}

func (m *Manager) load() {
	if m.store == nil {
		return
	}
	for _, id := range m.table.order {
		if !m.table.byID[id].Gated() {
			continue
		}
		ok, err := m.store.Bool(UnlockKey(id), false)
		if err != nil {
			m.logger.Warn("failed to read unlock flag", "skin", id, "err", err)
			continue
		}
		m.unlocked[id] = ok
	}

	sel, err := m.store.String(KeySelected, DefaultID)
	if err != nil {
		m.logger.Warn("failed to read selected skin", "err", err)
		return
	}
	// Unknown or locked selections fall back to the default
	if m.IsUnlocked(sel) {
		m.current = sel
	}
}

// Current returns the selected palette.
func (m *Manager) Current() Palette {
	p, _ := m.table.Get(m.current)
	return p
}

// IsUnlocked reports whether id exists and may be selected.
func (m *Manager) IsUnlocked(id string) bool {
	p, ok := m.table.Get(id)
	if !ok {
		return false
	}
	return !p.Gated() || m.unlocked[id]
}

// Label returns the display name of id, marking locked skins.
func (m *Manager) Label(id string) string {
	p, ok := m.table.Get(id)
	if !ok {
		return id
	}
	if !m.IsUnlocked(id) {
		return p.Label + " (locked)"
	}
	return p.Label
}

// Select switches to id. Locked or unknown skins are refused.
func (m *Manager) Select(id string) bool {
	if !m.IsUnlocked(id) {
		return false
	}
	m.current = id
	if m.store != nil {
		if err := m.store.SetString(KeySelected, id); err != nil {
			m.logger.Warn("failed to save selected skin", "err", err)
		}
	}
	return true
}

// Unlock marks id unlocked and reports whether it was newly unlocked.
func (m *Manager) Unlock(id string) bool {
	p, ok := m.table.Get(id)
	if !ok || !p.Gated() || m.unlocked[id] {
		return false
	}
	m.unlocked[id] = true
	if m.store != nil {
		if err := m.store.SetBool(UnlockKey(id), true); err != nil {
			m.logger.Warn("failed to save unlock", "skin", id, "err", err)
		}
	}
	m.logger.Info("skin unlocked", "skin", id)
	return true
}

// CheckUnlocks unlocks every gated palette whose threshold is reached and
// returns the newly unlocked ids in table order.
func (m *Manager) CheckUnlocks(score, level int) []string {
	var fresh []string
	for _, id := range m.table.order {
		p := m.table.byID[id]
		if p.Gated() && p.Unlock.Reached(score, level) && m.Unlock(id) {
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// Cycle selects the next (step > 0) or previous unlocked palette, wrapping.
func (m *Manager) Cycle(step int) Palette {
	if step == 0 {
		return m.Current()
	}
	dir := 1
	if step < 0 {
		dir = -1
	}

	n := len(m.table.order)
	idx := 0
	for i, id := range m.table.order {
		if id == m.current {
			idx = i
			break
		}
	}
	for k := 1; k <= n; k++ {
		id := m.table.order[core.Mod(idx+dir*k, n)]
		if m.IsUnlocked(id) {
			m.Select(id)
			break
		}
	}
	return m.Current()
}

// Reset relocks every gated palette and selects the default.
func (m *Manager) Reset() {
	for id, ok := range m.unlocked {
		if !ok {
			continue
		}
		m.unlocked[id] = false
		if m.store != nil {
			if err := m.store.SetBool(UnlockKey(id), false); err != nil {
				m.logger.Warn("failed to clear unlock", "skin", id, "err", err)
			}
		}
	}
	m.Select(DefaultID)
}

// Unlocked returns the ids that may be selected, in table order.
func (m *Manager) Unlocked() []string {
	var ids []string
	for _, id := range m.table.order {
		if m.IsUnlocked(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
