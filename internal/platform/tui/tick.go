// Package tui drives the snake engine from a Bubble Tea program, locally or
// over SSH. It owns the wall clock, key bindings and rendering; the engine
// only sees intents and elapsed milliseconds.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when the current step delay has elapsed.
type TickMsg time.Time

// tickCmd schedules the next simulation step after delay.
func tickCmd(delay time.Duration) tea.Cmd {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// elapsedMs returns the milliseconds between two ticks. The first tick of a
// program has no predecessor and reports fallback.
func elapsedMs(prev, now time.Time, fallback time.Duration) int {
	if prev.IsZero() || now.Before(prev) {
		return int(fallback / time.Millisecond)
	}
	return int(now.Sub(prev) / time.Millisecond)
}
