package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-pulse/internal/core"
)

// Action is a front-end command that never reaches the engine.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSkinNext
	ActionSkinPrev
	ActionScores
	ActionHelp
	ActionScreenshot
)

// KeyMap binds keys to engine intents and front-end actions.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Start     key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Back      key.Binding
	Mode      key.Binding
	MapNext   key.Binding
	MapPrev   key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding

	UsePowerUp  key.Binding
	PowerUpNext key.Binding
	PowerUpPrev key.Binding

	ResetProgress key.Binding
	SkinNext      key.Binding
	SkinPrev      key.Binding
	Scores        key.Binding
	Help          key.Binding
	Screenshot    key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start/pause"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "start screen"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mode"),
		),
		MapNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next map"),
		),
		MapPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev map"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		UsePowerUp: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "use power-up"),
		),
		PowerUpNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next power-up"),
		),
		PowerUpPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev power-up"),
		),
		ResetProgress: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "reset progress"),
		),
		SkinNext: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next skin"),
		),
		SkinPrev: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "prev skin"),
		),
		Scores: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "scores"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Mode, k.UsePowerUp, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Start, k.Pause, k.Restart, k.Back},
		{k.Mode, k.MapNext, k.MapPrev, k.SpeedUp, k.SpeedDown},
		{k.UsePowerUp, k.PowerUpNext, k.PowerUpPrev},
		{k.SkinNext, k.SkinPrev, k.Scores, k.ResetProgress},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// Resolve translates a key press. At most one of the results is set.
func (k KeyMap) Resolve(msg tea.KeyMsg) (core.Intent, Action) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.IntentNone, ActionQuit
	case key.Matches(msg, k.Up):
		return core.IntentTurnUp, ActionNone
	case key.Matches(msg, k.Down):
		return core.IntentTurnDown, ActionNone
	case key.Matches(msg, k.Left):
		return core.IntentTurnLeft, ActionNone
	case key.Matches(msg, k.Right):
		return core.IntentTurnRight, ActionNone
	case key.Matches(msg, k.Start):
		return core.IntentStartOrPause, ActionNone
	case key.Matches(msg, k.Pause):
		return core.IntentPause, ActionNone
	case key.Matches(msg, k.Restart):
		return core.IntentRestart, ActionNone
	case key.Matches(msg, k.Back):
		return core.IntentBackToStart, ActionNone
	case key.Matches(msg, k.Mode):
		return core.IntentModeToggle, ActionNone
	case key.Matches(msg, k.MapNext):
		return core.IntentMapNext, ActionNone
	case key.Matches(msg, k.MapPrev):
		return core.IntentMapPrev, ActionNone
	case key.Matches(msg, k.SpeedUp):
		return core.IntentSpeedUp, ActionNone
	case key.Matches(msg, k.SpeedDown):
		return core.IntentSpeedDown, ActionNone
	case key.Matches(msg, k.UsePowerUp):
		return core.IntentUsePowerUp, ActionNone
	case key.Matches(msg, k.PowerUpNext):
		return core.IntentPowerUpNext, ActionNone
	case key.Matches(msg, k.PowerUpPrev):
		return core.IntentPowerUpPrev, ActionNone
	case key.Matches(msg, k.ResetProgress):
		return core.IntentResetProgress, ActionNone
	case key.Matches(msg, k.SkinNext):
		return core.IntentNone, ActionSkinNext
	case key.Matches(msg, k.SkinPrev):
		return core.IntentNone, ActionSkinPrev
	case key.Matches(msg, k.Scores):
		return core.IntentNone, ActionScores
	case key.Matches(msg, k.Help):
		return core.IntentNone, ActionHelp
	case key.Matches(msg, k.Screenshot):
		return core.IntentNone, ActionScreenshot
	}
	return core.IntentNone, ActionNone
}
