// Package spectate streams published game snapshots to websocket clients.
// Spectators are read-only: nothing they send reaches a game.
package spectate

import (
	"strings"

	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
)

// Message types sent to clients.
const (
	TypeGames  = "games"
	TypeState  = "state"
	TypeClosed = "closed"
	TypeError  = "error"
)

// ServerMessage is the envelope of everything written to a socket.
type ServerMessage struct {
	Type  string     `json:"type"`
	Games []GameInfo `json:"games,omitempty"`
	State *State     `json:"state,omitempty"`
	Error string     `json:"error,omitempty"`
}

// Cell is an [x, y] pair.
type Cell [2]int

// State is the JSON form of a snapshot. Walls are rows of '#' and '.'.
type State struct {
	Tick  uint64 `json:"tick"`
	State string `json:"state"`
	Mode  string `json:"mode"`
	Cause string `json:"cause,omitempty"`

	Width  int  `json:"width"`
	Height int  `json:"height"`
	Wrap   bool `json:"wrap"`

	Snake   []Cell   `json:"snake"`
	Dir     string   `json:"dir"`
	Walls   []string `json:"walls,omitempty"`
	Pellets []Cell   `json:"pellets,omitempty"`
	MapID   string   `json:"map_id,omitempty"`
	Title   string   `json:"map_title,omitempty"`

	Apple      *Cell `json:"apple,omitempty"`
	Bonus      *Cell `json:"bonus,omitempty"`
	BonusTicks int   `json:"bonus_ticks,omitempty"`

	Score     int `json:"score"`
	HighScore int `json:"high_score"`
	Apples    int `json:"apples"`
	DelayMs   int `json:"delay_ms"`

	Level    int `json:"level"`
	XP       int `json:"xp"`
	XPNeeded int `json:"xp_needed"`

	Tier  int     `json:"tier"`
	Meter float64 `json:"meter"`

	Inventory  []string `json:"inventory,omitempty"`
	Selected   int      `json:"selected"`
	PhaseMoves int      `json:"phase_moves,omitempty"`
}

func cell(p core.Point) Cell {
	return Cell{p.X, p.Y}
}

func cells(pts []core.Point) []Cell {
	out := make([]Cell, len(pts))
	for i, p := range pts {
		out[i] = cell(p)
	}
	return out
}

// wallRows flattens a wall grid. A grid without walls yields nil.
func wallRows(g *core.Grid) []string {
	if g == nil || g.Count() == 0 {
		return nil
	}
	rows := make([]string, g.Height())
	var sb strings.Builder
	for y := range g.Height() {
		sb.Reset()
		for x := range g.Width() {
			if g.At(core.Point{X: x, Y: y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// NewState converts a snapshot to its wire form.
func NewState(s *snake.Snapshot) *State {
	st := &State{
		Tick:  s.Tick,
		State: string(s.State),
		Mode:  string(s.Mode),
		Cause: string(s.Cause),

		Width:  s.Board.W,
		Height: s.Board.H,
		Wrap:   s.Board.Wrap,

		Snake:   cells(s.Snake),
		Dir:     s.Dir.String(),
		Walls:   wallRows(s.Walls),
		Pellets: cells(s.Pellets),
		MapID:   s.MapID,
		Title:   s.MapTitle,

		Score:     s.Score,
		HighScore: s.HighScore,
		Apples:    s.ApplesEaten,
		DelayMs:   s.DelayMs,

		Level:    s.Level,
		XP:       s.XP,
		XPNeeded: s.XPNeeded,

		Tier:  s.Tier,
		Meter: s.Meter,

		Selected:   s.Selected,
		PhaseMoves: s.PhaseMoves,
	}
	if s.HasApple {
		c := cell(s.Apple)
		st.Apple = &c
	}
	if s.BonusActive {
		c := cell(s.Bonus)
		st.Bonus = &c
		st.BonusTicks = s.BonusTicks
	}
	for _, p := range s.Inventory {
		st.Inventory = append(st.Inventory, p.String())
	}
	return st
}
