package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-pulse/internal/core"
	"github.com/vovakirdan/arcade-pulse/internal/games/snake"
	"github.com/vovakirdan/arcade-pulse/internal/skins"
)

// Board cells are two columns wide so they look square in a terminal.
const cellWidth = 2

// hudRows is the number of text rows below the board.
const hudRows = 4

const (
	meterWidth      = 10
	bonusBlinkTicks = 20
)

var (
	glyphWall   = [cellWidth]rune{'█', '█'}
	glyphPellet = [cellWidth]rune{' ', '·'}
	glyphApple  = [cellWidth]rune{'(', ')'}
	glyphBonus  = [cellWidth]rune{'<', '>'}
	glyphBody   = [cellWidth]rune{'█', '█'}
	glyphPhase  = [cellWidth]rune{'▒', '▒'}
)

// Painter converts screens to styled text. Styles are cached per color.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[core.Color]lipgloss.Style
}

// NewPainter creates a painter for r. A nil renderer uses the default one.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{renderer: r, styles: make(map[core.Color]lipgloss.Style)}
}

func (p *Painter) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := p.renderer.NewStyle()
	if c != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(c))
	}
	p.styles[c] = s
	return s
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(p.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// ScreenSize returns the screen dimensions needed to draw board.
func ScreenSize(b core.Board) (w, h int) {
	return b.W*cellWidth + 2, b.H + 2 + hudRows
}

// Frame describes one drawing of a snapshot.
type Frame struct {
	Snap    *snake.Snapshot
	Palette skins.Palette
	Count   int    // Animation counter
	Toast   string // Short notice under the HUD
}

// Draw renders a frame into a fresh screen.
func Draw(f Frame) *core.Screen {
	snap := f.Snap
	w, h := ScreenSize(snap.Board)
	s := core.NewScreen(w, h)

	drawBorder(s, snap.Board.W*cellWidth+2, snap.Board.H+2)

	for _, p := range snap.Pellets {
		drawCell(s, p, glyphPellet, core.ColorPellet)
	}
	if snap.Walls != nil {
		for y := range snap.Board.H {
			for x := range snap.Board.W {
				p := core.Point{X: x, Y: y}
				if snap.Walls.At(p) {
					drawCell(s, p, glyphWall, core.ColorWall)
				}
			}
		}
	}
	if snap.HasApple {
		drawCell(s, snap.Apple, glyphApple, f.Palette.AppleColor(f.Count))
	}
	if snap.BonusActive && (snap.BonusTicks > bonusBlinkTicks || f.Count%2 == 0) {
		drawCell(s, snap.Bonus, glyphBonus, core.ColorBonus)
	}

	body := glyphBody
	if snap.PhaseMoves > 0 {
		body = glyphPhase
	}
	for i := len(snap.Snake) - 1; i >= 1; i-- {
		drawCell(s, snap.Snake[i], body, f.Palette.BodyColor(i-1))
	}
	if len(snap.Snake) > 0 {
		drawCell(s, snap.Head(), body, f.Palette.Head)
	}

	drawHUD(s, snap, snap.Board.H+2, f.Palette)
	if f.Toast != "" {
		s.DrawText(1, snap.Board.H+2+hudRows-1, f.Toast, core.ColorBonus)
	}
	drawOverlay(s, snap)
	return s
}

func drawCell(s *core.Screen, p core.Point, g [cellWidth]rune, c core.Color) {
	x := 1 + p.X*cellWidth
	for i, r := range g {
		s.SetCell(x+i, 1+p.Y, r, c)
	}
}

func drawBorder(s *core.Screen, w, h int) {
	for x := 1; x < w-1; x++ {
		s.SetCell(x, 0, '─', core.ColorDim)
		s.SetCell(x, h-1, '─', core.ColorDim)
	}
	for y := 1; y < h-1; y++ {
		s.SetCell(0, y, '│', core.ColorDim)
		s.SetCell(w-1, y, '│', core.ColorDim)
	}
	s.SetCell(0, 0, '┌', core.ColorDim)
	s.SetCell(w-1, 0, '┐', core.ColorDim)
	s.SetCell(0, h-1, '└', core.ColorDim)
	s.SetCell(w-1, h-1, '┘', core.ColorDim)
}

func drawHUD(s *core.Screen, snap *snake.Snapshot, top int, pal skins.Palette) {
	s.DrawText(1, top, fmt.Sprintf("Score %d  High %d  x%d %s",
		snap.Score, snap.HighScore, snap.Tier, meterBar(snap.Meter, meterWidth)), pal.Accent)
	s.DrawText(1, top+1, fmt.Sprintf("Lv %d  XP %d/%d  Speed %d (%dms)",
		snap.Level, snap.XP, snap.XPNeeded, snap.SpeedIndex+1, snap.DelayMs), core.ColorHUD)

	line := modeLabel(snap)
	if inv := inventoryLabel(snap.Inventory, snap.Selected); inv != "" {
		line += "  Items " + inv
	}
	if snap.PhaseMoves > 0 {
		line += fmt.Sprintf("  Phase %d", snap.PhaseMoves)
	}
	s.DrawText(1, top+2, line, core.ColorHUD)
}

func drawOverlay(s *core.Screen, snap *snake.Snapshot) {
	var lines []string
	switch snap.State {
	case snake.StateStart:
		lines = []string{"P U L S E", modeLabel(snap), "enter to start"}
	case snake.StatePaused:
		lines = []string{"PAUSED", "enter to resume"}
	case snake.StateOver:
		lines = []string{"GAME OVER", causeLabel(snap.Cause), "enter to play again"}
	default:
		return
	}

	mid := 1 + snap.Board.H/2 - len(lines)/2
	for i, l := range lines {
		color := core.ColorHUD
		if i == 0 {
			color = core.ColorAlert
		}
		s.DrawTextCentered(mid+i, " "+l+" ", color)
	}
}

func meterBar(frac float64, width int) string {
	filled := core.Clamp(int(frac*float64(width)+0.5), 0, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func modeLabel(snap *snake.Snapshot) string {
	if snap.Mode != snake.ModeLabyrinth {
		return "Classic"
	}
	title := snap.MapTitle
	if title == "" {
		title = snap.MapID
	}
	return "Labyrinth: " + title
}

func inventoryLabel(items []snake.PowerUp, selected int) string {
	var sb strings.Builder
	for i, p := range items {
		if i == selected {
			sb.WriteString("[" + string(p.Glyph()) + "]")
			continue
		}
		sb.WriteString(" " + string(p.Glyph()) + " ")
	}
	return strings.TrimRight(sb.String(), " ")
}

func causeLabel(c snake.Cause) string {
	switch c {
	case snake.CauseBoundary:
		return "hit the edge"
	case snake.CauseWall:
		return "hit a wall"
	case snake.CauseSelf:
		return "bit yourself"
	}
	return ""
}
