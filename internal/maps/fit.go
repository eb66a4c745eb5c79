package maps

import "github.com/vovakirdan/arcade-pulse/internal/core"

// Fitted is a layout resampled onto the live board.
// The wall grid is fully built before a Fitted value is published and must
// not be modified afterwards.
type Fitted struct {
	ID     string
	Title  string
	Walls  *core.Grid
	Spawn  core.Point
	Foods  []core.Point
	Pellet []core.Point

	SourceW, SourceH int // Authored size of the layout
}

// Exact reports whether the layout was authored at the board size.
func (f *Fitted) Exact(b core.Board) bool {
	return f.SourceW == b.W && f.SourceH == b.H
}

// Offset returns the translation applied to authored cells when centering a
// w x h layout on the board. Negative offsets crop.
func Offset(b core.Board, w, h int) core.Point {
	return core.Point{X: (b.W - w) / 2, Y: (b.H - h) / 2}
}

// Fit centers l on the board, cropping or padding with open floor.
// Hints that fall outside the board after the shift are dropped; a spawn that
// lands outside or on a wall is replaced by the fallback search.
func Fit(l *Layout, b core.Board) *Fitted {
	off := Offset(b, l.W, l.H)
	walls := core.NewGrid(b.W, b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			src := core.Point{X: x - off.X, Y: y - off.Y}
			if l.IsWall(src) {
				walls.Set(core.Point{X: x, Y: y}, true)
			}
		}
	}

	f := &Fitted{
		ID:      l.ID,
		Title:   l.Title,
		Walls:   walls,
		SourceW: l.W,
		SourceH: l.H,
		Foods:   shiftAll(l.Foods, off, b, walls),
		Pellet:  shiftAll(l.Pellet, off, b, walls),
	}

	spawn := l.Spawn.Add(off)
	if !b.Contains(spawn) || walls.At(spawn) {
		spawn = fallbackSpawn(walls.At, b.W, b.H)
	}
	f.Spawn = spawn
	return f
}

func shiftAll(pts []core.Point, off core.Point, b core.Board, walls *core.Grid) []core.Point {
	var out []core.Point
	for _, p := range pts {
		q := p.Add(off)
		if b.Contains(q) && !walls.At(q) {
			out = append(out, q)
		}
	}
	return out
}

// SafeHeading picks an initial direction from spawn by probing the four
// neighbors in the order right, left, down, up. On a wrapping board the probe
// wraps; otherwise off-board neighbors count as blocked. If every neighbor is
// blocked it returns right.
func SafeHeading(walls *core.Grid, b core.Board, spawn core.Point) core.Direction {
	for _, d := range core.Directions {
		n := spawn.Add(d.Delta())
		if b.Wrap {
			n = b.WrapPoint(n)
		} else if !b.Contains(n) {
			continue
		}
		if !walls.At(n) {
			return d
		}
	}
	return core.DirRight
}

// Arena builds a bordered open layout of the given size.
func Arena(id string, w, h int) *Layout {
	l := &Layout{ID: id, Title: "Generated arena", W: w, H: h, walls: core.NewGrid(w, h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				l.walls.Set(core.Point{X: x, Y: y}, true)
			}
		}
	}
	l.Spawn = fallbackSpawn(l.walls.At, w, h)
	return l
}
