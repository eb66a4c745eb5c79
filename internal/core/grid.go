package core

import "strings"

// Grid is a boolean occupancy map over a W x H area.
// A grid is filled by its builder and treated as read-only once it has been
// handed to the simulation.
type Grid struct {
	w, h  int
	cells []bool
}

// NewGrid allocates an empty grid.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{w: w, h: h, cells: make([]bool, w*h)}
}

// Width returns the grid width.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the grid height.
func (g *Grid) Height() int {
	return g.h
}

// At reports whether p is set. Out-of-range points read as empty.
func (g *Grid) At(p Point) bool {
	if g == nil || p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return false
	}
	return g.cells[p.Y*g.w+p.X]
}

// Set marks p. Out-of-range points are ignored.
func (g *Grid) Set(p Point, v bool) {
	if p.X < 0 || p.X >= g.w || p.Y < 0 || p.Y >= g.h {
		return
	}
	g.cells[p.Y*g.w+p.X] = v
}

// Count returns the number of set cells.
func (g *Grid) Count() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	c := &Grid{w: g.w, h: g.h, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String draws the grid with '#' for set cells and '.' otherwise.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.w*g.h + g.h)
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			if g.cells[y*g.w+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
