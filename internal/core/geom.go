// Package core provides the value types shared by the simulation, the map
// loader and the terminal front end. It has no external dependencies so the
// game logic stays pure and testable.
package core

// Point is a cell coordinate on the board.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is one of the four cardinal headings.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Directions lists the headings in the order used for safe-heading probes.
var Directions = [4]Direction{DirRight, DirLeft, DirDown, DirUp}

// Delta returns the unit step for the direction.
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// IsOpposite reports whether d and other point in reverse directions.
func (d Direction) IsOpposite(other Direction) bool {
	return d.Opposite() == other
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Board holds the live playfield dimensions and the edge policy.
type Board struct {
	W, H int
	Wrap bool
}

// Valid reports whether both dimensions are positive.
func (b Board) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Cells returns the number of cells on the board.
func (b Board) Cells() int {
	return b.W * b.H
}

// Contains returns true if p lies in [0,W)x[0,H).
func (b Board) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= 0 && p.Y < b.H
}

// WrapPoint folds p back onto the board modulo its dimensions.
func (b Board) WrapPoint(p Point) Point {
	return Point{X: Mod(p.X, b.W), Y: Mod(p.Y, b.H)}
}

// Center returns the middle cell of the board.
func (b Board) Center() Point {
	return Point{X: b.W / 2, Y: b.H / 2}
}

// Mod is a modulo that is never negative for positive n.
func Mod(v, n int) int {
	if n <= 0 {
		return 0
	}
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
