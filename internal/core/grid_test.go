package core

import "testing"

func TestGridSetAt(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(Point{2, 1}, true)
	g.Set(Point{5, 5}, true) // ignored

	if !g.At(Point{2, 1}) {
		t.Error("At(2,1) = false after Set")
	}
	if g.At(Point{5, 5}) {
		t.Error("out of range point reads as set")
	}
	if g.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", g.Count())
	}
	if got := g.String(); got != "...\n..#" {
		t.Errorf("String() = %q", got)
	}
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 2)
	g.Set(Point{0, 0}, true)
	c := g.Clone()

	if !c.Equal(g) {
		t.Fatal("clone differs from source")
	}
	c.Set(Point{1, 1}, true)
	if g.At(Point{1, 1}) {
		t.Error("mutating clone changed source")
	}
	if c.Equal(g) {
		t.Error("Equal() = true after divergence")
	}
}

func TestNilGrid(t *testing.T) {
	var g *Grid
	if g.At(Point{0, 0}) {
		t.Error("nil grid reports a wall")
	}
	if g.Count() != 0 {
		t.Error("nil grid has cells")
	}
	if !g.Equal(nil) {
		t.Error("nil grids should be equal")
	}
}
