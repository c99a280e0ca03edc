package cmath

import (
	"math"
	"testing"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// rampGrid fills a w x h grid with v(x,y) = base + y*w + x.
func rampGrid(w, h int, base float64) FloatGrid {
	g := NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, base+float64(y*w+x))
		}
	}
	return g
}

func TestShape(t *testing.T) {
	g := NewFloatGrid(7, 3)
	if g.Dx() != 7 || g.Dy() != 3 {
		t.Errorf("shape: got %dx%d, want 7x3", g.Dx(), g.Dy())
	}
	if len(g.Values()) != 21 {
		t.Errorf("values: got %d samples, want 21", len(g.Values()))
	}

	empty := FloatGrid{}
	if empty.Dx() != 0 || empty.Dy() != 0 {
		t.Errorf("zero grid: got %dx%d, want 0x0", empty.Dx(), empty.Dy())
	}
}

func TestCopyIsDetached(t *testing.T) {
	g1 := rampGrid(4, 4, 0)
	g2 := g1.Copy()
	g2.Set(0, 0, 999)

	if g1.Get(0, 0) != 0 {
		t.Errorf("mutating a copy changed the source: got %g, want 0", g1.Get(0, 0))
	}
}

func TestColRange(t *testing.T) {
	g := rampGrid(10, 2, 0)
	sub := g.ColRange(3, 7)

	if sub.Dx() != 4 || sub.Dy() != 2 {
		t.Fatalf("subgrid shape: got %dx%d, want 4x2", sub.Dx(), sub.Dy())
	}
	// column 3 of row 1 is 10+3
	if sub.Get(0, 1) != 13 {
		t.Errorf("subgrid value: got %g, want 13", sub.Get(0, 1))
	}
}

func TestGridOps(t *testing.T) {
	a := rampGrid(3, 3, 1)
	b := rampGrid(3, 3, 1)

	sum := a.Copy()
	sum.AddGrid(b)
	if !almostEqual(sum.Get(2, 2), 2*a.Get(2, 2), tolerance) {
		t.Errorf("AddGrid: got %g, want %g", sum.Get(2, 2), 2*a.Get(2, 2))
	}

	sum.SubGrid(b)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if !almostEqual(sum.Get(x, y), a.Get(x, y), tolerance) {
				t.Errorf("add-then-sub at (%d,%d): got %g, want %g", x, y, sum.Get(x, y), a.Get(x, y))
			}
		}
	}

	quot := a.Copy()
	quot.DivGrid(b)
	for _, v := range quot.Values() {
		if !almostEqual(v, 1.0, tolerance) {
			t.Errorf("DivGrid by self: got %g, want 1", v)
		}
	}
}

func TestScalarOps(t *testing.T) {
	g := rampGrid(2, 2, 0) // 0,1,2,3

	g.SubScalar(1)
	if g.Get(0, 0) != -1 || g.Get(1, 1) != 2 {
		t.Errorf("SubScalar: got %g,%g, want -1,2", g.Get(0, 0), g.Get(1, 1))
	}

	g.AddScalar(1)
	g.DivScalar(2)
	if !almostEqual(g.Get(1, 1), 1.5, tolerance) {
		t.Errorf("DivScalar: got %g, want 1.5", g.Get(1, 1))
	}
}

func TestMeanMinMax(t *testing.T) {
	g := rampGrid(5, 2, 0) // 0..9

	if !almostEqual(g.Mean(), 4.5, tolerance) {
		t.Errorf("Mean: got %g, want 4.5", g.Mean())
	}

	min, max := g.MinMax()
	if min != 0 || max != 9 {
		t.Errorf("MinMax: got %g,%g, want 0,9", min, max)
	}
}

func TestHasZero(t *testing.T) {
	g := rampGrid(3, 3, 1)
	if g.HasZero() {
		t.Errorf("HasZero on all-positive grid")
	}
	g.Set(1, 1, 0)
	if !g.HasZero() {
		t.Errorf("HasZero missed an exact zero")
	}
}

func TestCutsAtPercentile(t *testing.T) {
	g := rampGrid(10, 10, 0) // 0..99
	lo, hi := g.CutsAtPercentile(0.05, 0.95)

	if lo < 0 || lo > 10 {
		t.Errorf("low cut: got %g, want around 5", lo)
	}
	if hi < 90 || hi > 99 {
		t.Errorf("high cut: got %g, want around 95", hi)
	}
	if hi <= lo {
		t.Errorf("cuts out of order: %g >= %g", lo, hi)
	}
}

func TestApply(t *testing.T) {
	g := rampGrid(2, 2, 0)
	g.Apply(func(v float64) float64 { return v * v })
	if g.Get(1, 1) != 9 {
		t.Errorf("Apply: got %g, want 9", g.Get(1, 1))
	}
}
