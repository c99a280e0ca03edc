package ccd

import (
	"testing"
)

func TestNoOpFilter(t *testing.T) {
	g := constGrid(6, 6, 50)
	g.Set(3, 3, 50000) // a cosmic ray the filter must leave alone

	out := NoOpFilter{}.Filter(g)

	if !out.SameShape(g) {
		t.Fatalf("shape changed: got %dx%d, want %dx%d", out.Dx(), out.Dy(), g.Dx(), g.Dy())
	}
	if out.Get(3, 3) != 50000 {
		t.Errorf("noop altered a sample: got %g, want 50000", out.Get(3, 3))
	}

	out.Set(0, 0, -1)
	if g.Get(0, 0) != 50 {
		t.Errorf("filter output aliases its input")
	}
}

func TestSigmaClipFilterReplacesSpike(t *testing.T) {
	g := constGrid(8, 8, 100)
	g.Set(4, 4, 100000)

	out := SigmaClipFilter{Sigma: 5.0}.Filter(g)

	if !out.SameShape(g) {
		t.Fatalf("shape changed: got %dx%d, want %dx%d", out.Dx(), out.Dy(), g.Dx(), g.Dy())
	}
	if out.Get(4, 4) != 100.0 {
		t.Errorf("spike not replaced by neighbour median: got %g, want 100", out.Get(4, 4))
	}
	if out.Get(0, 0) != 100.0 {
		t.Errorf("quiet sample altered: got %g, want 100", out.Get(0, 0))
	}
	if g.Get(4, 4) != 100000 {
		t.Errorf("input was mutated: got %g, want 100000", g.Get(4, 4))
	}
}

func TestSigmaClipFilterQuietFrame(t *testing.T) {
	// A flat frame has stddev 0, so nothing exceeds mean + sigma*0...
	// except that every sample is equal to the threshold boundary.
	// Nothing should be touched.
	g := constGrid(4, 4, 42)
	out := SigmaClipFilter{Sigma: 3.0}.Filter(g)

	for _, v := range out.Values() {
		if v != 42.0 {
			t.Fatalf("quiet frame altered: got %g, want 42", v)
		}
	}
}
