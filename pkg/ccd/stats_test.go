package ccd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelStats(t *testing.T) {
	g := constGrid(4, 4, 10)
	g.Set(0, 0, 2)
	g.Set(3, 3, 18)

	ps := NewPixelStats(g)
	require.Equal(t, 2.0, ps.Min)
	require.Equal(t, 18.0, ps.Max)
	require.InDelta(t, 10.0, ps.Mean, 1e-12)
	require.Greater(t, ps.StdDev, 0.0)
}

func TestPixelStatsFlatFrame(t *testing.T) {
	// a perfectly uniform grid must not divide by a zero span
	ps := NewPixelStats(constGrid(4, 4, 7))
	require.Equal(t, ps.Min, ps.Max)
	require.Equal(t, 0.0, ps.StdDev)
}

func TestActiveStats(t *testing.T) {
	f := mustFrame(t, "s1", 1.1, 0)
	ps := f.ActiveStats()
	require.Equal(t, 2.0, ps.Min, "active region min is raw column 2")
	require.Contains(t, ps.String(), "mean=")
}
