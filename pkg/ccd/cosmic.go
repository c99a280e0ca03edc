package ccd

import(
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// A CosmicRayFilter suppresses anomalously high samples (cosmic ray
// hits read out as isolated bright pixels). Implementations return a
// grid of identical shape and never modify the input.
type CosmicRayFilter interface {
	Filter(g cmath.FloatGrid) cmath.FloatGrid
}

// NoOpFilter leaves the frame alone.
type NoOpFilter struct{}

func (f NoOpFilter)Filter(g cmath.FloatGrid) cmath.FloatGrid { return g.Copy() }

// SigmaClipFilter replaces any sample more than Sigma standard
// deviations above the frame mean with the median of its neighbours.
// A real cosmic ray is a few pixels wide at most, so the local median
// is a decent estimate of what the sky put there.
type SigmaClipFilter struct {
	Sigma float64
}

func (f SigmaClipFilter)Filter(g cmath.FloatGrid) cmath.FloatGrid {
	out := g.Copy()

	mean := stat.Mean(g.Values(), nil)
	sd := stat.StdDev(g.Values(), nil)
	threshold := mean + f.Sigma*sd

	for y:=0; y<g.Dy(); y++ {
		for x:=0; x<g.Dx(); x++ {
			if g.Get(x, y) > threshold {
				out.Set(x, y, neighbourMedian(g, x, y))
			}
		}
	}

	return out
}

func neighbourMedian(g cmath.FloatGrid, x, y int) float64 {
	vals := []float64{}
	for dy:=-1; dy<=1; dy++ {
		for dx:=-1; dx<=1; dx++ {
			if dx == 0 && dy == 0 { continue }
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= g.Dx() || ny < 0 || ny >= g.Dy() { continue }
			vals = append(vals, g.Get(nx, ny))
		}
	}
	if len(vals) == 0 {
		return g.Get(x, y) // 1x1 grid, nothing to estimate from
	}

	sort.Float64s(vals)
	if len(vals) % 2 == 1 {
		return vals[len(vals)/2]
	}
	return (vals[len(vals)/2-1] + vals[len(vals)/2]) / 2.0
}
