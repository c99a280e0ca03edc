package ccd

import(
	"fmt"
	"math"
)

// A StretchFunc maps a sample already normalized into [0,1] onto a
// display value in [0,1]. `power` is only meaningful to the power-law
// family; the others ignore it.
type StretchFunc func(v, power float64) float64

func stretchFunc(mode string) (StretchFunc, error) {
	switch mode {
	case "", "linear":
		return func(v, _ float64) float64 { return v }, nil
	case "sqrt":
		return func(v, _ float64) float64 { return math.Sqrt(v) }, nil
	case "log":
		// log10(1+9v) runs 0->1 over the input range
		return func(v, _ float64) float64 { return math.Log10(1.0 + 9.0*v) }, nil
	case "power":
		return func(v, power float64) float64 { return math.Pow(v, power) }, nil
	default:
		return nil, fmt.Errorf("no rescale mode named '%s'", mode)
	}
}

// Rescale recomputes the active region from the original snapshot,
// stretching [minCut,maxCut] onto [0,1] through the named transfer
// curve. It is purely a presentation transform: prescan, postscan and
// provenance are untouched, and because it always starts from the
// original snapshot, sequential calls never compound.
func (f *Frame)Rescale(mode string, power, minCut, maxCut float64) error {
	stretch, err := stretchFunc(mode)
	if err != nil {
		return err
	}
	if maxCut <= minCut {
		return fmt.Errorf("rescale cuts out of order (min=%g max=%g)", minCut, maxCut)
	}

	span := maxCut - minCut
	out := f.original.Copy()
	out.Apply(func(v float64) float64 {
		v = (v - minCut) / span
		if v < 0.0 { v = 0.0 }
		if v > 1.0 { v = 1.0 }
		return stretch(v, power)
	})
	f.active = out

	return nil
}

// AutoCuts picks rescale cut levels from the original snapshot's
// sample distribution, clipping the given fraction at each end
// (e.g. 0.01 clips 1% of samples at both extremes).
func (f *Frame)AutoCuts(clip float64) (float64, float64) {
	return f.original.CutsAtPercentile(clip, 1.0-clip)
}
