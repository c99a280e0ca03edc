package ccd

import(
	"fmt"

	"github.com/skypies/util/histogram"
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// PixelStats summarizes the sample distribution of one region array,
// for eyeballing whether a calibration looks sane.
type PixelStats struct {
	Min, Max float64
	Mean     float64
	StdDev   float64

	Hist histogram.Histogram
}

// NewPixelStats bins samples into a 256-bucket histogram spanning the
// observed range.
func NewPixelStats(g cmath.FloatGrid) PixelStats {
	min, max := g.MinMax()
	ps := PixelStats{
		Min:    min,
		Max:    max,
		Mean:   stat.Mean(g.Values(), nil),
		StdDev: stat.StdDev(g.Values(), nil),
		Hist:   histogram.Histogram{NumBuckets: 256, ValMin: 0, ValMax: 256},
	}

	span := max - min
	if span == 0.0 { span = 1.0 }
	for _, v := range g.Values() {
		ps.Hist.Add(histogram.ScalarVal(int(255.0 * (v - min) / span)))
	}

	return ps
}

func (ps PixelStats)String() string {
	return fmt.Sprintf("pixels[%.2f,%.2f] mean=%.3f stddev=%.3f %v",
		ps.Min, ps.Max, ps.Mean, ps.StdDev, ps.Hist)
}

// ActiveStats summarizes the frame's active region.
func (f *Frame)ActiveStats() PixelStats { return NewPixelStats(f.active) }
