package cmath

import(
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// A FloatGrid is a grid of float64 samples, with some operations. The
// x axis runs along detector columns and the y axis along rows, so
// Dx() is the width in columns and Dy() the height in rows.
type FloatGrid struct {
	stride int
	values []float64
}

func NewFloatGrid(w, h int) FloatGrid {
	return FloatGrid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g1 FloatGrid)NewFromThis() FloatGrid   { return NewFloatGrid(g1.Dx(), g1.Dy()) }
func (fg *FloatGrid)Set(x, y int, v float64) { fg.values[fg.stride*y + x] = v }
func (fg FloatGrid)Get(x, y int) float64     { return fg.values[fg.stride*y + x] }
func (fg FloatGrid)Dx() int                  { return fg.stride }
func (fg FloatGrid)Dy() int                  {
	if fg.stride == 0 { return 0 }
	return len(fg.values) / fg.stride
}

func (g1 FloatGrid)Copy() FloatGrid {
	g2 := FloatGrid{stride: g1.stride, values:make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return g2
}

func (g1 FloatGrid)SameShape(g2 FloatGrid) bool {
	return g1.Dx() == g2.Dx() && g1.Dy() == g2.Dy()
}

// ColRange returns a new grid holding columns [x0,x1) of g1.
func (g1 FloatGrid)ColRange(x0, x1 int) FloatGrid {
	g2 := NewFloatGrid(x1-x0, g1.Dy())
	for y:=0; y<g1.Dy(); y++ {
		for x:=x0; x<x1; x++ {
			g2.Set(x-x0, y, g1.Get(x, y))
		}
	}
	return g2
}

// The element-wise operators assume both grids have the same shape;
// callers validate shapes before getting here.

func (g1 *FloatGrid)AddGrid(g2 FloatGrid) {
	for i:=0; i<len(g1.values); i++ { g1.values[i] += g2.values[i] }
}

func (g1 *FloatGrid)SubGrid(g2 FloatGrid) {
	for i:=0; i<len(g1.values); i++ { g1.values[i] -= g2.values[i] }
}

func (g1 *FloatGrid)DivGrid(g2 FloatGrid) {
	for i:=0; i<len(g1.values); i++ { g1.values[i] /= g2.values[i] }
}

func (fg *FloatGrid)AddScalar(v float64) {
	for i:=0; i<len(fg.values); i++ { fg.values[i] += v }
}

func (fg *FloatGrid)SubScalar(v float64) {
	for i:=0; i<len(fg.values); i++ { fg.values[i] -= v }
}

func (fg *FloatGrid)DivScalar(v float64) {
	for i:=0; i<len(fg.values); i++ { fg.values[i] /= v }
}

// HasZero reports whether any sample is exactly zero.
func (fg FloatGrid)HasZero() bool {
	for i:=0; i<len(fg.values); i++ {
		if fg.values[i] == 0.0 { return true }
	}
	return false
}

// Apply overwrites every sample with f(sample).
func (fg *FloatGrid)Apply(f func(float64) float64) {
	for i:=0; i<len(fg.values); i++ { fg.values[i] = f(fg.values[i]) }
}

// Values returns the backing sample slice, row by row. Callers must
// treat it as read-only.
func (fg FloatGrid)Values() []float64 { return fg.values }

func (fg FloatGrid)Mean() float64 { return stat.Mean(fg.values, nil) }

func (fg FloatGrid)MinMax() (float64, float64) {
	min, max := fg.values[0], fg.values[0]
	for i:=1 ; i<len(fg.values) ; i++ {
		if fg.values[i] > max { max = fg.values[i] }
		if fg.values[i] < min { min = fg.values[i] }
	}
	return min, max
}

// CutsAtPercentile returns the sample values at the given percentiles
// (in [0,1]), e.g. (0.01, 0.99) for a 1% clip at each end.
func (fg FloatGrid)CutsAtPercentile(minPrct, maxPrct float64) (float64, float64) {
	sorted := make([]float64, len(fg.values))
	copy(sorted, fg.values)
	sort.Float64s(sorted)
	return stat.Quantile(minPrct, stat.Empirical, sorted, nil),
		stat.Quantile(maxPrct, stat.Empirical, sorted, nil)
}

func (fg FloatGrid)Stats() string {
	min, max := fg.MinMax()
	return fmt.Sprintf("fg[%dx%d, vals{%f,%f}]", fg.Dx(), fg.Dy(), min, max)
}
