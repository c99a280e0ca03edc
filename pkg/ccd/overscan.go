package ccd

import(
	"gonum.org/v1/gonum/stat"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// OverscanLevel is the single scalar bias estimate for a frame: the
// mean over every sample in the prescan and postscan regions taken
// together. The scan regions see no photons, so anything they read is
// electronic offset.
func OverscanLevel(prescan, postscan cmath.FloatGrid) (float64, error) {
	n := len(prescan.Values()) + len(postscan.Values())
	if n == 0 {
		return 0, EmptyRegionError{}
	}

	samples := make([]float64, 0, n)
	samples = append(samples, prescan.Values()...)
	samples = append(samples, postscan.Values()...)

	return stat.Mean(samples, nil), nil
}

// SubtractOverscan returns a copy of `active` with the overscan level
// subtracted from every sample. The input grids are untouched.
func SubtractOverscan(active, prescan, postscan cmath.FloatGrid) (cmath.FloatGrid, float64, error) {
	level, err := OverscanLevel(prescan, postscan)
	if err != nil {
		return cmath.FloatGrid{}, 0, err
	}

	corrected := active.Copy()
	corrected.SubScalar(level)
	return corrected, level, nil
}
