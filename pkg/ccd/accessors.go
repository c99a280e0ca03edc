package ccd

import "github.com/abworrall/ccd-redux/pkg/cmath"

// Header-derived accessors. Each comes in two shapes: AllXxx always
// returns one value per constituent raw frame, in combination order
// (length 1 for an unmerged frame); the scalar Xxx form is only valid
// on an unmerged frame and fails with MultipleHeadersError otherwise.
// Both fail with NoHeaderError on a frame with no provenance, which
// the construction invariant makes unreachable in practice.

func (f *Frame)NumCombined() int { return len(f.headers) }

// Names returns the constituent raw-frame names, in combination order.
func (f *Frame)Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Width and Height describe the active region. They are scalar even
// for combined frames: geometry is validated to match across all
// constituents at combination time.
func (f *Frame)Width() int  { return f.geom.Width }
func (f *Frame)Height() int { return f.geom.Height }

func (f *Frame)BiasCorrected() bool { return f.biasCorrected }
func (f *Frame)FlatCorrected() bool { return f.flatCorrected }

func (f *Frame)Geometry() Geometry { return f.geom }

// Region copies. The frame owns its arrays exclusively, so callers
// get detached snapshots.
func (f *Frame)Prescan() cmath.FloatGrid  { return f.prescan.Copy() }
func (f *Frame)Active() cmath.FloatGrid   { return f.active.Copy() }
func (f *Frame)Postscan() cmath.FloatGrid { return f.postscan.Copy() }
func (f *Frame)Original() cmath.FloatGrid { return f.original.Copy() }

// {{{ generic pluckers

func (f *Frame)floatValues(key string) ([]float64, error) {
	if len(f.headers) == 0 {
		return nil, NoHeaderError{}
	}
	vals := make([]float64, len(f.headers))
	for i, h := range f.headers {
		vals[i] = h.FloatOr(key, 0)
	}
	return vals, nil
}

func (f *Frame)strValues(key string) ([]string, error) {
	if len(f.headers) == 0 {
		return nil, NoHeaderError{}
	}
	vals := make([]string, len(f.headers))
	for i, h := range f.headers {
		vals[i] = h.StrOr(key, "")
	}
	return vals, nil
}

func (f *Frame)scalarFloat(key string) (float64, error) {
	if len(f.headers) == 0 {
		return 0, NoHeaderError{}
	}
	if len(f.headers) > 1 {
		return 0, MultipleHeadersError{NumCombined: len(f.headers)}
	}
	return f.headers[0].FloatOr(key, 0), nil
}

func (f *Frame)scalarStr(key string) (string, error) {
	if len(f.headers) == 0 {
		return "", NoHeaderError{}
	}
	if len(f.headers) > 1 {
		return "", MultipleHeadersError{NumCombined: len(f.headers)}
	}
	return f.headers[0].StrOr(key, ""), nil
}

// }}}

func (f *Frame)AllAirmass() ([]float64, error)    { return f.floatValues("AIRMASS") }
func (f *Frame)AllExpTime() ([]float64, error)    { return f.floatValues("EXPTIME") }
func (f *Frame)AllGain() ([]float64, error)       { return f.floatValues("GAIN") }
func (f *Frame)AllPlateScale() ([]float64, error) { return f.floatValues("SCALE") }
func (f *Frame)AllDec() ([]string, error)         { return f.strValues("TELDEC") }
func (f *Frame)AllFilter() ([]string, error)      { return f.strValues("FILTERS") }
func (f *Frame)AllHourAngle() ([]string, error)   { return f.strValues("HA") }
func (f *Frame)AllObsType() ([]string, error)     { return f.strValues("OBSTYPE") }
func (f *Frame)AllRA() ([]string, error)          { return f.strValues("TELRA") }

func (f *Frame)AllDate() ([]string, error) {
	if len(f.headers) == 0 {
		return nil, NoHeaderError{}
	}
	vals := make([]string, len(f.headers))
	for i, h := range f.headers {
		vals[i] = obsDate(h)
	}
	return vals, nil
}

func (f *Frame)Airmass() (float64, error)    { return f.scalarFloat("AIRMASS") }
func (f *Frame)ExpTime() (float64, error)    { return f.scalarFloat("EXPTIME") }
func (f *Frame)Gain() (float64, error)       { return f.scalarFloat("GAIN") }
func (f *Frame)PlateScale() (float64, error) { return f.scalarFloat("SCALE") }
func (f *Frame)Dec() (string, error)         { return f.scalarStr("TELDEC") }
func (f *Frame)Filter() (string, error)      { return f.scalarStr("FILTERS") }
func (f *Frame)HourAngle() (string, error)   { return f.scalarStr("HA") }
func (f *Frame)ObsType() (string, error)     { return f.scalarStr("OBSTYPE") }
func (f *Frame)RA() (string, error)          { return f.scalarStr("TELRA") }

func (f *Frame)Date() (string, error) {
	if _, err := f.scalarStr("DATE-OBS"); err != nil {
		return "", err
	}
	return obsDate(f.headers[0]), nil
}
