package ccd

import(
	"fmt"
	"log"
	"strings"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// An Op is a frame-combination operator.
type Op int

const (
	Add Op = iota
	Subtract
	Divide
)

// A Frame is a calibrated detector frame: the three region arrays
// split out of one raw readout, plus the provenance (name and header)
// of every raw frame that has been folded into it.
//
// Combination (Combine, Average) never mutates its operands; it hands
// back a fresh Frame. Correction (SubtractBias, DivideFlat) mutates
// in place and appends the other operand's provenance.
type Frame struct {
	names   []string
	headers []*Header
	geom    Geometry

	prescan  cmath.FloatGrid
	active   cmath.FloatGrid
	postscan cmath.FloatGrid

	// original is a snapshot of active taken right after
	// construction-time correction. Rescale always starts from it, so
	// repeated rescales never compound.
	original cmath.FloatGrid

	biasCorrected bool
	flatCorrected bool
}

// {{{ NewFrame

// NewFrame splits a raw readout into its three regions and applies
// the construction-time corrections the config asks for.
func NewFrame(name string, hdr *Header, raw cmath.FloatGrid, cfg Config) (*Frame, error) {
	geom, err := NewGeometry(hdr)
	if err != nil {
		return nil, err
	}

	if raw.Dx() != geom.Naxis1 || raw.Dy() != geom.Naxis2 {
		return nil, fmt.Errorf("raw array is %dx%d but header says %dx%d: %w",
			raw.Dx(), raw.Dy(), geom.Naxis1, geom.Naxis2,
			GeometryError{geom.PrescanPix, geom.PostscanPix, geom.Naxis1, geom.Naxis2})
	}

	f := Frame{
		names:    []string{name},
		headers:  []*Header{hdr},
		geom:     geom,
		prescan:  raw.ColRange(0, geom.PrescanPix),
		active:   raw.ColRange(geom.ActiveMin(), geom.ActiveMax()),
		postscan: raw.ColRange(geom.ActiveMax(), geom.Naxis1),
	}

	if cfg.SubtractOverscan {
		corrected, level, err := SubtractOverscan(f.active, f.prescan, f.postscan)
		if err != nil {
			return nil, err
		}
		f.active = corrected
		log.Printf("%s: overscan level %.3f subtracted\n", name, level)
	}

	if cfg.RemoveCosmicRays {
		crf := cfg.cosmicRays
		if crf == nil {
			crf = SigmaClipFilter{Sigma: NewConfig().CosmicRaySigma}
		}
		f.active = crf.Filter(f.active)
	}

	f.original = f.active.Copy()

	return &f, nil
}

// }}}
// {{{ f.Combine, f.Average

// Combine returns a new frame whose region arrays are the element-wise
// combination of f's and other's. Neither operand is touched, and the
// result's provenance is f's followed by other's.
func (f *Frame)Combine(other *Frame, op Op) (*Frame, error) {
	if err := f.checkShapes(other); err != nil {
		return nil, err
	}
	if op == Divide {
		if region, bad := other.zeroRegion(); bad {
			return nil, DivisionByZeroError{Region: region}
		}
	}

	result := f.copy()
	result.names = append(result.names, other.names...)
	result.headers = append(result.headers, other.headers...)

	applyOp(&result.prescan, other.prescan, op)
	applyOp(&result.active, other.active, op)
	applyOp(&result.postscan, other.postscan, op)
	applyOp(&result.original, other.original, op)

	return result, nil
}

// Average sums the given frames and divides every region array by the
// number of frames given. Provenance is not collapsed: the result
// carries the name and header of every constituent.
func Average(frames []*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, EmptyInputError{}
	}

	result := frames[0].copy()
	for _, other := range frames[1:] {
		var err error
		if result, err = result.Combine(other, Add); err != nil {
			return nil, err
		}
	}

	n := float64(len(frames))
	result.prescan.DivScalar(n)
	result.active.DivScalar(n)
	result.postscan.DivScalar(n)
	result.original.DivScalar(n)

	return result, nil
}

// }}}
// {{{ f.SubtractBias, f.DivideFlat

// SubtractBias subtracts the bias frame's regions from f's, in place,
// and appends the bias frame's provenance. There is no guard against
// doing it twice: subtracting a bias twice subtracts it twice, and
// the BiasCorrected flag is informational only.
func (f *Frame)SubtractBias(bias *Frame) error {
	if err := f.checkShapes(bias); err != nil {
		return err
	}

	f.prescan.SubGrid(bias.prescan)
	f.active.SubGrid(bias.active)
	f.postscan.SubGrid(bias.postscan)
	f.original.SubGrid(bias.original)

	f.names = append(f.names, bias.names...)
	f.headers = append(f.headers, bias.headers...)
	f.biasCorrected = true

	return nil
}

// DivideFlat divides f's regions by the flat frame's, in place. If
// any sample of the flat is exactly zero the whole operation fails
// before a single sample of f is written.
func (f *Frame)DivideFlat(flat *Frame) error {
	if err := f.checkShapes(flat); err != nil {
		return err
	}
	if region, bad := flat.zeroRegion(); bad {
		return DivisionByZeroError{Region: region}
	}

	f.prescan.DivGrid(flat.prescan)
	f.active.DivGrid(flat.active)
	f.postscan.DivGrid(flat.postscan)
	f.original.DivGrid(flat.original)

	f.names = append(f.names, flat.names...)
	f.headers = append(f.headers, flat.headers...)
	f.flatCorrected = true

	return nil
}

// }}}
// {{{ helpers: copy, checkShapes, zeroRegion, applyOp

func (f *Frame)copy() *Frame {
	f2 := Frame{
		names:         make([]string, len(f.names)),
		headers:       make([]*Header, len(f.headers)),
		geom:          f.geom,
		prescan:       f.prescan.Copy(),
		active:        f.active.Copy(),
		postscan:      f.postscan.Copy(),
		original:      f.original.Copy(),
		biasCorrected: f.biasCorrected,
		flatCorrected: f.flatCorrected,
	}
	copy(f2.names, f.names)
	copy(f2.headers, f.headers)
	return &f2
}

func (f *Frame)checkShapes(other *Frame) error {
	regions := []struct {
		name string
		a, b *cmath.FloatGrid
	}{
		{"prescan", &f.prescan, &other.prescan},
		{"active", &f.active, &other.active},
		{"postscan", &f.postscan, &other.postscan},
	}

	for _, r := range regions {
		if !r.a.SameShape(*r.b) {
			return ShapeMismatchError{
				Region: r.name,
				AW: r.a.Dx(), AH: r.a.Dy(),
				BW: r.b.Dx(), BH: r.b.Dy(),
			}
		}
	}
	return nil
}

// zeroRegion reports which region of f, if any, holds an exact zero.
func (f *Frame)zeroRegion() (string, bool) {
	switch {
	case f.prescan.HasZero():  return "prescan", true
	case f.active.HasZero():   return "active", true
	case f.postscan.HasZero(): return "postscan", true
	case f.original.HasZero(): return "original", true
	}
	return "", false
}

func applyOp(g *cmath.FloatGrid, other cmath.FloatGrid, op Op) {
	switch op {
	case Add:      g.AddGrid(other)
	case Subtract: g.SubGrid(other)
	case Divide:   g.DivGrid(other)
	}
}

// }}}
// {{{ f.Summary

// Summary formats one record per constituent raw frame, in
// combination order.
func (f *Frame)Summary() string {
	str := ""
	if f.NumCombined() > 2 {
		str = fmt.Sprintf("This image is the combination of %d images.\n\n", f.NumCombined())
	}

	for i, h := range f.headers {
		str += fmt.Sprintf("SUMMARY FOR     %s\n", f.names[i]) +
			fmt.Sprintf("Obs Type:       %s\n", h.StrOr("OBSTYPE", "")) +
			fmt.Sprintf("Filter:         %s\n", h.StrOr("FILTERS", "")) +
			fmt.Sprintf("RA/DEC:         %s   %s\n", h.StrOr("TELRA", ""), h.StrOr("TELDEC", "")) +
			fmt.Sprintf("UTC Obs Time:   %s\n", obsDate(h)) +
			fmt.Sprintf("Hour Angle:     %s\n", h.StrOr("HA", "")) +
			fmt.Sprintf("Exposure Time:  %g seconds\n", h.FloatOr("EXPTIME", 0)) +
			fmt.Sprintf("Airmass:        %g\n", h.FloatOr("AIRMASS", 0)) +
			fmt.Sprintf("Image Size:     %d x %d\n", f.Width(), f.Height()) +
			fmt.Sprintf("Plate Scale:    %g arcsec/pix\n\n", h.FloatOr("SCALE", 0))
	}

	return str
}

func (f *Frame)String() string { return f.Summary() }

// obsDate is DATE-OBS with the FITS 'T' separator opened up.
func obsDate(h *Header) string {
	return strings.Replace(h.StrOr("DATE-OBS", ""), "T", "  ", 1)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
