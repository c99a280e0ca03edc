package ccd

import "fmt"

// The calibration model fails loudly on every geometry or shape
// problem; a silently mis-shapen correction is worse than no
// correction. All of these are deterministic input-validation
// failures, so nothing here is ever retried. Callers can pick them
// apart with errors.As.

// GeometryError means the PRESCAN/POSTSCAN/NAXIS1 header values do
// not partition the raw frame into three sane column ranges.
type GeometryError struct {
	Prescan, Postscan, Naxis1, Naxis2 int
}

func (e GeometryError)Error() string {
	return fmt.Sprintf("ccd: bad region geometry (prescan=%d postscan=%d naxis1=%d naxis2=%d)",
		e.Prescan, e.Postscan, e.Naxis1, e.Naxis2)
}

// EmptyRegionError means overscan correction was requested but both
// scan regions have zero width, so there are no bias samples.
type EmptyRegionError struct{}

func (e EmptyRegionError)Error() string {
	return "ccd: overscan correction requested but prescan and postscan are both empty"
}

// ShapeMismatchError means two frames whose region arrays disagree in
// shape were combined or corrected against each other.
type ShapeMismatchError struct {
	Region         string // "prescan", "active" or "postscan"
	AW, AH, BW, BH int
}

func (e ShapeMismatchError)Error() string {
	return fmt.Sprintf("ccd: %s region shapes differ (%dx%d vs %dx%d)",
		e.Region, e.AW, e.AH, e.BW, e.BH)
}

// DivisionByZeroError means a flat division was attempted where some
// divisor sample is exactly zero. We fail rather than produce Infs.
type DivisionByZeroError struct {
	Region string
}

func (e DivisionByZeroError)Error() string {
	return fmt.Sprintf("ccd: divisor frame has a zero sample in its %s region", e.Region)
}

// EmptyInputError means an aggregate operation was given no frames.
type EmptyInputError struct{}

func (e EmptyInputError)Error() string { return "ccd: no frames given" }

// NoHeaderError means a header-derived accessor was called on a frame
// with no provenance. Frames always carry at least one header, so
// this should be unreachable; it exists so the accessor contract is
// still checked.
type NoHeaderError struct{}

func (e NoHeaderError)Error() string { return "ccd: frame has no headers" }

// MultipleHeadersError means a scalar accessor was called on a
// combined frame; use the AllXxx form instead.
type MultipleHeadersError struct {
	NumCombined int
}

func (e MultipleHeadersError)Error() string {
	return fmt.Sprintf("ccd: scalar accessor on a %d-frame combination", e.NumCombined)
}
