package ccd

import(
	"errors"
	"sync/atomic"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// A Role says what kind of calibration frame a readout is.
type Role int

const (
	RoleBias Role = iota
	RoleFlat
	RoleScience
	numRoles
)

func (r Role)String() string {
	switch r {
	case RoleBias:    return "bias"
	case RoleFlat:    return "flat"
	case RoleScience: return "science"
	}
	return "unknown"
}

// One live-instance counter per role, zero at process start,
// incremented on successful construction and decremented on Close.
// These are the only shared mutable state in the package, so they are
// atomic; destruction is an explicit Close call, never left to GC
// timing.
var liveCounts [numRoles]int64

// LiveCount reports how many frames of the given role are currently
// open.
func LiveCount(r Role) int64 { return atomic.LoadInt64(&liveCounts[r]) }

type roleFrame struct {
	*Frame
	role   Role
	closed int32
}

func newRoleFrame(role Role, name string, hdr *Header, raw cmath.FloatGrid, cfg Config) (roleFrame, error) {
	f, err := NewFrame(name, hdr, raw, cfg)
	if err != nil {
		return roleFrame{}, err
	}
	atomic.AddInt64(&liveCounts[role], 1)
	return roleFrame{Frame: f, role: role}, nil
}

// Close releases the frame's slot in its role counter. Idempotent.
func (rf *roleFrame)Close() {
	if atomic.CompareAndSwapInt32(&rf.closed, 0, 1) {
		atomic.AddInt64(&liveCounts[rf.role], -1)
	}
}

func (rf *roleFrame)Role() Role { return rf.role }

// A Bias is a zero-exposure frame capturing the electronic offset
// pattern. It needs no corrections of its own.
type Bias struct {
	roleFrame
}

func NewBias(name string, hdr *Header, raw cmath.FloatGrid, cfg Config) (*Bias, error) {
	rf, err := newRoleFrame(RoleBias, name, hdr, raw, cfg)
	if err != nil {
		return nil, err
	}
	return &Bias{rf}, nil
}

// BiasFromFrame adopts an already-built frame (e.g. an averaged
// master) as a Bias, taking a slot in the live counter.
func BiasFromFrame(f *Frame) *Bias {
	atomic.AddInt64(&liveCounts[RoleBias], 1)
	return &Bias{roleFrame{Frame: f, role: RoleBias}}
}

// A Flat is a uniformly-illuminated frame capturing pixel-to-pixel
// sensitivity variation. It gets bias-subtracted before use.
type Flat struct {
	roleFrame
}

func NewFlat(name string, hdr *Header, raw cmath.FloatGrid, cfg Config) (*Flat, error) {
	rf, err := newRoleFrame(RoleFlat, name, hdr, raw, cfg)
	if err != nil {
		return nil, err
	}
	return &Flat{rf}, nil
}

// FlatFromFrame adopts an already-built frame as a Flat.
func FlatFromFrame(f *Frame) *Flat {
	atomic.AddInt64(&liveCounts[RoleFlat], 1)
	return &Flat{roleFrame{Frame: f, role: RoleFlat}}
}

func (f *Flat)SubtractBias(bias *Bias) error { return f.Frame.SubtractBias(bias.Frame) }

// A Renderer is the display collaborator a Science frame hands its
// active region to. Rendering is somebody else's problem.
type Renderer interface {
	Show(g cmath.FloatGrid, colormap string) error
}

// A Science frame is an actual observation, corrected by subtracting
// a bias and dividing by a flat, in that order.
type Science struct {
	roleFrame
}

func NewScience(name string, hdr *Header, raw cmath.FloatGrid, cfg Config) (*Science, error) {
	rf, err := newRoleFrame(RoleScience, name, hdr, raw, cfg)
	if err != nil {
		return nil, err
	}
	return &Science{rf}, nil
}

func (s *Science)SubtractBias(bias *Bias) error { return s.Frame.SubtractBias(bias.Frame) }
func (s *Science)DivideFlat(flat *Flat) error   { return s.Frame.DivideFlat(flat.Frame) }

// ErrNoCentroider: centroid finding is a declared hook with no
// algorithm behind it yet.
var ErrNoCentroider = errors.New("ccd: no centroid algorithm configured")

// Centroid is the hook for locating the centroid of a chosen star in
// the active region.
func (s *Science)Centroid() (x, y float64, err error) {
	return 0, 0, ErrNoCentroider
}

// Show hands the active region to the display collaborator.
func (s *Science)Show(r Renderer, colormap string) error {
	return r.Show(s.Active(), colormap)
}
