package ccd

// Geometry is the partition of a raw frame into three column ranges:
// prescan [0,PRESCAN), active [PRESCAN, NAXIS1-POSTSCAN), and
// postscan [NAXIS1-POSTSCAN, NAXIS1). Heights are all NAXIS2.
type Geometry struct {
	PrescanPix  int // column width of the prescan region
	PostscanPix int // column width of the postscan region
	Naxis1      int // total raw columns
	Naxis2      int // rows

	Width  int // active columns, == Naxis1 - PrescanPix - PostscanPix
	Height int // == Naxis2
}

// NewGeometry derives the region partition from a raw header. It is a
// pure function of the four header values.
func NewGeometry(h *Header) (Geometry, error) {
	g := Geometry{}

	var err error
	if g.PrescanPix, err = h.Int("PRESCAN"); err != nil {
		return g, err
	}
	if g.PostscanPix, err = h.Int("POSTSCAN"); err != nil {
		return g, err
	}
	if g.Naxis1, err = h.Int("NAXIS1"); err != nil {
		return g, err
	}
	if g.Naxis2, err = h.Int("NAXIS2"); err != nil {
		return g, err
	}

	if g.PrescanPix < 0 || g.PostscanPix < 0 || g.Naxis2 < 0 ||
		g.PrescanPix + g.PostscanPix >= g.Naxis1 {
		return g, GeometryError{g.PrescanPix, g.PostscanPix, g.Naxis1, g.Naxis2}
	}

	g.Width = g.Naxis1 - g.PrescanPix - g.PostscanPix
	g.Height = g.Naxis2

	return g, nil
}

// ActiveMin / ActiveMax are the column bounds of the active region
// within the raw frame, [min,max).
func (g Geometry)ActiveMin() int { return g.PrescanPix }
func (g Geometry)ActiveMax() int { return g.Naxis1 - g.PostscanPix }
