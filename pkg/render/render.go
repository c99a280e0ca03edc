// Package render is the display collaborator: it turns a region grid
// into something you can look at. Nothing in here feeds back into the
// calibration model.
package render

import(
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// A Colormap maps a normalized sample in [0,1] to a display color.
type Colormap func(v float64) colorful.Color

func GetColormap(name string) (Colormap, error) {
	switch name {
	case "", "gray":
		return func(v float64) colorful.Color {
			return colorful.Color{R: v, G: v, B: v}
		}, nil
	case "heat":
		// black -> red -> yellow -> white
		black := colorful.Color{R: 0, G: 0, B: 0}
		red := colorful.Color{R: 1, G: 0, B: 0}
		yellow := colorful.Color{R: 1, G: 1, B: 0}
		white := colorful.Color{R: 1, G: 1, B: 1}
		return func(v float64) colorful.Color {
			switch {
			case v < 1.0/3:  return black.BlendRgb(red, 3*v)
			case v < 2.0/3:  return red.BlendRgb(yellow, 3*v-1)
			default:         return yellow.BlendRgb(white, 3*v-2)
			}
		}, nil
	case "cool":
		blue := colorful.Color{R: 0, G: 0.2, B: 0.8}
		cyan := colorful.Color{R: 0, G: 1, B: 1}
		return func(v float64) colorful.Color {
			return blue.BlendLuv(cyan, v)
		}, nil
	default:
		return nil, fmt.Errorf("no colormap named '%s'", name)
	}
}

// ToImage renders a grid through the given colormap, stretching the
// grid's own min/max onto [0,1].
func ToImage(fg cmath.FloatGrid, cmap Colormap) *image.RGBA64 {
	min, max := fg.MinMax()
	span := max - min
	if span == 0.0 { span = 1.0 }

	img := image.NewRGBA64(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			c := cmap((fg.Get(x, y) - min) / span)
			r, g, b := c.RGB255()
			img.Set(x, y, color.RGBA64{
				uint16(r) * 0x101,
				uint16(g) * 0x101,
				uint16(b) * 0x101,
				0xffff,
			})
		}
	}
	return img
}

// WritePNG saves a grid as an annotated PNG.
func WritePNG(fg cmath.FloatGrid, cmap Colormap, title, filename string) error {
	dc := gg.NewContextForImage(ToImage(fg, cmap))
	dc.SetRGB(1, 1, 1)
	dc.DrawString(title, 20, 20)
	return dc.SavePNG(filename)
}

// A Display implements the calibration model's Renderer boundary by
// writing PNG files into a directory.
type Display struct {
	Dir     string
	counter int
}

func (d *Display)Show(g cmath.FloatGrid, colormap string) error {
	cmap, err := GetColormap(colormap)
	if err != nil {
		return err
	}
	d.counter++
	filename := fmt.Sprintf("%s/frame-%03d.png", d.Dir, d.counter)
	return WritePNG(g, cmap, "", filename)
}
