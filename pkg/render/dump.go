package render

import(
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"

	"github.com/abworrall/ccd-redux/pkg/cmath"
)

// Debug dumps: the calibrated float data written out losslessly
// enough to inspect in other tools. Radiance .hdr keeps the full
// float range; 16-bit TIFF is for anything that can't read .hdr.

// gridImage adapts a FloatGrid to hdr.Image, painting the sample
// value onto all three channels.
type gridImage struct {
	fg cmath.FloatGrid
}

func (gi gridImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (gi gridImage)Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{gi.fg.Dx(), gi.fg.Dy()}}
}
func (gi gridImage)At(x, y int) color.Color { return gi.HDRAt(x, y) }
func (gi gridImage)HDRAt(x, y int) hdrcolor.Color {
	v := gi.fg.Get(x, y)
	return hdrcolor.RGB{R: v, G: v, B: v}
}
func (gi gridImage)Size() int { return gi.fg.Dx() * gi.fg.Dy() }

func WriteHDR(fg cmath.FloatGrid, filename string) error {
	var img hdr.Image = gridImage{fg}
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return rgbe.Encode(writer, img)
	}
}

// WriteTIFF16 quantizes the grid's own min/max range onto 16-bit
// grayscale.
func WriteTIFF16(fg cmath.FloatGrid, filename string) error {
	min, max := fg.MinMax()
	span := max - min
	if span == 0.0 { span = 1.0 }

	img := image.NewGray16(image.Rectangle{Max: image.Point{fg.Dx(), fg.Dy()}})
	for x:=0; x<fg.Dx(); x++ {
		for y:=0; y<fg.Dy(); y++ {
			gray := (fg.Get(x, y) - min) / span
			img.SetGray16(x, y, color.Gray16{Y: uint16(gray * 65535.0)})
		}
	}

	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate})
	}
}
