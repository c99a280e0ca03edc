// Package fits reads the primary HDU of a FITS file into a header
// mapping and a 2D sample grid. Just enough of the standard is
// implemented to feed the calibration model; anything fancier
// (extensions, tables, compressed images) is rejected up front.
//
// Spec here:   https://fits.gsfc.nasa.gov/standard40/fits_standard40aa-le.pdf
// Primer here: https://fits.gsfc.nasa.gov/fits_primer.html
package fits

import(
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/abworrall/ccd-redux/pkg/ccd"
	"github.com/abworrall/ccd-redux/pkg/cmath"
)

const blockSize = 2880 // FITS files are sequences of 2880-byte blocks
const cardSize = 80

// FileNotFoundError means the named file could not be opened.
type FileNotFoundError struct {
	Path string
}

func (e FileNotFoundError)Error() string {
	return fmt.Sprintf("fits: could not find '%s'", e.Path)
}

// UnsupportedFormatError means the file exists but is not a FITS
// primary image we can digest.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e UnsupportedFormatError)Error() string {
	return fmt.Sprintf("fits: '%s': %s", e.Path, e.Reason)
}

// FrameName derives the raw-frame name the calibration model uses for
// provenance: the file's base name without its extension.
func FrameName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// {{{ Read

// Read loads the primary HDU, returning the header cards in file
// order and the image data as a grid whose x axis runs along NAXIS1
// (detector columns).
func Read(path string) (*ccd.Header, cmath.FloatGrid, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, cmath.FloatGrid{}, FileNotFoundError{Path: path}
	}

	if len(contents) < blockSize || len(contents) % blockSize != 0 {
		return nil, cmath.FloatGrid{}, UnsupportedFormatError{path, "not a whole number of 2880-byte blocks"}
	}

	hdr, dataOffset, err := parseHeader(contents)
	if err != nil {
		return nil, cmath.FloatGrid{}, UnsupportedFormatError{path, err.Error()}
	}

	grid, err := parseData(hdr, contents[dataOffset:])
	if err != nil {
		return nil, cmath.FloatGrid{}, UnsupportedFormatError{path, err.Error()}
	}

	return hdr, grid, nil
}

// }}}
// {{{ parseHeader

// parseHeader walks 80-char cards until END, returning the header and
// the offset of the data area (the next block boundary after END).
func parseHeader(contents []byte) (*ccd.Header, int, error) {
	hdr := ccd.NewHeader()

	for off := 0; off+cardSize <= len(contents); off += cardSize {
		card := string(contents[off : off+cardSize])
		key := strings.TrimRight(card[0:8], " ")

		if key == "END" {
			dataOffset := ((off / blockSize) + 1) * blockSize
			return hdr, dataOffset, nil
		}
		if key == "" || key == "COMMENT" || key == "HISTORY" {
			continue
		}
		if card[8:10] != "= " {
			continue // keyword with no value
		}

		hdr.Add(key, parseValue(card[10:]))
	}

	return nil, 0, fmt.Errorf("no END card in header")
}

// parseValue digests the value field of one card: quoted string,
// logical T/F, integer, or float. Inline comments after '/' are
// dropped.
func parseValue(field string) interface{} {
	field = strings.TrimLeft(field, " ")

	if strings.HasPrefix(field, "'") {
		// String: runs to the closing quote; '' is an escaped quote
		val, rest := "", field[1:]
		for {
			i := strings.Index(rest, "'")
			if i < 0 {
				val += rest
				break
			}
			if i+1 < len(rest) && rest[i+1] == '\'' {
				val += rest[:i+1]
				rest = rest[i+2:]
				continue
			}
			val += rest[:i]
			break
		}
		return strings.TrimRight(val, " ")
	}

	if i := strings.Index(field, "/"); i >= 0 {
		field = field[:i]
	}
	field = strings.TrimSpace(field)

	switch field {
	case "T": return true
	case "F": return false
	}

	if v, err := strconv.Atoi(field); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(field, 64); err == nil {
		return v
	}
	return field
}

// }}}
// {{{ parseData

func parseData(hdr *ccd.Header, data []byte) (cmath.FloatGrid, error) {
	grid := cmath.FloatGrid{}

	naxis, err := hdr.Int("NAXIS")
	if err != nil || naxis != 2 {
		return grid, fmt.Errorf("want a 2-axis primary image, NAXIS=%d", naxis)
	}

	w, err := hdr.Int("NAXIS1")
	if err != nil {
		return grid, fmt.Errorf("no NAXIS1")
	}
	h, err := hdr.Int("NAXIS2")
	if err != nil {
		return grid, fmt.Errorf("no NAXIS2")
	}

	bitpix, err := hdr.Int("BITPIX")
	if err != nil {
		return grid, fmt.Errorf("no BITPIX")
	}
	bzero := hdr.FloatOr("BZERO", 0.0)
	bscale := hdr.FloatOr("BSCALE", 1.0)

	bytesPer := abs(bitpix) / 8
	if len(data) < w*h*bytesPer {
		return grid, fmt.Errorf("data area is %d bytes, need %d", len(data), w*h*bytesPer)
	}

	grid = cmath.NewFloatGrid(w, h)

	// FITS data is big-endian, NAXIS1 varying fastest
	for i := 0; i < w*h; i++ {
		var raw float64

		switch bitpix {
		case 8:
			raw = float64(data[i])
		case 16:
			raw = float64(int16(binary.BigEndian.Uint16(data[i*2:])))
		case 32:
			raw = float64(int32(binary.BigEndian.Uint32(data[i*4:])))
		case 64:
			raw = float64(int64(binary.BigEndian.Uint64(data[i*8:])))
		case -32:
			raw = float64(math.Float32frombits(binary.BigEndian.Uint32(data[i*4:])))
		case -64:
			raw = math.Float64frombits(binary.BigEndian.Uint64(data[i*8:]))
		default:
			return grid, fmt.Errorf("BITPIX=%d unhandled", bitpix)
		}

		grid.Set(i%w, i/w, bzero + bscale*raw)
	}

	return grid, nil
}

func abs(v int) int {
	if v < 0 { return -v }
	return v
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
