package fits

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func card(key, val string) string {
	return fmt.Sprintf("%-8s= %-70s", key, val)[:cardSize]
}

func pad(b []byte) []byte {
	for len(b)%blockSize != 0 {
		b = append(b, ' ')
	}
	return b
}

// writeFITS fabricates a BITPIX=16 primary HDU with the given pixel
// values, NAXIS1 varying fastest.
func writeFITS(t *testing.T, path string, w, h int, pixels []int16, extraCards ...string) {
	t.Helper()

	cards := []string{
		card("SIMPLE", "T"),
		card("BITPIX", "16"),
		card("NAXIS", "2"),
		card("NAXIS1", fmt.Sprintf("%d", w)),
		card("NAXIS2", fmt.Sprintf("%d", h)),
	}
	cards = append(cards, extraCards...)
	cards = append(cards, fmt.Sprintf("%-80s", "END"))

	contents := pad([]byte(strings.Join(cards, "")))

	data := make([]byte, len(pixels)*2)
	for i, v := range pixels {
		binary.BigEndian.PutUint16(data[i*2:], uint16(v))
	}
	for len(data)%blockSize != 0 {
		data = append(data, 0)
	}
	contents = append(contents, data...)

	require.NoError(t, os.WriteFile(path, contents, 0o644))
}

func TestReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a001.fits")

	// 4x3, pixel value = row*10 + col
	pixels := []int16{
		0, 1, 2, 3,
		10, 11, 12, 13,
		20, 21, 22, 23,
	}
	writeFITS(t, path, 4, 3, pixels,
		card("OBSTYPE", "'bias    '"),
		card("AIRMASS", "1.85"),
		card("EXPTIME", "30"),
		card("DATE-OBS", "'2016-03-11T08:12:30.55'"),
	)

	hdr, grid, err := Read(path)
	require.NoError(t, err)

	require.Equal(t, 4, grid.Dx())
	require.Equal(t, 3, grid.Dy())
	require.Equal(t, 12.0, grid.Get(2, 1), "x runs along NAXIS1")
	require.Equal(t, 23.0, grid.Get(3, 2))

	obsType, err := hdr.Str("OBSTYPE")
	require.NoError(t, err)
	require.Equal(t, "bias", obsType, "trailing pad spaces are stripped")

	airmass, err := hdr.Float("AIRMASS")
	require.NoError(t, err)
	require.Equal(t, 1.85, airmass)

	expTime, err := hdr.Int("EXPTIME")
	require.NoError(t, err)
	require.Equal(t, 30, expTime)

	date, err := hdr.Str("DATE-OBS")
	require.NoError(t, err)
	require.Equal(t, "2016-03-11T08:12:30.55", date)

	// header keys come back in file order
	keys := hdr.Keys()
	require.Equal(t, []string{"SIMPLE", "BITPIX", "NAXIS", "NAXIS1", "NAXIS2",
		"OBSTYPE", "AIRMASS", "EXPTIME", "DATE-OBS"}, keys)
}

func TestReadBzeroBscale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaled.fits")
	writeFITS(t, path, 2, 1, []int16{-100, 100},
		card("BZERO", "32768"),
		card("BSCALE", "2"),
	)

	_, grid, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 32768.0-200.0, grid.Get(0, 0))
	require.Equal(t, 32768.0+200.0, grid.Get(1, 0))
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "nope.fits"))
	var ferr FileNotFoundError
	require.ErrorAs(t, err, &ferr)
}

func TestReadNotFITS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.fits")
	require.NoError(t, os.WriteFile(path, []byte("not a fits file"), 0o644))

	_, _, err := Read(path)
	var uerr UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
}

func TestReadTruncatedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.fits")

	cards := []string{
		card("SIMPLE", "T"),
		card("BITPIX", "16"),
		card("NAXIS", "2"),
		card("NAXIS1", "4000"),
		card("NAXIS2", "4000"),
		fmt.Sprintf("%-80s", "END"),
	}
	require.NoError(t, os.WriteFile(path, pad([]byte(strings.Join(cards, ""))), 0o644))

	_, _, err := Read(path)
	var uerr UnsupportedFormatError
	require.ErrorAs(t, err, &uerr)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		field string
		want  interface{}
	}{
		{"                   T", true},
		{"                   F", false},
		{"                  16", 16},
		{"                1.85", 1.85},
		{"16 / bits per pixel ", 16},
		{"'V       '          ", "V"},
		{"'it''s quoted'      ", "it's quoted"},
		{"-32                 ", -32},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, parseValue(tc.field), "field %q", tc.field)
	}
}

func TestFrameName(t *testing.T) {
	require.Equal(t, "a001", FrameName("/data/night1/a001.fits"))
	require.Equal(t, "a001", FrameName("a001.fits"))
	require.Equal(t, "a001", FrameName("a001"))
}
