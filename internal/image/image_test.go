package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmeunpack/nme-unpacker/internal/wad"
)

func paletteWith(colors ...uint16) wad.Palette {
	var p wad.Palette
	copy(p.Colors[:], colors)
	return p
}

// TestDecodeBMPTwoByTwoPalette covers a 2x2 paletted bitmap decode.
func TestDecodeBMPTwoByTwoPalette(t *testing.T) {
	pal := paletteWith(0xF800, 0x07E0, 0x001F, 0xFFFF)
	rec := wad.Record{
		Name:   "sprite.bmp",
		Width:  2,
		Height: 2,
		PixelData: []byte{
			0x00, 0x01, 0xAA, 0xAA,
			0x02, 0x03, 0xAA, 0xAA,
		},
	}

	out, err := DecodeBMP(rec, pal, nil)
	require.NoError(t, err)
	require.Equal(t, uint32(2), out.Width)
	require.Equal(t, uint32(2), out.Height)

	want := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}
	assert.Equal(t, want, out.Pix)
}

func TestBMPShortPixelDataIsFormatError(t *testing.T) {
	pal := paletteWith(0xF800)
	rec := wad.Record{Name: "x.bmp", Width: 2, Height: 2, PixelData: []byte{0, 0}}
	_, err := DecodeBMP(rec, pal, nil)
	assert.Error(t, err)
}

// TestDecodeRLETransparentThenOpaqueRuns covers a transparent run followed by an opaque run.
func TestDecodeRLETransparentThenOpaqueRuns(t *testing.T) {
	var pal wad.Palette
	pal.Colors[5] = 0xF800
	pal.Colors[6] = 0x001F

	rec := wad.Record{
		Name:      "s.rle",
		Width:     5,
		Height:    1,
		PixelData: []byte{0xFF, 0x03, 0x02, 0x05, 0x06},
	}

	out, err := DecodeRLE(rec, pal, nil)
	require.NoError(t, err)

	want := []byte{
		255, 0, 255, 0, // transparent
		255, 0, 255, 0,
		255, 0, 255, 0,
		255, 0, 0, 255, // opaque red
		0, 0, 255, 255, // opaque blue
	}
	assert.Equal(t, want, out.Pix)
}

// TestDecodeRLEHalfAlphaRun covers a half-alpha run.
func TestDecodeRLEHalfAlphaRun(t *testing.T) {
	var pal wad.Palette
	pal.Colors[5] = 0xF800
	pal.Colors[6] = 0x001F

	rec := wad.Record{
		Name:      "s.rle",
		Width:     2,
		Height:    1,
		PixelData: []byte{0xFE, 0x02, 0x05, 0x06},
	}

	out, err := DecodeRLE(rec, pal, nil)
	require.NoError(t, err)

	want := []byte{
		255, 0, 0, 127,
		0, 0, 255, 127,
	}
	assert.Equal(t, want, out.Pix)
}

func TestRLEOverrunIsFormatError(t *testing.T) {
	var pal wad.Palette
	rec := wad.Record{
		Name:      "s.rle",
		Width:     1,
		Height:    1,
		PixelData: []byte{0xFF, 0x05}, // claims 5 pixels in a 1-pixel image
	}
	_, err := DecodeRLE(rec, pal, nil)
	assert.Error(t, err)
}

func TestRLETruncatedStreamIsFormatError(t *testing.T) {
	var pal wad.Palette
	rec := wad.Record{
		Name:      "s.rle",
		Width:     4,
		Height:    1,
		PixelData: []byte{0xFE, 0x02, 0x05}, // missing the second index byte
	}
	_, err := DecodeRLE(rec, pal, nil)
	assert.Error(t, err)
}
