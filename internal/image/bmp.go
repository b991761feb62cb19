// Package image implements two pixel-decoding paths: a straight paletted
// bitmap path with a two-column row-stride quirk, and a run-length path
// with two escape opcodes that emits 32-bit RGBA.
package image

import (
	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/memtrack"
	"github.com/nmeunpack/nme-unpacker/internal/rgb565"
	"github.com/nmeunpack/nme-unpacker/internal/wad"
)

// RGBBuffer is a tightly packed, row-major 8-bit-per-channel RGB buffer.
type RGBBuffer struct {
	Width, Height uint32
	Pix           []byte // len == Width*Height*3
}

// DecodeBMP expands a paletted bitmap record into an RGB buffer. Every
// source row is read at stride (width+2) bytes — the row-stride quirk
// intrinsic to this format — so the last two bytes of each source row are
// never consulted.
func DecodeBMP(rec wad.Record, palette wad.Palette, outCounter *memtrack.Counter) (RGBBuffer, error) {
	width, height := rec.Width, rec.Height
	stride := uint64(width) + 2
	outLen := uint64(width) * uint64(height) * 3
	if outLen > (1 << 32) {
		return RGBBuffer{}, errs.Formatf("BMP image %dx%d output too large", width, height)
	}
	minPixelBytes := stride * uint64(height)
	if uint64(len(rec.PixelData)) < minPixelBytes {
		return RGBBuffer{}, errs.Formatf(
			"BMP pixel data for %q too short: have %d bytes, need >= %d",
			rec.Name, len(rec.PixelData), minPixelBytes)
	}

	if outCounter != nil {
		defer outCounter.Scope(int(outLen))()
	}
	out := make([]byte, outLen)

	for y := uint32(0); y < height; y++ {
		rowBase := uint64(y) * stride
		for x := uint32(0); x < width; x++ {
			srcIdx := rowBase + uint64(x)
			paletteIdx := rec.PixelData[srcIdx]
			r, g, b := rgb565.Expand(palette.Colors[paletteIdx])
			dst := 3 * (uint64(x) + uint64(y)*uint64(width))
			out[dst] = r
			out[dst+1] = g
			out[dst+2] = b
		}
	}

	return RGBBuffer{Width: width, Height: height, Pix: out}, nil
}
