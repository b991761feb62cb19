package image

import (
	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/memtrack"
	"github.com/nmeunpack/nme-unpacker/internal/rgb565"
	"github.com/nmeunpack/nme-unpacker/internal/wad"
)

// Opcodes introducing a run in the RLE pixel stream.
const (
	opTransparentRun byte = 0xFF
	opHalfAlphaRun   byte = 0xFE
)

// RGBABuffer is a tightly packed, row-major 32-bit RGBA buffer, linear
// top-to-bottom, left-to-right.
type RGBABuffer struct {
	Width, Height uint32
	Pix           []byte // len == Width*Height*4
}

// DecodeRLE runs a linear scan over the opcode stream: the opcode byte is
// consumed first, then its argument bytes, with no framing. It stops once
// the pixel-data buffer is exhausted.
func DecodeRLE(rec wad.Record, palette wad.Palette, outCounter *memtrack.Counter) (RGBABuffer, error) {
	width, height := rec.Width, rec.Height
	total := uint64(width) * uint64(height)
	outLen := total * 4
	if outLen > (1 << 32) {
		return RGBABuffer{}, errs.Formatf("RLE image %dx%d output too large", width, height)
	}

	if outCounter != nil {
		defer outCounter.Scope(int(outLen))()
	}
	out := make([]byte, outLen)

	data := rec.PixelData
	n := len(data)
	i := 0
	p := uint64(0)

	writePixel := func(r, g, b, a byte) error {
		if p >= total {
			return errs.Formatf("RLE stream for %q overruns its %dx%d pixel buffer", rec.Name, width, height)
		}
		off := p * 4
		out[off] = r
		out[off+1] = g
		out[off+2] = b
		out[off+3] = a
		p++
		return nil
	}

	for i < n {
		op := data[i]
		i++
		switch op {
		case opTransparentRun:
			if i >= n {
				return RGBABuffer{}, errs.Formatf("RLE stream for %q truncated after transparent-run opcode", rec.Name)
			}
			count := int(data[i])
			i++
			for k := 0; k < count; k++ {
				if err := writePixel(255, 0, 255, 0); err != nil {
					return RGBABuffer{}, err
				}
			}
		case opHalfAlphaRun:
			if i >= n {
				return RGBABuffer{}, errs.Formatf("RLE stream for %q truncated after half-alpha-run opcode", rec.Name)
			}
			count := int(data[i])
			i++
			for k := 0; k < count; k++ {
				if i >= n {
					return RGBABuffer{}, errs.Formatf("RLE stream for %q truncated mid half-alpha run", rec.Name)
				}
				idx := data[i]
				i++
				r, g, b := rgb565.Expand(palette.Colors[idx])
				if err := writePixel(r, g, b, 127); err != nil {
					return RGBABuffer{}, err
				}
			}
		default:
			count := int(op)
			for k := 0; k < count; k++ {
				if i >= n {
					return RGBABuffer{}, errs.Formatf("RLE stream for %q truncated mid opaque run", rec.Name)
				}
				idx := data[i]
				i++
				r, g, b := rgb565.Expand(palette.Colors[idx])
				if err := writePixel(r, g, b, 255); err != nil {
					return RGBABuffer{}, err
				}
			}
		}
	}

	return RGBABuffer{Width: width, Height: height, Pix: out}, nil
}
