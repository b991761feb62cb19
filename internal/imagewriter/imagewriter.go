// Package imagewriter emits a decoded pixel buffer as a PNG (RLE/RGBA
// output) or BMP (paletted/RGB output) file, each call scoped to one
// output handle that is closed before return.
//
// BMP encoding uses golang.org/x/image/bmp. PNG uses the standard
// library's image/png.
package imagewriter

import (
	stdimage "image"
	"image/png"
	"os"

	"golang.org/x/image/bmp"

	"github.com/nmeunpack/nme-unpacker/internal/errs"
	"github.com/nmeunpack/nme-unpacker/internal/fsops"
	internalimage "github.com/nmeunpack/nme-unpacker/internal/image"
)

// WriteBMP writes buf as a 24-bit-per-pixel RGB BMP to path, creating any
// missing parent directories first.
func WriteBMP(path string, buf internalimage.RGBBuffer) error {
	if err := fsops.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.IO(err, "open BMP output")
	}
	defer func() { _ = f.Close() }()

	img := toRGBAImage(buf)
	if err := bmp.Encode(f, img); err != nil {
		return errs.IO(err, "encode BMP")
	}
	return nil
}

// WritePNG writes buf as a 32-bit-per-pixel RGBA PNG to path, creating any
// missing parent directories first.
func WritePNG(path string, buf internalimage.RGBABuffer) error {
	if err := fsops.EnsureParentDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errs.IO(err, "open PNG output")
	}
	defer func() { _ = f.Close() }()

	img := toNRGBAImage(buf)
	if err := png.Encode(f, img); err != nil {
		return errs.IO(err, "encode PNG")
	}
	return nil
}

func toRGBAImage(buf internalimage.RGBBuffer) *stdimage.RGBA {
	w, h := int(buf.Width), int(buf.Height)
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := 3 * (y*w + x)
			dst := img.PixOffset(x, y)
			img.Pix[dst] = buf.Pix[src]
			img.Pix[dst+1] = buf.Pix[src+1]
			img.Pix[dst+2] = buf.Pix[src+2]
			img.Pix[dst+3] = 255
		}
	}
	return img
}

func toNRGBAImage(buf internalimage.RGBABuffer) *stdimage.NRGBA {
	w, h := int(buf.Width), int(buf.Height)
	img := stdimage.NewNRGBA(stdimage.Rect(0, 0, w, h))
	// The decode buffer is already tightly packed row-major RGBA with the
	// same stride NRGBA uses, so this is a straight copy.
	copy(img.Pix, buf.Pix)
	return img
}
