package wad

import "github.com/nmeunpack/nme-unpacker/internal/reader"

// paletteColorCount is the fixed number of RGB565 colors per palette.
const paletteColorCount = 256

// paletteCommentSize is the opaque trailing comment/label every palette
// carries, unused by decoding.
const paletteCommentSize = 13

// Palette is one 256-color RGB565 palette, as addressed by an image
// record's palette_id.
type Palette struct {
	Colors [paletteColorCount]uint16
}

// readPalette reads one 525-byte on-wire palette: 256 little-endian
// uint16 colors followed by a 13-byte opaque comment.
func readPalette(r *reader.Reader) (Palette, error) {
	var p Palette
	for i := range p.Colors {
		c, err := r.ReadU16LE()
		if err != nil {
			return Palette{}, err
		}
		p.Colors[i] = c
	}
	if err := r.Skip(paletteCommentSize); err != nil {
		return Palette{}, err
	}
	return p, nil
}
