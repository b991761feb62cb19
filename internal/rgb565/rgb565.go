// Package rgb565 expands 16-bit RGB565 colors to 8-bit-per-channel RGB.
package rgb565

// scale5to8 and scale6to8 are the exact ratios 255/31 and 255/63; Expand
// multiplies by them and truncates, so a zero channel maps to 0 and a full
// channel to 255.
const (
	scale5to8 = 255.0 / 31.0 // 8.225806...
	scale6to8 = 255.0 / 63.0 // 4.047619...
)

// Expand converts one RGB565 value (5 bits red, 6 bits green, 5 bits blue,
// packed little-endian on the wire but already assembled into c here) into
// 8-bit R, G, B channels. Expand is total: every c in [0, 0xFFFF] produces
// channels in [0, 255].
func Expand(c uint16) (r, g, b uint8) {
	r5 := (c >> 11) & 0x1F
	g6 := (c >> 5) & 0x3F
	b5 := c & 0x1F

	r = uint8(float64(r5) * scale5to8)
	g = uint8(float64(g6) * scale6to8)
	b = uint8(float64(b5) * scale5to8)
	return r, g, b
}
