package rgb565

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandScenarioColors(t *testing.T) {
	cases := []struct {
		name    string
		in      uint16
		r, g, b uint8
	}{
		{"red", 0xF800, 255, 0, 0},
		{"green", 0x07E0, 0, 255, 0},
		{"blue", 0x001F, 0, 0, 255},
		{"white", 0xFFFF, 255, 255, 255},
		{"black", 0x0000, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, g, b := Expand(tc.in)
			assert.InDelta(t, int(tc.r), int(r), 1)
			assert.InDelta(t, int(tc.g), int(g), 1)
			assert.InDelta(t, int(tc.b), int(b), 1)
		})
	}
}

func TestExpandIsTotal(t *testing.T) {
	// Property: every packed value yields channels in [0, 255]; uint8's
	// range makes the upper bound automatic, so this just exercises the
	// full input space for panics/overflow.
	for c := 0; c <= 0xFFFF; c++ {
		_, _, _ = Expand(uint16(c))
	}
}
