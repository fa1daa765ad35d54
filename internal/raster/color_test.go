package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHexRGB(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#ff0000", 255, 0, 0, true},
		{"00FF00", 0, 255, 0, true},
		{"#0a0B0c", 10, 11, 12, true},
		{"#fff", 0, 0, 0, false},
		{"#6280ebff", 0, 0, 0, false},
		{"red", 0, 0, 0, false},
		{"", 0, 0, 0, false},
		{"##ff0000", 0, 0, 0, false},
	}
	for _, c := range cases {
		r, g, b, ok := ParseHexRGB(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, [3]uint8{c.r, c.g, c.b}, [3]uint8{r, g, b}, c.in)
	}
}

func TestParseColor(t *testing.T) {
	c, ok := ParseColor("#6280ebff")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0x62, G: 0x80, B: 0xeb, A: 0xff}, c)

	c, ok = ParseColor("f00")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, c)

	c, ok = ParseColor("#00000080")
	assert.True(t, ok)
	assert.Equal(t, uint8(0x80), c.A)

	for _, bad := range []string{"", "#", "#12345", "#ggg", "+fff", "#1234567"} {
		_, ok := ParseColor(bad)
		assert.False(t, ok, bad)
	}
}
