package raster

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"
)

var hexRGB = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// ParseHexRGB parses a six digit hex color with an optional leading '#'.
// Anything else is rejected.
func ParseHexRGB(s string) (r, g, b uint8, ok bool) {
	m := hexRGB.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	return hexByte(m[1]), hexByte(m[2]), hexByte(m[3]), true
}

// ParseColor parses #rgb, #rrggbb and #rrggbbaa colors (the '#' is optional)
// into a straight-alpha color.
func ParseColor(s string) (color.NRGBA, bool) {
	h := strings.TrimPrefix(s, "#")
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return color.NRGBA{}, false
	}
	switch len(h) {
	case 3:
		return color.NRGBA{
			R: hexByte(h[0:1]) * 0x11,
			G: hexByte(h[1:2]) * 0x11,
			B: hexByte(h[2:3]) * 0x11,
			A: 0xff,
		}, true
	case 6:
		return color.NRGBA{R: hexByte(h[0:2]), G: hexByte(h[2:4]), B: hexByte(h[4:6]), A: 0xff}, true
	case 8:
		return color.NRGBA{R: hexByte(h[0:2]), G: hexByte(h[2:4]), B: hexByte(h[4:6]), A: hexByte(h[6:8])}, true
	}
	return color.NRGBA{}, false
}

// hexByte expects input already validated as hex.
func hexByte(s string) uint8 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return uint8(v)
}
