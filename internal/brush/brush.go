// Package brush holds the pixel-marking algorithms that turn pointer motion
// into marks on a raster surface.
package brush

import (
	"image/color"

	"LocalCanvas/internal/raster"
)

// Type names a brush style.
type Type string

const (
	Round       Type = "round"
	Square      Type = "square"
	Spray       Type = "spray"
	Calligraphy Type = "calligraphy"
	Stipple     Type = "stipple"
)

// Style marks the pixels for one stroke segment ending at to.
type Style interface {
	Mark(s *raster.Surface, from, to raster.Point, size float64, c color.Color)
}

var styles = map[Type]Style{
	Round:       LineStyle{Cap: raster.CapRound},
	Square:      LineStyle{Cap: raster.CapSquare},
	Spray:       SprayStyle{},
	Calligraphy: CalligraphyStyle{},
	Stipple:     StippleStyle{},
}

// Types lists the selectable styles in toolbar order.
func Types() []Type {
	return []Type{Round, Square, Spray, Calligraphy, Stipple}
}

// ParseType validates a style name.
func ParseType(name string) (Type, bool) {
	t := Type(name)
	_, ok := Lookup(t)
	return t, ok
}

// Lookup returns the style registered for t.
func Lookup(t Type) (Style, bool) {
	st, ok := styles[t]
	return st, ok
}

// Apply marks the segment from -> to with the style named t. Unknown styles,
// unparsable colors and non-positive sizes leave the surface untouched.
func Apply(s *raster.Surface, t Type, from, to raster.Point, size float64, hex string) {
	st, ok := Lookup(t)
	if !ok || !(size > 0) {
		return
	}
	c, ok := raster.ParseColor(hex)
	if !ok {
		return
	}
	st.Mark(s, from, to, size, c)
}

// Erase removes coverage along a round-capped line of width size.
func Erase(s *raster.Surface, from, to raster.Point, size float64) {
	if !(size > 0) {
		return
	}
	s.Composite(raster.OpErase, nil, raster.Line(from, to, size, raster.CapRound)...)
}
