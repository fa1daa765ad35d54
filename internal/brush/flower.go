package brush

import (
	"image/color"
	"math"

	"LocalCanvas/internal/raster"
)

// FlowerCore is the accent color of a flower's centre.
var FlowerCore = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}

// Flower stamps a six-petal rosette centred on at. Petals are ellipses of
// length 1.5*size and width 0.6*size in the given color, spaced 60 degrees
// apart; the core is a gold disc of radius 0.3*size.
func Flower(s *raster.Surface, at raster.Point, size float64, hex string) {
	if !(size > 0) {
		return
	}
	c, ok := raster.ParseColor(hex)
	if !ok {
		return
	}

	length := size * 1.5
	width := size * 0.6

	petals := make([]raster.Shape, 0, 6)
	for i := range 6 {
		angle := float64(i) * math.Pi / 3
		// petal centre sits half a length out from the middle, pointing up
		centre := raster.Pt(0, -length/2).Rotate(angle).Add(at)
		petals = append(petals, raster.Ellipse(centre, width/2, length/2, angle))
	}
	s.Composite(raster.OpOver, c, petals...)
	s.Composite(raster.OpOver, FlowerCore, raster.Circle(at, size*0.3))
}
