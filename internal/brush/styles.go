package brush

import (
	"image/color"
	"math"
	"math/rand/v2"

	"LocalCanvas/internal/raster"
)

// LineStyle strokes the straight segment with the given cap.
type LineStyle struct {
	Cap raster.Cap
}

func (l LineStyle) Mark(s *raster.Surface, from, to raster.Point, size float64, c color.Color) {
	s.Composite(raster.OpOver, c, raster.Line(from, to, size, l.Cap)...)
}

// SprayDensity is the number of particles scattered per segment.
const SprayDensity = 15

// SprayStyle scatters single-pixel particles uniformly in angle and distance
// within a disc of radius size around the segment end.
type SprayStyle struct {
	// Rand is the particle source; nil uses the global generator.
	Rand *rand.Rand
}

func (sp SprayStyle) Mark(s *raster.Surface, _, to raster.Point, size float64, c color.Color) {
	next := rand.Float64
	if sp.Rand != nil {
		next = sp.Rand.Float64
	}

	dots := make([]raster.Shape, 0, SprayDensity)
	for range SprayDensity {
		angle := next() * 2 * math.Pi
		dist := next() * size
		sin, cos := math.Sincos(angle)
		x := int(math.Floor(to.X + cos*dist))
		y := int(math.Floor(to.Y + sin*dist))
		dots = append(dots, raster.Pixel(x, y))
	}
	s.Composite(raster.OpOver, c, dots...)
}

// CalligraphyStyle stamps a flat nib: a 0.3*size x size rectangle at the
// segment end, turned perpendicular to the direction of travel, so the
// visible width of the stroke depends on its direction.
type CalligraphyStyle struct{}

func (CalligraphyStyle) Mark(s *raster.Surface, from, to raster.Point, size float64, c color.Color) {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	perp := angle + math.Pi/2
	s.Composite(raster.OpOver, c, raster.Rect(to, size*0.3, size, perp))
}

// StippleStyle stamps one disc of radius size/2 at the segment end, skipping
// segments shorter than size/2.
type StippleStyle struct{}

func (StippleStyle) Mark(s *raster.Surface, from, to raster.Point, size float64, c color.Color) {
	if from.Dist(to) < size*0.5 {
		return
	}
	s.Composite(raster.OpOver, c, raster.Circle(to, size/2))
}
