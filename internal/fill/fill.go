// Package fill implements region fill over a raster surface.
package fill

import (
	"image"
	"image/color"
	"math"

	"LocalCanvas/internal/raster"
)

// FloodFill replaces the 4-connected region of pixels that exactly match the
// RGBA record at the seed with the given six digit hex color, written fully
// opaque. It reports whether the surface changed.
//
// The call is a no-op when the color is malformed, the seed lies outside the
// surface, or the seed's straight (unpremultiplied) RGB already equals the
// fill color.
func FloodFill(s *raster.Surface, seedX, seedY float64, hex string) bool {
	fr, fg, fb, ok := raster.ParseHexRGB(hex)
	if !ok {
		return false
	}
	x0, y0 := int(math.Floor(seedX)), int(math.Floor(seedY))
	bounds := s.Bounds()
	if !image.Pt(x0, y0).In(bounds) {
		return false
	}

	buf := s.Clone()
	w, h := bounds.Dx(), bounds.Dy()
	pix := buf.Pix

	at := buf.PixOffset(x0, y0)
	start := [4]uint8{pix[at], pix[at+1], pix[at+2], pix[at+3]}
	if n := color.NRGBAModel.Convert(buf.RGBAAt(x0, y0)).(color.NRGBA); n.R == fr && n.G == fg && n.B == fb {
		return false
	}

	stack := []image.Point{{x0, y0}}
	visited := make([]bool, w*h)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		k := p.Y*w + p.X
		if visited[k] {
			continue
		}

		i := buf.PixOffset(p.X, p.Y)
		if [4]uint8(pix[i:i+4]) != start {
			continue
		}
		visited[k] = true
		pix[i], pix[i+1], pix[i+2], pix[i+3] = fr, fg, fb, 0xff

		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}

	s.Replace(buf)
	return true
}
