package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/vector"
)

// ErrInvalidSize is returned when a surface is requested with a
// non-positive width or height.
var ErrInvalidSize = errors.New("raster: surface size must be positive")

// Op selects how a mark combines with the pixels already on the surface.
type Op int

const (
	// OpOver paints the mark color on top of existing pixels.
	OpOver Op = iota
	// OpErase removes existing coverage in proportion to the mark's coverage.
	OpErase
)

func (o Op) String() string {
	switch o {
	case OpOver:
		return "over"
	case OpErase:
		return "erase"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Surface is the pixel buffer being edited. Pixels are 8-bit premultiplied
// RGBA records, addressed by integer (x, y) with the origin at the top left.
type Surface struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// NewSurface creates a blank (fully transparent) surface.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		ras: &vector.Rasterizer{},
	}, nil
}

func (s *Surface) Width() int              { return s.img.Rect.Dx() }
func (s *Surface) Height() int             { return s.img.Rect.Dy() }
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Image returns the live pixel buffer. Callers must treat it as read-only.
func (s *Surface) Image() *image.RGBA { return s.img }

// RGBAAt returns the pixel record at (x, y), or transparent black when the
// point is outside the surface.
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Clear wipes every pixel to transparent black.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// Clone returns an independent copy of the pixel buffer.
func (s *Surface) Clone() *image.RGBA {
	return clone.AsRGBA(s.img)
}

// Replace overwrites the whole buffer with src in a single write. Pixels of
// the surface not covered by src become transparent.
func (s *Surface) Replace(src image.Image) {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect == s.img.Rect && rgba.Stride == s.img.Stride {
		copy(s.img.Pix, rgba.Pix)
		return
	}
	next := image.NewRGBA(s.img.Rect)
	draw.Draw(next, next.Rect, src, src.Bounds().Min, draw.Src)
	copy(s.img.Pix, next.Pix)
}

// Composite rasterizes the union of shapes into a coverage mask and applies
// it to the surface with op. For OpOver the mask is painted with c; for
// OpErase c is ignored.
func (s *Surface) Composite(op Op, c color.Color, shapes ...Shape) {
	area := image.Rectangle{}
	for _, sh := range shapes {
		area = area.Union(sh.Bounds())
	}
	area = area.Intersect(s.img.Rect)
	if area.Empty() {
		return
	}

	mask := s.coverage(area, shapes)

	switch op {
	case OpOver:
		draw.DrawMask(s.img, area, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
	case OpErase:
		s.destinationOut(area, mask)
	}
}

// destinationOut scales every premultiplied channel under the mask by
// (1 - coverage). image/draw has no destination-out operator.
func (s *Surface) destinationOut(area image.Rectangle, mask *image.Alpha) {
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := s.img.Pix[s.img.PixOffset(area.Min.X, y):]
		mrow := mask.Pix[(y-area.Min.Y)*mask.Stride:]
		for x := 0; x < area.Dx(); x++ {
			m := uint32(mrow[x])
			if m == 0 {
				continue
			}
			keep := 255 - m
			px := row[x*4 : x*4+4 : x*4+4]
			for i := range px {
				px[i] = uint8((uint32(px[i])*keep + 127) / 255)
			}
		}
	}
}

// coverage returns an origin-based alpha mask the size of area holding the
// maximum coverage of any shape at each pixel. Shapes are rasterized one at
// a time so overlapping outlines never cancel each other out.
func (s *Surface) coverage(area image.Rectangle, shapes []Shape) *image.Alpha {
	w, h := area.Dx(), area.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	tmp := image.NewAlpha(image.Rect(0, 0, w, h))
	ox, oy := float64(area.Min.X), float64(area.Min.Y)

	for _, sh := range shapes {
		if len(sh) < 3 || sh.Bounds().Intersect(area).Empty() {
			continue
		}
		s.ras.Reset(w, h)
		s.ras.DrawOp = draw.Src
		s.ras.MoveTo(float32(sh[0].X-ox), float32(sh[0].Y-oy))
		for _, p := range sh[1:] {
			s.ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
		}
		s.ras.ClosePath()
		s.ras.Draw(tmp, tmp.Rect, image.Opaque, image.Point{})

		for i, a := range tmp.Pix {
			if a > mask.Pix[i] {
				mask.Pix[i] = a
			}
		}
	}
	return mask
}
