package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.NRGBA{R: 255, A: 255}

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := NewSurface(w, h)
	require.NoError(t, err)
	return s
}

func opaque(s *Surface) map[image.Point]bool {
	out := map[image.Point]bool{}
	b := s.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if s.RGBAAt(x, y).A == 255 {
				out[image.Pt(x, y)] = true
			}
		}
	}
	return out
}

func TestNewSurfaceInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := NewSurface(sz[0], sz[1])
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}

func TestNewSurfaceIsBlank(t *testing.T) {
	s := newSurface(t, 8, 4)
	assert.Equal(t, 8, s.Width())
	assert.Equal(t, 4, s.Height())
	for _, v := range s.Image().Pix {
		require.Zero(t, v)
	}
}

func TestCompositePixel(t *testing.T) {
	s := newSurface(t, 10, 10)
	s.Composite(OpOver, red, Pixel(3, 4))

	assert.Equal(t, color.RGBA{R: 255, A: 255}, s.RGBAAt(3, 4))
	assert.Equal(t, color.RGBA{}, s.RGBAAt(4, 4))
	assert.Equal(t, color.RGBA{}, s.RGBAAt(3, 5))
}

func TestCompositeOutsideIsIgnored(t *testing.T) {
	s := newSurface(t, 10, 10)
	s.Composite(OpOver, red, Pixel(-5, -5), Circle(Pt(100, 100), 4))
	assert.Empty(t, opaque(s))
}

func TestLineRoundCovered(t *testing.T) {
	s := newSurface(t, 100, 100)
	s.Composite(OpOver, red, Line(Pt(10, 10), Pt(10, 50), 5, CapRound)...)

	for y := 10; y <= 50; y++ {
		for x := 8; x <= 11; x++ {
			require.Equal(t, color.RGBA{R: 255, A: 255}, s.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
		assert.Zero(t, s.RGBAAt(14, y).A)
		assert.Zero(t, s.RGBAAt(5, y).A)
	}
	assert.Zero(t, s.RGBAAt(10, 60).A)
	assert.Zero(t, s.RGBAAt(50, 50).A)
}

func TestLineSquareCapExtends(t *testing.T) {
	round := newSurface(t, 40, 40)
	square := newSurface(t, 40, 40)
	round.Composite(OpOver, red, Line(Pt(10, 20), Pt(30, 20), 6, CapRound)...)
	square.Composite(OpOver, red, Line(Pt(10, 20), Pt(30, 20), 6, CapSquare)...)

	// corner of the square cap lies outside the round cap
	assert.Equal(t, uint8(255), square.RGBAAt(7, 17).A)
	assert.Less(t, round.RGBAAt(7, 17).A, uint8(255))
}

func TestLineContinuity(t *testing.T) {
	for _, lineCap := range []Cap{CapRound, CapSquare} {
		whole := newSurface(t, 60, 60)
		split := newSurface(t, 60, 60)

		whole.Composite(OpOver, red, Line(Pt(10, 10), Pt(10, 50), 5, lineCap)...)
		pts := []Point{Pt(10, 10), Pt(10, 17), Pt(10, 23), Pt(10, 31), Pt(10, 44), Pt(10, 50)}
		for i := 1; i < len(pts); i++ {
			split.Composite(OpOver, red, Line(pts[i-1], pts[i], 5, lineCap)...)
		}

		assert.Equal(t, opaque(whole), opaque(split), "cap %d", lineCap)
	}
}

func TestZeroLengthLine(t *testing.T) {
	s := newSurface(t, 20, 20)
	s.Composite(OpOver, red, Line(Pt(10, 10), Pt(10, 10), 6, CapRound)...)
	assert.Equal(t, uint8(255), s.RGBAAt(10, 10).A)
	assert.Equal(t, uint8(255), s.RGBAAt(8, 9).A)
	assert.Zero(t, s.RGBAAt(15, 10).A)
}

func TestEraseRemovesCoverage(t *testing.T) {
	s := newSurface(t, 20, 20)
	s.Composite(OpOver, red, Rect(Pt(10, 10), 20, 20, 0))
	require.Len(t, opaque(s), 400)

	s.Composite(OpErase, nil, Rect(Pt(10, 10), 4, 4, 0))
	assert.Equal(t, color.RGBA{}, s.RGBAAt(9, 9))
	assert.Equal(t, color.RGBA{}, s.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, s.RGBAAt(2, 2))
	assert.Len(t, opaque(s), 400-16)
}

func TestErasePartialCoverage(t *testing.T) {
	s := newSurface(t, 4, 4)
	s.Composite(OpOver, red, Rect(Pt(2, 2), 4, 4, 0))
	// left half of pixel (1,1) only
	s.Composite(OpErase, nil, Shape{{1, 0}, {1.5, 0}, {1.5, 4}, {1, 4}})

	px := s.RGBAAt(1, 1)
	assert.InDelta(t, 128, int(px.A), 2)
	assert.Equal(t, px.A, px.R)
}

func TestClearAndReplace(t *testing.T) {
	s := newSurface(t, 10, 10)
	s.Composite(OpOver, red, Rect(Pt(5, 5), 10, 10, 0))
	saved := s.Clone()

	s.Clear()
	assert.Empty(t, opaque(s))

	s.Replace(saved)
	assert.Len(t, opaque(s), 100)

	nrgba := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	nrgba.SetNRGBA(1, 1, color.NRGBA{G: 255, A: 255})
	s.Replace(nrgba)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, s.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{}, s.RGBAAt(8, 8))
}
