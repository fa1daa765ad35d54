package state

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalCanvas/internal/brush"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	s, err := NewSession(opts)
	require.NoError(t, err)
	return s
}

func TestSessionDefaults(t *testing.T) {
	s := newSession(t)
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, "#6280eb", s.Color())
	assert.Equal(t, 5.0, s.BrushSize())
	assert.Equal(t, ModeDraw, s.Mode())
	assert.Equal(t, brush.Round, s.BrushType())
	assert.Equal(t, "my-drawing.png", DownloadFilename)
}

func TestSessionIDsDiffer(t *testing.T) {
	assert.NotEqual(t, newSession(t).ID(), newSession(t).ID())
}

func TestSessionPropagatesSettings(t *testing.T) {
	s := newSession(t)
	s.SetColor("#00ff00")
	s.SetMode(ModeFill)
	s.Canvas().PointerDown(3, 3)

	_, g, _, a := s.Canvas().Image().At(60, 40).RGBA()
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), a)
}

func TestSessionRejectsBadSize(t *testing.T) {
	s := newSession(t)
	for _, size := range []float64{0, -4, math.NaN(), math.Inf(1)} {
		s.SetBrushSize(size)
		assert.Equal(t, 5.0, s.BrushSize())
	}
	s.SetBrushSize(12.5)
	assert.Equal(t, 12.5, s.BrushSize())
}

func TestSessionRejectsBadMode(t *testing.T) {
	s := newSession(t)
	s.SetMode("lasso")
	assert.Equal(t, ModeDraw, s.Mode())
	s.SetMode(ModeDecorative)
	assert.Equal(t, ModeDecorative, s.Mode())
}

func TestSessionAcceptsUnknownBrush(t *testing.T) {
	s := newSession(t)
	s.SetBrushType("crayon")
	assert.Equal(t, brush.Type("crayon"), s.BrushType())

	s.Canvas().PointerDown(5, 5)
	s.Canvas().PointerMove(30, 30)
	s.Canvas().PointerUp()
	assert.True(t, blank(s.Canvas().Image()))
}

func TestSessionClearUndoRedo(t *testing.T) {
	s := newSession(t)
	s.Canvas().PointerDown(5, 5)
	s.Canvas().PointerMove(30, 30)
	s.Canvas().PointerUp()
	s.ClearCanvas()
	assert.True(t, blank(s.Canvas().Image()))

	assert.True(t, s.Undo())
	assert.False(t, blank(s.Canvas().Image()))
	assert.True(t, s.Redo())
	assert.True(t, blank(s.Canvas().Image()))
	assert.False(t, s.Redo())
}

func TestDownloadDrawing(t *testing.T) {
	s := newSession(t)
	var buf bytes.Buffer
	require.NoError(t, s.DownloadDrawing(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(string(m))
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseMode("spray")
	assert.False(t, ok)
}
