package state

import (
	"io"
	"math"

	"github.com/google/uuid"

	"LocalCanvas/internal/brush"
	"LocalCanvas/internal/export"
)

// DownloadFilename is the name offered for DownloadDrawing output.
const DownloadFilename = export.DefaultFilename

// Session holds the current tool settings and forwards them to its canvas.
// It is what toolbars and transports talk to.
type Session struct {
	id     string
	canvas *Canvas

	color string
	size  float64
	mode  Mode
	brush brush.Type
}

// NewSession creates a canvas from opts and a session driving it.
func NewSession(opts Options) (*Session, error) {
	c, err := NewCanvas(opts)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:     uuid.NewString(),
		canvas: c,
		color:  opts.Color,
		size:   opts.BrushSize,
		mode:   opts.Mode,
		brush:  opts.Brush,
	}
	s.updateCanvasState()
	Logger().Info("session started", "component", "session", "session", s.id,
		"width", c.Width(), "height", c.Height(), "max_history", opts.MaxHistory)
	return s, nil
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Canvas() *Canvas       { return s.canvas }
func (s *Session) Color() string         { return s.color }
func (s *Session) BrushSize() float64    { return s.size }
func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) BrushType() brush.Type { return s.brush }

// SetColor selects the color for strokes, fills and stamps. Colors the
// canvas cannot parse make those operations no-ops.
func (s *Session) SetColor(color string) {
	if color == s.color {
		return
	}
	s.color = color
	s.updateCanvasState()
}

// SetBrushSize changes the brush size. Sizes that are not positive and
// finite are ignored.
func (s *Session) SetBrushSize(size float64) {
	if !(size > 0) || math.IsInf(size, 1) {
		Logger().Warn("brush size ignored", "component", "session", "session", s.id, "size", size)
		return
	}
	if size == s.size {
		return
	}
	s.size = size
	s.updateCanvasState()
}

// SetMode switches between draw, erase, fill and decorative. Unknown modes
// are ignored.
func (s *Session) SetMode(mode Mode) {
	if _, ok := ParseMode(string(mode)); !ok {
		Logger().Warn("mode ignored", "component", "session", "session", s.id, "mode", mode)
		return
	}
	if mode == s.mode {
		return
	}
	s.mode = mode
	s.updateCanvasState()
}

// SetBrushType selects the stroke style. An unknown style is accepted but
// strokes drawn with it leave no mark.
func (s *Session) SetBrushType(t brush.Type) {
	if t == s.brush {
		return
	}
	s.brush = t
	s.updateCanvasState()
}

// ClearCanvas wipes the drawing. Asking the user first is up to the caller.
func (s *Session) ClearCanvas() { s.canvas.Clear() }

// Undo steps the canvas back one snapshot.
func (s *Session) Undo() bool { return s.canvas.Undo() }

// Redo re-applies a snapshot previously undone.
func (s *Session) Redo() bool { return s.canvas.Redo() }

// DownloadDrawing writes the visible drawing as PNG, the content for
// DownloadFilename.
func (s *Session) DownloadDrawing(w io.Writer) error {
	return s.canvas.Export(w)
}

func (s *Session) updateCanvasState() {
	s.canvas.SetColor(s.color)
	s.canvas.SetBrushSize(s.size)
	s.canvas.SetMode(s.mode)
	s.canvas.SetBrushType(s.brush)
}
