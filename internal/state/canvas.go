package state

import (
	"errors"
	"fmt"
	"image"
	"io"

	"LocalCanvas/internal/brush"
	"LocalCanvas/internal/export"
	"LocalCanvas/internal/fill"
	"LocalCanvas/internal/history"
	"LocalCanvas/internal/raster"
)

// Options configure a new canvas and the session that drives it.
type Options struct {
	Width      int
	Height     int
	MaxHistory int

	Color     string
	BrushSize float64
	Mode      Mode
	Brush     brush.Type
}

// DefaultOptions returns an 800x600 canvas with a 20 entry history, drawing
// round strokes of size 5.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     600,
		MaxHistory: history.DefaultMaxSize,
		Color:      "#6280eb",
		BrushSize:  5,
		Mode:       ModeDraw,
		Brush:      brush.Round,
	}
}

// Canvas owns the raster surface and its undo history and turns pointer
// events into brush, fill and stamp operations. Every completed gesture
// commits one snapshot.
//
// A Canvas is not safe for concurrent use; drive it from one goroutine.
type Canvas struct {
	surface *raster.Surface
	history *history.History

	color string
	size  float64
	mode  Mode
	brush brush.Type

	stroking bool
	anchor   raster.Point
}

// NewCanvas creates a blank canvas and seeds the history with it.
func NewCanvas(opts Options) (*Canvas, error) {
	s, err := raster.NewSurface(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("new canvas: %w", err)
	}
	h, err := history.New(opts.MaxHistory, s.Image())
	if err != nil {
		return nil, fmt.Errorf("new canvas: %w", err)
	}
	return &Canvas{
		surface: s,
		history: h,
		color:   opts.Color,
		size:    opts.BrushSize,
		mode:    opts.Mode,
		brush:   opts.Brush,
	}, nil
}

func (c *Canvas) SetColor(color string)     { c.color = color }
func (c *Canvas) SetBrushSize(size float64) { c.size = size }
func (c *Canvas) SetMode(mode Mode)         { c.mode = mode }
func (c *Canvas) SetBrushType(t brush.Type) { c.brush = t }
func (c *Canvas) Width() int                { return c.surface.Width() }
func (c *Canvas) Height() int               { return c.surface.Height() }
func (c *Canvas) Stroking() bool            { return c.stroking }
func (c *Canvas) HistoryLen() int           { return c.history.Len() }
func (c *Canvas) HistoryCursor() int        { return c.history.Cursor() }
func (c *Canvas) History() []history.Entry  { return c.history.Entries() }
func (c *Canvas) CanUndo() bool             { return c.history.CanUndo() }
func (c *Canvas) CanRedo() bool             { return c.history.CanRedo() }

// Image returns the visible pixel buffer for rendering. Treat it as
// read-only.
func (c *Canvas) Image() *image.RGBA { return c.surface.Image() }

// PointerDown starts a gesture at (x, y). Fill and decorative modes act and
// commit immediately; draw and erase begin a stroke anchored at the point.
func (c *Canvas) PointerDown(x, y float64) {
	c.finishStroke()

	p := raster.Pt(x, y)
	switch c.mode {
	case ModeFill:
		changed := fill.FloodFill(c.surface, x, y, c.color)
		Logger().Debug("flood fill", "component", "canvas", "x", x, "y", y, "color", c.color, "changed", changed)
		c.commit(history.ActionFill)
	case ModeDecorative:
		brush.Flower(c.surface, p, c.size, c.color)
		c.commit(history.ActionStamp)
	case ModeDraw, ModeErase:
		c.stroking = true
		c.anchor = p
	default:
		Logger().Debug("pointer down ignored", "component", "canvas", "mode", c.mode)
	}
}

// PointerMove marks the segment from the stroke anchor to (x, y) and moves
// the anchor there. It does nothing outside a stroke.
func (c *Canvas) PointerMove(x, y float64) {
	if !c.stroking {
		return
	}
	p := raster.Pt(x, y)
	switch c.mode {
	case ModeErase:
		brush.Erase(c.surface, c.anchor, p, c.size)
	case ModeDraw:
		brush.Apply(c.surface, c.brush, c.anchor, p, c.size, c.color)
	}
	c.anchor = p
}

// PointerUp ends the current stroke, committing it.
func (c *Canvas) PointerUp() { c.finishStroke() }

// PointerLeave ends the current stroke when the pointer leaves the surface.
func (c *Canvas) PointerLeave() { c.finishStroke() }

// Clear wipes the surface to transparent and commits the blank surface.
func (c *Canvas) Clear() {
	c.finishStroke()
	c.surface.Clear()
	c.commit(history.ActionClear)
}

// Undo steps back one snapshot and repaints the surface from it. It reports
// false at the oldest snapshot.
func (c *Canvas) Undo() bool {
	c.finishStroke()
	e, ok := c.history.Undo()
	if !ok {
		Logger().Debug("nothing to undo", "component", "canvas")
		return false
	}
	if err := c.restore(e); err != nil {
		c.history.Redo()
		Logger().Error("undo failed", "component", "canvas", "seq", e.Seq, "err", err)
		return false
	}
	return true
}

// Redo steps forward to a snapshot previously undone.
func (c *Canvas) Redo() bool {
	c.finishStroke()
	e, ok := c.history.Redo()
	if !ok {
		Logger().Debug("nothing to redo", "component", "canvas")
		return false
	}
	if err := c.restore(e); err != nil {
		c.history.Undo()
		Logger().Error("redo failed", "component", "canvas", "seq", e.Seq, "err", err)
		return false
	}
	return true
}

// Export writes the visible surface as PNG.
func (c *Canvas) Export(w io.Writer) error {
	return export.WritePNG(w, c.surface.Image())
}

func (c *Canvas) finishStroke() {
	if !c.stroking {
		return
	}
	c.stroking = false
	c.commit(history.ActionStroke)
}

func (c *Canvas) commit(action history.Action) {
	e, err := c.history.Commit(action, c.surface.Image())
	if err != nil {
		Logger().Error("snapshot not recorded", "component", "canvas", "action", action, "err", err)
		return
	}
	Logger().Debug("snapshot committed", "component", "canvas",
		"action", action, "seq", e.Seq, "cursor", c.history.Cursor(), "len", c.history.Len())
}

// restore decodes the snapshot completely before touching the surface, so
// the visible buffer changes in a single write.
func (c *Canvas) restore(e history.Entry) error {
	img, err := e.Image()
	if err != nil {
		return err
	}
	if img.Rect != c.surface.Bounds() {
		return errors.New("snapshot size does not match surface")
	}
	c.surface.Replace(img)
	return nil
}
