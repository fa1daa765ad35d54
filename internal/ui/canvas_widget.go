package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalCanvas/internal/state"
)

// CanvasWidget shows a session's surface and turns mouse input into
// pointer events on its canvas.
type CanvasWidget struct {
	widget.BaseWidget
	session   *state.Session
	pressed   bool
	statusBar *widget.Label

	// OnChanged runs after any event that may have changed the history.
	OnChanged func()
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)

func NewCanvasWidget(s *state.Session) *CanvasWidget {
	c := &CanvasWidget{
		session:   s,
		statusBar: widget.NewLabel("Ready"),
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CanvasWidget) Session() *state.Session  { return c.session }
func (c *CanvasWidget) StatusBar() *widget.Label { return c.statusBar }

func (c *CanvasWidget) SetStatus(text string) {
	c.statusBar.SetText(text)
}

// toPixel maps a widget position onto surface coordinates. The surface is
// stretched over the whole widget.
func (c *CanvasWidget) toPixel(pos fyne.Position) (float64, float64) {
	size := c.Size()
	cv := c.session.Canvas()
	if size.Width <= 0 || size.Height <= 0 {
		return float64(pos.X), float64(pos.Y)
	}
	x := float64(pos.X) * float64(cv.Width()) / float64(size.Width)
	y := float64(pos.Y) * float64(cv.Height()) / float64(size.Height)
	return x, y
}

func (c *CanvasWidget) changed() {
	c.Refresh()
	if c.OnChanged != nil {
		c.OnChanged()
	}
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.pressed = true
	x, y := c.toPixel(e.Position)
	c.session.Canvas().PointerDown(x, y)
	c.changed()
}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.release()
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	c.move(e.Position)
}

func (c *CanvasWidget) DragEnd() {
	c.release()
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent) {}

func (c *CanvasWidget) MouseMoved(e *desktop.MouseEvent) {
	c.move(e.Position)
}

// MouseOut ends a stroke the same way releasing the button does.
func (c *CanvasWidget) MouseOut() {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.session.Canvas().PointerLeave()
	c.changed()
}

func (c *CanvasWidget) move(pos fyne.Position) {
	if !c.pressed || !c.session.Canvas().Stroking() {
		return
	}
	x, y := c.toPixel(pos)
	c.session.Canvas().PointerMove(x, y)
	c.Refresh()
}

func (c *CanvasWidget) release() {
	if !c.pressed {
		return
	}
	c.pressed = false
	c.session.Canvas().PointerUp()
	c.changed()
}

func (c *CanvasWidget) MinSize() fyne.Size {
	cv := c.session.Canvas()
	return fyne.NewSize(float32(cv.Width()), float32(cv.Height()))
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasWidgetRenderer{widget: c}
	r.background = canvas.NewRectangle(color.White)
	r.image = canvas.NewImageFromImage(c.session.Canvas().Image())
	r.image.FillMode = canvas.ImageFillStretch
	r.image.ScaleMode = canvas.ImageScalePixels
	return r
}

type canvasWidgetRenderer struct {
	widget     *CanvasWidget
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *canvasWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

func (r *canvasWidgetRenderer) Refresh() {
	// the surface buffer is reused across undo and clear
	r.image.Image = r.widget.session.Canvas().Image()
	r.image.Refresh()
}

func (r *canvasWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)
}

func (r *canvasWidgetRenderer) MinSize() fyne.Size { return r.widget.MinSize() }
func (r *canvasWidgetRenderer) Destroy()           {}
