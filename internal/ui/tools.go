package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalCanvas/internal/brush"
	"LocalCanvas/internal/raster"
	"LocalCanvas/internal/state"
)

// Palette is the row of color swatches on the toolbar.
var Palette = []string{
	"#000000",
	"#ff0000",
	"#00ff00",
	"#0000ff",
	"#ffff00",
	"#ff00ff",
	"#6280eb",
	"#ffffff",
}

type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	c, _ := raster.ParseColor(s.Hex)
	rect := canvas.NewRectangle(c)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// HexColor formats c as #rrggbb, dropping alpha.
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Toolbar holds the controls bound to one canvas widget.
type Toolbar struct {
	board  *CanvasWidget
	window fyne.Window

	Mode  *widget.Select
	Brush *widget.Select
	Size  *widget.Slider
	undo  *widget.Button
	redo  *widget.Button
}

// NewToolbar builds the controls for board. Dialogs open over window.
func NewToolbar(board *CanvasWidget, window fyne.Window) *Toolbar {
	t := &Toolbar{board: board, window: window}
	s := board.Session()

	modes := make([]string, 0, len(state.Modes()))
	for _, m := range state.Modes() {
		modes = append(modes, string(m))
	}
	t.Mode = widget.NewSelect(modes, func(v string) {
		s.SetMode(state.Mode(v))
	})
	t.Mode.SetSelected(string(s.Mode()))

	brushes := make([]string, 0, len(brush.Types()))
	for _, b := range brush.Types() {
		brushes = append(brushes, string(b))
	}
	t.Brush = widget.NewSelect(brushes, func(v string) {
		s.SetBrushType(brush.Type(v))
	})
	t.Brush.SetSelected(string(s.BrushType()))

	t.Size = widget.NewSlider(1.0, 50.0)
	t.Size.SetValue(s.BrushSize())
	t.Size.OnChanged = func(v float64) {
		s.SetBrushSize(v)
	}

	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), t.Undo)
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), t.Redo)
	board.OnChanged = t.refreshHistory
	t.refreshHistory()
	return t
}

// SetColor selects a drawing color by hex string.
func (t *Toolbar) SetColor(hex string) {
	t.board.Session().SetColor(hex)
	t.board.SetStatus("Color " + hex)
}

func (t *Toolbar) Undo() {
	t.board.Session().Undo()
	t.board.changed()
}

func (t *Toolbar) Redo() {
	t.board.Session().Redo()
	t.board.changed()
}

// Clear wipes the canvas after the user confirms.
func (t *Toolbar) Clear() {
	dialog.ShowConfirm("Clear canvas", "Erase the whole drawing?", func(ok bool) {
		if !ok {
			return
		}
		t.board.Session().ClearCanvas()
		t.board.changed()
	}, t.window)
}

func (t *Toolbar) pickColor() {
	picker := dialog.NewColorPicker("Custom color", "Pick a drawing color", func(c color.Color) {
		t.SetColor(HexColor(c))
	}, t.window)
	picker.Advanced = true
	picker.Show()
}

// Download asks for a file and saves the drawing there.
func (t *Toolbar) Download() {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		if w == nil {
			return
		}
		if err := SaveDrawing(w, t.board.Session()); err != nil {
			dialog.ShowError(err, t.window)
			t.board.SetStatus("Save failed")
			return
		}
		t.board.SetStatus("Saved " + w.URI().Name())
	}, t.window)
	save.SetFileName(state.DownloadFilename)
	save.Show()
}

func (t *Toolbar) refreshHistory() {
	c := t.board.Session().Canvas()
	if c.CanUndo() {
		t.undo.Enable()
	} else {
		t.undo.Disable()
	}
	if c.CanRedo() {
		t.redo.Enable()
	} else {
		t.redo.Disable()
	}
}

// Object lays the controls out in one row.
func (t *Toolbar) Object() fyne.CanvasObject {
	swatches := container.NewHBox()
	for _, hex := range Palette {
		swatches.Add(newColorSwatch(hex, t.SetColor))
	}
	swatches.Add(widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.pickColor))

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), t.Clear),
		widget.NewToolbarAction(theme.DownloadIcon(), t.Download),
	)

	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.Size)
	return container.NewHBox(
		widget.NewLabel("Mode:"),
		t.Mode,
		widget.NewLabel("Brush:"),
		t.Brush,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		t.undo,
		t.redo,
		actions,
		layout.NewSpacer(),
	)
}
