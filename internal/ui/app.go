// Package ui is the desktop front-end: a window with a canvas widget and a
// toolbar driving one session.
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"LocalCanvas/internal/state"
)

// AppID identifies the app to fyne's preferences and storage.
const AppID = "io.localcanvas.desktop"

// NewWindow lays out board and its toolbar in a window of a.
func NewWindow(a fyne.App, s *state.Session, status string) (fyne.Window, *CanvasWidget) {
	w := a.NewWindow("Local Canvas")
	board := NewCanvasWidget(s)
	toolbar := NewToolbar(board, w)
	if status != "" {
		board.SetStatus(status)
	}

	content := container.NewBorder(toolbar.Object(), board.StatusBar(), nil, nil, board)
	w.SetContent(content)
	w.Resize(content.MinSize())
	w.SetOnClosed(func() {
		state.Logger().Info("window closed", "component", "ui", "session", s.ID(),
			"history", s.Canvas().HistoryLen())
	})
	return w, board
}

// RunApp opens the desktop window for s and blocks until it closes.
func RunApp(s *state.Session, status string) {
	a := app.NewWithID(AppID)
	w, _ := NewWindow(a, s, status)
	w.ShowAndRun()
}
