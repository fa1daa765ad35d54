package ui

import (
	"errors"

	"fyne.io/fyne/v2"

	"LocalCanvas/internal/export"
	"LocalCanvas/internal/state"
)

// SaveDrawing writes the session's drawing to w and closes it. The format
// follows the file extension; names without a known one get PNG.
func SaveDrawing(w fyne.URIWriteCloser, s *state.Session) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	f, ferr := export.FormatFor(w.URI().Name())
	if errors.Is(ferr, export.ErrUnknownFormat) {
		f = export.PNG
	}
	if err = export.Write(w, s.Canvas().Image(), f); err != nil {
		state.Logger().Warn("save failed", "component", "ui", "uri", w.URI().String(), "err", err)
		return err
	}
	state.Logger().Info("drawing saved", "component", "ui", "session", s.ID(),
		"uri", w.URI().String(), "format", f)
	return nil
}
