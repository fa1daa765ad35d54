// Package export encodes the visible surface for download.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
)

// DefaultFilename is the name offered when the drawing is downloaded.
const DefaultFilename = "my-drawing.png"

// Format is an output encoding.
type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

// ErrUnknownFormat is returned for file extensions with no encoder.
var ErrUnknownFormat = errors.New("export: unknown format")

// FormatFor picks the format from a file name's extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".pdf":
		return PDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

// Write encodes img in format f.
func Write(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return WritePNG(w, img)
	case PDF:
		return WritePDF(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Scale resizes img by factor with bilinear filtering. Factors that are not
// positive return img unchanged; the result is at least 1x1.
func Scale(img image.Image, factor float64) image.Image {
	if !(factor > 0) || factor == 1 || math.IsInf(factor, 0) {
		return img
	}
	b := img.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))
	return transform.Resize(img, w, h, transform.Linear)
}
