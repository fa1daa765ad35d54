package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawing() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.SetRGBA(x, 10, color.RGBA{R: 255, A: 255})
	}
	return img
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor(DefaultFilename)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	f, err = FormatFor("/tmp/Out.PDF")
	require.NoError(t, err)
	assert.Equal(t, PDF, f)

	_, err = FormatFor("drawing.gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, drawing()))

	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), got.Bounds())
	r, _, _, a := got.At(5, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
	_, _, _, a = got.At(5, 5).RGBA()
	assert.Zero(t, a)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, drawing()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Subtype /Image")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, drawing(), Format("gif"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestScale(t *testing.T) {
	img := drawing()
	assert.Equal(t, image.Rect(0, 0, 20, 10), Scale(img, 0.5).Bounds())
	assert.Equal(t, image.Rect(0, 0, 80, 40), Scale(img, 2).Bounds())
	assert.Equal(t, image.Rect(0, 0, 1, 1), Scale(img, 0.001).Bounds())
	assert.Same(t, img, Scale(img, 1))
	assert.Same(t, img, Scale(img, -2))
}
