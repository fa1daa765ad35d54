package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalCanvas/internal/brush"
	"LocalCanvas/internal/state"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, state.DefaultOptions(), cfg.Options())
	assert.Equal(t, ":8888", cfg.Server.Listen)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	data := `
[canvas]
width = 320
height = 240

[session]
color = "#ff0000"
brush = "stipple"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, 320, opts.Width)
	assert.Equal(t, 240, opts.Height)
	assert.Equal(t, 20, opts.MaxHistory)
	assert.Equal(t, "#ff0000", opts.Color)
	assert.Equal(t, 5.0, opts.BrushSize)
	assert.Equal(t, state.ModeDraw, opts.Mode)
	assert.Equal(t, brush.Stipple, opts.Brush)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"zero width":  "[canvas]\nwidth = 0",
		"history":     "[canvas]\nmax_history = 0",
		"brush size":  "[session]\nbrush_size = -1.0",
		"color":       "[session]\ncolor = \"teal\"",
		"mode":        "[session]\nmode = \"lasso\"",
		"brush":       "[session]\nbrush = \"crayon\"",
		"log level":   "[log]\nlevel = \"loud\"",
		"unknown key": "[canvas]\ndepth = 3",
		"malformed":   "[canvas\nwidth = 3",
		"wrong type":  "[canvas]\nwidth = \"wide\"",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Decode([]byte(data), &cfg))
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Canvas.Height = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	cfg := Default()
	cfg.Canvas.Width = 1024
	cfg.Session.Brush = string(brush.Calligraphy)
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Session.Mode = string(state.ModeFill)
	data, err := cfg.Encode()
	require.NoError(t, err)

	got := Default()
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, cfg, got)
}
