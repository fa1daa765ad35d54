// Package config loads LocalCanvas settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"LocalCanvas/internal/brush"
	"LocalCanvas/internal/raster"
	"LocalCanvas/internal/state"
)

// DefaultFilename is the config file main looks for when no path is given.
const DefaultFilename = "localcanvas.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Canvas struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	MaxHistory int `toml:"max_history"`
}

type Session struct {
	Color     string  `toml:"color"`
	BrushSize float64 `toml:"brush_size"`
	Mode      string  `toml:"mode"`
	Brush     string  `toml:"brush"`
}

type Server struct {
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`
}

type Log struct {
	Level string `toml:"level"`
}

// Config is the whole file.
type Config struct {
	Canvas  Canvas  `toml:"canvas"`
	Session Session `toml:"session"`
	Server  Server  `toml:"server"`
	Log     Log     `toml:"log"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	opts := state.DefaultOptions()
	return Config{
		Canvas: Canvas{
			Width:      opts.Width,
			Height:     opts.Height,
			MaxHistory: opts.MaxHistory,
		},
		Session: Session{
			Color:     opts.Color,
			BrushSize: opts.BrushSize,
			Mode:      string(opts.Mode),
			Brush:     string(opts.Brush),
		},
		Server: Server{
			Listen:    ":8888",
			Advertise: true,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Keys the file does not set keep their default value; unknown keys are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals TOML data into cfg and validates the result.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return errors.New(strict.String())
		}
		return err
	}
	return cfg.Validate()
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Save writes cfg to path as TOML, replacing any existing file.
func (c Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate reports the first setting a canvas or session would reject.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.MaxHistory < 1:
		return fmt.Errorf("%w: max_history %d", ErrInvalid, c.Canvas.MaxHistory)
	case !(c.Session.BrushSize > 0) || math.IsInf(c.Session.BrushSize, 1):
		return fmt.Errorf("%w: brush_size %v", ErrInvalid, c.Session.BrushSize)
	}
	if _, ok := raster.ParseColor(c.Session.Color); !ok {
		return fmt.Errorf("%w: color %q", ErrInvalid, c.Session.Color)
	}
	if _, ok := state.ParseMode(c.Session.Mode); !ok {
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Session.Mode)
	}
	if _, ok := brush.ParseType(c.Session.Brush); !ok {
		return fmt.Errorf("%w: brush %q", ErrInvalid, c.Session.Brush)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Options converts the canvas and session sections for state.NewSession.
func (c Config) Options() state.Options {
	return state.Options{
		Width:      c.Canvas.Width,
		Height:     c.Canvas.Height,
		MaxHistory: c.Canvas.MaxHistory,
		Color:      c.Session.Color,
		BrushSize:  c.Session.BrushSize,
		Mode:       state.Mode(c.Session.Mode),
		Brush:      brush.Type(c.Session.Brush),
	}
}

// LogLevel parses the [log] level.
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return l, nil
}
