// Package config loads program settings from TOML layered over defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/vi-pipes/audio"
	"github.com/lixenwraith/vi-pipes/pipe"
	"github.com/lixenwraith/vi-pipes/render"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Scene defaults
const (
	DefaultRotationSeconds = 30.0
	DefaultPitch           = -0.075 // Turns
	DefaultFPS             = 60
	DefaultZoom            = 1.0
	DefaultBackground      = "#1a1b26"
)

// DefaultPalette is the pipe color pool
var DefaultPalette = []string{"#f4d928"}

// Scene holds presentation settings
type Scene struct {
	Palette         []string `toml:"palette"`
	Background      string   `toml:"background"`
	RotationSeconds float64  `toml:"rotation_seconds"` // One full turn; 0 disables auto rotation
	Pitch           float64  `toml:"pitch"`            // Initial tilt in turns
	Zoom            float64  `toml:"zoom"`
	FPS             int      `toml:"fps"`
}

// Config is the full program configuration
type Config struct {
	Pipe  pipe.Config  `toml:"pipe"`
	Scene Scene        `toml:"scene"`
	Audio audio.Config `toml:"audio"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Pipe: pipe.DefaultConfig(),
		Scene: Scene{
			Palette:         append([]string(nil), DefaultPalette...),
			Background:      DefaultBackground,
			RotationSeconds: DefaultRotationSeconds,
			Pitch:           DefaultPitch,
			Zoom:            DefaultZoom,
			FPS:             DefaultFPS,
		},
		Audio: audio.DefaultConfig(),
	}
}

// Load reads path over the defaults and validates the result
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults, unknown keys are rejected
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Pipe.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := render.ParseHex(c.Scene.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	switch {
	case c.Scene.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalid, c.Scene.FPS)
	case c.Scene.RotationSeconds < 0:
		return fmt.Errorf("%w: rotation_seconds %v is negative", ErrInvalid, c.Scene.RotationSeconds)
	case c.Scene.Zoom <= 0:
		return fmt.Errorf("%w: zoom %v must be positive", ErrInvalid, c.Scene.Zoom)
	}
	return nil
}

// Palette parses the scene palette
func (c Config) Palette() ([]render.RGB, error) {
	if len(c.Scene.Palette) == 0 {
		return nil, fmt.Errorf("%w: palette is empty", ErrInvalid)
	}
	p, err := render.ParsePalette(c.Scene.Palette)
	if err != nil {
		return nil, fmt.Errorf("%w: palette: %w", ErrInvalid, err)
	}
	return p, nil
}

// Background parses the scene background color
func (c Config) Background() render.RGB {
	bg, err := render.ParseHex(c.Scene.Background)
	if err != nil {
		return render.RgbBackground
	}
	return bg
}
