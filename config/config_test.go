package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/vi-pipes/pipe"
	"github.com/lixenwraith/vi-pipes/render"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Pipe != pipe.DefaultConfig() {
		t.Errorf("Expected pipe defaults, got %+v", cfg.Pipe)
	}
	p, err := cfg.Palette()
	if err != nil || len(p) != 1 || p[0] != (render.RGB{R: 0xf4, G: 0xd9, B: 0x28}) {
		t.Errorf("Unexpected default palette %v err=%v", p, err)
	}
	if cfg.Background() != render.RgbBackground {
		t.Errorf("Expected default background %v, got %v", render.RgbBackground, cfg.Background())
	}
}

func TestDefault_PaletteNotShared(t *testing.T) {
	a := Default()
	a.Scene.Palette[0] = "#000000"
	if Default().Scene.Palette[0] != DefaultPalette[0] {
		t.Error("Default palette mutated through a returned config")
	}
}

func TestDecode_OverlaysDefaults(t *testing.T) {
	src := `
[pipe]
lifespan = 500.0
landmark_chance = 0.5

[scene]
palette = ["#ff0000", "#00ff00"]
fps = 30

[audio]
enabled = false
volume = 0.25
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cfg.Pipe.Lifespan != 500 || cfg.Pipe.LandmarkChance != 0.5 {
		t.Errorf("Pipe overrides not applied: %+v", cfg.Pipe)
	}
	if cfg.Pipe.Speed != pipe.DefaultSpeed || cfg.Pipe.HalfExtent != pipe.DefaultHalfExtent {
		t.Errorf("Unset pipe keys lost defaults: %+v", cfg.Pipe)
	}
	if len(cfg.Scene.Palette) != 2 || cfg.Scene.FPS != 30 || cfg.Scene.RotationSeconds != DefaultRotationSeconds {
		t.Errorf("Unexpected scene %+v", cfg.Scene)
	}
	if cfg.Audio.Enabled || cfg.Audio.MasterVolume != 0.25 || cfg.Audio.SampleRate == 0 {
		t.Errorf("Unexpected audio %+v", cfg.Audio)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		invalid bool
	}{
		{"unknown key", "[pipe]\nlifespn = 3.0\n", true},
		{"unknown section", "[camera]\nzoom = 2.0\n", true},
		{"negative lifespan", "[pipe]\nlifespan = -1.0\n", true},
		{"empty palette", "[scene]\npalette = []\n", true},
		{"bad color", "[scene]\npalette = [\"yellow\"]\n", true},
		{"bad background", "[scene]\nbackground = \"#12\"\n", true},
		{"zero fps", "[scene]\nfps = 0\n", true},
		{"loud audio", "[audio]\nvolume = 1.5\n", true},
		{"syntax", "[pipe\n", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.src))
			if err == nil {
				t.Fatal("Expected error")
			}
			if errors.Is(err, ErrInvalid) != tc.invalid {
				t.Errorf("errors.Is(ErrInvalid)=%v, want %v: %v", !tc.invalid, tc.invalid, err)
			}
		})
	}
}

func TestDecode_PipeErrorKeepsSentinel(t *testing.T) {
	_, err := Decode(strings.NewReader("[pipe]\nstroke = 0.0\n"))
	if !errors.Is(err, pipe.ErrInvalidConfig) || !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected both sentinels, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipes.toml")
	if err := os.WriteFile(path, []byte("[scene]\nzoom = 2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scene.Zoom != 2 {
		t.Errorf("Expected zoom 2, got %v", cfg.Scene.Zoom)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
