package main

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-pipes/config"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("120x40")
	if err != nil || w != 120 || h != 40 {
		t.Errorf("Expected 120x40, got %dx%d err=%v", w, h, err)
	}

	for _, bad := range []string{"", "120", "x40", "0x10", "-5x5"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := loadConfig("", 24, true)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Scene.FPS != 24 || cfg.Audio.Enabled {
		t.Errorf("Overrides not applied: fps=%d audio=%v", cfg.Scene.FPS, cfg.Audio.Enabled)
	}

	cfg, err = loadConfig("", 0, false)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Scene.FPS != config.DefaultFPS || !cfg.Audio.Enabled {
		t.Errorf("Zero overrides changed defaults: %+v", cfg.Scene)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipes.toml")
	if err := os.WriteFile(path, []byte("[pipe]\nspeed = -1.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path, 0, false); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
}

func TestRunHeadless_PrintsStats(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.Enabled = false

	var out bytes.Buffer
	if err := runHeadless(&out, cfg, rand.New(rand.NewPCG(1, 2)), 120, 80, 24); err != nil {
		t.Fatalf("runHeadless failed: %v", err)
	}

	line := out.String()
	if !strings.HasPrefix(line, "frames=120 spawned=") {
		t.Errorf("Unexpected stats line %q", line)
	}
	if strings.Contains(line, "spawned=0 ") {
		t.Errorf("Expected at least one pipe spawned: %q", line)
	}
}

func TestRunHeadless_Deterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Pipe.Lifespan = 400

	runOnce := func() string {
		var out bytes.Buffer
		if err := runHeadless(&out, cfg, rand.New(rand.NewPCG(42, 7)), 600, 60, 20); err != nil {
			t.Fatalf("runHeadless failed: %v", err)
		}
		return out.String()
	}
	if a, b := runOnce(), runOnce(); a != b {
		t.Errorf("Same seed produced different runs:\n%s\n%s", a, b)
	}
}

func TestRunHeadless_RejectsNegativeFrames(t *testing.T) {
	if err := runHeadless(&bytes.Buffer{}, config.Default(), rand.New(rand.NewPCG(1, 1)), -1, 10, 10); err == nil {
		t.Error("Expected error for negative frames")
	}
}

func TestRun_ReturnsErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.toml")
	if err := run(options{configPath: missing, headless: true, frames: 1, size: "10x10"}, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for missing config file")
	}
	if err := run(options{headless: true, frames: 1, size: "10"}, &bytes.Buffer{}); err == nil {
		t.Error("Expected error for malformed size")
	}
}

func TestRun_Headless(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{seed: 3, headless: true, frames: 30, size: "40x12"}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "frames=30 ") {
		t.Errorf("Unexpected stats line %q", out.String())
	}
}

func TestApp_RotationTweenAndClose(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	a, err := newApp(screen, config.Default(), rand.New(rand.NewPCG(3, 3)), nil)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	if a.spin == nil || a.sched.Tickers() != 1 {
		t.Fatal("Expected rotation tween and session tick hook")
	}

	a.step(0)
	a.step(7500 * time.Millisecond) // Quarter turn
	if spin := a.graph.Camera.Spin; spin <= 0 {
		t.Errorf("Expected camera to have spun, got %f", spin)
	}
	if a.spin.Done() {
		t.Error("Perpetual rotation completed")
	}

	a.close()
	if a.sched.Tickers() != 0 || a.sched.Len() != 0 || !a.spin.Killed() {
		t.Error("close must remove the tick hook and kill tweens")
	}
}
