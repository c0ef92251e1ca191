package main

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-pipes/config"
	"github.com/lixenwraith/vi-pipes/tween"
)

func newTestInput(t *testing.T) (*inputHandler, *int) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)

	a, err := newApp(screen, config.Default(), rand.New(rand.NewPCG(5, 5)), nil)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	a.step(0)

	syncs := 0
	clock := tween.NewClock(tween.NewMockTimeSource(time.Unix(0, 0)))
	return newInputHandler(a, clock, func() { syncs++ }), &syncs
}

func TestHandleKey_Quit(t *testing.T) {
	h, _ := newTestInput(t)

	cases := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"Q", tcell.KeyRune, 'Q'},
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if h.handleKey(tc.key, tc.r) {
				t.Errorf("Expected %s to quit", tc.name)
			}
		})
	}

	if !h.handleKey(tcell.KeyRune, 'x') {
		t.Error("Unbound key must not quit")
	}
}

func TestHandleKey_ResetAndPause(t *testing.T) {
	h, _ := newTestInput(t)
	if h.app.sess.Current() == nil {
		t.Fatal("Expected a pipe after first step")
	}

	h.handleKey(tcell.KeyRune, 'r')
	if h.app.sess.Current() != nil || h.app.graph.Len() != 0 {
		t.Error("Reset key must clear the session")
	}

	h.handleKey(tcell.KeyRune, ' ')
	if !h.clock.IsPaused() {
		t.Error("Space must pause")
	}
	h.handleKey(tcell.KeyRune, ' ')
	if h.clock.IsPaused() {
		t.Error("Second space must resume")
	}
}

func TestHandleMouse_DragRotates(t *testing.T) {
	h, _ := newTestInput(t)
	cam := &h.app.graph.Camera
	yaw := cam.Yaw

	h.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(30, 10, tcell.Button1, tcell.ModNone))
	if cam.Yaw <= yaw {
		t.Errorf("Expected drag right to increase yaw, got %f", cam.Yaw)
	}

	h.HandleEvent(tcell.NewEventMouse(30, 10, tcell.ButtonNone, tcell.ModNone))
	yaw = cam.Yaw
	h.HandleEvent(tcell.NewEventMouse(50, 10, tcell.ButtonNone, tcell.ModNone))
	if cam.Yaw != yaw {
		t.Error("Motion without a button must not rotate")
	}
}

func TestHandleMouse_DoubleClickResets(t *testing.T) {
	h, _ := newTestInput(t)

	h.HandleEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(5, 5, tcell.ButtonNone, tcell.ModNone))
	if h.app.sess.Current() == nil {
		t.Fatal("Single click must not reset")
	}

	h.HandleEvent(tcell.NewEventMouse(5, 5, tcell.Button1, tcell.ModNone))
	if h.app.sess.Current() != nil {
		t.Error("Double click must reset the session")
	}
}

func TestHandleEvent_ResizeSyncs(t *testing.T) {
	h, syncs := newTestInput(t)
	if !h.HandleEvent(tcell.NewEventResize(100, 30)) {
		t.Error("Resize must not quit")
	}
	if *syncs != 1 {
		t.Errorf("Expected one sync, got %d", *syncs)
	}
}
