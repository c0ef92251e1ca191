package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-pipes/scene"
	"github.com/lixenwraith/vi-pipes/tween"
)

const doubleClickWindow = 400 * time.Millisecond

// inputHandler maps terminal events onto the session, camera and clock
type inputHandler struct {
	app   *app
	clock *tween.Clock
	sync  func()

	dragging   bool
	lastX      int
	lastY      int
	lastClick  time.Time
	lastButton tcell.ButtonMask
}

func newInputHandler(a *app, clock *tween.Clock, sync func()) *inputHandler {
	return &inputHandler{app: a, clock: clock, sync: sync}
}

// HandleEvent returns false when the program should exit
func (h *inputHandler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		if h.sync != nil {
			h.sync()
		}
	}
	return true
}

func (h *inputHandler) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case 'r', 'R':
			h.app.sess.Reset()
		case ' ':
			h.clock.Toggle()
		}
	}
	return true
}

func (h *inputHandler) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasPressed := h.lastButton&tcell.Button1 != 0
	h.lastButton = ev.Buttons()

	switch {
	case pressed && !wasPressed:
		if !h.lastClick.IsZero() && ev.When().Sub(h.lastClick) <= doubleClickWindow {
			h.app.sess.Reset()
			h.lastClick = time.Time{}
		} else {
			h.lastClick = ev.When()
		}
		h.dragging = true
	case pressed && h.dragging:
		h.camera().Drag(x-h.lastX, y-h.lastY)
	case !pressed:
		h.dragging = false
	}
	h.lastX, h.lastY = x, y
}

func (h *inputHandler) camera() *scene.Camera {
	return &h.app.graph.Camera
}
