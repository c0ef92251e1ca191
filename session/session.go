// Package session keeps exactly one pipe growing in a scene.
//
// Tick runs once per frame: it replaces a dead or missing pipe, refreshes the live
// pipe's polyline and asks the renderer for a frame. Reset cancels every pending
// tween and removes all geometry the session's pipes ever registered.
package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/vi-pipes/pipe"
	"github.com/lixenwraith/vi-pipes/render"
	"github.com/lixenwraith/vi-pipes/scene"
	"github.com/lixenwraith/vi-pipes/vmath"
)

// Precondition errors returned by New
var (
	ErrNoRenderer = errors.New("session: renderer unavailable")
	ErrNoAnimator = errors.New("session: tween scheduler unavailable")
	ErrNoRand     = errors.New("session: random source unavailable")
	ErrNoPalette  = errors.New("session: palette is empty")
)

// Renderer is the pipe geometry capability plus frame rendering
type Renderer interface {
	pipe.Renderer
	RenderFrame()
}

// Config holds session-level settings
type Config struct {
	Pipe    pipe.Config
	Palette []render.RGB
}

// Deps are the external capabilities a session drives
// Observer is optional and receives every pipe notification after the session counts it
type Deps struct {
	Renderer Renderer
	Animator pipe.Animator
	Rand     pipe.Source
	Observer pipe.Observer
}

// Stats are cumulative session counters, Reset does not clear them
type Stats struct {
	Frames    uint64
	Spawned   uint64
	Deaths    uint64
	Ornaments uint64
	Landmarks uint64
	Resets    uint64
}

// Session owns the current pipe and every pipe spawned since the last Reset
type Session struct {
	cfg  Config
	deps Deps

	current *pipe.Pipe
	history []*pipe.Pipe
	stats   Stats
}

// New validates collaborators and configuration
func New(cfg Config, deps Deps) (*Session, error) {
	switch {
	case deps.Renderer == nil:
		return nil, ErrNoRenderer
	case deps.Animator == nil:
		return nil, ErrNoAnimator
	case deps.Rand == nil:
		return nil, ErrNoRand
	case len(cfg.Palette) == 0:
		return nil, ErrNoPalette
	}
	if err := cfg.Pipe.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	palette := make([]render.RGB, len(cfg.Palette))
	copy(palette, cfg.Palette)
	cfg.Palette = palette

	return &Session{cfg: cfg, deps: deps}, nil
}

// Tick spawns a pipe when none is alive, refreshes the live one and renders a frame
func (s *Session) Tick() {
	if s.current == nil || !s.current.Alive() {
		s.spawn()
	}
	if s.current.Alive() {
		s.current.Refresh()
	}
	s.deps.Renderer.RenderFrame()
	s.stats.Frames++
}

func (s *Session) spawn() {
	half := s.cfg.Pipe.HalfExtent
	rng := s.deps.Rand
	start := vmath.Vec3F{
		X: (rng.Float64()*2 - 1) * half,
		Y: (rng.Float64()*2 - 1) * half,
		Z: (rng.Float64()*2 - 1) * half,
	}
	color := s.cfg.Palette[rng.IntN(len(s.cfg.Palette))]

	p := pipe.New(start, color, s.cfg.Pipe, pipe.Deps{
		Renderer: s.deps.Renderer,
		Animator: s.deps.Animator,
		Rand:     rng,
		Observer: s,
	})
	s.current = p
	s.history = append(s.history, p)
	s.stats.Spawned++
	log.Printf("session: pipe %d spawned at (%.1f, %.1f, %.1f) color %s", s.stats.Spawned, start.X, start.Y, start.Z, color.Hex())
}

// Reset cancels pending tweens and removes the geometry of every recorded pipe
// Idempotent; the next Tick spawns a fresh pipe
func (s *Session) Reset() {
	released := len(s.history)
	for _, p := range s.history {
		p.Release()
	}
	for i := range s.history {
		s.history[i] = nil
	}
	s.history = s.history[:0]
	s.current = nil
	s.stats.Resets++
	log.Printf("session: reset released %d pipes", released)
}

// Current returns the current pipe, nil before the first Tick or after Reset
func (s *Session) Current() *pipe.Pipe {
	return s.current
}

// History returns the pipes spawned since the last Reset, oldest first
func (s *Session) History() []*pipe.Pipe {
	out := make([]*pipe.Pipe, len(s.history))
	copy(out, s.history)
	return out
}

// Stats returns a snapshot of the session counters
func (s *Session) Stats() Stats {
	return s.stats
}

// OrnamentPlaced implements pipe.Observer
func (s *Session) OrnamentPlaced(p *pipe.Pipe, o pipe.Ornament) {
	s.stats.Ornaments++
	if o.Kind == scene.KindLandmark {
		s.stats.Landmarks++
		log.Printf("session: landmark at (%.1f, %.1f, %.1f)", o.At.X, o.At.Y, o.At.Z)
	}
	if s.deps.Observer != nil {
		s.deps.Observer.OrnamentPlaced(p, o)
	}
}

// PipeDied implements pipe.Observer
func (s *Session) PipeDied(p *pipe.Pipe) {
	s.stats.Deaths++
	log.Printf("session: pipe died after %d segments, length %.1f", p.Segments(), p.Length())
	if s.deps.Observer != nil {
		s.deps.Observer.PipeDied(p)
	}
}
