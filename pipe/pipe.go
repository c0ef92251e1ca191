// Package pipe grows one axis-aligned 3D polyline segment by segment.
//
// A Pipe picks an axis different from its previous one, samples a target coordinate,
// and tweens an in-progress tail point toward it at constant speed. Each completed
// segment leaves an ornament at its endpoint; once the cumulative length exceeds the
// lifespan the pipe stops. Growth is driven only by tween completion, so segments are
// strictly sequential and no segment starts before the previous one lands.
package pipe

import (
	"math"
	"time"

	"github.com/lixenwraith/vi-pipes/render"
	"github.com/lixenwraith/vi-pipes/scene"
	"github.com/lixenwraith/vi-pipes/tween"
	"github.com/lixenwraith/vi-pipes/vmath"
)

// Renderer is the geometry capability a pipe draws through
type Renderer interface {
	Create(s scene.Shape) scene.Handle
	Update(h scene.Handle, path []vmath.Vec3F)
	Remove(h scene.Handle)
}

// Animator starts cancellable field tweens
type Animator interface {
	To(field *float64, opts tween.Options) *tween.Tween
}

// Source is the randomness a pipe consumes, *rand.Rand from math/rand/v2 satisfies it
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Observer receives pipe lifecycle notifications, called from tween completion
type Observer interface {
	OrnamentPlaced(p *Pipe, o Ornament)
	PipeDied(p *Pipe)
}

// Deps are the collaborators a pipe needs for its whole lifetime
// Renderer, Animator and Rand must be non-nil; Observer is optional
type Deps struct {
	Renderer Renderer
	Animator Animator
	Rand     Source
	Observer Observer
}

// State is the pipe lifecycle stage
type State uint8

const (
	StateGrowing  State = iota // Segment in flight or about to start
	StateDead                  // Lifespan exceeded, geometry still on screen
	StateReleased              // Geometry removed and tween cancelled
)

func (s State) String() string {
	switch s {
	case StateGrowing:
		return "growing"
	case StateDead:
		return "dead"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Ornament is the decoration left at a completed segment endpoint
type Ornament struct {
	Kind   scene.Kind
	At     vmath.Vec3F
	Handle scene.Handle
}

// Duration returns the tween duration for a segment of distance at speed seconds per unit
func Duration(distance, speed float64) time.Duration {
	return time.Duration(distance * speed * float64(time.Second))
}

// Pipe is one growing polyline with ornamented joints
type Pipe struct {
	cfg   Config
	deps  Deps
	color render.RGB

	state  State
	axis   vmath.Axis
	length float64

	path     []vmath.Vec3F // Committed points, immutable history
	tail     vmath.Vec3F   // In-progress endpoint, owned by anim while growing
	inFlight bool
	target   float64
	segment  time.Duration // Duration of the segment in flight or last completed

	line      scene.Handle
	cap       scene.Handle
	ornaments []Ornament
	anim      *tween.Tween
}

// New registers the pipe geometry at start and begins the first segment
func New(start vmath.Vec3F, color render.RGB, cfg Config, deps Deps) *Pipe {
	p := &Pipe{
		cfg:   cfg,
		deps:  deps,
		color: color,
		state: StateGrowing,
		path:  []vmath.Vec3F{start},
	}

	p.line = deps.Renderer.Create(scene.Shape{
		Kind:   scene.KindPolyline,
		Color:  color,
		Stroke: cfg.Stroke,
		Path:   p.path,
	})
	p.cap = deps.Renderer.Create(scene.Shape{
		Kind:     scene.KindMarker,
		Color:    color,
		Stroke:   cfg.Stroke * 2,
		Position: start,
	})

	p.grow()
	return p
}

// grow starts the next segment from the last committed point
func (p *Pipe) grow() {
	pool := vmath.AxesExcept(p.axis)
	p.axis = pool[p.deps.Rand.IntN(len(pool))]

	p.tail = p.path[len(p.path)-1]
	cell := vmath.Component(&p.tail, p.axis)

	half := p.cfg.HalfExtent
	p.target = (p.deps.Rand.Float64()*2 - 1) * half
	distance := math.Abs(p.target - *cell)
	p.length += distance
	p.segment = Duration(distance, p.cfg.Speed)
	p.inFlight = true

	p.anim = p.deps.Animator.To(cell, tween.Options{
		To:         p.target,
		Duration:   p.segment,
		Ease:       tween.Linear,
		OnComplete: p.land,
	})
}

// land commits the finished segment, ornaments its endpoint and either stops or grows again
func (p *Pipe) land() {
	if p.state != StateGrowing || !p.inFlight {
		return
	}
	p.anim = nil
	p.inFlight = false

	end := p.tail
	*vmath.Component(&end, p.axis) = p.target
	p.path = append(p.path, end)

	o := p.placeOrnament(end)
	if p.deps.Observer != nil {
		p.deps.Observer.OrnamentPlaced(p, o)
	}

	if p.length > p.cfg.Lifespan {
		p.state = StateDead
		// Final redraw so the landed endpoint is exact even if no frame refreshes it
		p.deps.Renderer.Update(p.line, p.path)
		if p.deps.Observer != nil {
			p.deps.Observer.PipeDied(p)
		}
		return
	}
	p.grow()
}

func (p *Pipe) placeOrnament(at vmath.Vec3F) Ornament {
	o := Ornament{Kind: scene.KindMarker, At: at}
	shape := scene.Shape{
		Kind:     scene.KindMarker,
		Color:    p.color,
		Stroke:   p.cfg.Stroke * 2,
		Position: at,
	}
	if p.deps.Rand.Float64() < p.cfg.LandmarkChance {
		o.Kind = scene.KindLandmark
		shape.Kind = scene.KindLandmark
		shape.Stroke = p.cfg.Stroke
	}
	o.Handle = p.deps.Renderer.Create(shape)
	p.ornaments = append(p.ornaments, o)
	return o
}

// Refresh pushes the current points, including the moving tail, to the polyline
func (p *Pipe) Refresh() {
	if p.state == StateReleased {
		return
	}
	p.deps.Renderer.Update(p.line, p.Points())
}

// Release cancels the pending tween, then removes every owned shape
// Idempotent; a released pipe never grows or draws again
func (p *Pipe) Release() {
	if p.state == StateReleased {
		return
	}
	if p.anim != nil {
		p.anim.Kill()
		p.anim = nil
	}
	p.inFlight = false

	r := p.deps.Renderer
	r.Remove(p.line)
	r.Remove(p.cap)
	for _, o := range p.ornaments {
		r.Remove(o.Handle)
	}
	p.line, p.cap = 0, 0
	p.ornaments = nil
	p.state = StateReleased
}

// Alive reports whether the pipe may still extend
func (p *Pipe) Alive() bool {
	return p.state == StateGrowing
}

func (p *Pipe) State() State               { return p.state }
func (p *Pipe) Axis() vmath.Axis           { return p.axis }
func (p *Pipe) Length() float64            { return p.length }
func (p *Pipe) Color() render.RGB          { return p.color }
func (p *Pipe) Segments() int              { return len(p.path) - 1 }
func (p *Pipe) InFlight() bool             { return p.inFlight }
func (p *Pipe) Line() scene.Handle         { return p.line }
func (p *Pipe) Cap() scene.Handle          { return p.cap }
func (p *Pipe) Pending() *tween.Tween      { return p.anim }
func (p *Pipe) Target() float64            { return p.target }
func (p *Pipe) SegmentTime() time.Duration { return p.segment }

// Path returns a copy of the committed points, one more than completed segments
func (p *Pipe) Path() []vmath.Vec3F {
	out := make([]vmath.Vec3F, len(p.path))
	copy(out, p.path)
	return out
}

// Points returns the committed points plus the in-progress tail while a segment is in flight
func (p *Pipe) Points() []vmath.Vec3F {
	n := len(p.path)
	if p.inFlight {
		n++
	}
	out := make([]vmath.Vec3F, 0, n)
	out = append(out, p.path...)
	if p.inFlight {
		out = append(out, p.tail)
	}
	return out
}

// Tail returns the in-progress endpoint and whether a segment is in flight
func (p *Pipe) Tail() (vmath.Vec3F, bool) {
	return p.tail, p.inFlight
}

// Ornaments returns a copy of the per-segment ornaments
func (p *Pipe) Ornaments() []Ornament {
	out := make([]Ornament, len(p.ornaments))
	copy(out, p.ornaments)
	return out
}

// Handles returns every live shape handle the pipe owns
func (p *Pipe) Handles() []scene.Handle {
	if p.state == StateReleased {
		return nil
	}
	out := make([]scene.Handle, 0, 2+len(p.ornaments))
	out = append(out, p.line, p.cap)
	for _, o := range p.ornaments {
		out = append(out, o.Handle)
	}
	return out
}
