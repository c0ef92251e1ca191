// Package scene is the shape graph the pipe animation draws into.
//
// A Graph owns registered shapes by handle, a camera, and a depth-tested cell buffer.
// RenderFrame projects every shape orthographically and flushes the result to a
// terminal canvas. Graph is not safe for concurrent use; the frame loop owns it.
package scene

import (
	"github.com/lixenwraith/vi-pipes/render"
	"github.com/lixenwraith/vi-pipes/vmath"
)

// Graph registers shapes and renders them to a canvas
type Graph struct {
	Camera Camera

	halfExtent float64
	canvas     render.Canvas
	buf        *render.Buffer

	shapes map[Handle]*Shape
	order  []Handle // Creation order, draw order for equal depths
	next   Handle
	frames uint64
}

// NewGraph creates a graph framing a cube of the given half extent on canvas
func NewGraph(canvas render.Canvas, halfExtent float64, bg render.RGB) *Graph {
	w, h := canvas.Size()
	return &Graph{
		halfExtent: halfExtent,
		canvas:     canvas,
		buf:        render.NewBuffer(w, h, bg),
		shapes:     make(map[Handle]*Shape),
	}
}

// Create registers a shape and returns its handle
// The path is copied, later mutation by the caller is not observed until Update
func (g *Graph) Create(s Shape) Handle {
	g.next++
	h := g.next
	stored := s
	stored.Path = clonePath(s.Path)
	g.shapes[h] = &stored
	g.order = append(g.order, h)
	return h
}

// Update replaces the path of a registered shape, unknown handles are ignored
func (g *Graph) Update(h Handle, path []vmath.Vec3F) {
	s, ok := g.shapes[h]
	if !ok {
		return
	}
	s.Path = append(s.Path[:0], path...)
}

// Remove unregisters a shape, unknown or already removed handles are ignored
func (g *Graph) Remove(h Handle) {
	if _, ok := g.shapes[h]; !ok {
		return
	}
	delete(g.shapes, h)
	for i, oh := range g.order {
		if oh == h {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Has reports whether h is registered
func (g *Graph) Has(h Handle) bool {
	_, ok := g.shapes[h]
	return ok
}

// Shape returns a copy of the registered shape
func (g *Graph) Shape(h Handle) (Shape, bool) {
	s, ok := g.shapes[h]
	if !ok {
		return Shape{}, false
	}
	out := *s
	out.Path = clonePath(s.Path)
	return out, true
}

// Len returns the number of registered shapes
func (g *Graph) Len() int {
	return len(g.shapes)
}

// Frames returns the number of rendered frames
func (g *Graph) Frames() uint64 {
	return g.frames
}

// Buffer exposes the composited buffer of the last frame
func (g *Graph) Buffer() *render.Buffer {
	return g.buf
}

// RenderFrame draws every registered shape and flushes to the canvas
func (g *Graph) RenderFrame() {
	w, h := g.canvas.Size()
	if w != g.buf.Width() || h != g.buf.Height() {
		g.buf.Resize(w, h)
	} else {
		g.buf.Clear()
	}

	vp := fitViewport(w, h, g.halfExtent, g.Camera.Zoom)
	r := rasterizer{buf: g.buf, vp: vp, cam: &g.Camera}
	for _, handle := range g.order {
		s := g.shapes[handle]
		switch s.Kind {
		case KindPolyline:
			r.polyline(s)
		case KindMarker:
			r.sphere(s.Position, s.Stroke, s.Color)
		case KindLandmark:
			r.landmark(s)
		}
	}

	g.buf.Flush(g.canvas)
	g.frames++
}

func clonePath(p []vmath.Vec3F) []vmath.Vec3F {
	if p == nil {
		return nil
	}
	out := make([]vmath.Vec3F, len(p))
	copy(out, p)
	return out
}
