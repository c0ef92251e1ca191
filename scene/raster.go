package scene

import (
	"math"

	"github.com/lixenwraith/vi-pipes/render"
	"github.com/lixenwraith/vi-pipes/vmath"
)

const (
	runeLine   = '█'
	runeSphere = '█'
	runeDot    = '●'
	ringPoints = 24
)

// rasterizer draws shapes for one frame
type rasterizer struct {
	buf *render.Buffer
	vp  viewport
	cam *Camera
}

func (r *rasterizer) shade(c render.RGB, depth float64) render.RGB {
	return render.Fade(c, r.buf.Background, r.vp.fade(depth))
}

// polyline draws each segment as a depth-interpolated run of cells
func (r *rasterizer) polyline(s *Shape) {
	if len(s.Path) == 0 {
		return
	}
	px, py, pd := r.vp.project(r.cam.View(s.Path[0]))
	if len(s.Path) == 1 {
		r.plot(px, py, pd, runeLine, s.Color)
		return
	}
	for _, p := range s.Path[1:] {
		x, y, d := r.vp.project(r.cam.View(p))
		r.line(px, py, pd, x, y, d, s.Color)
		px, py, pd = x, y, d
	}
}

// line walks from a to b in unit cell steps along the major axis
func (r *rasterizer) line(x0, y0, d0, x1, y1, d1 float64, c render.RGB) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		r.plot(x0, y0, math.Min(d0, d1), runeLine, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.plot(x0+(x1-x0)*t, y0+(y1-y0)*t, d0+(d1-d0)*t, runeLine, c)
	}
}

func (r *rasterizer) plot(x, y, depth float64, ch rune, c render.RGB) {
	r.buf.Plot(int(math.Floor(x)), int(math.Floor(y)), ch, r.shade(c, depth), depth)
}

// sphere draws a filled disc with its front surface nearer than its center
func (r *rasterizer) sphere(center vmath.Vec3F, diameter float64, c render.RGB) {
	cx, cy, cd := r.vp.project(r.cam.View(center))
	radius := diameter / 2 * r.vp.scale
	if radius < 0.75 {
		r.plot(cx, cy, cd-diameter/2, runeDot, c)
		return
	}

	base := r.shade(c, cd)
	rx := radius * cellAspect
	minX := int(math.Floor(cx - rx))
	maxX := int(math.Ceil(cx + rx))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for sy := minY; sy <= maxY; sy++ {
		for sx := minX; sx <= maxX; sx++ {
			nx := (float64(sx) + 0.5 - cx) / rx
			ny := (float64(sy) + 0.5 - cy) / radius
			distSq := nx*nx + ny*ny
			if distSq > 1 {
				continue
			}
			nz := math.Sqrt(1 - distSq)
			// Highlight toward the upper left
			hl := math.Max(0, -0.4*nx-0.4*ny+0.8*nz)
			lit := render.Lerp(render.Fade(base, r.buf.Background, 0.35*(1-nz)), render.RGBWhite, 0.25*hl*hl)
			r.buf.Plot(sx, sy, runeSphere, lit, cd-nz*diameter/2)
		}
	}
}

// ring draws a hollow circle in the XY plane of the model
func (r *rasterizer) ring(center vmath.Vec3F, diameter float64, c render.RGB) {
	radius := diameter / 2
	for i := 0; i < ringPoints; i++ {
		a := Tau * float64(i) / ringPoints
		sin, cos := math.Sincos(a)
		p := vmath.V3FAdd(center, vmath.Vec3F{X: cos * radius, Y: sin * radius})
		x, y, d := r.vp.project(r.cam.View(p))
		r.plot(x, y, d, runeDot, c)
	}
}

// landmark draws the compound model scaled to the shape stroke
func (r *rasterizer) landmark(s *Shape) {
	k := s.Stroke / landmarkStroke
	if k <= 0 {
		k = 1
	}
	for _, part := range landmarkParts {
		at := vmath.V3FAdd(s.Position, vmath.V3FScale(part.offset, k))
		if part.ring {
			r.ring(at, part.diameter*k, s.Color)
		} else {
			r.sphere(at, part.diameter*k, s.Color)
		}
	}
}
