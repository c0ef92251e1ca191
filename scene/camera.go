package scene

import (
	"math"

	"github.com/lixenwraith/vi-pipes/vmath"
)

// Tau is one full turn in radians
const Tau = 2 * math.Pi

// cellAspect is terminal cell height over width
const cellAspect = 2.0

// Camera orients the scene before orthographic projection
type Camera struct {
	Pitch float64 // Rotation around X, radians
	Yaw   float64 // Rotation around Y from user drag, radians
	Spin  float64 // Rotation around Y driven by the perpetual rotation tween, radians
	Zoom  float64 // Multiplier on the fitted scale, zero means 1
}

// View rotates a world point into camera space, +Z toward the viewer
func (c *Camera) View(p vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FRotateX(vmath.V3FRotateY(p, c.Yaw+c.Spin), c.Pitch)
}

// Drag applies a pointer drag of dx,dy cells
func (c *Camera) Drag(dx, dy int) {
	const perCell = Tau / 240
	c.Yaw += float64(dx) * perCell
	c.Pitch -= float64(dy) * perCell * cellAspect
	limit := Tau / 4
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

// viewport maps camera space to cell coordinates for one frame
type viewport struct {
	cx, cy float64 // Screen center in cells
	scale  float64 // Cells per scene unit horizontally before aspect correction
	reach  float64 // Max camera-space distance from origin, for depth shading
}

// fitViewport scales a cube of the given half extent to fit a w×h cell screen
func fitViewport(w, h int, halfExtent, zoom float64) viewport {
	reach := halfExtent * math.Sqrt(3)
	if reach <= 0 {
		reach = 1
	}
	if zoom <= 0 {
		zoom = 1
	}
	sx := float64(w) / (2 * reach * cellAspect)
	sy := float64(h) / (2 * reach)
	scale := math.Min(sx, sy) * zoom
	return viewport{
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
		scale: scale,
		reach: reach,
	}
}

// project maps a camera-space point to cell x,y and viewer distance
func (v viewport) project(p vmath.Vec3F) (x, y, depth float64) {
	x = v.cx + p.X*v.scale*cellAspect
	y = v.cy + p.Y*v.scale
	return x, y, -p.Z
}

// fade returns how far toward the background a point at depth should be shaded
func (v viewport) fade(depth float64) float64 {
	t := (depth + v.reach) / (2 * v.reach)
	return 0.65 * math.Max(0, math.Min(1, t))
}
