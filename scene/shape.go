package scene

import (
	"github.com/lixenwraith/vi-pipes/render"
	"github.com/lixenwraith/vi-pipes/vmath"
)

// Kind selects how a shape is drawn
type Kind uint8

const (
	KindPolyline Kind = iota + 1 // Open path, stroke is line width
	KindMarker                   // Sphere at Position, stroke is diameter
	KindLandmark                 // Compound model at Position, stroke scales it
)

func (k Kind) String() string {
	switch k {
	case KindPolyline:
		return "polyline"
	case KindMarker:
		return "marker"
	case KindLandmark:
		return "landmark"
	default:
		return "unknown"
	}
}

// Handle identifies a shape registered with a Graph, zero is never issued
type Handle uint64

// Shape is the description a Graph draws
type Shape struct {
	Kind     Kind
	Color    render.RGB
	Stroke   float64
	Position vmath.Vec3F
	Path     []vmath.Vec3F
}

// landmarkPart is one piece of the compound landmark in stroke-5 model units
type landmarkPart struct {
	offset   vmath.Vec3F
	diameter float64
	ring     bool // Hollow ring in the XY plane instead of a solid sphere
}

// landmarkStroke is the stroke the landmark parts were modeled at
const landmarkStroke = 5.0

// landmarkParts is a small kettle: body, side handle, lid knob
var landmarkParts = []landmarkPart{
	{offset: vmath.Vec3F{}, diameter: 15},
	{offset: vmath.Vec3F{X: -7}, diameter: 8, ring: true},
	{offset: vmath.Vec3F{Y: -10}, diameter: 4},
}
