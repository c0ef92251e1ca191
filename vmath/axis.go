package vmath

// Axis identifies one coordinate of a Vec3F
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// Axes lists the three real axes in fixed order
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// Component returns a pointer to the coordinate of v selected by a
// Returns nil for AxisNone
func Component(v *Vec3F, a Axis) *float64 {
	switch a {
	case AxisX:
		return &v.X
	case AxisY:
		return &v.Y
	case AxisZ:
		return &v.Z
	default:
		return nil
	}
}

// AxesExcept returns the axes other than a, in fixed order
// AxisNone excludes nothing
func AxesExcept(a Axis) []Axis {
	out := make([]Axis, 0, len(Axes))
	for _, ax := range Axes {
		if ax != a {
			out = append(out, ax)
		}
	}
	return out
}
