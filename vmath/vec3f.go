package vmath

import (
	"math"
)

// Vec3F is a float64 3D point/vector in scene units
// Y grows downward to match terminal rows
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FManhattan returns the sum of absolute per-axis deltas between a and b
func V3FManhattan(a, b Vec3F) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y) + math.Abs(a.Z-b.Z)
}

// V3FRotateY rotates v around the vertical axis by angle radians
func V3FRotateY(v Vec3F, angle float64) Vec3F {
	sin, cos := math.Sincos(angle)
	return Vec3F{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// V3FRotateX rotates v around the horizontal axis by angle radians
func V3FRotateX(v Vec3F, angle float64) Vec3F {
	sin, cos := math.Sincos(angle)
	return Vec3F{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}

// V3FLerp interpolates between a and b, t in [0,1]
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}
