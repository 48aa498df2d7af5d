package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in container pixel space
type Vec2 struct {
	X, Y float64
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2MagSq(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

func V2Mag(v Vec2) float64 {
	return math.Sqrt(V2MagSq(v))
}

// V2DistSq returns squared Euclidean distance without sqrt
func V2DistSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// V2Dist returns Euclidean distance between two points
func V2Dist(a, b Vec2) float64 {
	return math.Sqrt(V2DistSq(a, b))
}

// V2Lerp moves a toward b by fraction t, no clamping on t
func V2Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// ClampMagnitude2 limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func ClampMagnitude2(v Vec2, maxMag float64) Vec2 {
	mag := V2Mag(v)
	if mag <= maxMag || mag == 0 {
		return v
	}
	return V2Scale(v, maxMag/mag)
}

// Clamp restricts v to [lo, hi]; collapses to the midpoint when the interval is empty
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
