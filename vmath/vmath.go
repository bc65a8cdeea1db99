package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local axis conventions: +Z forward, +Y up, +X right
var (
	Forward = mgl64.Vec3{0, 0, 1}
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Down    = mgl64.Vec3{0, -1, 0}
)

// Remap linearly maps x from [inMin, inMax] onto [outMin, outMax] without clamping
func Remap(x, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return (x-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// RemapClamped remaps and clamps the result to the output range
func RemapClamped(x, inMin, inMax, outMin, outMax float64) float64 {
	lo, hi := outMin, outMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return mgl64.Clamp(Remap(x, inMin, inMax, outMin, outMax), lo, hi)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return b.Sub(a).Len()
}

// MoveTowards steps from current toward target by at most maxStep, never overshooting
func MoveTowards(current, target mgl64.Vec3, maxStep float64) mgl64.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return current.Add(delta.Mul(maxStep / dist))
}

// Normalize returns v scaled to unit length, zero vector for zero input
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// DegToRad converts degrees
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ApproxEqual compares points by absolute distance, tolerant of near-zero components
func ApproxEqual(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
