package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Layer is a collision layer bitmask used to filter queries
type Layer uint32

const (
	LayerNone Layer = 0

	// LayerAgent holds live flying agents, the capture sweep's target layer
	LayerAgent Layer = 1 << iota
	// LayerCaught holds agents attached to the tongue, ignored by the sweep
	LayerCaught

	LayerAll = LayerAgent | LayerCaught
)

// Sphere is a collider shape
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
	Layer  Layer
}

// AABB is an axis-aligned box
type AABB struct {
	Min, Max mgl64.Vec3
}

// BoxAround builds a cube of half extent h centered at c
func BoxAround(c mgl64.Vec3, h float64) AABB {
	e := mgl64.Vec3{h, h, h}
	return AABB{Min: c.Sub(e), Max: c.Add(e)}
}

// ClosestPoint clamps p into the box
func (b AABB) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl64.Clamp(p[1], b.Min[1], b.Max[1]),
		mgl64.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

// IntersectsSphere reports box/sphere overlap
func (b AABB) IntersectsSphere(s Sphere) bool {
	return b.ClosestPoint(s.Center).Sub(s.Center).Len() <= s.Radius
}

// RaySphere returns the distance along a unit dir at which a ray from origin first touches a sphere
// of the given center and radius; a ray starting inside reports zero
func RaySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	m := origin.Sub(center)
	c := m.Dot(m) - radius*radius
	if c <= 0 {
		return 0, true
	}
	b := m.Dot(dir)
	if b > 0 {
		// Outside and pointing away
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}
