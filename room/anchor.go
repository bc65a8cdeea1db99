package room

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// facingThreshold is the normal Y component separating up/down-facing surfaces from vertical ones
const facingThreshold = 0.7

// Anchor is a labeled planar surface from the room scan
// The surface normal is the pose's forward axis, the boundary polygon lives in the plane spanned by
// the pose's right (x) and up (y) axes, in meters, centered on the pose position
type Anchor struct {
	Name     string
	Label    core.Label
	Pose     vmath.Pose
	Boundary orb.Polygon
}

// NewPlaneAnchor builds a rectangular anchor of width x height centered at center facing normal
func NewPlaneAnchor(name string, label core.Label, center, normal mgl64.Vec3, width, height float64) Anchor {
	hw, hh := width/2, height/2
	return NewPolygonAnchor(name, label, center, normal, orb.Polygon{orb.Ring{
		{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}, {-hw, -hh},
	}})
}

// NewPolygonAnchor builds an anchor with an arbitrary plane-local boundary
func NewPolygonAnchor(name string, label core.Label, center, normal mgl64.Vec3, boundary orb.Polygon) Anchor {
	n := vmath.Normalize(normal)
	upHint := vmath.Up
	if math.Abs(n.Dot(upHint)) > 0.99 {
		upHint = vmath.Forward
	}
	return Anchor{
		Name:     name,
		Label:    label,
		Pose:     vmath.Pose{Position: center, Rotation: vmath.LookRotation(n, upHint)},
		Boundary: boundary,
	}
}

// Normal is the outward surface normal
func (a Anchor) Normal() mgl64.Vec3 {
	return a.Pose.Forward()
}

// Center is the world-space anchor origin
func (a Anchor) Center() mgl64.Vec3 {
	return a.Pose.Position
}

// SurfaceType classifies the anchor by its normal
func (a Anchor) SurfaceType() core.SurfaceType {
	ny := a.Normal()[1]
	switch {
	case ny >= facingThreshold:
		return core.SurfaceFacingUp
	case ny <= -facingThreshold:
		return core.SurfaceFacingDown
	default:
		return core.SurfaceVertical
	}
}

// Area of the boundary in square meters
func (a Anchor) Area() float64 {
	return math.Abs(planar.Area(a.Boundary))
}

// ToWorld maps a plane-local point onto the surface
func (a Anchor) ToWorld(p orb.Point) mgl64.Vec3 {
	return a.Pose.TransformPoint(mgl64.Vec3{p[0], p[1], 0})
}

// ToLocal projects a world point into plane coordinates, returning the signed distance off the plane
func (a Anchor) ToLocal(world mgl64.Vec3) (orb.Point, float64) {
	d := world.Sub(a.Pose.Position)
	return orb.Point{d.Dot(a.Pose.Right()), d.Dot(a.Pose.Up())}, d.Dot(a.Normal())
}

// Contains reports whether a plane-local point lies inside the boundary
func (a Anchor) Contains(p orb.Point) bool {
	return planar.PolygonContains(a.Boundary, p)
}

// EdgeDistance returns the distance from a plane-local point to the nearest boundary edge
func (a Anchor) EdgeDistance(p orb.Point) float64 {
	best := math.Inf(1)
	for _, ring := range a.Boundary {
		for i := 0; i+1 < len(ring); i++ {
			if d := planar.DistanceFromSegment(ring[i], ring[i+1], p); d < best {
				best = d
			}
		}
	}
	return best
}
