package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/room"
)

// Scene is the physical world: static room surfaces plus dynamic agent colliders
// It answers both the navigator's surface queries and the capture reactor's sweeps
type Scene struct {
	Room      *room.Room
	Colliders *Colliders
}

// NewScene wraps a room with an empty collider registry
func NewScene(r *room.Room) *Scene {
	return &Scene{Room: r, Colliders: NewColliders()}
}

// LandingSurface forwards to the room sampler
func (s *Scene) LandingSurface(kinds core.SurfaceType, labels core.Label, edgeClearance float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	return s.Room.LandingSurface(kinds, labels, edgeClearance)
}

// LineOfSight checks static geometry only; agents never block each other
func (s *Scene) LineOfSight(from, to mgl64.Vec3) bool {
	return s.Room.LineOfSight(from, to)
}

// Raycast against static geometry
func (s *Scene) Raycast(origin, dir mgl64.Vec3, maxDist float64) (room.Hit, bool) {
	return s.Room.Raycast(origin, dir, maxDist)
}

// SphereCast against static geometry
func (s *Scene) SphereCast(origin, dir mgl64.Vec3, radius, maxDist float64) (room.Hit, bool) {
	return s.Room.SphereCast(origin, dir, radius, maxDist)
}

// Sweep casts for the nearest collider on layers; static geometry does not occlude the sweep
func (s *Scene) Sweep(origin, dir mgl64.Vec3, radius, maxDist float64, layers Layer) (core.Entity, float64, bool) {
	return s.Colliders.SphereCast(origin, dir, radius, maxDist, layers)
}

// Overlap returns colliders on layers touching the box
func (s *Scene) Overlap(box AABB, layers Layer) []core.Entity {
	return s.Colliders.Overlap(box, layers)
}
