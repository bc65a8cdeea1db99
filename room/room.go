package room

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/vmath"
)

const (
	// samplingAttempts bounds rejection sampling per LandingSurface call
	samplingAttempts = 16

	// sightSkin shortens line-of-sight rays so the destination surface does not occlude itself
	sightSkin = 0.005

	// rayEpsilon ignores hits at the ray origin
	rayEpsilon = 1e-6
)

// Hit describes a ray or sweep contact with a room surface
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3 // Faces the incoming ray
	Distance float64
	Anchor   int
}

// Room is an in-memory scanned room answering surface queries
// It stands in for the platform spatial-mapping service
type Room struct {
	anchors []Anchor
	rng     *vmath.FastRand
}

// New creates a room over the given anchors, sampling from rng
func New(rng *vmath.FastRand, anchors ...Anchor) *Room {
	if rng == nil {
		rng = vmath.NewFastRand(1)
	}
	return &Room{anchors: anchors, rng: rng}
}

// Anchors returns the room's anchors
func (r *Room) Anchors() []Anchor {
	return r.anchors
}

// AnchorsWithLabel returns every anchor carrying any of the labels
func (r *Room) AnchorsWithLabel(labels core.Label) []Anchor {
	out := make([]Anchor, 0, 4)
	for _, a := range r.anchors {
		if a.Label.Has(labels) {
			out = append(out, a)
		}
	}
	return out
}

// AddAnchor appends a surface
func (r *Room) AddAnchor(a Anchor) {
	r.anchors = append(r.anchors, a)
}

// LandingSurface samples a random point on a surface matching kinds and labels that is at least
// edgeClearance from the surface boundary. Anchors are weighted by area
func (r *Room) LandingSurface(kinds core.SurfaceType, labels core.Label, edgeClearance float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	candidates := make([]int, 0, len(r.anchors))
	weights := make([]float64, 0, len(r.anchors))
	total := 0.0
	for i, a := range r.anchors {
		if !a.Label.Has(labels) || !kinds.Has(a.SurfaceType()) {
			continue
		}
		area := a.Area()
		if area <= 0 {
			continue
		}
		candidates = append(candidates, i)
		weights = append(weights, area)
		total += area
	}
	if len(candidates) == 0 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}

	for attempt := 0; attempt < samplingAttempts; attempt++ {
		a := &r.anchors[candidates[r.pickWeighted(weights, total)]]
		b := a.Boundary.Bound()
		p := orb.Point{
			r.rng.Range(b.Min[0], b.Max[0]),
			r.rng.Range(b.Min[1], b.Max[1]),
		}
		if !a.Contains(p) || a.EdgeDistance(p) < edgeClearance {
			continue
		}
		return a.ToWorld(p), a.Normal(), true
	}
	return mgl64.Vec3{}, mgl64.Vec3{}, false
}

func (r *Room) pickWeighted(weights []float64, total float64) int {
	x := r.rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

// RandomPointOnAnchor returns a point inside the anchor's bounding rectangle, used for spawn placement
func (r *Room) RandomPointOnAnchor(a Anchor) mgl64.Vec3 {
	b := a.Boundary.Bound()
	return a.ToWorld(orb.Point{
		r.rng.Range(b.Min[0], b.Max[0]),
		r.rng.Range(b.Min[1], b.Max[1]),
	})
}

// Raycast returns the nearest surface hit along dir within maxDist
func (r *Room) Raycast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	return r.SphereCast(origin, dir, 0, maxDist)
}

// LineOfSight reports whether the straight segment from -> to crosses no surface
func (r *Room) LineOfSight(from, to mgl64.Vec3) bool {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= sightSkin {
		return true
	}
	_, hit := r.Raycast(from, delta.Mul(1/dist), dist-sightSkin)
	return !hit
}

// SphereCast sweeps a sphere of radius along dir and returns the first surface it touches
// Surfaces the sphere is moving away from are ignored, so a sweep starting tangent to a plane leaves it cleanly
func (r *Room) SphereCast(origin, dir mgl64.Vec3, radius, maxDist float64) (Hit, bool) {
	dir = vmath.Normalize(dir)
	if dir.Len() == 0 {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1), Anchor: -1}
	for i := range r.anchors {
		a := &r.anchors[i]
		n := a.Normal()
		d0 := origin.Sub(a.Center()).Dot(n)
		vel := dir.Dot(n)
		if vel == 0 {
			continue
		}

		// Approach only: signed distance must shrink toward the contact offset
		var side float64
		switch {
		case d0 >= 0 && vel < 0:
			side = 1
		case d0 <= 0 && vel > 0:
			side = -1
		default:
			continue
		}

		t := (math.Abs(d0) - radius) / math.Abs(vel)
		if t < 0 {
			t = 0
		}
		if t <= rayEpsilon && radius == 0 {
			continue
		}
		if t > maxDist || t >= best.Distance {
			continue
		}

		center := origin.Add(dir.Mul(t))
		contact := center.Sub(n.Mul(side * radius))
		local, _ := a.ToLocal(contact)
		if !a.Contains(local) && (radius == 0 || a.EdgeDistance(local) > radius) {
			continue
		}

		best = Hit{Point: contact, Normal: n.Mul(side), Distance: t, Anchor: i}
	}

	if best.Anchor < 0 {
		return Hit{}, false
	}
	return best, true
}
