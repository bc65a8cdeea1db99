package room

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulmach/orb"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/vmath"
)

func TestAnchor_SurfaceTypes(t *testing.T) {
	r := Sample(vmath.NewFastRand(1))
	want := map[string]core.SurfaceType{
		"floor":      core.SurfaceFacingUp,
		"ceiling":    core.SurfaceFacingDown,
		"wall-north": core.SurfaceVertical,
		"wall-east":  core.SurfaceVertical,
		"table":      core.SurfaceFacingUp,
	}
	for _, a := range r.Anchors() {
		if st, ok := want[a.Name]; ok && a.SurfaceType() != st {
			t.Errorf("%s: expected surface type %d, got %d", a.Name, st, a.SurfaceType())
		}
	}
}

func TestAnchor_LocalRoundTrip(t *testing.T) {
	a := NewPlaneAnchor("wall", core.LabelWallFace, mgl64.Vec3{0, 1, 2}, mgl64.Vec3{0, 0, -1}, 2, 2)
	p := orb.Point{0.3, -0.4}
	world := a.ToWorld(p)
	back, off := a.ToLocal(world)
	if math.Abs(back[0]-p[0]) > 1e-9 || math.Abs(back[1]-p[1]) > 1e-9 || math.Abs(off) > 1e-9 {
		t.Errorf("Expected round trip to %v on plane, got %v off=%v", p, back, off)
	}
	if math.Abs(a.Area()-4) > 1e-9 {
		t.Errorf("Expected area 4, got %v", a.Area())
	}
	if d := a.EdgeDistance(orb.Point{0, 0}); math.Abs(d-1) > 1e-9 {
		t.Errorf("Expected center edge distance 1, got %v", d)
	}
}

func TestLandingSurface_RespectsFiltersAndClearance(t *testing.T) {
	r := Sample(vmath.NewFastRand(11))
	const clearance = 0.3

	for i := 0; i < 500; i++ {
		p, n, ok := r.LandingSurface(core.SurfaceFacingUp|core.SurfaceVertical, core.LabelFloor, clearance)
		if !ok {
			continue
		}
		if !vmath.ApproxEqual(n, mgl64.Vec3{0, 1, 0}, 1e-9) {
			t.Fatalf("Expected floor normal, got %v", n)
		}
		if math.Abs(p[1]) > 1e-9 {
			t.Fatalf("Expected point on floor plane, got %v", p)
		}
		if math.Abs(p[0]) > SampleWidth/2-clearance+1e-9 || math.Abs(p[2]) > SampleDepth/2-clearance+1e-9 {
			t.Fatalf("Point %v violates edge clearance %v", p, clearance)
		}
	}
}

func TestLandingSurface_NoCandidate(t *testing.T) {
	r := Sample(vmath.NewFastRand(3))

	// Ceiling faces down, excluded by the up|vertical mask
	if _, _, ok := r.LandingSurface(core.SurfaceFacingUp|core.SurfaceVertical, core.LabelCeiling, 0); ok {
		t.Error("Expected no candidate for a down-facing ceiling")
	}

	// Clearance larger than any surface half-extent
	if _, _, ok := r.LandingSurface(core.SurfaceFacingUp, core.LabelAll, 10); ok {
		t.Error("Expected no candidate with impossible clearance")
	}
}

func TestRaycast_HitsFloorFacingRay(t *testing.T) {
	r := Sample(vmath.NewFastRand(1))
	hit, ok := r.Raycast(mgl64.Vec3{-1, 1, -1}, vmath.Down, 5)
	if !ok {
		t.Fatal("Expected downward ray to hit the floor")
	}
	if math.Abs(hit.Distance-1) > 1e-9 || r.Anchors()[hit.Anchor].Name != "floor" {
		t.Errorf("Expected floor hit at distance 1, got %s at %v", r.Anchors()[hit.Anchor].Name, hit.Distance)
	}
	if hit.Normal.Dot(vmath.Down) >= 0 {
		t.Errorf("Expected hit normal to face the ray, got %v", hit.Normal)
	}

	if _, ok := r.Raycast(mgl64.Vec3{-1, 1, -1}, vmath.Down, 0.5); ok {
		t.Error("Expected no hit when floor is beyond max distance")
	}
}

func TestLineOfSight(t *testing.T) {
	r := Sample(vmath.NewFastRand(1))

	// Open air to a floor point
	if !r.LineOfSight(mgl64.Vec3{0, 1.5, 0}, mgl64.Vec3{-1, 0, -1}) {
		t.Error("Expected clear sight to a floor point")
	}

	// Through the table top
	if r.LineOfSight(mgl64.Vec3{1, 1.5, 0.5}, mgl64.Vec3{1, 0, 0.5}) {
		t.Error("Expected table to block sight to the floor beneath it")
	}
}

func TestSphereCast_LeavesTangentSurface(t *testing.T) {
	r := Sample(vmath.NewFastRand(1))
	const radius = 0.05

	// Starting tangent to the floor and moving up clears the floor
	start := mgl64.Vec3{-1, radius, -1}
	if _, ok := r.SphereCast(start, vmath.Up, radius, 0.2); ok {
		t.Error("Expected sweep away from the floor to be clear")
	}

	// Under the table the sweep is blocked
	under := mgl64.Vec3{1, 0.6, 0.5}
	if _, ok := r.SphereCast(under, vmath.Up, radius, 0.2); !ok {
		t.Error("Expected sweep into the table to hit")
	}
}
