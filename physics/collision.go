package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// Colliders is the dynamic collider registry keyed by entity
// Uses sparse set pattern: map for lookup, dense slice for ordered iteration
type Colliders struct {
	spheres  map[core.Entity]Sphere
	entities []core.Entity
}

// NewColliders creates an empty registry
func NewColliders() *Colliders {
	return &Colliders{
		spheres:  make(map[core.Entity]Sphere),
		entities: make([]core.Entity, 0, 64),
	}
}

// Set inserts or updates the collider for an entity
func (c *Colliders) Set(e core.Entity, s Sphere) {
	if _, exists := c.spheres[e]; !exists {
		c.entities = append(c.entities, e)
	}
	c.spheres[e] = s
}

// Get retrieves the collider for an entity
func (c *Colliders) Get(e core.Entity) (Sphere, bool) {
	s, ok := c.spheres[e]
	return s, ok
}

// Move updates only the center of an existing collider
func (c *Colliders) Move(e core.Entity, center mgl64.Vec3) {
	if s, ok := c.spheres[e]; ok {
		s.Center = center
		c.spheres[e] = s
	}
}

// SetLayer changes the layer of an existing collider
func (c *Colliders) SetLayer(e core.Entity, layer Layer) {
	if s, ok := c.spheres[e]; ok {
		s.Layer = layer
		c.spheres[e] = s
	}
}

// Remove deletes the collider for an entity
func (c *Colliders) Remove(e core.Entity) {
	if _, exists := c.spheres[e]; !exists {
		return
	}
	delete(c.spheres, e)
	for i, entity := range c.entities {
		if entity == e {
			c.entities[i] = c.entities[len(c.entities)-1]
			c.entities = c.entities[:len(c.entities)-1]
			break
		}
	}
}

// Len returns the collider count
func (c *Colliders) Len() int {
	return len(c.entities)
}

// SphereCast sweeps a sphere of radius from origin along dir and returns the nearest collider on layers
// Distance is measured from origin to the hit collider's center
func (c *Colliders) SphereCast(origin, dir mgl64.Vec3, radius, maxDist float64, layers Layer) (core.Entity, float64, bool) {
	dir = vmath.Normalize(dir)
	if dir.Len() == 0 {
		return core.EntityNone, 0, false
	}

	best := core.EntityNone
	bestT := math.Inf(1)
	for _, e := range c.entities {
		s := c.spheres[e]
		if s.Layer&layers == 0 {
			continue
		}
		t, ok := RaySphere(origin, dir, s.Center, s.Radius+radius)
		if !ok || t > maxDist {
			continue
		}
		// Entity order breaks exact ties so results do not depend on slice order after removals
		if t < bestT || (t == bestT && e < best) {
			best, bestT = e, t
		}
	}
	if best == core.EntityNone {
		return core.EntityNone, 0, false
	}
	return best, vmath.Distance(origin, c.spheres[best].Center), true
}

// Overlap returns every collider on layers intersecting the box, in ascending entity order
func (c *Colliders) Overlap(box AABB, layers Layer) []core.Entity {
	var out []core.Entity
	for _, e := range c.entities {
		s := c.spheres[e]
		if s.Layer&layers == 0 {
			continue
		}
		if box.IntersectsSphere(s) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
