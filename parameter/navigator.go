package parameter

import "time"

// Navigator distance thresholds (meters)
const (
	// ArrivalEpsilon is the distance below which a traveling agent has arrived
	ArrivalEpsilon = 0.08

	// RestSnapOffset lifts a resting agent off the surface along its normal to avoid embedding
	RestSnapOffset = 0.01

	// SurfaceBelowRay is the downward raycast length used by the surface-below rest policy
	SurfaceBelowRay = 0.5

	// SurfaceBelowLift raises the downward raycast origin above the target so it starts outside the surface
	SurfaceBelowLift = 0.05
)

// Navigator defaults, used when a wave profile leaves a field at zero
const (
	DefaultAgentSpeed         = 0.3
	DefaultAgentRotationSpeed = 4.0
	DefaultEdgeClearance      = 0.1
	DefaultMinRest            = 2 * time.Second
	DefaultMaxRest            = 6 * time.Second

	// AgentColliderRadius is the sphere radius registered for each agent (meters)
	AgentColliderRadius = 0.03
)
