package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
)

// DestroyReason distinguishes why an agent left the store
type DestroyReason int

const (
	ReasonCaptured DestroyReason = iota
	ReasonCulled
)

func (r DestroyReason) String() string {
	switch r {
	case ReasonCaptured:
		return "captured"
	case ReasonCulled:
		return "culled"
	default:
		return "unknown"
	}
}

// AgentPayload identifies a single agent
type AgentPayload struct {
	Entity core.Entity
}

// AgentSpawnedPayload carries the spawn position and wave profile name
type AgentSpawnedPayload struct {
	Entity   core.Entity
	Position mgl64.Vec3
	Profile  string
}

// AgentDestroyedPayload is emitted exactly once per agent
type AgentDestroyedPayload struct {
	Entity core.Entity
	Reason DestroyReason
}

// TargetPayload carries a landing target and its surface normal
type TargetPayload struct {
	Entity core.Entity
	Target mgl64.Vec3
	Normal mgl64.Vec3
}

// CaptureTriggeredPayload describes a new tongue sequence
type CaptureTriggeredPayload struct {
	Hand      core.Hand
	Detected  core.Entity // EntityNone on a predicted miss
	Distance  float64
	Extension float64 // Target extension for this sequence
}
