package event

import (
	"fmt"
	"time"
)

// EventType represents the type of simulation event
type EventType int

const (
	// === Agent Lifecycle ===

	// EventAgentSpawned signals a new agent entering Seeking
	// Trigger: Simulation.SpawnAgent | Payload: *AgentSpawnedPayload
	EventAgentSpawned EventType = iota + 1

	// EventAgentDestroyed signals removal of an agent from the store
	// Trigger: scheduled destroy after capture, Simulation.CullAgent
	// Consumer: wave orchestration | Payload: *AgentDestroyedPayload
	EventAgentDestroyed

	// === Navigator ===

	// EventTargetAcquired signals an accepted landing candidate
	// Trigger: Seeking -> Traveling | Payload: *TargetPayload
	EventTargetAcquired

	// EventLanded signals an agent entering Resting
	// Payload: *TargetPayload
	EventLanded

	// EventTookOff signals the takeoff roll on arrival succeeded
	// Payload: *AgentPayload
	EventTookOff

	// === Capture ===

	// EventCaptureTriggered signals a pinch armed the apparatus
	// Consumer: audio (slurp) | Payload: *CaptureTriggeredPayload
	EventCaptureTriggered

	// EventCaptureHit signals an agent was caught on the tongue tip
	// Consumer: wave, audio | Payload: *AgentPayload
	EventCaptureHit

	// EventCaptureMiss signals the hold ended with nothing caught
	// Payload: nil
	EventCaptureMiss

	// EventMunch fires after the hold ends, once per sequence
	// Consumer: audio | Payload: nil
	EventMunch

	// EventCaptureStowed signals the apparatus went dormant
	// Consumer: audio (croak stops) | Payload: nil
	EventCaptureStowed
)

var eventNames = map[EventType]string{
	EventAgentSpawned:     "AgentSpawned",
	EventAgentDestroyed:   "AgentDestroyed",
	EventTargetAcquired:   "TargetAcquired",
	EventLanded:           "Landed",
	EventTookOff:          "TookOff",
	EventCaptureTriggered: "CaptureTriggered",
	EventCaptureHit:       "CaptureHit",
	EventCaptureMiss:      "CaptureMiss",
	EventMunch:            "Munch",
	EventCaptureStowed:    "CaptureStowed",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// GameEvent is a single queued event
type GameEvent struct {
	Type    EventType
	Payload any
	Time    time.Time // Simulation time at push
}
