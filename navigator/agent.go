package navigator

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/engine/fsm"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// State is the navigation state of an agent
type State fsm.StateID

const (
	StateSeeking State = iota + 1
	StateTraveling
	StateResting
)

func (s State) String() string {
	switch s {
	case StateSeeking:
		return "Seeking"
	case StateTraveling:
		return "Traveling"
	case StateResting:
		return "Resting"
	default:
		return "Unknown"
	}
}

// Agent is a single flying agent
// Target fields are valid whenever the state is not Seeking
type Agent struct {
	Entity core.Entity
	Pose   vmath.Pose

	Target       mgl64.Vec3
	TargetNormal mgl64.Vec3
	HasTarget    bool

	Profile tuning.WaveProfile

	// RestUntil is the resume-at time while Resting
	RestUntil        time.Time
	LastRestDuration time.Duration

	// Presentation hints
	AnimationSpeed float64
	Scale          float64

	// Caught is terminal; the navigator stops driving the agent and its state keeps its last value
	Caught       bool
	AttachOffset mgl64.Vec3 // Position relative to the tongue tip while caught

	rt      fsm.Runtime
	arrived bool
	takeoff bool
}

// NewAgent creates an agent in Seeking at pose
func NewAgent(e core.Entity, pose vmath.Pose, profile tuning.WaveProfile) *Agent {
	a := &Agent{
		Entity:         e,
		Pose:           pose,
		Profile:        profile,
		AnimationSpeed: 1,
		Scale:          1,
	}
	graph.Init(&step{a: a}, &a.rt)
	return a
}

// State returns the current navigation state, always one of Seeking, Traveling, Resting
func (a *Agent) State() State {
	return State(a.rt.Active)
}

// TimeInState is the simulated time spent in the current state
func (a *Agent) TimeInState() time.Duration {
	return a.rt.TimeInState
}
