package fsm

import (
	"time"
)

// StateID is a unique identifier for a node
type StateID int

const StateNone StateID = 0

// Graph is the immutable state graph shared by every instance of one machine kind
// T is the context type passed to actions and guards (e.g., *navigator.Agent)
type Graph[T any] struct {
	nodes     map[StateID]*Node[T]
	initialID StateID
}

// Runtime is the per-instance state of a machine walking a Graph
// Kept outside the graph so thousands of agents can share one graph
type Runtime struct {
	Active      StateID
	TimeInState time.Duration
	Transitions uint64
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []ActionFunc[T]
	OnUpdate []ActionFunc[T]
	OnExit   []ActionFunc[T]

	// Transitions sorted by evaluation priority
	Transitions []Transition[T]
}

// Transition defines a tick-evaluated link between states
type Transition[T any] struct {
	TargetID StateID
	Guard    GuardFunc[T] // nil = Always true
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T, rt *Runtime) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, rt *Runtime)
