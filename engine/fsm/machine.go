package fsm

import (
	"fmt"
	"time"
)

// Init enters the initial state, executing its OnEnter actions
func (g *Graph[T]) Init(ctx T, rt *Runtime) {
	rt.Active = g.initialID
	rt.TimeInState = 0
	rt.Transitions = 0
	if node, ok := g.nodes[g.initialID]; ok {
		for _, action := range node.OnEnter {
			action(ctx, rt)
		}
	}
}

// Update advances the runtime by dt: runs OnUpdate for the active state, then takes the first
// transition whose guard passes. At most one transition per update
func (g *Graph[T]) Update(ctx T, rt *Runtime, dt time.Duration) {
	if rt.Active == StateNone {
		return
	}

	rt.TimeInState += dt

	node := g.nodes[rt.Active]
	for _, action := range node.OnUpdate {
		action(ctx, rt)
	}

	for _, trans := range node.Transitions {
		if trans.Guard == nil || trans.Guard(ctx, rt) {
			g.Transition(ctx, rt, trans.TargetID)
			return
		}
	}
}

// Transition performs a state change, running exit then enter actions
// Re-entering the active state is a no-op
func (g *Graph[T]) Transition(ctx T, rt *Runtime, targetID StateID) {
	if rt.Active == targetID {
		return
	}

	target, ok := g.nodes[targetID]
	if !ok {
		panic(fmt.Sprintf("FSM: Attempted transition to unknown state ID %d", targetID))
	}

	if current, ok := g.nodes[rt.Active]; ok {
		for _, action := range current.OnExit {
			action(ctx, rt)
		}
	}

	rt.Active = targetID
	rt.TimeInState = 0
	rt.Transitions++

	for _, action := range target.OnEnter {
		action(ctx, rt)
	}
}

// Name returns the name of a state, empty for unknown IDs
func (g *Graph[T]) Name(id StateID) string {
	if node, ok := g.nodes[id]; ok {
		return node.Name
	}
	return ""
}
