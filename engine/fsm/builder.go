package fsm

import "fmt"

// NewGraph creates an empty graph entering initial on Init
func NewGraph[T any](initial StateID) *Graph[T] {
	return &Graph[T]{
		nodes:     make(map[StateID]*Node[T]),
		initialID: initial,
	}
}

// AddState adds a node to the graph
func (g *Graph[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0),
	}
	g.nodes[id] = node
	return node
}

// Enter appends an OnEnter action, returning the node for chaining
func (n *Node[T]) Enter(fn ActionFunc[T]) *Node[T] {
	n.OnEnter = append(n.OnEnter, fn)
	return n
}

// Tick appends an OnUpdate action
func (n *Node[T]) Tick(fn ActionFunc[T]) *Node[T] {
	n.OnUpdate = append(n.OnUpdate, fn)
	return n
}

// Exit appends an OnExit action
func (n *Node[T]) Exit(fn ActionFunc[T]) *Node[T] {
	n.OnExit = append(n.OnExit, fn)
	return n
}

// To appends a guarded transition
func (n *Node[T]) To(target StateID, guard GuardFunc[T]) *Node[T] {
	n.Transitions = append(n.Transitions, Transition[T]{TargetID: target, Guard: guard})
	return n
}

// Validate checks that the initial state and every transition target exist
// Must be called after all nodes are added and before Init
func (g *Graph[T]) Validate() error {
	if _, ok := g.nodes[g.initialID]; !ok {
		return fmt.Errorf("initial state %d not found", g.initialID)
	}
	for id, node := range g.nodes {
		for _, t := range node.Transitions {
			if _, ok := g.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state '%s' (%d) transitions to missing state %d", node.Name, id, t.TargetID)
			}
		}
	}
	return nil
}

// MustValidate panics on an invalid graph; used for package-level graphs built at init
func (g *Graph[T]) MustValidate() *Graph[T] {
	if err := g.Validate(); err != nil {
		panic(fmt.Sprintf("FSM: %v", err))
	}
	return g
}
