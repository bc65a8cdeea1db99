package event

import "github.com/lixenwraith/fly-catcher/parameter"

// Handler processes routed events
// Implemented by wave orchestration, audio, and test observers
type Handler interface {
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function subscribed to a fixed set of types
type HandlerFunc struct {
	Types []EventType
	Fn    func(ev GameEvent)
}

func (h HandlerFunc) HandleEvent(ev GameEvent) { h.Fn(ev) }

func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Router dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
type Router struct {
	handlers map[EventType][]Handler
	queue    *EventQueue
	buf      []GameEvent // reused every dispatch
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
		buf:      make([]GameEvent, 0, parameter.EventQueueSize),
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes to handlers in FIFO order
// Returns the number of events consumed
func (r *Router) DispatchAll() int {
	r.buf = r.queue.Drain(r.buf[:0])
	for _, ev := range r.buf {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	n := len(r.buf)
	clear(r.buf) // release payloads
	return n
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
