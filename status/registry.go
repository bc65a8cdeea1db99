package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys written by the simulation
const (
	KeyTicks         = "sim.ticks"
	KeyAgentsAlive   = "agents.alive"
	KeyAgentsSpawned = "agents.spawned"
	KeyAgentsCaught  = "agents.caught"
	KeyAgentsCulled  = "agents.culled"
	KeyCaptureHits   = "capture.hits"
	KeyCaptureMisses = "capture.misses"
	KeyCapturePhase  = "capture.phase"
	KeyCaptureHand   = "capture.hand"
	KeyExtension     = "capture.extension"
	KeyWave          = "wave.index"
	KeyWaveRemaining = "wave.remaining"
	KeyEventsDropped = "events.dropped"
)

// Registry is the metrics facade shared between the simulation tick and the sandbox display
// Writers cache pointers at construction and store directly into the atomics
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Summary renders every metric as "key=value" pairs in sorted order per type
func (r *Registry) Summary() string {
	parts := make([]string, 0, r.TotalCount())
	r.Strings.Range(func(k string, v *AtomicString) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", k, v.Get()))
	})
	return strings.Join(parts, " ")
}
