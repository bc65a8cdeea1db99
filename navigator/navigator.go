package navigator

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/engine/fsm"
	"github.com/lixenwraith/fly-catcher/event"
	"github.com/lixenwraith/fly-catcher/parameter"
	"github.com/lixenwraith/fly-catcher/room"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// Environment is the scanned-room query surface the navigator needs
type Environment interface {
	// LandingSurface samples a random point on a matching surface, ok=false when none qualifies
	LandingSurface(kinds core.SurfaceType, labels core.Label, edgeClearance float64) (point, normal mgl64.Vec3, ok bool)
	// LineOfSight reports an unobstructed straight path
	LineOfSight(from, to mgl64.Vec3) bool
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (room.Hit, bool)
	SphereCast(origin, dir mgl64.Vec3, radius, maxDist float64) (room.Hit, bool)
}

// landingKinds are the surface orientations an agent may land on
const landingKinds = core.SurfaceFacingUp | core.SurfaceVertical

// Navigator drives agents through Seeking, Traveling and Resting
// Single-threaded: Update is called from the simulation tick only
type Navigator struct {
	env    Environment
	rng    *vmath.FastRand
	events *event.EventQueue
	logger *slog.Logger
}

// New creates a navigator; events and logger may be nil
func New(env Environment, rng *vmath.FastRand, events *event.EventQueue, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Navigator{env: env, rng: rng, events: events, logger: logger}
}

// step is the per-update context handed to graph actions
type step struct {
	n   *Navigator
	a   *Agent
	now time.Time
	dt  float64 // seconds
}

// Update advances one agent by dt; caught agents are ignored
func (n *Navigator) Update(a *Agent, now time.Time, dt time.Duration) {
	if a.Caught {
		return
	}
	s := step{n: n, a: a, now: now, dt: dt.Seconds()}
	graph.Update(&s, &a.rt, dt)
}

var graph = buildGraph()

func buildGraph() *fsm.Graph[*step] {
	g := fsm.NewGraph[*step](fsm.StateID(StateSeeking))

	g.AddState(fsm.StateID(StateSeeking), "Seeking").
		Enter(func(s *step, _ *fsm.Runtime) { s.a.HasTarget = false }).
		Tick(seek).
		To(fsm.StateID(StateTraveling), func(s *step, _ *fsm.Runtime) bool { return s.a.HasTarget })

	g.AddState(fsm.StateID(StateTraveling), "Traveling").
		Enter(func(s *step, _ *fsm.Runtime) { s.a.arrived, s.a.takeoff = false, false }).
		Tick(travel).
		To(fsm.StateID(StateSeeking), func(s *step, _ *fsm.Runtime) bool { return s.a.arrived && s.a.takeoff }).
		To(fsm.StateID(StateResting), func(s *step, _ *fsm.Runtime) bool { return s.a.arrived })

	g.AddState(fsm.StateID(StateResting), "Resting").
		Enter(land).
		To(fsm.StateID(StateSeeking), func(s *step, _ *fsm.Runtime) bool { return !s.now.Before(s.a.RestUntil) })

	return g.MustValidate()
}

// seek samples one landing candidate per tick; a rejected candidate is discarded
func seek(s *step, _ *fsm.Runtime) {
	a, n := s.a, s.n
	p := a.Profile

	point, normal, ok := n.env.LandingSurface(landingKinds, p.Landable.Label(), p.EdgeClearance)
	if !ok {
		return
	}
	if !n.env.LineOfSight(a.Pose.Position, point) {
		return
	}
	if !n.accessible(p, point, normal) {
		return
	}

	a.Target = point
	a.TargetNormal = normal
	a.HasTarget = true

	n.logger.Debug("new target position", "entity", a.Entity, "target", point, "normal", normal)
	n.emit(s.now, event.EventTargetAcquired, &event.TargetPayload{Entity: a.Entity, Target: point, Normal: normal})
}

// accessible sweeps a sphere off the surface along its normal; anything hit blocks the landing
func (n *Navigator) accessible(p tuning.WaveProfile, point, normal mgl64.Vec3) bool {
	if p.AccessibilityRadius <= 0 || p.CheckDistance <= 0 {
		return true
	}
	origin := point.Add(normal.Mul(parameter.RestSnapOffset))
	_, hit := n.env.SphereCast(origin, normal, p.AccessibilityRadius, p.CheckDistance)
	return !hit
}

// travel moves toward the target without overshooting and rolls takeoff on arrival
func travel(s *step, _ *fsm.Runtime) {
	a, n := s.a, s.n
	p := a.Profile

	delta := a.Target.Sub(a.Pose.Position)
	if delta.Len() > 0 {
		desired := vmath.LookRotation(delta, vmath.Up)
		a.Pose.Rotation = vmath.SlerpStep(a.Pose.Rotation, desired, p.RotationSpeed, s.dt)
	}
	a.Pose.Position = vmath.MoveTowards(a.Pose.Position, a.Target, p.Speed*s.dt)

	if vmath.Distance(a.Pose.Position, a.Target) >= parameter.ArrivalEpsilon {
		return
	}

	a.arrived = true
	a.takeoff = n.rng.Chance(p.TakeoffChance)
	if a.takeoff {
		n.logger.Debug("take off", "entity", a.Entity, "position", a.Pose.Position)
		n.emit(s.now, event.EventTookOff, &event.AgentPayload{Entity: a.Entity})
	}
}

// land snaps onto the surface, aligns up with the normal under a random yaw and schedules the resume
func land(s *step, _ *fsm.Runtime) {
	a, n := s.a, s.n
	p := a.Profile

	point, normal := a.Target, a.TargetNormal
	if p.RestSnap == tuning.RestSnapSurfaceBelow {
		origin := a.Target.Add(a.TargetNormal.Mul(parameter.SurfaceBelowLift))
		if hit, ok := n.env.Raycast(origin, vmath.Down, parameter.SurfaceBelowRay); ok {
			point, normal = hit.Point, hit.Normal
		}
	}

	a.Pose.Position = point.Add(normal.Mul(parameter.RestSnapOffset))
	a.Pose.Rotation = vmath.Yaw(vmath.AlignUp(a.Pose.Rotation, normal), n.rng.Range(0, 2*math.Pi))

	a.LastRestDuration = n.rng.Duration(p.MinRest, p.MaxRest)
	a.RestUntil = s.now.Add(a.LastRestDuration)

	n.logger.Debug("resting", "entity", a.Entity, "position", a.Pose.Position, "duration", a.LastRestDuration)
	n.emit(s.now, event.EventLanded, &event.TargetPayload{Entity: a.Entity, Target: point, Normal: normal})
}

func (n *Navigator) emit(now time.Time, t event.EventType, payload any) {
	if n.events == nil {
		return
	}
	n.events.Push(event.GameEvent{Type: t, Payload: payload, Time: now})
}
