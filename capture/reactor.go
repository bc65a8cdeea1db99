package capture

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/engine/fsm"
	"github.com/lixenwraith/fly-catcher/event"
	"github.com/lixenwraith/fly-catcher/parameter"
	"github.com/lixenwraith/fly-catcher/physics"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// Environment is the physics query surface for the forward sweep and the tip trigger volume
type Environment interface {
	Sweep(origin, dir mgl64.Vec3, radius, maxDist float64, layers physics.Layer) (core.Entity, float64, bool)
	Overlap(bounds physics.AABB, layers physics.Layer) []core.Entity
}

// Targets resolves weak agent handles and applies captures
type Targets interface {
	// Catchable reports a live, uncaught agent
	Catchable(e core.Entity) bool
	// Catch attaches the agent to the tip at offset and schedules its removal
	Catch(e core.Entity, offset mgl64.Vec3)
}

// Phase is the tongue sequence phase
type Phase fsm.StateID

const (
	PhaseIdle Phase = iota + 1
	PhaseExtending
	PhaseHolding
	PhaseRetracting
	PhaseStowing
)

func (p Phase) String() string {
	if name := graph.Name(fsm.StateID(p)); name != "" {
		return name
	}
	return "Unknown"
}

// Reactor is the single capture apparatus
type Reactor struct {
	cfg     tuning.CaptureTuning
	env     Environment
	targets Targets
	rng     *vmath.FastRand
	events  *event.EventQueue
	logger  *slog.Logger

	ActiveHand  core.Hand
	LastTrigger time.Time

	// Detected is a weak handle, re-resolved every tick
	Detected         core.Entity
	DetectedDistance float64

	Extension float64
	Visible   bool

	// Pose is the apparatus world pose; forward is the sweep and tongue axis
	Pose vmath.Pose

	targetExtension float64
	progress        float64
	pending         bool

	contacts map[core.Entity]struct{}
	order    []core.Entity // contact order for deterministic resolution

	munchAt      time.Time
	munchPending bool

	rt  fsm.Runtime
	now time.Time
	dt  float64
}

// NewReactor creates a dormant reactor; events and logger may be nil
func NewReactor(cfg tuning.CaptureTuning, env Environment, targets Targets, rng *vmath.FastRand, events *event.EventQueue, logger *slog.Logger) *Reactor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Reactor{
		cfg:       cfg,
		env:       env,
		targets:   targets,
		rng:       rng,
		events:    events,
		logger:    logger,
		Extension: cfg.MinExtension,
		Pose:      vmath.NewPose(mgl64.Vec3{}),
		contacts:  make(map[core.Entity]struct{}),
	}
	graph.Init(r, &r.rt)
	return r
}

// Phase returns the current sequence phase
func (r *Reactor) Phase() Phase {
	return Phase(r.rt.Active)
}

// Armed is true from trigger until retraction completes
func (r *Reactor) Armed() bool {
	return r.ActiveHand != core.HandNone
}

// ExtensionFactor is the normalized extension in [0, 1]
func (r *Reactor) ExtensionFactor() float64 {
	return vmath.RemapClamped(r.Extension, r.cfg.MinExtension, r.cfg.MaxExtension, 0, 1)
}

// Tip returns the tongue tip pose
func (r *Reactor) Tip() vmath.Pose {
	reach := (r.Extension - r.cfg.MinExtension) * r.cfg.CastDistance / (r.cfg.MaxExtension - r.cfg.MinExtension)
	return vmath.Pose{
		Position: r.Pose.Position.Add(r.Pose.Forward().Mul(reach)),
		Rotation: r.Pose.Rotation,
	}
}

// TipBounds is the trigger volume around the tip
func (r *Reactor) TipBounds() physics.AABB {
	return physics.BoxAround(r.Tip().Position, parameter.TipHalfExtent)
}

// Offset is the apparatus pose relative to a hand root, mirrored for the left hand
func (r *Reactor) Offset(h core.Hand) vmath.Pose {
	p := r.cfg.PositionOffset
	e := r.cfg.RotationOffset
	pos := mgl64.Vec3{p[0], p[1], p[2]}
	roll := vmath.DegToRad(e[2])
	if h == core.HandLeft {
		pos = pos.Mul(-1)
		roll += math.Pi
	}
	// Roll is applied first, then pitch, then yaw, so the mirrored roll leaves forward untouched
	rot := mgl64.AnglesToQuat(vmath.DegToRad(e[1]), vmath.DegToRad(e[0]), roll, mgl64.YXZ)
	return vmath.Pose{Position: pos, Rotation: rot.Normalize()}
}

// Update runs one tick: sweep, gesture, sequence
func (r *Reactor) Update(now time.Time, dt time.Duration, hands HandSource) {
	r.now = now
	r.dt = dt.Seconds()

	r.follow(hands)
	r.resolveSweep()
	r.gesture(hands)

	if r.munchPending && !now.Before(r.munchAt) {
		r.munchPending = false
		r.emit(event.EventMunch, nil)
	}

	graph.Update(r, &r.rt, dt)
}

// follow keeps the apparatus attached to the active hand while it is tracked
func (r *Reactor) follow(hands HandSource) {
	if r.ActiveHand == core.HandNone || hands == nil {
		return
	}
	in := hands.Hand(r.ActiveHand)
	if !in.Tracked {
		return
	}
	r.Pose = in.Root.Compose(r.Offset(r.ActiveHand))
}

// resolveSweep clears the handle when the sweep misses or the entity is gone or caught
func (r *Reactor) resolveSweep() {
	e, dist, ok := r.env.Sweep(r.Pose.Position, r.Pose.Forward(), r.cfg.CastRadius, r.cfg.CastDistance, physics.LayerAgent)
	if !ok || !r.targets.Catchable(e) {
		r.Detected = core.EntityNone
		r.DetectedDistance = 0
		return
	}
	r.Detected = e
	r.DetectedDistance = dist
}

func (r *Reactor) gesture(hands HandSource) {
	if hands == nil {
		return
	}
	for _, h := range trackOrder {
		in := hands.Hand(h)
		if !in.Pinching(r.cfg.PinchThreshold) {
			continue
		}
		if r.ActiveHand != core.HandNone || r.now.Sub(r.LastTrigger) <= r.cfg.Cooldown {
			continue
		}
		r.trigger(h, in)
	}
}

// trigger attaches to the hand and computes the sequence's target extension
func (r *Reactor) trigger(h core.Hand, in HandInput) {
	r.ActiveHand = h
	r.LastTrigger = r.now
	r.Visible = true
	r.Pose = in.Root.Compose(r.Offset(h))

	// Detection follows the freshly attached pose
	r.resolveSweep()
	if r.Detected != core.EntityNone {
		r.targetExtension = vmath.RemapClamped(r.DetectedDistance, 0, r.cfg.CastDistance, r.cfg.MinExtension, r.cfg.MaxExtension)
	} else {
		r.targetExtension = vmath.Remap(r.cfg.MissLash, 0, 1, r.cfg.MinExtension, r.cfg.MaxExtension)
	}
	r.pending = true

	r.logger.Debug("capture triggered", "hand", h, "detected", r.Detected, "extension", r.targetExtension)
	r.emit(event.EventCaptureTriggered, &event.CaptureTriggeredPayload{
		Hand:      h,
		Detected:  r.Detected,
		Distance:  r.DetectedDistance,
		Extension: r.targetExtension,
	})
}

// collectContacts records agents newly entering the tip volume
func (r *Reactor) collectContacts() {
	for _, e := range r.env.Overlap(r.TipBounds(), physics.LayerAgent) {
		if _, seen := r.contacts[e]; seen {
			continue
		}
		r.contacts[e] = struct{}{}
		r.order = append(r.order, e)
	}
}

// resolveContacts captures every recorded contact still catchable
func (r *Reactor) resolveContacts() {
	h := parameter.TipHalfExtent
	caught := 0
	for _, e := range r.order {
		if !r.targets.Catchable(e) {
			continue
		}
		offset := r.rng.InBox(mgl64.Vec3{-h, -h, -h}, mgl64.Vec3{h, h, h})
		r.targets.Catch(e, offset)
		caught++
		r.logger.Debug("agent caught", "entity", e)
		r.emit(event.EventCaptureHit, &event.AgentPayload{Entity: e})
	}
	if caught == 0 {
		r.logger.Debug("capture missed")
		r.emit(event.EventCaptureMiss, nil)
	}

	r.munchAt = r.now.Add(parameter.MunchDelay)
	r.munchPending = true
}

func (r *Reactor) resetContacts() {
	clear(r.contacts)
	r.order = r.order[:0]
}

func (r *Reactor) emit(t event.EventType, payload any) {
	if r.events == nil {
		return
	}
	r.events.Push(event.GameEvent{Type: t, Payload: payload, Time: r.now})
}

var graph = buildGraph()

func buildGraph() *fsm.Graph[*Reactor] {
	g := fsm.NewGraph[*Reactor](fsm.StateID(PhaseIdle))
	triggered := func(r *Reactor, _ *fsm.Runtime) bool { return r.pending }

	g.AddState(fsm.StateID(PhaseIdle), "Idle").
		Enter(func(r *Reactor, rt *fsm.Runtime) {
			r.Visible = false
			if rt.Transitions > 0 {
				r.emit(event.EventCaptureStowed, nil)
			}
		}).
		To(fsm.StateID(PhaseExtending), triggered)

	g.AddState(fsm.StateID(PhaseExtending), "Extending").
		Enter(func(r *Reactor, _ *fsm.Runtime) {
			r.pending = false
			r.progress = 0
			r.Extension = r.cfg.MinExtension
			r.resetContacts()
		}).
		Tick(func(r *Reactor, _ *fsm.Runtime) {
			r.progress += r.dt * r.cfg.GrabSpeed
			r.Extension = vmath.Lerp(r.cfg.MinExtension, r.targetExtension, math.Min(r.progress, 1))
			r.collectContacts()
		}).
		To(fsm.StateID(PhaseHolding), func(r *Reactor, _ *fsm.Runtime) bool { return r.progress >= 1 })

	g.AddState(fsm.StateID(PhaseHolding), "Holding").
		Tick(func(r *Reactor, _ *fsm.Runtime) { r.collectContacts() }).
		Exit(func(r *Reactor, _ *fsm.Runtime) { r.resolveContacts() }).
		To(fsm.StateID(PhaseRetracting), func(_ *Reactor, rt *fsm.Runtime) bool { return rt.TimeInState >= parameter.TongueHold })

	g.AddState(fsm.StateID(PhaseRetracting), "Retracting").
		Enter(func(r *Reactor, _ *fsm.Runtime) { r.progress = 0 }).
		Tick(func(r *Reactor, _ *fsm.Runtime) {
			r.progress += r.dt * r.cfg.ReturnSpeed
			r.Extension = vmath.Lerp(r.targetExtension, r.cfg.MinExtension, math.Min(r.progress, 1))
		}).
		Exit(func(r *Reactor, _ *fsm.Runtime) {
			r.Extension = r.cfg.MinExtension
			r.ActiveHand = core.HandNone
		}).
		To(fsm.StateID(PhaseStowing), func(r *Reactor, _ *fsm.Runtime) bool {
			return math.Abs(r.Extension-r.cfg.MinExtension) < parameter.ExtensionEpsilon
		})

	g.AddState(fsm.StateID(PhaseStowing), "Stowing").
		To(fsm.StateID(PhaseExtending), triggered).
		To(fsm.StateID(PhaseIdle), func(_ *Reactor, rt *fsm.Runtime) bool { return rt.TimeInState >= parameter.StowDelay })

	return g.MustValidate()
}
