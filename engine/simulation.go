package engine

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/capture"
	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/event"
	"github.com/lixenwraith/fly-catcher/navigator"
	"github.com/lixenwraith/fly-catcher/parameter"
	"github.com/lixenwraith/fly-catcher/physics"
	"github.com/lixenwraith/fly-catcher/room"
	"github.com/lixenwraith/fly-catcher/status"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// System is an orchestration hook run after event dispatch on every tick
type System interface {
	Name() string
	Update(now time.Time, dt time.Duration)
}

// Config wires a simulation; zero fields fall back to defaults
type Config struct {
	Tuning tuning.Config
	Seed   uint64
	Logger *slog.Logger
	Hands  capture.HandSource
	Clock  TimeProvider // Wall clock for Step; nil uses the monotonic provider
	Status *status.Registry
	Epoch  time.Time // Simulation time origin
}

type scheduledDestroy struct {
	entity core.Entity
	at     time.Time
	reason event.DestroyReason
}

// Simulation owns every piece of mutable state and advances it on a single goroutine
type Simulation struct {
	Scene     *physics.Scene
	Agents    *Store[*navigator.Agent]
	Navigator *navigator.Navigator
	Reactor   *capture.Reactor
	Events    *event.EventQueue
	Router    *event.Router
	Status    *status.Registry
	Tuning    tuning.Config

	rng    *vmath.FastRand
	logger *slog.Logger
	hands  capture.HandSource

	clock    TimeProvider
	lastStep time.Time

	now        time.Time
	nextEntity core.Entity
	destroys   []scheduledDestroy
	systems    []System

	// Cached metric pointers
	statTicks   *atomic.Int64
	statAlive   *atomic.Int64
	statSpawned *atomic.Int64
	statCaught  *atomic.Int64
	statCulled  *atomic.Int64
	statHits    *atomic.Int64
	statMisses  *atomic.Int64
	statPhase   *status.AtomicString
	statHand    *status.AtomicString
	statExt     *status.AtomicFloat
	statDropped *atomic.Int64
}

// New creates a simulation over a scanned room
func New(r *room.Room, cfg Config) *Simulation {
	cfg.Tuning = cfg.Tuning.WithDefaults()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Clock == nil {
		cfg.Clock = NewMonotonicTimeProvider()
	}
	if cfg.Status == nil {
		cfg.Status = status.NewRegistry()
	}
	if cfg.Epoch.IsZero() {
		cfg.Epoch = time.Unix(0, 0).UTC()
	}

	rng := vmath.NewFastRand(cfg.Seed)
	queue := event.NewEventQueue()
	scene := physics.NewScene(r)

	s := &Simulation{
		Scene:      scene,
		Agents:     NewStore[*navigator.Agent](),
		Events:     queue,
		Router:     event.NewRouter(queue),
		Status:     cfg.Status,
		Tuning:     cfg.Tuning,
		rng:        rng,
		logger:     cfg.Logger,
		hands:      cfg.Hands,
		clock:      cfg.Clock,
		now:        cfg.Epoch,
		nextEntity: 1,
	}
	s.Navigator = navigator.New(scene, rng, queue, cfg.Logger.With("component", "navigator"))
	s.Reactor = capture.NewReactor(cfg.Tuning.Capture, scene, s, rng, queue, cfg.Logger.With("component", "capture"))

	reg := cfg.Status
	s.statTicks = reg.Ints.Get(status.KeyTicks)
	s.statAlive = reg.Ints.Get(status.KeyAgentsAlive)
	s.statSpawned = reg.Ints.Get(status.KeyAgentsSpawned)
	s.statCaught = reg.Ints.Get(status.KeyAgentsCaught)
	s.statCulled = reg.Ints.Get(status.KeyAgentsCulled)
	s.statHits = reg.Ints.Get(status.KeyCaptureHits)
	s.statMisses = reg.Ints.Get(status.KeyCaptureMisses)
	s.statPhase = reg.Strings.Get(status.KeyCapturePhase)
	s.statHand = reg.Strings.Get(status.KeyCaptureHand)
	s.statExt = reg.Floats.Get(status.KeyExtension)
	s.statDropped = reg.Ints.Get(status.KeyEventsDropped)

	s.Router.Register(event.HandlerFunc{
		Types: []event.EventType{event.EventCaptureHit, event.EventCaptureMiss},
		Fn: func(ev event.GameEvent) {
			if ev.Type == event.EventCaptureHit {
				s.statHits.Add(1)
			} else {
				s.statMisses.Add(1)
			}
		},
	})
	s.updateStatus()

	return s
}

// Now returns the simulation time
func (s *Simulation) Now() time.Time {
	return s.now
}

// Rand exposes the shared generator for orchestration
func (s *Simulation) Rand() *vmath.FastRand {
	return s.rng
}

// Logger returns the simulation logger
func (s *Simulation) Logger() *slog.Logger {
	return s.logger
}

// SetHands replaces the hand tracking source
func (s *Simulation) SetHands(src capture.HandSource) {
	s.hands = src
}

// Subscribe registers an event handler, dispatched at the end of every tick
func (s *Simulation) Subscribe(h event.Handler) {
	s.Router.Register(h)
}

// AddSystem registers an orchestration system, updated in registration order
func (s *Simulation) AddSystem(sys System) {
	s.systems = append(s.systems, sys)
	s.logger.Debug("system added", "system", sys.Name())
}

// SpawnAgent creates an agent in Seeking and registers its collider
func (s *Simulation) SpawnAgent(position, up mgl64.Vec3, profile tuning.WaveProfile) core.Entity {
	e := s.nextEntity
	s.nextEntity++

	pose := vmath.NewPose(position)
	pose.Rotation = vmath.AlignUp(pose.Rotation, up)
	a := navigator.NewAgent(e, pose, profile)
	s.Agents.Set(e, a)
	s.Scene.Colliders.Set(e, physics.Sphere{
		Center: position,
		Radius: parameter.AgentColliderRadius,
		Layer:  physics.LayerAgent,
	})

	s.statSpawned.Add(1)
	s.statAlive.Store(int64(s.Agents.Len()))
	s.logger.Debug("agent spawned", "entity", e, "position", position, "profile", profile.Name)
	s.emit(event.EventAgentSpawned, &event.AgentSpawnedPayload{Entity: e, Position: position, Profile: profile.Name})
	return e
}

// Agent resolves a handle; destroyed handles fail cleanly
func (s *Simulation) Agent(e core.Entity) (*navigator.Agent, bool) {
	return s.Agents.Get(e)
}

// CullAgent removes an agent immediately; returns false for a dead handle
func (s *Simulation) CullAgent(e core.Entity) bool {
	return s.destroy(e, event.ReasonCulled)
}

// Catchable reports a live, uncaught agent
func (s *Simulation) Catchable(e core.Entity) bool {
	a, ok := s.Agents.Get(e)
	return ok && !a.Caught
}

// Catch freezes the agent onto the tongue tip and schedules its removal
func (s *Simulation) Catch(e core.Entity, offset mgl64.Vec3) {
	a, ok := s.Agents.Get(e)
	if !ok || a.Caught {
		return
	}
	a.Caught = true
	a.AnimationSpeed = 0
	a.Scale *= parameter.CaughtScale
	a.AttachOffset = offset
	s.Scene.Colliders.SetLayer(e, physics.LayerCaught)

	s.destroys = append(s.destroys, scheduledDestroy{
		entity: e,
		at:     s.now.Add(parameter.CaughtDespawn),
		reason: event.ReasonCaptured,
	})
	s.statCaught.Add(1)
}

// Step advances by the wall-clock time since the previous Step
func (s *Simulation) Step() {
	wall := s.clock.Now()
	if s.lastStep.IsZero() {
		s.lastStep = wall
		return
	}
	dt := wall.Sub(s.lastStep)
	s.lastStep = wall
	if dt <= 0 {
		return
	}
	s.Tick(dt)
}

// Tick advances the simulation by dt, clamped to MaxTickDelta
func (s *Simulation) Tick(dt time.Duration) {
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}

	// 1. Clock
	s.now = s.now.Add(dt)

	// 2. Scheduled destroys
	s.processDestroys()

	// 3. Navigation, ascending entity order
	agents := s.Agents.Values()
	for _, a := range agents {
		s.Navigator.Update(a, s.now, dt)
	}

	// 4. Collider sync
	for _, a := range agents {
		if !a.Caught {
			s.Scene.Colliders.Move(a.Entity, a.Pose.Position)
		}
	}

	// 5. Capture reactor
	s.Reactor.Update(s.now, dt, s.hands)

	// 6. Caught agents ride the tip
	tip := s.Reactor.Tip()
	for _, a := range agents {
		if !a.Caught {
			continue
		}
		a.Pose.Position = tip.TransformPoint(a.AttachOffset)
		s.Scene.Colliders.Move(a.Entity, a.Pose.Position)
	}

	// 7. Event dispatch
	s.Router.DispatchAll()

	// Orchestration
	for _, sys := range s.systems {
		sys.Update(s.now, dt)
	}

	s.statTicks.Add(1)
	s.updateStatus()
}

func (s *Simulation) processDestroys() {
	if len(s.destroys) == 0 {
		return
	}
	pending := s.destroys[:0]
	for _, d := range s.destroys {
		if s.now.Before(d.at) {
			pending = append(pending, d)
			continue
		}
		s.destroy(d.entity, d.reason)
	}
	s.destroys = pending
}

// destroy removes the agent and its collider; the destroyed event fires once per agent
func (s *Simulation) destroy(e core.Entity, reason event.DestroyReason) bool {
	if !s.Agents.Remove(e) {
		return false
	}
	s.Scene.Colliders.Remove(e)
	if reason == event.ReasonCulled {
		s.statCulled.Add(1)
	}
	s.statAlive.Store(int64(s.Agents.Len()))
	s.logger.Debug("agent destroyed", "entity", e, "reason", reason)
	s.emit(event.EventAgentDestroyed, &event.AgentDestroyedPayload{Entity: e, Reason: reason})
	return true
}

func (s *Simulation) updateStatus() {
	s.statPhase.Store(s.Reactor.Phase().String())
	s.statHand.Store(s.Reactor.ActiveHand.String())
	s.statExt.Set(s.Reactor.ExtensionFactor())
	s.statDropped.Store(int64(s.Events.Overwritten()))
}

func (s *Simulation) emit(t event.EventType, payload any) {
	s.Events.Push(event.GameEvent{Type: t, Payload: payload, Time: s.now})
}
