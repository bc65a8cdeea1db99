package wave

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/event"
	"github.com/lixenwraith/fly-catcher/parameter"
	"github.com/lixenwraith/fly-catcher/room"
	"github.com/lixenwraith/fly-catcher/status"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// Spawner creates agents; implemented by engine.Simulation
type Spawner interface {
	SpawnAgent(position, up mgl64.Vec3, profile tuning.WaveProfile) core.Entity
}

// Director runs the wave progression: spawns each wave's agents from window and door frames at
// random intervals and advances once every agent of the wave has been destroyed
type Director struct {
	cfg     tuning.Config
	room    *room.Room
	spawner Spawner
	rng     *vmath.FastRand
	logger  *slog.Logger

	wave      int
	toSpawn   int
	alive     map[core.Entity]struct{}
	nextSpawn time.Time
	started   bool

	caught int
	culled int

	statWave      *atomic.Int64
	statRemaining *atomic.Int64
}

// NewDirector creates a director starting at wave 0; logger and reg may be nil
func NewDirector(cfg tuning.Config, r *room.Room, spawner Spawner, rng *vmath.FastRand, logger *slog.Logger, reg *status.Registry) *Director {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Director{
		cfg:           cfg,
		room:          r,
		spawner:       spawner,
		rng:           rng,
		logger:        logger,
		alive:         make(map[core.Entity]struct{}),
		statWave:      reg.Ints.Get(status.KeyWave),
		statRemaining: reg.Ints.Get(status.KeyWaveRemaining),
	}
}

func (d *Director) Name() string { return "wave" }

// Wave returns the current wave index
func (d *Director) Wave() int { return d.wave }

// Profile returns the current wave's profile
func (d *Director) Profile() tuning.WaveProfile { return d.cfg.Profile(d.wave) }

// Remaining is the count of agents not yet destroyed in the current wave, spawned or not
func (d *Director) Remaining() int { return d.toSpawn + len(d.alive) }

// Caught returns the total agents destroyed by capture across all waves
func (d *Director) Caught() int { return d.caught }

// Culled returns the total agents removed externally across all waves
func (d *Director) Culled() int { return d.culled }

// EventTypes implements event.Handler
func (d *Director) EventTypes() []event.EventType {
	return []event.EventType{event.EventAgentDestroyed}
}

// HandleEvent updates the remaining count from destroy events
func (d *Director) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.AgentDestroyedPayload)
	if !ok {
		return
	}
	if _, tracked := d.alive[p.Entity]; !tracked {
		return
	}
	delete(d.alive, p.Entity)
	switch p.Reason {
	case event.ReasonCaptured:
		d.caught++
	case event.ReasonCulled:
		d.culled++
	}
	d.statRemaining.Store(int64(d.Remaining()))
}

// Update spawns due agents and advances the wave when it is cleared
func (d *Director) Update(now time.Time, _ time.Duration) {
	if !d.started {
		d.started = true
		d.beginWave(now)
	}

	if d.toSpawn > 0 && !now.Before(d.nextSpawn) {
		d.spawn()
		d.nextSpawn = now.Add(d.rng.Duration(d.cfg.Spawn.IntervalMin, d.cfg.Spawn.IntervalMax))
	}

	if d.Remaining() == 0 {
		d.logger.Info("wave cleared", "wave", d.wave, "caught", d.caught, "culled", d.culled)
		d.wave++
		d.beginWave(now)
	}

	d.statRemaining.Store(int64(d.Remaining()))
}

func (d *Director) beginWave(now time.Time) {
	p := d.Profile()
	d.toSpawn = p.Count
	d.nextSpawn = now
	d.statWave.Store(int64(d.wave))
	d.logger.Info("wave started", "wave", d.wave, "profile", p.Name, "count", p.Count)
}

func (d *Director) spawn() {
	pos := d.SpawnPoint()
	e := d.spawner.SpawnAgent(pos, vmath.Up, d.Profile())
	d.alive[e] = struct{}{}
	d.toSpawn--
}

// SpawnPoint picks a random spawn anchor and a point inside its rect, lifted off the frame
func (d *Director) SpawnPoint() mgl64.Vec3 {
	anchors := d.room.AnchorsWithLabel(d.cfg.Spawn.Anchors.Label())
	if len(anchors) == 0 {
		return mgl64.Vec3{0, parameter.FallbackSpawnHeight, 0}
	}
	a := anchors[d.rng.Intn(len(anchors))]
	return d.room.RandomPointOnAnchor(a).Add(a.Normal().Mul(parameter.SpawnLift))
}
