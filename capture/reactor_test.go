package capture

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/event"
	"github.com/lixenwraith/fly-catcher/parameter"
	"github.com/lixenwraith/fly-catcher/physics"
	"github.com/lixenwraith/fly-catcher/tuning"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// colliderEnv exposes a collider registry as the reactor environment
type colliderEnv struct {
	c *physics.Colliders
}

func (e colliderEnv) Sweep(origin, dir mgl64.Vec3, radius, maxDist float64, layers physics.Layer) (core.Entity, float64, bool) {
	return e.c.SphereCast(origin, dir, radius, maxDist, layers)
}

func (e colliderEnv) Overlap(bounds physics.AABB, layers physics.Layer) []core.Entity {
	return e.c.Overlap(bounds, layers)
}

// fakeTargets tracks live agents and records catches
type fakeTargets struct {
	c      *physics.Colliders
	live   map[core.Entity]bool
	caught map[core.Entity]mgl64.Vec3
}

func (f *fakeTargets) Catchable(e core.Entity) bool {
	_, caught := f.caught[e]
	return f.live[e] && !caught
}

func (f *fakeTargets) Catch(e core.Entity, offset mgl64.Vec3) {
	f.caught[e] = offset
	f.c.SetLayer(e, physics.LayerCaught)
}

type harness struct {
	r       *Reactor
	q       *event.EventQueue
	c       *physics.Colliders
	targets *fakeTargets
	now     time.Time
	log     []event.GameEvent
}

func testCapture() tuning.CaptureTuning {
	cfg := tuning.Default().Capture
	cfg.PositionOffset = [3]float64{}
	cfg.RotationOffset = [3]float64{}
	return cfg
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, testCapture())
}

func newHarnessWith(t *testing.T, cfg tuning.CaptureTuning) *harness {
	t.Helper()
	c := physics.NewColliders()
	targets := &fakeTargets{c: c, live: make(map[core.Entity]bool), caught: make(map[core.Entity]mgl64.Vec3)}
	q := event.NewEventQueue()
	return &harness{
		r:       NewReactor(cfg, colliderEnv{c}, targets, vmath.NewFastRand(11), q, nil),
		q:       q,
		c:       c,
		targets: targets,
		now:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (h *harness) addAgent(e core.Entity, p mgl64.Vec3) {
	h.c.Set(e, physics.Sphere{Center: p, Radius: parameter.AgentColliderRadius, Layer: physics.LayerAgent})
	h.targets.live[e] = true
}

const dt = 10 * time.Millisecond

func (h *harness) tick(hands HandSource) {
	h.now = h.now.Add(dt)
	h.r.Update(h.now, dt, hands)
	h.log = append(h.log, h.q.Consume()...)
}

func (h *harness) run(d time.Duration, hands HandSource, each func()) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += dt {
		h.tick(hands)
		if each != nil {
			each()
		}
	}
}

func (h *harness) count(t event.EventType) int {
	n := 0
	for _, ev := range h.log {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func pinch(root vmath.Pose) HandInput {
	return HandInput{Tracked: true, Root: root, ThumbTip: mgl64.Vec3{0, 0, 0}, IndexTip: mgl64.Vec3{0.01, 0, 0}}
}

func open(root vmath.Pose) HandInput {
	return HandInput{Tracked: true, Root: root, ThumbTip: mgl64.Vec3{0, 0, 0}, IndexTip: mgl64.Vec3{0.06, 0, 0}}
}

var origin = vmath.NewPose(mgl64.Vec3{})

func TestPinchThreshold(t *testing.T) {
	if !pinch(origin).Pinching(parameter.PinchThreshold) {
		t.Error("Expected 0.01 to pinch")
	}
	if open(origin).Pinching(parameter.PinchThreshold) {
		t.Error("Expected 0.06 not to pinch")
	}
	untracked := pinch(origin)
	untracked.Tracked = false
	if untracked.Pinching(parameter.PinchThreshold) {
		t.Error("Untracked hand must be skipped")
	}
}

func TestSimultaneousPinchSingleSequence(t *testing.T) {
	h := newHarness(t)
	both := Hands{Left: pinch(origin), Right: pinch(origin)}

	h.tick(both)
	if h.r.ActiveHand != core.HandLeft {
		t.Fatalf("Expected left hand to win, got %v", h.r.ActiveHand)
	}
	if !h.r.Armed() || !h.r.Visible {
		t.Error("Expected armed and visible after trigger")
	}

	// Hold both pinches through the full sequence, still within cooldown
	h.run(2500*time.Millisecond, both, nil)

	if n := h.count(event.EventCaptureTriggered); n != 1 {
		t.Errorf("Expected exactly one trigger, got %d", n)
	}
	if n := h.count(event.EventCaptureMiss); n != 1 {
		t.Errorf("Expected one miss, got %d", n)
	}
}

func TestCooldownGatesRetrigger(t *testing.T) {
	h := newHarness(t)
	right := Hands{Right: pinch(origin)}
	idle := Hands{Right: open(origin)}

	h.tick(right)
	first := h.r.LastTrigger

	// Let the sequence finish and stow
	h.run(2*time.Second, idle, nil)
	if h.r.Phase() != PhaseIdle || h.r.Visible {
		t.Fatalf("Expected Idle and hidden, got %v visible=%v", h.r.Phase(), h.r.Visible)
	}

	h.tick(right)
	if h.r.Armed() {
		t.Fatal("Re-pinch within cooldown must be ignored")
	}

	for h.now.Sub(first) <= parameter.CaptureCooldown {
		h.tick(idle)
	}
	h.tick(right)
	if !h.r.Armed() || h.r.ActiveHand != core.HandRight {
		t.Fatal("Expected trigger after cooldown")
	}
	if n := h.count(event.EventCaptureTriggered); n != 2 {
		t.Errorf("Expected 2 triggers, got %d", n)
	}
	if n := h.count(event.EventCaptureStowed); n != 1 {
		t.Errorf("Expected 1 stow, got %d", n)
	}
}

func TestRetriggerWhileStowing(t *testing.T) {
	cfg := testCapture()
	cfg.Cooldown = 500 * time.Millisecond
	h := newHarnessWith(t, cfg)
	right := Hands{Right: pinch(origin)}
	idle := Hands{Right: open(origin)}

	h.tick(right)
	first := h.r.LastTrigger

	// Extend, hold and retract; the apparatus stays out until the stow delay ends
	for i := 0; h.r.Phase() != PhaseStowing; i++ {
		if i > 500 {
			t.Fatalf("Never reached Stowing, phase %v", h.r.Phase())
		}
		if !h.r.Visible {
			t.Fatalf("Apparatus hidden during %v", h.r.Phase())
		}
		h.tick(idle)
	}
	if h.now.Sub(first) <= cfg.Cooldown {
		t.Fatalf("Cooldown still active on entering Stowing after %v", h.now.Sub(first))
	}

	h.tick(right)
	if h.r.Phase() != PhaseExtending || !h.r.Armed() || h.r.ActiveHand != core.HandRight {
		t.Fatalf("Expected new sequence from Stowing, got %v armed=%v hand=%v", h.r.Phase(), h.r.Armed(), h.r.ActiveHand)
	}
	if !h.r.Visible {
		t.Error("Expected apparatus to stay visible across the re-trigger")
	}

	// Holding the pinch inside the new cooldown must not start a third sequence
	h.run(300*time.Millisecond, right, func() {
		if !h.r.Visible {
			t.Fatalf("Apparatus hidden during %v", h.r.Phase())
		}
	})
	if n := h.count(event.EventCaptureTriggered); n != 2 {
		t.Errorf("Expected 2 triggers, got %d", n)
	}
	if n := h.count(event.EventCaptureStowed); n != 0 {
		t.Errorf("Expected no stow between sequences, got %d", n)
	}
	t.Logf("✓ Re-triggered %v after the first trigger", h.r.LastTrigger.Sub(first))
}

func TestExtensionMonotonicAndClamped(t *testing.T) {
	h := newHarness(t)
	h.addAgent(1, mgl64.Vec3{0, 0, 3.9})
	cfg := testCapture()

	h.tick(Hands{Right: pinch(origin)})
	if h.r.Detected != 1 {
		t.Fatalf("Expected sweep to detect agent, got %v", h.r.Detected)
	}

	prev := h.r.Extension
	peak := prev
	idle := Hands{}
	h.run(3*time.Second, idle, func() {
		ext := h.r.Extension
		if ext < cfg.MinExtension || ext > cfg.MaxExtension {
			t.Fatalf("Extension %.4f outside [%v, %v]", ext, cfg.MinExtension, cfg.MaxExtension)
		}
		switch h.r.Phase() {
		case PhaseExtending, PhaseHolding:
			if ext < prev {
				t.Fatalf("Extension shrank while extending: %.4f -> %.4f", prev, ext)
			}
		case PhaseRetracting:
			if ext > prev {
				t.Fatalf("Extension grew while retracting: %.4f -> %.4f", prev, ext)
			}
		}
		if ext > peak {
			peak = ext
		}
		prev = ext
	})

	want := vmath.RemapClamped(3.9, 0, cfg.CastDistance, cfg.MinExtension, cfg.MaxExtension)
	if peak < want-1e-9 || peak > want+1e-9 {
		t.Errorf("Expected peak extension %.4f, got %.4f", want, peak)
	}
	if h.r.Extension != cfg.MinExtension || h.r.Armed() {
		t.Errorf("Expected rest extension and disarmed, got %.4f armed=%v", h.r.Extension, h.r.Armed())
	}
	t.Logf("✓ Peak extension %.3f", peak)
}

func TestMissLashNoCapture(t *testing.T) {
	h := newHarness(t)
	cfg := testCapture()
	lash := vmath.Remap(cfg.MissLash, 0, 1, cfg.MinExtension, cfg.MaxExtension)

	h.tick(Hands{Right: pinch(origin)})
	peak := 0.0
	h.run(2*time.Second, Hands{}, func() {
		if h.r.Extension > peak {
			peak = h.r.Extension
		}
	})

	if peak < lash-1e-9 || peak > lash+1e-9 {
		t.Errorf("Expected miss lash extension %.4f, got %.4f", lash, peak)
	}
	if h.count(event.EventCaptureHit) != 0 {
		t.Error("Miss must not emit a hit")
	}
	if h.count(event.EventCaptureMiss) != 1 || h.count(event.EventMunch) != 1 {
		t.Errorf("Expected one miss and one munch, got %d/%d", h.count(event.EventCaptureMiss), h.count(event.EventMunch))
	}
}

func TestHitRequiresTipContact(t *testing.T) {
	t.Run("on axis", func(t *testing.T) {
		h := newHarness(t)
		h.addAgent(5, mgl64.Vec3{0, 0, 2})
		h.tick(Hands{Right: pinch(origin)})

		var caughtAt Phase
		h.run(2*time.Second, Hands{}, func() {
			if _, ok := h.targets.caught[5]; ok && caughtAt == 0 {
				caughtAt = h.r.Phase()
			}
		})

		offset, ok := h.targets.caught[5]
		if !ok {
			t.Fatal("Expected agent on the tongue axis to be caught")
		}
		if caughtAt != PhaseRetracting {
			t.Errorf("Expected capture at hold end, got %v", caughtAt)
		}
		half := parameter.TipHalfExtent
		for i := 0; i < 3; i++ {
			if offset[i] < -half || offset[i] > half {
				t.Errorf("Attachment offset %v outside tip bounds", offset)
			}
		}
		if h.count(event.EventCaptureHit) != 1 || h.count(event.EventCaptureMiss) != 0 {
			t.Errorf("Expected one hit and no miss")
		}
	})

	t.Run("detected but off tip", func(t *testing.T) {
		h := newHarness(t)
		h.addAgent(6, mgl64.Vec3{0.15, 0, 2})
		h.tick(Hands{Right: pinch(origin)})
		if h.r.Detected != 6 {
			t.Fatalf("Expected sweep to detect the agent, got %v", h.r.Detected)
		}
		h.run(2*time.Second, Hands{}, nil)

		if len(h.targets.caught) != 0 {
			t.Error("Sweep detection alone must not capture")
		}
		if h.count(event.EventCaptureMiss) != 1 {
			t.Error("Expected a miss")
		}
	})

	t.Run("destroyed before hold end", func(t *testing.T) {
		h := newHarness(t)
		h.addAgent(7, mgl64.Vec3{0, 0, 1})
		h.tick(Hands{Right: pinch(origin)})
		h.run(550*time.Millisecond, Hands{}, nil)
		if h.r.Phase() != PhaseHolding {
			t.Fatalf("Expected Holding, got %v", h.r.Phase())
		}

		// Dangling handle resolves to a miss
		h.targets.live[7] = false
		h.c.Remove(7)
		h.run(time.Second, Hands{}, nil)
		if len(h.targets.caught) != 0 || h.count(event.EventCaptureMiss) != 1 {
			t.Error("Expected dangling contact to resolve as a miss")
		}
	})
}

func TestLeftHandMirrorsOffset(t *testing.T) {
	cfg := testCapture()
	cfg.PositionOffset = [3]float64{0.02, 0.03, 0.05}
	cfg.RotationOffset = [3]float64{20, 35, 15}
	r := NewReactor(cfg, colliderEnv{physics.NewColliders()}, &fakeTargets{}, vmath.NewFastRand(1), nil, nil)

	right := r.Offset(core.HandRight)
	left := r.Offset(core.HandLeft)
	if !vmath.ApproxEqual(left.Position, right.Position.Mul(-1), 1e-12) {
		t.Errorf("Expected mirrored position, got %v vs %v", left.Position, right.Position)
	}
	// 180 degree roll flips up but keeps forward
	if !vmath.ApproxEqual(left.Forward(), right.Forward(), 1e-9) {
		t.Errorf("Expected shared forward, got %v vs %v", left.Forward(), right.Forward())
	}
	if !vmath.ApproxEqual(left.Up(), right.Up().Mul(-1), 1e-9) {
		t.Errorf("Expected flipped up, got %v vs %v", left.Up(), right.Up())
	}
}

func TestOffsetEulerOrder(t *testing.T) {
	cfg := testCapture()
	cfg.RotationOffset = [3]float64{30, 45, 10}
	r := NewReactor(cfg, colliderEnv{physics.NewColliders()}, &fakeTargets{}, vmath.NewFastRand(1), nil, nil)

	// Roll about z first, then pitch about x, then yaw about y
	want := mgl64.QuatRotate(vmath.DegToRad(45), vmath.Up).
		Mul(mgl64.QuatRotate(vmath.DegToRad(30), vmath.Right)).
		Mul(mgl64.QuatRotate(vmath.DegToRad(10), vmath.Forward))
	got := r.Offset(core.HandRight).Rotation

	for _, axis := range []mgl64.Vec3{vmath.Forward, vmath.Up, vmath.Right} {
		if !vmath.ApproxEqual(got.Rotate(axis), want.Rotate(axis), 1e-9) {
			t.Errorf("Axis %v: got %v, want %v", axis, got.Rotate(axis), want.Rotate(axis))
		}
	}

	cfg.RotationOffset = [3]float64{0, 90, 0}
	r = NewReactor(cfg, colliderEnv{physics.NewColliders()}, &fakeTargets{}, vmath.NewFastRand(1), nil, nil)
	if f := r.Offset(core.HandRight).Forward(); !vmath.ApproxEqual(f, vmath.Right, 1e-9) {
		t.Errorf("Expected 90 degree yaw to face +x, got %v", f)
	}
}
