package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/parameter"
)

const sampleYAML = `
waves:
  - name: first
    count: 4
    speed: 0.5
    rotation_speed: 6
    takeoff_chance: 0.25
    landable: [floor, wall_face]
    edge_clearance: 0.12
    min_rest: 1500ms
    max_rest: 4s
  - name: second
    speed: 0.8
    rest_snap: surface_below
    accessibility_radius: 0.05
    check_distance: 0.2
capture:
  cooldown: 2s
  cast_distance: 3
  position_offset: [0.1, 0, 0]
spawn:
  interval_min: 1s
  interval_max: 2s
  anchors: [door_frame]
`

func TestParse_Sample(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(cfg.Waves) != 2 {
		t.Fatalf("Expected 2 waves, got %d", len(cfg.Waves))
	}

	w := cfg.Waves[0]
	if w.Count != 4 || w.Speed != 0.5 || w.RotationSpeed != 6 || w.TakeoffChance != 0.25 {
		t.Errorf("Unexpected first wave scalars: %+v", w)
	}
	if w.Landable.Label() != core.LabelFloor|core.LabelWallFace {
		t.Errorf("Expected floor|wall_face, got %s", w.Landable.Label())
	}
	if w.MinRest != 1500*time.Millisecond || w.MaxRest != 4*time.Second {
		t.Errorf("Expected rest 1.5s..4s, got %v..%v", w.MinRest, w.MaxRest)
	}
	if w.RestSnap != RestSnapTarget {
		t.Errorf("Expected default rest snap policy, got %q", w.RestSnap)
	}

	second := cfg.Waves[1]
	if second.RestSnap != RestSnapSurfaceBelow {
		t.Errorf("Expected surface_below policy, got %q", second.RestSnap)
	}
	if second.RotationSpeed != parameter.DefaultAgentRotationSpeed {
		t.Errorf("Expected default rotation speed, got %v", second.RotationSpeed)
	}
	if second.Landable.Label() != core.LabelFloor|core.LabelCeiling {
		t.Errorf("Expected default landable floor|ceiling, got %s", second.Landable.Label())
	}

	if cfg.Capture.Cooldown != 2*time.Second || cfg.Capture.CastDistance != 3 {
		t.Errorf("Unexpected capture tuning: %+v", cfg.Capture)
	}
	if cfg.Capture.GrabSpeed != parameter.GrabSpeed {
		t.Errorf("Expected default grab speed, got %v", cfg.Capture.GrabSpeed)
	}
	if cfg.Spawn.Anchors.Label() != core.LabelDoorFrame {
		t.Errorf("Expected door_frame spawn anchors, got %s", cfg.Spawn.Anchors.Label())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"no waves", "capture: {}\n", ErrNoWaves},
		{"takeoff above one", "waves:\n  - takeoff_chance: 1.5\n", ErrInvalidRange},
		{"inverted rest", "waves:\n  - min_rest: 5s\n    max_rest: 1s\n", ErrInvalidRange},
		{"unknown policy", "waves:\n  - rest_snap: sideways\n", ErrInvalidRange},
		{"inverted extension", "waves:\n  - speed: 1\ncapture:\n  min_extension: 3\n  max_extension: 1\n", ErrInvalidRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := Parse([]byte("waves:\n  - landable: [lava]\n")); err == nil {
		t.Error("Expected unknown label to be rejected")
	}
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}

	for i := 1; i < len(cfg.Waves); i++ {
		if cfg.Waves[i].Speed <= cfg.Waves[i-1].Speed {
			t.Errorf("Expected wave %d faster than wave %d", i, i-1)
		}
		if cfg.Waves[i].TakeoffChance <= cfg.Waves[i-1].TakeoffChance {
			t.Errorf("Expected wave %d to take off more often than wave %d", i, i-1)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	if got := (Config{}).WithDefaults(); len(got.Waves) != len(Default().Waves) || got.Capture != Default().Capture {
		t.Errorf("Expected zero config to become Default, got %+v", got)
	}

	waves := []WaveProfile{{Name: "only", Speed: 0.9}}
	cfg := Config{Waves: waves, Capture: CaptureTuning{Cooldown: time.Second}}.WithDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Filled config invalid: %v", err)
	}
	if cfg.Capture.Cooldown != time.Second {
		t.Errorf("Expected explicit cooldown kept, got %v", cfg.Capture.Cooldown)
	}
	if cfg.Capture.GrabSpeed != parameter.GrabSpeed || cfg.Capture.MaxExtension != parameter.MaxExtension {
		t.Errorf("Expected capture defaults filled, got %+v", cfg.Capture)
	}
	if cfg.Waves[0].Speed != 0.9 || cfg.Waves[0].Count != parameter.DefaultWaveSize {
		t.Errorf("Expected wave filled around explicit speed, got %+v", cfg.Waves[0])
	}
	if waves[0].Count != 0 {
		t.Error("Caller's wave slice must not be modified")
	}

	onlyCapture := Config{Capture: CaptureTuning{Cooldown: time.Second}}.WithDefaults()
	if len(onlyCapture.Waves) == 0 || onlyCapture.Capture.Cooldown != time.Second {
		t.Errorf("Expected built-in waves with explicit capture, got %+v", onlyCapture)
	}
	t.Logf("✓ Filled %d waves, capture %+v", len(cfg.Waves), cfg.Capture)
}

func TestProfile_ClampsIndex(t *testing.T) {
	cfg := Default()
	last := cfg.Waves[len(cfg.Waves)-1]

	if got := cfg.Profile(99); got.Name != last.Name {
		t.Errorf("Expected index past end to hold at %q, got %q", last.Name, got.Name)
	}
	if got := cfg.Profile(-1); got.Name != cfg.Waves[0].Name {
		t.Errorf("Expected negative index to clamp to first wave, got %q", got.Name)
	}
	if got := (Config{}).Profile(0); got.Speed != parameter.DefaultAgentSpeed {
		t.Errorf("Expected empty config to return default profile, got %+v", got)
	}
}

func TestLoad_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")

	raw, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Waves[2].Landable != Default().Waves[2].Landable {
		t.Errorf("Expected landable labels to survive file load, got %s", cfg.Waves[2].Landable.Label())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
