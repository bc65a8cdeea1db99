package tuning

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/parameter"
)

var (
	ErrNoWaves      = errors.New("no wave profiles configured")
	ErrInvalidRange = errors.New("invalid range")
)

// RestSnapPolicy selects how a landing agent is placed on its surface
type RestSnapPolicy string

const (
	// RestSnapTarget snaps onto the sampled target point
	RestSnapTarget RestSnapPolicy = "target"
	// RestSnapSurfaceBelow raycasts downward from the target and snaps onto whatever is hit
	RestSnapSurfaceBelow RestSnapPolicy = "surface_below"
)

// Config is the full runtime tuning document
type Config struct {
	Waves   []WaveProfile `yaml:"waves"`
	Capture CaptureTuning `yaml:"capture"`
	Spawn   SpawnTuning   `yaml:"spawn"`
}

// WaveProfile is the per-wave behavior record handed to every agent spawned in that wave
type WaveProfile struct {
	Name          string        `yaml:"name"`
	Count         int           `yaml:"count"`
	Speed         float64       `yaml:"speed"`
	RotationSpeed float64       `yaml:"rotation_speed"`
	TakeoffChance float64       `yaml:"takeoff_chance"`
	Landable      Labels        `yaml:"landable"`
	EdgeClearance float64       `yaml:"edge_clearance"`
	MinRest       time.Duration `yaml:"min_rest"`
	MaxRest       time.Duration `yaml:"max_rest"`

	// Landing accessibility sphere cast, disabled when radius is zero
	AccessibilityRadius float64 `yaml:"accessibility_radius"`
	CheckDistance       float64 `yaml:"check_distance"`

	RestSnap RestSnapPolicy `yaml:"rest_snap"`
}

// CaptureTuning configures the capture reactor
type CaptureTuning struct {
	PinchThreshold float64       `yaml:"pinch_threshold"`
	Cooldown       time.Duration `yaml:"cooldown"`
	CastRadius     float64       `yaml:"cast_radius"`
	CastDistance   float64       `yaml:"cast_distance"`
	MinExtension   float64       `yaml:"min_extension"`
	MaxExtension   float64       `yaml:"max_extension"`
	MissLash       float64       `yaml:"miss_lash"`
	GrabSpeed      float64       `yaml:"grab_speed"`
	ReturnSpeed    float64       `yaml:"return_speed"`

	// Apparatus pose relative to the active hand, mirrored for the left hand
	PositionOffset [3]float64 `yaml:"position_offset"`
	RotationOffset [3]float64 `yaml:"rotation_offset"` // euler degrees x, y, z; applied z, then x, then y
}

// SpawnTuning configures wave spawning
type SpawnTuning struct {
	IntervalMin time.Duration `yaml:"interval_min"`
	IntervalMax time.Duration `yaml:"interval_max"`
	Anchors     Labels        `yaml:"anchors"`
}

// Labels is a label bitmask that reads and writes as a list of names
type Labels core.Label

func (l *Labels) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	parsed, err := core.ParseLabels(names)
	if err != nil {
		return err
	}
	*l = Labels(parsed)
	return nil
}

func (l Labels) MarshalYAML() (any, error) {
	return core.Label(l).Names(), nil
}

// Label returns the bitmask
func (l Labels) Label() core.Label {
	return core.Label(l)
}

// Load reads and validates a YAML tuning file, filling unset fields with defaults
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML tuning document
func Parse(raw []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("tuning yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the config as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Profile returns the profile for a wave index, holding at the last configured wave
func (c Config) Profile(wave int) WaveProfile {
	if len(c.Waves) == 0 {
		return DefaultProfile()
	}
	if wave < 0 {
		wave = 0
	}
	if wave >= len(c.Waves) {
		wave = len(c.Waves) - 1
	}
	return c.Waves[wave]
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	if len(c.Waves) == 0 {
		return ErrNoWaves
	}
	for i, w := range c.Waves {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("wave %d: %w", i, err)
		}
	}
	if err := c.Capture.Validate(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if c.Spawn.IntervalMax < c.Spawn.IntervalMin {
		return fmt.Errorf("spawn interval %v > %v: %w", c.Spawn.IntervalMin, c.Spawn.IntervalMax, ErrInvalidRange)
	}
	return nil
}

// Validate checks a single wave profile
func (w WaveProfile) Validate() error {
	switch {
	case w.Speed <= 0:
		return fmt.Errorf("speed %v: %w", w.Speed, ErrInvalidRange)
	case w.TakeoffChance < 0 || w.TakeoffChance > 1:
		return fmt.Errorf("takeoff_chance %v: %w", w.TakeoffChance, ErrInvalidRange)
	case w.MinRest < 0 || w.MaxRest < w.MinRest:
		return fmt.Errorf("rest %v..%v: %w", w.MinRest, w.MaxRest, ErrInvalidRange)
	case w.EdgeClearance < 0:
		return fmt.Errorf("edge_clearance %v: %w", w.EdgeClearance, ErrInvalidRange)
	case w.AccessibilityRadius < 0 || w.CheckDistance < 0:
		return fmt.Errorf("accessibility %v/%v: %w", w.AccessibilityRadius, w.CheckDistance, ErrInvalidRange)
	}
	switch w.RestSnap {
	case RestSnapTarget, RestSnapSurfaceBelow:
	default:
		return fmt.Errorf("rest_snap %q: %w", w.RestSnap, ErrInvalidRange)
	}
	return nil
}

// Validate checks capture settings
func (c CaptureTuning) Validate() error {
	switch {
	case c.PinchThreshold <= 0:
		return fmt.Errorf("pinch_threshold %v: %w", c.PinchThreshold, ErrInvalidRange)
	case c.CastDistance <= 0 || c.CastRadius < 0:
		return fmt.Errorf("cast %v/%v: %w", c.CastRadius, c.CastDistance, ErrInvalidRange)
	case c.MaxExtension <= c.MinExtension:
		return fmt.Errorf("extension %v..%v: %w", c.MinExtension, c.MaxExtension, ErrInvalidRange)
	case c.GrabSpeed <= 0 || c.ReturnSpeed <= 0:
		return fmt.Errorf("speeds %v/%v: %w", c.GrabSpeed, c.ReturnSpeed, ErrInvalidRange)
	case c.MissLash < 0 || c.MissLash > 1:
		return fmt.Errorf("miss_lash %v: %w", c.MissLash, ErrInvalidRange)
	}
	return nil
}

// WithDefaults returns a copy with zero fields filled and the built-in waves when none are set
func (c Config) WithDefaults() Config {
	if len(c.Waves) == 0 && c.Capture == (CaptureTuning{}) {
		return Default()
	}
	if len(c.Waves) == 0 {
		c.Waves = Default().Waves
	} else {
		c.Waves = append([]WaveProfile(nil), c.Waves...)
	}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	for i := range c.Waves {
		c.Waves[i].applyDefaults()
	}
	c.Capture.applyDefaults()
	if c.Spawn.IntervalMin == 0 && c.Spawn.IntervalMax == 0 {
		c.Spawn.IntervalMin = parameter.SpawnIntervalMin
		c.Spawn.IntervalMax = parameter.SpawnIntervalMax
	}
	if c.Spawn.Anchors == 0 {
		c.Spawn.Anchors = Labels(core.LabelWindowFrame | core.LabelDoorFrame)
	}
}

func (w *WaveProfile) applyDefaults() {
	if w.Count == 0 {
		w.Count = parameter.DefaultWaveSize
	}
	if w.Speed == 0 {
		w.Speed = parameter.DefaultAgentSpeed
	}
	if w.RotationSpeed == 0 {
		w.RotationSpeed = parameter.DefaultAgentRotationSpeed
	}
	if w.Landable == 0 {
		w.Landable = Labels(core.LabelFloor | core.LabelCeiling)
	}
	if w.MinRest == 0 && w.MaxRest == 0 {
		w.MinRest = parameter.DefaultMinRest
		w.MaxRest = parameter.DefaultMaxRest
	}
	if w.RestSnap == "" {
		w.RestSnap = RestSnapTarget
	}
}

func (c *CaptureTuning) applyDefaults() {
	if c.PinchThreshold == 0 {
		c.PinchThreshold = parameter.PinchThreshold
	}
	if c.Cooldown == 0 {
		c.Cooldown = parameter.CaptureCooldown
	}
	if c.CastRadius == 0 {
		c.CastRadius = parameter.CastRadius
	}
	if c.CastDistance == 0 {
		c.CastDistance = parameter.CastDistance
	}
	if c.MinExtension == 0 && c.MaxExtension == 0 {
		c.MinExtension = parameter.MinExtension
		c.MaxExtension = parameter.MaxExtension
	}
	if c.MissLash == 0 {
		c.MissLash = parameter.MissLash
	}
	if c.GrabSpeed == 0 {
		c.GrabSpeed = parameter.GrabSpeed
	}
	if c.ReturnSpeed == 0 {
		c.ReturnSpeed = parameter.ReturnSpeed
	}
}
