package tuning

import (
	"time"

	"github.com/lixenwraith/fly-catcher/core"
	"github.com/lixenwraith/fly-catcher/parameter"
)

// DefaultProfile is a single calm wave
func DefaultProfile() WaveProfile {
	w := WaveProfile{Name: "default", EdgeClearance: parameter.DefaultEdgeClearance}
	w.applyDefaults()
	return w
}

// Default returns the built-in three-wave progression
// Later waves fly faster, turn sharper and take off more often instead of resting
func Default() Config {
	cfg := Config{
		Waves: []WaveProfile{
			{
				Name:          "lazy",
				Count:         3,
				Speed:         0.25,
				RotationSpeed: 3,
				TakeoffChance: 0.1,
				Landable:      Labels(core.LabelFloor | core.LabelCeiling),
				EdgeClearance: 0.1,
				MinRest:       3 * time.Second,
				MaxRest:       8 * time.Second,
			},
			{
				Name:          "restless",
				Count:         5,
				Speed:         0.4,
				RotationSpeed: 5,
				TakeoffChance: 0.35,
				Landable:      Labels(core.LabelFloor | core.LabelCeiling | core.LabelWallFace),
				EdgeClearance: 0.15,
				MinRest:       2 * time.Second,
				MaxRest:       5 * time.Second,
			},
			{
				Name:                "frantic",
				Count:               8,
				Speed:               0.6,
				RotationSpeed:       8,
				TakeoffChance:       0.6,
				Landable:            Labels(core.LabelFloor | core.LabelCeiling | core.LabelWallFace | core.LabelTable),
				EdgeClearance:       0.2,
				MinRest:             1 * time.Second,
				MaxRest:             3 * time.Second,
				AccessibilityRadius: 0.05,
				CheckDistance:       0.1,
			},
		},
		Capture: CaptureTuning{
			PositionOffset: [3]float64{0.02, 0.03, 0.05},
			RotationOffset: [3]float64{0, 90, 0},
		},
	}
	cfg.applyDefaults()
	return cfg
}
