package parameter

import "time"

// Wave spawning
const (
	// SpawnIntervalMin is the shortest gap between two spawns in a wave
	SpawnIntervalMin = 5 * time.Second

	// SpawnIntervalMax is the longest gap between two spawns in a wave
	SpawnIntervalMax = 15 * time.Second

	// DefaultWaveSize is the agent count per wave when the profile leaves it unset
	DefaultWaveSize = 5
)

// Spawn placement (meters)
const (
	// SpawnLift moves a spawn point off its window/door frame along the frame normal
	SpawnLift = 0.1

	// FallbackSpawnHeight is used when the room has no spawn anchors
	FallbackSpawnHeight = 1.5
)
