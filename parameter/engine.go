package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the sandbox redraw interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// GameUpdateInterval is the simulation tick (~60 Hz, close to a headset frame)
	GameUpdateInterval = 16 * time.Millisecond

	// MaxTickDelta caps a single tick's delta so a stalled host cannot teleport agents through walls
	MaxTickDelta = 100 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize must be a power of 2, oldest events are overwritten when full
	EventQueueSize  = 256
	EventBufferMask = EventQueueSize - 1
)
