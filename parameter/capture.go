package parameter

import "time"

// Gesture
const (
	// PinchThreshold is the thumb-tip to index-tip distance that counts as a pinch (meters)
	PinchThreshold = 0.02

	// CaptureCooldown gates re-arming, measured from the previous trigger
	CaptureCooldown = 3 * time.Second
)

// Forward Sweep
const (
	// CastRadius is the sphere cast radius along the apparatus forward axis (meters)
	CastRadius = 0.2

	// CastDistance is the sphere cast range (meters)
	CastDistance = 4.0
)

// Tongue extension (normalized scale units, rest is MinExtension)
const (
	MinExtension = 0.1
	MaxExtension = 5.0

	// MissLash is the sweep-range fraction used for the fallback lash when nothing is detected
	MissLash = 0.15

	// GrabSpeed is the extend rate in fraction of the span per second
	GrabSpeed = 2.0

	// ReturnSpeed is the retract rate in fraction of the span per second
	ReturnSpeed = 1.0

	// ExtensionEpsilon ends retraction once the extension is this close to rest
	ExtensionEpsilon = 0.001
)

// Tongue tip trigger volume half extents (meters)
const (
	TipHalfExtent = 0.05
)

// Sequence timing
const (
	// TongueHold is the pause at full extension before hit resolution
	TongueHold = 150 * time.Millisecond

	// MunchDelay fires the munch cue after the hold ends
	MunchDelay = 200 * time.Millisecond

	// StowDelay keeps the apparatus visible after retraction before going dormant
	StowDelay = 200 * time.Millisecond

	// CaughtDespawn is the delay between capture and removal of the caught agent
	CaughtDespawn = 1 * time.Second

	// CaughtScale multiplies a caught agent's scale
	CaughtScale = 0.5
)
