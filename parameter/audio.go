package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Capture cues
const (
	// CroakDuration is one croak burst, repeated while the apparatus is visible and idle
	CroakDuration  = 350 * time.Millisecond
	CroakFrequency = 140.0

	// SlurpDuration covers the extend phase sweep
	SlurpDuration     = 400 * time.Millisecond
	SlurpStartFreq    = 900.0
	SlurpEndFreq      = 250.0
	MunchDuration     = 250 * time.Millisecond
	MunchCrunchRate   = 18.0
	CueMasterVolume   = 0.25
	CueEnvelopeAttack = 5 * time.Millisecond
)
