package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/fly-catcher/event"
	"github.com/lixenwraith/fly-catcher/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays capture cues in response to simulation events
// All operations are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	croak       *beep.Ctrl
	initialized bool
	speakerOn   bool
	played      map[CueType]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		played: make(map[CueType]int),
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.speakerOn = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.lock()
	if sm.croak != nil {
		sm.croak.Paused = true
	}
	sm.mixer.Clear()
	sm.unlock()
	sm.initialized = false
}

// Mixer exposes the output stream for offline rendering
func (sm *SoundManager) Mixer() beep.Streamer {
	return sm.mixer
}

// Played returns how many times a cue was started
func (sm *SoundManager) Played(cue CueType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[cue]
}

// Play starts a one-shot cue
func (sm *SoundManager) Play(cue CueType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := CreateCue(cue, sampleRate)
	if s == nil {
		return
	}
	sm.lock()
	sm.mixer.Add(s)
	sm.unlock()
	sm.played[cue]++
}

// StartCroak loops the croak while the apparatus is out
func (sm *SoundManager) StartCroak() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.croak != nil && !sm.croak.Paused {
		return
	}

	sm.lock()
	sm.croak = &beep.Ctrl{Streamer: &cueSource{cue: CueCroak}}
	sm.mixer.Add(sm.croak)
	sm.unlock()
	sm.played[CueCroak]++
}

// StopCroak pauses the croak loop
func (sm *SoundManager) StopCroak() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.croak == nil {
		return
	}
	sm.lock()
	sm.croak.Paused = true
	sm.unlock()
}

// CroakActive reports a running croak loop
func (sm *SoundManager) CroakActive() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.croak != nil && !sm.croak.Paused
}

// EventTypes implements event.Handler
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{event.EventCaptureTriggered, event.EventMunch, event.EventCaptureStowed}
}

// HandleEvent maps capture events to cues
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventCaptureTriggered:
		sm.StartCroak()
		sm.Play(CueSlurp)
	case event.EventMunch:
		sm.Play(CueMunch)
	case event.EventCaptureStowed:
		sm.StopCroak()
	}
}

// lock guards the mixer against the speaker goroutine
func (sm *SoundManager) lock() {
	if sm.speakerOn {
		speaker.Lock()
	}
}

func (sm *SoundManager) unlock() {
	if sm.speakerOn {
		speaker.Unlock()
	}
}

// enableOffline marks the manager ready without opening a device
func (sm *SoundManager) enableOffline() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.initialized = true
}

// cueSource repeats a cue back to back, never draining
type cueSource struct {
	cue     CueType
	current beep.Streamer
}

func (c *cueSource) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		fresh := false
		if c.current == nil {
			c.current = CreateCue(c.cue, sampleRate)
			fresh = true
		}
		n, ok := c.current.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			c.current = nil
			if n == 0 && fresh {
				break
			}
		}
	}
	for i := filled; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (c *cueSource) Err() error { return nil }
