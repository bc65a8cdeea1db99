package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/fly-catcher/parameter"
)

// drain streams s to exhaustion and returns the sample count and peak amplitude
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestCueDurations(t *testing.T) {
	tests := []struct {
		cue      CueType
		duration time.Duration
	}{
		{CueCroak, parameter.CroakDuration},
		{CueSlurp, parameter.SlurpDuration},
		{CueMunch, parameter.MunchDuration},
	}

	for _, tt := range tests {
		n, peak := drain(CreateCue(tt.cue, sampleRate))
		want := sampleRate.N(tt.duration)
		if n != want {
			t.Errorf("Cue %d: expected %d samples, got %d", tt.cue, want, n)
		}
		if peak <= 0 || peak > 1 {
			t.Errorf("Cue %d: peak amplitude %.3f outside (0, 1]", tt.cue, peak)
		}
	}
	if CreateCue(CueType(99), sampleRate) != nil {
		t.Error("Expected nil for unknown cue")
	}
}

func TestSweepEndsSilentEnvelope(t *testing.T) {
	d := 50 * time.Millisecond
	s := NewEnvelope(NewSweep(400, 100, d, WaveSine, sampleRate), d, 5*time.Millisecond, 10*time.Millisecond, sampleRate)
	buf := make([][2]float64, sampleRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("Expected %d samples, got %d", len(buf), n)
	}
	if buf[0][0] != 0 {
		t.Errorf("Expected attack to start at zero, got %v", buf[0][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.01 {
		t.Errorf("Expected release to end near zero, got %v", last)
	}
}
