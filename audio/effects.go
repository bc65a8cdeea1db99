package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/fly-catcher/parameter"
	"github.com/lixenwraith/fly-catcher/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end frequency over duration
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewFastRand(uint64(start*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := vmath.Lerp(o.freq, o.endFreq, progress)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CueType identifies a capture sound cue
type CueType int

const (
	CueCroak CueType = iota
	CueSlurp
	CueMunch
)

// CreateCroakSound is a low square burst with a sine body
func CreateCroakSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.CroakDuration
	body := NewEnvelope(NewOscillator(parameter.CroakFrequency, d, WaveSine, rate), d, parameter.CueEnvelopeAttack, d/2, rate)
	rasp := NewEnvelope(NewOscillator(parameter.CroakFrequency*2, d, WaveSquare, rate), d, parameter.CueEnvelopeAttack, d/2, rate)
	return beep.Mix(newVolume(body, 0.7), newVolume(rasp, 0.2))
}

// CreateSlurpSound is a falling saw sweep matching the tongue extension
func CreateSlurpSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.SlurpDuration
	sweep := NewSweep(parameter.SlurpStartFreq, parameter.SlurpEndFreq, d, WaveSaw, rate)
	return newVolume(NewEnvelope(sweep, d, parameter.CueEnvelopeAttack, d/4, rate), 0.6)
}

// CreateMunchSound is amplitude-gated noise, one gate per crunch
func CreateMunchSound(rate beep.SampleRate) beep.Streamer {
	d := parameter.MunchDuration
	noise := NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.CueEnvelopeAttack, d/3, rate)
	gate := NewOscillator(parameter.MunchCrunchRate, d, WaveSquare, rate)
	return newVolume(&ring{carrier: noise, mod: gate}, 0.5)
}

// ring multiplies a carrier by a unipolar version of the modulator
type ring struct {
	carrier beep.Streamer
	mod     beep.Streamer
	buf     [][2]float64
}

func (r *ring) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.carrier.Stream(samples)
	if cap(r.buf) < n {
		r.buf = make([][2]float64, n)
	}
	buf := r.buf[:n]
	m, _ := r.mod.Stream(buf)
	for i := 0; i < n; i++ {
		g := 0.0
		if i < m {
			g = (buf[i][0] + 1) / 2
		}
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (r *ring) Err() error { return r.carrier.Err() }

// CreateCue returns the streamer for a cue at master volume
func CreateCue(cue CueType, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueCroak:
		s = CreateCroakSound(rate)
	case CueSlurp:
		s = CreateSlurpSound(rate)
	case CueMunch:
		s = CreateMunchSound(rate)
	default:
		return nil
	}
	return newVolume(s, parameter.CueMasterVolume)
}
