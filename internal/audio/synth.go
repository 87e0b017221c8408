package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Synth plays procedurally generated cues through the system speaker.
type Synth struct {
	mu          sync.Mutex
	initialized bool
	volume      float64
}

// NewSynth creates a synthesizer; volume is in [0,1].
func NewSynth(volume float64) *Synth {
	return &Synth{volume: volume}
}

// Init opens the audio device. Safe to call more than once.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Play queues the cue on the speaker mixer. Does nothing before Init.
func (s *Synth) Play(c Cue) {
	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		return
	}
	speaker.Play(Stream(c, s.volume))
}

// Close stops playback.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		speaker.Clear()
		s.initialized = false
	}
}

// Stream builds the finite streamer for a cue.
func Stream(c Cue, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueHit:
		// Two quick rising blips.
		s = beep.Seq(
			shaped(newOscillator(880, waveSine), 45*time.Millisecond),
			shaped(newOscillator(1320, waveSine), 70*time.Millisecond),
		)
	default:
		s = shaped(newOscillator(140, waveSaw), 130*time.Millisecond)
	}
	return withVolume(s, volume)
}

func shaped(osc beep.Streamer, d time.Duration) beep.Streamer {
	return newEnvelope(beep.Take(sampleRate.N(d), osc), sampleRate.N(d), sampleRate.N(5*time.Millisecond), sampleRate.N(d/2))
}

// withVolume maps a linear volume to beep's logarithmic scale.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

type wave int

const (
	waveSine wave = iota
	waveSaw
)

// oscillator is an endless single-voice tone.
type oscillator struct {
	freq  float64
	phase float64
	wave  wave
}

func newOscillator(freq float64, w wave) *oscillator {
	return &oscillator{freq: freq, wave: w}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var v float64
		switch o.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case waveSaw:
			v = 2 * (o.phase - 0.5)
		}
		samples[i][0] = v
		samples[i][1] = v
		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack samples and out over release samples.
type envelope struct {
	s                     beep.Streamer
	pos, total            int
	attack, releaseLength int
}

func newEnvelope(s beep.Streamer, total, attack, release int) *envelope {
	return &envelope{s: s, total: total, attack: attack, releaseLength: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.s.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; left < e.releaseLength {
			gain = math.Min(gain, float64(left)/float64(e.releaseLength))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }
