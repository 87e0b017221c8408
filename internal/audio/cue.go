// Package audio plays the short feedback cues fired by shots.
package audio

import (
	"io"
	"sync/atomic"
)

// Cue identifies a sound effect.
type Cue int

const (
	CueHit Cue = iota
	CueMiss
)

func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Player plays cues. Implementations must not block the game loop.
type Player interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Switch gates a Player behind the sound toggle.
type Switch struct {
	player  Player
	enabled atomic.Bool
}

// NewSwitch wraps p; a nil p plays nothing.
func NewSwitch(p Player, enabled bool) *Switch {
	if p == nil {
		p = Nop{}
	}
	s := &Switch{player: p}
	s.enabled.Store(enabled)
	return s
}

// Play forwards the cue when sound is enabled.
func (s *Switch) Play(c Cue) {
	if s.enabled.Load() {
		s.player.Play(c)
	}
}

// Enabled reports the toggle state.
func (s *Switch) Enabled() bool {
	return s.enabled.Load()
}

// Toggle flips the sound flag and returns the new state.
func (s *Switch) Toggle() bool {
	for {
		cur := s.enabled.Load()
		if s.enabled.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Bell rings the terminal bell on misses. Hits stay silent because a bell
// has only one tone.
type Bell struct {
	W io.Writer
}

// NewBell creates a bell that writes to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

// Play writes BEL for CueMiss.
func (b *Bell) Play(c Cue) {
	if c == CueMiss && b.W != nil {
		_, _ = io.WriteString(b.W, "\a")
	}
}
