// Package session holds the state of one timed play-through: score, combo,
// accuracy, the session clock and the live targets.
package session

import (
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/steady/internal/audio"
	"github.com/tomz197/steady/internal/difficulty"
	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/object"
)

// EndReason tells why a session finished.
type EndReason int

const (
	EndNone     EndReason = iota // Still running
	EndDepleted                  // Score dropped to zero
	EndTimeUp                    // Session duration elapsed
)

func (r EndReason) String() string {
	switch r {
	case EndDepleted:
		return "out of points"
	case EndTimeUp:
		return "time up"
	default:
		return "running"
	}
}

// Options configures a new session. Zero values fall back to the standard game.
type Options struct {
	Profile      difficulty.Profile
	Field        object.Field
	Rand         *rand.Rand
	Cues         audio.Player
	Logger       *log.Logger
	Duration     time.Duration
	InitialScore int
}

// Stats is the end-of-session summary.
type Stats struct {
	Difficulty string
	Score      int
	MaxCombo   int
	Hits       int
	Shots      int
	Accuracy   float64
	Reason     EndReason
}

// Session is mutated by shots and by time advancement from a single goroutine.
type Session struct {
	Profile  difficulty.Profile
	Score    int
	Combo    int
	MaxCombo int
	Shots    int
	Hits     int
	Targets  []*object.Target
	Popups   []*object.Popup

	toSpawn  []*object.Target
	spawner  *object.TargetSpawner
	field    object.Field
	rng      *rand.Rand
	cues     audio.Player
	logger   *log.Logger
	duration time.Duration

	started   bool
	start     time.Time
	paused    bool
	pausedAt  time.Time
	pausedFor time.Duration
	lastTick  time.Duration
	endedAt   time.Duration
	ended     EndReason
}

// New creates a session that has not started yet.
func New(opts Options) *Session {
	if opts.Profile.Name == "" {
		opts.Profile = difficulty.Default()
	}
	if opts.Field == (object.Field{}) {
		opts.Field = object.DefaultField()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Cues == nil {
		opts.Cues = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Duration <= 0 {
		opts.Duration = config.SessionDuration
	}
	if opts.InitialScore <= 0 {
		opts.InitialScore = config.InitialScore
	}

	return &Session{
		Profile:  opts.Profile,
		Score:    opts.InitialScore,
		spawner:  object.NewTargetSpawner(opts.Profile, object.NewPlacer(opts.Field, opts.Rand)),
		field:    opts.Field,
		rng:      opts.Rand,
		cues:     opts.Cues,
		logger:   opts.Logger,
		duration: opts.Duration,
	}
}

// Start begins the session clock.
func (s *Session) Start(now time.Time) {
	s.started = true
	s.start = now
}

// Pause freezes the session clock, target decay and spawning.
func (s *Session) Pause(now time.Time) {
	if !s.Active() {
		return
	}
	s.paused = true
	s.pausedAt = now
}

// Resume restarts the clock; the paused span does not count against the session.
func (s *Session) Resume(now time.Time) {
	if !s.paused {
		return
	}
	s.pausedFor += now.Sub(s.pausedAt)
	s.paused = false
}

// Active reports whether shots and ticks are processed.
func (s *Session) Active() bool {
	return s.started && !s.paused && s.ended == EndNone
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Ended returns why the session finished, or EndNone.
func (s *Session) Ended() EndReason {
	return s.ended
}

// Elapsed returns session time at now, excluding paused spans.
func (s *Session) Elapsed(now time.Time) time.Duration {
	switch {
	case !s.started:
		return 0
	case s.ended != EndNone:
		return s.endedAt
	case s.paused:
		now = s.pausedAt
	}
	d := now.Sub(s.start) - s.pausedFor
	if d < 0 {
		return 0
	}
	return d
}

// Remaining returns the session time left at now.
func (s *Session) Remaining(now time.Time) time.Duration {
	left := s.duration - s.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Accuracy returns the hit percentage, 0 before the first shot.
func (s *Session) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots) * 100
}

// Stats summarizes the session so far.
func (s *Session) Stats() Stats {
	return Stats{
		Difficulty: s.Profile.Name,
		Score:      s.Score,
		MaxCombo:   s.MaxCombo,
		Hits:       s.Hits,
		Shots:      s.Shots,
		Accuracy:   s.Accuracy(),
		Reason:     s.ended,
	}
}

// Spawn queues a target to be added after the current update cycle.
// Implements object.Spawner interface.
func (s *Session) Spawn(t *object.Target) {
	s.toSpawn = append(s.toSpawn, t)
}

func (s *Session) flushSpawned() {
	s.Targets = append(s.Targets, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

// Tick advances the session to now: time-out check, spawning, then target
// decay. Targets that expire unclicked cost a point each.
func (s *Session) Tick(now time.Time) {
	if !s.Active() {
		return
	}

	elapsed := s.Elapsed(now)
	if elapsed >= s.duration {
		s.end(EndTimeUp, s.duration)
		return
	}

	ctx := object.UpdateContext{
		Now:     elapsed,
		Delta:   elapsed - s.lastTick,
		Field:   s.field,
		Spawner: s,
		Targets: s.Targets,
	}
	s.lastTick = elapsed

	if _, err := s.spawner.Update(ctx); err != nil {
		if !errors.Is(err, object.ErrFieldSaturated) {
			s.logger.Error("spawner failed", "err", err)
		} else {
			s.logger.Debug("spawn skipped", "reason", err, "live", object.CountLive(s.Targets))
		}
	}
	s.flushSpawned()
	ctx.Targets = s.Targets

	kept := s.Targets[:0]
	for i, t := range s.Targets {
		remove, err := t.Update(ctx)
		if err != nil {
			s.logger.Error("target update failed", "err", err)
		}
		if !remove {
			kept = append(kept, t)
			continue
		}
		if t.Exploding {
			continue
		}
		s.losePoint()
		if s.Score <= 0 {
			kept = append(kept, s.Targets[i+1:]...)
			s.end(EndDepleted, elapsed)
			break
		}
	}
	s.Targets = kept
	s.updatePopups(ctx)
}

func (s *Session) updatePopups(ctx object.UpdateContext) {
	kept := s.Popups[:0]
	for _, p := range s.Popups {
		remove, err := p.Update(ctx)
		if err != nil {
			s.logger.Error("popup update failed", "err", err)
		}
		if !remove {
			kept = append(kept, p)
		}
	}
	s.Popups = kept
}

// RegisterShot resolves a click at (x,y). The first live target under the
// point, in spawn order, is hit.
func (s *Session) RegisterShot(x, y float64, now time.Time) bool {
	if !s.Active() {
		return false
	}
	s.Shots++

	for _, t := range s.Targets {
		if !t.CheckHit(x, y) {
			continue
		}
		t.Explode(s.rng)
		s.Popups = append(s.Popups, object.NewPopup(t.X, t.Y-t.Radius, "+"+strconv.Itoa(t.Points), t.Tier.Color(), s.Elapsed(now)))
		s.Score += t.Points
		s.Hits++
		s.Combo++
		if s.Combo > s.MaxCombo {
			s.MaxCombo = s.Combo
		}
		s.cues.Play(audio.CueHit)
		return true
	}

	s.losePoint()
	s.Combo = 0
	s.cues.Play(audio.CueMiss)
	if s.Score <= 0 {
		s.end(EndDepleted, s.Elapsed(now))
	}
	return false
}

// Draw appends every target and popup to the frame.
func (s *Session) Draw(ctx object.DrawContext) error {
	for _, t := range s.Targets {
		if err := t.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range s.Popups {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) losePoint() {
	s.Score--
	if s.Score < 0 {
		s.Score = 0
	}
}

func (s *Session) end(reason EndReason, at time.Duration) {
	s.endedAt = at
	s.ended = reason
	s.logger.Debug("session ended", "reason", reason, "score", s.Score, "elapsed", at)
}
